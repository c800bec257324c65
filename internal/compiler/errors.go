package compiler

import (
	"errors"
	"fmt"

	"cuelang.org/go/cue/token"
)

// CompileErrorCode categorizes compilation failures.
type CompileErrorCode string

const (
	// ErrCodeInvalidEnvironment indicates an environment that does not split
	// into exactly one before and one after part.
	ErrCodeInvalidEnvironment CompileErrorCode = "INVALID_ENVIRONMENT"

	// ErrCodeInvalidTarget indicates a correlated rule whose target
	// references no category.
	ErrCodeInvalidTarget CompileErrorCode = "INVALID_TARGET"

	// ErrCodePattern indicates the compiled text is not a valid expression.
	ErrCodePattern CompileErrorCode = "PATTERN_ERROR"

	// ErrCodeCategory indicates a malformed category declaration.
	ErrCodeCategory CompileErrorCode = "INVALID_CATEGORY"

	// ErrCodeCUE indicates a CUE rulebook that failed to load or evaluate.
	ErrCodeCUE CompileErrorCode = "CUE"
)

// CompileError represents a compilation error.
//
// Rule renders the offending rule and Index is its position in the
// declaring list (-1 when compiled on its own). Pos is set for errors that
// originate in a CUE rulebook.
type CompileError struct {
	Code    CompileErrorCode
	Field   string
	Rule    string
	Index   int
	Message string
	Pos     token.Pos
	Err     error
}

func (e *CompileError) Error() string {
	var where string
	switch {
	case e.Pos.IsValid():
		where = fmt.Sprintf("%s:%d:%d: ", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column())
	case e.Index >= 0 && e.Rule != "":
		where = fmt.Sprintf("rule #%d (%s): ", e.Index, e.Rule)
	case e.Rule != "":
		where = fmt.Sprintf("rule (%s): ", e.Rule)
	}
	return fmt.Sprintf("%s%s: %s", where, e.Code, e.Message)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

func newCompileError(code CompileErrorCode, field, rule, msg string) *CompileError {
	return &CompileError{Code: code, Field: field, Rule: rule, Index: -1, Message: msg}
}

// atIndex records the rule's list position on a CompileError.
func atIndex(err error, idx int) error {
	var ce *CompileError
	if errors.As(err, &ce) && ce.Index < 0 {
		ce.Index = idx
	}
	return err
}

// CodeOf returns the CompileErrorCode carried by err, or "" if err is not a
// CompileError.
func CodeOf(err error) CompileErrorCode {
	var ce *CompileError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// IsPatternError returns true if err is a PATTERN_ERROR.
func IsPatternError(err error) bool { return CodeOf(err) == ErrCodePattern }

// IsInvalidEnvironment returns true if err is an INVALID_ENVIRONMENT error.
func IsInvalidEnvironment(err error) bool { return CodeOf(err) == ErrCodeInvalidEnvironment }

// IsInvalidTarget returns true if err is an INVALID_TARGET error.
func IsInvalidTarget(err error) bool { return CodeOf(err) == ErrCodeInvalidTarget }
