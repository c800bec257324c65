package engine

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/roach88/babel/internal/compiler"
	"github.com/roach88/babel/internal/ir"
)

// RuntimeError represents an error detected while running pipelines or
// deriving a vocabulary.
//
// RuntimeError includes structured fields for diagnostics.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// Language is the descendant language index, or -1.
	Language int

	// Ancestor is the ancestor language index, or -1.
	Ancestor int

	// Word is the affected word index in Language, or -1.
	Word int

	// Rule renders the offending rule (NON_TERMINATING_RULE).
	Rule string

	// Details contains additional context.
	Details map[string]string

	// Err is the underlying cause, if any.
	Err error
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeGhostWord indicates a descendant word whose single ancestor
	// coordinate no longer resolves during derivation.
	ErrCodeGhostWord RuntimeErrorCode = "GHOST_WORD"

	// ErrCodeGhostReference indicates a coordinate that does not resolve to a
	// live word.
	ErrCodeGhostReference RuntimeErrorCode = "GHOST_REFERENCE"

	// ErrCodeDeriveFromSelf indicates a language asked to derive from itself.
	ErrCodeDeriveFromSelf RuntimeErrorCode = "DERIVE_FROM_SELF"

	// ErrCodeNonTerminating indicates a substitution that did not reach a
	// fixpoint within the iteration cap.
	ErrCodeNonTerminating RuntimeErrorCode = "NON_TERMINATING_RULE"

	// ErrCodeAncestorCycle indicates an ancestor chain that loops.
	ErrCodeAncestorCycle RuntimeErrorCode = "ANCESTOR_CYCLE"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	switch {
	case e.Word >= 0 && e.Language >= 0:
		return fmt.Sprintf("%s: %s (language=%d, word=%d)", e.Code, e.Message, e.Language, e.Word)
	case e.Language >= 0:
		return fmt.Sprintf("%s: %s (language=%d)", e.Code, e.Message, e.Language)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

func codeIs(err error, code RuntimeErrorCode) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}

// IsGhostWord returns true if the error is a GHOST_WORD error.
// Uses errors.As to handle wrapped errors.
func IsGhostWord(err error) bool { return codeIs(err, ErrCodeGhostWord) }

// IsGhostReference returns true if the error is a GHOST_REFERENCE error.
func IsGhostReference(err error) bool { return codeIs(err, ErrCodeGhostReference) }

// IsDeriveFromSelf returns true if the error is a DERIVE_FROM_SELF error.
func IsDeriveFromSelf(err error) bool { return codeIs(err, ErrCodeDeriveFromSelf) }

// IsNonTerminating returns true if the error is a NON_TERMINATING_RULE error.
func IsNonTerminating(err error) bool { return codeIs(err, ErrCodeNonTerminating) }

// IsCycleError returns true if the error is an ANCESTOR_CYCLE error.
func IsCycleError(err error) bool { return codeIs(err, ErrCodeAncestorCycle) }

// GhostWordIndex returns the descendant word index carried by a GHOST_WORD
// error.
func GhostWordIndex(err error) (int, bool) {
	var re *RuntimeError
	if errors.As(err, &re) && re.Code == ErrCodeGhostWord {
		return re.Word, true
	}
	return 0, false
}

// ErrorCode returns the code of the outermost typed error in err's chain:
// a RuntimeError, a compiler.CompileError or an ir.LookupError. It returns
// "" for any other error.
func ErrorCode(err error) string {
	var re *RuntimeError
	if errors.As(err, &re) {
		return string(re.Code)
	}
	if code := compiler.CodeOf(err); code != "" {
		return string(code)
	}
	var le *ir.LookupError
	if errors.As(err, &le) {
		return string(le.Code)
	}
	return ""
}

// NewGhostWordError creates a RuntimeError for a descendant word whose
// ancestor is missing or already claimed.
func NewGhostWordError(language, ancestor, word, ancestorWord int) *RuntimeError {
	return &RuntimeError{
		Code:     ErrCodeGhostWord,
		Message:  fmt.Sprintf("ancestor word %d:%d is missing or already claimed", ancestor, ancestorWord),
		Language: language,
		Ancestor: ancestor,
		Word:     word,
		Details: map[string]string{
			"ancestor_word": strconv.Itoa(ancestorWord),
		},
	}
}

// NewDeriveFromSelfError creates a RuntimeError for a self-derivation request.
func NewDeriveFromSelfError(language int) *RuntimeError {
	return &RuntimeError{
		Code:     ErrCodeDeriveFromSelf,
		Message:  "a language cannot derive from itself",
		Language: language,
		Ancestor: language,
		Word:     -1,
	}
}

// NewCycleError creates a RuntimeError for an ancestor chain that would loop.
// chain lists the languages visited, starting at the proposed ancestor.
func NewCycleError(language, ancestor int, chain []int) *RuntimeError {
	return &RuntimeError{
		Code:     ErrCodeAncestorCycle,
		Message:  fmt.Sprintf("ancestor chain loops: %v", chain),
		Language: language,
		Ancestor: ancestor,
		Word:     -1,
	}
}
