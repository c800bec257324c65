package compiler

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/roach88/babel/internal/ir"
)

// Validation error codes (E200-E299)
const (
	ErrReplacePattern     = "E201" // surface/phonetic pattern does not compile
	ErrCategoryKey        = "E202" // category key is not a single character
	ErrCategoryEmpty      = "E203" // category has no graphemes
	ErrChangeEnvironment  = "E204" // environment lacks exactly one separator
	ErrChangeTarget       = "E205" // correlated rule with no target category
	ErrChangePattern      = "E206" // compiled sound change does not compile
	ErrCategoryLengthSkew = "E207" // correlated categories differ in length
)

// ValidationError is one problem found while checking a language's rules.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Rule    int    `json:"rule"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Rule >= 0 {
		return fmt.Sprintf("[%s] %s[%d]: %s", e.Code, e.Field, e.Rule, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// IsWarning reports codes that do not prevent compilation.
func (e ValidationError) IsWarning() bool {
	return e.Code == ErrCategoryEmpty || e.Code == ErrCategoryLengthSkew
}

// ValidateLanguage checks every rule of lang and returns all problems found
// (does not fail-fast).
func ValidateLanguage(lang *ir.Language) []ValidationError {
	var errs []ValidationError

	errs = append(errs, validateReplaces("surface", lang.Surface)...)
	errs = append(errs, validateReplaces("phonetic", lang.Phonetic)...)

	table := NewCategoryTable()
	for key, content := range lang.SoundChanges.Categories {
		r, size := utf8.DecodeRuneInString(key)
		if r == utf8.RuneError || size != len(key) {
			// E202
			errs = append(errs, ValidationError{
				Field:   "categories." + key,
				Message: "category key must be a single character",
				Code:    ErrCategoryKey,
				Rule:    -1,
			})
			continue
		}
		table.Add(r, content)
		if content == "" {
			// E203
			errs = append(errs, ValidationError{
				Field:   "categories." + key,
				Message: "category is empty; rules using it never match",
				Code:    ErrCategoryEmpty,
				Rule:    -1,
			})
		}
	}

	rc := NewRuleCompiler(table)
	for i, sc := range lang.SoundChanges.Changes {
		if _, err := rc.Compile(sc); err != nil {
			errs = append(errs, changeError(i, sc, err))
			continue
		}
		if skew := lengthSkew(table, sc); skew != "" {
			// E207
			errs = append(errs, ValidationError{
				Field:   "changes",
				Message: fmt.Sprintf("%s: %s", sc, skew),
				Code:    ErrCategoryLengthSkew,
				Rule:    i,
			})
		}
	}

	return errs
}

// HasErrors reports whether errs contains anything other than warnings.
func HasErrors(errs []ValidationError) bool {
	for _, e := range errs {
		if !e.IsWarning() {
			return true
		}
	}
	return false
}

func validateReplaces(field string, list []ir.Replace) []ValidationError {
	var errs []ValidationError
	for i, r := range list {
		if _, err := CompileReplace(r); err != nil {
			// E201
			var ce *CompileError
			msg := err.Error()
			if errors.As(err, &ce) {
				msg = ce.Message
			}
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("pattern %q: %s", r.Pattern, msg),
				Code:    ErrReplacePattern,
				Rule:    i,
			})
		}
	}
	return errs
}

func changeError(i int, sc ir.SoundChange, err error) ValidationError {
	code := ErrChangePattern
	switch CodeOf(err) {
	case ErrCodeInvalidEnvironment:
		code = ErrChangeEnvironment // E204
	case ErrCodeInvalidTarget:
		code = ErrChangeTarget // E205
	}
	msg := err.Error()
	var ce *CompileError
	if errors.As(err, &ce) {
		msg = ce.Message
	}
	return ValidationError{
		Field:   "changes",
		Message: fmt.Sprintf("%s: %s", sc, msg),
		Code:    code,
		Rule:    i,
	}
}

// lengthSkew describes correlated categories of unequal length, whose
// trailing graphemes are silently dropped by correlated expansion.
func lengthSkew(table *CategoryTable, sc ir.SoundChange) string {
	if !table.References(sc.Replacement) {
		return ""
	}
	lo, hi := -1, -1
	for _, r := range sc.Target + sc.Replacement {
		g, ok := table.Graphemes(r)
		if !ok {
			continue
		}
		if lo < 0 || len(g) < lo {
			lo = len(g)
		}
		if len(g) > hi {
			hi = len(g)
		}
	}
	if lo == hi {
		return ""
	}
	return fmt.Sprintf("correlated categories range from %d to %d graphemes; only %d pairs apply", lo, hi, lo)
}
