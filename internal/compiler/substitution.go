package compiler

import (
	"regexp"

	"github.com/roach88/babel/internal/ir"
)

// Substitution is one compiled pattern plus its replacement template.
//
// Source is the human-readable rule the substitution came from; it is
// reported when a substitution fails to converge.
type Substitution struct {
	Pattern     *regexp.Regexp
	Replacement string
	Source      string
}

// NewSubstitution compiles pattern. An invalid expression is a PATTERN_ERROR
// naming source.
func NewSubstitution(pattern, replacement, source string) (Substitution, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Substitution{}, &CompileError{
			Code:    ErrCodePattern,
			Field:   "pattern",
			Rule:    source,
			Index:   -1,
			Message: err.Error(),
			Err:     err,
		}
	}
	return Substitution{Pattern: re, Replacement: replacement, Source: source}, nil
}

// Apply performs one non-overlapping replace-all pass over s.
func (s Substitution) Apply(in string) string {
	return s.Pattern.ReplaceAllString(in, s.Replacement)
}

// String returns the compiled pattern and template.
func (s Substitution) String() string {
	return s.Pattern.String() + " => " + s.Replacement
}

// CompileReplace compiles a plain pattern/replacement pair.
func CompileReplace(r ir.Replace) (Substitution, error) {
	return NewSubstitution(r.Pattern, r.Replacement, r.Pattern+" => "+r.Replacement)
}

// CompileReplaces compiles a replace list in order.
func CompileReplaces(list []ir.Replace) ([]Substitution, error) {
	subs := make([]Substitution, 0, len(list))
	for i, r := range list {
		sub, err := CompileReplace(r)
		if err != nil {
			return nil, atIndex(err, i)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}
