package compiler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/roach88/babel/internal/ir"
)

const (
	// BeforeGroup and AfterGroup name the environment captures that every
	// compiled pattern reinserts around the replacement.
	BeforeGroup = "pre"
	AfterGroup  = "post"

	// EnvironmentSeparator splits an environment into before and after.
	EnvironmentSeparator = "_"

	// BoundaryMarker anchors an environment to a word edge when it leads
	// "before" or trails "after".
	BoundaryMarker = '#'
)

// RuleCompiler compiles sound changes against a fixed category table.
type RuleCompiler struct {
	table *CategoryTable
}

// NewRuleCompiler returns a compiler bound to table. A nil table behaves as
// an empty one.
func NewRuleCompiler(table *CategoryTable) *RuleCompiler {
	if table == nil {
		table = NewCategoryTable()
	}
	return &RuleCompiler{table: table}
}

// ForSoundChanges builds a compiler from the categories of set.
func ForSoundChanges(set ir.SoundChangeSet) (*RuleCompiler, error) {
	table, err := TableFor(set)
	if err != nil {
		return nil, err
	}
	return NewRuleCompiler(table), nil
}

// Table returns the bound category table.
func (c *RuleCompiler) Table() *CategoryTable {
	return c.table
}

// Compile turns one sound change into its substitutions.
//
// A replacement that references no category yields exactly one
// substitution; an empty target inserts the replacement wherever the
// environment matches. Otherwise the rule is correlated: one substitution is emitted
// per position index up to the shortest referenced category on either side.
func (c *RuleCompiler) Compile(rule ir.SoundChange) ([]Substitution, error) {
	source := rule.String()
	before, after, err := c.environment(rule.Environment, source)
	if err != nil {
		return nil, err
	}

	if !c.table.References(rule.Replacement) {
		pattern := before + "(?:" + c.table.expandClasses(rule.Target) + ")" + after
		sub, err := NewSubstitution(pattern, template(escapeTemplate(rule.Replacement)), source)
		if err != nil {
			return nil, err
		}
		return []Substitution{sub}, nil
	}

	minTarget, ok := c.table.minLength(rule.Target)
	if !ok {
		return nil, newCompileError(ErrCodeInvalidTarget, "target", source,
			fmt.Sprintf("replacement %q references a category but target %q does not", rule.Replacement, rule.Target))
	}
	minReplacement, _ := c.table.minLength(rule.Replacement)
	n := min(minTarget, minReplacement)

	subs := make([]Substitution, 0, n)
	for idx := range n {
		target := c.table.resolveAt(rule.Target, idx, regexp.QuoteMeta)
		replacement := c.table.resolveAt(rule.Replacement, idx, escapeTemplate)
		sub, err := NewSubstitution(before+"(?:"+target+")"+after, template(replacement), source)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// CompileAll compiles rules in order and concatenates the results, so the
// substitutions of one correlated rule stay adjacent.
func (c *RuleCompiler) CompileAll(rules []ir.SoundChange) ([]Substitution, error) {
	var all []Substitution
	for i, rule := range rules {
		subs, err := c.Compile(rule)
		if err != nil {
			return nil, atIndex(err, i)
		}
		all = append(all, subs...)
	}
	return all, nil
}

// CompileSoundChanges compiles every rule of set against its own categories.
func CompileSoundChanges(set ir.SoundChangeSet) ([]Substitution, error) {
	c, err := ForSoundChanges(set)
	if err != nil {
		return nil, err
	}
	return c.CompileAll(set.Changes)
}

// environment splits env and returns the capturing before and after groups.
func (c *RuleCompiler) environment(env, source string) (string, string, error) {
	parts := strings.Split(env, EnvironmentSeparator)
	if len(parts) != 2 {
		return "", "", newCompileError(ErrCodeInvalidEnvironment, "environment", source,
			fmt.Sprintf("environment %q must contain exactly one %q", env, EnvironmentSeparator))
	}
	before, after := parts[0], parts[1]

	var anchorStart, anchorEnd bool
	if !c.table.Has(BoundaryMarker) {
		if rest, ok := strings.CutPrefix(before, string(BoundaryMarker)); ok {
			before, anchorStart = rest, true
		}
		if rest, ok := strings.CutSuffix(after, string(BoundaryMarker)); ok {
			after, anchorEnd = rest, true
		}
	}

	b := "(?P<" + BeforeGroup + ">" + c.table.expandClasses(before) + ")"
	if anchorStart {
		b = "^" + b
	}
	a := "(?P<" + AfterGroup + ">" + c.table.expandClasses(after) + ")"
	if anchorEnd {
		a += "$"
	}
	return b, a, nil
}

// template reinserts the named environment captures around replacement.
func template(replacement string) string {
	return "${" + BeforeGroup + "}" + replacement + "${" + AfterGroup + "}"
}

// escapeTemplate makes s literal inside a replacement template.
func escapeTemplate(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}
