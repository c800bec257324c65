package compiler

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"

	"github.com/roach88/babel/internal/ir"
)

// Rulebook is the rule set of one language as declared in CUE.
//
//	language: Proto: {
//		categories: {C: "ptk", B: "bdg", V: "aeiou"}
//		surface: [{pattern: "kh", replace: "x"}]
//		phonetic: [{pattern: "y", replace: "j"}]
//		changes: [{target: "C", replace: "B", env: "V_V"}]
//	}
type Rulebook struct {
	Name       string
	Categories map[string]string
	Surface    []ir.Replace
	Phonetic   []ir.Replace
	Changes    []ir.SoundChange
}

// CompileRulebook parses a CUE value into a Rulebook.
// The value should be the language struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`language: Proto: { ... }`)
//	rb, err := CompileRulebook(v.LookupPath(cue.ParsePath("language.Proto")))
//
// Every rule is compiled against the declared categories, so a returned
// Rulebook is known to be well formed.
func CompileRulebook(v cue.Value) (*Rulebook, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	rb := &Rulebook{Categories: make(map[string]string)}
	if labels := v.Path().Selectors(); len(labels) > 0 {
		rb.Name = strings.Trim(labels[len(labels)-1].String(), `"`)
	}

	if catVal := v.LookupPath(cue.ParsePath("categories")); catVal.Exists() {
		iter, err := catVal.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			content, err := iter.Value().String()
			if err != nil {
				return nil, &CompileError{
					Code:    ErrCodeCUE,
					Field:   "categories." + iter.Label(),
					Index:   -1,
					Message: "category content must be a string",
					Pos:     iter.Value().Pos(),
				}
			}
			rb.Categories[iter.Label()] = content
		}
	}

	var err error
	if rb.Surface, err = parseReplaces(v, "surface"); err != nil {
		return nil, err
	}
	if rb.Phonetic, err = parseReplaces(v, "phonetic"); err != nil {
		return nil, err
	}
	if rb.Changes, err = parseChanges(v); err != nil {
		return nil, err
	}

	if err := rb.check(); err != nil {
		return nil, err
	}
	return rb, nil
}

// CompileRulebooks compiles every language under the top-level "language"
// field, sorted by name.
func CompileRulebooks(v cue.Value) ([]*Rulebook, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	langVal := v.LookupPath(cue.ParsePath("language"))
	if !langVal.Exists() {
		return nil, &CompileError{
			Code:    ErrCodeCUE,
			Field:   "language",
			Index:   -1,
			Message: "no language declared",
			Pos:     v.Pos(),
		}
	}
	iter, err := langVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var books []*Rulebook
	for iter.Next() {
		rb, err := CompileRulebook(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("language.%s: %w", iter.Label(), err)
		}
		books = append(books, rb)
	}
	sort.Slice(books, func(i, j int) bool { return books[i].Name < books[j].Name })
	return books, nil
}

// LoadRulebookFile reads and compiles a CUE rulebook file.
func LoadRulebookFile(path string) ([]*Rulebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rulebook: %w", err)
	}
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	return CompileRulebooks(v)
}

// ApplyTo replaces lang's rules with the rulebook's.
func (rb *Rulebook) ApplyTo(lang *ir.Language) {
	lang.Surface = append([]ir.Replace(nil), rb.Surface...)
	lang.Phonetic = append([]ir.Replace(nil), rb.Phonetic...)
	lang.SoundChanges = ir.SoundChangeSet{
		Categories: make(map[string]string, len(rb.Categories)),
		Changes:    append([]ir.SoundChange(nil), rb.Changes...),
	}
	for k, v := range rb.Categories {
		lang.SoundChanges.Categories[k] = v
	}
}

func (rb *Rulebook) check() error {
	if _, err := CompileReplaces(rb.Surface); err != nil {
		return fmt.Errorf("surface: %w", err)
	}
	if _, err := CompileReplaces(rb.Phonetic); err != nil {
		return fmt.Errorf("phonetic: %w", err)
	}
	set := ir.SoundChangeSet{Categories: rb.Categories, Changes: rb.Changes}
	if _, err := CompileSoundChanges(set); err != nil {
		return fmt.Errorf("changes: %w", err)
	}
	return nil
}

func parseReplaces(v cue.Value, field string) ([]ir.Replace, error) {
	listVal := v.LookupPath(cue.ParsePath(field))
	if !listVal.Exists() {
		return nil, nil
	}
	iter, err := listVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var out []ir.Replace
	for i := 0; iter.Next(); i++ {
		item := iter.Value()
		pattern, err := requireString(item, "pattern", fmt.Sprintf("%s[%d].pattern", field, i))
		if err != nil {
			return nil, err
		}
		replace, err := optionalString(item, "replace", fmt.Sprintf("%s[%d].replace", field, i))
		if err != nil {
			return nil, err
		}
		out = append(out, ir.Replace{Pattern: pattern, Replacement: replace})
	}
	return out, nil
}

func parseChanges(v cue.Value) ([]ir.SoundChange, error) {
	listVal := v.LookupPath(cue.ParsePath("changes"))
	if !listVal.Exists() {
		return nil, nil
	}
	iter, err := listVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var out []ir.SoundChange
	for i := 0; iter.Next(); i++ {
		item := iter.Value()
		target, err := requireString(item, "target", fmt.Sprintf("changes[%d].target", i))
		if err != nil {
			return nil, err
		}
		replace, err := optionalString(item, "replace", fmt.Sprintf("changes[%d].replace", i))
		if err != nil {
			return nil, err
		}
		env, err := optionalString(item, "env", fmt.Sprintf("changes[%d].env", i))
		if err != nil {
			return nil, err
		}
		if env == "" {
			env = EnvironmentSeparator
		}
		out = append(out, ir.SoundChange{Target: target, Replacement: replace, Environment: env})
	}
	return out, nil
}

func requireString(v cue.Value, name, field string) (string, error) {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return "", &CompileError{Code: ErrCodeCUE, Field: field, Index: -1, Message: name + " is required", Pos: v.Pos()}
	}
	s, err := f.String()
	if err != nil {
		return "", &CompileError{Code: ErrCodeCUE, Field: field, Index: -1, Message: name + " must be a string", Pos: f.Pos()}
	}
	return s, nil
}

func optionalString(v cue.Value, name, field string) (string, error) {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return "", nil
	}
	s, err := f.String()
	if err != nil {
		return "", &CompileError{Code: ErrCodeCUE, Field: field, Index: -1, Message: name + " must be a string", Pos: f.Pos()}
	}
	return s, nil
}

// formatCUEError converts a CUE error to a CompileError with position info.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	positions := errors.Positions(first)
	if len(positions) > 0 {
		return &CompileError{
			Code:    ErrCodeCUE,
			Field:   "cue",
			Index:   -1,
			Message: first.Error(),
			Pos:     positions[0],
			Err:     err,
		}
	}

	return err
}
