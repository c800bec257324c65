package harness

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/babel/internal/ir"
	"github.com/roach88/babel/internal/store"
)

// wordFields maps the field names accepted by word assertions to accessors.
var wordFields = map[string]func(*ir.Word) string{
	"surface":  func(w *ir.Word) string { return w.Surface },
	"phonetic": func(w *ir.Word) string { return w.Phonetic },
	"mnemonic": func(w *ir.Word) string { return w.Mnemonic },
	"gloss":    func(w *ir.Word) string { return w.Gloss },
	"note":     func(w *ir.Word) string { return w.Note },
	"ancestors": func(w *ir.Word) string {
		coords := make([]string, len(w.Ancestors))
		for i, c := range w.Ancestors {
			coords[i] = c.String()
		}
		return strings.Join(coords, " ")
	},
}

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Language string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s (language %s)\n", e.Type, e.Language)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// AssertionContext provides what assertions read from.
type AssertionContext struct {
	Project *ir.Project
	Store   *store.Store
	Ctx     context.Context
}

// EvaluateAssertions checks every assertion and returns one message per
// failure, in assertion order.
func EvaluateAssertions(assertions []Assertion, actx *AssertionContext) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluateAssertion(a, actx); err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

func evaluateAssertion(a Assertion, actx *AssertionContext) error {
	lang, err := actx.Project.LookupLanguage(a.Language)
	if err != nil {
		return err
	}
	l, err := actx.Project.Language(lang)
	if err != nil {
		return err
	}

	switch a.Type {
	case AssertWord:
		return assertWord(l, a)
	case AssertWordCount:
		if n := l.Vocabulary.Live(); n != a.Count {
			return &AssertionError{
				Type:     a.Type,
				Language: a.Language,
				Expected: fmt.Sprintf("%d live words", a.Count),
				Actual:   fmt.Sprintf("%d live words", n),
			}
		}
	case AssertAncestor:
		return assertAncestor(actx.Project, l, a)
	case AssertLogged:
		if actx.Store == nil {
			return fmt.Errorf("derivations assertion requires a store")
		}
		recs, err := actx.Store.ReadDerivations(actx.Ctx, actx.Project.ID, lang)
		if err != nil {
			return fmt.Errorf("read derivations: %w", err)
		}
		if len(recs) != a.Count {
			return &AssertionError{
				Type:     a.Type,
				Language: a.Language,
				Expected: fmt.Sprintf("%d logged derivations", a.Count),
				Actual:   fmt.Sprintf("%d logged derivations", len(recs)),
			}
		}
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}

// assertWord compares the listed fields of one word (subset semantics).
// Fields are checked in name order so the first reported mismatch is stable.
func assertWord(l *ir.Language, a Assertion) error {
	w, err := l.Word(*a.Word)
	if err != nil {
		return &AssertionError{
			Type:     a.Type,
			Language: a.Language,
			Expected: fmt.Sprintf("live word %d", *a.Word),
			Actual:   err.Error(),
		}
	}

	fields := make([]string, 0, len(a.Expect))
	for f := range a.Expect {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, f := range fields {
		get, ok := wordFields[f]
		if !ok {
			return fmt.Errorf("unknown word field %q", f)
		}
		if got := get(w); got != a.Expect[f] {
			return &AssertionError{
				Type:     a.Type,
				Language: a.Language,
				Expected: fmt.Sprintf("word %d %s = %q", *a.Word, f, a.Expect[f]),
				Actual:   fmt.Sprintf("word %d %s = %q", *a.Word, f, got),
			}
		}
	}
	return nil
}

func assertAncestor(p *ir.Project, l *ir.Language, a Assertion) error {
	want, err := p.LookupLanguage(a.Ancestor)
	if err != nil {
		return err
	}
	actual := "none"
	if l.Ancestor != nil {
		if *l.Ancestor == want {
			return nil
		}
		actual = fmt.Sprintf("language %d", *l.Ancestor)
	}
	return &AssertionError{
		Type:     a.Type,
		Language: a.Language,
		Expected: fmt.Sprintf("ancestor %s (language %d)", a.Ancestor, want),
		Actual:   actual,
	}
}
