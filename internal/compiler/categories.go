package compiler

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/roach88/babel/internal/ir"
)

// neverMatch is a valid class that matches nothing; used for empty categories.
const neverMatch = `[^\x00-\x{10FFFF}]`

// CategoryTable maps a single-character variable to the ordered graphemes it
// stands for. A grapheme is a user-perceived character: a base letter with
// its combining marks is one unit regardless of its byte length.
type CategoryTable struct {
	entries map[rune][]string
}

// NewCategoryTable returns an empty table.
func NewCategoryTable() *CategoryTable {
	return &CategoryTable{entries: make(map[rune][]string)}
}

// CategoryTableFrom builds a table from a persisted category map.
// Keys must be exactly one character.
func CategoryTableFrom(categories map[string]string) (*CategoryTable, error) {
	t := NewCategoryTable()
	for key, content := range categories {
		r, size := utf8.DecodeRuneInString(key)
		if r == utf8.RuneError || size != len(key) {
			return nil, newCompileError(ErrCodeCategory, "categories", key,
				fmt.Sprintf("category key %q must be a single character", key))
		}
		t.Add(r, content)
	}
	return t, nil
}

// Add stores or overwrites the category for key.
func (t *CategoryTable) Add(key rune, content string) {
	t.entries[key] = Graphemes(content)
}

// Graphemes returns the ordered graphemes of the category for key.
func (t *CategoryTable) Graphemes(key rune) ([]string, bool) {
	g, ok := t.entries[key]
	return g, ok
}

// Has reports whether key is a declared category variable.
func (t *CategoryTable) Has(key rune) bool {
	_, ok := t.entries[key]
	return ok
}

// Keys returns the declared variables in ascending order.
func (t *CategoryTable) Keys() []rune {
	keys := make([]rune, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// References reports whether text mentions any category variable.
func (t *CategoryTable) References(text string) bool {
	for _, r := range text {
		if t.Has(r) {
			return true
		}
	}
	return false
}

// minLength returns the shortest grapheme count among categories referenced
// in text. ok is false when text references none.
func (t *CategoryTable) minLength(text string) (n int, ok bool) {
	for _, r := range text {
		g, has := t.entries[r]
		if !has {
			continue
		}
		if !ok || len(g) < n {
			n = len(g)
			ok = true
		}
	}
	return n, ok
}

// expandClasses replaces every variable in a pattern fragment with a class
// matching any of its graphemes. Substitution is a single pass, so grapheme
// text is never re-expanded.
func (t *CategoryTable) expandClasses(fragment string) string {
	var b strings.Builder
	for _, r := range fragment {
		if g, ok := t.entries[r]; ok {
			b.WriteString(classOf(g))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// resolveAt replaces every variable in text with its grapheme at idx,
// passing the grapheme through quote. Other text is copied as is.
func (t *CategoryTable) resolveAt(text string, idx int, quote func(string) string) string {
	var b strings.Builder
	for _, r := range text {
		if g, ok := t.entries[r]; ok {
			b.WriteString(quote(g[idx]))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// classOf builds a bracketed character class when every grapheme is one
// rune, and a non-capturing alternation otherwise.
func classOf(graphemes []string) string {
	if len(graphemes) == 0 {
		return neverMatch
	}
	single := true
	for _, g := range graphemes {
		if utf8.RuneCountInString(g) != 1 {
			single = false
			break
		}
	}
	if single {
		var b strings.Builder
		b.WriteByte('[')
		for _, g := range graphemes {
			if strings.ContainsAny(g, `\]^-[`) {
				b.WriteByte('\\')
			}
			b.WriteString(g)
		}
		b.WriteByte(']')
		return b.String()
	}
	quoted := make([]string, len(graphemes))
	for i, g := range graphemes {
		quoted[i] = regexp.QuoteMeta(g)
	}
	return "(?:" + strings.Join(quoted, "|") + ")"
}

// Graphemes splits s into extended grapheme clusters.
func Graphemes(s string) []string {
	out := []string{}
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		out = append(out, gr.Str())
	}
	return out
}

// TableFor builds the category table of a sound-change set.
func TableFor(set ir.SoundChangeSet) (*CategoryTable, error) {
	return CategoryTableFrom(set.Categories)
}
