// Package testutil provides fixture builders shared by package tests.
package testutil

import (
	"testing"

	"github.com/roach88/babel/internal/ir"
)

// FixedProjectID is the project identity used by every fixture so that
// digests and golden files are stable across runs.
const FixedProjectID = "0190a5c4-0000-7000-8000-000000000001"

// ProjectBuilder assembles a project for tests.
type ProjectBuilder struct {
	t       testing.TB
	project *ir.Project
}

// NewProject starts a project with FixedProjectID and the standard parts of
// speech (noun, verb, adjective).
func NewProject(t testing.TB) *ProjectBuilder {
	t.Helper()
	p := &ir.Project{ID: FixedProjectID, Version: ir.FormatVersion}
	p.PartsOfSpeech.Append(ir.PartOfSpeech{Name: "noun", Abbr: "n"})
	p.PartsOfSpeech.Append(ir.PartOfSpeech{Name: "verb", Abbr: "v"})
	p.PartsOfSpeech.Append(ir.PartOfSpeech{Name: "adjective", Abbr: "adj"})
	return &ProjectBuilder{t: t, project: p}
}

// Language appends a language and returns a builder for it.
func (b *ProjectBuilder) Language(name string) *LanguageBuilder {
	idx := b.project.Languages.Append(ir.NewLanguage(name))
	return &LanguageBuilder{parent: b, idx: idx}
}

// Build returns the project.
func (b *ProjectBuilder) Build() *ir.Project {
	return b.project
}

// LanguageBuilder edits one language of a ProjectBuilder.
type LanguageBuilder struct {
	parent *ProjectBuilder
	idx    int
}

// Index returns the language index.
func (l *LanguageBuilder) Index() int { return l.idx }

func (l *LanguageBuilder) lang() *ir.Language {
	l.parent.t.Helper()
	lang, err := l.parent.project.Language(l.idx)
	if err != nil {
		l.parent.t.Fatalf("fixture language %d: %v", l.idx, err)
	}
	return lang
}

// Category declares a sound-change category.
func (l *LanguageBuilder) Category(key rune, content string) *LanguageBuilder {
	l.lang().SoundChanges.SetCategory(key, content)
	return l
}

// Change appends a sound change "target > replacement / env".
func (l *LanguageBuilder) Change(target, replacement, env string) *LanguageBuilder {
	lang := l.lang()
	lang.SoundChanges.Changes = append(lang.SoundChanges.Changes,
		ir.SoundChange{Target: target, Replacement: replacement, Environment: env})
	return l
}

// Surface appends a mnemonic-to-surface rule.
func (l *LanguageBuilder) Surface(pattern, replacement string) *LanguageBuilder {
	lang := l.lang()
	lang.Surface = append(lang.Surface, ir.Replace{Pattern: pattern, Replacement: replacement})
	return l
}

// Phonetic appends a mnemonic-to-phonetic rule.
func (l *LanguageBuilder) Phonetic(pattern, replacement string) *LanguageBuilder {
	lang := l.lang()
	lang.Phonetic = append(lang.Phonetic, ir.Replace{Pattern: pattern, Replacement: replacement})
	return l
}

// Word appends a word as stored, without computing its forms.
func (l *LanguageBuilder) Word(mnemonic, gloss string, ancestors ...ir.Coordinate) *LanguageBuilder {
	w := ir.NewWord(mnemonic, gloss, 0, "")
	w.Surface = mnemonic
	w.Phonetic = mnemonic
	w.Ancestors = append(w.Ancestors, ancestors...)
	l.lang().Vocabulary.Append(w)
	return l
}

// Tombstone appends an empty slot.
func (l *LanguageBuilder) Tombstone() *LanguageBuilder {
	lang := l.lang()
	idx := lang.Vocabulary.Append(ir.Word{})
	if err := lang.Vocabulary.Remove(idx); err != nil {
		l.parent.t.Fatalf("fixture tombstone: %v", err)
	}
	return l
}

// Ancestor sets the ancestor pointer.
func (l *LanguageBuilder) Ancestor(idx int) *LanguageBuilder {
	l.lang().Ancestor = &idx
	return l
}

// Done returns to the project builder.
func (l *LanguageBuilder) Done() *ProjectBuilder {
	return l.parent
}

// At builds a coordinate.
func At(language, word int) ir.Coordinate {
	return ir.Coordinate{Language: language, Word: word}
}
