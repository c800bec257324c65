package ir

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Project is the whole in-memory state: languages with their vocabularies and
// rules, plus the shared parts-of-speech table.
type Project struct {
	ID            string              `json:"id" yaml:"id"`
	Version       string              `json:"version" yaml:"version"`
	Languages     Slots[Language]     `json:"languages" yaml:"languages"`
	PartsOfSpeech Slots[PartOfSpeech] `json:"parts_of_speech" yaml:"parts_of_speech"`
}

// NewProject creates an empty project with a fresh UUIDv7 identity.
func NewProject() *Project {
	return &Project{
		ID:      uuid.Must(uuid.NewV7()).String(),
		Version: FormatVersion,
	}
}

// PartOfSpeech is a named word class with its abbreviation.
type PartOfSpeech struct {
	Name string `json:"name" yaml:"name"`
	Abbr string `json:"abbr" yaml:"abbr"`
}

// Language is a node in the derivation graph.
//
// Ancestor is nil for a root language. It must differ from the language's
// own index, but nothing prevents multi-step cycles from being authored.
type Language struct {
	Name         string         `json:"name" yaml:"name"`
	Ancestor     *int           `json:"ancestor,omitempty" yaml:"ancestor,omitempty"`
	Vocabulary   Slots[Word]    `json:"vocabulary" yaml:"vocabulary"`
	Surface      []Replace      `json:"surface" yaml:"surface"`
	Phonetic     []Replace      `json:"phonetic" yaml:"phonetic"`
	SoundChanges SoundChangeSet `json:"sound_changes" yaml:"sound_changes"`
}

// NewLanguage returns a root language with no vocabulary or rules.
func NewLanguage(name string) Language {
	return Language{
		Name:         name,
		Surface:      []Replace{},
		Phonetic:     []Replace{},
		SoundChanges: SoundChangeSet{Categories: map[string]string{}, Changes: []SoundChange{}},
	}
}

// RuleKind selects one of a language's plain replace lists.
type RuleKind string

const (
	// SurfaceRules turn a mnemonic into the surface spelling.
	SurfaceRules RuleKind = "surface"

	// PhoneticRules turn a mnemonic into the phonetic transcription.
	PhoneticRules RuleKind = "phonetic"
)

// Replaces returns a pointer to the replace list selected by kind.
func (l *Language) Replaces(kind RuleKind) (*[]Replace, error) {
	switch kind {
	case SurfaceRules:
		return &l.Surface, nil
	case PhoneticRules:
		return &l.Phonetic, nil
	default:
		return nil, fmt.Errorf("unknown rule kind %q", kind)
	}
}

// Coordinate is a weak (language, word) reference used for lineage lookups.
// It may dangle once the referenced word is removed.
type Coordinate struct {
	Language int `json:"language" yaml:"language"`
	Word     int `json:"word" yaml:"word"`
}

// String renders the coordinate as "language:word".
func (c Coordinate) String() string {
	return fmt.Sprintf("%d:%d", c.Language, c.Word)
}

// ParseCoordinate parses the "language:word" form produced by String.
func ParseCoordinate(s string) (Coordinate, error) {
	lang, word, ok := strings.Cut(s, ":")
	if !ok {
		return Coordinate{}, fmt.Errorf("invalid coordinate %q: want language:word", s)
	}
	l, err := strconv.Atoi(lang)
	if err != nil || l < 0 {
		return Coordinate{}, fmt.Errorf("invalid coordinate %q: bad language index", s)
	}
	w, err := strconv.Atoi(word)
	if err != nil || w < 0 {
		return Coordinate{}, fmt.Errorf("invalid coordinate %q: bad word index", s)
	}
	return Coordinate{Language: l, Word: w}, nil
}

// Word is one vocabulary entry.
//
// Mnemonic, Gloss, PartOfSpeech and Note are authored. Surface and Phonetic
// are computed from Mnemonic by the language's pipelines.
type Word struct {
	Surface      string       `json:"surface" yaml:"surface"`
	Gloss        string       `json:"gloss" yaml:"gloss"`
	PartOfSpeech int          `json:"part_of_speech" yaml:"part_of_speech"`
	Phonetic     string       `json:"phonetic" yaml:"phonetic"`
	Mnemonic     string       `json:"mnemonic" yaml:"mnemonic"`
	Note         string       `json:"note" yaml:"note"`
	Ancestors    []Coordinate `json:"ancestors" yaml:"ancestors"`
}

// NewWord builds an original coinage with no computed fields.
func NewWord(mnemonic, gloss string, pos int, note string) Word {
	return Word{
		Gloss:        gloss,
		PartOfSpeech: pos,
		Mnemonic:     mnemonic,
		Note:         note,
		Ancestors:    []Coordinate{},
	}
}

// IsCoinage reports whether the word has no ancestors.
func (w *Word) IsCoinage() bool { return len(w.Ancestors) == 0 }

// InheritsFrom reports whether the word has exactly one ancestor coordinate
// and it points into the given language. Only such words are refreshed by
// derivation.
func (w *Word) InheritsFrom(language int) bool {
	return len(w.Ancestors) == 1 && w.Ancestors[0].Language == language
}

// IsBlend reports whether the word has more than one ancestor.
func (w *Word) IsBlend() bool { return len(w.Ancestors) > 1 }

// Fuse overwrites the computed fields (surface, phonetic, mnemonic) with
// those of derived. Gloss, part of speech, note and ancestors are kept.
func (w *Word) Fuse(derived Word) {
	w.Surface = derived.Surface
	w.Phonetic = derived.Phonetic
	w.Mnemonic = derived.Mnemonic
}

// Replace is a plain pattern/replacement pair. Replacement may use $1-style
// references to pattern groups.
type Replace struct {
	Pattern     string `json:"pattern" yaml:"pattern"`
	Replacement string `json:"replacement" yaml:"replacement"`
}

// SoundChange declares target → replacement / environment.
//
// Environment has the form "before_after"; either side may be empty.
type SoundChange struct {
	Target      string `json:"target" yaml:"target"`
	Replacement string `json:"replacement" yaml:"replacement"`
	Environment string `json:"environment" yaml:"environment"`
}

// String renders the rule in the conventional "target > replacement / env" form.
func (sc SoundChange) String() string {
	return fmt.Sprintf("%s > %s / %s", sc.Target, sc.Replacement, sc.Environment)
}

// SoundChangeSet holds a category table and the ordered sound-change rules
// that reference it. Category keys are single-character strings.
type SoundChangeSet struct {
	Categories map[string]string `json:"categories" yaml:"categories"`
	Changes    []SoundChange     `json:"changes" yaml:"changes"`
}

// SetCategory stores or overwrites the category for key.
func (s *SoundChangeSet) SetCategory(key rune, content string) {
	if s.Categories == nil {
		s.Categories = make(map[string]string)
	}
	s.Categories[string(key)] = content
}

// RemoveCategory deletes the category for key. Missing keys are reported as
// INVALID_ELEMENT.
func (s *SoundChangeSet) RemoveCategory(key rune) error {
	if _, ok := s.Categories[string(key)]; !ok {
		return &LookupError{Code: ErrCodeInvalidElement, Index: int(key), Collection: "category"}
	}
	delete(s.Categories, string(key))
	return nil
}

// CategoryKeys returns the category keys in ascending rune order.
func (s *SoundChangeSet) CategoryKeys() []rune {
	keys := make([]rune, 0, len(s.Categories))
	for k := range s.Categories {
		r, size := utf8.DecodeRuneInString(k)
		if size == len(k) && r != utf8.RuneError {
			keys = append(keys, r)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
