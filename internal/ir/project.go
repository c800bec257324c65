package ir

import (
	"fmt"
	"strconv"
)

// Language returns the live language at idx.
func (p *Project) Language(idx int) (*Language, error) {
	lang, err := p.Languages.At(idx)
	return lang, withCollection(err, "language")
}

// PartOfSpeech returns the live part of speech at idx.
func (p *Project) PartOfSpeech(idx int) (*PartOfSpeech, error) {
	pos, err := p.PartsOfSpeech.At(idx)
	return pos, withCollection(err, "part of speech")
}

// PartOfSpeechByAbbr returns the index of the first live part of speech with
// the given abbreviation.
func (p *Project) PartOfSpeechByAbbr(abbr string) (int, bool) {
	for i, pos := range p.PartsOfSpeech.All() {
		if pos.Abbr == abbr {
			return i, true
		}
	}
	return 0, false
}

// Word returns the live word at idx in the language's vocabulary.
func (l *Language) Word(idx int) (*Word, error) {
	w, err := l.Vocabulary.At(idx)
	return w, withCollection(err, "word")
}

// LanguageByName returns the index of the first live language called name.
func (p *Project) LanguageByName(name string) (int, bool) {
	for i, lang := range p.Languages.All() {
		if lang.Name == name {
			return i, true
		}
	}
	return 0, false
}

// LookupLanguage resolves ref, either a language index or a language name,
// to the index of a live language.
func (p *Project) LookupLanguage(ref string) (int, error) {
	if idx, err := strconv.Atoi(ref); err == nil {
		if _, err := p.Language(idx); err != nil {
			return 0, err
		}
		return idx, nil
	}
	if idx, ok := p.LanguageByName(ref); ok {
		return idx, nil
	}
	return 0, fmt.Errorf("unknown language %q", ref)
}
