package ir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProject_HasUUID(t *testing.T) {
	p := NewProject()
	assert.Len(t, p.ID, 36)
	assert.Equal(t, FormatVersion, p.Version)
	assert.NotEqual(t, p.ID, NewProject().ID)
}

func TestParseCoordinate(t *testing.T) {
	c, err := ParseCoordinate("2:14")
	require.NoError(t, err)
	assert.Equal(t, Coordinate{Language: 2, Word: 14}, c)
	assert.Equal(t, "2:14", c.String())

	for _, bad := range []string{"", "2", "2:", ":3", "a:1", "1:-1", "1:2:3"} {
		_, err := ParseCoordinate(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestWord_LineageKinds(t *testing.T) {
	coinage := NewWord("kato", "cat", 0, "")
	assert.True(t, coinage.IsCoinage())
	assert.False(t, coinage.InheritsFrom(0))

	inherited := coinage
	inherited.Ancestors = []Coordinate{{Language: 0, Word: 2}}
	assert.True(t, inherited.InheritsFrom(0))
	assert.False(t, inherited.InheritsFrom(1))

	blend := coinage
	blend.Ancestors = []Coordinate{{Language: 0, Word: 2}, {Language: 0, Word: 3}}
	assert.True(t, blend.IsBlend())
	assert.False(t, blend.InheritsFrom(0))
}

func TestWord_FuseKeepsAuthoredFields(t *testing.T) {
	w := Word{
		Surface: "old", Phonetic: "old", Mnemonic: "old",
		Gloss: "dog", PartOfSpeech: 3, Note: "mine",
		Ancestors: []Coordinate{{Language: 0, Word: 1}},
	}
	derived := Word{
		Surface: "new-s", Phonetic: "new-p", Mnemonic: "new-m",
		Gloss: "other", PartOfSpeech: 9, Note: "theirs",
		Ancestors: []Coordinate{{Language: 5, Word: 5}},
	}

	w.Fuse(derived)

	assert.Equal(t, "new-s", w.Surface)
	assert.Equal(t, "new-p", w.Phonetic)
	assert.Equal(t, "new-m", w.Mnemonic)
	assert.Equal(t, "dog", w.Gloss)
	assert.Equal(t, 3, w.PartOfSpeech)
	assert.Equal(t, "mine", w.Note)
	assert.Equal(t, []Coordinate{{Language: 0, Word: 1}}, w.Ancestors)
}

func TestSoundChangeSet_Categories(t *testing.T) {
	var set SoundChangeSet
	set.SetCategory('V', "aeiou")
	set.SetCategory('C', "ptk")
	set.SetCategory('C', "ptkq")

	assert.Equal(t, []rune{'C', 'V'}, set.CategoryKeys())
	assert.Equal(t, "ptkq", set.Categories["C"])

	require.NoError(t, set.RemoveCategory('C'))
	assert.True(t, IsInvalidElement(set.RemoveCategory('C')))
}

func TestLanguage_Replaces(t *testing.T) {
	lang := NewLanguage("Proto")
	surface, err := lang.Replaces(SurfaceRules)
	require.NoError(t, err)
	ListAppend(surface, Replace{Pattern: "ng", Replacement: "ŋ"})
	assert.Len(t, lang.Surface, 1)
	assert.Empty(t, lang.Phonetic)

	_, err = lang.Replaces("bogus")
	assert.Error(t, err)
}

func TestProject_JSONRoundTripWithTombstones(t *testing.T) {
	p := NewProject()
	anc := 0
	proto := NewLanguage("Proto")
	proto.Vocabulary.Append(NewWord("kato", "cat", 0, ""))
	proto.Vocabulary.Append(NewWord("mira", "see", 1, "verb"))
	require.NoError(t, proto.Vocabulary.Remove(0))
	p.Languages.Append(proto)
	child := NewLanguage("Child")
	child.Ancestor = &anc
	p.Languages.Append(child)
	p.PartsOfSpeech.Append(PartOfSpeech{Name: "noun", Abbr: "n"})

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var back Project
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, p.ID, back.ID)

	lang, err := back.Language(0)
	require.NoError(t, err)
	assert.Nil(t, lang.Vocabulary.Slot(0))
	w, err := lang.Word(1)
	require.NoError(t, err)
	assert.Equal(t, "mira", w.Mnemonic)

	child2, err := back.Language(1)
	require.NoError(t, err)
	require.NotNil(t, child2.Ancestor)
	assert.Equal(t, 0, *child2.Ancestor)

	idx, ok := back.PartOfSpeechByAbbr("n")
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestProject_LookupErrorsNameCollection(t *testing.T) {
	p := NewProject()
	_, err := p.Language(3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "language")
	assert.True(t, IsIndexOutOfRange(err))
}

func TestProject_LookupLanguage(t *testing.T) {
	p := NewProject()
	p.Languages.Append(NewLanguage("Proto"))
	p.Languages.Append(NewLanguage("Daughter"))
	require.NoError(t, p.Languages.Remove(0))

	idx, err := p.LookupLanguage("Daughter")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	idx, err = p.LookupLanguage("1")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	_, err = p.LookupLanguage("0")
	assert.True(t, IsInvalidElement(err))

	_, err = p.LookupLanguage("Proto")
	assert.ErrorContains(t, err, `unknown language "Proto"`)
}
