package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphemes(t *testing.T) {
	assert.Equal(t, []string{"p", "t", "k"}, Graphemes("ptk"))
	assert.Equal(t, []string{"n\u0303", "a"}, Graphemes("n\u0303a"))
	assert.Equal(t, []string{"ʃ", "ʒ"}, Graphemes("ʃʒ"))
	assert.Empty(t, Graphemes(""))
}

func TestCategoryTableAddOverwrites(t *testing.T) {
	table := NewCategoryTable()
	table.Add('C', "ptk")
	table.Add('C', "bdg")

	g, ok := table.Graphemes('C')
	require.True(t, ok)
	assert.Equal(t, []string{"b", "d", "g"}, g)
	assert.Equal(t, []rune{'C'}, table.Keys())
}

func TestCategoryTableFrom(t *testing.T) {
	table, err := CategoryTableFrom(map[string]string{"V": "aeiou", "C": "ptk"})
	require.NoError(t, err)
	assert.Equal(t, []rune{'C', 'V'}, table.Keys())
	assert.True(t, table.References("CV"))
	assert.False(t, table.References("xyz"))

	_, err = CategoryTableFrom(map[string]string{"": "a"})
	assert.Equal(t, ErrCodeCategory, CodeOf(err))
}

func TestClassOf(t *testing.T) {
	assert.Equal(t, "[ptk]", classOf([]string{"p", "t", "k"}))
	assert.Equal(t, `[\^a]`, classOf([]string{"^", "a"}))
	assert.Equal(t, `(?:ts|\.)`, classOf([]string{"ts", "."}))
	assert.Equal(t, neverMatch, classOf(nil))
}
