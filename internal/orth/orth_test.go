package orth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpret(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`se\~n{o}rita`, "se\u00f1\u00f8rita"},
		{`\'e`, "\u00e9"},
		{`\"u ber`, "\u00fc ber"},
		{`\vs`, "\u0161"},
		{`{ae}sir`, "\u00e6sir"},
		{`{th}orn`, "\u00feorn"},
		{`\'{ae}`, "\u01fd"},
		{`plain`, "plain"},
		{`{xyz}`, "{xyz}"},
		{`\#a`, `\#a`},
		{`trailing\`, `trailing\`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Interpret(tt.in))
		})
	}
}

func TestInterpretComposesToNFC(t *testing.T) {
	got := Interpret(`\~n`)
	assert.Equal(t, "\u00f1", got)
	assert.Len(t, []rune(got), 1)
}

func TestTable(t *testing.T) {
	entries := Table()
	assert.Len(t, entries, len(diacritics)+len(combinations))
	assert.Equal(t, "command", entries[0].Kind)
	assert.Equal(t, "combination", entries[len(entries)-1].Kind)

	seen := map[string]string{}
	for _, e := range entries {
		seen[e.Sequence] = e.Glyph
	}
	assert.Equal(t, "\u00e3", seen[`\~a`])
	assert.Equal(t, "\u014b", seen["{ng}"])
}
