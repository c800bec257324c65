package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/babel/internal/ir"
)

const protoRulebook = `
language: Proto: {
	categories: {C: "ptk", B: "bdg", V: "aeiou"}
	surface: [{pattern: "kh", replace: "x"}]
	phonetic: [{pattern: "y", replace: "j"}]
	changes: [
		{target: "C", replace: "B", env: "V_V"},
		{target: "h", replace: "", env: "_#"},
		{target: "e", replace: "i"},
	]
}
`

func TestCompileRulebook(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(protoRulebook)
	require.NoError(t, v.Err())

	rb, err := CompileRulebook(v.LookupPath(cue.ParsePath("language.Proto")))
	require.NoError(t, err)

	assert.Equal(t, "Proto", rb.Name)
	assert.Equal(t, map[string]string{"C": "ptk", "B": "bdg", "V": "aeiou"}, rb.Categories)
	assert.Equal(t, []ir.Replace{{Pattern: "kh", Replacement: "x"}}, rb.Surface)
	assert.Equal(t, []ir.Replace{{Pattern: "y", Replacement: "j"}}, rb.Phonetic)
	require.Len(t, rb.Changes, 3)
	assert.Equal(t, ir.SoundChange{Target: "C", Replacement: "B", Environment: "V_V"}, rb.Changes[0])
	assert.Equal(t, "_", rb.Changes[2].Environment, "missing env defaults to anywhere")
}

func TestCompileRulebookQuotedName(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`language: "Old Tongue": { changes: [{target: "a", replace: "o"}] }`)
	require.NoError(t, v.Err())

	books, err := CompileRulebooks(v)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Old Tongue", books[0].Name)
}

func TestCompileRulebookRejectsBadRule(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		language: Proto: {
			categories: {B: "bdg"}
			changes: [{target: "x", replace: "B", env: "_"}]
		}
	`)
	require.NoError(t, v.Err())

	_, err := CompileRulebooks(v)
	require.Error(t, err)
	assert.True(t, IsInvalidTarget(err))
	assert.Contains(t, err.Error(), "language.Proto")
}

func TestCompileRulebookMissingTarget(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`language: Proto: { changes: [{replace: "o"}] }`)
	require.NoError(t, v.Err())

	_, err := CompileRulebook(v.LookupPath(cue.ParsePath("language.Proto")))
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeCUE, ce.Code)
	assert.Equal(t, "changes[0].target", ce.Field)
}

func TestCompileRulebooksRequiresLanguage(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`other: 1`)

	_, err := CompileRulebooks(v)
	require.Error(t, err)
	assert.Equal(t, ErrCodeCUE, CodeOf(err))
}

func TestLoadRulebookFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.cue")
	require.NoError(t, os.WriteFile(path, []byte(protoRulebook), 0o644))

	books, err := LoadRulebookFile(path)
	require.NoError(t, err)
	require.Len(t, books, 1)

	lang := ir.NewLanguage("Daughter")
	books[0].ApplyTo(&lang)
	assert.Len(t, lang.Surface, 1)
	assert.Len(t, lang.Phonetic, 1)
	assert.Len(t, lang.SoundChanges.Changes, 3)
	assert.Equal(t, "ptk", lang.SoundChanges.Categories["C"])
}

func TestLoadRulebookFileSyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.cue")
	require.NoError(t, os.WriteFile(path, []byte("language: {\n"), 0o644))

	_, err := LoadRulebookFile(path)
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeCUE, ce.Code)
	assert.True(t, ce.Pos.IsValid())
}
