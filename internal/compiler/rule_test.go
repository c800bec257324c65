package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/babel/internal/ir"
)

func tableOf(t *testing.T, cats map[string]string) *CategoryTable {
	t.Helper()
	table, err := CategoryTableFrom(cats)
	require.NoError(t, err)
	return table
}

func applyAll(subs []Substitution, in string) string {
	for _, s := range subs {
		in = s.Apply(in)
	}
	return in
}

func TestCompileLiteralReplacementYieldsOneSubstitution(t *testing.T) {
	rc := NewRuleCompiler(tableOf(t, map[string]string{"C": "ptk"}))

	subs, err := rc.Compile(ir.SoundChange{Target: "C", Replacement: "h", Environment: "_"})
	require.NoError(t, err)
	require.Len(t, subs, 1)

	assert.Equal(t, `(?P<pre>)(?:[ptk])(?P<post>)`, subs[0].Pattern.String())
	assert.Equal(t, "${pre}h${post}", subs[0].Replacement)
	assert.Equal(t, "C > h / _", subs[0].Source)
	assert.Equal(t, "ahaha", subs[0].Apply("apaka"))
}

func TestCompileCorrelatedVoicing(t *testing.T) {
	rc := NewRuleCompiler(tableOf(t, map[string]string{"C": "ptk", "V": "bdg"}))

	subs, err := rc.Compile(ir.SoundChange{Target: "C", Replacement: "V", Environment: "V_V"})
	require.NoError(t, err)
	require.Len(t, subs, 3)

	assert.Equal(t, `(?P<pre>[bdg])(?:p)(?P<post>[bdg])`, subs[0].Pattern.String())
	assert.Equal(t, "${pre}b${post}", subs[0].Replacement)
	assert.Equal(t, `(?P<pre>[bdg])(?:t)(?P<post>[bdg])`, subs[1].Pattern.String())
	assert.Equal(t, "${pre}d${post}", subs[1].Replacement)
	assert.Equal(t, `(?P<pre>[bdg])(?:k)(?P<post>[bdg])`, subs[2].Pattern.String())
	assert.Equal(t, "${pre}g${post}", subs[2].Replacement)

	assert.Equal(t, "bbd", subs[0].Apply("bpd"))
	assert.Equal(t, "bpd", subs[1].Apply("bpd"), "index 1 pairs t with d only")
}

func TestCompileCorrelatedBetweenVowels(t *testing.T) {
	rc := NewRuleCompiler(tableOf(t, map[string]string{"C": "ptk", "B": "bdg", "A": "aeiou"}))

	subs, err := rc.Compile(ir.SoundChange{Target: "C", Replacement: "B", Environment: "A_A"})
	require.NoError(t, err)
	require.Len(t, subs, 3)

	assert.Equal(t, "aba", subs[0].Apply("apa"))
	assert.Equal(t, "apa", subs[1].Apply("apa"))
	assert.Equal(t, "apa", subs[2].Apply("apa"))
	assert.Equal(t, "abada", applyAll(subs, "apata"))
	assert.Equal(t, "pat", applyAll(subs, "pat"), "edges are not between vowels")
}

func TestCompileCorrelatedCountIsShortestCategory(t *testing.T) {
	tests := []struct {
		name string
		cats map[string]string
		want int
	}{
		{"equal", map[string]string{"C": "ptk", "B": "bdg"}, 3},
		{"shorter replacement", map[string]string{"C": "ptk", "B": "bd"}, 2},
		{"shorter target", map[string]string{"C": "p", "B": "bdg"}, 1},
		{"empty category", map[string]string{"C": "ptk", "B": ""}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := NewRuleCompiler(tableOf(t, tt.cats))
			subs, err := rc.Compile(ir.SoundChange{Target: "C", Replacement: "B", Environment: "_"})
			require.NoError(t, err)
			assert.Len(t, subs, tt.want)
			for _, s := range subs {
				assert.False(t, strings.ContainsAny(s.Pattern.String()+s.Replacement, "CB"),
					"substitution %s still references a category", s)
			}
		})
	}
}

func TestCompileCorrelatedUsesMinimumPerSide(t *testing.T) {
	// Target side minimum is 2 (S), replacement side minimum is 3 (B).
	rc := NewRuleCompiler(tableOf(t, map[string]string{"C": "ptk", "S": "sz", "B": "bdg"}))

	subs, err := rc.Compile(ir.SoundChange{Target: "CS", Replacement: "B", Environment: "_"})
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, `(?P<pre>)(?:ps)(?P<post>)`, subs[0].Pattern.String())
	assert.Equal(t, `(?P<pre>)(?:tz)(?P<post>)`, subs[1].Pattern.String())
}

func TestCompileMultiRuneGraphemes(t *testing.T) {
	nasals := "n\u0303m"
	rc := NewRuleCompiler(tableOf(t, map[string]string{"N": nasals, "L": "lr"}))

	subs, err := rc.Compile(ir.SoundChange{Target: "N", Replacement: "x", Environment: "_"})
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "(?P<pre>)(?:(?:n\u0303|m))(?P<post>)", subs[0].Pattern.String())
	assert.Equal(t, "xax", subs[0].Apply("n\u0303am"))

	subs, err = rc.Compile(ir.SoundChange{Target: "N", Replacement: "L", Environment: "_"})
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "la", subs[0].Apply("n\u0303a"))
	assert.Equal(t, "ra", subs[1].Apply("ma"))
}

func TestCompileEnvironmentErrors(t *testing.T) {
	rc := NewRuleCompiler(nil)
	for _, env := range []string{"", "ab", "a_b_c"} {
		_, err := rc.Compile(ir.SoundChange{Target: "a", Replacement: "b", Environment: env})
		require.Error(t, err, "env %q", env)
		assert.True(t, IsInvalidEnvironment(err), "env %q: %v", env, err)
	}
}

func TestCompileInvalidTarget(t *testing.T) {
	rc := NewRuleCompiler(tableOf(t, map[string]string{"B": "bdg"}))

	_, err := rc.Compile(ir.SoundChange{Target: "x", Replacement: "B", Environment: "_"})
	require.Error(t, err)
	assert.True(t, IsInvalidTarget(err))

	_, err = rc.Compile(ir.SoundChange{Target: "", Replacement: "B", Environment: "_"})
	require.Error(t, err)
	assert.True(t, IsInvalidTarget(err), "correlated insertion has no target category")
}

func TestCompileEpenthesis(t *testing.T) {
	rc := NewRuleCompiler(nil)

	subs, err := rc.Compile(ir.SoundChange{Target: "", Replacement: "e", Environment: "#_s"})
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, `^(?P<pre>)(?:)(?P<post>s)`, subs[0].Pattern.String())
	assert.Equal(t, "esta", subs[0].Apply("sta"))
	assert.Equal(t, "esta", subs[0].Apply("esta"))
	assert.Equal(t, "ta", subs[0].Apply("ta"))
}

func TestCompileEnvironmentWithAlternation(t *testing.T) {
	rc := NewRuleCompiler(nil)

	subs, err := rc.Compile(ir.SoundChange{Target: "t", Replacement: "d", Environment: "(a|e)_o"})
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, `(?P<pre>(a|e))(?:t)(?P<post>o)`, subs[0].Pattern.String())
	assert.Equal(t, "ado", subs[0].Apply("ato"))
	assert.Equal(t, "edo", subs[0].Apply("eto"))
	assert.Equal(t, "ito", subs[0].Apply("ito"))
}

func TestCompileCorrelatedEnvironmentWithGroups(t *testing.T) {
	rc := NewRuleCompiler(tableOf(t, map[string]string{"C": "ptk", "B": "bdg"}))

	subs, err := rc.Compile(ir.SoundChange{Target: "C", Replacement: "B", Environment: "(a|o)_(i|u)"})
	require.NoError(t, err)
	require.Len(t, subs, 3)
	assert.Equal(t, "obu", applyAll(subs, "opu"))
	assert.Equal(t, "agi", applyAll(subs, "aki"))
}

func TestCompilePatternError(t *testing.T) {
	rc := NewRuleCompiler(nil)

	_, err := rc.Compile(ir.SoundChange{Target: "(", Replacement: "b", Environment: "_"})
	require.Error(t, err)
	assert.True(t, IsPatternError(err))

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "( > b / _", ce.Rule)
	assert.Contains(t, err.Error(), "( > b / _")
}

func TestCompileWordBoundaries(t *testing.T) {
	rc := NewRuleCompiler(nil)

	final, err := rc.Compile(ir.SoundChange{Target: "s", Replacement: "", Environment: "_#"})
	require.NoError(t, err)
	assert.Equal(t, `(?P<pre>)(?:s)(?P<post>)$`, final[0].Pattern.String())
	assert.Equal(t, "sa", final[0].Apply("sas"))

	initial, err := rc.Compile(ir.SoundChange{Target: "s", Replacement: "h", Environment: "#_"})
	require.NoError(t, err)
	assert.Equal(t, `^(?P<pre>)(?:s)(?P<post>)`, initial[0].Pattern.String())
	assert.Equal(t, "has", initial[0].Apply("sas"))
}

func TestCompileBoundaryMarkerAsCategory(t *testing.T) {
	rc := NewRuleCompiler(tableOf(t, map[string]string{"#": "xy"}))

	subs, err := rc.Compile(ir.SoundChange{Target: "s", Replacement: "z", Environment: "#_"})
	require.NoError(t, err)
	assert.Equal(t, `(?P<pre>[xy])(?:s)(?P<post>)`, subs[0].Pattern.String())
}

func TestCompileReplacementIsLiteral(t *testing.T) {
	rc := NewRuleCompiler(nil)

	subs, err := rc.Compile(ir.SoundChange{Target: "a", Replacement: "$1", Environment: "_"})
	require.NoError(t, err)
	assert.Equal(t, "${pre}$$1${post}", subs[0].Replacement)
	assert.Equal(t, "b$1c", subs[0].Apply("bac"))
}

func TestCompileClassEscaping(t *testing.T) {
	rc := NewRuleCompiler(tableOf(t, map[string]string{"X": "a-]"}))

	subs, err := rc.Compile(ir.SoundChange{Target: "X", Replacement: "o", Environment: "_"})
	require.NoError(t, err)
	assert.Equal(t, `(?P<pre>)(?:[a\-\]])(?P<post>)`, subs[0].Pattern.String())
	assert.Equal(t, "ooob", subs[0].Apply("a-]b"))
}

func TestCompileEmptyCategoryNeverMatches(t *testing.T) {
	rc := NewRuleCompiler(tableOf(t, map[string]string{"E": ""}))

	subs, err := rc.Compile(ir.SoundChange{Target: "E", Replacement: "o", Environment: "_"})
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "abc", subs[0].Apply("abc"))
}

func TestCompileAllKeepsOrderAndAdjacency(t *testing.T) {
	rc := NewRuleCompiler(tableOf(t, map[string]string{"C": "ptk", "B": "bdg"}))

	subs, err := rc.CompileAll([]ir.SoundChange{
		{Target: "C", Replacement: "B", Environment: "_"},
		{Target: "a", Replacement: "e", Environment: "_"},
	})
	require.NoError(t, err)
	require.Len(t, subs, 4)
	for _, s := range subs[:3] {
		assert.Equal(t, "C > B / _", s.Source)
	}
	assert.Equal(t, "a > e / _", subs[3].Source)
}

func TestCompileAllReportsRuleIndex(t *testing.T) {
	rc := NewRuleCompiler(nil)

	_, err := rc.CompileAll([]ir.SoundChange{
		{Target: "a", Replacement: "e", Environment: "_"},
		{Target: "a", Replacement: "e", Environment: "nope"},
	})
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 1, ce.Index)
	assert.Equal(t, ErrCodeInvalidEnvironment, ce.Code)
	assert.Contains(t, err.Error(), "rule #1")
}

func TestCompileSoundChangesRejectsBadCategoryKey(t *testing.T) {
	_, err := CompileSoundChanges(ir.SoundChangeSet{Categories: map[string]string{"CC": "ptk"}})
	require.Error(t, err)
	assert.Equal(t, ErrCodeCategory, CodeOf(err))
}

func TestCompileReplaces(t *testing.T) {
	subs, err := CompileReplaces([]ir.Replace{
		{Pattern: "kh", Replacement: "x"},
		{Pattern: "([aeiou])\\1", Replacement: "$1:"},
	})
	require.Error(t, err, "backreferences are not supported")
	assert.True(t, IsPatternError(err))
	assert.Nil(t, subs)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 1, ce.Index)

	subs, err = CompileReplaces([]ir.Replace{
		{Pattern: "kh", Replacement: "x"},
		{Pattern: "([aeiou])h", Replacement: "${1}:"},
	})
	require.NoError(t, err)
	assert.Equal(t, "xa:", applyAll(subs, "khah"))
}
