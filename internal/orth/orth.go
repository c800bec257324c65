// Package orth renders ASCII-typable spellings into display glyphs.
//
// Two notations are recognised:
//
//	\~n   diacritic command: backslash, command character, base letter
//	{ae}  combination: a named ligature or special letter
//
// Combinations are expanded first, so a command may decorate a combination:
// \'{ae} is æ with an acute accent. Unknown sequences are left as typed.
package orth

import (
	"regexp"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// diacritics maps a command character to its combining mark.
var diacritics = map[rune]rune{
	'`':  '\u0300', // grave
	'\'': '\u0301', // acute
	'^':  '\u0302', // circumflex
	'~':  '\u0303', // tilde
	'-':  '\u0304', // macron
	'u':  '\u0306', // breve
	'.':  '\u0307', // dot above
	'"':  '\u0308', // diaeresis
	'o':  '\u030a', // ring above
	'=':  '\u030b', // double acute
	'v':  '\u030c', // caron
	'd':  '\u0323', // dot below
	',':  '\u0327', // cedilla
	'k':  '\u0328', // ogonek
	'_':  '\u0331', // macron below
}

// combinations maps a brace-enclosed name to its glyph.
var combinations = map[string]string{
	"ae": "\u00e6", "AE": "\u00c6",
	"oe": "\u0153", "OE": "\u0152",
	"o": "\u00f8", "O": "\u00d8",
	"ss": "\u00df",
	"th": "\u00fe", "TH": "\u00de",
	"dh": "\u00f0", "DH": "\u00d0",
	"ng": "\u014b", "NG": "\u014a",
	"sh": "\u0283", "zh": "\u0292",
	"l": "\u0142", "L": "\u0141",
	"d": "\u0111", "D": "\u0110",
	"h": "\u0127",
	"i": "\u0131",
	"e": "\u0259", "E": "\u018f",
	"gs": "\u0294",
}

var (
	commandRe     = regexp.MustCompile(`\\(.)(.)`)
	combinationRe = regexp.MustCompile(`\{(\w+)\}`)
)

// Interpret expands every combination and diacritic command in s and returns
// the NFC-composed result.
func Interpret(s string) string {
	s = combinationRe.ReplaceAllStringFunc(s, func(m string) string {
		if glyph, ok := combinations[m[1:len(m)-1]]; ok {
			return glyph
		}
		return m
	})
	s = commandRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := commandRe.FindStringSubmatch(m)
		cmd := []rune(sub[1])[0]
		mark, ok := diacritics[cmd]
		if !ok {
			return m
		}
		return sub[2] + string(mark)
	})
	return norm.NFC.String(s)
}

// Entry is one row of the notation table.
type Entry struct {
	Kind     string `json:"kind"` // "command" or "combination"
	Sequence string `json:"sequence"`
	Glyph    string `json:"glyph"`
}

// Table lists every command (shown on the letter a) and combination,
// commands first, each group sorted by sequence.
func Table() []Entry {
	var commands, combos []Entry
	for cmd := range diacritics {
		seq := `\` + string(cmd) + "a"
		commands = append(commands, Entry{Kind: "command", Sequence: seq, Glyph: Interpret(seq)})
	}
	for name, glyph := range combinations {
		combos = append(combos, Entry{Kind: "combination", Sequence: "{" + name + "}", Glyph: glyph})
	}
	sort.Slice(commands, func(i, j int) bool { return commands[i].Sequence < commands[j].Sequence })
	sort.Slice(combos, func(i, j int) bool { return combos[i].Sequence < combos[j].Sequence })
	return append(commands, combos...)
}
