// Package compiler turns declarative rules into executable substitutions.
//
// A sound change "target > replacement / before_after" compiles to the
// pattern (before)(?:target)(after) with the template ${1}replacement${2}.
// Category variables (single characters declared in a CategoryTable) are
// expanded in one of two ways:
//
//   - Matching-side only: each variable becomes a class that matches any of
//     its graphemes.
//   - Correlated: when the replacement references a category, the rule is
//     expanded into one concrete substitution per position index, resolving
//     every variable on both sides to the grapheme at that index.
//
// Compilation is stateless: callers rebuild substitutions from the
// authoritative rule lists whenever they need them.
package compiler
