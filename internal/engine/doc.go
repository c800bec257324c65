// Package engine runs compiled rules against vocabularies.
//
// Pipelines:
// A language owns three pipelines built from its rule lists on every call:
// surface (mnemonic to spelling), phonetic (mnemonic to transcription) and
// the sound-change chain (mnemonic to descendant mnemonic). Each
// substitution in a pipeline is applied to a fixpoint before the next one
// runs. A substitution that keeps changing its input past the iteration cap
// fails with NON_TERMINATING_RULE instead of hanging.
//
// Derivation:
// Derive replays an ancestor's vocabulary through a descendant's
// sound-change chain. Descendant words with exactly one coordinate into the
// ancestor are refreshed in place (fused), keeping their gloss, part of
// speech, note and lineage. Unclaimed ancestor words are appended as new
// inherited words. Coinages, loans from other languages and blends are never
// touched.
//
// Derivation is all-or-nothing: work is staged on a copy of the descendant
// vocabulary and committed only when every word succeeds.
//
// Everything is single-threaded and synchronous. Callers own the Project
// and must not share an Engine across goroutines.
package engine
