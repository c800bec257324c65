// Package ir provides the data model for babel projects.
//
// This package contains the authoritative, persisted types only. All other
// internal packages import ir; ir imports nothing internal. Compiled
// artifacts (substitutions, pipelines) are derived from these types on
// demand and never stored here.
//
// Key design constraints:
//   - Registries (languages, parts of speech, vocabularies) are index-stable
//     Slots: removal tombstones a slot and never shifts later indices
//   - Rule lists (surface, phonetic, sound changes) compact on removal and
//     enforce strict bounds on every indexed operation
//   - Coordinates are weak (language, word) pairs; nothing keeps them in
//     sync with deletions
//   - All JSON and YAML tags use snake_case
package ir
