// Package harness replays YAML scenarios against a project file.
//
// A scenario names a project, a list of steps (derive or morph, addressed by
// language name or index) and assertions on the resulting vocabularies:
//
//	name: voicing
//	description: "Daughter voices stops between vowels"
//	project: voicing.json
//	steps:
//	  - action: derive
//	    language: Daughter
//	    ancestor: Proto
//	    expect:
//	      result: {fused: 0, inherited: 3}
//	assertions:
//	  - type: word
//	    language: Daughter
//	    word: 0
//	    expect: {mnemonic: pada}
//
// Every run works on a fresh copy of the project and records derivations in
// an in-memory SQLite log, so a scenario never writes back to its project
// file. RunWithGolden additionally compares the final vocabularies against
// testdata/golden/<name>.golden.
package harness
