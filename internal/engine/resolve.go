package engine

import (
	"fmt"

	"github.com/roach88/babel/internal/ir"
)

// Resolve dereferences a coordinate against the current project state.
// A dangling coordinate yields GHOST_REFERENCE wrapping the lookup failure.
func Resolve(p *ir.Project, coord ir.Coordinate) (*ir.Word, error) {
	lang, err := p.Language(coord.Language)
	if err != nil {
		return nil, ghostReference(coord, err)
	}
	w, err := lang.Word(coord.Word)
	if err != nil {
		return nil, ghostReference(coord, err)
	}
	return w, nil
}

func ghostReference(coord ir.Coordinate, err error) *RuntimeError {
	return &RuntimeError{
		Code:     ErrCodeGhostReference,
		Message:  fmt.Sprintf("coordinate %s does not resolve: %v", coord, err),
		Language: coord.Language,
		Ancestor: -1,
		Word:     coord.Word,
		Err:      err,
	}
}

// Lineage describes one ancestor coordinate of a word and what it resolves to.
type Lineage struct {
	Coordinate ir.Coordinate
	Word       *ir.Word // nil for a ghost
	Err        error
}

// Lineages resolves every ancestor coordinate of w. Ghosts are reported per
// entry rather than failing the whole lookup.
func Lineages(p *ir.Project, w *ir.Word) []Lineage {
	out := make([]Lineage, 0, len(w.Ancestors))
	for _, c := range w.Ancestors {
		anc, err := Resolve(p, c)
		out = append(out, Lineage{Coordinate: c, Word: anc, Err: err})
	}
	return out
}
