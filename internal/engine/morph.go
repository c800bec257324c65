package engine

import (
	"github.com/roach88/babel/internal/ir"
)

// Morph recomputes w.Surface and w.Phonetic from w.Mnemonic. Both pipelines
// start from the mnemonic; neither sees the other's output. On error w is
// left unchanged.
func Morph(w *ir.Word, toSurface, toPhonetic *Pipeline) error {
	surface, err := toSurface.Run(w.Mnemonic)
	if err != nil {
		return err
	}
	phonetic, err := toPhonetic.Run(w.Mnemonic)
	if err != nil {
		return err
	}
	w.Surface = surface
	w.Phonetic = phonetic
	return nil
}

// Labor produces a brand-new word from ancestor: the mnemonic is pushed
// through chain, gloss, part of speech and note are copied, the lineage is
// exactly [coord], and the computed forms come from Morph.
func Labor(ancestor *ir.Word, coord ir.Coordinate, chain, toSurface, toPhonetic *Pipeline) (ir.Word, error) {
	mnemonic, err := chain.Run(ancestor.Mnemonic)
	if err != nil {
		return ir.Word{}, err
	}
	w := ir.Word{
		Gloss:        ancestor.Gloss,
		PartOfSpeech: ancestor.PartOfSpeech,
		Mnemonic:     mnemonic,
		Note:         ancestor.Note,
		Ancestors:    []ir.Coordinate{coord},
	}
	if err := Morph(&w, toSurface, toPhonetic); err != nil {
		return ir.Word{}, err
	}
	return w, nil
}
