package engine

import (
	"context"
	"fmt"

	"github.com/roach88/babel/internal/ir"
)

// DeriveResult summarizes a successful derivation.
type DeriveResult struct {
	Language  int    `json:"language"`
	Ancestor  int    `json:"ancestor"`
	Fused     int    `json:"fused"`
	Inherited int    `json:"inherited"`
	Preserved int    `json:"preserved"`
	Digest    string `json:"digest"`
	Seq       int64  `json:"seq,omitempty"`
}

// Record returns the derivation log entry for this result.
func (r *DeriveResult) Record(projectID string) ir.DerivationRecord {
	return ir.DerivationRecord{
		ProjectID: projectID,
		Language:  r.Language,
		Ancestor:  r.Ancestor,
		Fused:     r.Fused,
		Inherited: r.Inherited,
		Preserved: r.Preserved,
		Digest:    r.Digest,
	}
}

// Derive regenerates lang's inherited vocabulary from ancestor.
//
// Algorithm:
//  1. Reject self-derivation, bad indices and ancestor loops.
//  2. Build lang's pipelines once.
//  3. Copy the ancestor's slots as a work queue, keeping indices.
//  4. For each descendant word with exactly one coordinate into ancestor,
//     take that slot from the queue, labor a new word from it and fuse the
//     result into the existing word. A missing or already taken slot is a
//     GHOST_WORD carrying the descendant word's index.
//  5. Append a new inherited word for every live slot left in the queue,
//     in ancestor index order.
//
// All work happens on a copy. The ancestor pointer and the vocabulary are
// replaced only when every step succeeds, and, if a recorder is set, only
// after the run has been recorded.
func (e *Engine) Derive(ctx context.Context, lang, ancestor int) (*DeriveResult, error) {
	if lang == ancestor {
		return nil, NewDeriveFromSelfError(lang)
	}
	n := e.project.Languages.Len()
	for _, idx := range []int{lang, ancestor} {
		if idx < 0 || idx >= n {
			return nil, ir.NewIndexOutOfRange("language", idx, n)
		}
	}
	desc, err := e.project.Language(lang)
	if err != nil {
		return nil, err
	}
	anc, err := e.project.Language(ancestor)
	if err != nil {
		return nil, err
	}
	if chain, loops := wouldCycle(e.project, lang, ancestor); loops {
		return nil, NewCycleError(lang, ancestor, append([]int{lang}, chain...))
	}

	p, err := BuildPipelines(desc, e.maxIterations)
	if err != nil {
		return nil, err
	}

	queue := make([]*ir.Word, anc.Vocabulary.Len())
	for i, w := range anc.Vocabulary.All() {
		queue[i] = w
	}

	staged := desc.Vocabulary.Clone()
	res := &DeriveResult{Language: lang, Ancestor: ancestor}

	for i, w := range staged.All() {
		if !w.InheritsFrom(ancestor) {
			res.Preserved++
			continue
		}
		coord := w.Ancestors[0]
		if coord.Word < 0 || coord.Word >= len(queue) || queue[coord.Word] == nil {
			return nil, NewGhostWordError(lang, ancestor, i, coord.Word)
		}
		derived, err := p.Labor(queue[coord.Word], coord)
		if err != nil {
			return nil, fmt.Errorf("derive word %d from %s: %w", i, coord, err)
		}
		w.Fuse(derived)
		queue[coord.Word] = nil
		res.Fused++
		e.logger.Debug("fused word", "language", lang, "word", i, "from", coord.String(), "mnemonic", w.Mnemonic)
	}

	for j, aw := range queue {
		if aw == nil {
			continue
		}
		coord := ir.Coordinate{Language: ancestor, Word: j}
		derived, err := p.Labor(aw, coord)
		if err != nil {
			return nil, fmt.Errorf("derive new word from %s: %w", coord, err)
		}
		idx := staged.Append(derived)
		res.Inherited++
		e.logger.Debug("inherited word", "language", lang, "word", idx, "from", coord.String(), "mnemonic", derived.Mnemonic)
	}

	res.Digest, err = ir.VocabularyDigest(&staged)
	if err != nil {
		return nil, fmt.Errorf("digest vocabulary: %w", err)
	}

	if e.recorder != nil {
		seq, err := e.recorder.RecordDerivation(ctx, res.Record(e.project.ID))
		if err != nil {
			return nil, fmt.Errorf("record derivation: %w", err)
		}
		res.Seq = seq
	}

	a := ancestor
	desc.Ancestor = &a
	desc.Vocabulary = staged

	e.logger.Info("derived vocabulary",
		"language", desc.Name,
		"ancestor", anc.Name,
		"fused", res.Fused,
		"inherited", res.Inherited,
		"preserved", res.Preserved,
	)
	return res, nil
}
