package engine

import (
	"fmt"

	"github.com/roach88/babel/internal/compiler"
	"github.com/roach88/babel/internal/ir"
)

// Pipeline is an ordered list of substitutions, each applied to a fixpoint.
type Pipeline struct {
	name  string
	subs  []compiler.Substitution
	quota *QuotaEnforcer
}

// NewPipeline builds a pipeline over subs. maxIterations <= 0 selects
// DefaultMaxIterations.
func NewPipeline(name string, subs []compiler.Substitution, maxIterations int) *Pipeline {
	return &Pipeline{name: name, subs: subs, quota: NewQuotaEnforcer(maxIterations)}
}

// Name returns the pipeline name ("surface", "phonetic" or "sound_changes").
func (p *Pipeline) Name() string { return p.name }

// Len returns the number of substitutions.
func (p *Pipeline) Len() int { return len(p.subs) }

// Run feeds in through every substitution in order.
func (p *Pipeline) Run(in string) (string, error) {
	cur := in
	for _, sub := range p.subs {
		out, err := p.fixpoint(sub, cur)
		if err != nil {
			return "", fmt.Errorf("%s pipeline: %w", p.name, err)
		}
		cur = out
	}
	return cur, nil
}

// fixpoint applies sub until an application leaves the string unchanged.
func (p *Pipeline) fixpoint(sub compiler.Substitution, in string) (string, error) {
	p.quota.Reset()
	cur := in
	for {
		out := sub.Apply(cur)
		if out == cur {
			return cur, nil
		}
		if err := p.quota.Check(sub.Source, in); err != nil {
			return "", err
		}
		if err := p.quota.CheckGrowth(sub.Source, in, out); err != nil {
			return "", err
		}
		cur = out
	}
}

// Fixpoint applies one substitution to in until it stops changing.
func Fixpoint(sub compiler.Substitution, in string, maxIterations int) (string, error) {
	return NewPipeline("", nil, maxIterations).fixpoint(sub, in)
}

// Pipelines holds the three pipelines of one language.
type Pipelines struct {
	Surface     *Pipeline
	Phonetic    *Pipeline
	SoundChange *Pipeline
}

// BuildPipelines compiles lang's rule lists. Compilation is never cached:
// callers rebuild after every rule edit.
func BuildPipelines(lang *ir.Language, maxIterations int) (*Pipelines, error) {
	surface, err := compiler.CompileReplaces(lang.Surface)
	if err != nil {
		return nil, fmt.Errorf("compile surface rules: %w", err)
	}
	phonetic, err := compiler.CompileReplaces(lang.Phonetic)
	if err != nil {
		return nil, fmt.Errorf("compile phonetic rules: %w", err)
	}
	changes, err := compiler.CompileSoundChanges(lang.SoundChanges)
	if err != nil {
		return nil, fmt.Errorf("compile sound changes: %w", err)
	}
	return &Pipelines{
		Surface:     NewPipeline(string(ir.SurfaceRules), surface, maxIterations),
		Phonetic:    NewPipeline(string(ir.PhoneticRules), phonetic, maxIterations),
		SoundChange: NewPipeline("sound_changes", changes, maxIterations),
	}, nil
}

// Morph recomputes the word's surface and phonetic forms.
func (p *Pipelines) Morph(w *ir.Word) error {
	return Morph(w, p.Surface, p.Phonetic)
}

// Labor derives a new word from ancestor through the sound-change chain.
func (p *Pipelines) Labor(ancestor *ir.Word, coord ir.Coordinate) (ir.Word, error) {
	return Labor(ancestor, coord, p.SoundChange, p.Surface, p.Phonetic)
}
