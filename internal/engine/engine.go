package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/babel/internal/compiler"
	"github.com/roach88/babel/internal/ir"
)

// DerivationRecorder persists a summary of every successful derivation.
// Implemented by store.Store.
type DerivationRecorder interface {
	RecordDerivation(ctx context.Context, rec ir.DerivationRecord) (int64, error)
}

// Engine applies rule and vocabulary edits to a project, keeping computed
// word forms in step with the rules.
//
// Every rule edit is compiled before it is stored, so a malformed rule is
// rejected at edit time and never reaches derivation.
type Engine struct {
	project       *ir.Project
	maxIterations int
	logger        *slog.Logger
	recorder      DerivationRecorder
}

// EngineOption allows configuration of engine parameters.
type EngineOption func(*Engine)

// WithMaxIterations sets the fixpoint iteration cap per substitution.
//
// Default: 1000 (DefaultMaxIterations)
func WithMaxIterations(n int) EngineOption {
	return func(e *Engine) {
		e.maxIterations = n
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRecorder records every successful derivation.
func WithRecorder(r DerivationRecorder) EngineOption {
	return func(e *Engine) {
		e.recorder = r
	}
}

// New creates an Engine over project.
func New(project *ir.Project, opts ...EngineOption) *Engine {
	e := &Engine{
		project:       project,
		maxIterations: DefaultMaxIterations,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Pipelines builds the current pipelines of a language.
func (e *Engine) Pipelines(lang int) (*Pipelines, error) {
	l, err := e.project.Language(lang)
	if err != nil {
		return nil, err
	}
	return BuildPipelines(l, e.maxIterations)
}

// AddWord morphs w with the language's pipelines and appends it.
func (e *Engine) AddWord(lang int, w ir.Word) (int, error) {
	l, p, err := e.languageWithPipelines(lang)
	if err != nil {
		return 0, err
	}
	if w.Ancestors == nil {
		w.Ancestors = []ir.Coordinate{}
	}
	if err := p.Morph(&w); err != nil {
		return 0, err
	}
	return l.Vocabulary.Append(w), nil
}

// AlterWord overwrites the authored fields of a live word and recomputes its
// forms. The lineage is kept.
func (e *Engine) AlterWord(lang, idx int, w ir.Word) error {
	l, p, err := e.languageWithPipelines(lang)
	if err != nil {
		return err
	}
	cur, err := l.Word(idx)
	if err != nil {
		return err
	}
	w.Ancestors = cur.Ancestors
	if err := p.Morph(&w); err != nil {
		return err
	}
	*cur = w
	return nil
}

// RemoveWord tombstones a word. Coordinates pointing at it become ghosts.
func (e *Engine) RemoveWord(lang, idx int) error {
	l, err := e.project.Language(lang)
	if err != nil {
		return err
	}
	if _, err := l.Word(idx); err != nil {
		return err
	}
	return l.Vocabulary.Remove(idx)
}

// LinkWord replaces a word's ancestor coordinates. Coordinates are not
// checked for liveness; ghosts are allowed and reported at derivation.
func (e *Engine) LinkWord(lang, idx int, ancestors []ir.Coordinate) error {
	l, err := e.project.Language(lang)
	if err != nil {
		return err
	}
	w, err := l.Word(idx)
	if err != nil {
		return err
	}
	for _, c := range ancestors {
		if c.Language == lang {
			return fmt.Errorf("link word %d: coordinate %s points into its own language", idx, c)
		}
	}
	w.Ancestors = append([]ir.Coordinate{}, ancestors...)
	return nil
}

// MorphAll recomputes the forms of every live word of a language and returns
// how many were updated. It is all-or-nothing.
func (e *Engine) MorphAll(lang int) (int, error) {
	l, p, err := e.languageWithPipelines(lang)
	if err != nil {
		return 0, err
	}
	staged := l.Vocabulary.Clone()
	n := 0
	for i, w := range staged.All() {
		if err := p.Morph(w); err != nil {
			return 0, fmt.Errorf("morph word %d: %w", i, err)
		}
		n++
	}
	l.Vocabulary = staged
	e.logger.Debug("morphed vocabulary", "language", lang, "words", n)
	return n, nil
}

// AddReplace appends a surface or phonetic rule after checking its pattern.
func (e *Engine) AddReplace(lang int, kind ir.RuleKind, r ir.Replace) error {
	list, err := e.replaces(lang, kind, r)
	if err != nil {
		return err
	}
	ir.ListAppend(list, r)
	return nil
}

// AlterReplace overwrites the rule at idx.
func (e *Engine) AlterReplace(lang int, kind ir.RuleKind, idx int, r ir.Replace) error {
	list, err := e.replaces(lang, kind, r)
	if err != nil {
		return err
	}
	return labeled(ir.ListSet(*list, idx, r), string(kind))
}

// InsertReplace inserts the rule before idx; idx may equal the list length.
func (e *Engine) InsertReplace(lang int, kind ir.RuleKind, idx int, r ir.Replace) error {
	list, err := e.replaces(lang, kind, r)
	if err != nil {
		return err
	}
	return labeled(ir.ListInsert(list, idx, r), string(kind))
}

// RemoveReplace removes the rule at idx, shifting later rules down.
func (e *Engine) RemoveReplace(lang int, kind ir.RuleKind, idx int) error {
	l, err := e.project.Language(lang)
	if err != nil {
		return err
	}
	list, err := l.Replaces(kind)
	if err != nil {
		return err
	}
	return labeled(ir.ListRemove(list, idx), string(kind))
}

// AddSoundChange compiles sc against the current categories and appends it.
func (e *Engine) AddSoundChange(lang int, sc ir.SoundChange) error {
	l, err := e.checkedSoundChange(lang, sc)
	if err != nil {
		return err
	}
	ir.ListAppend(&l.SoundChanges.Changes, sc)
	return nil
}

// AlterSoundChange overwrites the sound change at idx.
func (e *Engine) AlterSoundChange(lang, idx int, sc ir.SoundChange) error {
	l, err := e.checkedSoundChange(lang, sc)
	if err != nil {
		return err
	}
	return labeled(ir.ListSet(l.SoundChanges.Changes, idx, sc), "sound change")
}

// InsertSoundChange inserts the sound change before idx.
func (e *Engine) InsertSoundChange(lang, idx int, sc ir.SoundChange) error {
	l, err := e.checkedSoundChange(lang, sc)
	if err != nil {
		return err
	}
	return labeled(ir.ListInsert(&l.SoundChanges.Changes, idx, sc), "sound change")
}

// RemoveSoundChange removes the sound change at idx.
func (e *Engine) RemoveSoundChange(lang, idx int) error {
	l, err := e.project.Language(lang)
	if err != nil {
		return err
	}
	return labeled(ir.ListRemove(&l.SoundChanges.Changes, idx), "sound change")
}

// SetCategory stores or overwrites a category. The edit is rolled back if
// any declared sound change stops compiling.
func (e *Engine) SetCategory(lang int, key rune, content string) error {
	l, err := e.project.Language(lang)
	if err != nil {
		return err
	}
	prev, had := l.SoundChanges.Categories[string(key)]
	l.SoundChanges.SetCategory(key, content)
	if _, err := compiler.CompileSoundChanges(l.SoundChanges); err != nil {
		if had {
			l.SoundChanges.Categories[string(key)] = prev
		} else {
			delete(l.SoundChanges.Categories, string(key))
		}
		return fmt.Errorf("set category %q: %w", key, err)
	}
	return nil
}

// RemoveCategory deletes a category. The edit is rolled back if any declared
// sound change stops compiling.
func (e *Engine) RemoveCategory(lang int, key rune) error {
	l, err := e.project.Language(lang)
	if err != nil {
		return err
	}
	prev := l.SoundChanges.Categories[string(key)]
	if err := l.SoundChanges.RemoveCategory(key); err != nil {
		return err
	}
	if _, err := compiler.CompileSoundChanges(l.SoundChanges); err != nil {
		l.SoundChanges.SetCategory(key, prev)
		return fmt.Errorf("remove category %q: %w", key, err)
	}
	return nil
}

func (e *Engine) languageWithPipelines(lang int) (*ir.Language, *Pipelines, error) {
	l, err := e.project.Language(lang)
	if err != nil {
		return nil, nil, err
	}
	p, err := BuildPipelines(l, e.maxIterations)
	if err != nil {
		return nil, nil, err
	}
	return l, p, nil
}

func (e *Engine) replaces(lang int, kind ir.RuleKind, r ir.Replace) (*[]ir.Replace, error) {
	if _, err := compiler.CompileReplace(r); err != nil {
		return nil, err
	}
	l, err := e.project.Language(lang)
	if err != nil {
		return nil, err
	}
	return l.Replaces(kind)
}

func (e *Engine) checkedSoundChange(lang int, sc ir.SoundChange) (*ir.Language, error) {
	l, err := e.project.Language(lang)
	if err != nil {
		return nil, err
	}
	rc, err := compiler.ForSoundChanges(l.SoundChanges)
	if err != nil {
		return nil, err
	}
	if _, err := rc.Compile(sc); err != nil {
		return nil, err
	}
	return l, nil
}

// labeled names the rule list in a bounds error.
func labeled(err error, collection string) error {
	if err == nil {
		return nil
	}
	var le *ir.LookupError
	if errors.As(err, &le) && le.Collection == "" {
		le.Collection = collection
	}
	return err
}
