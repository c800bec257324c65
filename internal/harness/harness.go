package harness

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/roach88/babel/internal/engine"
	"github.com/roach88/babel/internal/ir"
	"github.com/roach88/babel/internal/store"
)

// Harness executes scenario steps against one engine.
type Harness struct {
	store   *store.Store
	engine  *engine.Engine
	project *ir.Project
}

// Run loads the scenario's project file and executes the scenario.
//
// A non-nil error means the scenario could not run at all. Step failures
// and failed assertions are reported in Result.
func Run(scenario *Scenario) (*Result, error) {
	project, err := store.LoadFile(scenario.Project)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	return RunProject(context.Background(), scenario, project)
}

// RunProject executes scenario against project, which is modified in place.
//
// Execution flow:
// 1. Open a fresh in-memory derivation log
// 2. Execute steps in order, checking each step's expect clause
// 3. Stop at the first unexpected step failure
// 4. Evaluate assertions against the final project
func RunProject(ctx context.Context, scenario *Scenario, project *ir.Project) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	opts := []engine.EngineOption{
		engine.WithRecorder(st),
		engine.WithLogger(slog.New(slog.DiscardHandler)),
	}
	if scenario.MaxIterations > 0 {
		opts = append(opts, engine.WithMaxIterations(scenario.MaxIterations))
	}

	h := &Harness{
		store:   st,
		engine:  engine.New(project, opts...),
		project: project,
	}

	result := NewResult()
	result.Project = project

	for i, step := range scenario.Steps {
		if !h.executeStep(ctx, i, step, result) {
			break
		}
	}

	actx := &AssertionContext{
		Project: project,
		Store:   st,
		Ctx:     ctx,
	}
	for _, errMsg := range EvaluateAssertions(scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}

// executeStep runs one step and appends its event. It returns false when the
// scenario must stop.
func (h *Harness) executeStep(ctx context.Context, i int, step Step, result *Result) bool {
	event := TraceEvent{Step: i, Action: step.Action}

	err := h.apply(ctx, step, &event)
	if err != nil {
		event.Error = engine.ErrorCode(err)
		if event.Error == "" {
			event.Error = "ERROR"
		}
	}
	result.Trace = append(result.Trace, event)

	var want ExpectClause
	if step.Expect != nil {
		want = *step.Expect
	}

	switch {
	case err != nil && want.Error == "":
		result.AddError(fmt.Sprintf("steps[%d] %s: unexpected error: %v", i, step.Action, err))
		return false
	case err != nil && want.Error != event.Error:
		result.AddError(fmt.Sprintf("steps[%d] %s: expected error %s, got %v", i, step.Action, want.Error, err))
		return false
	case err == nil && want.Error != "":
		result.AddError(fmt.Sprintf("steps[%d] %s: expected error %s, got success", i, step.Action, want.Error))
		return false
	}

	got := event.counters()
	keys := make([]string, 0, len(want.Result))
	for k := range want.Result {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		actual, ok := got[k]
		if !ok {
			result.AddError(fmt.Sprintf("steps[%d] %s: unknown result field %q", i, step.Action, k))
			continue
		}
		if actual != want.Result[k] {
			result.AddError(fmt.Sprintf("steps[%d] %s: expected %s = %d, got %d", i, step.Action, k, want.Result[k], actual))
		}
	}
	return true
}

// apply executes the step's action and fills in event.
func (h *Harness) apply(ctx context.Context, step Step, event *TraceEvent) error {
	lang, err := h.project.LookupLanguage(step.Language)
	if err != nil {
		return err
	}
	event.Language = lang

	switch step.Action {
	case ActionDerive:
		anc, err := h.project.LookupLanguage(step.Ancestor)
		if err != nil {
			return err
		}
		event.Ancestor = anc
		res, err := h.engine.Derive(ctx, lang, anc)
		if err != nil {
			return err
		}
		event.Fused = res.Fused
		event.Inherited = res.Inherited
		event.Preserved = res.Preserved
		event.Digest = res.Digest
		event.Seq = res.Seq
	case ActionMorph:
		n, err := h.engine.MorphAll(lang)
		if err != nil {
			return err
		}
		event.Morphed = n
	default:
		return fmt.Errorf("unknown action %q", step.Action)
	}
	return nil
}
