package harness

import "github.com/roach88/babel/internal/ir"

// TraceEvent records the outcome of one scenario step.
type TraceEvent struct {
	Step      int    `json:"step"`
	Action    string `json:"action"`
	Language  int    `json:"language"`
	Ancestor  int    `json:"ancestor,omitempty"`
	Fused     int    `json:"fused,omitempty"`
	Inherited int    `json:"inherited,omitempty"`
	Preserved int    `json:"preserved,omitempty"`
	Morphed   int    `json:"morphed,omitempty"`
	Digest    string `json:"digest,omitempty"`
	Seq       int64  `json:"seq,omitempty"`
	Error     string `json:"error,omitempty"` // error code of a failed step
}

// counters exposes the numeric outcome of a step for expect.result.
func (e TraceEvent) counters() map[string]int {
	return map[string]int{
		"fused":     e.Fused,
		"inherited": e.Inherited,
		"preserved": e.Preserved,
		"morphed":   e.Morphed,
	}
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true if every step expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace holds one event per executed step.
	Trace []TraceEvent `json:"trace"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Project is the final state after all steps.
	Project *ir.Project `json:"-"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
