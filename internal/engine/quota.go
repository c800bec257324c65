package engine

import (
	"fmt"
	"strconv"
)

// DefaultMaxIterations is the default cap on changing applications of a
// single substitution to a single input.
const DefaultMaxIterations = 1000

const (
	// DefaultGrowthFactor bounds how many times longer than its input a
	// fixpoint result may become.
	DefaultGrowthFactor = 16

	// GrowthSlack is the fixed allowance added to the growth bound.
	GrowthSlack = 256
)

// QuotaEnforcer counts changing applications of one substitution and
// enforces the iteration cap.
//
// A fresh count starts for every (substitution, input) pair; the quota is
// checked after each application that changed the string. Output length is
// capped separately by CheckGrowth.
type QuotaEnforcer struct {
	maxIterations int
	growthFactor  int
	current       int
}

// NewQuotaEnforcer creates a quota enforcer with the given limit.
// A non-positive limit selects DefaultMaxIterations.
func NewQuotaEnforcer(maxIterations int) *QuotaEnforcer {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	return &QuotaEnforcer{maxIterations: maxIterations, growthFactor: DefaultGrowthFactor}
}

// SetGrowthFactor changes the output length bound. A non-positive factor
// selects DefaultGrowthFactor.
func (q *QuotaEnforcer) SetGrowthFactor(factor int) {
	if factor <= 0 {
		factor = DefaultGrowthFactor
	}
	q.growthFactor = factor
}

// MaxLength returns the longest output allowed for input.
func (q *QuotaEnforcer) MaxLength(input string) int {
	return len(input)*q.growthFactor + GrowthSlack
}

// CheckGrowth returns NON_TERMINATING_RULE once out exceeds MaxLength(input).
func (q *QuotaEnforcer) CheckGrowth(rule, input, out string) error {
	if limit := q.MaxLength(input); len(out) > limit {
		return NewRunawayGrowthError(rule, input, limit)
	}
	return nil
}

// Check increments the counter and returns NON_TERMINATING_RULE once it
// exceeds the limit.
func (q *QuotaEnforcer) Check(rule, input string) error {
	q.current++
	if q.current > q.maxIterations {
		return NewNonTerminatingError(rule, input, q.maxIterations)
	}
	return nil
}

// Reset starts a new count.
func (q *QuotaEnforcer) Reset() {
	q.current = 0
}

// Current returns the current count.
func (q *QuotaEnforcer) Current() int {
	return q.current
}

// MaxIterations returns the limit.
func (q *QuotaEnforcer) MaxIterations() int {
	return q.maxIterations
}

// NewNonTerminatingError creates a RuntimeError for a substitution that
// did not converge.
func NewNonTerminatingError(rule, input string, maxIterations int) *RuntimeError {
	return &RuntimeError{
		Code:     ErrCodeNonTerminating,
		Message:  fmt.Sprintf("rule %q did not converge on %q within %d iterations", rule, input, maxIterations),
		Language: -1,
		Ancestor: -1,
		Word:     -1,
		Rule:     rule,
		Details: map[string]string{
			"input":          input,
			"max_iterations": strconv.Itoa(maxIterations),
		},
	}
}

// NewRunawayGrowthError creates a RuntimeError for a substitution whose
// output kept growing past maxLength bytes.
func NewRunawayGrowthError(rule, input string, maxLength int) *RuntimeError {
	return &RuntimeError{
		Code:     ErrCodeNonTerminating,
		Message:  fmt.Sprintf("rule %q grew %q past %d bytes without converging", rule, input, maxLength),
		Language: -1,
		Ancestor: -1,
		Word:     -1,
		Rule:     rule,
		Details: map[string]string{
			"input":      input,
			"max_length": strconv.Itoa(maxLength),
		},
	}
}
