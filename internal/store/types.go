package store

import "time"

// Run is one recorded validation suite execution.
type Run struct {
	ID        string
	CreatedAt time.Time
	Mode      string
	RuleFiles []string
	CaseCount int
	PassCount int
}

// Failed returns the number of failing cases in the run.
func (r Run) Failed() int { return r.CaseCount - r.PassCount }

// CaseResult is the stored outcome of a single test pair. Ord is the
// zero-based position of the pair within its suite; Weight is the best
// derivation's cost (meaningless when Actual is empty).
type CaseResult struct {
	Ord      int
	Input    string
	Expected string
	Actual   string
	Weight   float64
	Passed   bool
}
