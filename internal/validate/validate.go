// Package validate applies a compiled rewrite relation to test pairs
// and checks that the best-ranked derivation matches the expected form.
package validate

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/sandhi/internal/compiler"
	"github.com/roach88/sandhi/internal/wfst"
)

const minimizeDelta = 1e-7

// Pair is one test case: an input form and the derivation expected for
// it. Expected is either the intermediate annotated representation or
// the base orthography, depending on how the validator is invoked.
type Pair struct {
	Input    string
	Expected string
}

// DefaultPairs is the built-in smoke test exercised when no test file
// is given: a chained-tone word and its annotated derivation.
func DefaultPairs() []Pair {
	return []Pair{
		{Input: "ni{3>1>4}jo14", Expected: "ni3jo14##3>1>4##14>14"},
	}
}

// Candidate is one distinct decoded output with the minimum weight any
// derivation reached it at.
type Candidate struct {
	Output string
	Weight wfst.Weight
}

// Result records one validation outcome. Candidates are ranked cheapest
// first; Best is empty when no derivation survived the composition.
type Result struct {
	Input      string
	Expected   string
	Passed     bool
	Best       string
	Weight     wfst.Weight
	Candidates []Candidate
}

// SuiteReport aggregates a validation run.
type SuiteReport struct {
	Passed  int
	Failed  int
	Results []Result
}

// Validator checks test pairs against one compiled relation. The
// normalization relation for base-orthography expectations is built once
// at construction over the same symbol table.
type Validator struct {
	relation   *wfst.Automaton
	normalizer *wfst.Automaton
	log        *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger routes validation diagnostics to log.
func WithLogger(log *slog.Logger) Option {
	return func(v *Validator) { v.log = log }
}

// New returns a Validator over the compiled relation. The compiler must
// be the one the relation was built with, so the normalizer shares its
// symbol table.
func New(c *compiler.Compiler, relation *wfst.Automaton, opts ...Option) (*Validator, error) {
	v := &Validator{relation: relation, log: slog.Default()}
	for _, opt := range opts {
		opt(v)
	}
	norm, err := Normalizer(c)
	if err != nil {
		return nil, fmt.Errorf("build normalizer: %w", err)
	}
	norm.SortArcs(wfst.SortByInput)
	v.normalizer = norm
	return v, nil
}

// Validate wraps both forms in boundary markers, restricts the relation
// to the input, and decodes the best output. With intermediate=true the
// expected form is the annotated intermediate representation and is
// compared directly; otherwise the derivations are first passed through
// the normalization relation down to base orthography.
func (v *Validator) Validate(input, expected string, intermediate bool) (Result, error) {
	res := Result{Input: input, Expected: expected}
	wrappedWant := wfst.BoundarySymbol + expected + wfst.BoundarySymbol

	e2e, err := wfst.ApplyInput(v.relation, wfst.BoundarySymbol+input+wfst.BoundarySymbol)
	if err != nil {
		return res, fmt.Errorf("apply %q: %w", input, err)
	}
	e2e.Minimize(wfst.MinimizeConfig{Delta: minimizeDelta, AllowNondet: true})

	if !intermediate {
		e2e.SortArcs(wfst.SortByOutput)
		e2e, err = wfst.Compose(e2e, v.normalizer)
		if err != nil {
			return res, fmt.Errorf("normalize %q: %w", input, err)
		}
	}

	res.Candidates = rankOutputs(wfst.Paths(e2e))
	for _, c := range res.Candidates {
		v.log.Debug("derivation", "input", input, "output", c.Output, "weight", c.Weight)
	}
	if len(res.Candidates) == 0 {
		return res, nil
	}
	res.Best = res.Candidates[0].Output
	res.Weight = res.Candidates[0].Weight
	res.Passed = res.Best == wrappedWant
	return res, nil
}

// RunSuite validates every pair, writing one line per failure to
// failures (nil discards them) in the form "input -> expected FAILED".
func (v *Validator) RunSuite(pairs []Pair, intermediate bool, failures io.Writer) (SuiteReport, error) {
	if failures == nil {
		failures = io.Discard
	}
	var report SuiteReport
	for _, p := range pairs {
		res, err := v.Validate(p.Input, p.Expected, intermediate)
		if err != nil {
			return report, err
		}
		report.Results = append(report.Results, res)
		if res.Passed {
			report.Passed++
			continue
		}
		report.Failed++
		if _, err := fmt.Fprintf(failures, "%s -> %s FAILED\n", p.Input, p.Expected); err != nil {
			return report, fmt.Errorf("write failure log: %w", err)
		}
	}
	return report, nil
}

// rankOutputs collapses ranked paths to distinct outputs. Paths arrive
// sorted by weight then output, so the first occurrence of an output
// carries its minimum weight.
func rankOutputs(paths []wfst.Path) []Candidate {
	var out []Candidate
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		if seen[p.Output] {
			continue
		}
		seen[p.Output] = true
		out = append(out, Candidate{Output: p.Output, Weight: p.Weight})
	}
	return out
}
