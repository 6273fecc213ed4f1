package wfst

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// DeterminizeMode names the caller's claim about the relation being
// determinized. Functional asserts that each input maps to at most one
// output; the claim is a precondition on authored rule sets and is not
// verified here. Both modes run the same construction, which preserves the
// weighted relation either way.
type DeterminizeMode int

const (
	DeterminizeFunctional DeterminizeMode = iota
	DeterminizeNonFunctional
)

type detEntry struct {
	state    int
	residual Weight
}

type pairLabel struct {
	in, out int
}

// Determinize runs a weighted subset construction over (input, output)
// arc label pairs with residual weights, returning a new machine with at
// most one arc per label pair leaving each state. Eps:eps arcs are closed
// into the subsets. Delta controls how finely residual weights are
// distinguished when subsets are compared; pathological cyclic weight
// structures can make the construction diverge, which is an accepted
// property of the algorithm rather than a detected error.
func Determinize(a *Automaton, mode DeterminizeMode, delta float64) (*Automaton, error) {
	out := New(a.symt)
	if a.start == NoState {
		return out, nil
	}

	start := closeEntries(a, []detEntry{{state: a.start, residual: One()}}, delta)
	ids := make(map[string]int)
	var worklist [][]detEntry

	intern := func(set []detEntry) int {
		key := subsetKey(set, delta)
		if id, ok := ids[key]; ok {
			return id
		}
		id := out.AddState()
		ids[key] = id
		worklist = append(worklist, set)
		return id
	}

	out.start = intern(start)
	for len(worklist) > 0 {
		set := worklist[0]
		worklist = worklist[1:]
		id := intern(set)

		final := Zero()
		moves := make(map[pairLabel][]detEntry)
		var labels []pairLabel
		for _, e := range set {
			final = final.Plus(e.residual.Times(a.states[e.state].final))
			for _, arc := range a.states[e.state].arcs {
				if arc.In == Epsilon && arc.Out == Epsilon {
					continue // closed into the subset already
				}
				l := pairLabel{in: arc.In, out: arc.Out}
				if _, seen := moves[l]; !seen {
					labels = append(labels, l)
				}
				moves[l] = mergeEntry(moves[l], detEntry{state: arc.To, residual: e.residual.Times(arc.Weight)})
			}
		}
		out.states[id].final = final

		sort.Slice(labels, func(i, j int) bool {
			if labels[i].in != labels[j].in {
				return labels[i].in < labels[j].in
			}
			return labels[i].out < labels[j].out
		})
		for _, l := range labels {
			next := closeEntries(a, moves[l], delta)
			w, next := shiftCommonWeight(next)
			to := intern(next)
			out.states[id].arcs = append(out.states[id].arcs, Arc{In: l.in, Out: l.out, Weight: w, To: to})
		}
	}
	return out, nil
}

// mergeEntry inserts e keeping entries unique per state at the minimum
// residual, preserving ascending state order.
func mergeEntry(set []detEntry, e detEntry) []detEntry {
	i := sort.Search(len(set), func(i int) bool { return set[i].state >= e.state })
	if i < len(set) && set[i].state == e.state {
		set[i].residual = set[i].residual.Plus(e.residual)
		return set
	}
	set = append(set, detEntry{})
	copy(set[i+1:], set[i:])
	set[i] = e
	return set
}

// closeEntries folds the eps:eps closure of every entry into the subset.
// The closure of a closure state is already inside epsClosure's fixpoint, so
// one pass over the original entries suffices.
func closeEntries(a *Automaton, set []detEntry, delta float64) []detEntry {
	closed := make([]detEntry, len(set))
	copy(closed, set)
	for _, e := range set {
		for _, c := range epsClosure(a.states, e.state, delta) {
			if c.state == e.state {
				continue
			}
			closed = mergeEntry(closed, detEntry{state: c.state, residual: e.residual.Times(c.weight)})
		}
	}
	return closed
}

// shiftCommonWeight factors the minimum residual out of the subset so that
// subsets differing only by a common path prefix weight coincide.
func shiftCommonWeight(set []detEntry) (Weight, []detEntry) {
	min := Zero()
	for _, e := range set {
		min = min.Plus(e.residual)
	}
	if min.IsZero() {
		return One(), set
	}
	shifted := make([]detEntry, len(set))
	for i, e := range set {
		shifted[i] = detEntry{state: e.state, residual: e.residual - min}
	}
	return min, shifted
}

func subsetKey(set []detEntry, delta float64) string {
	var b strings.Builder
	for i, e := range set {
		if i > 0 {
			b.WriteByte('|')
		}
		if e.residual.IsZero() {
			fmt.Fprintf(&b, "%d:z", e.state)
			continue
		}
		q := float64(e.residual)
		if delta > 0 {
			q = math.Round(q / delta)
		}
		fmt.Fprintf(&b, "%d:%g", e.state, q)
	}
	return b.String()
}
