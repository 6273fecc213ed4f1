package wfst

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// MinimizeConfig controls Minimize. Delta is the weight tolerance used when
// comparing states; AllowNondet records the caller's claim that the input
// may be nondeterministic. The merge used here is a functional bisimulation
// and is language-preserving for nondeterministic machines too, so the flag
// carries no behavioral difference; it mirrors the call sites that assert
// determinism after a functional determinization.
type MinimizeConfig struct {
	Delta       float64
	AllowNondet bool
}

// Minimize reduces the state count in place by repeatedly merging states
// with identical behavior: the same acceptance weight and the same outgoing
// arcs once targets are read through the current merge classes. Unreachable
// and dead states are dropped first.
func (a *Automaton) Minimize(cfg MinimizeConfig) {
	if a.start == NoState {
		return
	}
	a.connect()
	if len(a.states) == 0 {
		return
	}

	rep := make([]int, len(a.states))
	for i := range rep {
		rep[i] = i
	}
	for {
		groups := make(map[string]int, len(a.states))
		next := make([]int, len(a.states))
		changed := false
		for s := range a.states {
			sig := a.stateSignature(s, rep, cfg.Delta)
			if first, ok := groups[sig]; ok {
				next[s] = first
			} else {
				groups[sig] = s
				next[s] = s
			}
		}
		for i := range next {
			if next[i] != rep[i] {
				changed = true
			}
		}
		rep = next
		if !changed {
			break
		}
	}
	a.mergeClasses(rep)
}

// stateSignature renders a state's behavior with arc targets replaced by
// their current class representatives. Arcs are sorted so the signature is
// order-independent.
func (a *Automaton) stateSignature(s int, rep []int, delta float64) string {
	type sigArc struct {
		in, out, to int
		weight      float64
	}
	arcs := make([]sigArc, 0, len(a.states[s].arcs))
	for _, arc := range a.states[s].arcs {
		arcs = append(arcs, sigArc{in: arc.In, out: arc.Out, to: rep[arc.To], weight: quantize(arc.Weight, delta)})
	}
	sort.Slice(arcs, func(i, j int) bool {
		x, y := arcs[i], arcs[j]
		switch {
		case x.in != y.in:
			return x.in < y.in
		case x.out != y.out:
			return x.out < y.out
		case x.to != y.to:
			return x.to < y.to
		default:
			return x.weight < y.weight
		}
	})
	var b strings.Builder
	fmt.Fprintf(&b, "f%g", quantize(a.states[s].final, delta))
	for _, arc := range arcs {
		fmt.Fprintf(&b, ";%d,%d,%d,%g", arc.in, arc.out, arc.to, arc.weight)
	}
	return b.String()
}

func quantize(w Weight, delta float64) float64 {
	if w.IsZero() {
		return math.Inf(1)
	}
	if delta <= 0 {
		return float64(w)
	}
	return math.Round(float64(w)/delta) * delta
}

// mergeClasses rebuilds the automaton with one state per representative.
func (a *Automaton) mergeClasses(rep []int) {
	remap := make([]int, len(a.states))
	for i := range remap {
		remap[i] = -1
	}
	var kept []int
	for s := range a.states {
		if rep[s] == s {
			remap[s] = len(kept)
			kept = append(kept, s)
		}
	}
	rebuilt := make([]state, len(kept))
	for i, s := range kept {
		st := state{final: a.states[s].final}
		for _, arc := range a.states[s].arcs {
			st.arcs = append(st.arcs, Arc{In: arc.In, Out: arc.Out, Weight: arc.Weight, To: remap[rep[arc.To]]})
		}
		rebuilt[i] = dedupeArcs(st)
	}
	a.states = rebuilt
	a.start = remap[rep[a.start]]
	a.sorted = SortNone
}

// dedupeArcs collapses parallel arcs with the same labels and target,
// keeping the minimum weight. Dropping the costlier duplicate is exact
// under minimum-cost path semantics.
func dedupeArcs(st state) state {
	if len(st.arcs) < 2 {
		return st
	}
	sort.Slice(st.arcs, func(i, j int) bool {
		x, y := st.arcs[i], st.arcs[j]
		switch {
		case x.In != y.In:
			return x.In < y.In
		case x.Out != y.Out:
			return x.Out < y.Out
		case x.To != y.To:
			return x.To < y.To
		default:
			return x.Weight.Less(y.Weight)
		}
	})
	out := st.arcs[:1]
	for _, arc := range st.arcs[1:] {
		last := &out[len(out)-1]
		if arc.In == last.In && arc.Out == last.Out && arc.To == last.To {
			last.Weight = last.Weight.Plus(arc.Weight)
			continue
		}
		out = append(out, arc)
	}
	st.arcs = out
	return st
}
