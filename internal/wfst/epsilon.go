package wfst

import "sort"

// RemoveEpsilons eliminates every eps:eps arc by folding its tropical
// shortest-distance closure into the surrounding arcs and final weights.
// Arcs that are epsilon on only one side are ordinary labeled arcs and are
// kept.
func (a *Automaton) RemoveEpsilons() {
	a.removeEpsilons(0)
}

func (a *Automaton) removeEpsilons(delta float64) {
	if a.start == NoState {
		return
	}
	old := a.states
	rebuilt := make([]state, len(old))
	for s := range old {
		dist := epsClosure(old, s, delta)
		st := state{final: Zero()}
		for _, e := range dist {
			t := e.state
			st.final = st.final.Plus(e.weight.Times(old[t].final))
			for _, arc := range old[t].arcs {
				if arc.In == Epsilon && arc.Out == Epsilon {
					continue
				}
				st.arcs = append(st.arcs, Arc{In: arc.In, Out: arc.Out, Weight: e.weight.Times(arc.Weight), To: arc.To})
			}
		}
		rebuilt[s] = st
	}
	a.states = rebuilt
	a.sorted = SortNone
}

type closureEntry struct {
	state  int
	weight Weight
}

// epsClosure returns the states reachable from s over eps:eps arcs with
// their minimum accumulated weight, s itself included at One(), ordered by
// state index. Improvements smaller than delta are ignored so that float
// noise cannot keep the relaxation alive.
func epsClosure(states []state, s int, delta float64) []closureEntry {
	best := map[int]Weight{s: One()}
	for changed := true; changed; {
		changed = false
		for t, r := range best {
			for _, arc := range states[t].arcs {
				if arc.In != Epsilon || arc.Out != Epsilon {
					continue
				}
				cand := r.Times(arc.Weight)
				cur, ok := best[arc.To]
				if !ok || cand.Value() < cur.Value()-delta {
					best[arc.To] = cand
					changed = true
				}
			}
		}
	}
	out := make([]closureEntry, 0, len(best))
	for t, w := range best {
		out = append(out, closureEntry{state: t, weight: w})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].state < out[j].state })
	return out
}
