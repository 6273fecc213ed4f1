package wfst

// Optimize is the best-effort cleanup pass run between pipeline stages:
// eps:eps arcs are folded away, parallel duplicate arcs collapse to their
// minimum weight, and states that cannot lie on an accepting path are
// dropped. Delta bounds how small a weight improvement still counts during
// the epsilon closure. The accepted weighted language is unchanged.
func (a *Automaton) Optimize(delta float64) {
	if a.start == NoState {
		return
	}
	a.removeEpsilons(delta)
	for i := range a.states {
		a.states[i] = dedupeArcs(a.states[i])
	}
	a.connect()
	a.sorted = SortNone
}

// connect removes states that are unreachable from the start or cannot
// reach a final state, renumbering the survivors in order. If the start
// state itself dies the automaton becomes empty.
func (a *Automaton) connect() {
	if a.start == NoState {
		return
	}
	n := len(a.states)
	fwd := make([]bool, n)
	stack := []int{a.start}
	fwd[a.start] = true
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, arc := range a.states[s].arcs {
			if !fwd[arc.To] {
				fwd[arc.To] = true
				stack = append(stack, arc.To)
			}
		}
	}

	back := make([][]int, n)
	for s := range a.states {
		for _, arc := range a.states[s].arcs {
			back[arc.To] = append(back[arc.To], s)
		}
	}
	co := make([]bool, n)
	for s := range a.states {
		if !a.states[s].final.IsZero() && !co[s] {
			co[s] = true
			stack = append(stack, s)
		}
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range back[s] {
			if !co[p] {
				co[p] = true
				stack = append(stack, p)
			}
		}
	}

	remap := make([]int, n)
	kept := 0
	for s := 0; s < n; s++ {
		if fwd[s] && co[s] {
			remap[s] = kept
			kept++
		} else {
			remap[s] = -1
		}
	}
	if remap[a.start] == -1 {
		a.states = nil
		a.start = NoState
		a.sorted = SortNone
		return
	}
	if kept == n {
		return
	}
	rebuilt := make([]state, kept)
	for s := 0; s < n; s++ {
		if remap[s] == -1 {
			continue
		}
		st := state{final: a.states[s].final}
		for _, arc := range a.states[s].arcs {
			if remap[arc.To] == -1 {
				continue
			}
			arc.To = remap[arc.To]
			st.arcs = append(st.arcs, arc)
		}
		rebuilt[remap[s]] = st
	}
	a.states = rebuilt
	a.start = remap[a.start]
	a.sorted = SortNone
}
