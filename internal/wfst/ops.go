package wfst

import "slices"

// ClosureType selects between zero-or-more and one-or-more repetition.
type ClosureType int

const (
	ClosureStar ClosureType = iota
	ClosurePlus
)

// importStates appends b's states to a and returns the index offset applied
// to b's state numbering.
func (a *Automaton) importStates(b *Automaton) int {
	off := len(a.states)
	for i := range b.states {
		st := state{final: b.states[i].final}
		if len(b.states[i].arcs) > 0 {
			st.arcs = make([]Arc, len(b.states[i].arcs))
			copy(st.arcs, b.states[i].arcs)
			for j := range st.arcs {
				st.arcs[j].To += off
			}
		}
		a.states = append(a.states, st)
	}
	return off
}

// Concat appends b after the receiver: every final state of the receiver is
// glued to b's start by an epsilon arc carrying its acceptance weight, and
// only b's final states accept afterwards. An empty receiver adopts b.
func (a *Automaton) Concat(b *Automaton) error {
	if a.symt != b.symt {
		return ErrSymbolTable
	}
	a.sorted = SortNone
	if a.start == NoState {
		*a = *b.Clone()
		return nil
	}
	if b.start == NoState {
		// Concatenating the empty language leaves nothing accepting.
		for i := range a.states {
			a.states[i].final = Zero()
		}
		return nil
	}
	off := a.importStates(b)
	for i := 0; i < off; i++ {
		w := a.states[i].final
		if w.IsZero() {
			continue
		}
		a.states[i].final = Zero()
		a.states[i].arcs = append(a.states[i].arcs, Arc{In: Epsilon, Out: Epsilon, Weight: w, To: off + b.start})
	}
	return nil
}

// Union merges b into the receiver as a nondeterministic alternative. A new
// start state reaches both former start states by epsilon arcs. An empty
// receiver adopts b; an empty b leaves the receiver unchanged.
func (a *Automaton) Union(b *Automaton) error {
	if a.symt != b.symt {
		return ErrSymbolTable
	}
	a.sorted = SortNone
	if a.start == NoState {
		*a = *b.Clone()
		return nil
	}
	if b.start == NoState {
		return nil
	}
	off := a.importStates(b)
	oldStart := a.start
	s := a.AddState()
	a.states[s].arcs = append(a.states[s].arcs,
		Arc{In: Epsilon, Out: Epsilon, Weight: One(), To: oldStart},
		Arc{In: Epsilon, Out: Epsilon, Weight: One(), To: off + b.start},
	)
	a.start = s
	return nil
}

// Close applies Kleene closure in place. ClosurePlus adds a loop from every
// final state back to the start, carrying the state's acceptance weight.
// ClosureStar additionally prepends a new accepting start state so the
// empty string is accepted.
func (a *Automaton) Close(typ ClosureType) {
	if a.start == NoState {
		return
	}
	a.sorted = SortNone
	oldStart := a.start
	for i := range a.states {
		w := a.states[i].final
		if w.IsZero() {
			continue
		}
		a.states[i].arcs = append(a.states[i].arcs, Arc{In: Epsilon, Out: Epsilon, Weight: w, To: oldStart})
	}
	if typ == ClosureStar {
		s := a.AddState()
		a.states[s].final = One()
		a.states[s].arcs = append(a.states[s].arcs, Arc{In: Epsilon, Out: Epsilon, Weight: One(), To: oldStart})
		a.start = s
	}
}

// AddSuperFinal redirects every final state through a fresh state that
// becomes the only accepting one, and returns it. Acceptance weights move
// onto the connecting epsilon arcs.
func (a *Automaton) AddSuperFinal() int {
	s := a.AddState()
	for i := 0; i < len(a.states)-1; i++ {
		w := a.states[i].final
		if w.IsZero() {
			continue
		}
		a.states[i].final = Zero()
		a.states[i].arcs = append(a.states[i].arcs, Arc{In: Epsilon, Out: Epsilon, Weight: w, To: s})
	}
	a.states[s].final = One()
	a.sorted = SortNone
	return s
}

// SortArcs orders every state's arcs by the chosen label side, recording
// the order for Compose's precondition check. Ties break on the other
// label, then weight, then target state, so the result is deterministic.
func (a *Automaton) SortArcs(order SortOrder) {
	if order == SortNone {
		a.sorted = SortNone
		return
	}
	cmp := func(x, y Arc) int {
		p, q := x.In, y.In
		s, t := x.Out, y.Out
		if order == SortByOutput {
			p, q = x.Out, y.Out
			s, t = x.In, y.In
		}
		switch {
		case p != q:
			return p - q
		case s != t:
			return s - t
		case x.Weight != y.Weight:
			if x.Weight.Less(y.Weight) {
				return -1
			}
			return 1
		default:
			return x.To - y.To
		}
	}
	for i := range a.states {
		slices.SortStableFunc(a.states[i].arcs, cmp)
	}
	a.sorted = order
}
