package wfst

import "fmt"

// NoState marks the absence of a start state.
const NoState = -1

// Arc is a single weighted transition: consume In, emit Out, at Weight,
// moving to state To. Label 0 on either side is epsilon.
type Arc struct {
	In     int
	Out    int
	Weight Weight
	To     int
}

// SortOrder records how a machine's arcs are currently ordered. Compose
// requires its left operand sorted by output label and its right operand
// sorted by input label; every mutation resets the order to SortNone.
type SortOrder int

const (
	SortNone SortOrder = iota
	SortByInput
	SortByOutput
)

type state struct {
	arcs  []Arc
	final Weight
}

// Automaton is a mutable weighted finite-state transducer. States are dense
// integer indices; a state is final when its final weight is not Zero().
type Automaton struct {
	symt   *SymbolTable
	states []state
	start  int
	sorted SortOrder
}

// New creates an empty automaton over the given symbol table. It has no
// states and no start state.
func New(symt *SymbolTable) *Automaton {
	return &Automaton{symt: symt, start: NoState}
}

// SymbolTable returns the table the automaton was built over.
func (a *Automaton) SymbolTable() *SymbolTable { return a.symt }

// NumStates returns the number of states.
func (a *Automaton) NumStates() int { return len(a.states) }

// NumArcs returns the total number of arcs across all states.
func (a *Automaton) NumArcs() int {
	n := 0
	for i := range a.states {
		n += len(a.states[i].arcs)
	}
	return n
}

// Start returns the start state, or NoState.
func (a *Automaton) Start() int { return a.start }

// Sorted returns the current arc sort order.
func (a *Automaton) Sorted() SortOrder { return a.sorted }

// AddState appends a fresh non-final state and returns its index.
func (a *Automaton) AddState() int {
	a.states = append(a.states, state{final: Zero()})
	return len(a.states) - 1
}

// SetStart marks s as the start state.
func (a *Automaton) SetStart(s int) error {
	if s < 0 || s >= len(a.states) {
		return fmt.Errorf("set start %d: %w", s, ErrBadState)
	}
	a.start = s
	return nil
}

// SetFinal gives s the acceptance weight w. Passing Zero() makes the state
// non-final again.
func (a *Automaton) SetFinal(s int, w Weight) error {
	if s < 0 || s >= len(a.states) {
		return fmt.Errorf("set final %d: %w", s, ErrBadState)
	}
	a.states[s].final = w
	return nil
}

// Final returns the acceptance weight of s, Zero() when s is not final.
func (a *Automaton) Final(s int) Weight {
	if s < 0 || s >= len(a.states) {
		return Zero()
	}
	return a.states[s].final
}

// IsFinal reports whether s accepts.
func (a *Automaton) IsFinal(s int) bool { return !a.Final(s).IsZero() }

// AddArc appends an arc leaving from.
func (a *Automaton) AddArc(from int, arc Arc) error {
	if from < 0 || from >= len(a.states) {
		return fmt.Errorf("add arc from %d: %w", from, ErrBadState)
	}
	if arc.To < 0 || arc.To >= len(a.states) {
		return fmt.Errorf("add arc to %d: %w", arc.To, ErrBadState)
	}
	a.states[from].arcs = append(a.states[from].arcs, arc)
	a.sorted = SortNone
	return nil
}

// Arcs returns the arcs leaving s. The slice is live; callers must not
// mutate it.
func (a *Automaton) Arcs(s int) []Arc {
	if s < 0 || s >= len(a.states) {
		return nil
	}
	return a.states[s].arcs
}

// Clone returns a deep copy sharing only the symbol table.
func (a *Automaton) Clone() *Automaton {
	c := &Automaton{
		symt:   a.symt,
		states: make([]state, len(a.states)),
		start:  a.start,
		sorted: a.sorted,
	}
	for i := range a.states {
		c.states[i].final = a.states[i].final
		if len(a.states[i].arcs) > 0 {
			c.states[i].arcs = make([]Arc, len(a.states[i].arcs))
			copy(c.states[i].arcs, a.states[i].arcs)
		}
	}
	return c
}

// RewriteArcs replaces every arc with fn(arc). Used by the rule assembler
// to force one side of a fragment to epsilon.
func (a *Automaton) RewriteArcs(fn func(Arc) Arc) {
	for i := range a.states {
		arcs := a.states[i].arcs
		for j := range arcs {
			arcs[j] = fn(arcs[j])
		}
	}
	a.sorted = SortNone
}

// Linear builds a chain transducer consuming ins and emitting outs, one
// pair per arc, with the given acceptance weight on the last state. The
// shorter label slice is padded with epsilon.
func Linear(symt *SymbolTable, ins, outs []int, final Weight) *Automaton {
	n := len(ins)
	if len(outs) > n {
		n = len(outs)
	}
	a := New(symt)
	prev := a.AddState()
	a.start = prev
	for i := 0; i < n; i++ {
		in, out := Epsilon, Epsilon
		if i < len(ins) {
			in = ins[i]
		}
		if i < len(outs) {
			out = outs[i]
		}
		next := a.AddState()
		a.states[prev].arcs = append(a.states[prev].arcs, Arc{In: in, Out: out, Weight: One(), To: next})
		prev = next
	}
	a.states[prev].final = final
	return a
}

// LinearString builds the identity chain for s, one arc per rune. Runes
// missing from the table map to epsilon.
func LinearString(symt *SymbolTable, s string) *Automaton {
	var labels []int
	for _, r := range s {
		l, ok := symt.Label(string(r))
		if !ok {
			l = Epsilon
		}
		labels = append(labels, l)
	}
	return Linear(symt, labels, labels, One())
}

// SigmaStar builds the identity relation over any sequence of symbols: a
// single start and final state with one self-loop per non-epsilon symbol,
// all at weight One().
func SigmaStar(symt *SymbolTable) *Automaton {
	return WeightedSigmaStar(symt, One())
}

// WeightedSigmaStar is SigmaStar with every symbol arc at the given cost.
// The union pipeline seeds its accumulator with it so that unmatched forms
// always have a passthrough derivation, priced above any real rule path.
func WeightedSigmaStar(symt *SymbolTable, cost Weight) *Automaton {
	a := New(symt)
	s := a.AddState()
	a.start = s
	a.states[s].final = One()
	for l := 1; l < symt.Len(); l++ {
		a.states[s].arcs = append(a.states[s].arcs, Arc{In: l, Out: l, Weight: cost, To: s})
	}
	return a
}
