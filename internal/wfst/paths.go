package wfst

import (
	"slices"
	"strings"
)

// Path is one accepting path through a machine: its total weight and the
// decoded output string.
type Path struct {
	Weight Weight
	Output string
}

// Paths enumerates the accepting paths of a, decoded from output labels,
// cheapest first (ties break on the output string). Arcs that would revisit
// a state already on the current path are skipped: cycles can only repeat
// or worsen a cost under minimum-cost semantics, and skipping them keeps
// the enumeration finite.
func Paths(a *Automaton) []Path {
	if a.start == NoState {
		return nil
	}
	var out []Path
	onPath := make([]bool, len(a.states))
	var labels []int

	var walk func(s int, w Weight)
	walk = func(s int, w Weight) {
		if f := a.states[s].final; !f.IsZero() {
			out = append(out, Path{Weight: w.Times(f), Output: decodeLabels(a.symt, labels)})
		}
		onPath[s] = true
		for _, arc := range a.states[s].arcs {
			if onPath[arc.To] || arc.Weight.IsZero() {
				continue
			}
			if arc.Out != Epsilon {
				labels = append(labels, arc.Out)
			}
			walk(arc.To, w.Times(arc.Weight))
			if arc.Out != Epsilon {
				labels = labels[:len(labels)-1]
			}
		}
		onPath[s] = false
	}
	walk(a.start, One())

	slices.SortStableFunc(out, func(p, q Path) int {
		switch {
		case p.Weight.Less(q.Weight):
			return -1
		case q.Weight.Less(p.Weight):
			return 1
		default:
			return strings.Compare(p.Output, q.Output)
		}
	})
	return out
}

func decodeLabels(symt *SymbolTable, labels []int) string {
	var b strings.Builder
	for _, l := range labels {
		if sym, ok := symt.Symbol(l); ok {
			b.WriteString(sym)
		}
	}
	return b.String()
}

// ApplyInput restricts the relation's input side to the string s by
// composing the identity chain of s against it. The relation is cloned
// before sorting so shared handles stay untouched.
func ApplyInput(relation *Automaton, s string) (*Automaton, error) {
	lin := LinearString(relation.symt, s)
	lin.SortArcs(SortByOutput)
	rel := relation.Clone()
	rel.SortArcs(SortByInput)
	return Compose(lin, rel)
}

// ApplyOutput restricts the relation's output side to the string s.
func ApplyOutput(relation *Automaton, s string) (*Automaton, error) {
	rel := relation.Clone()
	rel.SortArcs(SortByOutput)
	lin := LinearString(relation.symt, s)
	lin.SortArcs(SortByInput)
	return Compose(rel, lin)
}
