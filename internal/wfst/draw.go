package wfst

import (
	"bufio"
	"fmt"
	"io"
)

// WriteDot renders the automaton as a Graphviz digraph for debugging.
// Final states are double circles annotated with their acceptance weight;
// arcs show "in:out/weight" with symbol names where the table has them.
func (a *Automaton) WriteDot(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph wfst {")
	fmt.Fprintln(bw, "\trankdir = LR;")
	fmt.Fprintln(bw, "\tnode [shape = circle];")
	if a.start != NoState {
		fmt.Fprintln(bw, "\t_start [shape = point];")
		fmt.Fprintf(bw, "\t_start -> %d;\n", a.start)
	}
	for s := range a.states {
		if f := a.states[s].final; !f.IsZero() {
			fmt.Fprintf(bw, "\t%d [shape = doublecircle, label = \"%d/%s\"];\n", s, s, f)
		}
	}
	for s := range a.states {
		for _, arc := range a.states[s].arcs {
			fmt.Fprintf(bw, "\t%d -> %d [label = \"%s:%s/%s\"];\n", s, arc.To, a.symName(arc.In), a.symName(arc.Out), arc.Weight)
		}
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func (a *Automaton) symName(label int) string {
	if sym, ok := a.symt.Symbol(label); ok {
		return sym
	}
	return fmt.Sprintf("%d", label)
}
