package wfst

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteText serializes the automaton in the OpenFST-style text format: one
// arc per line as "src dst in out weight", followed by one "state weight"
// line per final state. The start state's arcs come first so a reader can
// recover it from the first line.
func (a *Automaton) WriteText(w io.Writer) error {
	if a.start == NoState {
		return ErrNoStartState
	}
	bw := bufio.NewWriter(w)
	order := a.stateOrder()
	for _, s := range order {
		for _, arc := range a.states[s].arcs {
			fmt.Fprintf(bw, "%d\t%d\t%d\t%d\t%s\n", s, arc.To, arc.In, arc.Out, arc.Weight)
		}
	}
	for _, s := range order {
		if f := a.states[s].final; !f.IsZero() {
			fmt.Fprintf(bw, "%d\t%s\n", s, f)
		}
	}
	return bw.Flush()
}

// Text renders WriteText into a byte slice, for golden comparisons.
func (a *Automaton) Text() ([]byte, error) {
	var buf bytes.Buffer
	if err := a.WriteText(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (a *Automaton) stateOrder() []int {
	order := make([]int, 0, len(a.states))
	order = append(order, a.start)
	for s := range a.states {
		if s != a.start {
			order = append(order, s)
		}
	}
	return order
}

// ReadText parses the text format produced by WriteText. The source state
// of the first line becomes the start state; states are created as they
// are mentioned.
func ReadText(r io.Reader, symt *SymbolTable) (*Automaton, error) {
	a := New(symt)
	ensure := func(s int) {
		for a.NumStates() <= s {
			a.AddState()
		}
	}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		ints := make([]int, 0, 4)
		for i, f := range fields {
			if i >= 4 || (len(fields) == 2 && i == 1) {
				break
			}
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("text fst line %d: %q: %w", lineNo, f, err)
			}
			ints = append(ints, n)
		}
		switch len(fields) {
		case 4, 5:
			w := One()
			if len(fields) == 5 {
				v, err := strconv.ParseFloat(fields[4], 64)
				if err != nil {
					return nil, fmt.Errorf("text fst line %d: weight %q: %w", lineNo, fields[4], err)
				}
				w = Weight(v)
			}
			ensure(ints[0])
			ensure(ints[1])
			if a.start == NoState {
				a.start = ints[0]
			}
			a.states[ints[0]].arcs = append(a.states[ints[0]].arcs, Arc{In: ints[2], Out: ints[3], Weight: w, To: ints[1]})
		case 1, 2:
			w := One()
			if len(fields) == 2 {
				v, err := strconv.ParseFloat(fields[1], 64)
				if err != nil {
					return nil, fmt.Errorf("text fst line %d: weight %q: %w", lineNo, fields[1], err)
				}
				w = Weight(v)
			}
			ensure(ints[0])
			if a.start == NoState {
				a.start = ints[0]
			}
			a.states[ints[0]].final = w
		default:
			return nil, fmt.Errorf("text fst line %d: expected 1, 2, 4 or 5 fields, got %d", lineNo, len(fields))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("text fst: %w", err)
	}
	return a, nil
}
