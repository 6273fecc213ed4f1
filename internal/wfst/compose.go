package wfst

import "sort"

// Compose joins two transducers along matching output/input labels,
// producing the relation b after a: an input accepted by a whose output is
// accepted as input by b maps to b's output, at the summed weight.
//
// Precondition: a must be arc-sorted by output label and b by input label
// (SortArcs), otherwise ErrUnsorted is returned. Epsilon labels on the
// inner sides advance one operand at a time; the duplicate interleavings
// this admits carry identical weights, so minimum-weight semantics are
// unaffected.
func Compose(a, b *Automaton) (*Automaton, error) {
	if a.symt != b.symt {
		return nil, ErrSymbolTable
	}
	if a.sorted != SortByOutput || b.sorted != SortByInput {
		return nil, ErrUnsorted
	}
	out := New(a.symt)
	if a.start == NoState || b.start == NoState {
		return out, nil
	}

	type pair struct{ s1, s2 int }
	ids := make(map[pair]int)
	queue := make([]pair, 0, len(a.states))
	visit := func(p pair) int {
		if id, ok := ids[p]; ok {
			return id
		}
		id := out.AddState()
		ids[p] = id
		queue = append(queue, p)
		return id
	}

	out.start = visit(pair{a.start, b.start})
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		id := ids[p]
		out.states[id].final = a.states[p.s1].final.Times(b.states[p.s2].final)

		bArcs := b.states[p.s2].arcs
		for _, ar := range a.states[p.s1].arcs {
			if ar.Out == Epsilon {
				to := visit(pair{ar.To, p.s2})
				out.states[id].arcs = append(out.states[id].arcs, Arc{In: ar.In, Out: Epsilon, Weight: ar.Weight, To: to})
				continue
			}
			lo := sort.Search(len(bArcs), func(i int) bool { return bArcs[i].In >= ar.Out })
			for i := lo; i < len(bArcs) && bArcs[i].In == ar.Out; i++ {
				br := bArcs[i]
				to := visit(pair{ar.To, br.To})
				out.states[id].arcs = append(out.states[id].arcs, Arc{In: ar.In, Out: br.Out, Weight: ar.Weight.Times(br.Weight), To: to})
			}
		}
		// Input-epsilon arcs sort first on the right operand.
		for _, br := range bArcs {
			if br.In != Epsilon {
				break
			}
			to := visit(pair{p.s1, br.To})
			out.states[id].arcs = append(out.states[id].arcs, Arc{In: Epsilon, Out: br.Out, Weight: br.Weight, To: to})
		}
	}
	return out, nil
}
