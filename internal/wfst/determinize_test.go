package wfst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDelta = 1e-7

// maxArcsPerLabelPair reports the largest number of arcs sharing one
// (input, output) pair that leave any single state.
func maxArcsPerLabelPair(a *Automaton) int {
	most := 0
	for s := 0; s < a.NumStates(); s++ {
		seen := make(map[[2]int]int)
		for _, arc := range a.Arcs(s) {
			seen[[2]int{arc.In, arc.Out}]++
			if seen[[2]int{arc.In, arc.Out}] > most {
				most = seen[[2]int{arc.In, arc.Out}]
			}
		}
	}
	return most
}

func TestDeterminizeMergesParallelPaths(t *testing.T) {
	symt := newTable("a", "b")
	a := New(symt)
	s0, s1, s2, s3, s4 := a.AddState(), a.AddState(), a.AddState(), a.AddState(), a.AddState()
	require.NoError(t, a.SetStart(s0))
	require.NoError(t, a.AddArc(s0, Arc{In: Epsilon, Out: Epsilon, Weight: One(), To: s1}))
	require.NoError(t, a.AddArc(s0, Arc{In: Epsilon, Out: Epsilon, Weight: One(), To: s2}))
	require.NoError(t, a.AddArc(s1, Arc{In: 1, Out: 2, Weight: Weight(1), To: s3}))
	require.NoError(t, a.AddArc(s2, Arc{In: 1, Out: 2, Weight: Weight(3), To: s4}))
	require.NoError(t, a.SetFinal(s3, One()))
	require.NoError(t, a.SetFinal(s4, One()))

	det, err := Determinize(a, DeterminizeFunctional, testDelta)
	require.NoError(t, err)

	assert.Equal(t, 2, det.NumStates())
	assert.Equal(t, 1, det.NumArcs())
	paths := Paths(det)
	require.Len(t, paths, 1)
	assert.Equal(t, Path{Weight: 1, Output: "b"}, paths[0], "alternatives collapse to the cheaper weight")
}

func TestDeterminizeKeepsDistinctOutputs(t *testing.T) {
	symt := newTable("a", "b", "c")
	a := New(symt)
	s0, s1, s2 := a.AddState(), a.AddState(), a.AddState()
	require.NoError(t, a.SetStart(s0))
	require.NoError(t, a.AddArc(s0, Arc{In: 1, Out: 2, Weight: One(), To: s1}))
	require.NoError(t, a.AddArc(s0, Arc{In: 1, Out: 3, Weight: One(), To: s2}))
	require.NoError(t, a.SetFinal(s1, One()))
	require.NoError(t, a.SetFinal(s2, One()))

	det, err := Determinize(a, DeterminizeNonFunctional, testDelta)
	require.NoError(t, err)

	// Same input, two outputs: the relation survives because arcs are
	// deterministic per label pair, not per input label.
	assert.Equal(t, []string{"b", "c"}, outputs(Paths(det)))
	assert.Equal(t, 1, maxArcsPerLabelPair(det))
}

func TestDeterminizeFoldsEpsilonClosure(t *testing.T) {
	symt := newTable("a")
	a := New(symt)
	s0, s1, s2 := a.AddState(), a.AddState(), a.AddState()
	require.NoError(t, a.SetStart(s0))
	require.NoError(t, a.AddArc(s0, Arc{In: Epsilon, Out: Epsilon, Weight: Weight(0.5), To: s1}))
	require.NoError(t, a.AddArc(s1, Arc{In: 1, Out: 1, Weight: One(), To: s2}))
	require.NoError(t, a.SetFinal(s2, One()))

	det, err := Determinize(a, DeterminizeFunctional, testDelta)
	require.NoError(t, err)

	assert.Equal(t, 0, countEpsEps(det))
	paths := Paths(det)
	require.Len(t, paths, 1)
	assert.Equal(t, Path{Weight: 0.5, Output: "a"}, paths[0])
}

func TestDeterminizeResidualWeights(t *testing.T) {
	symt := newTable("a", "b", "c")
	// Two branches share the first label at different weights and then
	// diverge, so the subset must carry the weight difference forward.
	a := New(symt)
	s0, s1, s2, s3, s4 := a.AddState(), a.AddState(), a.AddState(), a.AddState(), a.AddState()
	require.NoError(t, a.SetStart(s0))
	require.NoError(t, a.AddArc(s0, Arc{In: 1, Out: 1, Weight: Weight(1), To: s1}))
	require.NoError(t, a.AddArc(s0, Arc{In: 1, Out: 1, Weight: Weight(4), To: s2}))
	require.NoError(t, a.AddArc(s1, Arc{In: 2, Out: 2, Weight: One(), To: s3}))
	require.NoError(t, a.AddArc(s2, Arc{In: 3, Out: 3, Weight: One(), To: s4}))
	require.NoError(t, a.SetFinal(s3, One()))
	require.NoError(t, a.SetFinal(s4, One()))

	det, err := Determinize(a, DeterminizeFunctional, testDelta)
	require.NoError(t, err)

	paths := Paths(det)
	require.Len(t, paths, 2)
	assert.Equal(t, Path{Weight: 1, Output: "ab"}, paths[0])
	assert.Equal(t, Path{Weight: 4, Output: "ac"}, paths[1])
	assert.Equal(t, 1, maxArcsPerLabelPair(det))
}

func TestDeterminizeEmpty(t *testing.T) {
	det, err := Determinize(New(newTable("a")), DeterminizeFunctional, testDelta)
	require.NoError(t, err)
	assert.Equal(t, NoState, det.Start())
}
