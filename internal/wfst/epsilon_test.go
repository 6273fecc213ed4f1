package wfst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countEpsEps(a *Automaton) int {
	n := 0
	for s := 0; s < a.NumStates(); s++ {
		for _, arc := range a.Arcs(s) {
			if arc.In == Epsilon && arc.Out == Epsilon {
				n++
			}
		}
	}
	return n
}

func TestRemoveEpsilonsFoldsWeights(t *testing.T) {
	symt := newTable("a")
	a := New(symt)
	s0, s1, s2 := a.AddState(), a.AddState(), a.AddState()
	require.NoError(t, a.SetStart(s0))
	require.NoError(t, a.SetFinal(s2, Weight(0.25)))
	require.NoError(t, a.AddArc(s0, Arc{In: Epsilon, Out: Epsilon, Weight: Weight(1), To: s1}))
	require.NoError(t, a.AddArc(s1, Arc{In: 1, Out: 1, Weight: Weight(0.5), To: s2}))

	before := Paths(a)
	a.RemoveEpsilons()
	after := Paths(a)

	assert.Equal(t, before, after, "the weighted language is unchanged")
	assert.Equal(t, 0, countEpsEps(a))

	// The folded arc carries the closure weight.
	arcs := a.Arcs(s0)
	require.Len(t, arcs, 1)
	assert.Equal(t, Arc{In: 1, Out: 1, Weight: Weight(1.5), To: s2}, arcs[0])
}

func TestRemoveEpsilonsPicksCheapestClosure(t *testing.T) {
	symt := newTable("a")
	a := New(symt)
	s0, s1 := a.AddState(), a.AddState()
	require.NoError(t, a.SetStart(s0))
	require.NoError(t, a.SetFinal(s1, One()))
	require.NoError(t, a.AddArc(s0, Arc{In: Epsilon, Out: Epsilon, Weight: Weight(3), To: s1}))
	require.NoError(t, a.AddArc(s0, Arc{In: Epsilon, Out: Epsilon, Weight: Weight(1), To: s1}))

	a.RemoveEpsilons()

	assert.Equal(t, Weight(1), a.Final(s0), "finality flows back at the minimum closure weight")
}

func TestRemoveEpsilonsFinalityThroughClosure(t *testing.T) {
	symt := newTable("a")
	a := New(symt)
	s0, s1 := a.AddState(), a.AddState()
	require.NoError(t, a.SetStart(s0))
	require.NoError(t, a.SetFinal(s1, Weight(0.5)))
	require.NoError(t, a.AddArc(s0, Arc{In: Epsilon, Out: Epsilon, Weight: Weight(2), To: s1}))

	a.RemoveEpsilons()

	assert.Equal(t, Weight(2.5), a.Final(s0))
	assert.Equal(t, 0, a.NumArcs())
}

func TestRemoveEpsilonsKeepsSingleSidedEpsilon(t *testing.T) {
	symt := newTable("a")
	// Deletion (a:eps) and insertion (eps:a) arcs are real transductions,
	// not structural epsilons.
	a := Linear(symt, []int{1, 0}, []int{0, 1}, One())

	a.RemoveEpsilons()

	assert.Equal(t, 2, a.NumArcs())
	assert.Equal(t, Arc{In: 1, Out: Epsilon, Weight: One(), To: 1}, a.Arcs(0)[0])
	assert.Equal(t, Arc{In: Epsilon, Out: 1, Weight: One(), To: 2}, a.Arcs(1)[0])
}

func TestRemoveEpsilonsHandlesCycle(t *testing.T) {
	symt := newTable("a")
	a := New(symt)
	s0, s1 := a.AddState(), a.AddState()
	require.NoError(t, a.SetStart(s0))
	require.NoError(t, a.SetFinal(s1, One()))
	require.NoError(t, a.AddArc(s0, Arc{In: Epsilon, Out: Epsilon, Weight: Weight(1), To: s1}))
	require.NoError(t, a.AddArc(s1, Arc{In: Epsilon, Out: Epsilon, Weight: Weight(1), To: s0}))

	a.RemoveEpsilons()

	assert.Equal(t, 0, countEpsEps(a))
	assert.Equal(t, Weight(1), a.Final(s0))
}
