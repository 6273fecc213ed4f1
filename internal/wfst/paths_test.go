package wfst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathsRankedCheapestFirst(t *testing.T) {
	symt := newTable("a", "b", "c")
	a := New(symt)
	s0 := a.AddState()
	require.NoError(t, a.SetStart(s0))
	for label, w := range map[int]Weight{1: 2, 2: 1, 3: 1} {
		s := a.AddState()
		require.NoError(t, a.SetFinal(s, One()))
		require.NoError(t, a.AddArc(s0, Arc{In: label, Out: label, Weight: w, To: s}))
	}

	paths := Paths(a)

	require.Len(t, paths, 3)
	assert.Equal(t, Path{Weight: 1, Output: "b"}, paths[0])
	assert.Equal(t, Path{Weight: 1, Output: "c"}, paths[1], "equal weights tie break on the output")
	assert.Equal(t, Path{Weight: 2, Output: "a"}, paths[2])
}

func TestPathsSkipsCycles(t *testing.T) {
	a := SigmaStar(newTable("a", "b"))

	paths := Paths(a)

	require.Len(t, paths, 1)
	assert.Equal(t, Path{Weight: 0, Output: ""}, paths[0])
}

func TestPathsSkipsUnreachableWeight(t *testing.T) {
	symt := newTable("a", "b")
	a := New(symt)
	s0, s1, s2 := a.AddState(), a.AddState(), a.AddState()
	require.NoError(t, a.SetStart(s0))
	require.NoError(t, a.SetFinal(s1, One()))
	require.NoError(t, a.SetFinal(s2, One()))
	require.NoError(t, a.AddArc(s0, Arc{In: 1, Out: 1, Weight: One(), To: s1}))
	require.NoError(t, a.AddArc(s0, Arc{In: 2, Out: 2, Weight: Zero(), To: s2}))

	assert.Equal(t, []string{"a"}, outputs(Paths(a)))
}

func TestPathsDecodeSkipsEpsilonOutputs(t *testing.T) {
	symt := newTable("a", "b")
	// a:eps then eps:b, so input and output strings differ.
	a := Linear(symt, []int{1, 0}, []int{0, 2}, One())

	paths := Paths(a)

	require.Len(t, paths, 1)
	assert.Equal(t, "b", paths[0].Output)
}

func TestPathsEmptyMachine(t *testing.T) {
	assert.Nil(t, Paths(New(newTable("a"))))
}

func TestApplyInputProjectsRelation(t *testing.T) {
	symt := newTable("a", "b")
	rel := Linear(symt, []int{1}, []int{2}, One())

	got, err := ApplyInput(rel, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, outputs(Paths(got)))

	// Inputs outside the relation produce the empty machine.
	none, err := ApplyInput(rel, "b")
	require.NoError(t, err)
	assert.Empty(t, Paths(none))
}

func TestApplyOutputRestrictsRelation(t *testing.T) {
	symt := newTable("a", "b")
	rel := Linear(symt, []int{1}, []int{2}, One())

	got, err := ApplyOutput(rel, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, outputs(Paths(got)))

	none, err := ApplyOutput(rel, "a")
	require.NoError(t, err)
	assert.Empty(t, Paths(none))
}

func TestApplyLeavesRelationUntouched(t *testing.T) {
	symt := newTable("a", "b")
	rel := Linear(symt, []int{1}, []int{2}, One())
	rel.SortArcs(SortByInput)

	_, err := ApplyInput(rel, "a")
	require.NoError(t, err)
	_, err = ApplyOutput(rel, "b")
	require.NoError(t, err)

	assert.Equal(t, SortByInput, rel.Sorted(), "apply works on clones")
}
