package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sandhi/internal/wfst"
)

func TestScenarios(t *testing.T) {
	RunDir(t, "testdata/scenarios")
}

func TestRunScenarioReportsRankedResults(t *testing.T) {
	report := Run(t, "testdata/scenarios/chained_tone.yaml")

	require.Len(t, report.Results, 2)
	best := report.Results[0]
	assert.True(t, best.Passed)
	assert.Equal(t, "#ni3jo14##3>1>4##14>14#", best.Best)
	assert.Equal(t, wfst.One(), best.Weight)

	// The identity passthrough survives as a costlier candidate.
	require.Len(t, best.Candidates, 2)
	assert.Equal(t, "#ni{3>1>4}jo14#", best.Candidates[1].Output)
	assert.Equal(t, wfst.Weight(150), best.Candidates[1].Weight)
}

func TestScenarioSymbolsAppendsBoundary(t *testing.T) {
	table := scenarioSymbols(t, &Scenario{Symbols: []string{"a", "b"}})

	if _, ok := table.Label(wfst.BoundarySymbol); !ok {
		t.Fatalf("boundary symbol missing from inline inventory")
	}
	// Epsilon, a, b, boundary.
	assert.Equal(t, 4, table.Len())
}
