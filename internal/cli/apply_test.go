package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyRanksDerivations(t *testing.T) {
	manifestPath := chainedProject(t)

	out, err := runSandhi(t, "apply", "-m", manifestPath, "ni{3>1>4}jo14")
	require.NoError(t, err)

	assert.Contains(t, out, `derivation(s) for "ni{3>1>4}jo14"`)
	assert.Contains(t, out, "  1. #ni3jo14##3>1>4##14>14# (weight 0)")
	// The priced identity branch survives as the fallback reading.
	assert.Contains(t, out, "#ni{3>1>4}jo14# (weight 150)")
}

func TestApplyLinearIdentity(t *testing.T) {
	manifestPath := linearProject(t)

	out, err := runSandhi(t, "apply", "-m", manifestPath, "a1b1c1d1e")
	require.NoError(t, err)
	assert.Contains(t, out, "  1. #a1b1c1d1e# (weight 0)")
}

func TestApplyNoDerivation(t *testing.T) {
	manifestPath := linearProject(t)

	// Too few tone positions for the composition windows.
	out, err := runSandhi(t, "apply", "-m", manifestPath, "a1b")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "E203")
	assert.Contains(t, out, "no derivation")
}

func TestApplyJSON(t *testing.T) {
	manifestPath := chainedProject(t)

	out, err := runSandhi(t, "--format", "json", "apply", "-m", manifestPath, "ni{3>1>4}jo14")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ni{3>1>4}jo14", data["input"])

	candidates, ok := data["candidates"].([]interface{})
	require.True(t, ok)
	require.NotEmpty(t, candidates)
	first, ok := candidates[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "#ni3jo14##3>1>4##14>14#", first["output"])
	assert.Equal(t, float64(0), first["weight"])
}
