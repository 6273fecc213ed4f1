package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sandhi/internal/store"
)

// seedRunStore records one passing and one failing validation run.
func seedRunStore(t *testing.T) string {
	t.Helper()
	manifestPath := chainedProject(t)
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	_, err := runSandhi(t, "validate", "-m", manifestPath, "--g3", "--store", dbPath)
	require.NoError(t, err)

	// The annotated suite fails the base orthography check; the run is
	// still recorded before the exit code is raised.
	_, err = runSandhi(t, "validate", "-m", manifestPath, "--store", dbPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	return dbPath
}

func TestRunsListsStoredRuns(t *testing.T) {
	dbPath := seedRunStore(t)

	out, err := runSandhi(t, "runs", "--store", dbPath)
	require.NoError(t, err)

	assert.Contains(t, out, "2 run(s)")
	assert.Contains(t, out, "1/1 passed")
	assert.Contains(t, out, "0/1 passed")
}

func TestRunsFailedOnly(t *testing.T) {
	dbPath := seedRunStore(t)

	out, err := runSandhi(t, "runs", "--store", dbPath, "--failed-only")
	require.NoError(t, err)

	assert.Contains(t, out, "1 run(s)")
	assert.Contains(t, out, "0/1 passed")
	assert.NotContains(t, out, "1/1 passed")
}

func TestRunsLimit(t *testing.T) {
	dbPath := seedRunStore(t)

	out, err := runSandhi(t, "runs", "--store", dbPath, "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "1 run(s)")
}

func TestRunsEmptyStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	s, err := store.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	out, err := runSandhi(t, "runs", "--store", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No runs found.")
}

func TestRunsMissingStore(t *testing.T) {
	out, err := runSandhi(t, "runs", "--store", filepath.Join(t.TempDir(), "absent.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "store not found")
}

func TestRunsRequiresStoreFlag(t *testing.T) {
	_, err := runSandhi(t, "runs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store")
}
