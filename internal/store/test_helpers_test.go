package store

import (
	"path/filepath"
	"testing"
	"time"
)

// createTestStore creates a store backed by a fresh database file.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// makeRun creates a test run with minimal required fields.
func makeRun(id string, createdAt int64, mode string, caseCount, passCount int) Run {
	return Run{
		ID:        id,
		CreatedAt: time.Unix(createdAt, 0).UTC(),
		Mode:      mode,
		RuleFiles: []string{"rules/sandhi.txt"},
		CaseCount: caseCount,
		PassCount: passCount,
	}
}
