// Package store provides SQLite-backed history for validation runs.
//
// Each suite execution is recorded as one row in runs plus one row per
// test case in results, so regressions can be compared across rule-set
// revisions without rerunning old compilations.
//
// Determinism rules carried throughout:
//   - Run listings order by created_at DESC with an id COLLATE BINARY
//     tiebreaker, result listings by ord ASC, so identical stores list
//     identically.
//   - Writes are idempotent: re-recording a run with the same id is a
//     no-op (ON CONFLICT DO NOTHING), which makes retry loops safe.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//
// Run identifiers come from a TokenSource; the default issues UUIDv7 so
// ids sort by creation time.
package store
