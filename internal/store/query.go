package store

import (
	"strings"
	"time"
)

// RunFilter narrows ListRuns. Zero values mean "no constraint".
type RunFilter struct {
	Mode       string    // exact pipeline mode match
	FailedOnly bool      // only runs with at least one failing case
	Since      time.Time // runs created at or after this instant
	Limit      int       // maximum rows returned (0 = unlimited)
}

// compileRunQuery renders the filter to parameterized SQL.
//
// All values are parameterized, never interpolated, and every query
// carries a deterministic ORDER BY (created_at DESC with an id COLLATE
// BINARY tiebreaker) so identical stores list identically.
func compileRunQuery(f RunFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, created_at, mode, rule_files, case_count, pass_count FROM runs`)

	var conds []string
	var params []any
	if f.Mode != "" {
		conds = append(conds, "mode = ?")
		params = append(params, f.Mode)
	}
	if f.FailedOnly {
		conds = append(conds, "pass_count < case_count")
	}
	if !f.Since.IsZero() {
		conds = append(conds, "created_at >= ?")
		params = append(params, f.Since.Unix())
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}

	sb.WriteString(" ORDER BY created_at DESC, id COLLATE BINARY ASC")
	if f.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		params = append(params, f.Limit)
	}
	return sb.String(), params
}
