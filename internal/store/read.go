package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ListRuns returns recorded runs matching the filter, newest first.
// Returns an empty slice (not nil) when nothing matches.
func (s *Store) ListRuns(ctx context.Context, f RunFilter) ([]Run, error) {
	query, params := compileRunQuery(f)
	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Results returns the per-case outcomes of one run in suite order.
// Returns an empty slice (not nil) when the run is unknown or empty.
func (s *Store) Results(ctx context.Context, runID string) ([]CaseResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ord, input, expected, actual, weight, passed
		FROM results
		WHERE run_id = ?
		ORDER BY ord ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	results := []CaseResult{}
	for rows.Next() {
		var res CaseResult
		if err := rows.Scan(&res.Ord, &res.Input, &res.Expected, &res.Actual, &res.Weight, &res.Passed); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return results, nil
}

// scanRun decodes one runs row.
func scanRun(rows *sql.Rows) (Run, error) {
	var run Run
	var createdAt int64
	var filesJSON string
	if err := rows.Scan(&run.ID, &createdAt, &run.Mode, &filesJSON, &run.CaseCount, &run.PassCount); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.CreatedAt = time.Unix(createdAt, 0).UTC()
	files, err := unmarshalRuleFiles(filesJSON)
	if err != nil {
		return Run{}, err
	}
	run.RuleFiles = files
	return run, nil
}
