package store

import (
	"context"
	"fmt"
)

// SaveRun inserts a run and its per-case results in one transaction.
// Uses ON CONFLICT DO NOTHING for idempotency: re-recording a run with
// the same id (or the same (run_id, ord) result slot) is silently
// ignored, while other constraint violations still return errors.
//
// The run's CreatedAt is stored as Unix seconds; sub-second precision is
// not preserved.
func (s *Store) SaveRun(ctx context.Context, run Run, results []CaseResult) error {
	filesJSON, err := marshalRuleFiles(run.RuleFiles)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, created_at, mode, rule_files, case_count, pass_count)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.CreatedAt.Unix(),
		run.Mode,
		filesJSON,
		run.CaseCount,
		run.PassCount,
	)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	for _, res := range results {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO results
			(run_id, ord, input, expected, actual, weight, passed)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(run_id, ord) DO NOTHING
		`,
			run.ID,
			res.Ord,
			res.Input,
			res.Expected,
			res.Actual,
			res.Weight,
			res.Passed,
		)
		if err != nil {
			return fmt.Errorf("save run: result %d: %w", res.Ord, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save run: commit: %w", err)
	}
	return nil
}
