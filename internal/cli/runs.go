package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/sandhi/internal/store"
)

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	*RootOptions
	Store      string // run store database path
	Mode       string // filter by pipeline mode
	FailedOnly bool   // only runs with failures
	Limit      int    // cap the number of rows
}

// RunSummary is one stored validation run in command output.
type RunSummary struct {
	ID        string   `json:"id"`
	CreatedAt string   `json:"created_at"`
	Mode      string   `json:"mode"`
	RuleFiles []string `json:"rule_files"`
	CaseCount int      `json:"case_count"`
	PassCount int      `json:"pass_count"`
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded validation runs",
		Long: `List validation runs recorded by "sandhi validate --store", newest
first.

Examples:
  sandhi runs --store runs.db
  sandhi runs --store runs.db --mode union --failed-only
  sandhi runs --store runs.db --limit 10`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Store, "store", "", "path to the run store database (required)")
	cmd.Flags().StringVar(&opts.Mode, "mode", "", "only runs with this pipeline mode")
	cmd.Flags().BoolVar(&opts.FailedOnly, "failed-only", false, "only runs with failures")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "cap the number of rows (0 means no cap)")
	_ = cmd.MarkFlagRequired("store")

	return cmd
}

func runRuns(opts *RunsOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	// Open would create an empty database, so reject missing paths first.
	if _, err := os.Stat(opts.Store); os.IsNotExist(err) {
		return outputError(formatter, ErrCodeStore, fmt.Sprintf("store not found: %s", opts.Store))
	}

	s, err := store.Open(opts.Store)
	if err != nil {
		return outputError(formatter, ErrCodeStore, err.Error())
	}
	defer s.Close()

	runs, err := s.ListRuns(cmd.Context(), store.RunFilter{
		Mode:       opts.Mode,
		FailedOnly: opts.FailedOnly,
		Limit:      opts.Limit,
	})
	if err != nil {
		return outputError(formatter, ErrCodeStore, err.Error())
	}

	summaries := make([]RunSummary, 0, len(runs))
	for _, r := range runs {
		summaries = append(summaries, RunSummary{
			ID:        r.ID,
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
			Mode:      r.Mode,
			RuleFiles: r.RuleFiles,
			CaseCount: r.CaseCount,
			PassCount: r.PassCount,
		})
	}
	return outputRuns(formatter, summaries)
}

// outputRuns renders the stored runs, newest first.
func outputRuns(formatter *OutputFormatter, runs []RunSummary) error {
	if formatter.Format == "json" {
		return formatter.Success(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs found.")
		return nil
	}

	for _, r := range runs {
		status := "✓"
		if r.PassCount < r.CaseCount {
			status = "✗"
		}
		fmt.Fprintf(formatter.Writer, "%s %s  %s  %-6s  %d/%d passed\n",
			status, r.ID, r.CreatedAt, r.Mode, r.PassCount, r.CaseCount)
	}
	fmt.Fprintf(formatter.Writer, "\n%d run(s)\n", len(runs))
	return nil
}
