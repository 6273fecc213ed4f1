package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/sandhi/internal/manifest"
	"github.com/roach88/sandhi/internal/store"
	"github.com/roach88/sandhi/internal/validate"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Manifest   string // project manifest path
	FST        string // precompiled artifact path
	G3         bool   // expect the annotated intermediate representation
	Tests      string // CSV test file overriding the manifest
	FailureLog string // failure log path
	Store      string // run store database path

	// Tokens allows overriding the run ID source (for testing).
	// If nil, defaults to UUIDv7 tokens.
	Tokens store.TokenSource
}

// PairResult is one validated pair in command output.
type PairResult struct {
	Input    string  `json:"input"`
	Expected string  `json:"expected"`
	Best     string  `json:"best,omitempty"`
	Weight   float64 `json:"weight"`
	Passed   bool    `json:"passed"`
}

// ValidateResult holds the overall suite outcome.
type ValidateResult struct {
	Mode         string       `json:"mode"`
	Intermediate bool         `json:"intermediate"`
	Pairs        []PairResult `json:"pairs"`
	Passed       int          `json:"passed"`
	Failed       int          `json:"failed"`
	Total        int          `json:"total"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate test pairs against the compiled relation",
		Long: `Validate that the relation derives the expected form for each test pair.

Pairs come from --tests, then the manifest's tests file, then the built-in
smoke pair. With --g3 the expected column is the annotated intermediate
representation; without it candidates are first normalized down to base
orthography.

Exit codes:
  0 - All pairs passed
  1 - One or more pairs failed
  2 - Manifest, artifact, or store error

Examples:
  sandhi validate -m sandhi.cue --g3
  sandhi validate -m sandhi.cue --fst fst_segmentation.fst --tests tests.csv
  sandhi validate -m sandhi.cue --g3 --failure-log log.txt --store runs.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Manifest, "manifest", "m", "sandhi.cue", "project manifest")
	cmd.Flags().StringVar(&opts.FST, "fst", "", "precompiled artifact (recompiles when empty)")
	cmd.Flags().BoolVar(&opts.G3, "g3", false, "expect the annotated intermediate representation")
	cmd.Flags().StringVar(&opts.Tests, "tests", "", "CSV test file (columns form, segmentation)")
	cmd.Flags().StringVar(&opts.FailureLog, "failure-log", "", "write failing pairs to this file")
	cmd.Flags().StringVar(&opts.Store, "store", "", "record the run in this SQLite database")

	return cmd
}

func runValidate(opts *ValidateOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	log := newLogger(opts.RootOptions, cmd)

	p, c, err := buildProject(opts.Manifest, log)
	if err != nil {
		code, message := manifestErrorCode(err)
		return outputError(formatter, code, message)
	}

	relation, err := loadRelation(p, c, opts.FST)
	if err != nil {
		return outputError(formatter, ErrCodeArtifact, err.Error())
	}

	pairs, err := suitePairs(opts, p)
	if err != nil {
		return outputError(formatter, manifest.ErrCodeTests, err.Error())
	}
	formatter.VerboseLog("Validating %d pair(s)", len(pairs))

	v, err := validate.New(c, relation, validate.WithLogger(log))
	if err != nil {
		return outputError(formatter, manifest.ErrCodeGeneric, err.Error())
	}

	var failures io.Writer = io.Discard
	if opts.FailureLog != "" {
		f, err := os.Create(opts.FailureLog)
		if err != nil {
			return outputError(formatter, ErrCodeArtifact, fmt.Sprintf("create failure log: %v", err))
		}
		defer f.Close()
		failures = f
	}

	report, err := v.RunSuite(pairs, opts.G3, failures)
	if err != nil {
		return outputError(formatter, manifest.ErrCodeGeneric, err.Error())
	}

	if opts.Store != "" {
		if err := recordRun(cmd.Context(), opts, p, report); err != nil {
			_ = formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "record run", err)
		}
		formatter.VerboseLog("Recorded run in %s", opts.Store)
	}

	return outputValidateReport(formatter, p.Mode, opts.G3, report)
}

// suitePairs resolves the test pairs: the --tests flag wins, then the
// manifest's tests file, then the built-in smoke pair.
func suitePairs(opts *ValidateOptions, p *manifest.Project) ([]validate.Pair, error) {
	path := opts.Tests
	if path == "" {
		path = p.Tests
	}
	if path == "" {
		return validate.DefaultPairs(), nil
	}
	return validate.LoadPairs(path)
}

// recordRun persists the suite outcome. Run IDs are UUIDv7 so listing by
// recency needs no separate sequence.
func recordRun(ctx context.Context, opts *ValidateOptions, p *manifest.Project, report validate.SuiteReport) error {
	s, err := store.Open(opts.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	tokens := opts.Tokens
	if tokens == nil {
		tokens = store.UUIDTokens{}
	}

	run := store.Run{
		ID:        tokens.Token(),
		CreatedAt: time.Now().UTC(),
		Mode:      p.Mode,
		RuleFiles: p.Rules,
		CaseCount: len(report.Results),
		PassCount: report.Passed,
	}
	results := make([]store.CaseResult, len(report.Results))
	for i, res := range report.Results {
		results[i] = store.CaseResult{
			Ord:      i,
			Input:    res.Input,
			Expected: res.Expected,
			Actual:   res.Best,
			Weight:   float64(res.Weight),
			Passed:   res.Passed,
		}
	}
	return s.SaveRun(ctx, run, results)
}

// outputValidateReport renders the suite outcome. Failures exit 1.
func outputValidateReport(formatter *OutputFormatter, mode string, intermediate bool, report validate.SuiteReport) error {
	result := ValidateResult{
		Mode:         mode,
		Intermediate: intermediate,
		Pairs:        make([]PairResult, 0, len(report.Results)),
		Passed:       report.Passed,
		Failed:       report.Failed,
		Total:        len(report.Results),
	}
	for _, res := range report.Results {
		result.Pairs = append(result.Pairs, PairResult{
			Input:    res.Input,
			Expected: res.Expected,
			Best:     res.Best,
			Weight:   float64(res.Weight),
			Passed:   res.Passed,
		})
	}

	if formatter.Format == "json" {
		return outputValidateJSON(formatter, result)
	}
	return outputValidateText(formatter, result)
}

// outputValidateJSON outputs the suite result as JSON.
func outputValidateJSON(formatter *OutputFormatter, result ValidateResult) error {
	status := "ok"
	if result.Failed > 0 {
		status = "error"
	}

	response := CLIResponse{
		Status: status,
		Data:   result,
	}
	if result.Failed > 0 {
		response.Error = &CLIError{
			Code:    "E_VALIDATE_FAILED",
			Message: fmt.Sprintf("%d pair(s) failed", result.Failed),
		}
	}

	encoder := json.NewEncoder(formatter.Writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d pair(s) failed", result.Failed))
	}
	return nil
}

// outputValidateText outputs the suite result as text.
func outputValidateText(formatter *OutputFormatter, result ValidateResult) error {
	w := formatter.Writer

	for _, pair := range result.Pairs {
		switch {
		case pair.Passed:
			fmt.Fprintf(w, "✓ %s -> %s (weight %s)\n", pair.Input, pair.Best, formatWeight(pair.Weight))
		case pair.Best == "":
			fmt.Fprintf(w, "✗ %s: no derivation\n", pair.Input)
		default:
			fmt.Fprintf(w, "✗ %s -> %s (expected %s)\n", pair.Input, pair.Best, pair.Expected)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Validation: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d pair(s) failed", result.Failed))
	}

	fmt.Fprintln(w, "✓ All pairs passed")
	return nil
}
