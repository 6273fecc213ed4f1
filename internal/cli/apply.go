package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sandhi/internal/manifest"
	"github.com/roach88/sandhi/internal/validate"
)

// ApplyOptions holds flags for the apply command.
type ApplyOptions struct {
	*RootOptions
	Manifest string // project manifest path
	FST      string // precompiled artifact path
}

// ApplyCandidate is one ranked derivation in command output.
type ApplyCandidate struct {
	Output string  `json:"output"`
	Weight float64 `json:"weight"`
}

// ApplyResult holds the ranked derivations for one form.
type ApplyResult struct {
	Input      string           `json:"input"`
	Candidates []ApplyCandidate `json:"candidates"`
}

// NewApplyCommand creates the apply command.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ApplyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "apply INPUT",
		Short: "Rank the derivations of one form",
		Long: `Apply the relation to one form and print every distinct derivation,
cheapest first. Outputs keep their boundary markers and annotation
segments so the ranking can be read off directly.

Exit codes:
  0 - At least one derivation found
  1 - Input outside the relation's domain
  2 - Manifest or artifact error

Examples:
  sandhi apply -m sandhi.cue 'ni{3>1>4}jo14'
  sandhi apply -m sandhi.cue --fst fst_segmentation.fst ni3jo14`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Manifest, "manifest", "m", "sandhi.cue", "project manifest")
	cmd.Flags().StringVar(&opts.FST, "fst", "", "precompiled artifact (recompiles when empty)")

	return cmd
}

func runApply(opts *ApplyOptions, input string, cmd *cobra.Command) error {
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

	v, err := validate.New(c, relation, validate.WithLogger(log))
	if err != nil {
		return outputError(formatter, manifest.ErrCodeGeneric, err.Error())
	}

	// An empty expectation skips the pass check; only the ranking matters.
	res, err := v.Validate(input, "", true)
	if err != nil {
		return outputError(formatter, manifest.ErrCodeGeneric, err.Error())
	}

	if len(res.Candidates) == 0 {
		message := fmt.Sprintf("no derivation for %q", input)
		_ = formatter.Error(ErrCodeNoDerivation, message, nil)
		return NewExitError(ExitFailure, message)
	}

	result := ApplyResult{
		Input:      input,
		Candidates: make([]ApplyCandidate, 0, len(res.Candidates)),
	}
	for _, cand := range res.Candidates {
		result.Candidates = append(result.Candidates, ApplyCandidate{
			Output: cand.Output,
			Weight: float64(cand.Weight),
		})
	}
	return outputApplyResult(formatter, result)
}

// outputApplyResult renders the ranked derivations.
func outputApplyResult(formatter *OutputFormatter, result ApplyResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "%d derivation(s) for %q\n", len(result.Candidates), result.Input)
	for i, cand := range result.Candidates {
		fmt.Fprintf(formatter.Writer, "%3d. %s (weight %s)\n", i+1, cand.Output, formatWeight(cand.Weight))
	}
	return nil
}
