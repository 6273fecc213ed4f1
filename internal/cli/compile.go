package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/sandhi/internal/manifest"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Manifest   string // project manifest path
	Output     string // artifact output path
	TextDir    string // directory for diagnostic text dumps
	NoMinimize bool   // skip the final minimization pass
}

// CompileStats summarizes the compiled relation.
type CompileStats struct {
	Mode      string `json:"mode"`
	RuleFiles int    `json:"rule_files"`
	States    int    `json:"states"`
	Arcs      int    `json:"arcs"`
	Minimized bool   `json:"minimized"`
	Artifact  string `json:"artifact"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile rule scripts to a transducer artifact",
		Long: `Compile the manifest's rule scripts into one weighted transducer.

In union mode every rule file is an alternative derivation and a priced
identity branch passes unmatched forms through. In linear mode the single
rule file is composed window by window over the word's tone positions.

Exit codes:
  0 - Compiled and wrote the artifact
  2 - Manifest, rule, or write error

Examples:
  sandhi compile -m sandhi.cue
  sandhi compile -m sandhi.cue -o out/fst_segmentation.fst --text out
  sandhi compile -m sandhi.cue --no-minimize`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Manifest, "manifest", "m", "sandhi.cue", "project manifest")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", defaultArtifact, "artifact output path")
	cmd.Flags().StringVar(&opts.TextDir, "text", "", "directory for diagnostic text dumps")
	cmd.Flags().BoolVar(&opts.NoMinimize, "no-minimize", false, "skip the final minimization pass")

	return cmd
}

func runCompile(opts *CompileOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	p, c, err := buildProject(opts.Manifest, newLogger(opts.RootOptions, cmd))
	if err != nil {
		code, message := manifestErrorCode(err)
		return outputError(formatter, code, message)
	}

	formatter.VerboseLog("Compiling %d rule file(s) in %s mode", len(p.Rules), p.Mode)

	relation, err := compileRelation(p, c)
	if err != nil {
		return outputError(formatter, manifest.ErrCodeRules, err.Error())
	}

	minimize := p.Options.Minimize && !opts.NoMinimize
	if minimize && opts.TextDir != "" {
		path := filepath.Join(opts.TextDir, "fst_segmentation_notminimized.fst")
		if err := writeArtifact(relation, path); err != nil {
			return outputError(formatter, ErrCodeArtifact, err.Error())
		}
		formatter.VerboseLog("Wrote %s", path)
	}
	if minimize {
		before := relation.NumStates()
		minimizeRelation(relation)
		formatter.VerboseLog("Minimized %d -> %d state(s)", before, relation.NumStates())
	}

	if err := writeArtifact(relation, opts.Output); err != nil {
		return outputError(formatter, ErrCodeArtifact, err.Error())
	}
	if opts.TextDir != "" {
		path := filepath.Join(opts.TextDir, "fst_segmentation.fst")
		if err := writeArtifact(relation, path); err != nil {
			return outputError(formatter, ErrCodeArtifact, err.Error())
		}
	}

	stats := CompileStats{
		Mode:      p.Mode,
		RuleFiles: len(p.Rules),
		States:    relation.NumStates(),
		Arcs:      relation.NumArcs(),
		Minimized: minimize,
		Artifact:  opts.Output,
	}
	return outputCompileSuccess(formatter, stats)
}

// outputCompileSuccess renders the compile summary.
func outputCompileSuccess(formatter *OutputFormatter, stats CompileStats) error {
	if formatter.Format == "json" {
		return formatter.Success(stats)
	}

	fmt.Fprintf(formatter.Writer, "✓ Compiled %d rule file(s) in %s mode\n", stats.RuleFiles, stats.Mode)
	fmt.Fprintf(formatter.Writer, "  %d state(s), %d arc(s)\n", stats.States, stats.Arcs)
	fmt.Fprintf(formatter.Writer, "Wrote %s\n", stats.Artifact)
	return nil
}
