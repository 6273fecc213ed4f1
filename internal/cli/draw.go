package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// DrawOptions holds flags for the draw command.
type DrawOptions struct {
	*RootOptions
	Manifest string // project manifest path
	FST      string // precompiled artifact path
	Output   string // dot file output path
}

// NewDrawCommand creates the draw command.
func NewDrawCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DrawOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Render the relation as a Graphviz dot file",
		Long: `Render the compiled relation in Graphviz dot format, with arcs
labeled "in:out/weight" through the manifest's symbol inventory.

Examples:
  sandhi draw -m sandhi.cue -o fst.dot
  sandhi draw -m sandhi.cue --fst fst_segmentation.fst -o fst.dot`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDraw(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Manifest, "manifest", "m", "sandhi.cue", "project manifest")
	cmd.Flags().StringVar(&opts.FST, "fst", "", "precompiled artifact (recompiles when empty)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "fst_segmentation.dot", "dot output path")

	return cmd
}

func runDraw(opts *DrawOptions, cmd *cobra.Command) error {
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

	relation, err := loadRelation(p, c, opts.FST)
	if err != nil {
		return outputError(formatter, ErrCodeArtifact, err.Error())
	}

	f, err := os.Create(opts.Output)
	if err != nil {
		return outputError(formatter, ErrCodeArtifact, fmt.Sprintf("create dot file: %v", err))
	}
	if err := relation.WriteDot(f); err != nil {
		f.Close()
		return outputError(formatter, ErrCodeArtifact, fmt.Sprintf("write dot file: %v", err))
	}
	if err := f.Close(); err != nil {
		return outputError(formatter, ErrCodeArtifact, err.Error())
	}

	formatter.VerboseLog("%d state(s), %d arc(s)", relation.NumStates(), relation.NumArcs())
	return formatter.Success(fmt.Sprintf("Wrote %s", opts.Output))
}
