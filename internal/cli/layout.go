package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/graph"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/render"
)

// layoutFlags are the spacing flags shared by layout and render. Zero
// values keep the configured spacing.
type layoutFlags struct {
	nodeSep  float64
	rankSep  float64
	passes   int
	families bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.nodeSep, "node-sep", 0, "horizontal gap between boxes of one generation")
	cmd.Flags().Float64Var(&f.rankSep, "rank-sep", 0, "vertical gap between generations")
	cmd.Flags().IntVar(&f.passes, "passes", 0, "crossing-reduction sweeps")
	cmd.Flags().BoolVar(&f.families, "families", false, "keep partners and siblings side by side")
}

func (f layoutFlags) apply(opts layout.Options) layout.Options {
	if f.nodeSep > 0 {
		opts.NodeSep = f.nodeSep
	}
	if f.rankSep > 0 {
		opts.RankSep = f.rankSep
	}
	if f.passes > 0 {
		opts.Passes = f.passes
	}
	if f.families {
		opts.Families = true
	}
	return opts
}

// layoutCommand creates the layout command, which writes the graph
// document with generation bands and coordinates.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output   string
		selected string
		flags    layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute generation bands and coordinates",
		Long: `Compute the layered layout of the family tree.

Ancestors are placed in generations above their descendants. Within each
generation people are ordered to reduce crossing edges, and every person
is centred over their children where space allows. The output is the graph
document with a position, rank and order for every person and bend points
for edges spanning several generations.

With --selected the document also marks that person and the edges to their
parents and children.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), output, selected, flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&selected, "selected", "", "mark a person and their edges as selected")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, stdout, stderr io.Writer, output, selected string, flags layoutFlags) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.baseOptions(cfg)
	opts.Layout = flags.apply(opts.Layout)
	opts.Formats = []string{render.FormatJSON}
	opts.Selected = selected

	spinner := newSpinner(ctx, "Computing layout...")
	spinner.Start()
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()
	logStats(c.Logger, res.Stats)

	if output == "" {
		_, err := stdout.Write(res.Artifacts[render.FormatJSON])
		return err
	}
	if err := graph.WriteGraphFile(res.Document, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess(stderr, "Layout complete")
	printFile(stderr, output)
	printStats(stderr, res.Stats)
	printDiagnostics(stderr, res.Document.Diagnostics, maxListedProblems)
	printNewline(stderr)
	printNextStep(stderr, "Explore", "browse")
	return nil
}
