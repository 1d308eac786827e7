package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/graph"
)

// graphCommand creates the graph command, which normalizes the records and
// writes the family graph document without positions.
func (c *CLI) graphCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Normalize records into a family graph document",
		Long: `Normalize the configured records into a family graph document.

Rows are validated against the schema: unreadable booleans and genders are
reported as defects, inactive rows are skipped and parent references that
point at nobody are dropped. The document lists every person, every
parent-child edge and the diagnostics, as JSON.

Without -o the document is written to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, stdout, stderr io.Writer, output string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	p := newProgress(c.Logger)
	res, err := runner.Load(ctx, c.baseOptions(cfg))
	if err != nil {
		return err
	}
	p.done("Loaded family", "source", cfg.Source.Location, "people", res.Stats.People)
	logStats(c.Logger, res.Stats)

	if output == "" {
		return graph.WriteGraph(res.Document, stdout)
	}
	if err := graph.WriteGraphFile(res.Document, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess(stderr, "Graph complete")
	printFile(stderr, output)
	printStats(stderr, res.Stats)
	printDiagnostics(stderr, res.Document.Diagnostics, maxListedProblems)
	printNewline(stderr)
	printNextStep(stderr, "Render", "render", "-f", "svg,html")
	return nil
}

// maxListedProblems caps the data problems printed after a command.
const maxListedProblems = 10
