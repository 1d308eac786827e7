package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/pipeline"
	"github.com/matzehuels/kintree/pkg/render"
)

// defaultOutputBase names outputs of sources without a file name.
const defaultOutputBase = "family"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file (single format) or base path
	formats  []string // json, dot, svg, png, html
	selected string   // person highlighted in the output
	showIDs  bool     // append ids to the box labels (graphviz)
	pinned   bool     // keep computed positions in graphviz output
	title    string   // HTML page title
	layout   layoutFlags
}

// renderCommand creates the render command for writing visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the family tree to SVG, PNG, DOT, HTML or JSON",
		Long: `Render the family tree.

Formats:
  svg, png  graphviz drawing, laid out by dot unless --pinned
  dot       graphviz source
  html      interactive page with the computed layout
  json      graph document with positions

Several formats may be given comma-separated; each is written next to the
base path from -o (default: the CSV file name, or "family").`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cmd.ErrOrStderr(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, html, json (comma-separated)")
	cmd.Flags().StringVar(&opts.selected, "selected", "", "highlight a person and their edges")
	cmd.Flags().BoolVar(&opts.showIDs, "show-ids", false, "show person ids in the boxes")
	cmd.Flags().BoolVar(&opts.pinned, "pinned", false, "keep the computed positions in graphviz output")
	cmd.Flags().StringVar(&opts.title, "title", "", "page title (html)")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	opts.layout.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, stderr io.Writer, ro renderOpts) error {
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
	opts.Layout = ro.layout.apply(opts.Layout)
	opts.Formats = ro.formats
	opts.Selected = ro.selected
	opts.ShowIDs = ro.showIDs
	opts.Pinned = ro.pinned
	opts.Title = ro.title

	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", strings.Join(ro.formats, ", ")))
	spinner.Start()
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	logStats(c.Logger, res.Stats)

	paths, err := writeArtifacts(res.Artifacts, ro.formats, ro.output, cfg.Source.Location)
	if err != nil {
		return err
	}

	printSuccess(stderr, "Render complete")
	for _, p := range paths {
		printFile(stderr, p)
	}
	printStats(stderr, res.Stats)
	printDiagnostics(stderr, res.Document.Diagnostics, maxListedProblems)
	return nil
}

// writeArtifacts writes one file per format and returns the paths in
// format order. A single format with an explicit output file is written
// to exactly that path.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, source string) ([]string, error) {
	base := basePath(output, source)
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := base + "." + f
		if len(formats) == 1 && output != "" && filepath.Ext(output) != "" && !isFormatExt(output) {
			path = output
		}
		if err := writeFile(path, artifacts[f]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// basePath derives the output path without extension. Without output the
// CSV file name is used.
func basePath(output, source string) string {
	if output != "" {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	if strings.EqualFold(filepath.Ext(source), ".csv") && !strings.Contains(source, "://") {
		return strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}
	return defaultOutputBase
}

func isFormatExt(path string) bool {
	return slices.Contains(render.Formats, strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")))
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
