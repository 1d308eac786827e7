package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/session"
	"github.com/matzehuels/kintree/pkg/view"
)

// browseCommand creates the interactive browser.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		fresh    bool
		stateDir string
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Search and focus people in the terminal",
		Long: `Browse the family tree interactively.

Type part of a name to search; accents and case are ignored. Pick a match
with the arrow keys and enter to focus that person and list their parents
and children. Tab and shift+tab move the focus up and down a generation.

The focused person is remembered per source and restored on the next run
unless --fresh is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), fresh, stateDir)
		},
	}

	cmd.Flags().BoolVar(&fresh, "fresh", false, "ignore the remembered focus")
	cmd.Flags().StringVar(&stateDir, "state-dir", "", "directory for remembered focus (default: user config dir)")

	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, fresh bool, stateDir string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Loading "+cfg.Source.Location+"...")
	spinner.Start()
	res, err := runner.Load(ctx, c.baseOptions(cfg))
	if err != nil {
		spinner.StopWithError("Load failed")
		return err
	}
	spinner.Stop()

	v := view.New(view.WithLayoutOptions(cfg.Layout), view.WithLogger(c.Logger))
	if err := v.Load(res.Family); err != nil {
		return err
	}
	v.SetDiagnostics(res.Document.Diagnostics)

	store, err := session.NewFileStore(stateDir)
	if err != nil {
		c.Logger.Warn("browse state disabled", "err", err)
	}
	if store != nil && !fresh {
		restoreBrowse(ctx, store, v, cfg.Source.Location)
	}

	final, err := tea.NewProgram(NewBrowseModel(v, appName+" · "+cfg.Source.Location), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}

	if store != nil {
		m := final.(BrowseModel)
		st := &session.State{Source: cfg.Source.Location, Selected: m.Selected(), Query: v.Search().Query}
		if err := store.Set(ctx, st); err != nil {
			c.Logger.Warn("save browse state", "err", err)
		}
	}
	return nil
}

// restoreBrowse restores the focus and query remembered for src. A
// remembered person who no longer exists is ignored.
func restoreBrowse(ctx context.Context, store *session.FileStore, v *view.Viewer, src string) {
	st, err := store.Get(ctx, src)
	if err != nil || st == nil {
		return
	}
	if st.Selected != "" && v.Graph().Has(st.Selected) {
		_ = v.Click(st.Selected)
	}
	if st.Query != "" {
		v.SearchInput(st.Query)
	}
}
