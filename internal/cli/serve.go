package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/server"
	"github.com/matzehuels/kintree/pkg/session"
)

// serveCommand creates the HTTP server command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the family graph and viewer sessions over HTTP",
		Long: `Serve the configured source over HTTP.

GET /api/graph renders the tree in any output format. POST /api/sessions
opens an interactive viewer session; clients forward clicks, search input
and key presses to it and draw the returned state.

Sessions expire after the configured session TTL without requests.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), cmd.ErrOrStderr(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: from config, 127.0.0.1:8080)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, stderr io.Writer, addr string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}
	runner, err := c.newRunner(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.baseOptions(cfg)
	if err := opts.ValidateForFetch(); err != nil {
		return err
	}

	ttl := cfg.Server.SessionTTL
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}
	store := session.NewMemoryStore(ttl, session.WithLogger(c.Logger))
	srv := server.New(runner, store, opts, c.Logger)

	printSuccess(stderr, "Serving %s", cfg.Source.Location)
	printKeyValue(stderr, "address", "http://"+addr)
	printKeyValue(stderr, "sessions", "expire after "+ttl.String())
	printNewline(stderr)
	return srv.ListenAndServe(ctx, addr)
}
