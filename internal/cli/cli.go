// Package cli implements the kintree command-line interface.
//
// The commands load a family record set from a CSV file, a Google Sheets
// tab or a MongoDB collection and turn it into a laid-out family tree:
//   - graph: Normalize the records and write the family graph document
//   - layout: Compute generation bands and coordinates
//   - render: Write SVG, PNG, DOT, HTML or JSON output
//   - browse: Search and focus people in the terminal
//   - serve: Expose the graph and viewer sessions over HTTP
//   - cache: Manage the row cache
//   - config: Inspect or create the configuration file
//
// Settings come from the configuration file, KINTREE_* variables (also read
// from a .env file) and flags, in increasing order of precedence.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/buildinfo"
	"github.com/matzehuels/kintree/pkg/cache"
	"github.com/matzehuels/kintree/pkg/config"
	"github.com/matzehuels/kintree/pkg/observability"
	"github.com/matzehuels/kintree/pkg/pipeline"
	"github.com/matzehuels/kintree/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "kintree"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	source     string
	noCache    bool
	refresh    bool

	cfg *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level pipeline, cache
// and HTTP events are logged as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.LogHooks{Logger: c.Logger}.Register()
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Kintree lays out and explores family trees",
		Long:         `Kintree reads family records from a spreadsheet, a CSV file or MongoDB and draws them as a generational tree with ancestors above descendants.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "configuration file (default: "+config.Path()+")")
	root.PersistentFlags().StringVarP(&c.source, "source", "s", "", "record source: file.csv, sheets:<id>[#tab] or mongodb://host/db[#collection]")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the row cache")
	root.PersistentFlags().BoolVar(&c.refresh, "refresh", false, "refetch rows even when cached")
	_ = root.RegisterFlagCompletionFunc("source", completeSource)

	// Register all subcommands
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig loads the configuration once and applies the global flags.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.source != "" {
		cfg.Source.Location = c.source
	}
	if c.noCache {
		cfg.Cache.Disabled = true
	}
	c.cfg = cfg
	return cfg, nil
}

// baseOptions returns pipeline options for the configured source.
func (c *CLI) baseOptions(cfg *config.Config) pipeline.Options {
	return pipeline.Options{
		Source:     cfg.Source.Location,
		Schema:     cfg.Schema,
		Layout:     cfg.Layout,
		NodeWidth:  cfg.Server.NodeWidth,
		NodeHeight: cfg.Server.NodeHeight,
		Refresh:    c.refresh,
		Logger:     c.Logger,
	}
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config) (*pipeline.Runner, error) {
	rc, err := newCache(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(rc, cacheKeyer(cfg.Cache), c.Logger)
	runner.TTL = cfg.Cache.TTL
	return runner, nil
}

// newCache picks Redis when a URL is configured, otherwise the file cache.
func newCache(ctx context.Context, cc config.CacheConfig) (cache.Cache, error) {
	switch {
	case cc.Disabled:
		return cache.NewNullCache(), nil
	case cc.RedisURL != "":
		return cache.NewRedisCache(ctx, cc.RedisURL)
	}
	dir, err := cacheDir(cc)
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheKeyer scopes keys on a shared Redis; local caches use the default
// keys.
func cacheKeyer(cc config.CacheConfig) cache.Keyer {
	if cc.Disabled || cc.RedisURL == "" {
		return cache.NewDefaultKeyer()
	}
	prefix := cc.KeyPrefix
	if prefix == "" {
		prefix = config.DefaultKeyPrefix
	}
	return cache.NewScopedKeyer(nil, prefix)
}

// cacheDir returns the configured directory or the XDG default.
func cacheDir(cc config.CacheConfig) (string, error) {
	if cc.Dir != "" {
		return cc.Dir, nil
	}
	return config.CacheDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{render.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}
