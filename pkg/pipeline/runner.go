package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kintree/pkg/cache"
	"github.com/matzehuels/kintree/pkg/graph"
	"github.com/matzehuels/kintree/pkg/httputil"
	"github.com/matzehuels/kintree/pkg/observability"
	"github.com/matzehuels/kintree/pkg/record"
	"github.com/matzehuels/kintree/pkg/source"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use it so fetched rows are cached the same way.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL is how long fetched rows stay cached; zero uses source.DefaultRowsTTL.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete fetch → build → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}

	// Stage 3: Layout
	if err := r.Layout(ctx, result, opts); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	r.Logger.Info("computed layout",
		"generations", len(result.Layout.Orders),
		"crossings", result.Layout.Crossings,
		"duration", result.Stats.LayoutTime)

	// Stage 4: Render
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	renderStart := time.Now()
	artifacts, err := Render(result.Document, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load runs the fetch and build stages. The returned document carries the
// people, edges and diagnostics but no positions. A Source naming a .json or
// .bson graph document, as written by the graph command, is read back
// instead of fetched.
func (r *Runner) Load(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForFetch(); err != nil {
		return nil, err
	}
	if opts.Input == nil && graph.IsDocumentPath(opts.Source) {
		return r.loadDocument(ctx, opts.Source)
	}

	// Stage 1: Fetch
	rows, fetchTime, err := r.Fetch(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	// Stage 2: Build
	buildStart := time.Now()
	norm, g, err := Build(rows, opts.Schema)
	buildTime := time.Since(buildStart)
	if g != nil {
		observability.Pipeline().OnBuildComplete(ctx, g.Len(), g.EdgeCount(), g.DanglingCount(), buildTime, err)
	} else {
		observability.Pipeline().OnBuildComplete(ctx, 0, 0, 0, buildTime, err)
	}
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}

	doc := graph.FromFamily(g)
	doc.ApplyDiagnostics(norm, g, 0)

	result := &Result{
		Normalized: norm,
		Family:     g,
		Document:   doc,
		Stats: Stats{
			Rows:      len(rows),
			People:    g.Len(),
			Edges:     g.EdgeCount(),
			Dangling:  g.DanglingCount(),
			Defects:   len(norm.Defects),
			FetchTime: fetchTime,
			BuildTime: buildTime,
		},
	}

	r.Logger.Info("built family graph",
		"people", result.Stats.People,
		"edges", result.Stats.Edges,
		"inactive", norm.Inactive,
		"duration", buildTime)
	for _, d := range norm.Defects {
		r.Logger.Warn("record defect", "row", d.Row, "kind", d.Kind, "detail", d.String())
	}
	for _, ref := range g.Dangling {
		r.Logger.Debug("dropped parent reference", "child", ref.Child, "parent", ref.Parent, "kind", ref.Kind)
	}

	return result, nil
}

// Fetch reads the raw rows through the row cache.
func (r *Runner) Fetch(ctx context.Context, opts Options) ([]record.Row, time.Duration, error) {
	src, err := r.open(opts)
	if err != nil {
		return nil, 0, err
	}

	hooks := observability.Pipeline()
	hooks.OnFetchStart(ctx, src.Kind())
	start := time.Now()

	cached := &source.Cached{
		Source:  src,
		Cache:   r.Cache,
		Keyer:   r.Keyer,
		TTL:     r.rowsTTL(),
		Refresh: opts.Refresh,
		Logger:  opts.Logger,
	}
	rows, err := cached.Fetch(ctx)
	elapsed := time.Since(start)
	hooks.OnFetchComplete(ctx, src.Kind(), len(rows), elapsed, err)
	if err != nil {
		return nil, elapsed, err
	}

	r.Logger.Info("fetched records",
		"source", src.Kind(),
		"location", src.Location(),
		"rows", len(rows),
		"duration", elapsed)
	return rows, elapsed, nil
}

func (r *Runner) open(opts Options) (source.Source, error) {
	src := opts.Input
	if src == nil {
		var err error
		if src, err = source.Open(opts.Source); err != nil {
			return nil, err
		}
	}
	if s, ok := src.(*source.Sheets); ok && s.Client == nil {
		c := httputil.NewClient()
		c.Logger = opts.Logger
		s.Client = c
	}
	return src, nil
}

func (r *Runner) rowsTTL() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return source.DefaultRowsTTL
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
