// Package pipeline provides the load pipeline shared by the CLI and the HTTP
// host.
//
// This package implements the complete fetch → build → layout → render
// sequence so every entry point turns a record source into the same graph
// document.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Fetch: Read raw rows from a CSV file, a Google Sheets tab or MongoDB
//  2. Build: Normalize the rows into people and link them into a family graph
//  3. Layout: Compute generation bands, ordering and coordinates
//  4. Render: Produce the requested artifacts (JSON, DOT, SVG, PNG, HTML)
//
// Data defects never stop the pipeline; they are collected in the document's
// diagnostics. Structural defects (cycles, self-parents) do.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "sheets:1AbC...#Nodes",
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run the first two stages only:
//
//	result, err := runner.Load(ctx, opts)
//	doc := result.Document
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	kerrors "github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/graph"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/record"
	"github.com/matzehuels/kintree/pkg/render"
	"github.com/matzehuels/kintree/pkg/source"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultNodeWidth is the minimum width of a person box in pixels.
	DefaultNodeWidth = 160.0

	// DefaultNodeHeight is the height of a person box in pixels.
	DefaultNodeHeight = 48.0

	// DefaultTitle is the page title of HTML output.
	DefaultTitle = "Family tree"
)

// DefaultFormats are rendered when Options.Formats is empty.
var DefaultFormats = []string{render.FormatJSON}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Fetch options
	Source  string        `json:"source,omitempty"`
	Schema  record.Schema `json:"schema"`
	Refresh bool          `json:"refresh,omitempty"`

	// Layout options
	Layout     layout.Options `json:"layout"`
	NodeWidth  float64        `json:"node_width,omitempty"`
	NodeHeight float64        `json:"node_height,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Selected string   `json:"selected,omitempty"` // person highlighted in the output
	ShowIDs  bool     `json:"show_ids,omitempty"`
	Pinned   bool     `json:"pinned,omitempty"` // graphviz keeps the computed positions
	Title    string   `json:"title,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	// Input replaces Source with an already opened source.
	Input source.Source `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run. Layout and Artifacts are
// nil after [Runner.Load].
type Result struct {
	Normalized record.Result
	Family     *family.Graph
	Layout     *layout.Result

	// Document is the graph as exposed to renderers and hosts.
	Document graph.Graph

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows      int
	People    int
	Edges     int
	Dangling  int
	Defects   int
	Crossings int

	FetchTime  time.Duration
	BuildTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !slices.Contains(render.Formats, format) {
		return kerrors.New(kerrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
			format, strings.Join(render.Formats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForFetch(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForFetch checks that a source is configured.
func (o *Options) ValidateForFetch() error {
	if o.Input == nil && o.Source == "" {
		return kerrors.New(kerrors.ErrCodeInvalidSource, "source is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults fills the node size.
func (o *Options) SetLayoutDefaults() {
	if o.NodeWidth <= 0 {
		o.NodeWidth = DefaultNodeWidth
	}
	if o.NodeHeight <= 0 {
		o.NodeHeight = DefaultNodeHeight
	}
}

// ValidateForRender sets render defaults and checks the formats.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = slices.Clone(DefaultFormats)
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}
