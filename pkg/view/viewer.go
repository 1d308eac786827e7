package view

import (
	"io"
	"maps"

	"github.com/charmbracelet/log"

	kerrors "github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/focus"
	"github.com/matzehuels/kintree/pkg/graph"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/search"
)

// BoundsSetter is implemented by cameras that frame boxes from the current
// layout, such as [focus.Viewport]. The viewer hands them the new bounds
// after every layout pass.
type BoundsSetter interface {
	SetBounds(focus.BoundsFunc)
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithLayoutOptions sets the layout spacing.
func WithLayoutOptions(opts layout.Options) Option {
	return func(v *Viewer) { v.opts = opts }
}

// WithCamera sets the camera receiving fit requests.
func WithCamera(cam focus.Camera) Option {
	return func(v *Viewer) { v.camera = cam }
}

// WithLogger logs loads, layouts and selection changes.
func WithLogger(l *log.Logger) Option {
	return func(v *Viewer) { v.logger = l }
}

// Viewer is the top-level coordinator of one view.
type Viewer struct {
	opts   layout.Options
	camera focus.Camera
	logger *log.Logger

	graph   *family.Graph
	result  *layout.Result
	sizes   map[string]layout.Size
	settled bool
	diag    *graph.Diagnostics

	ctrl  *focus.Controller
	panel *search.Panel
}

// New creates an empty viewer. Until [Viewer.Load] succeeds every event is
// a no-op and [Viewer.Snapshot] is empty.
func New(opts ...Option) *Viewer {
	v := &Viewer{
		opts:  layout.DefaultOptions(),
		sizes: map[string]layout.Size{},
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.logger == nil {
		v.logger = log.New(io.Discard)
	}
	v.panel = search.NewPanel(search.NewIndex(nil), v.pick)
	return v
}

// Load replaces the graph, lays it out with unmeasured sizes and frames the
// whole drawing. On error the previous graph stays loaded.
func (v *Viewer) Load(g *family.Graph) error {
	if g == nil {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "nil graph")
	}
	res, err := layout.Compute(g, nil, v.opts)
	if err != nil {
		return err
	}
	v.graph = g
	v.sizes = map[string]layout.Size{}
	v.settled = false
	v.diag = nil
	v.ctrl = focus.New(g, v.camera, focus.WithLogger(v.logger))
	v.panel.SetIndex(search.NewIndex(g.Nodes()))
	v.logger.Info("graph loaded", "nodes", g.Len(), "edges", g.EdgeCount(), "dangling", g.DanglingCount())
	v.apply(res)
	return nil
}

// Measure records rendered node sizes. The first report after a load
// triggers one re-layout with the real sizes; later reports are stored only.
// Unknown IDs are ignored.
func (v *Viewer) Measure(sizes map[string]layout.Size) error {
	if v.graph == nil {
		return nil
	}
	for id, s := range sizes {
		if v.graph.Has(id) {
			v.sizes[id] = s
		}
	}
	if v.settled {
		return nil
	}
	v.settled = true
	res, err := layout.Compute(v.graph, maps.Clone(v.sizes), v.opts)
	if err != nil {
		return err
	}
	v.logger.Debug("settle layout", "measured", len(v.sizes))
	v.apply(res)
	return nil
}

func (v *Viewer) apply(res *layout.Result) {
	v.result = res
	if bs, ok := v.camera.(BoundsSetter); ok {
		bs.SetBounds(res.Bounds)
	}
	v.logger.Debug("layout", "width", res.Width, "height", res.Height, "crossings", res.Crossings, "virtual", res.Virtual)
	v.ctrl.Overview()
}

// SetDiagnostics attaches load diagnostics to later snapshots.
func (v *Viewer) SetDiagnostics(d *graph.Diagnostics) { v.diag = d }

// Loaded reports whether a graph is loaded.
func (v *Viewer) Loaded() bool { return v.graph != nil }

// Graph returns the loaded graph, or nil.
func (v *Viewer) Graph() *family.Graph { return v.graph }

// Layout returns the current layout, or nil.
func (v *Viewer) Layout() *layout.Result { return v.result }

// Settled reports whether the measured re-layout has run.
func (v *Viewer) Settled() bool { return v.settled }

// SelectedID returns the focused person, or "".
func (v *Viewer) SelectedID() string {
	if v.ctrl == nil {
		return ""
	}
	return v.ctrl.SelectedID()
}

// Snapshot returns the document for the host: structure, positions and the
// transient selection flags.
func (v *Viewer) Snapshot() graph.Graph {
	if v.graph == nil {
		return graph.Graph{Nodes: []graph.Node{}, Edges: []graph.Edge{}}
	}
	doc := graph.FromFamily(v.graph)
	doc.ApplyLayout(v.result)
	doc.ApplySelection(v.ctrl.SelectedID(), v.ctrl.Connected)
	doc.Diagnostics = v.diag
	return doc
}
