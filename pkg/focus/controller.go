package focus

import (
	"time"

	"github.com/charmbracelet/log"

	kerrors "github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/family"
)

// Camera fit parameters of the original viewer.
const (
	FitDuration     = 800 * time.Millisecond
	FocusPadding    = 0.3
	OverviewPadding = 0.1
)

// FitRequest asks the camera to frame some nodes. Empty NodeIDs frames the
// whole graph. Padding is a fraction of the framed box.
type FitRequest struct {
	NodeIDs  []string      `json:"node_ids,omitempty"`
	Duration time.Duration `json:"duration"`
	Padding  float64       `json:"padding"`
}

// Camera receives fit requests. Implementations must not block.
type Camera interface {
	Fit(req FitRequest)
}

// CameraFunc adapts a function to [Camera].
type CameraFunc func(FitRequest)

// Fit calls f(req).
func (f CameraFunc) Fit(req FitRequest) { f(req) }

// State is the controller state.
type State int

const (
	Idle State = iota
	Focused
)

func (s State) String() string {
	if s == Focused {
		return "focused"
	}
	return "idle"
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger logs transitions at debug level.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// Controller tracks the selected person and the connected-edge highlights.
// It is not safe for concurrent use; the host serializes events.
type Controller struct {
	graph     *family.Graph
	camera    Camera
	logger    *log.Logger
	selected  string
	connected map[string]bool
}

// New creates an idle controller over g. A nil camera discards requests.
func New(g *family.Graph, cam Camera, opts ...Option) *Controller {
	if cam == nil {
		cam = CameraFunc(func(FitRequest) {})
	}
	c := &Controller{
		graph:     g,
		camera:    cam,
		connected: map[string]bool{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns Idle or Focused.
func (c *Controller) State() State {
	if c.selected == "" {
		return Idle
	}
	return Focused
}

// SelectedID returns the selected person ID, or "" when idle.
func (c *Controller) SelectedID() string { return c.selected }

// Selected returns the selected node for the info panel.
func (c *Controller) Selected() (family.Node, bool) {
	if c.selected == "" {
		return family.Node{}, false
	}
	return c.graph.Node(c.selected)
}

// IsSelected reports whether id is the selected person.
func (c *Controller) IsSelected(id string) bool { return id != "" && id == c.selected }

// Connected reports whether the edge touches the selected person.
func (c *Controller) Connected(edgeID string) bool { return c.connected[edgeID] }

// ConnectedEdges returns the highlighted edge IDs in emission order.
func (c *Controller) ConnectedEdges() []string {
	var ids []string
	for _, e := range c.graph.Incident(c.selected) {
		ids = append(ids, e.ID)
	}
	return ids
}

// Select focuses id. Selecting the focused person again refits the camera.
// An unknown id leaves the state unchanged and returns UNKNOWN_NODE.
func (c *Controller) Select(id string) error {
	if !c.graph.Has(id) {
		return kerrors.New(kerrors.ErrCodeUnknownNode, "unknown person %q", id)
	}
	c.selected = id
	c.connected = make(map[string]bool)
	for _, e := range c.graph.Incident(id) {
		c.connected[e.ID] = true
	}
	c.debug("focus", "id", id, "edges", len(c.connected))
	c.camera.Fit(FitRequest{NodeIDs: []string{id}, Duration: FitDuration, Padding: FocusPadding})
	return nil
}

// Clear returns to Idle and frames the whole graph. It does nothing when
// already idle.
func (c *Controller) Clear() {
	if c.selected == "" {
		return
	}
	c.debug("clear", "id", c.selected)
	c.selected = ""
	c.connected = map[string]bool{}
	c.Overview()
}

// Overview frames the whole graph without changing state.
func (c *Controller) Overview() {
	c.camera.Fit(FitRequest{Duration: FitDuration, Padding: OverviewPadding})
}

// PaneClick handles a click on empty canvas: it clears the focus, or while
// idle frames the whole graph again.
func (c *Controller) PaneClick() {
	if c.selected != "" {
		c.Clear()
		return
	}
	c.Overview()
}

// CloseInfo handles closing the info panel.
func (c *Controller) CloseInfo() { c.Clear() }

// BeforeDelete is consulted before the surface deletes nodes or edges. It
// always vetoes and clears the selection.
func (c *Controller) BeforeDelete(nodeIDs, edgeIDs []string) bool {
	c.debug("delete vetoed", "nodes", len(nodeIDs), "edges", len(edgeIDs))
	c.Clear()
	return false
}

// Drag is consulted before a node moves. Positions belong to the layout,
// so it always vetoes.
func (c *Controller) Drag(id string) bool { return false }

// Connect is consulted before the surface adds an edge. Always vetoed.
func (c *Controller) Connect(source, target string) bool { return false }

func (c *Controller) debug(msg string, kv ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, kv...)
	}
}
