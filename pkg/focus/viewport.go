package focus

import (
	"math"
	"time"

	"github.com/matzehuels/kintree/pkg/layout"
)

// Default zoom limits.
const (
	MinZoom = 0.5
	MaxZoom = 2.0
)

// View is a camera state: the layout point at the centre of the screen and
// the zoom factor.
type View struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// BoundsFunc returns the layout box of the given nodes, or of all nodes when
// none are given. [layout.Result.Bounds] has this signature.
type BoundsFunc func(ids ...string) (layout.Rect, bool)

// Viewport is a [Camera] that animates between views.
type Viewport struct {
	width, height    float64
	minZoom, maxZoom float64
	bounds           BoundsFunc
	now              func() time.Time

	from, to View
	start    time.Time
	duration time.Duration
}

// ViewportOption configures a Viewport.
type ViewportOption func(*Viewport)

// WithClock replaces time.Now; tests use it to step animations.
func WithClock(now func() time.Time) ViewportOption {
	return func(v *Viewport) { v.now = now }
}

// WithZoomRange overrides the zoom limits.
func WithZoomRange(lo, hi float64) ViewportOption {
	return func(v *Viewport) { v.minZoom, v.maxZoom = lo, hi }
}

// NewViewport creates a viewport of the given screen size at zoom 1.
func NewViewport(width, height float64, bounds BoundsFunc, opts ...ViewportOption) *Viewport {
	v := &Viewport{
		width:   width,
		height:  height,
		minZoom: MinZoom,
		maxZoom: MaxZoom,
		bounds:  bounds,
		now:     time.Now,
		from:    View{Zoom: 1},
		to:      View{Zoom: 1},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// SetBounds swaps the bounds source, for example after a new layout.
func (v *Viewport) SetBounds(b BoundsFunc) { v.bounds = b }

// Resize changes the screen size. The current view is kept.
func (v *Viewport) Resize(width, height float64) { v.width, v.height = width, height }

// Fit implements [Camera]. Requests for unknown nodes are ignored.
func (v *Viewport) Fit(req FitRequest) {
	if v.bounds == nil {
		return
	}
	box, ok := v.bounds(req.NodeIDs...)
	if !ok {
		return
	}
	target := v.viewFor(box, req.Padding)
	v.from = v.Current()
	v.to = target
	v.start = v.now()
	v.duration = req.Duration
}

// viewFor centres box and picks the largest zoom at which box, grown by
// padding, fits the screen.
func (v *Viewport) viewFor(box layout.Rect, padding float64) View {
	zoom := v.maxZoom
	if w := box.Width * (1 + padding); w > 0 {
		zoom = math.Min(zoom, v.width/w)
	}
	if h := box.Height * (1 + padding); h > 0 {
		zoom = math.Min(zoom, v.height/h)
	}
	zoom = math.Max(v.minZoom, math.Min(v.maxZoom, zoom))
	c := box.Center()
	return View{X: c.X, Y: c.Y, Zoom: zoom}
}

// Current returns the interpolated view at the current time.
func (v *Viewport) Current() View {
	p := v.progress()
	if p >= 1 {
		return v.to
	}
	e := easeInOutCubic(p)
	lerp := func(a, b float64) float64 { return a + (b-a)*e }
	return View{
		X:    lerp(v.from.X, v.to.X),
		Y:    lerp(v.from.Y, v.to.Y),
		Zoom: lerp(v.from.Zoom, v.to.Zoom),
	}
}

// Target returns the view the viewport is moving to.
func (v *Viewport) Target() View { return v.to }

// Animating reports whether an animation is still in flight.
func (v *Viewport) Animating() bool { return v.progress() < 1 }

// ToScreen maps a layout point to screen coordinates under the current view.
func (v *Viewport) ToScreen(p layout.Point) (x, y float64) {
	c := v.Current()
	return (p.X-c.X)*c.Zoom + v.width/2, (p.Y-c.Y)*c.Zoom + v.height/2
}

func (v *Viewport) progress() float64 {
	if v.duration <= 0 {
		return 1
	}
	return math.Min(1, float64(v.now().Sub(v.start))/float64(v.duration))
}

func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}
