// Package layout computes generational positions for a family graph.
//
// # Overview
//
// [Compute] is a layered (Sugiyama-style) placement:
//
//  1. Rank: every person gets the depth of their longest ancestor chain, and
//     people without recorded parents are pulled down next to their partner.
//  2. Subdivide: edges that skip generations get virtual bend points.
//  3. Order: rows are sorted by barycenter sweeps to reduce crossings.
//  4. Place: x coordinates are averaged towards neighbours while keeping the
//     row order and a minimum gap; y coordinates are generation bands.
//
// Ancestors are drawn above descendants: a smaller Y means an older
// generation. Published positions are top-left corners, that is the computed
// centre minus half the measured size, matching the box model of the host
// renderer. Unmeasured nodes have size zero.
//
// Compute is a pure function of its inputs. Running it twice on the same
// graph, sizes and options yields identical results.
package layout

import (
	"math"

	"github.com/matzehuels/kintree/pkg/layout/ordering"
)

// Default spacing, in layout units.
const (
	DefaultNodeSep = 200
	DefaultRankSep = 100
	DefaultEdgeSep = 20
)

// Point is a position in layout units.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Size is a measured node size. The zero value means "not yet measured".
type Size struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Rect is an axis-aligned box given by its top-left corner and size.
type Rect struct {
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Center returns the centre of r.
func (r Rect) Center() Point { return Point{r.X + r.Width/2, r.Y + r.Height/2} }

// Union returns the smallest rect covering r and o.
func (r Rect) Union(o Rect) Rect {
	x0, y0 := math.Min(r.X, o.X), math.Min(r.Y, o.Y)
	x1 := math.Max(r.X+r.Width, o.X+o.Width)
	y1 := math.Max(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Options tunes the layout. Zero fields take the defaults.
type Options struct {
	// NodeSep is the horizontal gap between the boxes of two people.
	NodeSep float64 `toml:"node_sep" json:"node_sep" validate:"gte=0"`
	// RankSep is the vertical gap between two generation bands.
	RankSep float64 `toml:"rank_sep" json:"rank_sep" validate:"gte=0"`
	// EdgeSep is the horizontal gap reserved around virtual bend points.
	EdgeSep float64 `toml:"edge_sep" json:"edge_sep" validate:"gte=0"`
	// Passes is the number of ordering sweeps.
	Passes int `toml:"passes" json:"passes" validate:"gte=0,lte=1000"`
	// Families keeps partners and siblings together where that adds no
	// crossings.
	Families bool `toml:"families" json:"families"`
	// Orderer overrides the crossing reduction; nil uses ordering.Barycentric.
	Orderer ordering.Orderer `toml:"-" json:"-"`
}

// DefaultOptions returns the spacing of the original family viewer.
func DefaultOptions() Options {
	return Options{
		NodeSep: DefaultNodeSep,
		RankSep: DefaultRankSep,
		EdgeSep: DefaultEdgeSep,
		Passes:  ordering.DefaultPasses,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.NodeSep <= 0 {
		o.NodeSep = d.NodeSep
	}
	if o.RankSep <= 0 {
		o.RankSep = d.RankSep
	}
	if o.EdgeSep <= 0 {
		o.EdgeSep = d.EdgeSep
	}
	if o.Passes <= 0 {
		o.Passes = d.Passes
	}
	if o.Orderer == nil {
		o.Orderer = ordering.Barycentric{Passes: o.Passes}
		if o.Families {
			o.Orderer = ordering.Families{Base: o.Orderer}
		}
	}
	return o
}

// Result is a computed layout. Maps are keyed by person ID unless noted.
type Result struct {
	// Positions are top-left corners.
	Positions map[string]Point `json:"positions"`
	Centers   map[string]Point `json:"centers"`
	Sizes     map[string]Size  `json:"sizes"`
	// Ranks are generation indices, 0 for the oldest generation.
	Ranks map[string]int `json:"ranks"`
	// Orders lists the people of each generation from left to right.
	Orders map[int][]string `json:"orders"`
	// Bends holds, per family edge ID, the virtual bend points from the
	// parent down to the child. Edges between adjacent generations have none.
	Bends map[string][]Point `json:"bends,omitempty"`

	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Crossings int     `json:"crossings"`
	Virtual   int     `json:"virtual"`
}

// Box returns the bounding box of one person.
func (r *Result) Box(id string) (Rect, bool) {
	p, ok := r.Positions[id]
	if !ok {
		return Rect{}, false
	}
	s := r.Sizes[id]
	return Rect{X: p.X, Y: p.Y, Width: s.Width, Height: s.Height}, true
}

// Bounds returns the box covering the given people, or every person when no
// IDs are given. Unknown IDs are ignored; if nothing is left the zero Rect
// and false are returned.
func (r *Result) Bounds(ids ...string) (Rect, bool) {
	if len(ids) == 0 {
		for id := range r.Positions {
			ids = append(ids, id)
		}
	}
	var out Rect
	found := false
	for _, id := range ids {
		b, ok := r.Box(id)
		if !ok {
			continue
		}
		if !found {
			out, found = b, true
			continue
		}
		out = out.Union(b)
	}
	return out, found
}
