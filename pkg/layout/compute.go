package layout

import (
	"slices"

	"github.com/matzehuels/kintree/pkg/dag"
	"github.com/matzehuels/kintree/pkg/dag/transform"
	kerrors "github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/family"
)

// placementSweeps is the number of neighbour-averaging sweeps used to
// assign x coordinates.
const placementSweeps = 8

// Compute lays out g. sizes holds measured node sizes; missing entries count
// as unmeasured. A cyclic graph is rejected with a [*family.StructuralError].
func Compute(g *family.Graph, sizes map[string]Size, opts Options) (*Result, error) {
	if g == nil {
		return nil, kerrors.New(kerrors.ErrCodeInvalidInput, "layout: nil graph")
	}
	opts = opts.withDefaults()

	d := g.DAG()
	if ids := transform.FindCycle(d); ids != nil {
		return nil, &family.StructuralError{Code: kerrors.ErrCodeCycle, IDs: ids}
	}
	transform.AssignLayers(d)
	transform.Tighten(d)
	virtual := transform.Subdivide(d)

	orders := opts.Orderer.OrderRows(d)
	rows := d.RowIDs()

	res := &Result{
		Positions: make(map[string]Point, g.Len()),
		Centers:   make(map[string]Point, g.Len()),
		Sizes:     make(map[string]Size, g.Len()),
		Ranks:     make(map[string]int, g.Len()),
		Orders:    make(map[int][]string, len(rows)),
		Bends:     make(map[string][]Point),
		Crossings: dag.CountCrossings(d, orders),
		Virtual:   virtual,
	}
	if d.NodeCount() == 0 {
		return res, nil
	}

	size := func(id string) Size {
		if n, _ := d.Node(id); n.IsVirtual() {
			return Size{}
		}
		return sizes[id]
	}
	gap := func(id string) float64 {
		if n, _ := d.Node(id); n.IsVirtual() {
			return opts.EdgeSep
		}
		return opts.NodeSep
	}

	xs := placeX(d, orders, rows, func(id string) float64 { return size(id).Width }, gap)
	ys, height := placeY(orders, rows, func(id string) float64 { return size(id).Height }, opts.RankSep)

	left, right := 0.0, 0.0
	first := true
	for _, n := range d.Nodes() {
		w := size(n.ID).Width
		l, r := xs[n.ID]-w/2, xs[n.ID]+w/2
		if first || l < left {
			left = l
		}
		if first || r > right {
			right = r
		}
		first = false
	}
	res.Width, res.Height = right-left, height

	for _, n := range d.Nodes() {
		c := Point{X: xs[n.ID] - left, Y: ys[n.ID]}
		if n.IsVirtual() {
			res.Bends[n.Origin] = append(res.Bends[n.Origin], c)
			continue
		}
		s := size(n.ID)
		res.Centers[n.ID] = c
		res.Sizes[n.ID] = s
		res.Positions[n.ID] = Point{X: c.X - s.Width/2, Y: c.Y - s.Height/2}
		res.Ranks[n.ID] = n.Row
	}
	for _, r := range rows {
		res.Orders[r] = slices.DeleteFunc(slices.Clone(orders[r]), func(id string) bool {
			n, _ := d.Node(id)
			return n.IsVirtual()
		})
	}
	// Virtual nodes are inserted top to bottom, so bends are already ordered
	// from parent to child.
	return res, nil
}

// placeY stacks generation bands. Each band is as tall as its tallest node
// and bands are rankSep apart. It returns centre y per node and total height.
func placeY(orders map[int][]string, rows []int, height func(string) float64, rankSep float64) (map[string]float64, float64) {
	ys := make(map[string]float64)
	top := 0.0
	for i, r := range rows {
		band := 0.0
		for _, id := range orders[r] {
			band = max(band, height(id))
		}
		if i > 0 {
			top += rankSep
		}
		for _, id := range orders[r] {
			ys[id] = top + band/2
		}
		top += band
	}
	return ys, top
}
