package family

import "github.com/matzehuels/kintree/pkg/record"

// NodeKind is the closed set of person kinds. Renderers and the layout look
// kind parameters up in a table instead of branching on gender.
type NodeKind int

const (
	Male NodeKind = iota
	Female
)

// KindSpec holds the fixed presentation parameters of a node kind.
type KindSpec struct {
	Label  string // "male" / "female"
	Fill   string // node fill colour
	Stroke string // node border colour
	Shape  string // graphviz shape
	// Category is the index of the kind in chart legends.
	Category int
}

var nodeKinds = [...]KindSpec{
	Male:   {Label: "male", Fill: "#dbeafe", Stroke: "#2563eb", Shape: "box", Category: 0},
	Female: {Label: "female", Fill: "#fce7f3", Stroke: "#db2777", Shape: "box", Category: 1},
}

// NodeKinds lists every node kind in category order.
var NodeKinds = []NodeKind{Male, Female}

// Spec returns the parameters of k.
func (k NodeKind) Spec() KindSpec { return nodeKinds[k] }

func (k NodeKind) String() string { return nodeKinds[k].Label }

// KindOf maps a record gender to its node kind.
func KindOf(g record.Gender) NodeKind {
	if g == record.Female {
		return Female
	}
	return Male
}

// EdgeKind records which parent field produced an edge.
type EdgeKind int

const (
	Father EdgeKind = iota
	Mother
)

// AnchorSpec fixes where an edge of a given kind attaches and bends.
type AnchorSpec struct {
	Label string
	// SourceX is the fraction of the child's width at which the edge leaves
	// the child. Father edges leave left of centre, mother edges right of it.
	SourceX float64
	// Step is the position of the elbow along the edge, from 0 at the child to
	// 1 at the parent.
	Step  float64
	Color string
}

var edgeKinds = [...]AnchorSpec{
	Father: {Label: "father", SourceX: 0.3, Step: 1.0, Color: "#2563eb"},
	Mother: {Label: "mother", SourceX: 0.7, Step: 0.1, Color: "#db2777"},
}

// Anchor returns the anchor parameters of k.
func (k EdgeKind) Anchor() AnchorSpec { return edgeKinds[k] }

func (k EdgeKind) String() string { return edgeKinds[k].Label }
