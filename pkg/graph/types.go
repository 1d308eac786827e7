package graph

import (
	"fmt"

	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/record"
)

// Graph is the canonical document exchanged with host renderers, written by
// the CLI and served by the HTTP API. The structural part (nodes, edges) is
// always present; positions, highlights and diagnostics are filled by
// [Graph.ApplyLayout], [Graph.ApplySelection] and [Graph.ApplyDiagnostics].
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`

	Width    float64      `json:"width,omitempty" bson:"width,omitempty"`
	Height   float64      `json:"height,omitempty" bson:"height,omitempty"`
	Bounds   *layout.Rect `json:"bounds,omitempty" bson:"bounds,omitempty"`
	Selected string       `json:"selected,omitempty" bson:"selected,omitempty"`

	Diagnostics *Diagnostics `json:"diagnostics,omitempty" bson:"diagnostics,omitempty"`
}

// Node is one person.
type Node struct {
	ID       string `json:"id" bson:"id"`
	Name     string `json:"name" bson:"name"`
	Gender   int    `json:"gender" bson:"gender"` // 1 male, 0 female
	Deceased bool   `json:"is_deceased,omitempty" bson:"is_deceased,omitempty"`
	FatherID string `json:"father_id,omitempty" bson:"father_id,omitempty"`
	MotherID string `json:"mother_id,omitempty" bson:"mother_id,omitempty"`

	Rank     *int          `json:"rank,omitempty" bson:"rank,omitempty"`
	Position *layout.Point `json:"position,omitempty" bson:"position,omitempty"`
	Size     *layout.Size  `json:"size,omitempty" bson:"size,omitempty"`
	Selected bool          `json:"selected,omitempty" bson:"selected,omitempty"`
}

// Edge is a child→parent relation.
type Edge struct {
	ID     string `json:"id" bson:"id"`
	Source string `json:"source" bson:"source"` // child
	Target string `json:"target" bson:"target"` // parent
	Kind   string `json:"kind" bson:"kind"`     // "father" or "mother"

	// SourceX and Step are the anchor parameters of the edge kind.
	SourceX   float64        `json:"source_x" bson:"source_x"`
	Step      float64        `json:"step" bson:"step"`
	Bends     []layout.Point `json:"bends,omitempty" bson:"bends,omitempty"`
	Connected bool           `json:"connected,omitempty" bson:"connected,omitempty"`
}

// Diagnostics collects the non-fatal data defects of one load.
type Diagnostics struct {
	Defects    []record.Defect      `json:"defects,omitempty" bson:"defects,omitempty"`
	Dangling   []family.DanglingRef `json:"dangling,omitempty" bson:"dangling,omitempty"`
	Duplicates []family.DanglingRef `json:"duplicates,omitempty" bson:"duplicates,omitempty"`
	Inactive   int                  `json:"inactive" bson:"inactive"`
	Skipped    int                  `json:"skipped" bson:"skipped"`
	Crossings  int                  `json:"crossings" bson:"crossings"`
}

// FromFamily converts a family graph into a document, keeping node and edge
// order.
func FromFamily(g *family.Graph) Graph {
	nodes := g.Nodes()
	edges := g.Edges()
	out := Graph{
		Nodes: make([]Node, len(nodes)),
		Edges: make([]Edge, len(edges)),
	}
	for i, n := range nodes {
		gender := record.Male
		if n.Kind == family.Female {
			gender = record.Female
		}
		out.Nodes[i] = Node{
			ID:       n.ID,
			Name:     n.Name,
			Gender:   gender.Code(),
			Deceased: n.Deceased,
			FatherID: n.FatherID,
			MotherID: n.MotherID,
		}
	}
	for i, e := range edges {
		a := e.Kind.Anchor()
		out.Edges[i] = Edge{
			ID:      e.ID,
			Source:  e.Source,
			Target:  e.Target,
			Kind:    e.Kind.String(),
			SourceX: a.SourceX,
			Step:    a.Step,
		}
	}
	return out
}

// ToFamily rebuilds the family graph from a document. Structural checks run
// again, so a hand-edited document with a cycle is rejected.
func ToFamily(doc Graph) (*family.Graph, error) {
	people := make([]record.Person, len(doc.Nodes))
	for i, n := range doc.Nodes {
		gender := record.Male
		if n.Gender == 0 {
			gender = record.Female
		}
		people[i] = record.Person{
			ID:         n.ID,
			Name:       n.Name,
			IsDeceased: n.Deceased,
			Gender:     gender,
			FatherID:   n.FatherID,
			MotherID:   n.MotherID,
		}
	}
	g, err := family.Build(people)
	if err != nil {
		return nil, fmt.Errorf("rebuild graph: %w", err)
	}
	return g, nil
}

// ApplyLayout fills positions, sizes, ranks and edge bends.
func (d *Graph) ApplyLayout(res *layout.Result) {
	for i := range d.Nodes {
		n := &d.Nodes[i]
		if p, ok := res.Positions[n.ID]; ok {
			s := res.Sizes[n.ID]
			r := res.Ranks[n.ID]
			n.Position, n.Size, n.Rank = &p, &s, &r
		}
	}
	for i := range d.Edges {
		d.Edges[i].Bends = res.Bends[d.Edges[i].ID]
	}
	d.Width, d.Height = res.Width, res.Height
	if b, ok := res.Bounds(); ok {
		d.Bounds = &b
	}
}

// ApplySelection marks the selected node and the connected edges.
func (d *Graph) ApplySelection(selected string, connected func(edgeID string) bool) {
	d.Selected = selected
	for i := range d.Nodes {
		d.Nodes[i].Selected = selected != "" && d.Nodes[i].ID == selected
	}
	for i := range d.Edges {
		d.Edges[i].Connected = connected(d.Edges[i].ID)
	}
}

// ApplyDiagnostics attaches the load diagnostics.
func (d *Graph) ApplyDiagnostics(norm record.Result, g *family.Graph, crossings int) {
	d.Diagnostics = &Diagnostics{
		Defects:    norm.Defects,
		Dangling:   g.Dangling,
		Duplicates: g.Duplicates,
		Inactive:   norm.Inactive,
		Skipped:    norm.Skipped,
		Crossings:  crossings,
	}
}

// Node looks up a node by ID.
func (d *Graph) Node(id string) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
