// Package family assembles normalized person records into the family graph:
// one node per person and one edge per resolvable parent reference.
//
// Edges point from child (Source) to parent (Target) and are identified by
// "parentID|childID". A child has at most one father edge and one mother
// edge, so edge IDs are unique within a graph.
//
// Parent references that do not resolve to a person in the input are dropped
// and reported through [Graph.Dangling]; no placeholder nodes are created.
// A person listed as their own parent, or a loop of parent references, makes
// [Build] fail with a [*StructuralError]: such input has no generational order
// and is never forwarded to layout.
//
// A Graph is immutable after Build and safe for concurrent readers.
package family

import (
	"slices"

	"github.com/matzehuels/kintree/pkg/dag"
	"github.com/matzehuels/kintree/pkg/dag/transform"
	kerrors "github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/record"
)

// Node is the structural record of one person in the graph.
type Node struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Kind     NodeKind `json:"-"`
	Deceased bool     `json:"is_deceased"`
	// FatherID and MotherID are copied from the record, even when they
	// dangle. Use [Graph.Parents] for resolved parents.
	FatherID string `json:"father_id,omitempty"`
	MotherID string `json:"mother_id,omitempty"`
}

// Edge is a directed child→parent relation.
type Edge struct {
	ID     string   `json:"id"`
	Source string   `json:"source"` // child
	Target string   `json:"target"` // parent
	Kind   EdgeKind `json:"-"`
}

// DanglingRef is a parent reference that was dropped.
type DanglingRef struct {
	Child  string   `json:"child"`
	Parent string   `json:"parent"`
	Kind   EdgeKind `json:"-"`
}

// Graph is the immutable family graph.
type Graph struct {
	nodes []Node
	edges []Edge
	index map[string]int
	edge  map[string]int
	up    map[string][]int // child id -> edge indices
	down  map[string][]int // parent id -> edge indices

	// Dangling lists parent references to people absent from the input, in
	// input order.
	Dangling []DanglingRef
	// Duplicates lists mother references dropped because they name the same
	// person as the father reference and would repeat the edge ID.
	Duplicates []DanglingRef
}

// EdgeID returns the identifier of the edge from child to parent.
func EdgeID(parent, child string) string {
	return parent + kerrors.EdgeIDSeparator + child
}

// Build assembles the graph from people in input order. Edges are emitted per
// person, father before mother.
//
// Build returns an INVALID_ID error for an empty or repeated person ID and a
// [*StructuralError] for self-parent references and cycles. Dangling parent
// references are not errors.
func Build(people []record.Person) (*Graph, error) {
	g := &Graph{
		nodes: make([]Node, 0, len(people)),
		index: make(map[string]int, len(people)),
		edge:  make(map[string]int, len(people)*2),
		up:    make(map[string][]int),
		down:  make(map[string][]int),
	}

	for _, p := range people {
		if err := kerrors.ValidateID(p.ID); err != nil {
			return nil, err
		}
		if _, dup := g.index[p.ID]; dup {
			return nil, kerrors.New(kerrors.ErrCodeInvalidID, "duplicate person id %q", p.ID)
		}
		g.index[p.ID] = len(g.nodes)
		g.nodes = append(g.nodes, Node{
			ID:       p.ID,
			Name:     p.Name,
			Kind:     KindOf(p.Gender),
			Deceased: p.IsDeceased,
			FatherID: p.FatherID,
			MotherID: p.MotherID,
		})
	}

	for _, p := range people {
		if p.FatherID == p.ID || p.MotherID == p.ID {
			return nil, &StructuralError{Code: kerrors.ErrCodeSelfParent, IDs: []string{p.ID}}
		}
		g.link(p.ID, p.FatherID, Father)
		if p.MotherID != "" && p.MotherID == p.FatherID {
			g.Duplicates = append(g.Duplicates, DanglingRef{Child: p.ID, Parent: p.MotherID, Kind: Mother})
			continue
		}
		g.link(p.ID, p.MotherID, Mother)
	}

	if ids := transform.FindCycle(g.DAG()); ids != nil {
		return nil, &StructuralError{Code: kerrors.ErrCodeCycle, IDs: ids}
	}
	return g, nil
}

func (g *Graph) link(child, parent string, kind EdgeKind) {
	if parent == "" {
		return
	}
	if _, ok := g.index[parent]; !ok {
		g.Dangling = append(g.Dangling, DanglingRef{Child: child, Parent: parent, Kind: kind})
		return
	}
	i := len(g.edges)
	e := Edge{ID: EdgeID(parent, child), Source: child, Target: parent, Kind: kind}
	g.edges = append(g.edges, e)
	g.edge[e.ID] = i
	g.up[child] = append(g.up[child], i)
	g.down[parent] = append(g.down[parent], i)
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// DanglingCount returns the number of dropped dangling references.
func (g *Graph) DanglingCount() int { return len(g.Dangling) }

// Nodes returns a copy of the nodes in input order.
func (g *Graph) Nodes() []Node { return slices.Clone(g.nodes) }

// Edges returns a copy of the edges in emission order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Node looks up a node by ID.
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// Has reports whether id names a node.
func (g *Graph) Has(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Edge looks up an edge by ID.
func (g *Graph) Edge(id string) (Edge, bool) {
	i, ok := g.edge[id]
	if !ok {
		return Edge{}, false
	}
	return g.edges[i], true
}

// Parents returns the resolved parents of id, father first.
func (g *Graph) Parents(id string) []Node {
	var out []Node
	for _, i := range g.up[id] {
		out = append(out, g.nodes[g.index[g.edges[i].Target]])
	}
	return out
}

// Children returns the children of id in input order.
func (g *Graph) Children(id string) []Node {
	var out []Node
	for _, i := range g.down[id] {
		out = append(out, g.nodes[g.index[g.edges[i].Source]])
	}
	return out
}

// Incident returns the edges that have id as source or target, in emission
// order.
func (g *Graph) Incident(id string) []Edge {
	idx := slices.Concat(g.up[id], g.down[id])
	slices.Sort(idx)
	out := make([]Edge, len(idx))
	for k, i := range idx {
		out[k] = g.edges[i]
	}
	return out
}

// DAG converts the graph into a layered [dag.DAG] with edges oriented from
// ancestor to descendant, which is the orientation the layout ranks by.
// Edge labels are the family edge IDs. Rows are left at zero.
func (g *Graph) DAG() *dag.DAG {
	d := dag.New()
	for _, n := range g.nodes {
		_ = d.AddNode(dag.Node{ID: n.ID})
	}
	for _, e := range g.edges {
		_ = d.AddEdge(dag.Edge{From: e.Target, To: e.Source, Label: e.ID})
	}
	return d
}
