package dag

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when the ID is taken.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when From is missing.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when To is missing.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrNonConsecutiveRows is returned by [DAG.Validate] when an edge does
	// not connect a node to the row directly below it.
	ErrNonConsecutiveRows = errors.New("edges must connect consecutive rows")

	// ErrGraphHasCycle is returned by [DAG.Validate] when a directed cycle exists.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// NodeKind distinguishes real people from layout helpers.
type NodeKind int

const (
	// NodeKindPerson is a vertex backed by a person record.
	NodeKindPerson NodeKind = iota
	// NodeKindVirtual is a bend point inserted where an edge skips generations.
	NodeKindVirtual
)

// Node is a vertex with an assigned row. Row 0 is the oldest generation.
type Node struct {
	ID   string
	Row  int
	Kind NodeKind
	// Origin is the label of the edge a virtual node was cut from.
	Origin string
}

// IsVirtual reports whether the node was inserted by subdivision.
func (n Node) IsVirtual() bool { return n.Kind == NodeKindVirtual }

// Edge points from an ancestor (From) to a descendant (To). Label carries the
// family edge id through subdivision so every segment can be traced back.
type Edge struct {
	From  string
	To    string
	Label string
}

// DAG is a layered directed graph. Unlike a plain adjacency map it remembers
// insertion order, and every listing method returns nodes in that order so
// layout results do not depend on map iteration.
//
// The zero value is not usable; call [New]. DAG is not safe for concurrent use.
type DAG struct {
	nodes    map[string]*Node
	order    []*Node
	edges    []Edge
	outgoing map[string][]string
	incoming map[string][]string
}

// New creates an empty DAG.
func New() *DAG {
	return &DAG{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode adds a node. IDs must be unique and non-empty.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := &n
	d.nodes[n.ID] = node
	d.order = append(d.order, node)
	return nil
}

// AddEdge adds a directed edge between two existing nodes. Row consistency
// is not checked here; see [DAG.Validate].
func (d *DAG) AddEdge(e Edge) error {
	if _, ok := d.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	d.edges = append(d.edges, e)
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], e.From)
	return nil
}

// RemoveEdge removes the first edge from→to, if any.
func (d *DAG) RemoveEdge(from, to string) {
	if i := slices.IndexFunc(d.edges, func(e Edge) bool { return e.From == from && e.To == to }); i >= 0 {
		d.edges = slices.Delete(d.edges, i, i+1)
	}
	if i := slices.Index(d.outgoing[from], to); i >= 0 {
		d.outgoing[from] = slices.Delete(d.outgoing[from], i, i+1)
	}
	if i := slices.Index(d.incoming[to], from); i >= 0 {
		d.incoming[to] = slices.Delete(d.incoming[to], i, i+1)
	}
}

// SetRows assigns rows to the named nodes; others keep their row.
func (d *DAG) SetRows(rows map[string]int) {
	for id, r := range rows {
		if n, ok := d.nodes[id]; ok {
			n.Row = r
		}
	}
}

// Nodes returns all nodes in insertion order. The pointers are live.
func (d *DAG) Nodes() []*Node { return slices.Clone(d.order) }

// Edges returns a copy of all edges in insertion order.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of nodes.
func (d *DAG) NodeCount() int { return len(d.order) }

// EdgeCount returns the number of edges.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Node returns the node with the given ID.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Children returns the descendants directly below id. Read-only view.
func (d *DAG) Children(id string) []string { return d.outgoing[id] }

// Parents returns the ancestors directly above id. Read-only view.
func (d *DAG) Parents(id string) []string { return d.incoming[id] }

// OutDegree returns the number of outgoing edges from id.
func (d *DAG) OutDegree(id string) int { return len(d.outgoing[id]) }

// InDegree returns the number of incoming edges to id.
func (d *DAG) InDegree(id string) int { return len(d.incoming[id]) }

// Rows groups nodes by row, each row in insertion order.
func (d *DAG) Rows() map[int][]*Node {
	rows := make(map[int][]*Node)
	for _, n := range d.order {
		rows[n.Row] = append(rows[n.Row], n)
	}
	return rows
}

// NodesInRow returns the nodes of one row in insertion order.
func (d *DAG) NodesInRow(row int) []*Node {
	var out []*Node
	for _, n := range d.order {
		if n.Row == row {
			out = append(out, n)
		}
	}
	return out
}

// RowIDs returns the occupied row indices in ascending order.
func (d *DAG) RowIDs() []int {
	return slices.Sorted(maps.Keys(d.Rows()))
}

// MaxRow returns the highest row index, or 0 for an empty graph.
func (d *DAG) MaxRow() int {
	m := 0
	for _, n := range d.order {
		m = max(m, n.Row)
	}
	return m
}

// Sources returns nodes without incoming edges, in insertion order.
func (d *DAG) Sources() []*Node {
	var out []*Node
	for _, n := range d.order {
		if len(d.incoming[n.ID]) == 0 {
			out = append(out, n)
		}
	}
	return out
}

// Sinks returns nodes without outgoing edges, in insertion order.
func (d *DAG) Sinks() []*Node {
	var out []*Node
	for _, n := range d.order {
		if len(d.outgoing[n.ID]) == 0 {
			out = append(out, n)
		}
	}
	return out
}

// Validate checks that every edge connects consecutive rows and that the
// graph is acyclic. Run it after subdivision.
func (d *DAG) Validate() error {
	for _, e := range d.edges {
		if d.nodes[e.To].Row != d.nodes[e.From].Row+1 {
			return ErrNonConsecutiveRows
		}
	}
	if HasCycle(d) {
		return ErrGraphHasCycle
	}
	return nil
}

// HasCycle reports whether g contains a directed cycle.
func HasCycle(g *DAG) bool {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(g.order))
	var visit func(id string) bool
	visit = func(id string) bool {
		color[id] = gray
		for _, c := range g.outgoing[id] {
			switch color[c] {
			case gray:
				return true
			case white:
				if visit(c) {
					return true
				}
			}
		}
		color[id] = black
		return false
	}
	for _, n := range g.order {
		if color[n.ID] == white && visit(n.ID) {
			return true
		}
	}
	return false
}

// PosMap maps each ID to its index in ids.
func PosMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}

// NodeIDs extracts node IDs, preserving order.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
