package transform

import (
	"fmt"

	"github.com/matzehuels/kintree/pkg/dag"
)

// Subdivide replaces every edge that spans more than one row with a chain of
// virtual nodes, one per intermediate row, so that crossing reduction only
// ever compares consecutive rows:
//
//	Before: grandpa (row 0) → kid (row 2)
//	After:  grandpa → ~grandpa|kid@1 → kid
//
// Virtual nodes carry the edge label as their Origin. Every segment of the
// chain keeps the original label. Virtual IDs start with "~" and are made
// unique against existing IDs.
//
// Subdivide returns the number of virtual nodes inserted.
func Subdivide(g *dag.DAG) int {
	gen := newIDGen(g.Nodes())
	inserted := 0
	var long []dag.Edge
	for _, e := range g.Edges() {
		src, _ := g.Node(e.From)
		dst, _ := g.Node(e.To)
		if dst.Row > src.Row+1 {
			long = append(long, e)
		}
	}

	for _, e := range long {
		src, _ := g.Node(e.From)
		dst, _ := g.Node(e.To)
		g.RemoveEdge(e.From, e.To)

		origin := e.Label
		if origin == "" {
			origin = e.From + "|" + e.To
		}
		prev := src.ID
		for row := src.Row + 1; row < dst.Row; row++ {
			id := gen.next(origin, row)
			mustAdd(g.AddNode(dag.Node{ID: id, Row: row, Kind: dag.NodeKindVirtual, Origin: origin}))
			mustAdd(g.AddEdge(dag.Edge{From: prev, To: id, Label: e.Label}))
			prev = id
			inserted++
		}
		mustAdd(g.AddEdge(dag.Edge{From: prev, To: dst.ID, Label: e.Label}))
	}
	return inserted
}

// mustAdd panics on errors that indicate a bug in Subdivide itself: all
// endpoints exist and generated IDs are unique.
func mustAdd(err error) {
	if err != nil {
		panic(err)
	}
}

type idGen struct {
	used map[string]struct{}
}

func newIDGen(nodes []*dag.Node) *idGen {
	m := make(map[string]struct{}, len(nodes)*2)
	for _, n := range nodes {
		m[n.ID] = struct{}{}
	}
	return &idGen{used: m}
}

func (gen *idGen) next(origin string, row int) string {
	prefix := fmt.Sprintf("~%s@%d", origin, row)
	id := prefix
	for i := 1; ; i++ {
		if _, exists := gen.used[id]; !exists {
			gen.used[id] = struct{}{}
			return id
		}
		id = fmt.Sprintf("%s#%d", prefix, i)
	}
}
