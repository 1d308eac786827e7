package ordering

import (
	"fmt"
	"maps"
	"slices"
	"testing"

	"github.com/matzehuels/kintree/pkg/dag"
)

// layered builds a graph from rows of IDs and parent→child edges.
func layered(rows [][]string, edges [][2]string) *dag.DAG {
	g := dag.New()
	for r, ids := range rows {
		for _, id := range ids {
			_ = g.AddNode(dag.Node{ID: id, Row: r})
		}
	}
	for _, e := range edges {
		_ = g.AddEdge(dag.Edge{From: e[0], To: e[1]})
	}
	return g
}

func TestBarycentricRemovesCrossing(t *testing.T) {
	g := layered(
		[][]string{{"a", "b"}, {"y", "x"}},
		[][2]string{{"a", "x"}, {"b", "y"}},
	)
	if c := dag.CountCrossings(g, map[int][]string{0: {"a", "b"}, 1: {"y", "x"}}); c != 1 {
		t.Fatalf("initial crossings = %d, want 1", c)
	}
	orders := Barycentric{}.OrderRows(g)
	if c := dag.CountCrossings(g, orders); c != 0 {
		t.Errorf("crossings after ordering = %d, want 0 (%v)", c, orders)
	}
}

func TestBarycentricThreeGenerations(t *testing.T) {
	// Two couples whose children were recorded in interleaved order. Each
	// couple with two children is a K2,2 and forces exactly one crossing.
	g := layered(
		[][]string{
			{"f1", "m1", "f2", "m2"},
			{"c2a", "c1a", "c2b", "c1b"},
			{"g2", "g1"},
		},
		[][2]string{
			{"f1", "c1a"}, {"m1", "c1a"}, {"f1", "c1b"}, {"m1", "c1b"},
			{"f2", "c2a"}, {"m2", "c2a"}, {"f2", "c2b"}, {"m2", "c2b"},
			{"c1a", "g1"}, {"c2a", "g2"},
		},
	)
	orders := Barycentric{Passes: 8}.OrderRows(g)
	if c := dag.CountCrossings(g, orders); c != 2 {
		t.Errorf("crossings = %d, want 2 (%v)", c, orders)
	}
}

func TestBarycentricKeepsAllNodes(t *testing.T) {
	g := layered(
		[][]string{{"p", "loner"}, {"c1", "c2", "c3"}},
		[][2]string{{"p", "c3"}, {"p", "c1"}},
	)
	orders := Barycentric{}.OrderRows(g)
	for r, nodes := range g.Rows() {
		want := slices.Sorted(slices.Values(dag.NodeIDs(nodes)))
		got := slices.Sorted(slices.Values(orders[r]))
		if !slices.Equal(got, want) {
			t.Errorf("row %d = %v, want permutation of %v", r, orders[r], want)
		}
	}
}

func TestBarycentricDeterministic(t *testing.T) {
	build := func() *dag.DAG {
		return layered(
			[][]string{{"a", "b", "c"}, {"x", "y", "z"}},
			[][2]string{{"a", "z"}, {"b", "x"}, {"c", "y"}, {"a", "y"}},
		)
	}
	first := Barycentric{}.OrderRows(build())
	for range 10 {
		got := Barycentric{}.OrderRows(build())
		if !maps.EqualFunc(got, first, slices.Equal) {
			t.Fatalf("OrderRows() = %v, previously %v", got, first)
		}
	}
}

func ExampleBarycentric() {
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "dad", Row: 0})
	_ = g.AddNode(dag.Node{ID: "uncle", Row: 0})
	_ = g.AddNode(dag.Node{ID: "cousin", Row: 1})
	_ = g.AddNode(dag.Node{ID: "me", Row: 1})
	_ = g.AddEdge(dag.Edge{From: "dad", To: "me"})
	_ = g.AddEdge(dag.Edge{From: "uncle", To: "cousin"})

	orders := Barycentric{}.OrderRows(g)
	fmt.Println(orders[0], orders[1])
	// Output: [dad uncle] [me cousin]
}
