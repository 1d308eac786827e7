package dag

import (
	"errors"
	"slices"
	"testing"
)

func TestAddNodeErrors(t *testing.T) {
	g := New()
	if err := g.AddNode(Node{}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode(empty) = %v, want ErrInvalidNodeID", err)
	}
	if err := g.AddNode(Node{ID: "a"}); err != nil {
		t.Fatalf("AddNode(a) = %v", err)
	}
	if err := g.AddNode(Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode(dup) = %v, want ErrDuplicateNodeID", err)
	}
}

func TestAddEdgeErrors(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	if err := g.AddEdge(Edge{From: "x", To: "a"}); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("AddEdge(unknown from) = %v", err)
	}
	if err := g.AddEdge(Edge{From: "a", To: "x"}); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("AddEdge(unknown to) = %v", err)
	}
}

func TestNodesInsertionOrder(t *testing.T) {
	g := New()
	ids := []string{"m", "c", "x", "a", "q", "b"}
	for i, id := range ids {
		_ = g.AddNode(Node{ID: id, Row: i % 2})
	}
	if got := NodeIDs(g.Nodes()); !slices.Equal(got, ids) {
		t.Errorf("Nodes() = %v, want %v", got, ids)
	}
	if got := NodeIDs(g.NodesInRow(1)); !slices.Equal(got, []string{"c", "a", "b"}) {
		t.Errorf("NodesInRow(1) = %v", got)
	}
	if got := NodeIDs(g.Sources()); !slices.Equal(got, ids) {
		t.Errorf("Sources() = %v", got)
	}
}

func TestRemoveEdge(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b", Row: 1})
	_ = g.AddEdge(Edge{From: "a", To: "b"})
	g.RemoveEdge("a", "b")
	g.RemoveEdge("a", "b")

	if g.EdgeCount() != 0 || g.OutDegree("a") != 0 || g.InDegree("b") != 0 {
		t.Errorf("edge not removed: edges=%d out=%d in=%d", g.EdgeCount(), g.OutDegree("a"), g.InDegree("b"))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		rows  map[string]int
		edges [][2]string
		want  error
	}{
		{"consecutive", map[string]int{"a": 0, "b": 1}, [][2]string{{"a", "b"}}, nil},
		{"skips row", map[string]int{"a": 0, "b": 2}, [][2]string{{"a", "b"}}, ErrNonConsecutiveRows},
		{"same row", map[string]int{"a": 0, "b": 0}, [][2]string{{"a", "b"}}, ErrNonConsecutiveRows},
		{"empty", nil, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			for _, id := range []string{"a", "b"} {
				if r, ok := tt.rows[id]; ok {
					_ = g.AddNode(Node{ID: id, Row: r})
				}
			}
			for _, e := range tt.edges {
				_ = g.AddEdge(Edge{From: e[0], To: e[1]})
			}
			if err := g.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestHasCycle(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b", "c"} {
		_ = g.AddNode(Node{ID: id})
	}
	_ = g.AddEdge(Edge{From: "a", To: "b"})
	_ = g.AddEdge(Edge{From: "b", To: "c"})
	if HasCycle(g) {
		t.Fatal("HasCycle() = true on a chain")
	}
	_ = g.AddEdge(Edge{From: "c", To: "a"})
	if !HasCycle(g) {
		t.Fatal("HasCycle() = false on a triangle")
	}
}

func TestCountCrossings(t *testing.T) {
	// Complete bipartite K2,2 always has exactly one crossing.
	g := New()
	for _, id := range []string{"p1", "p2"} {
		_ = g.AddNode(Node{ID: id, Row: 0})
	}
	for _, id := range []string{"c1", "c2"} {
		_ = g.AddNode(Node{ID: id, Row: 1})
	}
	for _, p := range []string{"p1", "p2"} {
		for _, c := range []string{"c1", "c2"} {
			_ = g.AddEdge(Edge{From: p, To: c})
		}
	}
	orders := map[int][]string{0: {"p1", "p2"}, 1: {"c1", "c2"}}
	if got := CountCrossings(g, orders); got != 1 {
		t.Errorf("CountCrossings() = %d, want 1", got)
	}
	adj := PosMap(orders[1])
	if got := CountPairCrossingsWithPos(g, "p1", "p2", adj, false); got != 1 {
		t.Errorf("CountPairCrossingsWithPos() = %d, want 1", got)
	}
}
