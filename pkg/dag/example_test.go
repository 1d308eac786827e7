package dag_test

import (
	"fmt"

	"github.com/matzehuels/kintree/pkg/dag"
)

func ExampleDAG_basic() {
	// Three generations: grandma → mum → kid
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "grandma", Row: 0})
	_ = g.AddNode(dag.Node{ID: "mum", Row: 1})
	_ = g.AddNode(dag.Node{ID: "kid", Row: 2})
	_ = g.AddEdge(dag.Edge{From: "grandma", To: "mum"})
	_ = g.AddEdge(dag.Edge{From: "mum", To: "kid"})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Rows:", g.RowIDs())
	fmt.Println("Valid:", g.Validate() == nil)
	// Output:
	// Nodes: 3
	// Edges: 2
	// Rows: [0 1 2]
	// Valid: true
}

func ExampleDAG_traversal() {
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "dad", Row: 0})
	_ = g.AddNode(dag.Node{ID: "anna", Row: 1})
	_ = g.AddNode(dag.Node{ID: "ben", Row: 1})
	_ = g.AddEdge(dag.Edge{From: "dad", To: "anna"})
	_ = g.AddEdge(dag.Edge{From: "dad", To: "ben"})

	fmt.Println("Children of dad:", g.Children("dad"))
	fmt.Println("Parents of ben:", g.Parents("ben"))
	fmt.Println("Sinks:", dag.NodeIDs(g.Sinks()))
	// Output:
	// Children of dad: [anna ben]
	// Parents of ben: [dad]
	// Sinks: [anna ben]
}

func ExampleCountLayerCrossings() {
	// Two parents each with one child, drawn in swapped order:
	//
	//	a   b
	//	 \ /
	//	  X
	//	 / \
	//	y   x
	g := dag.New()
	for _, id := range []string{"a", "b"} {
		_ = g.AddNode(dag.Node{ID: id, Row: 0})
	}
	for _, id := range []string{"x", "y"} {
		_ = g.AddNode(dag.Node{ID: id, Row: 1})
	}
	_ = g.AddEdge(dag.Edge{From: "a", To: "x"})
	_ = g.AddEdge(dag.Edge{From: "b", To: "y"})

	fmt.Println(dag.CountLayerCrossings(g, []string{"a", "b"}, []string{"y", "x"}))
	fmt.Println(dag.CountLayerCrossings(g, []string{"a", "b"}, []string{"x", "y"}))
	// Output:
	// 1
	// 0
}
