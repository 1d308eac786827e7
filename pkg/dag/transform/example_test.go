package transform_test

import (
	"fmt"

	"github.com/matzehuels/kintree/pkg/dag"
	"github.com/matzehuels/kintree/pkg/dag/transform"
)

func Example() {
	// grandpa → dad → kid, mum → kid, and grandpa recorded directly as a
	// parent of kid as well.
	g := dag.New()
	for _, id := range []string{"grandpa", "dad", "mum", "kid"} {
		_ = g.AddNode(dag.Node{ID: id})
	}
	_ = g.AddEdge(dag.Edge{From: "grandpa", To: "dad", Label: "grandpa|dad"})
	_ = g.AddEdge(dag.Edge{From: "dad", To: "kid", Label: "dad|kid"})
	_ = g.AddEdge(dag.Edge{From: "mum", To: "kid", Label: "mum|kid"})
	_ = g.AddEdge(dag.Edge{From: "grandpa", To: "kid", Label: "grandpa|kid"})

	fmt.Println("Cycle:", transform.FindCycle(g))
	transform.AssignLayers(g)
	transform.Tighten(g)
	fmt.Println("Virtual nodes:", transform.Subdivide(g))
	for _, n := range g.Nodes() {
		fmt.Printf("%s row %d\n", n.ID, n.Row)
	}
	// Output:
	// Cycle: []
	// Virtual nodes: 1
	// grandpa row 0
	// dad row 1
	// mum row 1
	// kid row 2
	// ~grandpa|kid@1 row 1
}
