package transform

import "github.com/matzehuels/kintree/pkg/dag"

// FindCycle returns the IDs of one directed cycle in g, in edge order, or nil
// if g is acyclic. A self-loop is returned as a single ID.
//
// Nodes are visited in insertion order, so the reported cycle is the same on
// every run for the same graph.
func FindCycle(g *dag.DAG) []string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, g.NodeCount())
	var stack []string
	var cycle []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		color[id] = gray
		stack = append(stack, id)
		for _, child := range g.Children(id) {
			switch color[child] {
			case white:
				if dfs(child) {
					return true
				}
			case gray:
				for i := len(stack) - 1; i >= 0; i-- {
					if stack[i] == child {
						cycle = append([]string(nil), stack[i:]...)
						return true
					}
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return false
	}

	for _, n := range g.Nodes() {
		if color[n.ID] == white && dfs(n.ID) {
			return cycle
		}
	}
	return nil
}
