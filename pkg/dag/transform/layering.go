package transform

import "github.com/matzehuels/kintree/pkg/dag"

// AssignLayers assigns every node the length of the longest ancestor chain
// above it: nodes without parents sit in row 0 and each other node sits one
// row below its lowest parent. This is the longest-path ranking measured
// from the oldest generation, so every edge points strictly downward.
//
// Rows are computed with Kahn's algorithm in O(V + E). Nodes on a cycle never
// reach in-degree zero and keep row 0; callers reject cyclic input first with
// [FindCycle].
func AssignLayers(g *dag.DAG) {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	rows := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, n := range nodes {
		rows[n.ID] = 0
		if d := g.InDegree(n.ID); d > 0 {
			inDegree[n.ID] = d
		} else {
			queue = append(queue, n.ID)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, child := range g.Children(curr) {
			rows[child] = max(rows[child], rows[curr]+1)
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	g.SetRows(rows)
}

// Tighten moves parent-less nodes down so they sit directly above their
// highest child. Without it a person who married into the family would
// float in row 0 next to the founders, far above their spouse.
//
// Only sources move, and only downward, so edges keep pointing down.
func Tighten(g *dag.DAG) {
	rows := make(map[string]int)
	for _, n := range g.Sources() {
		children := g.Children(n.ID)
		if len(children) == 0 {
			continue
		}
		lowest := -1
		for _, c := range children {
			cn, _ := g.Node(c)
			if lowest < 0 || cn.Row < lowest {
				lowest = cn.Row
			}
		}
		if target := lowest - 1; target > n.Row {
			rows[n.ID] = target
		}
	}
	g.SetRows(rows)
}
