// Package ordering decides the left-to-right order of nodes within each row
// of a layered graph so that edges cross as little as possible.
package ordering

import (
	"maps"
	"slices"

	"github.com/matzehuels/kintree/pkg/dag"
)

// DefaultPasses is the number of layer sweeps [Barycentric] runs by default.
const DefaultPasses = 24

// Orderer computes a row ordering for a layered graph. Every edge of g must
// connect consecutive rows. The returned map holds, for every occupied row,
// all node IDs of that row.
type Orderer interface {
	OrderRows(g *dag.DAG) map[int][]string
}

// Barycentric is the classic layer-sweep heuristic. Each pass walks the rows
// downward (or upward on odd passes) and sorts a row by the mean position of
// each node's neighbours in the row just visited, then improves the result
// with adjacent transpositions. The ordering with the fewest crossings seen
// is kept. The first ordering is the graph's insertion order, so the result
// is deterministic.
type Barycentric struct {
	Passes int
}

// OrderRows implements [Orderer].
func (b Barycentric) OrderRows(g *dag.DAG) map[int][]string {
	passes := b.Passes
	if passes <= 0 {
		passes = DefaultPasses
	}

	orders := make(map[int][]string)
	for r, nodes := range g.Rows() {
		orders[r] = dag.NodeIDs(nodes)
	}
	rows := slices.Sorted(maps.Keys(orders))

	best := cloneOrders(orders)
	bestCross := dag.CountCrossings(g, orders)

	for i := 0; i < passes && bestCross > 0; i++ {
		if i%2 == 0 {
			for k := 1; k < len(rows); k++ {
				sortByBarycenter(g, orders[rows[k]], orders[rows[k]-1], true)
			}
		} else {
			for k := len(rows) - 2; k >= 0; k-- {
				sortByBarycenter(g, orders[rows[k]], orders[rows[k]+1], false)
			}
		}
		transpose(g, orders, rows)

		if c := dag.CountCrossings(g, orders); c < bestCross {
			best, bestCross = cloneOrders(orders), c
		}
	}
	return best
}

// sortByBarycenter reorders row in place. Nodes without neighbours in adj
// keep their slot; the others fill the remaining slots sorted by barycenter.
func sortByBarycenter(g *dag.DAG, row, adj []string, useParents bool) {
	if len(row) < 2 || len(adj) == 0 {
		return
	}
	pos := dag.PosMap(adj)

	type entry struct {
		id   string
		bary float64
	}
	var movable []entry
	fixed := make([]bool, len(row))
	for i, id := range row {
		nbrs := g.Children(id)
		if useParents {
			nbrs = g.Parents(id)
		}
		sum, n := 0, 0
		for _, nb := range nbrs {
			if p, ok := pos[nb]; ok {
				sum += p
				n++
			}
		}
		if n == 0 {
			fixed[i] = true
			continue
		}
		movable = append(movable, entry{id, float64(sum) / float64(n)})
	}

	slices.SortStableFunc(movable, func(a, b entry) int {
		switch {
		case a.bary < b.bary:
			return -1
		case a.bary > b.bary:
			return 1
		}
		return 0
	})

	next := 0
	for i := range row {
		if fixed[i] {
			continue
		}
		row[i] = movable[next].id
		next++
	}
}

// transpose swaps adjacent nodes while doing so lowers the crossings with
// both neighbouring rows. Every swap strictly reduces the total, so the loop
// terminates.
func transpose(g *dag.DAG, orders map[int][]string, rows []int) {
	for improved := true; improved; {
		improved = false
		for _, r := range rows {
			row := orders[r]
			above, below := dag.PosMap(orders[r-1]), dag.PosMap(orders[r+1])
			for j := 0; j+1 < len(row); j++ {
				v, w := row[j], row[j+1]
				before := dag.CountPairCrossingsWithPos(g, v, w, above, true) +
					dag.CountPairCrossingsWithPos(g, v, w, below, false)
				after := dag.CountPairCrossingsWithPos(g, w, v, above, true) +
					dag.CountPairCrossingsWithPos(g, w, v, below, false)
				if after < before {
					row[j], row[j+1] = w, v
					improved = true
				}
			}
		}
	}
}

func cloneOrders(orders map[int][]string) map[int][]string {
	out := make(map[int][]string, len(orders))
	for r, ids := range orders {
		out[r] = slices.Clone(ids)
	}
	return out
}
