package ordering

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/kintree/pkg/dag"
	"github.com/matzehuels/kintree/pkg/dag/perm"
)

// DefaultFamilyLimit caps the orderings [Families] scores per row.
const DefaultFamilyLimit = 720

// Families refines another orderer so that the parents of one child sit
// side by side and the children of one parent form a single block. A row is
// only rearranged when some arrangement honouring those groups crosses no
// more edges than the base ordering did. Groups that contradict each other,
// such as a person with three partners, are dropped one at a time until the
// rest can hold together.
type Families struct {
	// Base produces the starting order; nil uses [Barycentric].
	Base Orderer
	// Limit caps the arrangements scored per row.
	Limit int
}

// OrderRows implements [Orderer].
func (f Families) OrderRows(g *dag.DAG) map[int][]string {
	base := f.Base
	if base == nil {
		base = Barycentric{}
	}
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultFamilyLimit
	}

	orders := base.OrderRows(g)
	for _, r := range slices.Sorted(maps.Keys(orders)) {
		orders[r] = refineRow(g, orders, r, limit)
	}
	return orders
}

func refineRow(g *dag.DAG, orders map[int][]string, r, limit int) []string {
	row := orders[r]
	groups := familyGroups(g, row, orders[r-1], orders[r+1])
	if len(groups) == 0 {
		return row
	}

	tree := perm.New(len(row))
	kept := 0
	for _, set := range groups {
		next := tree.Clone()
		if !next.Reduce(set) {
			continue
		}
		tree = next
		groups[kept] = set
		kept++
	}
	groups = groups[:kept]
	if allContiguous(groups) {
		return row
	}

	cost := func(ids []string) int {
		return dag.CountLayerCrossings(g, orders[r-1], ids) + dag.CountLayerCrossings(g, ids, orders[r+1])
	}
	best, bestCost := row, cost(row)
	found := false
	tried := 0
	tree.Each(func(order []int) bool {
		ids := make([]string, len(order))
		for i, k := range order {
			ids[i] = row[k]
		}
		if c := cost(ids); c < bestCost || (!found && c == bestCost) {
			best, bestCost, found = ids, c, true
		}
		tried++
		return tried < limit
	})
	return best
}

// familyGroups returns, as indexes into row, the partners of every child
// below and the siblings under every parent above. Sets are sorted and
// deduplicated; singletons are skipped.
func familyGroups(g *dag.DAG, row, above, below []string) [][]int {
	pos := dag.PosMap(row)
	seen := map[string]bool{}
	var groups [][]int
	add := func(ids []string) {
		var set []int
		for _, id := range ids {
			if p, ok := pos[id]; ok {
				set = append(set, p)
			}
		}
		if len(set) < 2 {
			return
		}
		slices.Sort(set)
		set = slices.Compact(set)
		key := setKey(set)
		if len(set) < 2 || seen[key] {
			return
		}
		seen[key] = true
		groups = append(groups, set)
	}
	for _, child := range below {
		add(g.Parents(child))
	}
	for _, parent := range above {
		add(g.Children(parent))
	}
	return groups
}

func setKey(set []int) string {
	parts := make([]string, len(set))
	for i, v := range set {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// allContiguous reports whether every sorted set is a run of consecutive
// indexes, i.e. the current order already keeps it together.
func allContiguous(groups [][]int) bool {
	for _, set := range groups {
		if set[len(set)-1]-set[0]+1 != len(set) {
			return false
		}
	}
	return true
}
