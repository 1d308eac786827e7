package dag

import (
	"maps"
	"slices"
)

// CountCrossings sums the crossings between every pair of consecutive rows
// in orders. Missing rows count as empty.
func CountCrossings(g *DAG, orders map[int][]string) int {
	rows := slices.Sorted(maps.Keys(orders))
	total := 0
	for _, r := range rows {
		total += CountLayerCrossings(g, orders[r], orders[r+1])
	}
	return total
}

// CountLayerCrossings counts crossings between an upper and a lower row.
//
// Edges (u1,v1) and (u2,v2) cross iff pos(u1) < pos(u2) and pos(v1) > pos(v2),
// so the count equals the number of inversions in the lower endpoints once
// edges are sorted by upper endpoint. Inversions are counted with a Fenwick
// tree in O(E log V).
func CountLayerCrossings(g *DAG, upper, lower []string) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}
	lowerPos := PosMap(lower)

	type seg struct{ u, l int }
	segs := make([]seg, 0, len(upper)*2)
	for i, id := range upper {
		for _, c := range g.Children(id) {
			if p, ok := lowerPos[c]; ok {
				segs = append(segs, seg{i, p})
			}
		}
	}
	if len(segs) < 2 {
		return 0
	}
	slices.SortFunc(segs, func(a, b seg) int {
		if a.u != b.u {
			return a.u - b.u
		}
		return a.l - b.l
	})

	tree := make([]int, len(lower)+1)
	crossings := 0
	for seen, s := range segs {
		atMost := 0
		for q := s.l + 1; q > 0; q -= q & -q {
			atMost += tree[q]
		}
		crossings += seen - atMost
		for q := s.l + 1; q < len(tree); q += q & -q {
			tree[q]++
		}
	}
	return crossings
}

// CountPairCrossingsWithPos counts crossings between the edges of two nodes
// placed left and right of each other, against an adjacent row given by its
// position map. With useParents the row above is used, otherwise the row below.
// Local search compares this against the swapped pair to decide a transposition.
func CountPairCrossingsWithPos(g *DAG, left, right string, adjPos map[string]int, useParents bool) int {
	lnbr, rnbr := g.Children(left), g.Children(right)
	if useParents {
		lnbr, rnbr = g.Parents(left), g.Parents(right)
	}
	crossings := 0
	for _, ln := range lnbr {
		lp, ok := adjPos[ln]
		if !ok {
			continue
		}
		for _, rn := range rnbr {
			if rp, ok := adjPos[rn]; ok && lp > rp {
				crossings++
			}
		}
	}
	return crossings
}
