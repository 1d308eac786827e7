package layout

import (
	"slices"

	"github.com/matzehuels/kintree/pkg/dag"
)

// placeX assigns horizontal centres. Rows are first packed tightly, then
// swept alternately downward and upward: each node is pulled towards the mean
// x of its neighbours in the row just placed, and the row is re-fitted so that
// order and minimum gaps hold. A final sweep averages over both neighbouring
// rows so couples settle centred over their children.
func placeX(g *dag.DAG, orders map[int][]string, rows []int, width, gap func(string) float64) map[string]float64 {
	xs := make(map[string]float64)
	for _, r := range rows {
		row := orders[r]
		desired := make([]float64, len(row))
		fitRow(row, desired, xs, width, gap)
	}

	for sweep := 0; sweep < placementSweeps; sweep++ {
		down := sweep%2 == 0
		for k := range rows {
			r := rows[k]
			if !down {
				r = rows[len(rows)-1-k]
			}
			row := orders[r]
			desired := make([]float64, len(row))
			for i, id := range row {
				nbrs := g.Parents(id)
				if !down {
					nbrs = g.Children(id)
				}
				desired[i] = meanX(nbrs, xs, xs[id])
			}
			fitRow(row, desired, xs, width, gap)
		}
	}

	for _, r := range rows {
		row := orders[r]
		desired := make([]float64, len(row))
		for i, id := range row {
			desired[i] = meanX(slices.Concat(g.Parents(id), g.Children(id)), xs, xs[id])
		}
		fitRow(row, desired, xs, width, gap)
	}
	return xs
}

func meanX(ids []string, xs map[string]float64, fallback float64) float64 {
	if len(ids) == 0 {
		return fallback
	}
	sum := 0.0
	for _, id := range ids {
		sum += xs[id]
	}
	return sum / float64(len(ids))
}

// fitRow writes into xs the positions closest (in least squares) to desired
// that keep the row order and the minimum distance between neighbouring
// centres. Substituting y[i] = x[i] - offset[i], where offset accumulates the
// minimum distances, turns the gap constraints into y being non-decreasing;
// that is isotonic regression, solved exactly by pooling adjacent violators.
func fitRow(row []string, desired []float64, xs map[string]float64, width, gap func(string) float64) {
	if len(row) == 0 {
		return
	}
	offset := make([]float64, len(row))
	for i := 1; i < len(row); i++ {
		a, b := row[i-1], row[i]
		offset[i] = offset[i-1] + (width(a)+gap(a))/2 + (width(b)+gap(b))/2
	}

	type block struct {
		sum   float64
		count int
	}
	mean := func(b block) float64 { return b.sum / float64(b.count) }

	blocks := make([]block, 0, len(row))
	for i := range row {
		blocks = append(blocks, block{desired[i] - offset[i], 1})
		for len(blocks) > 1 && mean(blocks[len(blocks)-2]) > mean(blocks[len(blocks)-1]) {
			top := blocks[len(blocks)-1]
			blocks = blocks[:len(blocks)-1]
			blocks[len(blocks)-1].sum += top.sum
			blocks[len(blocks)-1].count += top.count
		}
	}

	i := 0
	for _, b := range blocks {
		y := mean(b)
		for range b.count {
			xs[row[i]] = y + offset[i]
			i++
		}
	}
}
