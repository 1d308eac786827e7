package transform

import (
	"testing"

	"github.com/matzehuels/kintree/pkg/dag"
)

func rowsOf(g *dag.DAG) map[string]int {
	out := make(map[string]int)
	for _, n := range g.Nodes() {
		out[n.ID] = n.Row
	}
	return out
}

func TestAssignLayers(t *testing.T) {
	// grandpa → dad → kid, mum → kid, grandpa → kid (a recorded shortcut)
	g := buildGraph(
		[]string{"kid", "dad", "mum", "grandpa"},
		[][2]string{{"grandpa", "dad"}, {"dad", "kid"}, {"mum", "kid"}, {"grandpa", "kid"}},
	)
	AssignLayers(g)

	want := map[string]int{"grandpa": 0, "dad": 1, "mum": 0, "kid": 2}
	for id, row := range want {
		if got := rowsOf(g)[id]; got != row {
			t.Errorf("row(%s) = %d, want %d", id, got, row)
		}
	}
	for _, e := range g.Edges() {
		from, _ := g.Node(e.From)
		to, _ := g.Node(e.To)
		if from.Row >= to.Row {
			t.Errorf("edge %s→%s points upward (%d→%d)", e.From, e.To, from.Row, to.Row)
		}
	}
}

func TestTighten(t *testing.T) {
	g := buildGraph(
		[]string{"grandpa", "dad", "mum", "kid", "loner"},
		[][2]string{{"grandpa", "dad"}, {"dad", "kid"}, {"mum", "kid"}},
	)
	AssignLayers(g)
	Tighten(g)

	rows := rowsOf(g)
	if rows["mum"] != 1 {
		t.Errorf("row(mum) = %d, want 1 (next to dad)", rows["mum"])
	}
	if rows["grandpa"] != 0 {
		t.Errorf("row(grandpa) = %d, want 0", rows["grandpa"])
	}
	if rows["loner"] != 0 {
		t.Errorf("row(loner) = %d, want 0", rows["loner"])
	}
}

func TestTightenUsesHighestChild(t *testing.T) {
	// "step" is parent of both "dad" (row 1) and "kid" (row 2); it must stay
	// above dad.
	g := buildGraph(
		[]string{"grandpa", "dad", "kid", "step"},
		[][2]string{{"grandpa", "dad"}, {"dad", "kid"}, {"step", "dad"}, {"step", "kid"}},
	)
	AssignLayers(g)
	Tighten(g)

	if got := rowsOf(g)["step"]; got != 0 {
		t.Errorf("row(step) = %d, want 0", got)
	}
}
