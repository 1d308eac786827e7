package ordering

import (
	"slices"
	"testing"

	"github.com/matzehuels/kintree/pkg/dag"
)

func adjacent(row []string, a, b string) bool {
	i, j := slices.Index(row, a), slices.Index(row, b)
	return i >= 0 && j >= 0 && (i-j == 1 || j-i == 1)
}

func TestFamiliesJoinsPartners(t *testing.T) {
	// b is childless and sits between the parents of x.
	g := layered(
		[][]string{{"a", "b", "c"}, {"x"}},
		[][2]string{{"a", "x"}, {"c", "x"}},
	)
	base := Barycentric{}.OrderRows(g)
	if adjacent(base[0], "a", "c") {
		t.Skipf("base order already joins the couple: %v", base[0])
	}

	orders := Families{}.OrderRows(g)
	if !adjacent(orders[0], "a", "c") {
		t.Errorf("row 0 = %v, want a next to c", orders[0])
	}
	if c := dag.CountCrossings(g, orders); c != 0 {
		t.Errorf("crossings = %d, want 0", c)
	}
}

func TestFamiliesJoinsSiblings(t *testing.T) {
	g := layered(
		[][]string{{"p"}, {"x", "y", "z"}},
		[][2]string{{"p", "x"}, {"p", "z"}},
	)
	orders := Families{}.OrderRows(g)
	if !adjacent(orders[1], "x", "z") {
		t.Errorf("row 1 = %v, want x next to z", orders[1])
	}
}

func TestFamiliesNeverAddsCrossings(t *testing.T) {
	tests := []struct {
		name  string
		rows  [][]string
		edges [][2]string
	}{
		{
			name: "three partners",
			rows: [][]string{{"b", "a", "c", "d"}, {"x", "y", "z"}},
			edges: [][2]string{
				{"a", "x"}, {"b", "x"},
				{"a", "y"}, {"c", "y"},
				{"a", "z"}, {"d", "z"},
			},
		},
		{
			name: "interleaved couples",
			rows: [][]string{
				{"f1", "m1", "f2", "m2"},
				{"c2a", "c1a", "c2b", "c1b"},
				{"g2", "g1"},
			},
			edges: [][2]string{
				{"f1", "c1a"}, {"m1", "c1a"}, {"f1", "c1b"}, {"m1", "c1b"},
				{"f2", "c2a"}, {"m2", "c2a"}, {"f2", "c2b"}, {"m2", "c2b"},
				{"c1a", "g1"}, {"c2a", "g2"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := layered(tt.rows, tt.edges)
			base := Barycentric{}.OrderRows(g)
			orders := Families{Base: Barycentric{}}.OrderRows(g)

			for r, ids := range tt.rows {
				got := slices.Sorted(slices.Values(orders[r]))
				want := slices.Sorted(slices.Values(ids))
				if !slices.Equal(got, want) {
					t.Errorf("row %d = %v, want a permutation of %v", r, orders[r], ids)
				}
			}
			if got, was := dag.CountCrossings(g, orders), dag.CountCrossings(g, base); got > was {
				t.Errorf("crossings = %d, base ordering had %d", got, was)
			}
		})
	}
}

func TestFamiliesLimit(t *testing.T) {
	g := layered(
		[][]string{{"a", "b", "c"}, {"x"}},
		[][2]string{{"a", "x"}, {"c", "x"}},
	)
	orders := Families{Limit: 1}.OrderRows(g)
	if len(orders[0]) != 3 {
		t.Errorf("row 0 = %v, want 3 people", orders[0])
	}
}

func TestFamilyGroups(t *testing.T) {
	g := layered(
		[][]string{{"p"}, {"a", "b", "c"}, {"x", "y"}},
		[][2]string{
			{"p", "a"}, {"p", "c"},
			{"a", "x"}, {"b", "x"},
			{"a", "y"}, {"b", "y"},
		},
	)
	groups := familyGroups(g, []string{"a", "b", "c"}, []string{"p"}, []string{"x", "y"})
	want := [][]int{{0, 1}, {0, 2}}
	if len(groups) != len(want) {
		t.Fatalf("groups = %v, want %v", groups, want)
	}
	for i := range want {
		if !slices.Equal(groups[i], want[i]) {
			t.Errorf("groups[%d] = %v, want %v", i, groups[i], want[i])
		}
	}
}
