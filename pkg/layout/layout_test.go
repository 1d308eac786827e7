package layout

import (
	"math"
	"reflect"
	"testing"

	kerrors "github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/record"
)

const eps = 1e-6

func person(id, father, mother string) record.Person {
	return record.Person{ID: id, Name: id, FatherID: father, MotherID: mother}
}

// clan is three generations with a married-in spouse and a grandparent
// recorded directly as a parent.
func clan(t *testing.T) *family.Graph {
	t.Helper()
	g, err := family.Build([]record.Person{
		person("grandpa", "", ""),
		person("grandma", "", ""),
		person("dad", "grandpa", "grandma"),
		person("aunt", "grandpa", "grandma"),
		person("mum", "", ""),
		person("me", "dad", "mum"),
		person("sis", "dad", "mum"),
		person("cousin", "", "aunt"),
		person("ward", "grandpa", ""),
		person("late", "ward", ""),
	})
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}
	return g
}

func uniform(g *family.Graph, s Size) map[string]Size {
	out := make(map[string]Size)
	for _, n := range g.Nodes() {
		out[n.ID] = s
	}
	return out
}

func TestComputeIdempotent(t *testing.T) {
	g := clan(t)
	sizes := uniform(g, Size{Width: 150, Height: 60})
	a, err := Compute(g, sizes, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Compute(g, sizes, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two runs on the same input differ")
	}
}

func TestComputeGenerationalOrdering(t *testing.T) {
	g := clan(t)
	for _, sizes := range []map[string]Size{nil, uniform(g, Size{Width: 120, Height: 40})} {
		res, err := Compute(g, sizes, Options{})
		if err != nil {
			t.Fatal(err)
		}
		for _, e := range g.Edges() {
			parent, child := res.Centers[e.Target], res.Centers[e.Source]
			if parent.Y >= child.Y {
				t.Errorf("edge %s: parent y %.1f not above child y %.1f", e.ID, parent.Y, child.Y)
			}
			if res.Ranks[e.Target] >= res.Ranks[e.Source] {
				t.Errorf("edge %s: parent rank %d, child rank %d", e.ID, res.Ranks[e.Target], res.Ranks[e.Source])
			}
		}
	}
}

func TestComputeSpacing(t *testing.T) {
	g := clan(t)
	opts := DefaultOptions()
	sizes := uniform(g, Size{Width: 150, Height: 60})
	res, err := Compute(g, sizes, opts)
	if err != nil {
		t.Fatal(err)
	}
	for r, ids := range res.Orders {
		for i := 1; i < len(ids); i++ {
			a, _ := res.Box(ids[i-1])
			b, _ := res.Box(ids[i])
			if gap := b.X - (a.X + a.Width); gap < opts.NodeSep-eps {
				t.Errorf("row %d: gap between %s and %s = %.2f, want >= %.0f", r, ids[i-1], ids[i], gap, opts.NodeSep)
			}
		}
	}
	// Bands are separated by RankSep.
	if dy := res.Positions["dad"].Y - (res.Positions["grandpa"].Y + 60); math.Abs(dy-opts.RankSep) > eps {
		t.Errorf("band gap = %.2f, want %.0f", dy, opts.RankSep)
	}
}

func TestComputeTopLeftAnchor(t *testing.T) {
	g := clan(t)
	sizes := map[string]Size{"me": {Width: 100, Height: 40}}
	res, err := Compute(g, sizes, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	c, p := res.Centers["me"], res.Positions["me"]
	if math.Abs(p.X-(c.X-50)) > eps || math.Abs(p.Y-(c.Y-20)) > eps {
		t.Errorf("Positions[me] = %+v, centre %+v", p, c)
	}
	if res.Positions["sis"] != res.Centers["sis"] {
		t.Error("unmeasured node should be anchored at its centre")
	}
}

func TestComputeRanks(t *testing.T) {
	res, err := Compute(clan(t), nil, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]int{
		"grandpa": 0, "grandma": 0,
		"dad": 1, "aunt": 1, "mum": 1, "ward": 1,
		"me": 2, "sis": 2, "cousin": 2, "late": 2,
	}
	if !reflect.DeepEqual(res.Ranks, want) {
		t.Errorf("Ranks = %v, want %v", res.Ranks, want)
	}
}

func TestComputeBends(t *testing.T) {
	g, err := family.Build([]record.Person{
		person("grandpa", "", ""),
		person("dad", "grandpa", ""),
		person("kid", "dad", ""),
		person("heir", "grandpa", ""),
		person("heirkid", "heir", ""),
		person("skip", "", ""),
		person("x", "skip", ""),
		person("y", "x", ""),
		person("z", "y", ""),
		person("late", "skip", "z"),
	})
	if err != nil {
		t.Fatal(err)
	}
	res, err := Compute(g, nil, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	// skip (rank 0) → late (rank 4) passes three intermediate generations.
	bends := res.Bends["skip|late"]
	if len(bends) != 3 || res.Virtual != 3 {
		t.Fatalf("Bends[skip|late] = %v, Virtual = %d", bends, res.Virtual)
	}
	for i := 1; i < len(bends); i++ {
		if bends[i].Y <= bends[i-1].Y {
			t.Errorf("bends not ordered parent to child: %v", bends)
		}
	}
	if _, ok := res.Positions[`~skip|late@1`]; ok {
		t.Error("virtual node leaked into Positions")
	}
}

func TestBounds(t *testing.T) {
	g := clan(t)
	res, err := Compute(g, uniform(g, Size{Width: 100, Height: 50}), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	all, ok := res.Bounds()
	if !ok || math.Abs(all.Width-res.Width) > eps || math.Abs(all.Height-res.Height) > eps {
		t.Errorf("Bounds() = %+v, want %.1fx%.1f", all, res.Width, res.Height)
	}
	if all.X != 0 || all.Y != 0 {
		t.Errorf("layout not normalised to origin: %+v", all)
	}
	one, ok := res.Bounds("me", "missing")
	if !ok || one.Width != 100 || one.Height != 50 || one.X != res.Positions["me"].X {
		t.Errorf("Bounds(me) = %+v", one)
	}
	if _, ok := res.Bounds("missing"); ok {
		t.Error("Bounds(missing) reported ok")
	}
}

func TestComputeEmptyAndNil(t *testing.T) {
	g, _ := family.Build(nil)
	res, err := Compute(g, nil, Options{})
	if err != nil || len(res.Positions) != 0 {
		t.Errorf("Compute(empty) = %+v, %v", res, err)
	}
	if _, err := Compute(nil, nil, Options{}); !kerrors.Is(err, kerrors.ErrCodeInvalidInput) {
		t.Errorf("Compute(nil) = %v", err)
	}
}

func TestComputeCentresCoupleOverChild(t *testing.T) {
	g, err := family.Build([]record.Person{
		person("dad", "", ""), person("mum", "", ""), person("kid", "dad", "mum"),
	})
	if err != nil {
		t.Fatal(err)
	}
	res, err := Compute(g, nil, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	mid := (res.Centers["dad"].X + res.Centers["mum"].X) / 2
	if math.Abs(mid-res.Centers["kid"].X) > eps {
		t.Errorf("kid x = %.2f, parents' midpoint = %.2f", res.Centers["kid"].X, mid)
	}
}

func TestComputeFamiliesKeepsCoupleTogether(t *testing.T) {
	g, err := family.Build([]record.Person{
		person("dad", "", ""), person("loner", "", ""), person("mum", "", ""),
		person("kid", "dad", "mum"), person("other", "loner", ""),
	})
	if err != nil {
		t.Fatal(err)
	}
	opts := DefaultOptions()
	opts.Families = true
	res, err := Compute(g, nil, opts)
	if err != nil {
		t.Fatal(err)
	}
	row := res.Orders[res.Ranks["dad"]]
	i, j := -1, -1
	for k, id := range row {
		switch id {
		case "dad":
			i = k
		case "mum":
			j = k
		}
	}
	if i < 0 || j < 0 || (i-j != 1 && j-i != 1) {
		t.Errorf("generation order = %v, want dad next to mum", row)
	}
	if res.Crossings != 0 {
		t.Errorf("crossings = %d, want 0", res.Crossings)
	}
}
