package focus

import (
	"slices"
	"testing"

	kerrors "github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/record"
)

func testGraph(t *testing.T) *family.Graph {
	t.Helper()
	g, err := family.Build([]record.Person{
		{ID: "dad", Name: "Dad"},
		{ID: "mum", Name: "Mum", Gender: record.Female},
		{ID: "anna", Name: "Anna", FatherID: "dad", MotherID: "mum"},
		{ID: "ben", Name: "Ben", FatherID: "dad", MotherID: "mum"},
		{ID: "cleo", Name: "Cleo", MotherID: "anna"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

type recorder struct{ reqs []FitRequest }

func (r *recorder) Fit(req FitRequest) { r.reqs = append(r.reqs, req) }

func (r *recorder) last() FitRequest { return r.reqs[len(r.reqs)-1] }

// checkInvariant verifies that connected flags equal "touches the selection".
func checkInvariant(t *testing.T, g *family.Graph, c *Controller) {
	t.Helper()
	selectedCount := 0
	for _, n := range g.Nodes() {
		if c.IsSelected(n.ID) {
			selectedCount++
		}
	}
	if selectedCount > 1 {
		t.Fatalf("%d nodes selected", selectedCount)
	}
	for _, e := range g.Edges() {
		want := c.State() == Focused && (e.Source == c.SelectedID() || e.Target == c.SelectedID())
		if c.Connected(e.ID) != want {
			t.Fatalf("Connected(%s) = %v, want %v (selected %q)", e.ID, c.Connected(e.ID), want, c.SelectedID())
		}
	}
}

func TestSelectAndClear(t *testing.T) {
	g := testGraph(t)
	cam := &recorder{}
	c := New(g, cam)

	if c.State() != Idle {
		t.Fatalf("initial state = %v", c.State())
	}
	if err := c.Select("anna"); err != nil {
		t.Fatal(err)
	}
	if c.State() != Focused || c.SelectedID() != "anna" {
		t.Fatalf("state = %v %q", c.State(), c.SelectedID())
	}
	if got := c.ConnectedEdges(); !slices.Equal(got, []string{"dad|anna", "mum|anna", "anna|cleo"}) {
		t.Errorf("ConnectedEdges() = %v", got)
	}
	req := cam.last()
	if !slices.Equal(req.NodeIDs, []string{"anna"}) || req.Duration != FitDuration || req.Padding != FocusPadding {
		t.Errorf("focus request = %+v", req)
	}
	checkInvariant(t, g, c)

	c.Clear()
	if c.State() != Idle {
		t.Fatalf("state after Clear = %v", c.State())
	}
	req = cam.last()
	if req.NodeIDs != nil || req.Padding != OverviewPadding || req.Duration != FitDuration {
		t.Errorf("overview request = %+v", req)
	}
	checkInvariant(t, g, c)

	n := len(cam.reqs)
	c.Clear()
	if len(cam.reqs) != n {
		t.Error("Clear() while idle moved the camera")
	}
}

func TestPaneClick(t *testing.T) {
	g := testGraph(t)
	cam := &recorder{}
	c := New(g, cam)

	c.PaneClick()
	if len(cam.reqs) != 1 || cam.last().NodeIDs != nil || cam.last().Padding != OverviewPadding {
		t.Fatalf("idle pane click requests = %+v, want one overview", cam.reqs)
	}

	_ = c.Select("anna")
	c.PaneClick()
	if c.State() != Idle {
		t.Errorf("state after pane click = %v", c.State())
	}
	if len(cam.reqs) != 3 || cam.last().Padding != OverviewPadding {
		t.Errorf("requests = %+v, want focus then overview", cam.reqs[1:])
	}
}

func TestSelectUnknown(t *testing.T) {
	g := testGraph(t)
	cam := &recorder{}
	c := New(g, cam)
	_ = c.Select("ben")

	err := c.Select("ghost")
	if !kerrors.Is(err, kerrors.ErrCodeUnknownNode) {
		t.Errorf("Select(ghost) = %v, want UNKNOWN_NODE", err)
	}
	if c.SelectedID() != "ben" || len(cam.reqs) != 1 {
		t.Errorf("unknown select changed state: %q, %d requests", c.SelectedID(), len(cam.reqs))
	}
}

func TestSingleSelectionSequence(t *testing.T) {
	g := testGraph(t)
	c := New(g, nil)
	steps := []func(){
		func() { _ = c.Select("dad") },
		func() { _ = c.Select("cleo") },
		c.PaneClick,
		func() { _ = c.Select("mum") },
		func() { _ = c.Select("mum") },
		c.CloseInfo,
		func() { _ = c.Select("anna") },
		func() { c.BeforeDelete([]string{"anna"}, nil) },
	}
	for _, step := range steps {
		step()
		checkInvariant(t, g, c)
	}
}

func TestVetoes(t *testing.T) {
	g := testGraph(t)
	c := New(g, nil)
	_ = c.Select("anna")

	if c.BeforeDelete([]string{"anna"}, []string{"dad|anna"}) {
		t.Error("BeforeDelete() allowed deletion")
	}
	if c.State() != Idle {
		t.Error("BeforeDelete() did not clear selection")
	}
	if g.Len() != 5 || g.EdgeCount() != 5 {
		t.Error("graph changed")
	}
	if c.Drag("anna") || c.Connect("anna", "ben") {
		t.Error("drag or connect allowed")
	}
}

func TestSelectedInfo(t *testing.T) {
	c := New(testGraph(t), nil)
	if _, ok := c.Selected(); ok {
		t.Error("Selected() ok while idle")
	}
	_ = c.Select("mum")
	n, ok := c.Selected()
	if !ok || n.Name != "Mum" || n.Kind != family.Female {
		t.Errorf("Selected() = %+v, %v", n, ok)
	}
}
