package graph

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/record"
)

func buildFamily(t *testing.T) *family.Graph {
	t.Helper()
	g, err := family.Build([]record.Person{
		{ID: "dad", Name: "Dad", Gender: record.Male},
		{ID: "mum", Name: "Mum", Gender: record.Female, IsDeceased: true},
		{ID: "kid", Name: "Kid", Gender: record.Female, FatherID: "dad", MotherID: "mum"},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func TestFromFamily(t *testing.T) {
	doc := FromFamily(buildFamily(t))

	if len(doc.Nodes) != 3 || len(doc.Edges) != 2 {
		t.Fatalf("got %d nodes, %d edges", len(doc.Nodes), len(doc.Edges))
	}
	if doc.Nodes[1].Gender != 0 || !doc.Nodes[1].Deceased {
		t.Errorf("mum = %+v", doc.Nodes[1])
	}
	father := doc.Edges[0]
	if father.ID != "dad|kid" || father.Source != "kid" || father.Target != "dad" || father.Kind != "father" {
		t.Errorf("father edge = %+v", father)
	}
	if father.SourceX != 0.3 || father.Step != 1.0 {
		t.Errorf("father anchor = %v/%v", father.SourceX, father.Step)
	}
	if m := doc.Edges[1]; m.Kind != "mother" || m.SourceX != 0.7 || m.Step != 0.1 {
		t.Errorf("mother edge = %+v", m)
	}
	if doc.Nodes[0].Position != nil {
		t.Error("structure-only document has positions")
	}
}

func TestApplyLayout(t *testing.T) {
	g := buildFamily(t)
	res, err := layout.Compute(g, nil, layout.DefaultOptions())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	doc := FromFamily(g)
	doc.ApplyLayout(res)

	for _, n := range doc.Nodes {
		if n.Position == nil || n.Size == nil || n.Rank == nil {
			t.Fatalf("node %s missing layout: %+v", n.ID, n)
		}
	}
	kid, _ := doc.Node("kid")
	if *kid.Rank != 1 {
		t.Errorf("kid rank = %d, want 1", *kid.Rank)
	}
	if doc.Bounds == nil || doc.Width <= 0 {
		t.Errorf("bounds = %v width = %v", doc.Bounds, doc.Width)
	}
}

func TestApplySelection(t *testing.T) {
	doc := FromFamily(buildFamily(t))
	doc.ApplySelection("mum", func(id string) bool { return id == "mum|kid" })

	for _, n := range doc.Nodes {
		if n.Selected != (n.ID == "mum") {
			t.Errorf("node %s selected = %v", n.ID, n.Selected)
		}
	}
	if doc.Edges[0].Connected || !doc.Edges[1].Connected {
		t.Errorf("connected = %v, %v", doc.Edges[0].Connected, doc.Edges[1].Connected)
	}

	doc.ApplySelection("", func(string) bool { return false })
	for _, n := range doc.Nodes {
		if n.Selected {
			t.Errorf("node %s still selected", n.ID)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	doc := FromFamily(buildFamily(t))
	doc.ApplyDiagnostics(record.Result{Inactive: 2}, buildFamily(t), 0)

	var buf bytes.Buffer
	if err := WriteGraph(doc, &buf); err != nil {
		t.Fatalf("WriteGraph: %v", err)
	}
	back, err := ReadGraph(&buf)
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}
	if back.Diagnostics == nil || back.Diagnostics.Inactive != 2 {
		t.Errorf("diagnostics = %+v", back.Diagnostics)
	}

	g, err := ToFamily(back)
	if err != nil {
		t.Fatalf("ToFamily: %v", err)
	}
	if g.Len() != 3 || g.EdgeCount() != 2 {
		t.Errorf("rebuilt %d nodes, %d edges", g.Len(), g.EdgeCount())
	}
	if n, _ := g.Node("mum"); n.Kind != family.Female {
		t.Errorf("mum kind = %v", n.Kind)
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := WriteGraphFile(FromFamily(buildFamily(t)), path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}
	doc, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}
	if len(doc.Nodes) != 3 {
		t.Errorf("got %d nodes", len(doc.Nodes))
	}
	if _, err := ReadGraphFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBSONRoundTrip(t *testing.T) {
	doc := FromFamily(buildFamily(t))
	data, err := MarshalBSON(doc)
	if err != nil {
		t.Fatalf("MarshalBSON: %v", err)
	}
	back, err := UnmarshalBSON(data)
	if err != nil {
		t.Fatalf("UnmarshalBSON: %v", err)
	}
	if len(back.Edges) != 2 || back.Edges[0].ID != "dad|kid" {
		t.Errorf("edges = %+v", back.Edges)
	}
}

func TestBSONFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.bson")
	if err := WriteGraphFile(FromFamily(buildFamily(t)), path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}
	doc, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}
	g, err := ToFamily(doc)
	if err != nil {
		t.Fatalf("ToFamily: %v", err)
	}
	if g.Len() != 3 || g.EdgeCount() != 2 {
		t.Errorf("rebuilt %d nodes, %d edges", g.Len(), g.EdgeCount())
	}
}

func TestIsDocumentPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"graph.json", true},
		{"out/Graph.BSON", true},
		{"family.csv", false},
		{"mongodb://localhost/kin.json", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsDocumentPath(tt.path); got != tt.want {
			t.Errorf("IsDocumentPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestToFamilyRejectsCycle(t *testing.T) {
	doc := Graph{Nodes: []Node{
		{ID: "a", Gender: 1, FatherID: "b"},
		{ID: "b", Gender: 1, FatherID: "a"},
	}}
	if _, err := ToFamily(doc); err == nil {
		t.Fatal("expected cycle error")
	}
}

func TestUnmarshalGraphInvalid(t *testing.T) {
	if _, err := UnmarshalGraph([]byte("{not json")); err == nil {
		t.Error("expected decode error")
	}
}
