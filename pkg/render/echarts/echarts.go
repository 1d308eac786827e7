// Package echarts renders a laid-out family graph as a standalone HTML page
// with go-echarts. Nodes keep their computed positions; the page supports
// panning, zooming and adjacency highlighting on hover.
package echarts

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/graph"
	"github.com/matzehuels/kintree/pkg/record"
)

const selectedStroke = "#111827"

// Options configures the page.
type Options struct {
	Title string
	// Width and Height are CSS sizes of the chart; empty fills the window.
	Width  string
	Height string
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "Family tree"
	}
	if o.Width == "" {
		o.Width = "100vw"
	}
	if o.Height == "" {
		o.Height = "100vh"
	}
	return o
}

// Render writes the page for a laid-out document.
func Render(w io.Writer, doc graph.Graph, o Options) error {
	for _, n := range doc.Nodes {
		if n.Position == nil {
			return fmt.Errorf("node %s has no position; lay the graph out first", n.ID)
		}
	}
	page := components.NewPage()
	page.PageTitle = o.withDefaults().Title
	page.AddCharts(chart(doc, o.withDefaults()))
	return page.Render(w)
}

// RenderHTML returns the page as bytes.
func RenderHTML(doc graph.Graph, o Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, doc, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func chart(doc graph.Graph, o Options) *charts.Graph {
	g := charts.NewGraph()
	g.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: o.Title,
			Width:     o.Width,
			Height:    o.Height,
		}),
		charts.WithTitleOpts(opts.Title{Title: o.Title}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	g.AddSeries("family", nodes(doc), links(doc),
		charts.WithGraphChartOpts(opts.GraphChart{
			Layout:             "none",
			Roam:               opts.Bool(true),
			Draggable:          opts.Bool(false),
			FocusNodeAdjacency: opts.Bool(true),
			EdgeSymbol:         []string{"none", "arrow"},
			Categories:         categories(),
		}),
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Color:    "black",
			Position: "inside",
		}),
	)
	return g
}

func categories() []*opts.GraphCategory {
	out := make([]*opts.GraphCategory, len(family.NodeKinds))
	for _, k := range family.NodeKinds {
		out[k.Spec().Category] = &opts.GraphCategory{Name: k.String()}
	}
	return out
}

func nodes(doc graph.Graph) []opts.GraphNode {
	out := make([]opts.GraphNode, len(doc.Nodes))
	for i, n := range doc.Nodes {
		spec := family.KindOf(record.Gender(n.Gender)).Spec()

		w, h := 120.0, 40.0
		if n.Size != nil && n.Size.Width > 0 {
			w, h = n.Size.Width, n.Size.Height
		}
		style := &opts.ItemStyle{Color: spec.Fill, BorderColor: spec.Stroke, BorderType: "solid"}
		if n.Deceased {
			style.BorderType = "dashed"
		}
		if n.Selected {
			style.BorderColor = selectedStroke
		}
		out[i] = opts.GraphNode{
			Name:       n.Name + " (" + n.ID + ")",
			X:          float32(n.Position.X + w/2),
			Y:          float32(n.Position.Y + h/2),
			Fixed:      opts.Bool(true),
			Category:   spec.Category,
			Symbol:     "rect",
			SymbolSize: []float64{w, h},
			ItemStyle:  style,
		}
	}
	return out
}

func links(doc graph.Graph) []opts.GraphLink {
	names := make(map[string]string, len(doc.Nodes))
	for _, n := range doc.Nodes {
		names[n.ID] = n.Name + " (" + n.ID + ")"
	}
	out := make([]opts.GraphLink, len(doc.Edges))
	for i, e := range doc.Edges {
		kind := family.Father
		if e.Kind == family.Mother.String() {
			kind = family.Mother
		}
		width := float32(1.5)
		if e.Connected {
			width = 4
		}
		out[i] = opts.GraphLink{
			Source:    names[e.Source],
			Target:    names[e.Target],
			LineStyle: &opts.LineStyle{Color: kind.Anchor().Color, Width: width},
		}
	}
	return out
}
