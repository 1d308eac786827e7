package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/graph"
)

// Options configures DOT generation.
type Options struct {
	// ShowIDs appends the person ID to each label.
	ShowIDs bool
	// Pinned places nodes at their computed layout positions instead of
	// letting Graphviz rank them. Requires a laid-out document.
	Pinned bool
}

// ToDOT converts a document to Graphviz DOT.
//
// Edges run child to parent with rankdir=BT, so ancestors are drawn above
// descendants. Father and mother edges take their kind colour, deceased
// people get a dashed outline, and the selected person and connected edges
// are drawn bold.
func ToDOT(doc graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph family {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowsize=0.6];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.5;\n")
	if opts.Pinned {
		buf.WriteString("  layout=neato;\n  notranslate=true;\n")
	}
	buf.WriteString("\n")

	for _, n := range doc.Nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, opts), ", "))
	}
	buf.WriteString("\n")
	for _, e := range doc.Edges {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(edgeAttrs(e), ", "))
	}
	buf.WriteString("}\n")
	return buf.String()
}

func nodeKind(n graph.Node) family.NodeKind {
	if n.Gender == 0 {
		return family.Female
	}
	return family.Male
}

func nodeAttrs(n graph.Node, opts Options) []string {
	spec := nodeKind(n).Spec()
	label := n.Name
	if opts.ShowIDs {
		label += "\n" + n.ID
	}
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("fillcolor=%q", spec.Fill),
		fmt.Sprintf("color=%q", spec.Stroke),
	}
	if n.Deceased {
		attrs = append(attrs, `style="rounded,filled,dashed"`, `fontcolor="#6b7280"`)
	}
	if n.Selected {
		attrs = append(attrs, "penwidth=3")
	}
	if opts.Pinned && n.Position != nil {
		// Graphviz points, y up.
		x, y := n.Position.X, -n.Position.Y
		if n.Size != nil {
			x += n.Size.Width / 2
			y -= n.Size.Height / 2
		}
		attrs = append(attrs, fmt.Sprintf(`pos="%.1f,%.1f!"`, x, y))
	}
	return attrs
}

func edgeAttrs(e graph.Edge) []string {
	color := family.Father.Anchor().Color
	if e.Kind == family.Mother.String() {
		color = family.Mother.Anchor().Color
	}
	attrs := []string{fmt.Sprintf("color=%q", color)}
	if e.Connected {
		attrs = append(attrs, "penwidth=3")
	}
	return attrs
}

// RenderSVG renders DOT to SVG with the embedded Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	data, err := render(dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(data), nil
}

// RenderPNG renders DOT to PNG.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// scalable one.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
