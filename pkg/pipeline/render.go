package pipeline

import (
	"fmt"

	"github.com/matzehuels/kintree/pkg/graph"
	"github.com/matzehuels/kintree/pkg/render"
	"github.com/matzehuels/kintree/pkg/render/echarts"
	"github.com/matzehuels/kintree/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats. JSON and DOT
// work on any document; HTML and pinned graphviz output need positions.
func Render(doc graph.Graph, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	dotOpts := nodelink.Options{ShowIDs: opts.ShowIDs, Pinned: opts.Pinned}
	var dot string
	dotSource := func() string {
		if dot == "" {
			dot = nodelink.ToDOT(doc, dotOpts)
		}
		return dot
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case render.FormatJSON:
			data, err = graph.MarshalGraph(doc)
		case render.FormatDOT:
			data = []byte(dotSource())
		case render.FormatSVG:
			data, err = nodelink.RenderSVG(dotSource())
		case render.FormatPNG:
			data, err = nodelink.RenderPNG(dotSource())
		case render.FormatHTML:
			data, err = echarts.RenderHTML(doc, echarts.Options{Title: opts.Title})
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
