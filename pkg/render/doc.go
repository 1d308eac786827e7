// Package render holds the static renderers of a laid-out family graph.
//
//   - [nodelink]: Graphviz DOT, rendered in process to SVG or PNG
//   - [echarts]: a standalone interactive HTML page
//
// Both read a [graph.Graph] document, so anything the CLI or the HTTP API
// can produce, including the current selection, can be rendered.
//
// [nodelink]: github.com/matzehuels/kintree/pkg/render/nodelink
// [echarts]: github.com/matzehuels/kintree/pkg/render/echarts
// [graph.Graph]: github.com/matzehuels/kintree/pkg/graph
package render

// Output formats.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatHTML = "html"
	FormatJSON = "json"
)

// Formats lists every supported format.
var Formats = []string{FormatJSON, FormatDOT, FormatSVG, FormatPNG, FormatHTML}
