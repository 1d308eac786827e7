// Package nodelink renders a family graph document as a Graphviz diagram.
//
//	dot := nodelink.ToDOT(doc, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// By default Graphviz ranks the nodes itself (rankdir=BT, parents above
// children). With [Options.Pinned] the computed layout positions are kept
// and Graphviz only routes and draws.
//
// Rendering uses [github.com/goccy/go-graphviz], which embeds Graphviz, so
// no system installation is needed.
package nodelink
