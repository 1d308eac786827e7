// Package view coordinates one interactive family-graph view.
//
// A [Viewer] owns the loaded graph, its layout, the measured node sizes, the
// focus controller and the search panel, and turns host events into state
// changes:
//
//	v := view.New(view.WithCamera(vp), view.WithLogger(logger))
//	if err := v.Load(g); err != nil { ... }   // layout + overview fit
//	_ = v.Measure(sizes)                      // first report re-lays out once
//	_ = v.Click("p7")                         // focus p7
//	doc := v.Snapshot()                       // nodes and edges for the host
//
// Layout runs exactly twice per loaded graph at most: once on [Viewer.Load]
// and once when the first size measurements arrive. Later measurements are
// stored without moving anything, so the drawing never jumps under the user.
//
// A Viewer is not safe for concurrent use. Hosts serving several clients
// guard each viewer with their own lock (see package session).
package view
