// Package dag provides the layered directed graph used by the family layout.
//
// # Overview
//
// A family tree is drawn generation by generation: ancestors in the top
// rows, descendants below. This package models that as a directed graph whose
// nodes carry a row index and whose edges point from an ancestor (upper row)
// to a descendant (lower row). After layering and subdivision every edge
// connects consecutive rows, which is what crossing reduction needs.
//
//	g := dag.New()
//	_ = g.AddNode(dag.Node{ID: "grandpa", Row: 0})
//	_ = g.AddNode(dag.Node{ID: "dad", Row: 1})
//	_ = g.AddEdge(dag.Edge{From: "grandpa", To: "dad", Label: "grandpa|dad"})
//
// # Node Kinds
//
//   - [NodeKindPerson]: a vertex backed by a person record
//   - [NodeKindVirtual]: a bend point inserted where a parent edge skips one or
//     more generations (for example a grandparent recorded as a parent)
//
// # Determinism
//
// Every listing method returns nodes in insertion order. Layout must be
// idempotent, so nothing in this package iterates a map to produce output.
//
// # Edge Crossings
//
// [CountCrossings] and [CountLayerCrossings] count crossings with a Fenwick
// tree in O(E log V), cheap enough to evaluate after every ordering sweep.
//
// The [transform] subpackage assigns rows, subdivides long edges and finds
// cycles.
//
// [transform]: github.com/matzehuels/kintree/pkg/dag/transform
package dag
