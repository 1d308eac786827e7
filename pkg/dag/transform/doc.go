// Package transform prepares a family [dag.DAG] for crossing reduction.
//
// The layout runs these steps in order:
//
//  1. [FindCycle] rejects malformed input. A parent chain that loops back on
//     itself has no generational order.
//  2. [AssignLayers] gives each person the depth of their longest ancestor
//     chain, so parents are always above children.
//  3. [Tighten] pulls parent-less people (spouses who married in) down next to
//     the generation of their partner.
//  4. [Subdivide] inserts virtual nodes where an edge skips rows.
//
// All functions modify g in place and visit nodes in insertion order, so the
// result is deterministic for a given input.
//
//	if ids := transform.FindCycle(g); ids != nil {
//	    return fmt.Errorf("cycle through %v", ids)
//	}
//	transform.AssignLayers(g)
//	transform.Tighten(g)
//	transform.Subdivide(g)
package transform
