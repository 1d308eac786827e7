// Package graph defines the family graph document: the {nodes, edges} shape
// handed to host renderers, written to files by the CLI, served by the HTTP
// API and cached.
//
// A document always carries the structure. Positions, highlights and load
// diagnostics are optional and filled in by the Apply methods:
//
//	doc := graph.FromFamily(g)
//	doc.ApplyLayout(res)
//	doc.ApplySelection(ctrl.SelectedID(), ctrl.Connected)
//	data, _ := graph.MarshalGraph(doc)
//
// Example document:
//
//	{
//	  "nodes": [
//	    {"id": "p0", "name": "Lê Văn An", "gender": 1, "position": {"x": 0, "y": 0}},
//	    {"id": "p1", "name": "Lê Thị Hoa", "gender": 0, "father_id": "p0"}
//	  ],
//	  "edges": [
//	    {"id": "p0|p1", "source": "p1", "target": "p0", "kind": "father", "source_x": 0.3, "step": 1}
//	  ]
//	}
//
// [ToFamily] rebuilds a [family.Graph] from a document, running the
// structural checks again.
package graph
