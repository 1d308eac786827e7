// Package pkg provides the libraries behind kintree, a viewer for family
// trees kept as a table of people.
//
// # Overview
//
// Every person is one row naming their father and mother by ID. kintree
// turns those rows into a directed graph, lays it out with ancestors above
// descendants, and serves it to a terminal browser, an HTTP client or a
// static renderer.
//
// # Architecture
//
//	Google Sheets / CSV / MongoDB
//	         ↓
//	    [source] (fetch raw rows, optionally through [cache])
//	         ↓
//	    [record] (normalize rows, collect defects)
//	         ↓
//	    [family] (people and child→parent edges, dangling references)
//	         ↓
//	    [layout] (generations, ordering, coordinates)
//	         ↓
//	    [graph] document → [render] / [server] / [view]
//
// [pipeline] runs the whole chain for the CLI and the server.
//
// # Quick Start
//
//	src, _ := source.Open("family.csv")
//	rows, _ := src.Fetch(ctx)
//	res := record.Normalize(rows, record.DefaultSchema)
//	g, _ := family.Build(res.People)
//	l, _ := layout.Compute(g, nil, layout.DefaultOptions())
//
// # Packages
//
// ## Data
//
// [source] reads rows from a CSV file, a shared Google Sheets tab or a
// MongoDB collection. [record] interprets the cells and reports defects
// instead of failing. [family] links people to their parents.
//
// ## Layout
//
// [dag] is the layered graph the layout works on. [dag/transform] breaks
// cycles, assigns generations and subdivides long edges. [dag/perm] holds
// the PQ-tree used to keep couples and siblings together.
// [layout/ordering] reduces edge crossings within each generation.
//
// ## Interaction
//
// [focus] keeps the single selection and frames the camera. [search] is
// the fuzzy name index and the search panel. [view] ties both to a loaded
// graph, and [session] keeps views alive between requests.
//
// ## Output
//
// [graph] is the JSON document. [render/nodelink] draws it with Graphviz and
// [render/echarts] writes a standalone HTML page. [server] exposes graphs
// and sessions over HTTP.
//
// ## Infrastructure
//
// [cache] stores fetched rows on disk or in Redis. [httputil] retries and
// caches remote reads. [config] loads TOML settings. [errors] carries error
// codes to the CLI and the API. [observability] lets the host attach
// metrics hooks.
//
// [source]: github.com/matzehuels/kintree/pkg/source
// [cache]: github.com/matzehuels/kintree/pkg/cache
// [record]: github.com/matzehuels/kintree/pkg/record
// [family]: github.com/matzehuels/kintree/pkg/family
// [layout]: github.com/matzehuels/kintree/pkg/layout
// [graph]: github.com/matzehuels/kintree/pkg/graph
// [render]: github.com/matzehuels/kintree/pkg/render
// [server]: github.com/matzehuels/kintree/pkg/server
// [view]: github.com/matzehuels/kintree/pkg/view
// [pipeline]: github.com/matzehuels/kintree/pkg/pipeline
// [dag]: github.com/matzehuels/kintree/pkg/dag
// [dag/transform]: github.com/matzehuels/kintree/pkg/dag/transform
// [dag/perm]: github.com/matzehuels/kintree/pkg/dag/perm
// [layout/ordering]: github.com/matzehuels/kintree/pkg/layout/ordering
// [focus]: github.com/matzehuels/kintree/pkg/focus
// [search]: github.com/matzehuels/kintree/pkg/search
// [session]: github.com/matzehuels/kintree/pkg/session
// [render/nodelink]: github.com/matzehuels/kintree/pkg/render/nodelink
// [render/echarts]: github.com/matzehuels/kintree/pkg/render/echarts
// [config]: github.com/matzehuels/kintree/pkg/config
// [errors]: github.com/matzehuels/kintree/pkg/errors
// [httputil]: github.com/matzehuels/kintree/pkg/httputil
// [observability]: github.com/matzehuels/kintree/pkg/observability
package pkg
