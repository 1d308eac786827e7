package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	kerrors "github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/graph"
	"github.com/matzehuels/kintree/pkg/observability"
	"github.com/matzehuels/kintree/pkg/record"
)

// Build normalizes rows and links the people into a family graph. The
// normalize result is returned even when the graph is rejected, so callers
// can still report the data defects.
func Build(rows []record.Row, schema record.Schema) (record.Result, *family.Graph, error) {
	norm := record.Normalize(rows, schema)
	g, err := family.Build(norm.People)
	if err != nil {
		return norm, nil, err
	}
	return norm, g, nil
}

// loadDocument reads a saved graph document instead of fetching rows. The
// family graph is rebuilt from it, so structural checks run again; the
// saved row defects are carried over.
func (r *Runner) loadDocument(ctx context.Context, path string) (*Result, error) {
	if err := kerrors.ValidatePath(path); err != nil {
		return nil, err
	}
	start := time.Now()
	saved, err := graph.ReadGraphFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, kerrors.Wrap(kerrors.ErrCodeFileNotFound, err, "graph document %s not found", path)
		}
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidSource, err, "read graph document %s", path)
	}
	g, err := graph.ToFamily(saved)
	elapsed := time.Since(start)
	if g != nil {
		observability.Pipeline().OnBuildComplete(ctx, g.Len(), g.EdgeCount(), g.DanglingCount(), elapsed, err)
	} else {
		observability.Pipeline().OnBuildComplete(ctx, 0, 0, 0, elapsed, err)
	}
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}

	var norm record.Result
	if d := saved.Diagnostics; d != nil {
		norm.Defects, norm.Inactive, norm.Skipped = d.Defects, d.Inactive, d.Skipped
	}
	doc := graph.FromFamily(g)
	doc.ApplyDiagnostics(norm, g, 0)

	r.Logger.Info("loaded graph document", "path", path, "people", g.Len(), "edges", g.EdgeCount())
	return &Result{
		Normalized: norm,
		Family:     g,
		Document:   doc,
		Stats: Stats{
			Rows:      len(saved.Nodes),
			People:    g.Len(),
			Edges:     g.EdgeCount(),
			Dangling:  g.DanglingCount(),
			Defects:   len(norm.Defects),
			BuildTime: elapsed,
		},
	}, nil
}
