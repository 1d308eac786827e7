package pipeline

import (
	"context"
	"time"
	"unicode/utf8"

	kerrors "github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/observability"
)

// Approximate label metrics used when no host measured the boxes.
const (
	charWidth    = 7.5
	labelPadding = 24.0
)

// Layout computes positions for a loaded result and applies them, together
// with the selection in opts, to the document.
func (r *Runner) Layout(ctx context.Context, res *Result, opts Options) error {
	opts.SetLayoutDefaults()
	g := res.Family

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, g.Len())
	start := time.Now()
	l, err := layout.Compute(g, EstimateSizes(g, opts.NodeWidth, opts.NodeHeight), opts.Layout)
	res.Stats.LayoutTime = time.Since(start)
	crossings := 0
	if l != nil {
		crossings = l.Crossings
	}
	hooks.OnLayoutComplete(ctx, crossings, res.Stats.LayoutTime, err)
	if err != nil {
		return err
	}

	res.Layout = l
	res.Stats.Crossings = l.Crossings
	res.Document.ApplyLayout(l)
	res.Document.ApplyDiagnostics(res.Normalized, g, l.Crossings)
	return Select(res, opts.Selected)
}

// EstimateSizes sizes every box from the length of the person's name: at
// least minWidth wide and exactly height tall.
func EstimateSizes(g *family.Graph, minWidth, height float64) map[string]layout.Size {
	sizes := make(map[string]layout.Size, g.Len())
	for _, n := range g.Nodes() {
		w := float64(utf8.RuneCountInString(n.Name))*charWidth + labelPadding
		sizes[n.ID] = layout.Size{Width: max(w, minWidth), Height: height}
	}
	return sizes
}

// Select marks id and its incident edges in the document. An empty id
// clears the selection.
func Select(res *Result, id string) error {
	if id == "" {
		res.Document.ApplySelection("", func(string) bool { return false })
		return nil
	}
	if !res.Family.Has(id) {
		return kerrors.New(kerrors.ErrCodeUnknownNode, "unknown person %q", id)
	}
	incident := make(map[string]bool)
	for _, e := range res.Family.Incident(id) {
		incident[e.ID] = true
	}
	res.Document.ApplySelection(id, func(edgeID string) bool { return incident[edgeID] })
	return nil
}
