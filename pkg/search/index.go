package search

import (
	"strings"

	"github.com/matzehuels/kintree/pkg/family"
)

// MaxCandidates caps the number of results returned by [Index.Search].
const MaxCandidates = 5

// Candidate is one search hit.
type Candidate struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Kind     family.NodeKind `json:"-"`
	Deceased bool            `json:"is_deceased"`
}

type entry struct {
	Candidate
	key string
}

// Index holds the folded names of one graph. It is immutable and safe for
// concurrent use.
type Index struct {
	entries []entry
}

// NewIndex folds every node name once, keeping node order.
func NewIndex(nodes []family.Node) *Index {
	ix := &Index{entries: make([]entry, len(nodes))}
	for i, n := range nodes {
		ix.entries[i] = entry{
			Candidate: Candidate{ID: n.ID, Name: n.Name, Kind: n.Kind, Deceased: n.Deceased},
			key:       Fold(n.Name),
		}
	}
	return ix
}

// Len returns the number of indexed names.
func (ix *Index) Len() int { return len(ix.entries) }

// Search returns up to [MaxCandidates] people whose folded name contains the
// folded term, in node order. A blank term returns nil.
func (ix *Index) Search(term string) []Candidate {
	return ix.SearchLimit(term, MaxCandidates)
}

// SearchLimit is Search with a custom cap; limit <= 0 means no cap.
func (ix *Index) SearchLimit(term string, limit int) []Candidate {
	if strings.TrimSpace(term) == "" {
		return nil
	}
	q := Fold(term)
	var out []Candidate
	for _, e := range ix.entries {
		if !strings.Contains(e.key, q) {
			continue
		}
		out = append(out, e.Candidate)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
