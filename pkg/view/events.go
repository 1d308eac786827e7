package view

import (
	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/search"
)

// Click focuses the clicked person. Unknown IDs return UNKNOWN_NODE and
// leave the focus unchanged.
func (v *Viewer) Click(id string) error {
	if v.ctrl == nil {
		return nil
	}
	return v.ctrl.Select(id)
}

// PaneClick handles a click on empty canvas.
func (v *Viewer) PaneClick() {
	if v.ctrl != nil {
		v.ctrl.PaneClick()
	}
}

// CloseInfo handles closing the info panel.
func (v *Viewer) CloseInfo() {
	if v.ctrl != nil {
		v.ctrl.CloseInfo()
	}
}

// Delete is consulted before the host deletes nodes or edges. The graph is
// read-only, so it always returns false and clears the focus.
func (v *Viewer) Delete(nodeIDs, edgeIDs []string) bool {
	if v.ctrl == nil {
		return false
	}
	return v.ctrl.BeforeDelete(nodeIDs, edgeIDs)
}

// Drag is consulted before a node moves. Always false.
func (v *Viewer) Drag(id string) bool { return false }

// Connect is consulted before the host adds an edge. Always false.
func (v *Viewer) Connect(source, target string) bool { return false }

// SearchInput replaces the search query.
func (v *Viewer) SearchInput(text string) { v.panel.SetQuery(text) }

// SearchFocus handles the search box gaining focus.
func (v *Viewer) SearchFocus() { v.panel.Focus() }

// SearchClear empties the search box.
func (v *Viewer) SearchClear() { v.panel.ClearQuery() }

// SearchKey forwards a navigation key and reports whether it was handled.
func (v *Viewer) SearchKey(k search.Key) bool { return v.panel.HandleKey(k) }

// SearchPick selects the i-th candidate.
func (v *Viewer) SearchPick(i int) bool { return v.panel.Pick(i) }

func (v *Viewer) pick(id string) {
	if err := v.Click(id); err != nil {
		v.logger.Warn("search pick", "id", id, "err", err)
	}
}

// SearchState is the render state of the search panel.
type SearchState struct {
	Query       string             `json:"query"`
	Open        bool               `json:"open"`
	Visible     bool               `json:"visible"`
	Focused     bool               `json:"focused"`
	Highlighted int                `json:"highlighted"`
	Candidates  []search.Candidate `json:"candidates"`
}

// Search returns the search panel state.
func (v *Viewer) Search() SearchState {
	return SearchState{
		Query:       v.panel.Query(),
		Open:        v.panel.Open(),
		Visible:     v.panel.Visible(),
		Focused:     v.panel.Focused(),
		Highlighted: v.panel.Highlighted(),
		Candidates:  v.panel.Candidates(),
	}
}

// Info is the content of the info panel for the focused person.
type Info struct {
	Person   family.Node   `json:"person"`
	Parents  []family.Node `json:"parents"`
	Children []family.Node `json:"children"`
}

// Info returns the info panel content, or false when nothing is focused.
func (v *Viewer) Info() (Info, bool) {
	if v.ctrl == nil {
		return Info{}, false
	}
	n, ok := v.ctrl.Selected()
	if !ok {
		return Info{}, false
	}
	return Info{
		Person:   n,
		Parents:  v.graph.Parents(n.ID),
		Children: v.graph.Children(n.ID),
	}, true
}
