package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/search"
	"github.com/matzehuels/kintree/pkg/view"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	panelStyle        = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// browseKeys maps terminal keys to search panel navigation.
var browseKeys = map[string]search.Key{
	"down":  search.KeyDown,
	"up":    search.KeyUp,
	"enter": search.KeyEnter,
	"esc":   search.KeyEscape,
}

// =============================================================================
// BrowseModel - Interactive search and focus
// =============================================================================

// BrowseModel is the bubbletea model of `kintree browse`. Typing searches
// people by name and the arrow keys with enter pick a candidate. Tab moves
// the focus to a parent, shift+tab to a child.
type BrowseModel struct {
	Viewer *view.Viewer
	Title  string
	Height int

	quitting bool
}

// NewBrowseModel creates a browse model over a loaded viewer.
func NewBrowseModel(v *view.Viewer, title string) BrowseModel {
	v.SearchFocus()
	return BrowseModel{Viewer: v, Title: title, Height: 10}
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-14, 3)
	}
	return m, nil
}

func (m BrowseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := m.Viewer
	key := msg.String()

	switch key {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "backspace":
		if q := []rune(v.Search().Query); len(q) > 0 {
			v.SearchInput(string(q[:len(q)-1]))
		}
		return m, nil
	case "ctrl+u":
		v.SearchClear()
		return m, nil
	case "tab", "shift+tab":
		m.walkRelatives(key == "tab")
		return m, nil
	}

	if k, ok := browseKeys[key]; ok {
		if k == search.KeyEscape {
			return m.escape()
		}
		v.SearchFocus()
		v.SearchKey(k)
		return m, nil
	}

	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace:
		v.SearchFocus()
		v.SearchInput(v.Search().Query + string(msg.Runes))
	}
	return m, nil
}

// escape backs out one level: blur the candidate list, then clear the
// query, then clear the focus, then quit.
func (m BrowseModel) escape() (tea.Model, tea.Cmd) {
	v := m.Viewer
	s := v.Search()
	switch {
	case s.Focused && s.Visible:
		v.SearchKey(search.KeyEscape)
	case s.Query != "":
		v.SearchClear()
	case v.SelectedID() != "":
		v.PaneClick()
	default:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// walkRelatives moves the focus one generation up to the first parent, or
// down to the first child.
func (m *BrowseModel) walkRelatives(up bool) {
	info, ok := m.Viewer.Info()
	if !ok {
		return
	}
	rel := info.Children
	if up {
		rel = info.Parents
	}
	if len(rel) > 0 {
		_ = m.Viewer.Click(rel[0].ID)
	}
}

// Selected returns the focused person when the program ended.
func (m BrowseModel) Selected() string { return m.Viewer.SelectedID() }

func (m BrowseModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("type to search  ↑/↓ navigate  ⏎ focus  tab/⇧tab parent/child  esc back  ctrl+c quit"))
	b.WriteString("\n\n")

	s := m.Viewer.Search()
	cursor := ""
	if s.Focused {
		cursor = StyleHighlight.Render("▏")
	}
	b.WriteString(StyleDim.Render("Search: ") + StyleValue.Render(s.Query) + cursor)
	b.WriteString("\n")
	if s.Visible {
		b.WriteString(m.candidates(s))
	} else if s.Open {
		b.WriteString(listDimStyle.Render("  no matches"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if info, ok := m.Viewer.Info(); ok {
		b.WriteString(m.infoPanel(info))
	} else {
		b.WriteString(m.overview())
	}
	b.WriteString("\n")
	return b.String()
}

func (m BrowseModel) candidates(s view.SearchState) string {
	var b strings.Builder
	end := min(len(s.Candidates), m.Height)
	offset := 0
	if s.Highlighted >= end {
		offset = s.Highlighted - end + 1
	}
	for i := offset; i < offset+end && i < len(s.Candidates); i++ {
		c := s.Candidates[i]
		line := personLabel(c.Name, c.ID, c.Kind, c.Deceased)
		if i == s.Highlighted {
			b.WriteString(listSelectedStyle.Render("▸ ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	if len(s.Candidates) > end {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d matches]", len(s.Candidates))))
		b.WriteString("\n")
	}
	return b.String()
}

func (m BrowseModel) infoPanel(info view.Info) string {
	p := info.Person
	var b strings.Builder
	b.WriteString(personStyle(p.Kind).Bold(true).Render(p.Name))
	if p.Deceased {
		b.WriteString(" " + StyleDim.Render(iconDeceased))
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(p.ID + " · " + p.Kind.String()))
	if l := m.Viewer.Layout(); l != nil {
		b.WriteString(StyleDim.Render(fmt.Sprintf(" · generation %d", l.Ranks[p.ID]+1)))
	}
	b.WriteString("\n")

	rows := make([][]string, 0, len(info.Parents)+len(info.Children))
	for _, n := range info.Parents {
		rows = append(rows, []string{"parent", personLabel(n.Name, n.ID, n.Kind, n.Deceased)})
	}
	for _, n := range info.Children {
		rows = append(rows, []string{"child", personLabel(n.Name, n.ID, n.Kind, n.Deceased)})
	}
	if len(rows) > 0 {
		headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
			Headers("Relation", "Person").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == -1 {
					return headerStyle
				}
				if col == 0 {
					return lipgloss.NewStyle().Foreground(colorGray)
				}
				return lipgloss.NewStyle()
			})
		b.WriteString(t.Render())
	}
	return panelStyle.Render(b.String())
}

func (m BrowseModel) overview() string {
	g := m.Viewer.Graph()
	if g == nil {
		return listDimStyle.Render("nothing loaded")
	}
	line := fmt.Sprintf("%d people · %d edges", g.Len(), g.EdgeCount())
	if l := m.Viewer.Layout(); l != nil {
		line += fmt.Sprintf(" · %d generations", len(l.Orders))
	}
	return listDimStyle.Render(line)
}

// personLabel renders "Name (id)" coloured by kind.
func personLabel(name, id string, k family.NodeKind, deceased bool) string {
	s := personStyle(k).Render(name) + " " + StyleDim.Render("("+id+")")
	if deceased {
		s += " " + StyleDim.Render(iconDeceased)
	}
	return s
}
