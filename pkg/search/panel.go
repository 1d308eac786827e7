package search

// Key is a navigation key delivered to the panel.
type Key int

const (
	KeyDown Key = iota
	KeyUp
	KeyEnter
	KeyEscape
)

// ParseKey maps DOM key names ("ArrowDown", "Enter", ...) and short names
// ("down", "enter", ...) to a Key.
func ParseKey(s string) (Key, bool) {
	switch s {
	case "ArrowDown", "down":
		return KeyDown, true
	case "ArrowUp", "up":
		return KeyUp, true
	case "Enter", "enter":
		return KeyEnter, true
	case "Escape", "esc", "escape":
		return KeyEscape, true
	}
	return 0, false
}

// NoHighlight is the highlight index when no candidate is highlighted.
const NoHighlight = -1

// Panel is the state of the search box and its candidate list.
//
// Editing the query recomputes candidates, clears the highlight and opens
// the list when the text is non-empty. Keys are ignored while the list is
// closed or empty. Up and down move the highlight circularly. Enter picks the
// highlighted candidate, or the first one when nothing is highlighted.
// Escape clears the highlight and blurs the input but keeps the query.
// Picking a candidate calls OnSelect, then clears the query and closes the list.
type Panel struct {
	index       *Index
	query       string
	candidates  []Candidate
	highlighted int
	open        bool
	focused     bool

	// OnSelect receives the ID of the picked person.
	OnSelect func(id string)
}

// NewPanel creates a closed, empty panel over ix.
func NewPanel(ix *Index, onSelect func(id string)) *Panel {
	return &Panel{index: ix, highlighted: NoHighlight, OnSelect: onSelect}
}

// Query returns the current text.
func (p *Panel) Query() string { return p.query }

// Candidates returns the current hits. Read-only.
func (p *Panel) Candidates() []Candidate { return p.candidates }

// Highlighted returns the highlighted index or [NoHighlight].
func (p *Panel) Highlighted() int { return p.highlighted }

// Open reports whether the candidate list is open.
func (p *Panel) Open() bool { return p.open }

// Visible reports whether the candidate list is shown: open and non-empty.
func (p *Panel) Visible() bool { return p.open && len(p.candidates) > 0 }

// Focused reports whether the input has focus.
func (p *Panel) Focused() bool { return p.focused }

// SetIndex swaps the index after a reload and refreshes the candidates.
func (p *Panel) SetIndex(ix *Index) {
	p.index = ix
	p.candidates = ix.Search(p.query)
	p.highlighted = NoHighlight
}

// SetQuery handles an edit of the search text.
func (p *Panel) SetQuery(text string) {
	p.query = text
	p.candidates = p.index.Search(text)
	p.open = text != ""
	p.highlighted = NoHighlight
}

// Focus handles the input gaining focus; a non-empty query reopens the list.
func (p *Panel) Focus() {
	p.focused = true
	if p.query != "" {
		p.open = true
	}
}

// ClearQuery empties the text and closes the list. The input keeps focus.
func (p *Panel) ClearQuery() {
	p.query = ""
	p.candidates = nil
	p.open = false
	p.highlighted = NoHighlight
	p.focused = true
}

// HandleKey processes a navigation key and reports whether it was consumed.
func (p *Panel) HandleKey(k Key) bool {
	n := len(p.candidates)
	if !p.open || n == 0 {
		return false
	}
	switch k {
	case KeyDown:
		p.highlighted = (p.highlighted + 1) % n
	case KeyUp:
		p.highlighted = (max(p.highlighted, 0) - 1 + n) % n
	case KeyEnter:
		i := p.highlighted
		if i == NoHighlight {
			i = 0
		}
		return p.Pick(i)
	case KeyEscape:
		p.highlighted = NoHighlight
		p.focused = false
	default:
		return false
	}
	return true
}

// Pick selects candidate i. It reports false when i is out of range.
func (p *Panel) Pick(i int) bool {
	if i < 0 || i >= len(p.candidates) {
		return false
	}
	id := p.candidates[i].ID
	if p.OnSelect != nil {
		p.OnSelect(id)
	}
	p.query = ""
	p.candidates = nil
	p.open = false
	p.highlighted = NoHighlight
	return true
}
