package source

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	kerrors "github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/httputil"
	"github.com/matzehuels/kintree/pkg/record"
)

// DefaultSheetTab is the tab holding the person rows.
const DefaultSheetTab = "Nodes"

const sheetsBaseURL = "https://docs.google.com"

// Sheets reads one tab of a Google Sheets document through the CSV export
// endpoint. The document must be shared for reading by link.
type Sheets struct {
	ID  string
	Tab string

	// Client performs the request; nil uses a default client.
	Client *httputil.Client
	// BaseURL overrides the Google Docs host, for tests.
	BaseURL string
}

// NewSheets validates id and returns the source for a tab; "" selects
// [DefaultSheetTab].
func NewSheets(id, tab string) (*Sheets, error) {
	if err := kerrors.ValidateSheetID(id); err != nil {
		return nil, err
	}
	if tab == "" {
		tab = DefaultSheetTab
	}
	return &Sheets{ID: id, Tab: tab}, nil
}

func (s *Sheets) Kind() string     { return "sheets" }
func (s *Sheets) Location() string { return s.ID + "#" + s.Tab }

// ExportURL returns the CSV export URL of the tab.
func (s *Sheets) ExportURL() string {
	base := s.BaseURL
	if base == "" {
		base = sheetsBaseURL
	}
	q := url.Values{"tqx": {"out:csv"}, "sheet": {s.Tab}}
	return fmt.Sprintf("%s/spreadsheets/d/%s/gviz/tq?%s", base, url.PathEscape(s.ID), q.Encode())
}

// Fetch downloads and parses the tab.
func (s *Sheets) Fetch(ctx context.Context) ([]record.Row, error) {
	c := s.Client
	if c == nil {
		c = httputil.NewClient()
	}
	body, err := c.Get(ctx, "sheets", s.Location(), s.ExportURL())
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeNetwork, err, "fetch sheet %s", s.ID)
	}
	return ParseCSV(bytes.NewReader(body), 0)
}
