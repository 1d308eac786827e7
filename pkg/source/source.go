// Package source fetches raw person rows from where the family data lives.
//
// Every [Source] yields [record.Row] values: column name to cell text, in
// sheet order. Interpretation of the cells is left to [record.Normalize], so
// all sources share one set of parsing rules and defects.
//
// Implementations:
//
//   - [CSV]: a local CSV file or reader with a header row
//   - [Sheets]: a Google Sheets tab, read through its CSV export
//   - [Mongo]: a MongoDB collection with one document per person
//   - [Cached]: wraps any source with a [cache.Cache]
//
// [Open] picks an implementation from a location string.
package source

import (
	"context"
	"strings"

	kerrors "github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/record"
)

// Source yields the raw rows of a family record set.
type Source interface {
	// Kind names the implementation: "csv", "sheets" or "mongo".
	Kind() string
	// Location identifies the data within its kind, for cache keys and logs.
	Location() string
	Fetch(ctx context.Context) ([]record.Row, error)
}

// Open returns the source for a location:
//
//	family.csv                      CSV file
//	sheets:<id>[#<tab>]             Google Sheets tab (default tab "Nodes")
//	mongodb://host/db#collection    MongoDB collection
func Open(location string) (Source, error) {
	switch {
	case location == "":
		return nil, kerrors.New(kerrors.ErrCodeInvalidSource, "no data source configured")
	case strings.HasPrefix(location, "sheets:"):
		id, tab, _ := strings.Cut(strings.TrimPrefix(location, "sheets:"), "#")
		s, err := NewSheets(id, tab)
		if err != nil {
			return nil, err
		}
		return s, nil
	case strings.HasPrefix(location, "mongodb://"), strings.HasPrefix(location, "mongodb+srv://"):
		m, err := ParseMongo(location)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		if err := kerrors.ValidatePath(location); err != nil {
			return nil, err
		}
		return &CSV{Path: location}, nil
	}
}
