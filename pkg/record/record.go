// Package record turns raw tabular rows into validated [Person] records.
//
// # Overview
//
// The external data source (a spreadsheet, a CSV export, a document store)
// delivers one string-keyed row per person. Every cell is a string; this
// package owns all parsing and coercion:
//
//   - boolean flags are read from sentinel strings ("TRUE", "false", "1", "no")
//   - gender is coerced to the closed [Gender] enum
//   - empty parent references become absent references
//   - inactive rows are filtered out
//
// # Defects
//
// A malformed cell never aborts normalization. The affected field falls back
// to a documented default and a [Defect] is appended to [Result.Defects].
// Rows that cannot produce a node at all (missing id, duplicate id) are
// skipped and reported the same way. The failure domain is always one row.
//
// # Active Flag
//
// The source column is "is_inactive": a row is kept iff the flag parses to
// false. An empty cell means "not inactive". A schema may name an
// "is_active" column instead, in which case the flag is read directly.
//
// Output preserves input order; there is no implicit sort.
package record

import "fmt"

// Row is one raw record as delivered by a data source: column name to cell.
type Row map[string]string

// Gender is the binary gender code carried by every person.
// Layout anchoring and styling rely on it always being one of the two values.
type Gender int

const (
	// Female is encoded as "0" in the source sheet.
	Female Gender = iota
	// Male is encoded as "1" in the source sheet.
	Male
)

// String returns "male" or "female".
func (g Gender) String() string {
	if g == Male {
		return "male"
	}
	return "female"
}

// Code returns the sheet encoding of g: 1 for male, 0 for female.
func (g Gender) Code() int {
	if g == Male {
		return 1
	}
	return 0
}

// Person is a single active individual. FatherID and MotherID are empty
// when the reference is absent.
type Person struct {
	ID         string `json:"id" bson:"id"`
	Name       string `json:"name" bson:"name"`
	IsDeceased bool   `json:"is_deceased" bson:"is_deceased"`
	Gender     Gender `json:"gender" bson:"gender"`
	FatherID   string `json:"father_id,omitempty" bson:"father_id,omitempty"`
	MotherID   string `json:"mother_id,omitempty" bson:"mother_id,omitempty"`
}

// HasFather reports whether the person references a father.
func (p Person) HasFather() bool { return p.FatherID != "" }

// HasMother reports whether the person references a mother.
func (p Person) HasMother() bool { return p.MotherID != "" }

// String returns "name (id)".
func (p Person) String() string { return fmt.Sprintf("%s (%s)", p.Name, p.ID) }

// Schema maps Person fields to column names.
type Schema struct {
	ID       string `toml:"id"`
	Name     string `toml:"name"`
	Inactive string `toml:"inactive"`
	// Active, when set, takes precedence over Inactive and is read directly.
	Active   string `toml:"active"`
	Deceased string `toml:"deceased"`
	Gender   string `toml:"gender"`
	FatherID string `toml:"father_id"`
	MotherID string `toml:"mother_id"`
}

// DefaultSchema matches the column names of the family spreadsheet.
var DefaultSchema = Schema{
	ID:       "id",
	Name:     "name",
	Inactive: "is_inactive",
	Deceased: "is_deceased",
	Gender:   "gender",
	FatherID: "father_id",
	MotherID: "mother_id",
}

// withDefaults fills empty column names from DefaultSchema.
func (s Schema) withDefaults() Schema {
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&s.ID, DefaultSchema.ID)
	fill(&s.Name, DefaultSchema.Name)
	fill(&s.Inactive, DefaultSchema.Inactive)
	fill(&s.Deceased, DefaultSchema.Deceased)
	fill(&s.Gender, DefaultSchema.Gender)
	fill(&s.FatherID, DefaultSchema.FatherID)
	fill(&s.MotherID, DefaultSchema.MotherID)
	return s
}
