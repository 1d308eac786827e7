package record

import (
	"fmt"
	"strings"

	kerrors "github.com/matzehuels/kintree/pkg/errors"
)

// DefectKind classifies a non-fatal data defect.
type DefectKind string

const (
	DefectBoolean     DefectKind = "boolean"      // unrecognized boolean sentinel
	DefectGender      DefectKind = "gender"       // unparseable gender
	DefectMissingID   DefectKind = "missing_id"   // row skipped
	DefectInvalidID   DefectKind = "invalid_id"   // row skipped
	DefectDuplicateID DefectKind = "duplicate_id" // later row skipped
	DefectMissingName DefectKind = "missing_name" // name defaulted to id
)

// Defect describes one malformed cell or row. Row is the zero-based index of
// the row in the input sequence.
type Defect struct {
	Row    int        `json:"row"`
	ID     string     `json:"id,omitempty"`
	Kind   DefectKind `json:"kind"`
	Column string     `json:"column,omitempty"`
	Value  string     `json:"value,omitempty"`
}

// String formats the defect for log output.
func (d Defect) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "row %d", d.Row)
	if d.ID != "" {
		fmt.Fprintf(&b, " (%s)", d.ID)
	}
	fmt.Fprintf(&b, ": %s", d.Kind)
	if d.Column != "" {
		fmt.Fprintf(&b, " in %s=%q", d.Column, d.Value)
	}
	return b.String()
}

// Err converts the defect into a structured error with code INVALID_RECORD.
func (d Defect) Err() error {
	return kerrors.New(kerrors.ErrCodeInvalidRecord, "%s", d.String())
}

// Result is the output of [Normalize].
type Result struct {
	People   []Person `json:"nodes"`
	Defects  []Defect `json:"defects,omitempty"`
	Inactive int      `json:"inactive"`
	Skipped  int      `json:"skipped"`
}

// Normalize converts raw rows into active Person records in input order.
// A zero Schema uses [DefaultSchema]. Normalize never fails: every problem is
// reported through Result.Defects and the remaining rows are still processed.
func Normalize(rows []Row, schema Schema) Result {
	schema = schema.withDefaults()
	res := Result{People: make([]Person, 0, len(rows))}
	seen := make(map[string]struct{}, len(rows))

	for i, row := range rows {
		report := func(kind DefectKind, id, column, value string) {
			res.Defects = append(res.Defects, Defect{Row: i, ID: id, Kind: kind, Column: column, Value: value})
		}

		id := cell(row, schema.ID)
		if id == "" {
			report(DefectMissingID, "", schema.ID, "")
			res.Skipped++
			continue
		}
		if err := kerrors.ValidateID(id); err != nil {
			report(DefectInvalidID, id, schema.ID, id)
			res.Skipped++
			continue
		}

		if !isActive(row, schema, func(col, v string) { report(DefectBoolean, id, col, v) }) {
			res.Inactive++
			continue
		}

		if _, dup := seen[id]; dup {
			report(DefectDuplicateID, id, schema.ID, id)
			res.Skipped++
			continue
		}
		seen[id] = struct{}{}

		p := Person{
			ID:       id,
			Name:     cell(row, schema.Name),
			FatherID: cell(row, schema.FatherID),
			MotherID: cell(row, schema.MotherID),
		}
		if p.Name == "" {
			report(DefectMissingName, id, schema.Name, "")
			p.Name = id
		}

		deceased, ok := ParseBool(cell(row, schema.Deceased), false)
		if !ok {
			report(DefectBoolean, id, schema.Deceased, cell(row, schema.Deceased))
		}
		p.IsDeceased = deceased

		gender, ok := ParseGender(cell(row, schema.Gender))
		if !ok {
			report(DefectGender, id, schema.Gender, cell(row, schema.Gender))
		}
		p.Gender = gender

		res.People = append(res.People, p)
	}
	return res
}

func isActive(row Row, schema Schema, onDefect func(col, v string)) bool {
	if schema.Active != "" {
		raw := cell(row, schema.Active)
		active, ok := ParseBool(raw, true)
		if !ok {
			onDefect(schema.Active, raw)
		}
		return active
	}
	raw := cell(row, schema.Inactive)
	inactive, ok := ParseBool(raw, false)
	if !ok {
		onDefect(schema.Inactive, raw)
	}
	return !inactive
}

func cell(row Row, column string) string {
	return strings.TrimSpace(row[column])
}

// ParseBool parses a boolean sentinel. Empty input yields def with ok=true.
// Unrecognized input yields def with ok=false so the caller can report it.
func ParseBool(s string, def bool) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def, true
	case "true", "1", "yes", "y":
		return true, true
	case "false", "0", "no", "n":
		return false, true
	default:
		return def, false
	}
}

// ParseGender parses the sheet gender code. Unparseable input yields Male
// with ok=false; downstream code always needs one of the two values.
func ParseGender(s string) (Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "m", "male":
		return Male, true
	case "0", "f", "female":
		return Female, true
	default:
		return Male, false
	}
}
