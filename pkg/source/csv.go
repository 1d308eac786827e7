package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	kerrors "github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/record"
)

// CSV reads rows from a CSV file with a header row. When Reader is set it
// is read instead of Path, once.
type CSV struct {
	Path   string
	Reader io.Reader
	// Comma is the field delimiter; zero means ','.
	Comma rune
}

func (s *CSV) Kind() string { return "csv" }

func (s *CSV) Location() string {
	if s.Reader != nil && s.Path == "" {
		return "-"
	}
	return s.Path
}

// Fetch reads every row.
func (s *CSV) Fetch(ctx context.Context) ([]record.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Reader != nil {
		return ParseCSV(s.Reader, s.Comma)
	}
	f, err := os.Open(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, kerrors.Wrap(kerrors.ErrCodeFileNotFound, err, "data file %s not found", s.Path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseCSV(f, s.Comma)
}

// ParseCSV reads a header row and maps each following record onto it.
// Header names are trimmed and lowercased. Short records leave the missing
// columns empty; blank lines are skipped.
func ParseCSV(r io.Reader, comma rune) ([]record.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if comma != 0 {
		cr.Comma = comma
	}

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidFormat, err, "read csv header")
	}
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	}

	var rows []record.Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, kerrors.Wrap(kerrors.ErrCodeInvalidFormat, err, "read csv")
		}
		if blank(rec) {
			continue
		}
		row := make(record.Row, len(header))
		for i, h := range header {
			if h == "" {
				continue
			}
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// WriteCSV writes rows with the given columns as header.
func WriteCSV(w io.Writer, columns []string, rows []record.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	rec := make([]string, len(columns))
	for _, row := range rows {
		for i, c := range columns {
			rec[i] = row[c]
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
