// Package search finds people by name and drives the search panel.
//
// Matching is a case- and accent-insensitive substring test: both the query
// and each name are lowercased, decomposed (NFD) and stripped of combining
// marks, so "Le" finds "Lê Văn An". The Vietnamese "đ"/"Đ" has no
// decomposition and is replaced by "d"/"D" before lowercasing, so "Dinh"
// finds "Đinh Thị Mai".
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var dStroke = strings.NewReplacer("đ", "d", "Đ", "D")

// Fold returns the match key of s.
func Fold(s string) string {
	lower := strings.ToLower(dStroke.Replace(s))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(t, lower)
	if err != nil {
		return lower
	}
	return folded
}
