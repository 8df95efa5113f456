// Package table reads spreadsheet files into a plain header + rows shape.
package table

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Table is a header row followed by data rows. Rows may be shorter than the
// header when trailing cells are empty.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Index returns the position of the first column matching any of the names,
// comparing Key forms. It returns -1 when none match.
func (t *Table) Index(names ...string) int {
	if t == nil {
		return -1
	}
	for _, n := range names {
		k := Key(n)
		for i, c := range t.Columns {
			if Key(c) == k {
				return i
			}
		}
	}
	return -1
}

// Has reports whether any of the names is a column.
func (t *Table) Has(names ...string) bool {
	return t.Index(names...) >= 0
}

// Cell returns the trimmed value at row/col, or "" when out of range.
func (t *Table) Cell(row, col int) string {
	if t == nil || row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// Key folds a column name for comparison: accents removed, lowercase, only
// letters and digits kept. "Dimensión" and "dimension" share a key, as do
// "Page Type" and "page_type".
func Key(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func newTable(records [][]string) *Table {
	t := &Table{
		Columns: make([]string, 0),
		Rows:    make([][]string, 0),
	}
	if len(records) == 0 {
		return t
	}

	for _, c := range records[0] {
		t.Columns = append(t.Columns, strings.TrimSpace(strings.TrimPrefix(c, "\ufeff")))
	}

	for _, r := range records[1:] {
		if isBlank(r) {
			continue
		}
		t.Rows = append(t.Rows, r)
	}
	return t
}

func isBlank(r []string) bool {
	for _, v := range r {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
