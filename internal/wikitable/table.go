// Package wikitable locates, selects and flattens Wikipedia tables
// ("wikitables") into rectangular string grids and serializes them.
package wikitable

import "errors"

// ErrNoTables is returned when a page has no table carrying the wikitable class.
var ErrNoTables = errors.New("no tables with class 'wikitable' were found")

// Table is one extracted wikitable. Every row has len(Headers) cells.
type Table struct {
	Caption string
	Headers []string
	Rows    [][]string
}

// Width returns the number of columns.
func (t Table) Width() int { return len(t.Headers) }

// Align pads row with empty strings or truncates it so that it has exactly
// width cells. A negative width returns row unchanged.
func Align(row []string, width int) []string {
	if width < 0 || len(row) == width {
		return row
	}
	if len(row) > width {
		return row[:width]
	}
	out := make([]string, width)
	copy(out, row)
	return out
}
