package schedule

import (
	"math"
	"strconv"
	"strings"
)

// Canonical field names produced by Normalize.
const (
	FieldOD       = "OD"
	FieldACDur    = "ACDur"
	FieldStatus   = "Activity Status"
	FieldGroup    = "G - Resp"
	FieldRegion   = "Region"
	FieldDivision = "Division"
	FieldLocation = "Location"
)

// StatusCompleted is the only Activity Status admitted into the aggregation.
const StatusCompleted = "Completed"

// Table is an untyped, header-addressed dataset as handed over by a loader.
// A cell is considered missing when it is empty after trimming whitespace.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// NewTable builds a table and pads short rows to the header width.
func NewTable(columns []string, rows [][]string) *Table {
	t := &Table{
		Columns: append([]string(nil), columns...),
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		row := make([]string, len(columns))
		copy(row, r)
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Has reports whether the named column exists.
func (t *Table) Has(name string) bool {
	return t.Index(name) >= 0
}

// Cell returns the raw value at (row, col), or "" when out of range.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// AllMissing reports whether every value in the column is missing.
func (t *Table) AllMissing(col int) bool {
	for i := range t.Rows {
		if !IsMissing(t.Cell(i, col)) {
			return false
		}
	}
	return true
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// IsMissing reports whether a cell carries no value.
func IsMissing(v string) bool {
	return strings.TrimSpace(v) == ""
}

// ParseNumber converts a duration cell to a float. Thousands separators are ignored.
// Missing and non-numeric cells report ok == false.
func ParseNumber(v string) (float64, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(v, ",", ""))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
