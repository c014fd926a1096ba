package schedule

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnusableDataset signals that a dataset has no usable grouping data and must be skipped.
var ErrUnusableDataset = errors.New("no usable grouping data")

// NormalizeOptions controls which canonical fields are required.
type NormalizeOptions struct {
	// ByLocation additionally requires Region, Division and Location.
	ByLocation bool
}

// RequiredFields returns the canonical fields a normalized table must carry.
func (o NormalizeOptions) RequiredFields() []string {
	fields := []string{FieldOD, FieldACDur, FieldStatus, FieldGroup}
	if o.ByLocation {
		fields = append(fields, FieldRegion, FieldDivision, FieldLocation)
	}
	return fields
}

// ColumnRename records a header that was mapped onto a canonical field.
type ColumnRename struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ColumnMapping describes what Normalize did to the header row.
type ColumnMapping struct {
	Renamed   []ColumnRename `json:"renamed,omitempty"`
	Dropped   []string       `json:"dropped,omitempty"`
	Conflicts []string       `json:"conflicts,omitempty"` // matched a rule whose target was already taken
}

type ruleAction int

const (
	actionRename ruleAction = iota
	actionGroupCandidate
)

type columnRule struct {
	name   string
	match  func(header string) bool
	target string
	action ruleAction
}

// columnRules is evaluated once per column, in header order. The first matching rule decides.
var columnRules = []columnRule{
	{
		name:   "original-duration",
		match:  func(h string) bool { return strings.Contains(h, "Original Duration") },
		target: FieldOD,
		action: actionRename,
	},
	{
		name:   "actual-duration",
		match:  func(h string) bool { return strings.Contains(h, "Actual Duration") },
		target: FieldACDur,
		action: actionRename,
	},
	{
		name: "responsibility",
		match: func(h string) bool {
			return !strings.Contains(h, FieldGroup) && strings.Contains(strings.ToLower(h), "resp")
		},
		target: FieldGroup,
		action: actionGroupCandidate,
	},
}

type column struct {
	name string
	src  int
}

// Normalize maps arbitrarily named columns onto the canonical fields and validates the result.
// The input table is left untouched. A dataset without the required fields, or whose
// grouping column holds no value at all, yields ErrUnusableDataset.
func Normalize(t *Table, opts NormalizeOptions) (*Table, ColumnMapping, error) {
	var mapping ColumnMapping

	// 1. Trim headers
	cols := make([]column, 0, len(t.Columns))
	for i, c := range t.Columns {
		cols = append(cols, column{name: strings.TrimSpace(c), src: i})
	}

	// 2. An all-empty G - Resp is a placeholder that has not been filled in yet
	kept := cols[:0:0]
	for _, c := range cols {
		if c.name == FieldGroup && t.AllMissing(c.src) {
			mapping.Dropped = append(mapping.Dropped, c.name)
			continue
		}
		kept = append(kept, c)
	}
	cols = kept

	taken := make(map[string]bool, len(cols))
	for _, c := range cols {
		taken[c.name] = true
	}

	// 3. Ordered rename rules
	out := make([]column, 0, len(cols))
	for _, c := range cols {
		rule, ok := matchRule(c.name)
		if !ok {
			out = append(out, c)
			continue
		}

		switch rule.action {
		case actionRename:
			if c.name == rule.target {
				out = append(out, c)
				continue
			}
			if taken[rule.target] {
				mapping.Conflicts = append(mapping.Conflicts, c.name)
				out = append(out, c)
				continue
			}
		case actionGroupCandidate:
			if t.AllMissing(c.src) {
				mapping.Dropped = append(mapping.Dropped, c.name)
				continue
			}
			if taken[rule.target] {
				out = append(out, c)
				continue
			}
		}

		mapping.Renamed = append(mapping.Renamed, ColumnRename{From: c.name, To: rule.target})
		delete(taken, c.name)
		taken[rule.target] = true
		c.name = rule.target
		out = append(out, c)
	}

	normalized := project(t, out)

	// 4. Validate
	for _, f := range opts.RequiredFields() {
		if !normalized.Has(f) {
			return nil, mapping, fmt.Errorf("%w: missing required column %q", ErrUnusableDataset, f)
		}
	}
	if normalized.AllMissing(normalized.Index(FieldGroup)) {
		return nil, mapping, fmt.Errorf("%w: column %q has no values", ErrUnusableDataset, FieldGroup)
	}

	return normalized, mapping, nil
}

func matchRule(header string) (columnRule, bool) {
	for _, r := range columnRules {
		if r.match(header) {
			return r, true
		}
	}
	return columnRule{}, false
}

func project(t *Table, cols []column) *Table {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
	}

	rows := make([][]string, len(t.Rows))
	for i := range t.Rows {
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = t.Cell(i, c.src)
		}
		rows[i] = row
	}

	return &Table{Columns: names, Rows: rows}
}
