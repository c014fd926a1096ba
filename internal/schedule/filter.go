package schedule

import "strings"

// Record is one activity after normalization.
type Record struct {
	OriginalDuration float64 `json:"od"`
	ActualDuration   float64 `json:"acdur"`
	Status           string  `json:"status"`
	Group            string  `json:"group"`
	Region           string  `json:"region,omitempty"`
	Division         string  `json:"division,omitempty"`
	Location         string  `json:"location,omitempty"`
}

// FilterStats counts the rows removed by each cleaning step.
type FilterStats struct {
	Input          int `json:"input"`
	MissingNumbers int `json:"dropped_missing_durations"`
	NotCompleted   int `json:"dropped_not_completed"`
	ZeroDuration   int `json:"dropped_zero_od"`
	Clamped        int `json:"clamped"`
	MissingGroup   int `json:"dropped_missing_group"`
	Output         int `json:"output"`
}

// Clamp caps the actual duration at twice the original duration.
func Clamp(r Record) Record {
	if limit := 2 * r.OriginalDuration; r.ActualDuration > limit {
		r.ActualDuration = limit
	}
	return r
}

// Clean runs the record filter over a normalized table.
// Steps run strictly in order and never re-admit a dropped row:
// durations present, status Completed, OD non-zero, clamp, group present.
func Clean(t *Table) ([]Record, FilterStats) {
	st := FilterStats{Input: t.Len()}

	odIdx := t.Index(FieldOD)
	acIdx := t.Index(FieldACDur)
	statusIdx := t.Index(FieldStatus)
	groupIdx := t.Index(FieldGroup)
	regionIdx := t.Index(FieldRegion)
	divisionIdx := t.Index(FieldDivision)
	locationIdx := t.Index(FieldLocation)

	records := make([]Record, 0, t.Len())
	for i := range t.Rows {
		od, okOD := ParseNumber(t.Cell(i, odIdx))
		ac, okAC := ParseNumber(t.Cell(i, acIdx))
		if !okOD || !okAC {
			st.MissingNumbers++
			continue
		}

		status := t.Cell(i, statusIdx)
		if status != StatusCompleted {
			st.NotCompleted++
			continue
		}

		if od == 0 {
			st.ZeroDuration++
			continue
		}

		r := Record{
			OriginalDuration: od,
			ActualDuration:   ac,
			Status:           status,
			Group:            strings.TrimSpace(t.Cell(i, groupIdx)),
			Region:           strings.TrimSpace(t.Cell(i, regionIdx)),
			Division:         strings.TrimSpace(t.Cell(i, divisionIdx)),
			Location:         strings.TrimSpace(t.Cell(i, locationIdx)),
		}
		clamped := Clamp(r)
		if clamped.ActualDuration != r.ActualDuration {
			st.Clamped++
		}

		if clamped.Group == "" {
			st.MissingGroup++
			continue
		}

		records = append(records, clamped)
	}

	st.Output = len(records)
	return records, st
}
