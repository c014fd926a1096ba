package workbook

import (
	"fmt"
	"io"

	"resp-analyzer/internal/schedule"
	"resp-analyzer/internal/simulation"
	"resp-analyzer/internal/stats"

	"github.com/xuri/excelize/v2"
)

// Sheet names and file name of the exported summary.
const (
	SummarySheet    = "Summary"
	SimulationSheet = "Simulation"
	DefaultFileName = "Resp-Ratios.xlsx"
)

// Export holds what goes into a summary workbook.
type Export struct {
	Summary    []stats.Summary
	Simulation []simulation.Result
	ByLocation bool
}

// Build renders the export into a new workbook. The caller closes the file.
func (e Export) Build() (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		f.Close()
		return nil, err
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}

	rows := make([][]any, 0, len(e.Summary)+1)
	rows = append(rows, e.columns(false))
	for _, s := range e.Summary {
		rows = append(rows, e.summaryRow(s))
	}
	if err := writeSheet(f, SummarySheet, rows, header); err != nil {
		f.Close()
		return nil, err
	}

	if len(e.Simulation) > 0 {
		if _, err := f.NewSheet(SimulationSheet); err != nil {
			f.Close()
			return nil, err
		}
		rows = rows[:0]
		rows = append(rows, e.columns(true))
		for _, r := range e.Simulation {
			rows = append(rows, append(e.summaryRow(r.Summary), cellValue(r.ProbabilityOnTime)))
		}
		if err := writeSheet(f, SimulationSheet, rows, header); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

// Save writes the workbook to path.
func (e Export) Save(path string) error {
	f, err := e.Build()
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// WriteTo streams the workbook, e.g. as a download.
func (e Export) WriteTo(w io.Writer) (int64, error) {
	f, err := e.Build()
	if err != nil {
		return 0, fmt.Errorf("build workbook: %w", err)
	}
	defer f.Close()

	return f.WriteTo(w)
}

func (e Export) columns(withProbability bool) []any {
	cols := []any{schedule.FieldGroup}
	if e.ByLocation {
		cols = append(cols, schedule.FieldRegion, schedule.FieldDivision, schedule.FieldLocation)
	}
	cols = append(cols, "Activities", "Min", "Most Likely", "Max")
	if withProbability {
		cols = append(cols, "Probability On Time")
	}
	return cols
}

func (e Export) summaryRow(s stats.Summary) []any {
	row := []any{s.Group}
	if e.ByLocation {
		row = append(row, s.Region, s.Division, s.Location)
	}
	return append(row, s.Activities, cellValue(s.Min), cellValue(s.MostLikely), cellValue(s.Max))
}

func cellValue(r stats.Ratio) any {
	if !r.Valid {
		return nil
	}
	return r.Value
}

func writeSheet(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d of %s: %w", i+1, sheet, err)
		}
	}

	if len(rows) > 0 && len(rows[0]) > 0 {
		last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return err
		}
	}
	return nil
}
