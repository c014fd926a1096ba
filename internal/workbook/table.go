package workbook

import (
	"fmt"

	"resp-analyzer/internal/schedule"

	"github.com/xuri/excelize/v2"
)

// SaveTable writes a table to a single-sheet workbook. Numeric cells are stored as numbers.
func SaveTable(path, sheet string, t *schedule.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}

	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	rows := [][]any{header}
	for i := range t.Rows {
		row := make([]any, len(t.Columns))
		for j := range t.Columns {
			v := t.Cell(i, j)
			switch n, ok := schedule.ParseNumber(v); {
			case ok:
				row[j] = n
			case schedule.IsMissing(v):
				row[j] = nil
			default:
				row[j] = v
			}
		}
		rows = append(rows, row)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := writeSheet(f, sheet, rows, style); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
