// Package workbook reads schedule exports from and writes ratio summaries to .xlsx files.
package workbook

import (
	"fmt"
	"io"
	"path/filepath"

	"resp-analyzer/internal/schedule"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// Load reads a sheet of an .xlsx file into a table. An empty sheet name selects the first sheet.
func Load(path, sheet string) (*schedule.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	return readTable(f, sheet)
}

// Read is Load for an already opened stream, e.g. an upload.
func Read(r io.Reader, sheet string) (*schedule.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	return readTable(f, sheet)
}

func readTable(f *excelize.File, sheet string) (*schedule.Table, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("no sheets")
		}
		sheet = sheets[0]
	}

	// Raw values keep durations parseable regardless of the cell number format.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows of sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", sheet)
	}

	t := schedule.NewTable(rows[0], rows[1:])
	log.Debug().
		Str("sheet", sheet).
		Int("columns", len(t.Columns)).
		Int("rows", t.Len()).
		Msg("Loaded worksheet")
	return t, nil
}
