package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/rojanmagar2001/sitecheck/internal/domain"
)

const sheetName = "Links"

// WriteXLSX writes the same columns as WriteCSV into a single-sheet workbook.
// Status codes and durations are stored as numbers.
func WriteXLSX(w io.Writer, recs []domain.LinkRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range recs {
		row := []any{r.URL, string(r.Status), "", r.StatusText, ""}
		if r.StatusCode != 0 {
			row[2] = r.StatusCode
		}
		if ms, ok := r.DurationMs(); ok {
			row[4] = ms
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 60); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
