package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Report"

// WriteXLSX writes the report rows as a two-column workbook.
func WriteXLSX(w io.Writer, title string, lines []Line) error {
	const operation = "report.WriteXLSX"

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("%s: failed to name sheet: %w", operation, err)
	}

	rows := [][]any{{title, ""}, {"Voce", "Valore"}}
	for _, l := range lines {
		rows = append(rows, []any{l.Label, l.Value})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("%s: %w", operation, err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("%s: failed to write row %d: %w", operation, i+1, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("%s: failed to create style: %w", operation, err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "B2", bold); err != nil {
		return fmt.Errorf("%s: failed to style header: %w", operation, err)
	}
	if err := f.SetColWidth(sheetName, "A", "A", 40); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	if err := f.SetColWidth(sheetName, "B", "B", 20); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("%s: failed to write workbook: %w", operation, err)
	}
	return nil
}

// ExportXLSX returns the workbook bytes, ready to be sent as a document.
func ExportXLSX(title string, lines []Line) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, title, lines); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
