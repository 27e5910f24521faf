package wikitable

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Sheet1"

// WriteXLSX writes t to a single-sheet workbook: headers in row 1, data from
// row 2.
func WriteXLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if idx, err := f.GetSheetIndex(xlsxSheet); err != nil || idx == -1 {
		idx, err := f.NewSheet(xlsxSheet)
		if err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
		f.SetActiveSheet(idx)
	}

	if err := setXLSXRow(f, 1, t.Headers); err != nil {
		return err
	}
	for r, row := range t.Rows {
		if err := setXLSXRow(f, r+2, row); err != nil {
			return err
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	return nil
}

func setXLSXRow(f *excelize.File, rowIdx int, cells []string) error {
	for c, v := range cells {
		cell, err := excelize.CoordinatesToCellName(c+1, rowIdx)
		if err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
		if err := f.SetCellValue(xlsxSheet, cell, v); err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
	}
	return nil
}
