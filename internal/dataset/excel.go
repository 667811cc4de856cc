package dataset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadExcel parses the first sheet of an Excel workbook into a Table.
// The sheet layout matches the CSV form: a header row followed by one
// row per student.
func LoadExcel(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrMalformed)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		if isEmptyRow(row) {
			continue
		}
		records = append(records, row)
	}

	// GetRows drops trailing empty cells, so pad short rows back to the
	// header width; a blank mark then reads as missing, not as a short row.
	if len(records) > 0 {
		width := len(records[0])
		for i, rec := range records {
			for len(rec) < width {
				rec = append(rec, "")
			}
			records[i] = rec
		}
	}

	return fromRecords(records)
}

// LoadExcelFile reads the workbook at path.
func LoadExcelFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	defer f.Close()
	return LoadExcel(f)
}

// IsExcelPath reports whether path names an Excel workbook by extension.
func IsExcelPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	}
	return false
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
