package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrNotFound indicates the source is missing or unreadable.
	ErrNotFound = errors.New("dataset not found")

	// ErrMalformed indicates the source exists but is not a valid marks table.
	ErrMalformed = errors.New("dataset malformed")
)

// Load parses CSV data into a Table. The first record is the header row;
// every record after it carries one numeric mark per subject column.
func Load(r io.Reader) (*Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return fromRecords(records)
}

// LoadFile reads the CSV file at path.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	defer f.Close()
	return Load(f)
}

// fromRecords builds a Table from raw string records, the first being the
// header. Shared by the CSV and Excel loaders.
func fromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing header row", ErrMalformed)
	}

	header := records[0]
	header[0] = strings.TrimPrefix(header[0], "\uFEFF")

	t := &Table{Columns: make([]string, len(header))}
	nameIdx := -1
	seen := make(map[string]bool, len(header))
	for i, col := range header {
		col = strings.TrimSpace(col)
		if col == "" {
			return nil, fmt.Errorf("%w: column %d has an empty name", ErrMalformed, i+1)
		}
		if seen[col] {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrMalformed, col)
		}
		seen[col] = true
		t.Columns[i] = col
		if col == NameColumn {
			nameIdx = i
		}
	}
	t.HasName = nameIdx >= 0

	t.Rows = make([]Record, 0, len(records)-1)
	for n, rec := range records[1:] {
		row := n + 2 // 1-based, counting the header
		if len(rec) != len(header) {
			return nil, fmt.Errorf("%w: row %d has %d fields, want %d", ErrMalformed, row, len(rec), len(header))
		}

		r := Record{Marks: make(map[string]float64, len(header))}
		for i, cell := range rec {
			cell = strings.TrimSpace(cell)
			if i == nameIdx {
				r.Name = cell
				continue
			}
			if cell == "" {
				return nil, fmt.Errorf("%w: row %d is missing a mark for %s", ErrMalformed, row, t.Columns[i])
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: row %d has a non-numeric mark %q for %s", ErrMalformed, row, cell, t.Columns[i])
			}
			r.Marks[t.Columns[i]] = v
		}
		t.Rows = append(t.Rows, r)
	}

	return t, nil
}
