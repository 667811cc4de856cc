package dataset

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCSV = `Name,Math,Science,English
Asha,55,62,70
Ben,30,80,45
`

func TestLoad(t *testing.T) {
	table, err := Load(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	wantCols := []string{"Name", "Math", "Science", "English"}
	if len(table.Columns) != len(wantCols) {
		t.Fatalf("expected %d columns, got %d", len(wantCols), len(table.Columns))
	}
	for i, c := range wantCols {
		if table.Columns[i] != c {
			t.Errorf("column %d = %q, want %q", i, table.Columns[i], c)
		}
	}
	if !table.HasName {
		t.Error("expected HasName to be true")
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Len())
	}

	first := table.Rows[0]
	if first.Name != "Asha" {
		t.Errorf("first row name = %q, want %q", first.Name, "Asha")
	}
	if first.Marks["Math"] != 55 || first.Marks["Science"] != 62 || first.Marks["English"] != 70 {
		t.Errorf("first row marks = %v", first.Marks)
	}
	if _, ok := first.Marks[NameColumn]; ok {
		t.Error("name column should not appear in marks")
	}
}

func TestLoadSubjectsExcludeName(t *testing.T) {
	table, err := Load(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	subjects := table.Subjects()
	want := []string{"Math", "Science", "English"}
	if len(subjects) != len(want) {
		t.Fatalf("expected %d subjects, got %d", len(want), len(subjects))
	}
	for i, s := range want {
		if subjects[i] != s {
			t.Errorf("subject %d = %q, want %q", i, subjects[i], s)
		}
	}
}

func TestLoadWithoutNameColumn(t *testing.T) {
	table, err := Load(strings.NewReader("Math,Science\n50,60\n"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if table.HasName {
		t.Error("expected HasName to be false")
	}
	if got := len(table.Subjects()); got != 2 {
		t.Errorf("expected 2 subjects, got %d", got)
	}
	if table.Rows[0].Name != "" {
		t.Errorf("expected empty name, got %q", table.Rows[0].Name)
	}
}

func TestLoadHeaderOnly(t *testing.T) {
	table, err := Load(strings.NewReader("Name,Math\n"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("expected 0 rows, got %d", table.Len())
	}
	if got := len(table.Subjects()); got != 1 {
		t.Errorf("expected 1 subject, got %d", got)
	}
}

func TestLoadNameOnlyTable(t *testing.T) {
	// A table with no subject columns still loads; classification is
	// where it gets rejected.
	table, err := Load(strings.NewReader("Name\nAsha\n"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got := len(table.Subjects()); got != 0 {
		t.Errorf("expected 0 subjects, got %d", got)
	}
	if table.Len() != 1 {
		t.Errorf("expected 1 row, got %d", table.Len())
	}
}

func TestLoadTrimsWhitespaceAndBOM(t *testing.T) {
	in := "\uFEFFName , Math \n Asha , 55 \n"
	table, err := Load(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if table.Columns[0] != "Name" || table.Columns[1] != "Math" {
		t.Errorf("columns = %v, want [Name Math]", table.Columns)
	}
	if table.Rows[0].Name != "Asha" {
		t.Errorf("name = %q, want %q", table.Rows[0].Name, "Asha")
	}
	if table.Rows[0].Marks["Math"] != 55 {
		t.Errorf("mark = %v, want 55", table.Rows[0].Marks["Math"])
	}
}

func TestLoadDecimalMarks(t *testing.T) {
	table, err := Load(strings.NewReader("Name,Math\nAsha,55.5\n"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if table.Rows[0].Marks["Math"] != 55.5 {
		t.Errorf("mark = %v, want 55.5", table.Rows[0].Marks["Math"])
	}
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"non-numeric mark", "Name,Math\nAsha,fifty\n"},
		{"missing mark", "Name,Math\nAsha,\n"},
		{"ragged row", "Name,Math,Science\nAsha,55\n"},
		{"duplicate column", "Name,Math,Math\nAsha,55,60\n"},
		{"empty column name", "Name,,Math\nAsha,1,2\n"},
		{"nan mark", "Name,Math\nAsha,NaN\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input))
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
