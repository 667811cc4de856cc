package dataset

// NameColumn is the header that marks the student name column.
// Every other column is treated as a subject.
const NameColumn = "Name"

// Record is one student row: an optional name plus one mark per subject.
type Record struct {
	Name  string
	Marks map[string]float64
}

// Table is a parsed student dataset. Columns preserves header order.
// Loaded tables are shared by the cache and must be treated as read-only.
type Table struct {
	Columns []string
	HasName bool
	Rows    []Record
}

// Subjects returns the subject columns in header order.
func (t *Table) Subjects() []string {
	subjects := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c == NameColumn {
			continue
		}
		subjects = append(subjects, c)
	}
	return subjects
}

// Len returns the number of student rows.
func (t *Table) Len() int {
	return len(t.Rows)
}
