package classify

import (
	"errors"

	"github.com/abhisek/markbook/internal/dataset"
)

// ErrNoSubjects indicates the table has no subject columns to judge.
var ErrNoSubjects = errors.New("dataset has no subject columns")

// Outcome is the final verdict for one student.
type Outcome string

const (
	Pass Outcome = "Pass"
	Fail Outcome = "Fail"
)

// RowResult is one classified student row: the original marks plus the
// four derived values.
type RowResult struct {
	Name              string
	Marks             map[string]float64
	Total             float64
	PassedAllSubjects bool
	PassedOverall     bool
	FinalResult       Outcome
}

// Result is a fully classified dataset.
type Result struct {
	Subjects []string
	Rows     []RowResult
}

// Classify judges every row of t against th. The table is not modified;
// result rows alias the table's mark maps and must be treated as read-only.
// A mark exactly equal to a threshold passes it.
func Classify(t *dataset.Table, th Thresholds) (*Result, error) {
	subjects := t.Subjects()
	if len(subjects) == 0 {
		return nil, ErrNoSubjects
	}

	rows := make([]RowResult, len(t.Rows))
	for i, rec := range t.Rows {
		rows[i] = classifyMarks(rec.Name, rec.Marks, subjects, th)
	}
	return &Result{Subjects: subjects, Rows: rows}, nil
}

// ClassifySingle judges one hypothetical set of marks with the same rule
// used for table rows. Collectors should supply one mark per subject,
// defaulting absent subjects to zero.
func ClassifySingle(marks map[string]float64, th Thresholds) RowResult {
	subjects := make([]string, 0, len(marks))
	for s := range marks {
		subjects = append(subjects, s)
	}
	return classifyMarks("", marks, subjects, th)
}

// classifyMarks applies the pass rule over the given subjects. Subjects
// missing from marks count as zero.
func classifyMarks(name string, marks map[string]float64, subjects []string, th Thresholds) RowResult {
	r := RowResult{
		Name:              name,
		Marks:             marks,
		PassedAllSubjects: true,
	}
	for _, s := range subjects {
		m := marks[s]
		r.Total += m
		if m < th.Individual {
			r.PassedAllSubjects = false
		}
	}
	r.PassedOverall = r.Total >= th.Overall
	if r.PassedAllSubjects && r.PassedOverall {
		r.FinalResult = Pass
	} else {
		r.FinalResult = Fail
	}
	return r
}

// PassCount returns how many rows passed and how many failed.
func (r *Result) PassCount() (pass, fail int) {
	for _, row := range r.Rows {
		if row.FinalResult == Pass {
			pass++
		} else {
			fail++
		}
	}
	return pass, fail
}

// Totals returns every row's total, in row order.
func (r *Result) Totals() []float64 {
	totals := make([]float64, len(r.Rows))
	for i, row := range r.Rows {
		totals[i] = row.Total
	}
	return totals
}
