package analysis

import (
	"github.com/abhisek/markbook/internal/classify"
	"github.com/abhisek/markbook/internal/dataset"
)

// Session owns one loaded dataset and the thresholds currently applied to
// it. Each session is independent: thresholds are session-local, and the
// table itself is never modified, so a recompute is always a full, fresh
// classification.
type Session struct {
	// Source is the display name of where the table came from (file path
	// or upload name).
	Source string

	// Table is the parsed dataset. Treated as read-only.
	Table *dataset.Table

	// Thresholds are the pass marks currently applied.
	Thresholds classify.Thresholds

	// Result is the classification under Thresholds, nil when Err is set.
	Result *classify.Result

	// Err is the terminal analysis error, if classification failed.
	Err error
}

// NewSession classifies t under the default thresholds.
func NewSession(source string, t *dataset.Table) *Session {
	s := &Session{
		Source:     source,
		Table:      t,
		Thresholds: classify.DefaultThresholds(),
	}
	s.Recompute()
	return s
}

// SetThresholds applies new pass marks and reclassifies.
func (s *Session) SetThresholds(th classify.Thresholds) {
	s.Thresholds = th
	s.Recompute()
}

// Recompute reclassifies the table under the current thresholds.
func (s *Session) Recompute() {
	s.Result, s.Err = classify.Classify(s.Table, s.Thresholds)
}

// Subjects returns the table's subject columns.
func (s *Session) Subjects() []string {
	return s.Table.Subjects()
}
