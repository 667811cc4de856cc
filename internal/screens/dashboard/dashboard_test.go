package dashboard

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/markbook/internal/analysis"
	"github.com/abhisek/markbook/internal/dataset"
	"github.com/abhisek/markbook/internal/router"
	"github.com/abhisek/markbook/internal/screens/predictor"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func loadTable(t *testing.T, csv string) *dataset.Table {
	t.Helper()
	table, err := dataset.Load(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return table
}

// testDashboard returns a dashboard over three students. Under the default
// thresholds (40 per subject, 140 overall) only Chandra passes.
func testDashboard(t *testing.T) *DashboardScreen {
	t.Helper()
	table := loadTable(t, "Name,Math,Science\nAsha,50,45\nBikram,30,60\nChandra,90,85\n")
	return New(analysis.NewSession("students.csv", table))
}

func TestDashboard_Title(t *testing.T) {
	s := testDashboard(t)
	if s.Title() != "Dashboard" {
		t.Errorf("Title = %q, want %q", s.Title(), "Dashboard")
	}
}

func TestDashboard_DefaultClassification(t *testing.T) {
	s := testDashboard(t)

	pass, fail := s.session.Result.PassCount()
	if pass != 1 || fail != 2 {
		t.Errorf("PassCount = (%d, %d), want (1, 2)", pass, fail)
	}
}

func TestDashboard_ViewSections(t *testing.T) {
	s := testDashboard(t)
	view := s.View(100, 40)

	for _, want := range []string{
		"Individual Subject Pass Threshold",
		"Overall Total Pass Threshold",
		"Final Results Overview",
		"Distribution of Total Marks",
		"Final Pass vs Fail Count",
		"Raw Data Summary",
		"Total students analyzed: 3",
		"Subject columns detected: Math, Science",
		"Asha",
		"Chandra",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q", want)
		}
	}
}

func TestDashboard_SliderReclassifies(t *testing.T) {
	s := testDashboard(t)

	// The individual slider starts focused; one step left lowers it to 39.
	s.Update(keyPress('h'))
	if got := s.session.Thresholds.Individual; got != 39 {
		t.Fatalf("Individual threshold = %v, want 39", got)
	}

	// Tab to the overall slider, then five steps of 10 down to 90.
	s.Update(specialKey(tea.KeyTab))
	for i := 0; i < 5; i++ {
		s.Update(keyPress('h'))
	}
	if got := s.session.Thresholds.Overall; got != 90 {
		t.Fatalf("Overall threshold = %v, want 90", got)
	}

	// Asha (95 total) now clears the overall bar; Bikram still fails Math.
	pass, fail := s.session.Result.PassCount()
	if pass != 2 || fail != 1 {
		t.Errorf("PassCount = (%d, %d), want (2, 1)", pass, fail)
	}
}

func TestDashboard_SliderStopsAtMin(t *testing.T) {
	s := testDashboard(t)

	for i := 0; i < 50; i++ {
		s.Update(keyPress('h'))
	}
	if got := s.session.Thresholds.Individual; got != 1 {
		t.Errorf("Individual threshold = %v, want 1 (clamped)", got)
	}
}

func TestDashboard_ScrollClampsToRows(t *testing.T) {
	s := testDashboard(t)

	// Three rows fit on any sane terminal, so the offset snaps back to 0.
	for i := 0; i < 7; i++ {
		s.Update(keyPress('j'))
	}
	s.View(100, 40)
	if s.rowOffset != 0 {
		t.Errorf("rowOffset = %d, want 0 when all rows fit", s.rowOffset)
	}

	s.Update(keyPress('k'))
	s.Update(keyPress('k'))
	s.View(100, 40)
	if s.rowOffset != 0 {
		t.Errorf("rowOffset = %d, want 0 after scrolling above the top", s.rowOffset)
	}
}

func TestDashboard_ScrollReachesLastRow(t *testing.T) {
	var csv strings.Builder
	csv.WriteString("Name,Math\n")
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&csv, "S%02d,%d\n", i, 50+i)
	}
	s := New(analysis.NewSession("big.csv", loadTable(t, csv.String())))

	for i := 0; i < 40; i++ {
		s.Update(keyPress('j'))
	}
	view := s.View(100, 24)

	if s.rowOffset <= 0 || s.rowOffset >= 30 {
		t.Errorf("rowOffset = %d, want a clamped offset inside the table", s.rowOffset)
	}
	if !strings.Contains(view, "S29") {
		t.Error("last row should be visible after scrolling to the bottom")
	}
	if strings.Contains(view, "S00") {
		t.Error("first row should have scrolled out of view")
	}
}

func TestDashboard_PredictPushesPredictor(t *testing.T) {
	s := testDashboard(t)

	_, cmd := s.Update(keyPress('p'))
	if cmd == nil {
		t.Fatal("expected a command from the predict key")
	}

	msg := cmd()
	push, ok := msg.(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", msg)
	}
	if _, ok := push.Screen.(*predictor.PredictorScreen); !ok {
		t.Fatalf("expected a predictor screen, got %T", push.Screen)
	}
}

func TestDashboard_NoSubjects(t *testing.T) {
	table := loadTable(t, "Name\nAsha\nBikram\n")
	s := New(analysis.NewSession("names.csv", table))

	if s.session.Err == nil {
		t.Fatal("expected an analysis error for a table without subjects")
	}

	view := s.View(100, 30)
	if !strings.Contains(view, "No subject columns") {
		t.Error("view should explain that no subject columns were found")
	}
	if !strings.Contains(view, "Asha") {
		t.Error("raw rows should stay visible for inspection")
	}

	if _, cmd := s.Update(keyPress('p')); cmd != nil {
		t.Error("predict should be unavailable without subjects")
	}
}

func TestDashboard_EmptyTable(t *testing.T) {
	table := loadTable(t, "Name,Math\n")
	s := New(analysis.NewSession("empty.csv", table))

	if s.session.Err != nil {
		t.Fatalf("session error = %v, want none for a header-only table", s.session.Err)
	}

	view := s.View(100, 30)
	if !strings.Contains(view, "no student rows") {
		t.Error("view should say the table has no rows")
	}
	if !strings.Contains(view, "Total students analyzed: 0") {
		t.Error("summary should count zero students")
	}
}

func TestDashboard_DatasetInfo(t *testing.T) {
	s := testDashboard(t)

	source, students := s.DatasetInfo()
	if source != "students.csv" {
		t.Errorf("source = %q, want %q", source, "students.csv")
	}
	if students != 3 {
		t.Errorf("students = %d, want 3", students)
	}
}

func TestDashboard_KeyHints(t *testing.T) {
	s := testDashboard(t)
	if !hasHint(s, "P") {
		t.Error("expected a predict hint for a healthy dataset")
	}

	broken := New(analysis.NewSession("names.csv", loadTable(t, "Name\nAsha\n")))
	if hasHint(broken, "P") {
		t.Error("predict hint should disappear when analysis fails")
	}
}

func hasHint(s *DashboardScreen, key string) bool {
	for _, h := range s.KeyHints() {
		if h.Key == key {
			return true
		}
	}
	return false
}
