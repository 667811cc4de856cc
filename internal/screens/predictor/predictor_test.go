package predictor

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/markbook/internal/analysis"
	"github.com/abhisek/markbook/internal/classify"
	"github.com/abhisek/markbook/internal/dataset"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testPredictor(t *testing.T) *PredictorScreen {
	t.Helper()
	table, err := dataset.Load(strings.NewReader("Name,Math,Science\nAsha,50,45\nBikram,30,60\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return New(analysis.NewSession("students.csv", table))
}

// press runs a key through Update and feeds any produced message back in,
// the way the runtime would.
func press(t *testing.T, s *PredictorScreen, msg tea.Msg) {
	t.Helper()
	_, cmd := s.Update(msg)
	if cmd != nil {
		if out := cmd(); out != nil {
			s.Update(out)
		}
	}
}

func TestPredictor_Title(t *testing.T) {
	s := testPredictor(t)
	if s.Title() != "Predictor" {
		t.Errorf("Title = %q, want %q", s.Title(), "Predictor")
	}
}

func TestPredictor_OneFieldPerSubject(t *testing.T) {
	s := testPredictor(t)
	if len(s.inputs) != 2 {
		t.Fatalf("inputs = %d, want 2", len(s.inputs))
	}
	if s.focus != 0 {
		t.Errorf("focus = %d, want the first field", s.focus)
	}
}

func TestPredictor_TypeAndPredict(t *testing.T) {
	s := testPredictor(t)

	// Fill Math with 50, Science with 45, then press the button.
	press(t, s, keyPress('5'))
	press(t, s, keyPress('0'))
	press(t, s, specialKey(tea.KeyEnter))
	press(t, s, keyPress('4'))
	press(t, s, keyPress('5'))
	press(t, s, specialKey(tea.KeyEnter))

	if s.focus != len(s.inputs) {
		t.Fatalf("focus = %d, want the button", s.focus)
	}
	press(t, s, specialKey(tea.KeyEnter))

	if s.result == nil {
		t.Fatal("expected a prediction result")
	}
	if s.result.Total != 95 {
		t.Errorf("Total = %v, want 95", s.result.Total)
	}
	if !s.result.PassedAllSubjects {
		t.Error("both marks clear the individual threshold")
	}
	if s.result.PassedOverall {
		t.Error("95 should not clear the 140 overall threshold")
	}
	if s.result.FinalResult != classify.Fail {
		t.Errorf("FinalResult = %q, want %q", s.result.FinalResult, classify.Fail)
	}

	view := s.View(100, 30)
	for _, want := range []string{"Prediction Result", "Total Marks:", "Final Prediction:"} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q", want)
		}
	}
}

func TestPredictor_BoundaryPasses(t *testing.T) {
	s := testPredictor(t)

	// Exactly on both thresholds counts as a pass.
	s.inputs[0].Model.SetValue("40")
	s.inputs[1].Model.SetValue("100")
	s.predict()

	if s.result == nil {
		t.Fatal("expected a prediction result")
	}
	if s.result.FinalResult != classify.Pass {
		t.Errorf("FinalResult = %q, want %q", s.result.FinalResult, classify.Pass)
	}
}

func TestPredictor_UsesSessionThresholds(t *testing.T) {
	s := testPredictor(t)
	s.session.SetThresholds(classify.Thresholds{Individual: 60, Overall: 100})

	s.inputs[0].Model.SetValue("50")
	s.inputs[1].Model.SetValue("70")
	s.predict()

	if s.result == nil {
		t.Fatal("expected a prediction result")
	}
	// 120 clears the overall bar but Math 50 misses the raised 60.
	if !s.result.PassedOverall {
		t.Error("expected the overall threshold to be cleared")
	}
	if s.result.PassedAllSubjects {
		t.Error("Math 50 should miss the raised individual threshold")
	}
	if s.result.FinalResult != classify.Fail {
		t.Errorf("FinalResult = %q, want %q", s.result.FinalResult, classify.Fail)
	}
}

func TestPredictor_BlankMarksCountAsZero(t *testing.T) {
	s := testPredictor(t)
	s.predict()

	if s.result == nil {
		t.Fatal("expected a prediction result")
	}
	if s.result.Total != 0 {
		t.Errorf("Total = %v, want 0", s.result.Total)
	}
	if s.result.FinalResult != classify.Fail {
		t.Errorf("FinalResult = %q, want %q", s.result.FinalResult, classify.Fail)
	}
}

func TestPredictor_InvalidFieldBlocksResult(t *testing.T) {
	s := testPredictor(t)

	s.inputs[0].Model.SetValue(".")
	s.inputs[1].Model.SetValue("45")
	s.predict()

	if s.result != nil {
		t.Error("expected no result while a field is invalid")
	}
	if s.errMsg == "" {
		t.Error("expected a validation message")
	}

	view := s.View(100, 30)
	if !strings.Contains(view, s.errMsg) {
		t.Error("view should show the validation message")
	}

	// Fixing the field clears the message.
	s.inputs[0].Model.SetValue("50")
	s.predict()
	if s.result == nil || s.errMsg != "" {
		t.Errorf("result = %v, errMsg = %q, want a result and no message", s.result, s.errMsg)
	}
}

func TestPredictor_FocusWrapsAround(t *testing.T) {
	s := testPredictor(t)

	// Two fields plus the button: three tabs land back on the first field.
	press(t, s, specialKey(tea.KeyTab))
	press(t, s, specialKey(tea.KeyTab))
	if s.focus != len(s.inputs) {
		t.Fatalf("focus = %d, want the button", s.focus)
	}
	press(t, s, specialKey(tea.KeyTab))
	if s.focus != 0 {
		t.Errorf("focus = %d, want 0 after wrapping", s.focus)
	}

	press(t, s, specialKey(tea.KeyUp))
	if s.focus != len(s.inputs) {
		t.Errorf("focus = %d, want the button after moving up from the top", s.focus)
	}
}

func TestPredictor_KeyHints(t *testing.T) {
	s := testPredictor(t)

	if got := enterHint(s); got != "Next" {
		t.Errorf("enter hint = %q, want %q", got, "Next")
	}

	press(t, s, specialKey(tea.KeyTab))
	press(t, s, specialKey(tea.KeyTab))
	if got := enterHint(s); got != "Predict" {
		t.Errorf("enter hint = %q, want %q", got, "Predict")
	}
}

func TestPredictor_DatasetInfo(t *testing.T) {
	s := testPredictor(t)

	source, students := s.DatasetInfo()
	if source != "students.csv" {
		t.Errorf("source = %q, want %q", source, "students.csv")
	}
	if students != 2 {
		t.Errorf("students = %d, want 2", students)
	}
}

func enterHint(s *PredictorScreen) string {
	for _, h := range s.KeyHints() {
		if h.Key == "Enter" {
			return h.Description
		}
	}
	return ""
}
