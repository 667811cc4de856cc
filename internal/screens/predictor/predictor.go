package predictor

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/markbook/internal/analysis"
	"github.com/abhisek/markbook/internal/classify"
	"github.com/abhisek/markbook/internal/screen"
	"github.com/abhisek/markbook/internal/ui/components"
	"github.com/abhisek/markbook/internal/ui/layout"
	"github.com/abhisek/markbook/internal/ui/theme"
)

const inputWidth = 8

// PredictorScreen scores a hypothetical student against the dashboard's
// current thresholds. The loaded table is never touched.
type PredictorScreen struct {
	session  *analysis.Session
	subjects []string
	inputs   []components.TextInput
	button   components.Button
	focus    int // 0..len(inputs)-1 are mark fields, len(inputs) is the button
	result   *classify.RowResult
	errMsg   string
}

var _ screen.Screen = (*PredictorScreen)(nil)
var _ screen.KeyHintProvider = (*PredictorScreen)(nil)
var _ screen.DatasetInfoProvider = (*PredictorScreen)(nil)

type predictMsg struct{}

// New creates a predictor with one mark field per subject column.
func New(session *analysis.Session) *PredictorScreen {
	subjects := session.Subjects()
	inputs := make([]components.TextInput, len(subjects))
	for i := range subjects {
		inputs[i] = components.NewTextInput("0", true, inputWidth)
		if i > 0 {
			inputs[i].Model.Blur()
		}
	}

	return &PredictorScreen{
		session:  session,
		subjects: subjects,
		inputs:   inputs,
		button: components.NewButton("Predict Result", false, func() tea.Cmd {
			return func() tea.Msg { return predictMsg{} }
		}),
	}
}

func (s *PredictorScreen) Init() tea.Cmd {
	if len(s.inputs) == 0 {
		return nil
	}
	return s.inputs[0].Init()
}

func (s *PredictorScreen) Title() string {
	return "Predictor"
}

func (s *PredictorScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
	}
	if s.focus == len(s.inputs) {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Predict"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Next"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

// DatasetInfo reports the source and size of the table behind the session.
func (s *PredictorScreen) DatasetInfo() (string, int) {
	return s.session.Source, s.session.Table.Len()
}

func (s *PredictorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case predictMsg:
		s.predict()
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PredictorScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return s, s.setFocus(s.focus + 1)
	case "shift+tab", "up":
		return s, s.setFocus(s.focus - 1)
	case "enter":
		if s.focus == len(s.inputs) {
			var cmd tea.Cmd
			s.button, cmd = s.button.Update(msg)
			return s, cmd
		}
		return s, s.setFocus(s.focus + 1)
	}

	if s.focus < len(s.inputs) {
		var cmd tea.Cmd
		s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
		return s, cmd
	}
	return s, nil
}

// setFocus moves focus to the given field, wrapping past the button back to
// the first field.
func (s *PredictorScreen) setFocus(focus int) tea.Cmd {
	n := len(s.inputs) + 1
	s.focus = ((focus % n) + n) % n

	var cmd tea.Cmd
	for i := range s.inputs {
		if i == s.focus {
			cmd = s.inputs[i].Model.Focus()
		} else {
			s.inputs[i].Model.Blur()
		}
	}
	s.button.Active = s.focus == len(s.inputs)
	return cmd
}

// predict parses every field and classifies the hypothetical marks. Invalid
// fields are flagged in place and no result is shown until they are fixed.
func (s *PredictorScreen) predict() {
	marks := make(map[string]float64, len(s.subjects))
	ok := true
	for i, sub := range s.subjects {
		v, err := s.inputs[i].NumericValue()
		valid := err == nil
		s.inputs[i].Submit(valid)
		if !valid {
			ok = false
			continue
		}
		marks[sub] = v
	}

	if !ok {
		s.result = nil
		s.errMsg = "Fix the marked fields, then predict again."
		return
	}

	s.errMsg = ""
	row := classify.ClassifySingle(marks, s.session.Thresholds)
	s.result = &row
}

func (s *PredictorScreen) View(width, height int) string {
	th := s.session.Thresholds

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Predict Result for a New Student"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Judged with the dashboard thresholds: every subject ≥ %g, total ≥ %g", th.Individual, th.Overall)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderForm()))
	b.WriteString("\n\n")

	switch {
	case s.errMsg != "":
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.errMsg))
	case s.result != nil:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderResult()))
	default:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Marks left blank count as zero."))
	}

	return b.String()
}

// renderForm renders one mark field per subject plus the predict button.
func (s *PredictorScreen) renderForm() string {
	labelW := 0
	for _, sub := range s.subjects {
		if len(sub) > labelW {
			labelW = len(sub)
		}
	}

	var b strings.Builder
	for i, sub := range s.subjects {
		label := fmt.Sprintf("%-*s", labelW, sub)
		if i == s.focus {
			label = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(label)
		} else {
			label = lipgloss.NewStyle().Foreground(theme.Text).Render(label)
		}
		b.WriteString(label + "  " + s.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n" + s.button.View())
	return b.String()
}

// renderResult renders the prediction card.
func (s *PredictorScreen) renderResult() string {
	r := s.result

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Prediction Result"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Total Marks:          %g\n", r.Total))
	b.WriteString("Passed All Subjects:  " + checkmark(r.PassedAllSubjects) + "\n")
	b.WriteString("Passed Overall Total: " + checkmark(r.PassedOverall) + "\n\n")

	if r.FinalResult == classify.Pass {
		b.WriteString("Final Prediction: " + theme.Pass.Render("Pass ✓"))
	} else {
		b.WriteString("Final Prediction: " + theme.Fail.Render("Fail ✗"))
	}

	return theme.Card.Render(b.String())
}

func checkmark(ok bool) string {
	if ok {
		return lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	}
	return lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
}
