package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/markbook/internal/ui/theme"
)

// Slider selects a numeric value from a fixed range in Step increments.
type Slider struct {
	Label   string
	Value   float64
	Min     float64
	Max     float64
	Step    float64
	Focused bool
	Width   int
}

// NewSlider creates a slider positioned at value.
func NewSlider(label string, value, min, max, step float64, width int) Slider {
	s := Slider{
		Label: label,
		Value: value,
		Min:   min,
		Max:   max,
		Step:  step,
		Width: width,
	}
	s.clamp()
	return s
}

// Update handles arrow keys when the slider is focused. The returned bool
// reports whether the value changed.
func (s Slider) Update(msg tea.Msg) (Slider, bool) {
	if !s.Focused {
		return s, false
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, false
	}

	prev := s.Value
	switch kmsg.String() {
	case "left", "h":
		s.Value -= s.Step
	case "right", "l":
		s.Value += s.Step
	case "home":
		s.Value = s.Min
	case "end":
		s.Value = s.Max
	default:
		return s, false
	}
	s.clamp()
	return s, s.Value != prev
}

func (s *Slider) clamp() {
	if s.Value < s.Min {
		s.Value = s.Min
	}
	if s.Value > s.Max {
		s.Value = s.Max
	}
}

// View renders the label, track, and current value on one line.
func (s Slider) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.Text)
	valueStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	fillStyle := theme.BarFilled
	if s.Focused {
		labelStyle = labelStyle.Foreground(theme.Primary).Bold(true)
		valueStyle = valueStyle.Foreground(theme.Text).Bold(true)
		fillStyle = lipgloss.NewStyle().Background(theme.Primary)
	}

	label := labelStyle.Render(s.Label) + "  "
	value := valueStyle.Render(fmt.Sprintf(" %g", s.Value))

	trackWidth := s.Width - lipgloss.Width(label) - lipgloss.Width(value)
	if trackWidth < 4 {
		trackWidth = 4
	}

	ratio := 0.0
	if s.Max > s.Min {
		ratio = (s.Value - s.Min) / (s.Max - s.Min)
	}
	filled := int(float64(trackWidth) * ratio)
	if filled > trackWidth {
		filled = trackWidth
	}
	if filled < 0 {
		filled = 0
	}

	track := fillStyle.Render(strings.Repeat(" ", filled)) +
		theme.BarEmpty.Render(strings.Repeat(" ", trackWidth-filled))

	return label + track + value
}
