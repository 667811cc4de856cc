package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/markbook/internal/ui/theme"
)

// BarItem is one horizontal bar: a label, a count, and a bar color.
type BarItem struct {
	Label string
	Count int
	Color color.Color
}

// BarChart renders labeled horizontal bars scaled to the largest count.
type BarChart struct {
	Items []BarItem
	Width int
}

// NewBarChart creates a bar chart sized to width.
func NewBarChart(items []BarItem, width int) BarChart {
	return BarChart{Items: items, Width: width}
}

// View renders one line per item: label, bar, count.
func (c BarChart) View() string {
	if len(c.Items) == 0 {
		return ""
	}

	labelWidth := 0
	max := 0
	for _, item := range c.Items {
		if w := lipgloss.Width(item.Label); w > labelWidth {
			labelWidth = w
		}
		if item.Count > max {
			max = item.Count
		}
	}

	countWidth := len(fmt.Sprintf(" %d", max))
	barWidth := c.Width - labelWidth - countWidth - 2
	if barWidth < 4 {
		barWidth = 4
	}

	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Width(labelWidth)
	countStyle := lipgloss.NewStyle().Foreground(theme.Text)

	var b strings.Builder
	for i, item := range c.Items {
		filled := 0
		if max > 0 {
			filled = item.Count * barWidth / max
		}
		if filled == 0 && item.Count > 0 {
			filled = 1
		}

		barColor := item.Color
		if barColor == nil {
			barColor = theme.Secondary
		}
		bar := lipgloss.NewStyle().
			Background(barColor).
			Render(strings.Repeat(" ", filled))

		b.WriteString(labelStyle.Render(item.Label))
		b.WriteString("  ")
		b.WriteString(bar)
		b.WriteString(countStyle.Render(fmt.Sprintf(" %d", item.Count)))
		if i < len(c.Items)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
