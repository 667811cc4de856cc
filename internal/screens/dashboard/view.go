package dashboard

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/markbook/internal/classify"
	"github.com/abhisek/markbook/internal/stats"
	"github.com/abhisek/markbook/internal/ui/components"
	"github.com/abhisek/markbook/internal/ui/theme"
)

var sectionStyle = lipgloss.NewStyle().
	Foreground(theme.Secondary).
	Bold(true)

func (s *DashboardScreen) View(width, height int) string {
	controls := s.renderControls()

	if s.session.Err != nil {
		rest := height - lipgloss.Height(controls) - 1
		return controls + "\n\n" + s.renderNoSubjects(width, rest)
	}

	charts := s.renderCharts(width)
	summary := s.renderSummary(width)

	used := lipgloss.Height(controls) + lipgloss.Height(charts) + lipgloss.Height(summary) + 3
	table := s.renderTable(width, height-used)

	var b strings.Builder
	b.WriteString(controls)
	b.WriteString("\n\n")
	b.WriteString(table)
	b.WriteString("\n")
	b.WriteString(charts)
	b.WriteString("\n")
	b.WriteString(summary)
	return b.String()
}

// renderControls draws the two threshold sliders and the active pass rule.
func (s *DashboardScreen) renderControls() string {
	th := s.session.Thresholds
	rule := theme.Hint.Render(fmt.Sprintf("Pass: every subject ≥ %g and total ≥ %g", th.Individual, th.Overall))
	return "  " + s.indSlider.View() + "\n" +
		"  " + s.ovrSlider.View() + "\n" +
		"  " + rule
}

// renderTable draws the annotated results table, scrolled to rowOffset.
func (s *DashboardScreen) renderTable(width, height int) string {
	res := s.session.Result
	th := s.session.Thresholds

	visible := height - 2 // section title + column header
	if visible < 1 {
		visible = 1
	}

	maxOffset := len(res.Rows) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.rowOffset > maxOffset {
		s.rowOffset = maxOffset
	}
	if s.rowOffset < 0 {
		s.rowOffset = 0
	}
	end := s.rowOffset + visible
	if end > len(res.Rows) {
		end = len(res.Rows)
	}

	title := "Final Results Overview"
	if len(res.Rows) > visible {
		title = fmt.Sprintf("%s  (rows %d-%d of %d)", title, s.rowOffset+1, end, len(res.Rows))
	}

	nameW, subW, totalW := s.columnWidths()
	subjects := res.Subjects

	headerCells := make([]string, 0, len(subjects)+5)
	if s.session.Table.HasName {
		headerCells = append(headerCells, fmt.Sprintf("%-*s", nameW, "Name"))
	}
	for i, sub := range subjects {
		headerCells = append(headerCells, fmt.Sprintf("%*s", subW[i], sub))
	}
	headerCells = append(headerCells,
		fmt.Sprintf("%*s", totalW, "Total"), "All Subj", "Overall", "Result")

	headerStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true)
	trunc := lipgloss.NewStyle().MaxWidth(width)

	var b strings.Builder
	b.WriteString(sectionStyle.Render("  " + title))
	b.WriteString("\n")
	b.WriteString(trunc.Render("  " + headerStyle.Render(strings.Join(headerCells, "  "))))
	b.WriteString("\n")

	if len(res.Rows) == 0 {
		b.WriteString(theme.Hint.Render("  (no student rows)"))
		return b.String()
	}

	body := lipgloss.NewStyle().Foreground(theme.Text)
	weak := lipgloss.NewStyle().Foreground(theme.Error)

	for n, r := range res.Rows[s.rowOffset:end] {
		cells := make([]string, 0, len(subjects)+5)
		if s.session.Table.HasName {
			name := r.Name
			if len(name) > nameW {
				name = name[:nameW-1] + "…"
			}
			cells = append(cells, body.Render(fmt.Sprintf("%-*s", nameW, name)))
		}
		for i, sub := range subjects {
			mark := fmt.Sprintf("%*s", subW[i], formatMark(r.Marks[sub]))
			if r.Marks[sub] < th.Individual {
				cells = append(cells, weak.Render(mark))
			} else {
				cells = append(cells, body.Render(mark))
			}
		}
		cells = append(cells, body.Render(fmt.Sprintf("%*s", totalW, formatMark(r.Total))))
		cells = append(cells, renderCheck(r.PassedAllSubjects, len("All Subj")))
		cells = append(cells, renderCheck(r.PassedOverall, len("Overall")))
		if r.FinalResult == classify.Pass {
			cells = append(cells, theme.Pass.Render("Pass"))
		} else {
			cells = append(cells, theme.Fail.Render("Fail"))
		}

		b.WriteString(trunc.Render("  " + strings.Join(cells, "  ")))
		if s.rowOffset+n+1 < end {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// columnWidths sizes the name, subject, and total columns to their widest
// content.
func (s *DashboardScreen) columnWidths() (nameW int, subW []int, totalW int) {
	res := s.session.Result

	if s.session.Table.HasName {
		nameW = len("Name")
		for _, r := range res.Rows {
			if n := len(r.Name); n > nameW {
				nameW = n
			}
		}
		if nameW > 16 {
			nameW = 16
		}
	}

	subW = make([]int, len(res.Subjects))
	for i, sub := range res.Subjects {
		subW[i] = len(sub)
		for _, r := range res.Rows {
			if n := len(formatMark(r.Marks[sub])); n > subW[i] {
				subW[i] = n
			}
		}
	}

	totalW = len("Total")
	for _, r := range res.Rows {
		if n := len(formatMark(r.Total)); n > totalW {
			totalW = n
		}
	}
	return nameW, subW, totalW
}

// renderCharts draws the totals histogram and the outcome counts side by side.
func (s *DashboardScreen) renderCharts(width int) string {
	res := s.session.Result
	half := (width - 8) / 2
	if half < 20 {
		half = 20
	}

	var hist string
	totals := res.Totals()
	if len(totals) == 0 {
		hist = theme.Hint.Render("(no data)")
	} else {
		bins := stats.Histogram(totals, stats.DefaultBins)
		items := make([]components.BarItem, len(bins))
		for i, bin := range bins {
			items[i] = components.BarItem{
				Label: fmt.Sprintf("%.0f-%.0f", bin.Lo, bin.Hi),
				Count: bin.Count,
				Color: theme.Secondary,
			}
		}
		hist = components.NewBarChart(items, half).View()
	}

	pass, fail := res.PassCount()
	outcome := components.NewBarChart([]components.BarItem{
		{Label: "Pass", Count: pass, Color: theme.Success},
		{Label: "Fail", Count: fail, Color: theme.Error},
	}, half).View()

	left := sectionStyle.Render("Distribution of Total Marks") + "\n" + hist
	right := sectionStyle.Render("Final Pass vs Fail Count") + "\n" + outcome

	joined := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(half+4).Render(left),
		lipgloss.NewStyle().Width(half).Render(right),
	)
	return lipgloss.NewStyle().MarginLeft(2).Render(joined)
}

// renderSummary draws the raw-data summary and the pass-rate bar.
func (s *DashboardScreen) renderSummary(width int) string {
	res := s.session.Result
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	trunc := lipgloss.NewStyle().MaxWidth(width)

	var b strings.Builder
	b.WriteString(sectionStyle.Render("  Raw Data Summary"))
	b.WriteString("\n")
	b.WriteString(trunc.Render("  " + dim.Render(fmt.Sprintf(
		"Total students analyzed: %d    Subject columns detected: %s",
		len(res.Rows), strings.Join(res.Subjects, ", ")))))

	if len(res.Rows) == 0 {
		return b.String()
	}

	totals := res.Totals()
	lo, hi := stats.MinMax(totals)
	b.WriteString("\n")
	b.WriteString(trunc.Render("  " + dim.Render(fmt.Sprintf(
		"Mean total: %.1f    Lowest: %s    Highest: %s",
		stats.Mean(totals), formatMark(lo), formatMark(hi)))))

	pass, _ := res.PassCount()
	rate := float64(pass) / float64(len(res.Rows))
	b.WriteString("\n  ")
	b.WriteString(components.NewProgressBar("Pass rate", rate, true, min(width-4, 48)).View())
	return b.String()
}

// renderNoSubjects draws the blocking analysis error; the raw rows stay
// visible for inspection.
func (s *DashboardScreen) renderNoSubjects(width, height int) string {
	table := s.session.Table

	var b strings.Builder
	b.WriteString("  " + theme.Fail.Render("No subject columns found after excluding 'Name'."))
	b.WriteString("\n")
	b.WriteString("  " + theme.Hint.Render("Add at least one numeric column and reload. Esc to choose another file."))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("  Raw Data"))
	b.WriteString("\n")

	headerStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true)
	b.WriteString("  " + headerStyle.Render(strings.Join(table.Columns, "  ")))

	limit := height - 5
	if limit < 1 {
		limit = 1
	}
	body := lipgloss.NewStyle().Foreground(theme.Text)
	for i, r := range table.Rows {
		if i >= limit {
			b.WriteString("\n")
			b.WriteString(theme.Hint.Render(fmt.Sprintf("  … %d more", len(table.Rows)-limit)))
			break
		}
		b.WriteString("\n")
		b.WriteString("  " + body.Render(r.Name))
	}
	return b.String()
}

// renderCheck pads a pass/fail glyph to the column width.
func renderCheck(ok bool, width int) string {
	if ok {
		return lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("%-*s", width, "✓"))
	}
	return lipgloss.NewStyle().Foreground(theme.Error).Render(fmt.Sprintf("%-*s", width, "✗"))
}

// formatMark prints a mark the shortest exact way (80, 87.5).
func formatMark(v float64) string {
	return fmt.Sprintf("%g", v)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
