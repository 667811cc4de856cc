package picker

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/markbook/internal/analysis"
	"github.com/abhisek/markbook/internal/dataset"
	"github.com/abhisek/markbook/internal/router"
	"github.com/abhisek/markbook/internal/screen"
	"github.com/abhisek/markbook/internal/screens/dashboard"
	"github.com/abhisek/markbook/internal/ui/components"
	"github.com/abhisek/markbook/internal/ui/layout"
	"github.com/abhisek/markbook/internal/ui/theme"
)

type tableLoadedMsg struct {
	Source string
	Table  *dataset.Table
	Err    error
}

// PickerScreen prompts for a dataset file and loads it.
type PickerScreen struct {
	cache   *dataset.Cache
	input   components.TextInput
	loading bool
	errMsg  string
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

// New creates a PickerScreen. A non-empty initialPath is loaded
// immediately, so launching with a file argument skips straight to the
// dashboard when the file is good.
func New(cache *dataset.Cache, initialPath string) *PickerScreen {
	input := components.NewTextInput("path to marks .csv or .xlsx", false, 0)
	if initialPath != "" {
		input.Model.SetValue(initialPath)
	}
	return &PickerScreen{cache: cache, input: input}
}

func (s *PickerScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.input.Init()}
	if path := strings.TrimSpace(s.input.Value()); path != "" {
		s.loading = true
		cmds = append(cmds, s.load(path))
	}
	return tea.Batch(cmds...)
}

func (s *PickerScreen) Title() string {
	return "Load Dataset"
}

func (s *PickerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Load"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// load reads and parses the file off the UI loop.
func (s *PickerScreen) load(path string) tea.Cmd {
	return func() tea.Msg {
		table, err := s.cache.LoadFile(path)
		return tableLoadedMsg{Source: filepath.Base(path), Table: table, Err: err}
	}
}

func (s *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tableLoadedMsg:
		s.loading = false
		if msg.Err != nil {
			s.errMsg = friendlyError(msg.Err)
			return s, nil
		}
		s.errMsg = ""
		next := dashboard.New(analysis.NewSession(msg.Source, msg.Table))
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: next}
		}

	case tea.KeyMsg:
		if s.loading {
			return s, nil
		}
		if msg.String() == "enter" {
			path := strings.TrimSpace(s.input.Value())
			if path == "" {
				return s, nil
			}
			s.loading = true
			s.errMsg = ""
			return s, s.load(path)
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *PickerScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("Load a dataset"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("CSV or Excel, a header row plus one row per student"))
	b.WriteString("\n\n")

	inputWidth := min(width-8, 56)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Width(inputWidth).
		Render(s.input.View())
	b.WriteString(box)

	switch {
	case s.loading:
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Loading..."))
	case s.errMsg != "":
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Error).
			Width(inputWidth).
			Render(s.errMsg))
	default:
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Enter to load"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

// friendlyError turns loader errors into a short, actionable message.
func friendlyError(err error) string {
	switch {
	case errors.Is(err, dataset.ErrNotFound):
		return "File not found or unreadable. Check the path and try again."
	case errors.Is(err, dataset.ErrMalformed):
		return fmt.Sprintf("Could not parse the file: %v", err)
	default:
		return err.Error()
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
