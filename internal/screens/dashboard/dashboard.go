package dashboard

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/markbook/internal/analysis"
	"github.com/abhisek/markbook/internal/classify"
	"github.com/abhisek/markbook/internal/router"
	"github.com/abhisek/markbook/internal/screen"
	"github.com/abhisek/markbook/internal/screens/predictor"
	"github.com/abhisek/markbook/internal/ui/components"
	"github.com/abhisek/markbook/internal/ui/layout"
)

const (
	sliderWidth = 58
	scrollPage  = 10
)

// DashboardScreen shows the classified dataset: threshold sliders, the
// annotated table, the total-marks histogram, and the pass/fail chart.
// Moving a slider reclassifies the whole table on the spot.
type DashboardScreen struct {
	session   *analysis.Session
	indSlider components.Slider
	ovrSlider components.Slider
	focusOvr  bool
	rowOffset int
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)
var _ screen.DatasetInfoProvider = (*DashboardScreen)(nil)

// New creates a dashboard over an analyzed session.
func New(session *analysis.Session) *DashboardScreen {
	indLabel := "Individual Subject Pass Threshold"
	ovrLabel := "Overall Total Pass Threshold"
	// Equal-width labels keep the two tracks aligned.
	width := len(indLabel)
	ovrLabel = fmt.Sprintf("%-*s", width, ovrLabel)

	th := session.Thresholds
	s := &DashboardScreen{
		session:   session,
		indSlider: components.NewSlider(indLabel, th.Individual, classify.MinIndividual, classify.MaxIndividual, 1, sliderWidth),
		ovrSlider: components.NewSlider(ovrLabel, th.Overall, classify.MinOverall, classify.MaxOverall, classify.StepOverall, sliderWidth),
	}
	s.indSlider.Focused = true
	return s
}

func (s *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Switch slider"},
		{Key: "←→", Description: "Adjust"},
	}
	if s.session.Err == nil {
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Scroll"},
			layout.KeyHint{Key: "P", Description: "Predict"},
		)
	}
	return append(hints,
		layout.KeyHint{Key: "Esc", Description: "Back"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
}

// DatasetInfo feeds the header bar.
func (s *DashboardScreen) DatasetInfo() (string, int) {
	return s.session.Source, s.session.Table.Len()
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "shift+tab":
			s.focusOvr = !s.focusOvr
			s.indSlider.Focused = !s.focusOvr
			s.ovrSlider.Focused = s.focusOvr
			return s, nil
		case "up", "k":
			s.rowOffset--
			return s, nil
		case "down", "j":
			s.rowOffset++
			return s, nil
		case "pgup":
			s.rowOffset -= scrollPage
			return s, nil
		case "pgdown":
			s.rowOffset += scrollPage
			return s, nil
		case "p":
			if s.session.Err != nil {
				return s, nil
			}
			next := predictor.New(s.session)
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: next}
			}
		}
	}

	var changed bool
	if s.focusOvr {
		s.ovrSlider, changed = s.ovrSlider.Update(msg)
	} else {
		s.indSlider, changed = s.indSlider.Update(msg)
	}
	if changed {
		s.session.SetThresholds(classify.Thresholds{
			Individual: s.indSlider.Value,
			Overall:    s.ovrSlider.Value,
		})
	}
	return s, nil
}
