package app

import (
	"context"
	"encoding/json"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/edurisk/internal/assessment"
	"github.com/abhisek/edurisk/internal/router"
	"github.com/abhisek/edurisk/internal/screen"
	"github.com/abhisek/edurisk/internal/screens/home"
	reportscreen "github.com/abhisek/edurisk/internal/screens/report"
	"github.com/abhisek/edurisk/internal/screens/wizard"
	"github.com/abhisek/edurisk/internal/ui/layout"
)

// Options holds dependencies for the TUI.
type Options struct {
	Predictor assessment.Predictor
	Health    home.HealthChecker // optional
	Logger    *zap.Logger        // optional
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var newWizard func() screen.Screen
	newReport := func(raw json.RawMessage) screen.Screen {
		return reportscreen.New(raw, newWizard)
	}
	newWizard = func() screen.Screen {
		return wizard.New(opts.Predictor, newReport, logger)
	}

	return AppModel{
		router: router.New(home.New(newWizard, opts.Health)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.Close()
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the active screen inside the application chrome.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	chrome := layout.Chrome{
		Hints: []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		},
	}
	if active := m.router.Active(); active != nil {
		chrome.Title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			chrome.Status = sp.Status()
		}
		if hp, ok := active.(screen.KeyHintProvider); ok {
			chrome.Hints = hp.KeyHints()
		}
	}
	return chrome.Render(m.width, m.height, m.router.View)
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	model := newAppModel(opts)
	p := tea.NewProgram(model, tea.WithContext(ctx))
	_, err := p.Run()
	model.router.Close()
	if err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
