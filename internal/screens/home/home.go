package home

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edurisk/internal/predictor"
	"github.com/abhisek/edurisk/internal/router"
	"github.com/abhisek/edurisk/internal/screen"
	"github.com/abhisek/edurisk/internal/ui/components"
	"github.com/abhisek/edurisk/internal/ui/layout"
)

// healthTimeout bounds the service check started from the menu.
const healthTimeout = 5 * time.Second

// HealthChecker reports the prediction service status.
type HealthChecker interface {
	Health(ctx context.Context) (predictor.Health, error)
}

// healthMsg carries the outcome of a service check.
type healthMsg struct {
	Health predictor.Health
	Err    error
}

// HomeScreen is the landing screen of the application.
type HomeScreen struct {
	menu     components.Menu
	health   HealthChecker
	checking bool
	status   *healthMsg
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen. newWizard starts an assessment; health may
// be nil, in which case the service check item is omitted.
func New(newWizard func() screen.Screen, health HealthChecker) *HomeScreen {
	h := &HomeScreen{health: health}

	items := []components.MenuItem{
		{Label: "START ASSESSMENT", Hint: "Answer four short sections about the student", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: newWizard()}
			}
		}},
	}
	if health != nil {
		items = append(items, components.MenuItem{Label: "CHECK SERVICE", Hint: "Ping the prediction service", Action: h.checkHealth})
	}
	items = append(items, components.MenuItem{Label: "EXIT", Action: func() tea.Cmd {
		return tea.Quit
	}})

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) checkHealth() tea.Cmd {
	if h.checking {
		return nil
	}
	h.checking = true
	h.status = nil
	checker := h.health
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
		defer cancel()
		hs, err := checker.Health(ctx)
		return healthMsg{Health: hs, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(healthMsg); ok {
		h.checking = false
		h.status = &m
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}
