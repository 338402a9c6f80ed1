package app

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edurisk/internal/assessment"
	"github.com/abhisek/edurisk/internal/router"
)

type stubPredictor struct{}

func (stubPredictor) Predict(context.Context, assessment.Payload) (json.RawMessage, error) {
	return json.RawMessage(`{"risk":"Low"}`), nil
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return am, cmd
}

func TestAppModel_StartsOnHome(t *testing.T) {
	m := newAppModel(Options{Predictor: stubPredictor{}})
	if m.router.Active().Title() != "Home" {
		t.Errorf("active = %q, want Home", m.router.Active().Title())
	}
}

func TestAppModel_StartAssessmentAndBack(t *testing.T) {
	m := newAppModel(Options{Predictor: stubPredictor{}})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m, cmd := update(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected push command")
	}
	m, _ = update(t, m, cmd())
	if m.router.Depth() != 2 || m.router.Active().Title() != "Student Assessment" {
		t.Fatalf("expected wizard on top, got %q depth %d", m.router.Active().Title(), m.router.Depth())
	}

	content := m.render()
	if !strings.Contains(content, "Step 1 of 4") {
		t.Error("expected step counter in frame")
	}

	m, cmd = update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command on esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("expected PopScreenMsg")
	}
	m, _ = update(t, m, cmd())
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1", m.router.Depth())
	}
}

func TestAppModel_TooSmall(t *testing.T) {
	m := newAppModel(Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(m.render(), "Terminal too small") {
		t.Error("expected min size message")
	}
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := newAppModel(Options{})
	_, cmd := update(t, m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}
