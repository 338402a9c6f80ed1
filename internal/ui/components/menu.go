package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edurisk/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu.
type MenuItem struct {
	Label  string
	Hint   string
	Action func() tea.Cmd
}

// Menu is a vertical navigation menu. The cursor wraps at both ends.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a new menu with the first item selected.
func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k", "shift+tab":
		m.Selected = (m.Selected - 1 + len(m.Items)) % len(m.Items)
	case "down", "j", "tab":
		m.Selected = (m.Selected + 1) % len(m.Items)
	case "enter":
		if item := m.Items[m.Selected]; item.Action != nil {
			return m, item.Action()
		}
	}
	return m, nil
}

// View renders the menu as a column of buttons at the given width.
func (m Menu) View(width int) string {
	btn := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	lines := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		lines = append(lines, btn.Render(Button(item.Label, i == m.Selected, false)))
	}
	if m.Selected < len(m.Items) && m.Items[m.Selected].Hint != "" {
		lines = append(lines, "", btn.Render(theme.Hint.Render(m.Items[m.Selected].Hint)))
	}
	return strings.Join(lines, "\n")
}
