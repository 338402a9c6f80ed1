// Package screen defines the contract between the router and the screens
// it hosts.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edurisk/internal/ui/layout"
)

// Screen is one page of the application.
type Screen interface {
	Init() tea.Cmd

	// Update returns the screen to keep on the stack, usually the receiver.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body only; the app draws header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider fills the right side of the header, e.g. "Step 2 of 4".
type StatusProvider interface {
	Status() string
}

// Closer is called when the screen leaves the stack. Screens use it to
// cancel in-flight work.
type Closer interface {
	Close()
}
