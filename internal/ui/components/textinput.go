package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edurisk/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label and optional numeric
// filtering.
type TextInput struct {
	Label       string
	Model       textinput.Model
	NumericOnly bool
}

// NewTextInput creates a new blurred text input.
func NewTextInput(label, placeholder string, numericOnly bool, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return TextInput{
		Label:       label,
		Model:       ti,
		NumericOnly: numericOnly,
	}
}

// Focus focuses the input and returns the cursor blink command.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update handles messages. With NumericOnly set, printable keys other than
// digits and a single decimal point are dropped.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.NumericOnly {
		if kmsg, ok := msg.(tea.KeyPressMsg); ok && !t.acceptsNumeric(kmsg.Text) {
			return t, nil
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) acceptsNumeric(text string) bool {
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
		case r == '.':
			if strings.ContainsRune(t.Model.Value(), '.') || strings.Count(text, ".") > 1 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// View renders the label and the input.
func (t TextInput) View() string {
	label := theme.Label.Render(t.Label)
	if t.Focused() {
		label = theme.Label.Foreground(theme.Primary).Render(t.Label)
	}
	return label + "\n" + t.Model.View()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the current input value.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
}
