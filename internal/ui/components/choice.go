package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edurisk/internal/ui/theme"
)

// Choice is one selectable entry in a ChoiceList or Checklist.
type Choice struct {
	Value       string
	Label       string
	Description string
}

// ChoiceList is a single-select list. Nothing is chosen until the user
// picks an entry, so an untouched list reads as unset.
type ChoiceList struct {
	Prompt  string
	Options []Choice
	Cursor  int
	Focused bool
	chosen  int
}

// NewChoiceList creates a list with nothing chosen.
func NewChoiceList(prompt string, options []Choice) ChoiceList {
	return ChoiceList{Prompt: prompt, Options: options, chosen: -1}
}

// Update moves the cursor and chooses the entry under it on space or enter.
// The second return value reports whether the chosen value changed.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || !c.Focused {
		return c, false
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "space", "enter":
		if c.Cursor < len(c.Options) && c.chosen != c.Cursor {
			c.chosen = c.Cursor
			return c, true
		}
	}
	return c, false
}

// Value returns the chosen value, or "" when nothing is chosen.
func (c ChoiceList) Value() string {
	if c.chosen < 0 || c.chosen >= len(c.Options) {
		return ""
	}
	return c.Options[c.chosen].Value
}

// SetValue chooses the entry with the given value. An unknown value clears
// the choice.
func (c *ChoiceList) SetValue(v string) {
	c.chosen = -1
	for i, o := range c.Options {
		if o.Value == v {
			c.chosen = i
			c.Cursor = i
			return
		}
	}
}

// View renders the list.
func (c ChoiceList) View() string {
	var b strings.Builder
	b.WriteString(promptStyle(c.Focused).Render(c.Prompt) + "\n")
	for i, o := range c.Options {
		mark := "( )"
		if i == c.chosen {
			mark = "(•)"
		}
		b.WriteString(optionLine(mark, o, c.Focused && i == c.Cursor, i == c.chosen) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Checklist is a multi-select list.
type Checklist struct {
	Prompt  string
	Options []Choice
	Cursor  int
	Focused bool
	checked map[string]bool
}

// NewChecklist creates a checklist with nothing checked.
func NewChecklist(prompt string, options []Choice) Checklist {
	return Checklist{Prompt: prompt, Options: options, checked: map[string]bool{}}
}

// Update moves the cursor and toggles the entry under it on space. It
// returns the toggled value, or "" when nothing was toggled.
func (c Checklist) Update(msg tea.Msg) (Checklist, string) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || !c.Focused {
		return c, ""
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "space":
		if c.Cursor < len(c.Options) {
			v := c.Options[c.Cursor].Value
			checked := make(map[string]bool, len(c.checked)+1)
			for k, on := range c.checked {
				checked[k] = on
			}
			checked[v] = !checked[v]
			c.checked = checked
			return c, v
		}
	}
	return c, ""
}

// Checked reports whether value is checked.
func (c Checklist) Checked(value string) bool {
	return c.checked[value]
}

// SetChecked replaces the checked set.
func (c *Checklist) SetChecked(values []string) {
	c.checked = make(map[string]bool, len(values))
	for _, v := range values {
		c.checked[v] = true
	}
}

// View renders the checklist.
func (c Checklist) View() string {
	var b strings.Builder
	b.WriteString(promptStyle(c.Focused).Render(c.Prompt) + "\n")
	for i, o := range c.Options {
		mark := "[ ]"
		if c.checked[o.Value] {
			mark = "[x]"
		}
		b.WriteString(optionLine(mark, o, c.Focused && i == c.Cursor, c.checked[o.Value]) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func promptStyle(focused bool) lipgloss.Style {
	if focused {
		return theme.Label.Foreground(theme.Primary)
	}
	return theme.Label
}

func optionLine(mark string, o Choice, atCursor, on bool) string {
	prefix := "  "
	if atCursor {
		prefix = "▸ "
	}
	line := prefix + mark + " " + o.Label
	style := theme.Unselected
	switch {
	case atCursor:
		style = theme.Selected
	case on:
		style = lipgloss.NewStyle().Foreground(theme.Secondary)
	}
	out := style.Render(line)
	if o.Description != "" {
		out += " " + theme.Hint.Render(o.Description)
	}
	return out
}
