package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type field struct {
	label  string
	hint   string
	value  string
	masked bool
}

// form is a column of text fields with one focused at a time.
type form struct {
	fields  []field
	focused int
}

func newForm(fields ...field) form {
	return form{fields: fields}
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.fields[i].value)
}

func (f *form) clear() {
	for i := range f.fields {
		f.fields[i].value = ""
	}
	f.focused = 0
}

// handleKey applies editing keys and reports whether the key was consumed.
func (f *form) handleKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		f.focused = (f.focused + 1) % len(f.fields)
	case tea.KeyShiftTab, tea.KeyUp:
		f.focused = (f.focused + len(f.fields) - 1) % len(f.fields)
	case tea.KeyBackspace:
		v := []rune(f.fields[f.focused].value)
		if len(v) > 0 {
			f.fields[f.focused].value = string(v[:len(v)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		f.fields[f.focused].value += string(msg.Runes)
	default:
		return false
	}
	return true
}

func (f *form) View() string {
	var b strings.Builder

	for i, fl := range f.fields {
		style := InputStyle
		if i == f.focused {
			style = FocusedInputStyle
		}

		shown := fl.value
		if fl.masked {
			shown = strings.Repeat("•", len([]rune(fl.value)))
		}

		row := lipgloss.JoinHorizontal(lipgloss.Left,
			LabelStyle.Render(fl.label+":"),
			style.Width(45).Render(shown),
			InfoStyle.Render(fl.hint),
		)
		b.WriteString(center(row))
		b.WriteString("\n\n")
	}

	return b.String()
}
