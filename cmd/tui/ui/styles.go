package ui

import (
	"github.com/charmbracelet/lipgloss"
)

const viewWidth = 80

var (
	Primary   = lipgloss.Color("#2E9E6B")
	Secondary = lipgloss.Color("#7FC8A9")
	Accent    = lipgloss.Color("#F2A541")
	Success   = lipgloss.Color("#4CD38A")
	Error     = lipgloss.Color("#E5536B")
	Muted     = lipgloss.Color("#7A8691")
	Text      = lipgloss.Color("#EEF5F0")
	BgDark    = lipgloss.Color("#10201A")

	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Padding(0, 1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2).
			MarginTop(1)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true).
				PaddingLeft(2)

	ItemStyle = lipgloss.NewStyle().
			Foreground(Text).
			PaddingLeft(2)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	InputStyle = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.NormalBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				Foreground(Text).
				Border(lipgloss.NormalBorder()).
				BorderForeground(Accent).
				Padding(0, 1)

	AmountStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Width(15)
)

func center(s string) string {
	return lipgloss.NewStyle().Width(viewWidth).Align(lipgloss.Center).Render(s)
}
