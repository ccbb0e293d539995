package tui

import "github.com/charmbracelet/lipgloss"

// Colors.
const (
	colorAccent = lipgloss.Color("#58a6ff")
	colorMuted  = lipgloss.Color("#8b949e")
	colorGood   = lipgloss.Color("#3fb950")
	colorBad    = lipgloss.Color("#f85149")
	colorStar   = lipgloss.Color("#d29922")
)

var ( //nolint:gochecknoglobals // immutable styles
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	cursorStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	checkedStyle  = lipgloss.NewStyle().Foreground(colorGood)
	okStyle       = lipgloss.NewStyle().Foreground(colorGood)
	errStyle      = lipgloss.NewStyle().Foreground(colorBad)
	starStyle     = lipgloss.NewStyle().Foreground(colorStar)
	choiceStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(1, 3).Width(28).Align(lipgloss.Center)
	versusStyle   = lipgloss.NewStyle().Foreground(colorMuted).Padding(2, 2)
	progressStyle = lipgloss.NewStyle().Foreground(colorAccent)
)
