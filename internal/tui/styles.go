// Package tui provides the bubbletea + lipgloss terminal UI for the console:
// a scrolling message log above a single-line command input.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/LISSTech.Console/internal/msglog"
)

// defaultAccentColor is the default accent color (indigo).
const defaultAccentColor = "#7D56F4"

// Color palette.
var (
	colorWhite  = lipgloss.Color("#FAFAFA")
	colorGray   = lipgloss.Color("#888888")
	colorBlue   = lipgloss.Color("#5B9BD5")
	colorGreen  = lipgloss.Color("#6BCB77")
	colorYellow = lipgloss.Color("#FFD93D")
	colorRed    = lipgloss.Color("#FF6B6B")
)

// Styles used across the TUI. Accent-dependent styles (header, borders,
// selection) live on Theme and are computed from the configured accent.
var (
	timestampStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	outputStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	systemStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	commandStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	detailRuleStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	copyStyle = lipgloss.NewStyle().
			Foreground(colorBlue)

	copiedStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)
)

// entryStyle returns the lipgloss style for an entry class.
func entryStyle(s msglog.Style) lipgloss.Style {
	switch s {
	case msglog.StyleSystem:
		return systemStyle
	case msglog.StyleError:
		return errorStyle
	case msglog.StyleCommand:
		return commandStyle
	default:
		return outputStyle
	}
}
