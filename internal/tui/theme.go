package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/LISSConsulting/LISSTech.Console/internal/msglog"
)

// gutterWidth is the column reserved left of every entry for the
// selection marker.
const gutterWidth = 2

// Theme holds accent-color-derived styles for the console TUI.
type Theme struct {
	accentStyle     lipgloss.Style // header background
	selectStyle     lipgloss.Style // selection marker and disclosure toggle
	borderFocused   lipgloss.Style // focused panel border
	borderUnfocused lipgloss.Style // unfocused panel border
}

// NewTheme creates a Theme from a hex accent color string (e.g. "#7D56F4").
// If accentColor is empty, the default accent color is used.
func NewTheme(accentColor string) Theme {
	color := defaultAccentColor
	if accentColor != "" {
		color = accentColor
	}
	c := lipgloss.Color(color)
	return Theme{
		accentStyle: lipgloss.NewStyle().
			Background(c).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true),
		selectStyle: lipgloss.NewStyle().
			Foreground(c).
			Bold(true),
		borderFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c),
		borderUnfocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray),
	}
}

// AccentHeaderStyle returns the style for the header bar.
func (t Theme) AccentHeaderStyle() lipgloss.Style {
	return t.accentStyle
}

// PanelBorderStyle returns the appropriate border style for a panel based on
// whether it currently holds keyboard focus.
func (t Theme) PanelBorderStyle(focused bool) lipgloss.Style {
	if focused {
		return t.borderFocused
	}
	return t.borderUnfocused
}

// RenderEntry renders one log entry as a block of terminal lines, width
// columns wide. Plain content is wrapped and styled by its class;
// pre-rendered content is used as-is. A disclosure toggle, the detail pane
// (when disclosed), and numbered copy buttons follow the content.
func (t Theme) RenderEntry(e msglog.Entry, width int, selected bool) string {
	bodyW := width - gutterWidth
	if bodyW < 10 {
		bodyW = 10
	}

	var lines []string
	prefix := ""
	if e.Timestamp != "" {
		prefix = timestampStyle.Render("["+e.Timestamp+"]") + " "
	}

	if e.PreRendered {
		if prefix != "" {
			lines = append(lines, strings.TrimRight(prefix, " "))
		}
		lines = append(lines, strings.Split(e.Content, "\n")...)
	} else {
		contentW := bodyW - xansi.StringWidth(prefix)
		style := entryStyle(e.Style)
		for i, l := range wrapLines(e.Content, contentW) {
			l = style.Render(l)
			if i == 0 {
				l = prefix + l
			} else if prefix != "" {
				l = strings.Repeat(" ", xansi.StringWidth(prefix)) + l
			}
			lines = append(lines, l)
		}
	}

	if e.HasDetail() {
		if e.Disclosed {
			lines = append(lines, t.selectStyle.Render("▾ hide details"))
			rule := detailRuleStyle.Render("│ ")
			detail := strings.Split(e.Detail, "\n")
			if !e.PreRendered {
				detail = wrapLines(e.Detail, bodyW-2)
			}
			for _, l := range detail {
				lines = append(lines, rule+l)
			}
		} else {
			lines = append(lines, t.selectStyle.Render("▸ show details"))
		}
	}

	if len(e.Copies) > 0 {
		lines = append(lines, renderCopies(e.Copies))
	}

	gutter := strings.Repeat(" ", gutterWidth)
	if selected {
		gutter = t.selectStyle.Render("▌ ")
	}
	for i := range lines {
		lines[i] = gutter + lines[i]
	}
	return strings.Join(lines, "\n")
}

// renderCopies renders the copy buttons of an entry on one line.
func renderCopies(copies []msglog.CopyTarget) string {
	parts := make([]string, 0, len(copies))
	for i, c := range copies {
		key := "·"
		if i < 9 {
			key = fmt.Sprintf("%d", i+1)
		}
		if c.Copied {
			parts = append(parts, copiedStyle.Render(fmt.Sprintf("[%s] ✓ copied", key)))
			continue
		}
		parts = append(parts, copyStyle.Render(fmt.Sprintf("[%s] copy %s", key, c.Label)))
	}
	return strings.Join(parts, "  ")
}

// wrapLines splits s on newlines and wraps each line to width columns.
func wrapLines(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	wrapped := xansi.Wrap(s, width, "")
	return strings.Split(wrapped, "\n")
}
