package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/LISSTech.Console/internal/tui/panels"
)

// View renders the console: header bar, log panel, input panel, footer bar.
func (m Model) View() string {
	if m.layout.TooSmall {
		msg := fmt.Sprintf("Terminal too small (%dx%d).\nPlease resize to at least %dx%d.", m.width, m.height, minWidth, minHeight)
		return lipgloss.NewStyle().
			Width(m.width).
			Align(lipgloss.Center).
			Render(msg)
	}

	log := m.console.Log()
	header := panels.RenderHeader(panels.HeaderProps{
		Title:       m.title,
		Target:      m.target,
		Pending:     m.pending,
		Submitted:   m.console.Submitted(),
		Entries:     log.Len(),
		MaxEntries:  log.Max(),
		Timestamps:  m.console.Settings().Timestamps,
		LastElapsed: m.lastElapsed,
		Clock:       m.now,
	}, m.layout.Header.Width, m.theme.AccentHeaderStyle())

	footer := panels.RenderFooter(panels.FooterProps{
		Focus:         m.focus.String(),
		Searching:     m.search.active,
		Query:         m.search.query,
		Match:         m.search.current(),
		Following:     m.logView.Following(),
		ScrollPercent: m.logView.ScrollPercent(),
		Notice:        m.notice,
	}, m.layout.Footer.Width)

	logW, logH := innerDims(m.layout.Log)
	inputW, inputH := innerDims(m.layout.Input)

	logPanel := m.theme.PanelBorderStyle(m.focus == FocusLog).
		Width(logW).Height(logH).
		Render(m.logView.View())
	inputPanel := m.theme.PanelBorderStyle(m.focus == FocusInput).
		Width(inputW).Height(inputH).
		Render(m.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, header, logPanel, inputPanel, footer)
}
