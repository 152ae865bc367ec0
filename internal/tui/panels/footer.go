package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

// FooterProps holds all data needed to render the footer bar.
type FooterProps struct {
	Focus         string // "input", "log"
	Searching     bool
	Query         string // reverse search query
	Match         string // current reverse search match
	Following     bool
	ScrollPercent float64
	Notice        string // transient status, e.g. a clipboard failure
}

// RenderFooter renders the context-sensitive footer bar.
// Left side: search prompt, notice, or scroll position. Right side:
// keybinding hints for the current focus + global.
func RenderFooter(props FooterProps, width int) string {
	var left, right string
	switch {
	case props.Searching:
		left = fmt.Sprintf("(reverse-i-search)`%s': %s", props.Query, props.Match)
		right = "enter:accept  ctrl+r:older  esc:cancel"
	default:
		switch {
		case props.Notice != "":
			left = props.Notice
		case props.Following:
			left = "follow"
		default:
			left = fmt.Sprintf("↑ %d%%", int(props.ScrollPercent*100))
		}
		right = panelHints(props.Focus) + "  tab:focus  ctrl+l:clear  ctrl+c:quit"
	}

	gap := width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if gap < 2 {
		gap = 2
	}
	line := left + strings.Repeat(" ", gap) + right
	if width > 0 && runewidth.StringWidth(line) > width {
		line = runewidth.Truncate(line, width, "…")
	}
	return footerStyle.Width(width).Render(line)
}

// panelHints returns the context-sensitive keybinding hints for a given focus.
func panelHints(focus string) string {
	switch focus {
	case "input":
		return "enter:run  ↑/↓:history  ctrl+r:search"
	case "log":
		return "j/k:select  enter:details  1-9:copy  f:follow  i:input"
	default:
		return ""
	}
}
