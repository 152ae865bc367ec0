// Package panels renders the fixed bars around the console log.
package panels

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// DefaultTitle is shown when no title is configured.
const DefaultTitle = "Console"

// HeaderProps holds all data needed to render the header bar.
type HeaderProps struct {
	Title       string
	Target      string // executor URL or shell working dir
	Pending     int    // in-flight executions
	Submitted   int    // commands accepted this session
	Entries     int
	MaxEntries  int
	Timestamps  bool
	LastElapsed time.Duration // duration of the most recent execution
	Clock       time.Time
}

// AbbreviatePath returns a display-friendly path, replacing the home directory
// with "~" and converting backslashes to forward slashes.
func AbbreviatePath(path string) string {
	if path == "" {
		return ""
	}
	if home, err := os.UserHomeDir(); err == nil && strings.HasPrefix(path, home) {
		path = "~" + path[len(home):]
	}
	return strings.ReplaceAll(path, "\\", "/")
}

// FormatElapsed renders a duration as a compact string: "350ms", "5s",
// "2m30s", "1h15m".
func FormatElapsed(d time.Duration) string {
	if d > 0 && d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// RenderHeader renders the header bar. accentStyle is applied to the full
// header bar width; content that does not fit is truncated.
func RenderHeader(props HeaderProps, width int, accentStyle lipgloss.Style) string {
	title := DefaultTitle
	if props.Title != "" {
		title = props.Title
	}

	parts := []string{"❯ " + title}
	if props.Target != "" {
		parts = append(parts, "exec: "+AbbreviatePath(props.Target))
	}

	if props.Pending > 0 {
		parts = append(parts, fmt.Sprintf("● %d running", props.Pending))
	} else {
		parts = append(parts, "✓ ready")
	}

	if props.Submitted > 0 {
		parts = append(parts, fmt.Sprintf("sent: %d", props.Submitted))
	}
	if props.MaxEntries > 0 {
		parts = append(parts, fmt.Sprintf("msgs: %d/%d", props.Entries, props.MaxEntries))
	}
	if props.LastElapsed > 0 {
		parts = append(parts, "last: "+FormatElapsed(props.LastElapsed))
	}
	if props.Timestamps {
		parts = append(parts, "ts")
	}
	if !props.Clock.IsZero() {
		parts = append(parts, props.Clock.Format("15:04"))
	}

	content := strings.Join(parts, "  │  ")
	if width > 0 && runewidth.StringWidth(content) > width {
		content = runewidth.Truncate(content, width, "…")
	}
	return accentStyle.Width(width).Render(content)
}
