package panels

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

func TestRenderHeader_BasicFields(t *testing.T) {
	accent := lipgloss.NewStyle().Background(lipgloss.Color("#7D56F4"))
	now := time.Date(2026, 1, 1, 15, 30, 0, 0, time.UTC)

	props := HeaderProps{
		Title:       "MyProject",
		Target:      "http://localhost:8000/execute",
		Pending:     2,
		Submitted:   7,
		Entries:     12,
		MaxEntries:  500,
		Timestamps:  true,
		LastElapsed: 1500 * time.Millisecond,
		Clock:       now,
	}

	rendered := RenderHeader(props, 200, accent)

	for _, want := range []string{"MyProject", "exec: http://localhost:8000/execute", "● 2 running", "sent: 7", "msgs: 12/500", "last: 2s", "15:30"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("RenderHeader() missing %q; output: %q", want, rendered)
		}
	}
}

func TestRenderHeader_EmptyFieldFallbacks(t *testing.T) {
	accent := lipgloss.NewStyle()
	rendered := RenderHeader(HeaderProps{}, 200, accent)

	for _, want := range []string{DefaultTitle, "✓ ready"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("RenderHeader() with empty props missing %q; got %q", want, rendered)
		}
	}
	for _, absent := range []string{"exec:", "sent:", "msgs:", "last:"} {
		if strings.Contains(rendered, absent) {
			t.Errorf("RenderHeader() with empty props should omit %q; got %q", absent, rendered)
		}
	}
}

func TestRenderHeader_Truncates(t *testing.T) {
	props := HeaderProps{Title: strings.Repeat("long-title-", 10), Target: "/srv/a/very/long/path"}
	rendered := RenderHeader(props, 40, lipgloss.NewStyle())
	for _, line := range strings.Split(rendered, "\n") {
		if w := runewidth.StringWidth(line); w > 40 {
			t.Errorf("header line is %d wide, want <= 40: %q", w, line)
		}
	}
	if strings.Count(rendered, "\n") != 0 {
		t.Errorf("header should stay on one line: %q", rendered)
	}
}

func TestAbbreviatePath(t *testing.T) {
	if got := AbbreviatePath(""); got != "" {
		t.Errorf("AbbreviatePath(\"\") = %q", got)
	}
	if got := AbbreviatePath(`C:\work\proj`); got != "C:/work/proj" {
		t.Errorf("AbbreviatePath backslashes = %q", got)
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{350 * time.Millisecond, "350ms"},
		{5 * time.Second, "5s"},
		{90 * time.Second, "1m30s"},
		{3*time.Hour + 15*time.Minute, "3h15m"},
		{0, "0s"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := FormatElapsed(tt.d)
			if got != tt.want {
				t.Errorf("FormatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}
