package tui

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"

	"github.com/LISSConsulting/LISSTech.Console/internal/msglog"
)

func TestNewTheme_Accent(t *testing.T) {
	for _, accent := range []string{"", "#FF0000"} {
		th := NewTheme(accent)
		_ = th.AccentHeaderStyle().Render("x")
		_ = th.PanelBorderStyle(true).Render("x")
		_ = th.PanelBorderStyle(false).Render("x")
	}
}

func TestPanelBorderStyle_FocusedVsUnfocused(t *testing.T) {
	th := NewTheme("")
	focused := th.PanelBorderStyle(true)
	unfocused := th.PanelBorderStyle(false)
	if focused.GetBorderTopForeground() == unfocused.GetBorderTopForeground() {
		t.Error("focused and unfocused borders should use different colors")
	}
}

// plainLines strips styling from a rendered entry and splits it into lines.
func plainLines(s string) []string {
	return strings.Split(xansi.Strip(s), "\n")
}

func TestRenderEntry(t *testing.T) {
	th := NewTheme("")

	tests := []struct {
		name     string
		entry    msglog.Entry
		contains []string
		absent   []string
	}{
		{
			name:     "plain output",
			entry:    msglog.Entry{Content: "total 0"},
			contains: []string{"total 0"},
			absent:   []string{"details", "copy"},
		},
		{
			name:     "command echo",
			entry:    msglog.Entry{Content: "> ls", Style: msglog.StyleCommand},
			contains: []string{"> ls"},
		},
		{
			name:     "timestamp",
			entry:    msglog.Entry{Content: "hi", Timestamp: "09:30:15"},
			contains: []string{"[09:30:15] hi"},
		},
		{
			name:     "collapsed detail",
			entry:    msglog.Entry{Content: "guide", Detail: "secret detail"},
			contains: []string{"guide", "▸ show details"},
			absent:   []string{"secret detail"},
		},
		{
			name:     "disclosed detail",
			entry:    msglog.Entry{Content: "guide", Detail: "secret detail", Disclosed: true},
			contains: []string{"▾ hide details", "│ secret detail"},
		},
		{
			name: "copy buttons",
			entry: msglog.Entry{Content: "code", PreRendered: true, Copies: []msglog.CopyTarget{
				{Label: "python", Text: "print(1)"},
				{Label: "code", Text: "ls", Copied: true},
			}},
			contains: []string{"[1] copy python", "[2] ✓ copied"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := xansi.Strip(th.RenderEntry(tt.entry, 60, false))
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("RenderEntry missing %q: %q", want, out)
				}
			}
			for _, unwanted := range tt.absent {
				if strings.Contains(out, unwanted) {
					t.Errorf("RenderEntry should not contain %q: %q", unwanted, out)
				}
			}
		})
	}
}

func TestRenderEntry_SelectionGutter(t *testing.T) {
	th := NewTheme("")
	e := msglog.Entry{Content: "one\ntwo"}

	for _, l := range plainLines(th.RenderEntry(e, 40, true)) {
		if !strings.HasPrefix(l, "▌ ") {
			t.Errorf("selected line missing marker: %q", l)
		}
	}
	for _, l := range plainLines(th.RenderEntry(e, 40, false)) {
		if !strings.HasPrefix(l, "  ") {
			t.Errorf("unselected line missing blank gutter: %q", l)
		}
	}
}

func TestRenderEntry_WrapsPlainContent(t *testing.T) {
	th := NewTheme("")
	e := msglog.Entry{Content: strings.Repeat("word ", 30)}
	lines := plainLines(th.RenderEntry(e, 30, false))
	if len(lines) < 4 {
		t.Fatalf("expected wrapping onto several lines, got %d", len(lines))
	}
	for _, l := range lines {
		if w := xansi.StringWidth(l); w > 30 {
			t.Errorf("line %q is %d wide, want <= 30", l, w)
		}
	}
}

func TestRenderEntry_PreRenderedUntouched(t *testing.T) {
	th := NewTheme("")
	content := "\x1b[1mbold\x1b[0m"
	out := th.RenderEntry(msglog.Entry{Content: content, PreRendered: true}, 40, false)
	if !strings.Contains(out, content) {
		t.Errorf("pre-rendered content should be kept verbatim: %q", out)
	}
}
