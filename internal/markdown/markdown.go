// Package markdown converts markdown into styled terminal text and locates
// the code blocks that rich console entries offer for copying.
package markdown

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Converter turns markdown source into display-ready text.
type Converter interface {
	Render(src string) string
}

// Plain is a Converter that returns the source unchanged.
type Plain struct{}

// Render implements Converter.
func (Plain) Render(src string) string { return src }

// Glamour renders markdown with a cached glamour terminal renderer. The
// renderer is rebuilt when the wrap width changes. Rendering failures fall
// back to the raw source.
type Glamour struct {
	style    ansi.StyleConfig
	width    int
	renderer *glamour.TermRenderer
}

// NewGlamour creates a converter wrapping at width columns using a style
// picked for the current terminal.
func NewGlamour(width int) *Glamour {
	return &Glamour{style: AutoStyle(), width: width}
}

// NewGlamourWithStyle creates a converter with an explicit style.
func NewGlamourWithStyle(style ansi.StyleConfig, width int) *Glamour {
	return &Glamour{style: style, width: width}
}

// AutoStyle returns the glamour style for stdout: no-TTY when stdout is not a
// terminal, otherwise dark or light by background. Document.Margin is zeroed
// so lipgloss containers handle their own padding.
func AutoStyle() ansi.StyleConfig {
	var style ansi.StyleConfig
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		style = styles.NoTTYStyleConfig
	} else if termenv.HasDarkBackground() {
		style = styles.DarkStyleConfig
	} else {
		style = styles.LightStyleConfig
	}
	style.Document.Margin = uintPtr(0)
	return style
}

func uintPtr(v uint) *uint { return &v }

// SetWidth changes the wrap width for subsequent renders.
func (g *Glamour) SetWidth(width int) {
	if width != g.width {
		g.width = width
		g.renderer = nil
	}
}

// Width returns the current wrap width.
func (g *Glamour) Width() int { return g.width }

// Render implements Converter.
func (g *Glamour) Render(src string) string {
	if src == "" {
		return ""
	}
	if g.renderer == nil {
		opts := []glamour.TermRendererOption{glamour.WithStyles(g.style)}
		if g.width > 0 {
			opts = append(opts, glamour.WithWordWrap(g.width))
		}
		renderer, err := glamour.NewTermRenderer(opts...)
		if err != nil {
			return src
		}
		g.renderer = renderer
	}
	out, err := g.renderer.Render(src)
	if err != nil {
		return src
	}
	return strings.Trim(out, "\n")
}
