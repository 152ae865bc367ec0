// Package components provides reusable widgets for the console TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// LogView is a scrollable log panel that wraps bubbles/viewport. Content is
// a list of blocks, one per log entry, each possibly spanning several lines.
// In follow mode (default), new content keeps the view pinned to the bottom.
type LogView struct {
	vp     viewport.Model
	blocks []string
	starts []int // first line of each block
	lines  int   // total line count
	follow bool
	width  int
	height int
}

// NewLogView creates a LogView with the given dimensions, initially in follow mode.
func NewLogView(w, h int) LogView {
	return LogView{
		vp:     viewport.New(w, h),
		follow: true,
		width:  w,
		height: h,
	}
}

// SetBlocks replaces the content with the given rendered blocks.
// Scrolls to the bottom if follow mode is enabled.
func (v LogView) SetBlocks(blocks []string) LogView {
	v.blocks = make([]string, len(blocks))
	copy(v.blocks, blocks)
	v.starts = make([]int, len(blocks))
	v.lines = 0
	for i, b := range v.blocks {
		v.starts[i] = v.lines
		v.lines += strings.Count(b, "\n") + 1
	}
	v.vp.SetContent(strings.Join(v.blocks, "\n"))
	if v.follow {
		v.vp.GotoBottom()
	}
	return v
}

// Len returns the number of blocks.
func (v LogView) Len() int { return len(v.blocks) }

// ScrollToBlock scrolls the minimum amount needed to bring block i into
// view. A block taller than the view is aligned to its first line. Follow
// mode is kept only when the view ends up at the bottom.
func (v LogView) ScrollToBlock(i int) LogView {
	if i < 0 || i >= len(v.blocks) {
		return v
	}
	start := v.starts[i]
	end := v.lines
	if i+1 < len(v.starts) {
		end = v.starts[i+1]
	}

	offset := v.vp.YOffset
	switch {
	case start < offset:
		offset = start
	case end > offset+v.height:
		offset = end - v.height
		if offset > start {
			offset = start
		}
	}
	v.vp.SetYOffset(offset)
	v.follow = v.vp.AtBottom()
	return v
}

// ToggleFollow switches follow mode on or off.
// When turned on, scrolls immediately to the bottom.
func (v LogView) ToggleFollow() LogView {
	v.follow = !v.follow
	if v.follow {
		v.vp.GotoBottom()
	}
	return v
}

// GotoTop scrolls to the first line and leaves follow mode.
func (v LogView) GotoTop() LogView {
	v.vp.GotoTop()
	v.follow = v.vp.AtBottom()
	return v
}

// GotoBottom scrolls to the last line and enters follow mode.
func (v LogView) GotoBottom() LogView {
	v.vp.GotoBottom()
	v.follow = true
	return v
}

// SetSize resizes the log view to the given dimensions.
func (v LogView) SetSize(w, h int) LogView {
	v.width = w
	v.height = h
	v.vp.Width = w
	v.vp.Height = h
	if v.follow {
		v.vp.GotoBottom()
	}
	return v
}

// Following reports whether follow mode is currently active.
func (v LogView) Following() bool {
	return v.follow
}

// ScrollPercent returns how far the view is scrolled, from 0 to 1.
func (v LogView) ScrollPercent() float64 {
	return v.vp.ScrollPercent()
}

// Update handles bubbletea messages (scroll keys, mouse events).
func (v LogView) Update(msg tea.Msg) (LogView, tea.Cmd) {
	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	// Only explicit scrolling changes follow mode, not resizes.
	switch msg.(type) {
	case tea.KeyMsg, tea.MouseMsg:
		v.follow = v.vp.AtBottom()
	}
	return v, cmd
}

// View renders the log view content.
func (v LogView) View() string {
	return v.vp.View()
}
