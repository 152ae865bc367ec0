package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/LISSConsulting/LISSTech.Console/internal/console"
	"github.com/LISSConsulting/LISSTech.Console/internal/executor"
	"github.com/LISSConsulting/LISSTech.Console/internal/logger"
)

// Update handles all incoming bubbletea messages. The log projection is
// refreshed after every message so the view always reflects the console.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleWindowSize(msg)
	case tea.KeyMsg:
		m, cmd = m.handleKey(msg)
	case tea.MouseMsg:
		m.logView, cmd = m.logView.Update(msg)
	case executionDoneMsg:
		m = m.handleExecutionDone(msg)
	case copyResultMsg:
		m, cmd = m.handleCopyResult(msg)
	case copyResetMsg:
		m.console.Log().MarkCopied(msg.handle, msg.index, false)
	case tickMsg:
		m.now = time.Time(msg)
		cmd = tickCmd()
	default:
		m.input, cmd = m.input.Update(msg)
	}
	return m.syncLog(), cmd
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.layout = Calculate(msg.Width, msg.Height)
	if !m.layout.TooSmall {
		logW, logH := innerDims(m.layout.Log)
		inputW, _ := innerDims(m.layout.Input)
		m.logView = m.logView.SetSize(logW, logH)
		m.input.Width = inputWidth(inputW, m.input.Prompt)
		if m.onResize != nil {
			m.onResize(logW - gutterWidth)
		}
	}
	return m
}

// inputWidth is the text width left for the input after its prompt.
func inputWidth(panelW int, prompt string) int {
	w := panelW - runewidth.StringWidth(prompt) - 1
	if w < 1 {
		w = 1
	}
	return w
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.search.active {
		return m.handleSearchKey(msg)
	}
	m.notice = ""

	var cmd tea.Cmd
	switch msg.String() {
	case "tab":
		return m.setFocus(m.focus.Next())
	case "shift+tab":
		return m.setFocus(m.focus.Prev())
	case "ctrl+l":
		m.console.Clear()
		m.selected = 0
		return m, nil
	case "pgup", "pgdown":
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	}

	switch m.focus {
	case FocusLog:
		return m.handleLogKey(msg)
	default:
		return m.handleInputKey(msg)
	}
}

func (m Model) setFocus(f FocusTarget) (Model, tea.Cmd) {
	m.focus = f
	if f == FocusInput {
		return m, m.input.Focus()
	}
	m.input.Blur()
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.submit()
	case "up":
		if m.console.History().Len() > 0 {
			v, _ := m.console.Previous()
			m.input.SetValue(v)
			m.input.CursorEnd()
		}
		return m, nil
	case "down":
		m.input.SetValue(m.console.Next())
		m.input.CursorEnd()
		return m, nil
	case "ctrl+r":
		return m.startSearch(), nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit hands the input line to the console and, when an executor is
// registered, dispatches it off the UI goroutine. Whitespace-only input is
// left in place.
func (m Model) submit() (Model, tea.Cmd) {
	sub, ok := m.console.Submit(m.input.Value())
	if !ok {
		return m, nil
	}
	m.input.Reset()
	if !sub.Dispatch {
		m.notice = "no executor configured"
		return m, nil
	}
	m.pending++
	return m, executeCmd(m.ctx, m.console.Executor(), sub)
}

// executeCmd runs sub in a tea.Cmd goroutine and reports back with an
// executionDoneMsg.
func executeCmd(ctx context.Context, exec executor.Executor, sub console.Submission) tea.Cmd {
	return func() tea.Msg {
		return executionDoneMsg{outcome: console.Run(ctx, exec, sub)}
	}
}

func (m Model) handleExecutionDone(msg executionDoneMsg) Model {
	if m.pending > 0 {
		m.pending--
	}
	m.lastElapsed = msg.outcome.Elapsed
	m.console.Deliver(msg.outcome)
	return m
}

func (m Model) handleLogKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "j", "down":
		return m.moveSelection(1), nil
	case "k", "up":
		return m.moveSelection(-1), nil
	case "g":
		m = m.selectAt(0)
		m.logView = m.logView.GotoTop()
		return m, nil
	case "G":
		m = m.selectAt(-1)
		m.logView = m.logView.GotoBottom()
		return m, nil
	case "enter", " ":
		m.console.Toggle(m.selected)
		return m, nil
	case "f":
		m.logView = m.logView.ToggleFollow()
		return m, nil
	case "i", "esc":
		return m.setFocus(FocusInput)
	}
	if n, ok := copyIndex(key); ok {
		return m.copyTarget(n)
	}
	// Typing while the log is focused goes to the input line.
	if msg.Type == tea.KeyRunes {
		var focusCmd, inputCmd tea.Cmd
		m, focusCmd = m.setFocus(FocusInput)
		m.input, inputCmd = m.input.Update(msg)
		return m, tea.Batch(focusCmd, inputCmd)
	}
	return m, nil
}

// moveSelection moves the selected entry by delta, clamped to the log.
func (m Model) moveSelection(delta int) Model {
	entries := m.console.Log().Entries()
	if len(entries) == 0 {
		return m
	}
	i := len(entries) - 1
	for j, e := range entries {
		if e.ID == m.selected {
			i = j + delta
			break
		}
	}
	return m.selectAt(i)
}

// selectAt selects entry i; negative i counts from the end.
func (m Model) selectAt(i int) Model {
	entries := m.console.Log().Entries()
	if len(entries) == 0 {
		m.selected = 0
		return m
	}
	if i < 0 {
		i = len(entries) + i
	}
	i = max(0, min(i, len(entries)-1))
	m.selected = entries[i].ID
	return m
}

func (m Model) copyTarget(n int) (Model, tea.Cmd) {
	text, ok := m.console.Log().CopyText(m.selected, n)
	if !ok {
		return m, nil
	}
	return m, copyCmd(m.clipboard, m.selected, n, text)
}

func (m Model) handleCopyResult(msg copyResultMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		logger.Named("clipboard").Warnf("copy failed: %v", msg.err)
		return m, nil
	}
	if !m.console.Log().MarkCopied(msg.handle, msg.index, true) {
		return m, nil
	}
	h, i := msg.handle, msg.index
	return m, tea.Tick(copyAckDuration, func(time.Time) tea.Msg {
		return copyResetMsg{handle: h, index: i}
	})
}

// syncLog re-projects the console's log into the log view when anything it
// depends on changed, and keeps the selection valid and visible.
func (m Model) syncLog() Model {
	log := m.console.Log()
	if m.selected != 0 {
		if _, ok := log.Get(m.selected); !ok {
			m.selected = 0
		}
	}
	if m.selected == 0 && m.focus == FocusLog {
		if h, ok := log.Last(); ok {
			m.selected = h
		}
	}

	w, _ := innerDims(m.layout.Log)
	key := renderKey{revision: log.Revision(), width: w, selected: m.selected, focus: m.focus}
	if key == m.rendered {
		return m
	}

	entries := log.Entries()
	blocks := make([]string, len(entries))
	selIdx := -1
	for i, e := range entries {
		sel := m.focus == FocusLog && e.ID == m.selected
		if sel {
			selIdx = i
		}
		blocks[i] = m.theme.RenderEntry(e, w, sel)
	}
	m.logView = m.logView.SetBlocks(blocks)

	// A new entry always brings the view back to the bottom, even after
	// the user scrolled away. Toggles and copy acks leave it in place.
	newest, _ := log.Last()
	switch {
	case newest != m.newest:
		m.logView = m.logView.GotoBottom()
	case selIdx >= 0 && (key.selected != m.rendered.selected || key.focus != m.rendered.focus):
		m.logView = m.logView.ScrollToBlock(selIdx)
	}
	m.newest = newest
	m.rendered = key
	return m
}
