package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LISSConsulting/LISSTech.Console/internal/console"
	"github.com/LISSConsulting/LISSTech.Console/internal/msglog"
	"github.com/LISSConsulting/LISSTech.Console/internal/tui/components"
)

// copyAckDuration is how long a copy button shows its acknowledgement.
const copyAckDuration = 2 * time.Second

// Options configures the TUI Model.
type Options struct {
	// Context bounds command executions; quitting the program should
	// cancel it. nil means context.Background().
	Context     context.Context
	Title       string
	Target      string // shown in the header, e.g. the executor URL
	AccentColor string
	// Clipboard writes text to the system clipboard. nil uses the
	// platform clipboard.
	Clipboard func(string) error
	// OnResize is told the log's content width, e.g. to rewrap markdown.
	OnResize func(width int)
}

// renderKey captures everything the projected log depends on.
type renderKey struct {
	revision uint64
	width    int
	selected msglog.Handle
	focus    FocusTarget
}

// Model is the root bubbletea model for the console TUI. Widget state lives
// in the *console.Console it wraps; the Model holds only view state.
type Model struct {
	console *console.Console
	ctx     context.Context

	input   textinput.Model
	logView components.LogView

	// Layout and focus
	layout Layout
	focus  FocusTarget
	theme  Theme
	width  int
	height int

	// Identity
	title  string
	target string

	// Execution
	pending     int
	lastElapsed time.Duration

	// Log projection
	selected msglog.Handle
	rendered renderKey
	newest   msglog.Handle // last entry seen by syncLog; a change means an append

	search    searchState
	clipboard func(string) error
	onResize  func(int)
	notice    string

	now time.Time
}

// New creates the console TUI Model around c.
func New(c *console.Console, opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = writeClipboard
	}

	layout := Calculate(80, 24)
	logW, logH := innerDims(layout.Log)
	inputW, _ := innerDims(layout.Input)

	settings := c.Settings()
	ti := textinput.New()
	ti.Prompt = settings.PromptSymbol
	ti.Placeholder = settings.Placeholder
	ti.Width = inputWidth(inputW, ti.Prompt)
	ti.Focus()

	m := Model{
		console:   c,
		ctx:       ctx,
		input:     ti,
		logView:   components.NewLogView(logW, logH),
		layout:    layout,
		focus:     FocusInput,
		theme:     NewTheme(opts.AccentColor),
		width:     80,
		height:    24,
		title:     opts.Title,
		target:    opts.Target,
		clipboard: clip,
		onResize:  opts.OnResize,
		now:       time.Now(),
	}
	return m.syncLog()
}

// Console returns the wrapped console.
func (m Model) Console() *console.Console { return m.console }

// Focus returns the panel holding keyboard focus.
func (m Model) Focus() FocusTarget { return m.focus }

// Pending returns the number of in-flight executions.
func (m Model) Pending() int { return m.pending }

// Selected returns the selected log entry, or 0 when none is selected.
func (m Model) Selected() msglog.Handle { return m.selected }

// Input returns the current input line.
func (m Model) Input() string { return m.input.Value() }

// Init returns the initial commands: cursor blink + clock ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd())
}

// tickCmd schedules the next one-second clock tick.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
