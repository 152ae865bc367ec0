// Package console is the widget's state machine. It binds the command
// history, the message log, the markdown converter, and the executor into
// the operations the terminal adapter drives: submit, history navigation,
// execution, result delivery, and content injection.
//
// A Console is not safe for concurrent use. Every method except Execute
// must be called from the goroutine that owns the UI; Execute touches no
// widget state and may run anywhere.
package console

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LISSConsulting/LISSTech.Console/internal/executor"
	"github.com/LISSConsulting/LISSTech.Console/internal/history"
	"github.com/LISSConsulting/LISSTech.Console/internal/logger"
	"github.com/LISSConsulting/LISSTech.Console/internal/markdown"
	"github.com/LISSConsulting/LISSTech.Console/internal/msglog"
)

// ErrNoExecutor is the transport error of a submission run without an
// executor.
var ErrNoExecutor = errors.New("no executor registered")

// Defaults for the presentational settings.
const (
	DefaultPromptSymbol = "> "
	DefaultPlaceholder  = "Type a command and press Enter to execute"
)

// Persister stores submitted commands. Failures are logged and never block
// a submission.
type Persister interface {
	Append(command string) error
}

// Options configures a Console. Zero values pick sensible defaults.
type Options struct {
	Executor     executor.Executor  // nil: submissions are echoed but not dispatched
	Converter    markdown.Converter // nil: markdown.Plain
	MaxMessages  int                // <= 0: msglog.DefaultMax
	HistoryLimit int                // 0: unbounded
	Persister    Persister          // optional history sink
	Observer     func(Outcome)      // called after every delivered outcome
	Clock        func() time.Time   // timestamp source; nil: time.Now
}

// Settings are the widget's presentational configuration.
type Settings struct {
	PromptSymbol string
	Placeholder  string
	Timestamps   bool
}

// Submission is an accepted command, ready for dispatch.
type Submission struct {
	ID       string        // request id, for log correlation only
	Command  string        // trimmed command text
	Echo     msglog.Handle // the echoed command entry
	Dispatch bool          // false when no executor is registered
}

// Outcome is the result of executing a Submission.
type Outcome struct {
	Submission
	Result  executor.Result
	Err     error // transport failure
	Elapsed time.Duration
}

// Failed reports whether the outcome renders as an error entry.
func (o Outcome) Failed() bool { return o.Err != nil || o.Result.Error }

// Text is the message the outcome appends to the log.
func (o Outcome) Text() string {
	if o.Err != nil {
		return fmt.Sprintf("Error: %v", o.Err)
	}
	return o.Result.Output
}

// Console is one independent widget instance.
type Console struct {
	settings  Settings
	history   *history.History
	log       *msglog.Log
	exec      executor.Executor
	conv      markdown.Converter
	persist   Persister
	observer  func(Outcome)
	submitted int
}

// New creates a Console.
func New(opts Options) *Console {
	conv := opts.Converter
	if conv == nil {
		conv = markdown.Plain{}
	}
	log := msglog.New(opts.MaxMessages)
	if opts.Clock != nil {
		log.SetClock(opts.Clock)
	}
	return &Console{
		settings: Settings{
			PromptSymbol: DefaultPromptSymbol,
			Placeholder:  DefaultPlaceholder,
		},
		history:  history.New(opts.HistoryLimit),
		log:      log,
		exec:     opts.Executor,
		conv:     conv,
		persist:  opts.Persister,
		observer: opts.Observer,
	}
}

// SetPromptSymbol sets the prefix used when echoing commands.
func (c *Console) SetPromptSymbol(symbol string) *Console {
	c.settings.PromptSymbol = symbol
	return c
}

// SetPlaceholder sets the hint shown in an empty input line.
func (c *Console) SetPlaceholder(text string) *Console {
	c.settings.Placeholder = text
	return c
}

// SetTimestamps toggles timestamp labels. Only entries appended afterwards
// are affected.
func (c *Console) SetTimestamps(enabled bool) *Console {
	c.settings.Timestamps = enabled
	c.log.SetTimestamps(enabled)
	return c
}

// Settings returns the current presentational settings.
func (c *Console) Settings() Settings { return c.settings }

// SetExecutor registers (or with nil, removes) the executor.
func (c *Console) SetExecutor(exec executor.Executor) { c.exec = exec }

// Executor returns the registered executor, or nil.
func (c *Console) Executor() executor.Executor { return c.exec }

// HasExecutor reports whether submissions will be dispatched.
func (c *Console) HasExecutor() bool { return c.exec != nil }

// SetConverter replaces the markdown converter. nil restores markdown.Plain.
func (c *Console) SetConverter(conv markdown.Converter) {
	if conv == nil {
		conv = markdown.Plain{}
	}
	c.conv = conv
}

// History exposes the command history.
func (c *Console) History() *history.History { return c.history }

// Log exposes the message log.
func (c *Console) Log() *msglog.Log { return c.log }

// Submitted returns how many commands this instance accepted.
func (c *Console) Submitted() int { return c.submitted }

// Submit accepts raw input. Whitespace-only input is ignored and reports
// false. Otherwise the trimmed command is recorded in history, echoed to the
// log with the prompt symbol, and returned for dispatch.
func (c *Console) Submit(raw string) (Submission, bool) {
	command, ok := c.history.Record(raw)
	if !ok {
		return Submission{}, false
	}
	c.submitted++

	if c.persist != nil {
		if err := c.persist.Append(command); err != nil {
			logger.Named("history").Warnf("persist command: %v", err)
		}
	}

	echo := c.log.Append(msglog.Message{
		Content: c.settings.PromptSymbol + command,
		Style:   msglog.StyleCommand,
	})
	sub := Submission{
		ID:       uuid.NewString(),
		Command:  command,
		Echo:     echo,
		Dispatch: c.exec != nil,
	}
	logger.Named("executor").WithField("request", sub.ID).Debugf("submitted %q", command)
	return sub, true
}

// Previous steps back through history. It returns the value to show in the
// input line and whether the cursor moved.
func (c *Console) Previous() (string, bool) { return c.history.Previous() }

// Next steps forward through history; past the newest entry it returns ""
// and the input line is fresh again.
func (c *Console) Next() string { return c.history.Next() }

// Execute runs a submission through the registered executor. It reads no
// mutable widget state and is safe to call off the UI goroutine.
func (c *Console) Execute(ctx context.Context, sub Submission) Outcome {
	return Run(ctx, c.exec, sub)
}

// Run executes sub with exec. A nil executor yields a transport error.
func Run(ctx context.Context, exec executor.Executor, sub Submission) Outcome {
	out := Outcome{Submission: sub}
	if exec == nil {
		out.Err = ErrNoExecutor
		return out
	}
	start := time.Now()
	out.Result, out.Err = exec.Execute(ctx, sub.Command)
	out.Elapsed = time.Since(start)

	log := logger.Named("executor").WithField("request", sub.ID)
	switch {
	case out.Err != nil:
		log.Errorf("error executing command: %v", out.Err)
	case out.Result.Error:
		log.Warnf("command %q failed after %s", sub.Command, out.Elapsed.Round(time.Millisecond))
	default:
		log.Debugf("command %q finished after %s", sub.Command, out.Elapsed.Round(time.Millisecond))
	}
	return out
}

// Deliver appends the outcome's message: an "Error: ..." entry for
// transport failures, an error-tagged entry for application failures, and
// an untagged entry otherwise. It never retries and never touches history.
func (c *Console) Deliver(o Outcome) (msglog.Handle, bool) {
	style := msglog.StyleNone
	if o.Failed() {
		style = msglog.StyleError
	}
	h := c.log.Append(msglog.Message{Content: o.Text(), Style: style})
	if c.observer != nil {
		c.observer(o)
	}
	return h, true
}

// Print appends plain text. Control sequences are stripped.
func (c *Console) Print(text string, style msglog.Style, detail string) msglog.Handle {
	return c.log.Append(msglog.Message{Content: text, Style: style, Detail: detail})
}

// AppendRich converts markdown (and the optional detail markdown) and
// appends it as a pre-rendered system entry. Every code block found in
// either source gets a copy affordance.
func (c *Console) AppendRich(md, detailMD string) msglog.Handle {
	content := c.conv.Render(md)
	var detail string
	if detailMD != "" {
		detail = c.conv.Render(detailMD)
	}
	h := c.log.Append(msglog.Message{
		Content:     content,
		Style:       msglog.StyleSystem,
		Detail:      detail,
		PreRendered: true,
	})

	var targets []msglog.CopyTarget
	for _, src := range []string{md, detailMD} {
		for _, b := range markdown.CodeBlocks(src) {
			label := b.Language
			if label == "" {
				label = "code"
			}
			targets = append(targets, msglog.CopyTarget{Label: label, Text: b.Text})
		}
	}
	c.log.Attach(h, targets...)
	return h
}

// PrintMarkdown is AppendRich under the name hosts use for injection.
func (c *Console) PrintMarkdown(md, detailMD string) msglog.Handle {
	return c.AppendRich(md, detailMD)
}

// Toggle flips the detail pane of entry h.
func (c *Console) Toggle(h msglog.Handle) (bool, bool) { return c.log.Toggle(h) }

// Clear empties the message log. History is kept.
func (c *Console) Clear() { c.log.Clear() }
