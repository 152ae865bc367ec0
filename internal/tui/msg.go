package tui

import (
	"time"

	"github.com/LISSConsulting/LISSTech.Console/internal/console"
	"github.com/LISSConsulting/LISSTech.Console/internal/msglog"
)

// executionDoneMsg carries a finished command back to the UI goroutine.
type executionDoneMsg struct{ outcome console.Outcome }

// copyResultMsg reports the result of a clipboard write.
type copyResultMsg struct {
	handle msglog.Handle
	index  int
	err    error
}

// copyResetMsg clears a copy acknowledgement.
type copyResetMsg struct {
	handle msglog.Handle
	index  int
}

// tickMsg is sent every second for the clock.
type tickMsg time.Time
