package tui

import (
	"errors"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LISSConsulting/LISSTech.Console/internal/msglog"
)

var errClipboardUnsupported = errors.New("clipboard: no clipboard utility available")

// writeClipboard copies text to the system clipboard.
func writeClipboard(text string) error {
	if clipboard.Unsupported {
		return errClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}

// copyCmd writes text off the UI goroutine and reports back with a
// copyResultMsg for copy target index of entry h.
func copyCmd(write func(string) error, h msglog.Handle, index int, text string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{handle: h, index: index, err: write(text)}
	}
}
