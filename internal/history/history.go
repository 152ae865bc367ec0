// Package history holds the submitted-command log and the browsing cursor
// used by the console's up/down navigation, plus its on-disk persistence.
package history

import "strings"

// History is an ordered log of submitted commands with a browsing cursor.
// The cursor ranges over [0, Len()]; Len() means "fresh input line".
type History struct {
	entries []string
	cursor  int
	limit   int
}

// New creates an empty History. limit bounds the number of retained entries
// (oldest dropped first); 0 means unbounded.
func New(limit int) *History {
	if limit < 0 {
		limit = 0
	}
	return &History{limit: limit}
}

// Load replaces the entries (e.g. from a persisted file) and resets the
// cursor to a fresh line. The limit is applied to the loaded entries.
func (h *History) Load(entries []string) {
	h.entries = append([]string(nil), entries...)
	h.trim()
	h.cursor = len(h.entries)
}

// Record trims raw and, if anything is left, appends it and resets the cursor
// to the new end. It returns the trimmed command and whether it was recorded.
func (h *History) Record(raw string) (string, bool) {
	command := strings.TrimSpace(raw)
	if command == "" {
		return "", false
	}
	h.entries = append(h.entries, command)
	h.trim()
	h.cursor = len(h.entries)
	return command, true
}

// Previous moves the cursor one entry back and returns the entry now under it.
// At the oldest entry the cursor stays put and that entry is returned with
// moved=false. An empty history returns "", false.
func (h *History) Previous() (value string, moved bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor > 0 {
		h.cursor--
		return h.entries[h.cursor], true
	}
	return h.entries[0], false
}

// Next moves the cursor one entry forward and returns the entry under it.
// Stepping past the newest entry parks the cursor on the fresh line and
// returns "".
func (h *History) Next() string {
	if h.cursor < len(h.entries)-1 {
		h.cursor++
		return h.entries[h.cursor]
	}
	h.cursor = len(h.entries)
	return ""
}

// Reset parks the cursor on the fresh line without changing entries.
func (h *History) Reset() {
	h.cursor = len(h.entries)
}

// Cursor returns the browsing offset.
func (h *History) Cursor() int { return h.cursor }

// Len returns the number of recorded entries.
func (h *History) Len() int { return len(h.entries) }

// Browsing reports whether the cursor is on a recorded entry.
func (h *History) Browsing() bool { return h.cursor < len(h.entries) }

// Entries returns a copy of the recorded commands, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) trim() {
	if h.limit > 0 && len(h.entries) > h.limit {
		h.entries = append([]string(nil), h.entries[len(h.entries)-h.limit:]...)
	}
}
