// Package msglog is the console's bounded message buffer: an ordered list of
// entries with FIFO eviction, per-entry detail disclosure, and copy
// affordances. Rendering is left to the caller; the log only holds state.
package msglog

import (
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// DefaultMax is the retention used when a non-positive capacity is given.
const DefaultMax = 500

// TimestampLayout formats entry timestamps.
const TimestampLayout = "15:04:05"

// Log is an ordered, bounded sequence of entries (oldest first). It is not
// safe for concurrent use; the console mutates it from the UI goroutine only.
type Log struct {
	entries    []Entry
	max        int
	timestamps bool
	nextID     Handle
	revision   uint64
	now        func() time.Time
}

// New creates an empty Log retaining at most max entries.
func New(max int) *Log {
	if max <= 0 {
		max = DefaultMax
	}
	return &Log{max: max, nextID: 1, now: time.Now}
}

// SetClock overrides the timestamp source.
func (l *Log) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	l.now = now
}

// SetTimestamps toggles timestamp labels for entries appended from now on.
// Existing entries keep whatever label they were created with.
func (l *Log) SetTimestamps(enabled bool) { l.timestamps = enabled }

// Timestamps reports whether new entries get a timestamp label.
func (l *Log) Timestamps() bool { return l.timestamps }

// Append inserts a new entry at the end, evicting the oldest entries while
// the log is over capacity. Plain content has terminal control sequences
// stripped; pre-rendered content is inserted as-is.
func (l *Log) Append(m Message) Handle {
	e := Entry{
		ID:          l.nextID,
		Content:     m.Content,
		Style:       m.Style,
		Detail:      m.Detail,
		PreRendered: m.PreRendered,
	}
	l.nextID++
	if !m.PreRendered {
		e.Content = sanitize(e.Content)
		e.Detail = sanitize(e.Detail)
	}
	if l.timestamps {
		e.Timestamp = l.now().Format(TimestampLayout)
	}

	l.entries = append(l.entries, e)
	if over := len(l.entries) - l.max; over > 0 {
		clear(l.entries[:over])
		l.entries = l.entries[over:]
	}
	l.revision++
	return e.ID
}

// Toggle flips the disclosure state of the entry's detail pane. Entries that
// are gone or have no detail are left alone and report ok=false.
func (l *Log) Toggle(h Handle) (disclosed, ok bool) {
	i := l.index(h)
	if i < 0 || !l.entries[i].HasDetail() {
		return false, false
	}
	l.entries[i].Disclosed = !l.entries[i].Disclosed
	l.revision++
	return l.entries[i].Disclosed, true
}

// Attach adds copy affordances to an existing entry.
func (l *Log) Attach(h Handle, targets ...CopyTarget) bool {
	i := l.index(h)
	if i < 0 {
		return false
	}
	if len(targets) == 0 {
		return true
	}
	l.entries[i].Copies = append(l.entries[i].Copies, targets...)
	l.revision++
	return true
}

// CopyText returns the raw text of copy target n of entry h.
func (l *Log) CopyText(h Handle, n int) (string, bool) {
	i := l.index(h)
	if i < 0 || n < 0 || n >= len(l.entries[i].Copies) {
		return "", false
	}
	return l.entries[i].Copies[n].Text, true
}

// MarkCopied sets the acknowledgement state of copy target n of entry h.
func (l *Log) MarkCopied(h Handle, n int, copied bool) bool {
	i := l.index(h)
	if i < 0 || n < 0 || n >= len(l.entries[i].Copies) {
		return false
	}
	if l.entries[i].Copies[n].Copied != copied {
		l.entries[i].Copies[n].Copied = copied
		l.revision++
	}
	return true
}

// Clear removes every entry. Handles are not reused afterwards.
func (l *Log) Clear() {
	l.entries = nil
	l.revision++
}

// Get returns a copy of the entry identified by h.
func (l *Log) Get(h Handle) (Entry, bool) {
	i := l.index(h)
	if i < 0 {
		return Entry{}, false
	}
	return l.entries[i].clone(), true
}

// Entries returns a copy of all entries in display order.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.clone()
	}
	return out
}

// Len returns the number of retained entries.
func (l *Log) Len() int { return len(l.entries) }

// Max returns the retention capacity.
func (l *Log) Max() int { return l.max }

// Last returns the handle of the newest entry.
func (l *Log) Last() (Handle, bool) {
	if len(l.entries) == 0 {
		return 0, false
	}
	return l.entries[len(l.entries)-1].ID, true
}

// Revision increases on every visible change; renderers compare it to
// decide whether to re-project the log.
func (l *Log) Revision() uint64 { return l.revision }

// index finds h by binary search; IDs are strictly increasing.
func (l *Log) index(h Handle) int {
	lo, hi := 0, len(l.entries)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case l.entries[mid].ID == h:
			return mid
		case l.entries[mid].ID < h:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return -1
}

// sanitize strips escape sequences and carriage returns so command output
// cannot restyle or reposition the terminal.
func sanitize(s string) string {
	if s == "" {
		return s
	}
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "")
}
