package msglog

// Style tags an entry for presentation. It never affects log behaviour.
type Style int

const (
	StyleNone    Style = iota // Plain command output
	StyleSystem               // System / rich content
	StyleError                // Failed command or host error
	StyleCommand              // Echo of a submitted command
)

// String returns the lower-case name of the style.
func (s Style) String() string {
	switch s {
	case StyleSystem:
		return "system"
	case StyleError:
		return "error"
	case StyleCommand:
		return "command"
	default:
		return "none"
	}
}

// Handle identifies an entry for its whole lifetime. Handles are assigned
// in insertion order and never reused, so they stay valid while other
// entries are evicted.
type Handle uint64

// CopyTarget is a copy-to-clipboard affordance attached to an entry.
type CopyTarget struct {
	Label  string // language of the block, or "code"
	Text   string // raw text placed on the clipboard
	Copied bool   // transient acknowledgement after a successful copy
}

// Message is the input to Log.Append.
type Message struct {
	Content     string
	Style       Style
	Detail      string
	PreRendered bool
}

// Entry is one displayed unit of the log.
type Entry struct {
	ID          Handle
	Content     string
	Style       Style
	Detail      string
	Disclosed   bool
	Timestamp   string // empty when timestamps were off at insertion
	PreRendered bool
	Copies      []CopyTarget
}

// HasDetail reports whether the entry exposes a disclosure toggle.
func (e Entry) HasDetail() bool { return e.Detail != "" }

func (e Entry) clone() Entry {
	if e.Copies != nil {
		e.Copies = append([]CopyTarget(nil), e.Copies...)
	}
	return e
}
