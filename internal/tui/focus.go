package tui

// FocusTarget identifies which panel currently holds keyboard focus.
type FocusTarget int

const (
	FocusInput FocusTarget = iota // Bottom: command input line
	FocusLog                      // Top: message log
)

const focusCount = 2

// Next returns the next focus target in forward tab order.
func (f FocusTarget) Next() FocusTarget {
	return (f + 1) % focusCount
}

// Prev returns the previous focus target in reverse tab order.
func (f FocusTarget) Prev() FocusTarget {
	return (f + focusCount - 1) % focusCount
}

// String returns the human-readable name of the focus target.
func (f FocusTarget) String() string {
	switch f {
	case FocusInput:
		return "input"
	case FocusLog:
		return "log"
	default:
		return "unknown"
	}
}
