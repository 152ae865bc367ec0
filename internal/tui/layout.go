package tui

// Minimum terminal size the console renders at.
const (
	minWidth  = 40
	minHeight = 10
)

// inputHeight is the input panel height including its border.
const inputHeight = 3

// Rect represents a rectangular region of the terminal.
type Rect struct {
	X, Y, Width, Height int
}

// Layout holds the computed panel geometry for a given terminal size.
type Layout struct {
	Header, Footer Rect
	Log, Input     Rect
	TooSmall       bool // true when terminal is below the minimum 40×10
}

// Calculate computes the panel layout for a terminal of the given dimensions.
// Returns a Layout with TooSmall=true if width < 40 or height < 10.
//
// Algorithm:
//   - Header: full width, 1 row at top
//   - Footer: full width, 1 row at bottom
//   - Input: full width, 3 rows (border + one text row) above the footer
//   - Log: full width, everything in between
func Calculate(width, height int) Layout {
	if width < minWidth || height < minHeight {
		return Layout{TooSmall: true}
	}

	logH := height - 2 - inputHeight

	return Layout{
		Header: Rect{X: 0, Y: 0, Width: width, Height: 1},
		Log:    Rect{X: 0, Y: 1, Width: width, Height: logH},
		Input:  Rect{X: 0, Y: 1 + logH, Width: width, Height: inputHeight},
		Footer: Rect{X: 0, Y: height - 1, Width: width, Height: 1},
	}
}

// innerDims returns the content dimensions for a panel rect accounting for
// the 1-character border on each side (2 total per dimension).
func innerDims(r Rect) (w, h int) {
	w = r.Width - 2
	if w < 1 {
		w = 1
	}
	h = r.Height - 2
	if h < 1 {
		h = 1
	}
	return
}
