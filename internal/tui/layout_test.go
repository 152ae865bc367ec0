package tui

import "testing"

func TestCalculate(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		height   int
		tooSmall bool
		logH     int
	}{
		{name: "80x24", width: 80, height: 24, logH: 19},
		{name: "40x10 minimum viable", width: 40, height: 10, logH: 5},
		{name: "200x60", width: 200, height: 60, logH: 55},
		{name: "39x10 too small (width)", width: 39, height: 10, tooSmall: true},
		{name: "40x9 too small (height)", width: 40, height: 9, tooSmall: true},
		{name: "0x0 too small", tooSmall: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Calculate(tt.width, tt.height)
			if l.TooSmall != tt.tooSmall {
				t.Fatalf("TooSmall: got %v, want %v", l.TooSmall, tt.tooSmall)
			}
			if tt.tooSmall {
				return
			}
			if l.Log.Height != tt.logH {
				t.Errorf("Log.Height = %d, want %d", l.Log.Height, tt.logH)
			}
			if l.Input.Height != inputHeight {
				t.Errorf("Input.Height = %d, want %d", l.Input.Height, inputHeight)
			}
			for name, r := range map[string]Rect{"header": l.Header, "log": l.Log, "input": l.Input, "footer": l.Footer} {
				if r.Width != tt.width {
					t.Errorf("%s width = %d, want %d", name, r.Width, tt.width)
				}
			}
			// Panels stack without gaps and fill the terminal.
			if l.Log.Y != l.Header.Y+l.Header.Height ||
				l.Input.Y != l.Log.Y+l.Log.Height ||
				l.Footer.Y != l.Input.Y+l.Input.Height ||
				l.Footer.Y+l.Footer.Height != tt.height {
				t.Errorf("panels do not tile the terminal: %+v", l)
			}
		})
	}
}

func TestInnerDims(t *testing.T) {
	tests := []struct {
		r            Rect
		wantW, wantH int
	}{
		{Rect{Width: 80, Height: 20}, 78, 18},
		{Rect{Width: 2, Height: 2}, 1, 1},
		{Rect{}, 1, 1},
	}
	for _, tt := range tests {
		w, h := innerDims(tt.r)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("innerDims(%+v) = %d, %d; want %d, %d", tt.r, w, h, tt.wantW, tt.wantH)
		}
	}
}
