package tui

import "testing"

func TestFocusTarget_NextPrev(t *testing.T) {
	tests := []struct {
		name  string
		input FocusTarget
		next  FocusTarget
		prev  FocusTarget
	}{
		{"input", FocusInput, FocusLog, FocusLog},
		{"log wraps", FocusLog, FocusInput, FocusInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.input.Next(); got != tt.next {
				t.Errorf("Next() = %v, want %v", got, tt.next)
			}
			if got := tt.input.Prev(); got != tt.prev {
				t.Errorf("Prev() = %v, want %v", got, tt.prev)
			}
		})
	}
}

func TestFocusTarget_String(t *testing.T) {
	tests := []struct {
		input FocusTarget
		want  string
	}{
		{FocusInput, "input"},
		{FocusLog, "log"},
		{FocusTarget(99), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.input.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
