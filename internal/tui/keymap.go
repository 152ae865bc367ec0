package tui

// GlobalKeyBindings lists the keys that are always handled by the root model
// before dispatching to the focused panel.
var GlobalKeyBindings = []string{"ctrl+c", "tab", "shift+tab", "ctrl+l", "pgup", "pgdown"}

// panelKeys maps each FocusTarget to the keys that panel handles internally.
var panelKeys = map[FocusTarget][]string{
	FocusInput: {"enter", "up", "down", "ctrl+r"},
	FocusLog: {
		"j", "k", "up", "down", "g", "G", "enter", " ", "f", "i", "esc",
		"1", "2", "3", "4", "5", "6", "7", "8", "9",
	},
}

// IsGlobalKey reports whether key is a global keybinding (handled before panel dispatch).
func IsGlobalKey(key string) bool {
	return contains(GlobalKeyBindings, key)
}

// PanelKeys returns the list of keys handled by the given focused panel.
func PanelKeys(focus FocusTarget) []string {
	return panelKeys[focus]
}

// copyIndex maps "1".."9" to a zero-based copy target index.
func copyIndex(key string) (int, bool) {
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return int(key[0] - '1'), true
	}
	return 0, false
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
