package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LISSConsulting/LISSTech.Console/internal/history"
)

// searchState is the reverse history search (ctrl+r) in progress.
type searchState struct {
	active  bool
	query   string
	matches []history.Match
	index   int    // position in matches; ctrl+r steps to older matches
	saved   string // input line before the search started
}

// current returns the highlighted match, or "" when nothing matches.
func (s searchState) current() string {
	if s.index < len(s.matches) {
		return s.matches[s.index].Command
	}
	return ""
}

func (m Model) startSearch() Model {
	m.search = searchState{
		active:  true,
		saved:   m.input.Value(),
		matches: m.console.History().Search(""),
	}
	return m
}

func (m Model) refilter() Model {
	m.search.matches = m.console.History().Search(m.search.query)
	m.search.index = 0
	return m
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if v := m.search.current(); v != "" {
			m.input.SetValue(v)
			m.input.CursorEnd()
		}
		m.console.History().Reset()
		m.search = searchState{}
	case tea.KeyEsc, tea.KeyCtrlG:
		m.input.SetValue(m.search.saved)
		m.input.CursorEnd()
		m.search = searchState{}
	case tea.KeyCtrlR:
		if m.search.index+1 < len(m.search.matches) {
			m.search.index++
		}
	case tea.KeyBackspace:
		if r := []rune(m.search.query); len(r) > 0 {
			m.search.query = string(r[:len(r)-1])
			m = m.refilter()
		}
	case tea.KeySpace:
		m.search.query += " "
		m = m.refilter()
	case tea.KeyRunes:
		m.search.query += string(msg.Runes)
		m = m.refilter()
	}
	return m, nil
}
