package history

import "github.com/sahilm/fuzzy"

// Match is one fuzzy search hit.
type Match struct {
	Command string
	Index   int   // position in Entries()
	Matched []int // byte offsets of matched characters in Command
}

// Search returns entries fuzzily matching query, best match first. Equal
// scores favour the most recent entry. Duplicate commands are reported once,
// at their most recent position. An empty query lists every distinct entry,
// newest first.
func (h *History) Search(query string) []Match {
	// Newest-first, de-duplicated candidate list.
	seen := make(map[string]bool, len(h.entries))
	var candidates []string
	var positions []int
	for i := len(h.entries) - 1; i >= 0; i-- {
		cmd := h.entries[i]
		if seen[cmd] {
			continue
		}
		seen[cmd] = true
		candidates = append(candidates, cmd)
		positions = append(positions, i)
	}

	if query == "" {
		out := make([]Match, len(candidates))
		for i, c := range candidates {
			out[i] = Match{Command: c, Index: positions[i]}
		}
		return out
	}

	// fuzzy.Find sorts stably by score, so ties keep newest-first order.
	found := fuzzy.Find(query, candidates)
	out := make([]Match, 0, len(found))
	for _, m := range found {
		out = append(out, Match{
			Command: m.Str,
			Index:   positions[m.Index],
			Matched: m.MatchedIndexes,
		})
	}
	return out
}
