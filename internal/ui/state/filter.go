package state

import (
	"strings"

	"github.com/atomicstack/popup-context-menu/internal/menu"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetSearch updates the search text, refilters, and moves the cursor to the
// best match. Clearing the search returns the cursor to the entry it was on
// before searching began.
func (m *Menu) SetSearch(text string) {
	prev := m.Search
	if text != "" && prev == "" {
		m.lastKey = ""
		if entry, ok := m.Current(); ok {
			m.lastKey = entry.Key
		}
	}
	m.Search = text
	m.refilter()
	if text != "" {
		if idx := BestMatchIndex(m.Items, text); idx >= 0 {
			m.Cursor = idx
		}
		return
	}
	if prev != "" {
		if idx := m.IndexOf(m.lastKey); idx >= 0 {
			m.Cursor = idx
		}
		m.lastKey = ""
	}
}

// BestMatchIndex returns the index of the entry that best matches query.
// An exact title wins outright. Otherwise titles are ranked by fuzzy
// distance, with prefix matches ahead of the rest, and a description match
// is the last resort. Search entries are never chosen unless nothing else
// is present.
func BestMatchIndex(entries []menu.Entry, query string) int {
	if len(entries) == 0 {
		return -1
	}
	fallback := 0
	for i, entry := range entries {
		if entry.Option.Kind() != menu.KindSearch {
			fallback = i
			break
		}
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return fallback
	}
	lower := strings.ToLower(trimmed)

	titles := make([]string, len(entries))
	for i, entry := range entries {
		if entry.Option.Kind() == menu.KindSearch {
			continue
		}
		if strings.EqualFold(entry.Option.Title, trimmed) {
			return i
		}
		titles[i] = entry.Option.Title
	}

	best, bestPrefix, bestDistance := -1, false, 0
	for _, rank := range fuzzy.RankFindNormalizedFold(trimmed, titles) {
		idx := rank.OriginalIndex
		if idx < 0 || idx >= len(entries) || titles[idx] == "" {
			continue
		}
		prefix := strings.HasPrefix(strings.ToLower(titles[idx]), lower)
		switch {
		case best < 0,
			prefix && !bestPrefix,
			prefix == bestPrefix && rank.Distance < bestDistance,
			prefix == bestPrefix && rank.Distance == bestDistance && idx < best:
			best, bestPrefix, bestDistance = idx, prefix, rank.Distance
		}
	}
	if best >= 0 {
		return best
	}

	for i, entry := range entries {
		if entry.Option.Kind() == menu.KindSearch {
			continue
		}
		if strings.Contains(strings.ToLower(entry.Option.Description), lower) {
			return i
		}
	}
	return fallback
}
