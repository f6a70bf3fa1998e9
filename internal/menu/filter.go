package menu

import "strings"

// Filter returns the entries to display for the given search text, in their
// original order. The search entry is always kept; other entries match when
// their title or description contains the text, ignoring case.
func Filter(entries []Entry, search string) []Entry {
	if search == "" {
		return CloneEntries(entries)
	}
	needle := strings.ToLower(search)
	filtered := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if Matches(entry.Option, needle) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// Matches reports whether opt survives filtering by the lowercased needle.
func Matches(opt Option, needle string) bool {
	if opt.Kind() == KindSearch || needle == "" {
		return true
	}
	if opt.Title != "" && strings.Contains(strings.ToLower(opt.Title), needle) {
		return true
	}
	if opt.Description != "" && strings.Contains(strings.ToLower(opt.Description), needle) {
		return true
	}
	return false
}
