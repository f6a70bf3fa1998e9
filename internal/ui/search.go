package ui

import (
	"github.com/atomicstack/popup-context-menu/internal/menu"
	uistate "github.com/atomicstack/popup-context-menu/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const searchPrompt = "⌕ "

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	// the placeholder is drawn by searchLine
	ti.Placeholder = ""
	if styles.Filter != nil {
		ti.TextStyle = styles.Filter.Copy()
	}
	if styles.Cursor != nil {
		ti.Cursor.Style = styles.Cursor.Copy()
	}
	// no blink loop while hidden
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// syncSearchInput mirrors the reducer's search text and the current search
// option's placeholder into the text input.
func (m *Model) syncSearchInput() {
	if m.search.Value() != m.menu.Search {
		m.search.SetValue(m.menu.Search)
		m.search.CursorEnd()
	}
	m.placeholder = menu.DefaultSearchPlaceholder
	if entry, ok := m.menu.Descriptor.Options.Search(); ok {
		m.placeholder = entry.Option.SearchPlaceholder()
	}
}

func (m *Model) focusSearchInput() tea.Cmd {
	wantFocus := m.menu.Visible && m.menu.Descriptor.Options.HasSearch()
	switch {
	case wantFocus && !m.search.Focused():
		return m.search.Focus()
	case !wantFocus && m.search.Focused():
		m.search.Blur()
	}
	return nil
}

// handleSearchKey lets the text input consume key and reports the new text to
// the reducer whenever the value changes.
func (m *Model) handleSearchKey(key tea.KeyMsg) tea.Cmd {
	if !m.menu.Descriptor.Options.HasSearch() || !m.search.Focused() {
		return nil
	}
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(key)
	after := m.search.Value()
	if after == before {
		return cmd
	}
	if next := m.dispatch(uistate.SearchChanged{Text: after}); next != nil {
		return tea.Batch(cmd, next)
	}
	return cmd
}

// searchLine renders the prompt and input; the caller truncates to the row.
func (m *Model) searchLine() string {
	prompt := searchPrompt
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	if m.search.Value() != "" {
		return prompt + m.search.View()
	}
	runes := []rune(m.placeholder)
	if len(runes) == 0 {
		return prompt + m.search.View()
	}
	caret, rest := string(runes[:1]), string(runes[1:])
	if m.search.Focused() && styles.Cursor != nil {
		caret = styles.Cursor.Render(caret)
	} else if styles.FilterPlaceholder != nil {
		caret = styles.FilterPlaceholder.Render(caret)
	}
	if styles.FilterPlaceholder != nil {
		rest = styles.FilterPlaceholder.Render(rest)
	}
	return prompt + caret + rest
}
