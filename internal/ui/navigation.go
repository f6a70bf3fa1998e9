package ui

import (
	"github.com/atomicstack/popup-context-menu/internal/logging/events"
	uistate "github.com/atomicstack/popup-context-menu/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if keyMsg.String() == "ctrl+c" {
		events.App.Stop("interrupt")
		return tea.Quit
	}
	// the window only listens for keys while the popup is on screen
	if !m.menu.Visible {
		return nil
	}
	switch keyMsg.String() {
	case "esc":
		return m.dispatch(uistate.Escape{})
	case "enter":
		return m.dispatch(uistate.Select{})
	case "alt+left":
		return m.dispatch(uistate.Back{})
	case "backspace":
		if m.menu.Search == "" {
			return m.dispatch(uistate.Back{})
		}
	case "up", "ctrl+p":
		m.moveCursor(m.menu.MoveCursorUp)
		return nil
	case "down", "ctrl+n":
		m.moveCursor(m.menu.MoveCursorDown)
		return nil
	case "pgup":
		m.moveCursor(func() bool { return m.menu.MoveCursorPageUp(m.maxVisibleItems()) })
		return nil
	case "pgdown":
		m.moveCursor(func() bool { return m.menu.MoveCursorPageDown(m.maxVisibleItems()) })
		return nil
	case "home":
		m.moveCursor(m.menu.MoveCursorHome)
		return nil
	case "end":
		m.moveCursor(m.menu.MoveCursorEnd)
		return nil
	}
	return m.handleSearchKey(keyMsg)
}

func (m *Model) moveCursor(move func() bool) {
	if move() {
		events.UI.Cursor(m.menu.Descriptor.Title, m.menu.Cursor)
	}
	m.syncViewport()
}

func (m *Model) syncViewport() {
	m.menu.EnsureCursorVisible(m.maxVisibleItems())
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.UI.Resize(m.width, m.height)
	m.syncViewport()
	return nil
}
