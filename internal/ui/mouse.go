package ui

import (
	"github.com/atomicstack/popup-context-menu/internal/menu"
	uistate "github.com/atomicstack/popup-context-menu/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok || !m.menu.Visible {
		return nil
	}
	switch mouse.Button {
	case tea.MouseButtonWheelUp:
		m.moveCursor(m.menu.MoveCursorUp)
		return nil
	case tea.MouseButtonWheelDown:
		m.moveCursor(m.menu.MoveCursorDown)
		return nil
	case tea.MouseButtonLeft:
		if mouse.Action != tea.MouseActionPress {
			return nil
		}
	default:
		return nil
	}

	col, row, ok := m.contentCell(mouse.X, mouse.Y)
	if !ok {
		return nil
	}
	if row == 0 {
		return m.clickHeader(col)
	}
	return m.clickItem(row - 1)
}

// contentCell maps a terminal cell to a column and row inside the frame,
// where row 0 is the header.
func (m *Model) contentCell(x, y int) (int, int, bool) {
	box := m.renderBox()
	originX, originY := 0, 0
	if m.width > 0 && m.height > 0 {
		pos := m.menu.Descriptor.Position
		if pos.Right() {
			originX = max(m.width-lipgloss.Width(box), 0)
		}
		if !pos.Top() {
			originY = max(m.height-lipgloss.Height(box), 0)
		}
	}
	frame := styles.Frame
	col := x - originX - frame.GetBorderLeftSize() - frame.GetPaddingLeft()
	row := y - originY - frame.GetBorderTopSize() - frame.GetPaddingTop()
	if col < 0 || col >= m.innerWidth() || row < 0 {
		return 0, 0, false
	}
	return col, row, true
}

func (m *Model) clickHeader(col int) tea.Cmd {
	if col >= m.innerWidth()-ansi.StringWidth(closeButton) {
		return m.dispatch(uistate.Close{})
	}
	if m.menu.Descriptor.HasParent() && col < ansi.StringWidth(backButton) {
		return m.dispatch(uistate.Back{})
	}
	return nil
}

func (m *Model) clickItem(offset int) tea.Cmd {
	start, end := m.visibleRange()
	idx := start + offset
	if idx < start || idx >= end {
		return nil
	}
	m.menu.Cursor = idx
	m.syncViewport()
	if entry, ok := m.menu.Current(); ok && entry.Option.Kind() == menu.KindSearch {
		return nil
	}
	return m.dispatch(uistate.Select{})
}
