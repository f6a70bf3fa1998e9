package ui

import (
	"github.com/atomicstack/popup-context-menu/internal/data/dispatcher"
	"github.com/atomicstack/popup-context-menu/internal/host"
	"github.com/atomicstack/popup-context-menu/internal/logging"
	"github.com/atomicstack/popup-context-menu/internal/logging/events"
	"github.com/atomicstack/popup-context-menu/internal/menu"
	uistate "github.com/atomicstack/popup-context-menu/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForHostEvent(l *host.Listener) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-l.Events()
		if !ok {
			return hostDoneMsg{}
		}
		return hostEventMsg{event: evt}
	}
}

type hostEventMsg struct {
	event host.Event
}

type hostDoneMsg struct{}

type graceElapsedMsg struct {
	descriptor menu.Descriptor
}

func (m *Model) handleHostEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(hostEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyHostEvent(eventMsg.event)
	if m.listener != nil {
		waitCmd := waitForHostEvent(m.listener)
		if cmd != nil {
			return tea.Batch(cmd, waitCmd)
		}
		return waitCmd
	}
	return cmd
}

// handleHostDoneMsg quits once the host connection is gone; nothing can drive
// the popup afterwards.
func (m *Model) handleHostDoneMsg(msg tea.Msg) tea.Cmd {
	m.listener = nil
	events.Host.Closed()
	events.App.Stop("host closed")
	return tea.Quit
}

func (m *Model) applyHostEvent(evt host.Event) tea.Cmd {
	res, err := m.dispatcher.Handle(evt)
	if err != nil {
		events.Host.Error(err)
		logging.Error(err)
		return nil
	}
	switch res.Kind {
	case dispatcher.KindShow:
		return m.dispatch(uistate.Show{Descriptor: res.Descriptor})
	case dispatcher.KindHide:
		return m.dispatch(uistate.Hide{})
	}
	return nil
}

func (m *Model) handleGraceElapsedMsg(msg tea.Msg) tea.Cmd {
	elapsed, ok := msg.(graceElapsedMsg)
	if !ok {
		return nil
	}
	return m.dispatch(uistate.GraceElapsed{Descriptor: elapsed.descriptor})
}
