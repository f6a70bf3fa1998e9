package ui

import (
	"fmt"
	"time"

	"github.com/atomicstack/popup-context-menu/internal/host"
	"github.com/atomicstack/popup-context-menu/internal/logging"
	"github.com/atomicstack/popup-context-menu/internal/logging/events"
	"github.com/atomicstack/popup-context-menu/internal/ui/command"
	uistate "github.com/atomicstack/popup-context-menu/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

// dispatch runs ev through the reducer, keeps the search input and viewport
// in step with the new state, and turns the resulting effects into commands.
func (m *Model) dispatch(ev uistate.Event) tea.Cmd {
	prev := m.menu
	next, effects := uistate.Reduce(prev, ev)
	m.menu = next
	traceTransition(prev, next, ev, effects)
	m.syncSearchInput()
	m.syncViewport()

	cmds := make([]tea.Cmd, 0, len(effects)+1)
	if cmd := m.focusSearchInput(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	for _, effect := range effects {
		if cmd := m.effectCmd(effect); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) effectCmd(effect uistate.Effect) tea.Cmd {
	switch e := effect.(type) {
	case uistate.ScheduleApply:
		desc := e.Descriptor
		return tea.Tick(e.Delay, func(time.Time) tea.Msg {
			return graceElapsedMsg{descriptor: desc}
		})
	case uistate.NotifyClose:
		cmd := m.bus.Execute(command.Request{
			ID:    "close",
			Label: m.menu.Descriptor.Title,
			Event: host.RequestCloseContext,
		})
		if m.exitOnClose {
			return tea.Batch(cmd, tea.Quit)
		}
		return cmd
	case uistate.OpenMenu:
		return m.bus.Execute(command.Request{
			ID:      "back",
			Label:   e.ID,
			Event:   host.RequestOpenContext,
			Payload: host.OpenContext{ID: e.ID, Back: true},
		})
	case uistate.Click:
		return m.bus.Execute(command.Request{
			ID:      e.Entry.Key,
			Label:   e.Entry.Option.Title,
			Event:   host.RequestClickContext,
			Payload: host.ClickContext{ID: e.Entry.Key, Option: e.Entry.Option.Raw},
		})
	}
	return nil
}

func (m *Model) handleCommandResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	if result.Err != nil {
		logging.Error(fmt.Errorf("send %s: %w", result.Request.Event, result.Err))
	}
	return nil
}

func traceTransition(prev, next uistate.Menu, ev uistate.Event, effects []uistate.Effect) {
	switch e := ev.(type) {
	case uistate.Show:
		events.Context.Show(e.Descriptor.Title, e.Descriptor.Options.Len(), prev.Visible)
		if next.Visible {
			events.Context.Apply(next.Descriptor.Title, string(next.Descriptor.Position), len(next.Items))
		}
	case uistate.GraceElapsed:
		events.Context.Apply(next.Descriptor.Title, string(next.Descriptor.Position), len(next.Items))
	case uistate.Hide:
		events.Context.Hide()
	case uistate.Close:
		traceClose(prev, effects, events.CloseReasonButton)
	case uistate.Escape:
		traceClose(prev, effects, events.CloseReasonEscape)
	case uistate.Back:
		if len(effects) > 0 {
			events.Context.Back(prev.Descriptor.Menu)
		}
	case uistate.SearchChanged:
		if e.Text == "" {
			events.Filter.Cleared()
		} else {
			events.Filter.Change(e.Text, len(next.Items))
		}
	case uistate.Select:
		for _, effect := range effects {
			if click, ok := effect.(uistate.Click); ok {
				events.Context.Click(click.Entry.Key, click.Entry.Option.Title, click.Entry.Option.HasSubmenu())
			}
		}
	}
}

func traceClose(prev uistate.Menu, effects []uistate.Effect, reason events.CloseReason) {
	if len(effects) > 0 {
		events.Context.Close(reason)
		return
	}
	if prev.Visible || reason == events.CloseReasonButton {
		events.Context.CloseSuppressed(reason)
	}
}
