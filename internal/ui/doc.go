// Package ui contains the Bubble Tea program that renders the context menu
// popup. The Model owns no menu logic of its own: every input becomes a
// state.Event fed to state.Reduce, and every returned state.Effect becomes a
// tea.Cmd.
//
// Message flow:
//   - Host events arrive through a host.Listener. Update pulls them one at a
//     time with waitForHostEvent and hands each to the dispatcher, which
//     decodes showContext and hideContext into reducer events.
//   - Key presses are routed through a typed handler registry. Navigation
//     keys move the cursor, esc, enter and back map to reducer events, and
//     everything else goes to the search text input, whose value is echoed
//     to the reducer on every change.
//   - Left clicks are hit-tested against the rendered box: the close and back
//     buttons in the header, and option rows, which select. The wheel moves
//     the cursor.
//   - A show arriving while the popup is visible hides it and schedules a
//     tea.Tick; the tick carries its own descriptor back as graceElapsedMsg.
//   - closeContext, openContext, and clickContext requests are sent through
//     the command bus as fire-and-forget commands; failures are only logged.
//
// Rendering places a framed box in the descriptor's corner. Each option is
// drawn by an exhaustive switch over menu.Kind.
package ui
