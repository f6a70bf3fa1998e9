package state

import (
	"time"

	"github.com/atomicstack/popup-context-menu/internal/menu"
)

// GraceDelay is how long a show arriving while the popup is visible keeps it
// hidden before the new descriptor is applied, so exit and enter transitions
// never overlap.
const GraceDelay = 100 * time.Millisecond

// Menu is the single owned state of the popup.
type Menu struct {
	Descriptor     menu.Descriptor
	Visible        bool
	Search         string
	Items          []menu.Entry
	Cursor         int
	ViewportOffset int

	// lastKey remembers the entry under the cursor when a search started so
	// clearing the search can return to it.
	lastKey string
}

// New returns the initial hidden state.
func New() Menu {
	return Menu{Descriptor: menu.Descriptor{Position: menu.TopLeft}}
}

// Event is an input to Reduce.
type Event interface{ event() }

// Show applies a descriptor received from the host.
type Show struct{ Descriptor menu.Descriptor }

// GraceElapsed fires when a re-entrant show's delay has passed.
type GraceElapsed struct{ Descriptor menu.Descriptor }

// Hide is the host asking the popup to disappear.
type Hide struct{}

// Close is a user-initiated dismissal.
type Close struct{}

// Escape is the escape key.
type Escape struct{}

// Back requests the parent menu.
type Back struct{}

// SearchChanged carries the current search input text.
type SearchChanged struct{ Text string }

// Select chooses the entry under the cursor.
type Select struct{}

func (Show) event()          {}
func (GraceElapsed) event()  {}
func (Hide) event()          {}
func (Close) event()         {}
func (Escape) event()        {}
func (Back) event()          {}
func (SearchChanged) event() {}
func (Select) event()        {}

// Effect is an outbound consequence of a transition.
type Effect interface{ effect() }

// ScheduleApply asks the caller to deliver GraceElapsed after Delay.
type ScheduleApply struct {
	Descriptor menu.Descriptor
	Delay      time.Duration
}

// NotifyClose tells the host the user dismissed the menu.
type NotifyClose struct{}

// OpenMenu asks the host to reopen the menu with ID as a back navigation.
type OpenMenu struct{ ID string }

// Click reports a chosen option to the host.
type Click struct{ Entry menu.Entry }

func (ScheduleApply) effect() {}
func (NotifyClose) effect()   {}
func (OpenMenu) effect()      {}
func (Click) effect()         {}

// Reduce computes the state following ev and the effects it produces. It
// never mutates m in place.
func Reduce(m Menu, ev Event) (Menu, []Effect) {
	switch e := ev.(type) {
	case Show:
		if m.Visible {
			m.Visible = false
			return m, []Effect{ScheduleApply{Descriptor: e.Descriptor, Delay: GraceDelay}}
		}
		return m.apply(e.Descriptor), nil
	case GraceElapsed:
		return m.apply(e.Descriptor), nil
	case Hide:
		m.Visible = false
		return m, nil
	case Close:
		return m.close()
	case Escape:
		if !m.Visible {
			return m, nil
		}
		return m.close()
	case Back:
		if !m.Visible || !m.Descriptor.HasParent() {
			return m, nil
		}
		return m, []Effect{OpenMenu{ID: m.Descriptor.Menu}}
	case SearchChanged:
		m.SetSearch(e.Text)
		return m, nil
	case Select:
		if !m.Visible {
			return m, nil
		}
		entry, ok := m.Current()
		if !ok || !entry.Option.Selectable() {
			return m, nil
		}
		return m, []Effect{Click{Entry: entry}}
	}
	return m, nil
}

func (m Menu) apply(desc menu.Descriptor) Menu {
	m.Descriptor = desc.WithDefaults()
	m.Visible = true
	m.Cursor = 0
	m.ViewportOffset = 0
	m.lastKey = ""
	m.refilter()
	if m.Search != "" {
		if idx := BestMatchIndex(m.Items, m.Search); idx >= 0 {
			m.Cursor = idx
		}
	}
	return m
}

func (m Menu) close() (Menu, []Effect) {
	if !m.Descriptor.Closable() {
		return m, nil
	}
	m.Visible = false
	m.SetSearch("")
	return m, []Effect{NotifyClose{}}
}

// Current returns the entry under the cursor.
func (m Menu) Current() (menu.Entry, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Items) {
		return menu.Entry{}, false
	}
	return m.Items[m.Cursor], true
}

// IndexOf returns the filtered index of the entry with key.
func (m Menu) IndexOf(key string) int {
	for i, entry := range m.Items {
		if entry.Key == key {
			return i
		}
	}
	return -1
}

func (m *Menu) refilter() {
	m.Items = menu.Filter(m.Descriptor.Options.Entries(), m.Search)
	if len(m.Items) == 0 {
		m.Cursor = 0
		m.ViewportOffset = 0
		return
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if m.Cursor >= len(m.Items) {
		m.Cursor = len(m.Items) - 1
	}
	if m.ViewportOffset > len(m.Items)-1 {
		m.ViewportOffset = 0
	}
}
