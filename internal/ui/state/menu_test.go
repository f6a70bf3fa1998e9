package state

import (
	"reflect"
	"testing"

	"github.com/atomicstack/popup-context-menu/internal/menu"
)

func descriptor(title string, entries ...menu.Entry) menu.Descriptor {
	return menu.Descriptor{Title: title, Options: menu.NewOptions(entries...)}
}

func fruitDescriptor() menu.Descriptor {
	return descriptor("Menu",
		menu.Entry{Key: "a", Option: menu.Option{Title: "Apple"}},
		menu.Entry{Key: "b", Option: menu.Option{Title: "Banana"}},
		menu.Entry{Key: "s", Option: menu.Option{Type: "search"}},
	)
}

func itemKeys(m Menu) []string {
	out := make([]string, len(m.Items))
	for i, entry := range m.Items {
		out[i] = entry.Key
	}
	return out
}

func show(t *testing.T, m Menu, desc menu.Descriptor) (Menu, []Effect) {
	t.Helper()
	return Reduce(m, Show{Descriptor: desc})
}

func TestInitialStateIsHidden(t *testing.T) {
	m := New()
	if m.Visible {
		t.Fatal("expected initial state hidden")
	}
	if m.Descriptor.Position != menu.TopLeft {
		t.Fatalf("expected initial position top-left, got %q", m.Descriptor.Position)
	}
}

func TestShowWhileHiddenAppliesImmediately(t *testing.T) {
	m, effects := show(t, New(), fruitDescriptor())
	if len(effects) != 0 {
		t.Fatalf("expected no effects, got %#v", effects)
	}
	if !m.Visible {
		t.Fatal("expected visible after show")
	}
	if m.Descriptor.Title != "Menu" {
		t.Fatalf("expected descriptor applied, got %q", m.Descriptor.Title)
	}
	if m.Descriptor.Position != menu.TopLeft {
		t.Fatalf("expected default position, got %q", m.Descriptor.Position)
	}
	if !reflect.DeepEqual(itemKeys(m), []string{"a", "b", "s"}) {
		t.Fatalf("expected all items, got %v", itemKeys(m))
	}
}

func TestShowKeepsExplicitPosition(t *testing.T) {
	desc := fruitDescriptor()
	desc.Position = menu.BottomRight
	m, _ := show(t, New(), desc)
	if m.Descriptor.Position != menu.BottomRight {
		t.Fatalf("expected bottom-right, got %q", m.Descriptor.Position)
	}
}

func TestReentrantShowHidesThenAppliesLater(t *testing.T) {
	m, _ := show(t, New(), descriptor("First", menu.Entry{Key: "x", Option: menu.Option{Title: "X"}}))
	second := descriptor("Second", menu.Entry{Key: "y", Option: menu.Option{Title: "Y"}})

	m, effects := show(t, m, second)
	if m.Visible {
		t.Fatal("expected popup hidden during grace period")
	}
	if m.Descriptor.Title != "First" {
		t.Fatalf("expected old descriptor retained while hidden, got %q", m.Descriptor.Title)
	}
	if len(effects) != 1 {
		t.Fatalf("expected one scheduled apply, got %#v", effects)
	}
	sched, ok := effects[0].(ScheduleApply)
	if !ok {
		t.Fatalf("expected ScheduleApply, got %T", effects[0])
	}
	if sched.Delay < GraceDelay || GraceDelay.Milliseconds() != 100 {
		t.Fatalf("expected 100ms grace, got %s", sched.Delay)
	}

	m, effects = Reduce(m, GraceElapsed{Descriptor: sched.Descriptor})
	if len(effects) != 0 {
		t.Fatalf("expected no effects on apply, got %#v", effects)
	}
	if !m.Visible || m.Descriptor.Title != "Second" {
		t.Fatalf("expected second descriptor visible, got visible=%v title=%q", m.Visible, m.Descriptor.Title)
	}
	if !reflect.DeepEqual(itemKeys(m), []string{"y"}) {
		t.Fatalf("expected second body only, got %v", itemKeys(m))
	}
}

func TestPendingAppliesAreNotCancelled(t *testing.T) {
	m, _ := show(t, New(), descriptor("First"))
	m, first := show(t, m, descriptor("Second"))
	// The popup is hidden now, so a third show applies at once.
	m, third := show(t, m, descriptor("Third"))
	if len(third) != 0 || m.Descriptor.Title != "Third" || !m.Visible {
		t.Fatalf("expected third applied immediately, got %#v / %q", third, m.Descriptor.Title)
	}
	sched := first[0].(ScheduleApply)
	m, _ = Reduce(m, GraceElapsed{Descriptor: sched.Descriptor})
	if m.Descriptor.Title != "Second" {
		t.Fatalf("expected late grace to apply its own descriptor, got %q", m.Descriptor.Title)
	}
}

func TestHideRetainsDescriptor(t *testing.T) {
	m, _ := show(t, New(), fruitDescriptor())
	m.SetSearch("ban")
	m, effects := Reduce(m, Hide{})
	if len(effects) != 0 {
		t.Fatalf("expected hide to produce no effects, got %#v", effects)
	}
	if m.Visible {
		t.Fatal("expected hidden")
	}
	if m.Descriptor.Title != "Menu" || m.Search != "ban" {
		t.Fatalf("expected descriptor and search retained, got %q / %q", m.Descriptor.Title, m.Search)
	}
}

func TestCloseNotifiesAndResetsSearch(t *testing.T) {
	m, _ := show(t, New(), fruitDescriptor())
	m, _ = Reduce(m, SearchChanged{Text: "ban"})
	m, effects := Reduce(m, Close{})
	if m.Visible {
		t.Fatal("expected hidden after close")
	}
	if m.Search != "" {
		t.Fatalf("expected search reset, got %q", m.Search)
	}
	if !reflect.DeepEqual(effects, []Effect{NotifyClose{}}) {
		t.Fatalf("expected NotifyClose, got %#v", effects)
	}
}

func TestCloseSuppressedWhenCanCloseFalse(t *testing.T) {
	desc := fruitDescriptor()
	no := false
	desc.CanClose = &no
	m, _ := show(t, New(), desc)
	m, _ = Reduce(m, SearchChanged{Text: "ban"})

	for _, ev := range []Event{Close{}, Escape{}} {
		next, effects := Reduce(m, ev)
		if !next.Visible {
			t.Fatalf("expected %T to leave popup visible", ev)
		}
		if next.Search != "ban" {
			t.Fatalf("expected %T to keep search, got %q", ev, next.Search)
		}
		if len(effects) != 0 {
			t.Fatalf("expected %T to produce no effects, got %#v", ev, effects)
		}
	}
}

func TestEscapeWhileHiddenIsIgnored(t *testing.T) {
	m, _ := show(t, New(), fruitDescriptor())
	m, _ = Reduce(m, SearchChanged{Text: "app"})
	m, _ = Reduce(m, Hide{})
	next, effects := Reduce(m, Escape{})
	if len(effects) != 0 {
		t.Fatalf("expected no effects, got %#v", effects)
	}
	if next.Search != "app" {
		t.Fatalf("expected search untouched, got %q", next.Search)
	}
}

func TestEscapeWhileVisibleCloses(t *testing.T) {
	m, _ := show(t, New(), fruitDescriptor())
	m, effects := Reduce(m, Escape{})
	if m.Visible {
		t.Fatal("expected hidden")
	}
	if !reflect.DeepEqual(effects, []Effect{NotifyClose{}}) {
		t.Fatalf("expected NotifyClose, got %#v", effects)
	}
}

func TestBackRequestsParentMenu(t *testing.T) {
	desc := fruitDescriptor()
	m, _ := show(t, New(), desc)
	if _, effects := Reduce(m, Back{}); len(effects) != 0 {
		t.Fatalf("expected no back effect without parent, got %#v", effects)
	}

	desc.Menu = "garage_main"
	m, _ = Reduce(m, Hide{})
	m, _ = show(t, m, desc)
	_, effects := Reduce(m, Back{})
	if !reflect.DeepEqual(effects, []Effect{OpenMenu{ID: "garage_main"}}) {
		t.Fatalf("expected OpenMenu garage_main, got %#v", effects)
	}

	m, _ = Reduce(m, Hide{})
	if _, effects := Reduce(m, Back{}); len(effects) != 0 {
		t.Fatalf("expected back ignored while hidden, got %#v", effects)
	}
}

func TestSearchScenarioFiltersAndMovesCursor(t *testing.T) {
	m, _ := show(t, New(), fruitDescriptor())
	m, _ = Reduce(m, SearchChanged{Text: "ban"})
	if !reflect.DeepEqual(itemKeys(m), []string{"b", "s"}) {
		t.Fatalf("expected [b s], got %v", itemKeys(m))
	}
	if entry, _ := m.Current(); entry.Key != "b" {
		t.Fatalf("expected cursor on banana, got %q", entry.Key)
	}
}

func TestSearchPersistsAcrossShow(t *testing.T) {
	m, _ := show(t, New(), fruitDescriptor())
	m, _ = Reduce(m, SearchChanged{Text: "app"})
	m, _ = Reduce(m, Hide{})
	m, _ = show(t, m, fruitDescriptor())
	if m.Search != "app" {
		t.Fatalf("expected search kept until close, got %q", m.Search)
	}
	if !reflect.DeepEqual(itemKeys(m), []string{"a", "s"}) {
		t.Fatalf("expected filtered list on show, got %v", itemKeys(m))
	}
}

func TestSelectEmitsClickForSelectableEntry(t *testing.T) {
	desc := descriptor("Menu",
		menu.Entry{Key: "s", Option: menu.Option{Type: "search"}},
		menu.Entry{Key: "off", Option: menu.Option{Title: "Off", Disabled: true}},
		menu.Entry{Key: "info", Option: menu.Option{Title: "Info", ReadOnly: true}},
		menu.Entry{Key: "go", Option: menu.Option{Title: "Go", ServerEvent: "do:go"}},
	)
	m, _ := show(t, New(), desc)
	for i := 0; i < 3; i++ {
		m.Cursor = i
		if _, effects := Reduce(m, Select{}); len(effects) != 0 {
			t.Fatalf("expected entry %d not selectable, got %#v", i, effects)
		}
	}
	m.Cursor = 3
	_, effects := Reduce(m, Select{})
	if len(effects) != 1 {
		t.Fatalf("expected click, got %#v", effects)
	}
	click, ok := effects[0].(Click)
	if !ok || click.Entry.Key != "go" || click.Entry.Option.ServerEvent != "do:go" {
		t.Fatalf("unexpected click effect %#v", effects[0])
	}

	m, _ = Reduce(m, Hide{})
	if _, effects := Reduce(m, Select{}); len(effects) != 0 {
		t.Fatalf("expected select ignored while hidden, got %#v", effects)
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	m, _ := show(t, New(), fruitDescriptor())
	before := itemKeys(m)
	_, _ = Reduce(m, SearchChanged{Text: "ban"})
	_, _ = Reduce(m, Close{})
	if !m.Visible || m.Search != "" || !reflect.DeepEqual(itemKeys(m), before) {
		t.Fatalf("expected original state unchanged, got visible=%v search=%q items=%v", m.Visible, m.Search, itemKeys(m))
	}
}

func TestEmptyDescriptorDegrades(t *testing.T) {
	m, _ := show(t, New(), menu.Descriptor{})
	if !m.Visible || len(m.Items) != 0 {
		t.Fatalf("expected visible empty menu, got %#v", m)
	}
	if _, ok := m.Current(); ok {
		t.Fatal("expected no current entry")
	}
	if _, effects := Reduce(m, Select{}); len(effects) != 0 {
		t.Fatalf("expected no click on empty menu, got %#v", effects)
	}
}
