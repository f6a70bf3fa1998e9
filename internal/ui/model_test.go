package ui

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/popup-context-menu/internal/host"
	"github.com/atomicstack/popup-context-menu/internal/menu"
	"github.com/atomicstack/popup-context-menu/internal/testutil"
	uistate "github.com/atomicstack/popup-context-menu/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

const fruitMenu = `{
	"title": "Fruit",
	"options": {
		"a": {"title": "Apple"},
		"b": {"title": "Banana", "description": "yellow"},
		"s": {"type": "search", "placeholder": "Find fruit"}
	}
}`

func decode(t *testing.T, data string) menu.Descriptor {
	t.Helper()
	desc, err := menu.Decode([]byte(data))
	if err != nil {
		t.Fatalf("decode descriptor: %v", err)
	}
	return desc
}

func showEvent(data string) hostEventMsg {
	return hostEventMsg{event: host.Event{Name: host.EventShowContext, Data: json.RawMessage(data)}}
}

func hideEvent() hostEventMsg {
	return hostEventMsg{event: host.Event{Name: host.EventHideContext}}
}

func newTestHarness(t *testing.T, opts Options) (*Harness, *testutil.FakeSender) {
	t.Helper()
	sender := &testutil.FakeSender{}
	opts.Sender = sender
	if opts.MarkdownStyle == "" {
		opts.MarkdownStyle = "notty"
	}
	if opts.Width == 0 {
		opts.Width = 60
	}
	if opts.Height == 0 {
		opts.Height = 16
	}
	return NewHarness(NewModel(opts)), sender
}

func keysOf(entries []menu.Entry) []string {
	out := make([]string, len(entries))
	for i, entry := range entries {
		out[i] = entry.Key
	}
	return out
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func TestNewModelStartsHidden(t *testing.T) {
	h, _ := newTestHarness(t, Options{})
	if h.Model().Menu().Visible {
		t.Fatal("expected popup hidden before any show")
	}
	if h.View() != "" {
		t.Fatalf("expected empty view while hidden, got %q", h.View())
	}
}

func TestShowRendersTitleAndOptions(t *testing.T) {
	h, _ := newTestHarness(t, Options{})
	h.Send(showEvent(fruitMenu))
	view := ansi.Strip(h.View())
	for _, want := range []string{"Fruit", "Apple", "Banana", "yellow", "Find fruit", closeButton} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
	if strings.Contains(view, backButton) {
		t.Fatalf("expected no back button without a parent menu:\n%s", view)
	}
}

func TestInitialDescriptorIsShown(t *testing.T) {
	desc := decode(t, fruitMenu)
	h, _ := newTestHarness(t, Options{Initial: &desc})
	if !h.Model().Menu().Visible {
		t.Fatal("expected initial descriptor applied")
	}
}

func TestReentrantShowHidesForGraceThenApplies(t *testing.T) {
	h, _ := newTestHarness(t, Options{})
	h.Send(showEvent(fruitMenu))

	start := time.Now()
	_, cmd := h.Model().Update(showEvent(`{"title":"Second","options":{"x":{"title":"Other"}}}`))
	if h.Model().Menu().Visible {
		t.Fatal("expected popup hidden during grace period")
	}
	if h.View() != "" {
		t.Fatal("expected nothing rendered during grace period")
	}
	if cmd == nil {
		t.Fatal("expected grace command")
	}

	h.processCmd(cmd)
	if elapsed := time.Since(start); elapsed < uistate.GraceDelay {
		t.Fatalf("expected at least %v before applying, got %v", uistate.GraceDelay, elapsed)
	}
	state := h.Model().Menu()
	if !state.Visible || state.Descriptor.Title != "Second" {
		t.Fatalf("expected second descriptor applied, got %#v", state.Descriptor)
	}
	if !strings.Contains(ansi.Strip(h.View()), "Other") {
		t.Fatalf("expected second menu rendered:\n%s", h.View())
	}
}

func TestHideKeepsDescriptor(t *testing.T) {
	h, sender := newTestHarness(t, Options{})
	h.Send(showEvent(fruitMenu))
	h.Send(hideEvent())
	state := h.Model().Menu()
	if state.Visible || state.Descriptor.Title != "Fruit" {
		t.Fatalf("expected hidden with descriptor retained, got %#v", state)
	}
	if len(sender.Requests()) != 0 {
		t.Fatalf("expected hide to send nothing, got %v", sender.Events())
	}
}

func TestEscapeClosesAndNotifiesHost(t *testing.T) {
	h, sender := newTestHarness(t, Options{})
	h.Send(showEvent(fruitMenu))
	h.Send(key(tea.KeyEsc))
	if h.Model().Menu().Visible {
		t.Fatal("expected popup hidden after escape")
	}
	if got := sender.Events(); len(got) != 1 || got[0] != host.RequestCloseContext {
		t.Fatalf("expected one closeContext, got %v", got)
	}
}

func TestExitOnCloseQuits(t *testing.T) {
	h, sender := newTestHarness(t, Options{ExitOnClose: true})
	h.Send(showEvent(fruitMenu))
	h.Send(key(tea.KeyEsc))
	if !h.Quit() {
		t.Fatal("expected quit after close")
	}
	if got := sender.Events(); len(got) != 1 || got[0] != host.RequestCloseContext {
		t.Fatalf("expected closeContext before quitting, got %v", got)
	}
}

func TestCloseKeepsRunningByDefault(t *testing.T) {
	h, _ := newTestHarness(t, Options{})
	h.Send(showEvent(fruitMenu))
	h.Send(key(tea.KeyEsc))
	if h.Quit() {
		t.Fatal("expected the program to wait for the next show")
	}
}

func TestEscapeWhileHiddenIsIgnored(t *testing.T) {
	h, sender := newTestHarness(t, Options{})
	h.Send(showEvent(fruitMenu))
	h.Send(hideEvent())
	h.Send(key(tea.KeyEsc))
	if len(sender.Requests()) != 0 {
		t.Fatalf("expected no requests while hidden, got %v", sender.Events())
	}
}

func TestEscapeSuppressedWhenCanCloseFalse(t *testing.T) {
	h, sender := newTestHarness(t, Options{})
	h.Send(showEvent(`{"title":"Locked","canClose":false,"options":{"a":{"title":"A"}}}`))
	h.Send(key(tea.KeyEsc))
	if !h.Model().Menu().Visible {
		t.Fatal("expected popup to stay visible")
	}
	if len(sender.Requests()) != 0 {
		t.Fatalf("expected no closeContext, got %v", sender.Events())
	}
}

func TestBackSendsOpenContext(t *testing.T) {
	h, sender := newTestHarness(t, Options{})
	h.Send(showEvent(`{"title":"Child","menu":"root","options":{"a":{"title":"A"}}}`))
	if !strings.Contains(ansi.Strip(h.View()), backButton) {
		t.Fatalf("expected back button for a child menu:\n%s", h.View())
	}
	h.Send(tea.KeyMsg{Type: tea.KeyLeft, Alt: true})
	h.Send(key(tea.KeyBackspace))
	reqs := sender.Requests()
	if len(reqs) != 2 {
		t.Fatalf("expected two openContext requests, got %v", sender.Events())
	}
	for _, req := range reqs {
		if req.Event != host.RequestOpenContext || string(req.Payload) != `{"id":"root","back":true}` {
			t.Fatalf("unexpected request %#v", req)
		}
	}
}

func TestSearchTypingFiltersAndMovesCursor(t *testing.T) {
	h, _ := newTestHarness(t, Options{})
	h.Send(showEvent(fruitMenu))
	h.Keys("ban")

	state := h.Model().Menu()
	if state.Search != "ban" {
		t.Fatalf("expected search echoed, got %q", state.Search)
	}
	if got := keysOf(state.Items); strings.Join(got, ",") != "b,s" {
		t.Fatalf("expected [b s], got %v", got)
	}
	if entry, _ := state.Current(); entry.Key != "b" {
		t.Fatalf("expected cursor on banana, got %q", entry.Key)
	}
	view := ansi.Strip(h.View())
	if strings.Contains(view, "Apple") || !strings.Contains(view, "ban") {
		t.Fatalf("unexpected filtered view:\n%s", view)
	}

	h.Send(key(tea.KeyBackspace))
	if got := h.Model().Menu().Search; got != "ba" {
		t.Fatalf("expected backspace to edit search, got %q", got)
	}
}

func TestCloseResetsSearchInput(t *testing.T) {
	h, _ := newTestHarness(t, Options{})
	h.Send(showEvent(fruitMenu))
	h.Keys("app")
	h.Send(key(tea.KeyEsc))
	h.Send(showEvent(fruitMenu))
	if got := h.Model().Menu().Search; got != "" {
		t.Fatalf("expected search cleared by close, got %q", got)
	}
	if got := h.Model().search.Value(); got != "" {
		t.Fatalf("expected input cleared by close, got %q", got)
	}
	if len(h.Model().Menu().Items) != 3 {
		t.Fatalf("expected unfiltered list, got %v", keysOf(h.Model().Menu().Items))
	}
}

func TestEnterClicksSelectableOption(t *testing.T) {
	h, sender := newTestHarness(t, Options{})
	h.Send(showEvent(`{"title":"M","options":{
		"off": {"title": "Off", "disabled": true},
		"go": {"title": "Go", "event": "menu:go", "args": {"n": 1}}
	}}`))
	h.Send(key(tea.KeyEnter))
	if len(sender.Requests()) != 0 {
		t.Fatalf("expected disabled option not clicked, got %v", sender.Events())
	}
	h.Send(key(tea.KeyDown))
	h.Send(key(tea.KeyEnter))
	reqs := sender.Requests()
	if len(reqs) != 1 || reqs[0].Event != host.RequestClickContext {
		t.Fatalf("expected one clickContext, got %v", sender.Events())
	}
	var payload struct {
		ID     string         `json:"id"`
		Option map[string]any `json:"option"`
	}
	if err := json.Unmarshal(reqs[0].Payload, &payload); err != nil {
		t.Fatalf("bad payload %s: %v", reqs[0].Payload, err)
	}
	if payload.ID != "go" || payload.Option["event"] != "menu:go" {
		t.Fatalf("unexpected click payload %s", reqs[0].Payload)
	}
}

func TestCursorWrapsAndScrolls(t *testing.T) {
	var b strings.Builder
	b.WriteString(`{"title":"Long","options":[`)
	for i := 0; i < 20; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`{"title":"item-`)
		b.WriteString(string(rune('a' + i)))
		b.WriteString(`"}`)
	}
	b.WriteString(`]}`)
	h, _ := newTestHarness(t, Options{Height: 8})
	h.Send(showEvent(b.String()))

	view := ansi.Strip(h.View())
	if strings.Contains(view, "item-t") {
		t.Fatalf("expected last item outside viewport:\n%s", view)
	}
	h.Send(key(tea.KeyUp))
	if h.Model().Menu().Cursor != 19 {
		t.Fatalf("expected cursor to wrap to the end, got %d", h.Model().Menu().Cursor)
	}
	if view := ansi.Strip(h.View()); !strings.Contains(view, "item-t") {
		t.Fatalf("expected viewport to follow cursor:\n%s", view)
	}
	h.Send(key(tea.KeyHome))
	if h.Model().Menu().Cursor != 0 {
		t.Fatalf("expected home to move to the first entry")
	}
}

func TestPlacementFollowsPosition(t *testing.T) {
	h, _ := newTestHarness(t, Options{Width: 60, Height: 12, BoxWidth: 30})
	h.Send(showEvent(`{"title":"T","options":{"a":{"title":"A"}}}`))
	lines := strings.Split(ansi.Strip(h.View()), "\n")
	if !strings.HasPrefix(lines[0], "╭") {
		t.Fatalf("expected box in the top-left corner:\n%s", strings.Join(lines, "\n"))
	}

	h.Send(hideEvent())
	h.Send(showEvent(`{"title":"T","position":"bottom-right","options":{"a":{"title":"A"}}}`))
	lines = strings.Split(ansi.Strip(h.View()), "\n")
	last := lines[len(lines)-1]
	if !strings.HasSuffix(last, "╯") || !strings.HasPrefix(last, " ") {
		t.Fatalf("expected box in the bottom-right corner:\n%s", strings.Join(lines, "\n"))
	}
	if strings.TrimSpace(lines[0]) != "" {
		t.Fatalf("expected empty top row for a bottom anchored box:\n%s", strings.Join(lines, "\n"))
	}
}

func TestProgressAndMetadataRender(t *testing.T) {
	h, _ := newTestHarness(t, Options{})
	h.Send(showEvent(`{"title":"Status","options":{
		"fuel": {"title": "Fuel", "progress": 50, "colorScheme": "green",
			"metadata": {"Tank": "60 L"}}
	}}`))
	view := ansi.Strip(h.View())
	if !strings.Contains(view, "50%") {
		t.Fatalf("expected progress percentage:\n%s", view)
	}
	if !strings.Contains(view, "Tank") || !strings.Contains(view, "60 L") {
		t.Fatalf("expected metadata for the entry under the cursor:\n%s", view)
	}
}

func TestHostEventsDriveState(t *testing.T) {
	h, _ := newTestHarness(t, Options{})
	h.Send(showEvent(fruitMenu))
	if !h.Model().Menu().Visible {
		t.Fatal("expected showContext to display the menu")
	}
	h.Send(showEvent(`["not a descriptor"]`))
	if !h.Model().Menu().Visible || h.Model().Menu().Descriptor.Title != "Fruit" {
		t.Fatal("expected malformed show to be dropped")
	}
	h.Send(hideEvent())
	if h.Model().Menu().Visible {
		t.Fatal("expected hideContext to hide the menu")
	}
}

func TestMistypedFieldsStillShowMenu(t *testing.T) {
	h, _ := newTestHarness(t, Options{})
	h.Send(showEvent(fruitMenu))
	h.Send(hideEvent())
	h.Send(showEvent(`{"title":"Loose","options":{
		"a": {"title": "Apple", "metadata": 42},
		"b": {"title": 5},
		"c": {"title": "Cherry", "progress": "50", "disabled": 1}
	}}`))
	state := h.Model().Menu()
	if !state.Visible || state.Descriptor.Title != "Loose" {
		t.Fatalf("expected the new menu applied, got %#v", state.Descriptor)
	}
	if got := keysOf(state.Items); strings.Join(got, ",") != "a,b,c" {
		t.Fatalf("expected every option kept, got %v", got)
	}
	view := ansi.Strip(h.View())
	if !strings.Contains(view, "Apple") || !strings.Contains(view, "Cherry") {
		t.Fatalf("expected valid fields rendered:\n%s", view)
	}
}

func TestHostDisconnectQuits(t *testing.T) {
	h, _ := newTestHarness(t, Options{})
	h.Send(hostDoneMsg{})
	if !h.Quit() {
		t.Fatal("expected quit once the host stream ends")
	}
}

func TestCtrlCQuitsWhileHidden(t *testing.T) {
	h, _ := newTestHarness(t, Options{})
	h.Send(key(tea.KeyCtrlC))
	if !h.Quit() {
		t.Fatal("expected ctrl+c to quit")
	}
}

func TestSendFailuresAreNotSurfaced(t *testing.T) {
	h, sender := newTestHarness(t, Options{})
	sender.Err = errTest
	h.Send(showEvent(fruitMenu))
	h.Send(key(tea.KeyEsc))
	if h.Model().Menu().Visible {
		t.Fatal("expected close to proceed despite send failure")
	}
	if strings.Contains(h.View(), errTest.Error()) {
		t.Fatal("expected send errors kept out of the view")
	}
}

type testError string

func (e testError) Error() string { return string(e) }

const errTest = testError("host unreachable")
