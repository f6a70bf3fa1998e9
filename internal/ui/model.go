package ui

import (
	"context"
	"reflect"

	"github.com/atomicstack/popup-context-menu/internal/data/dispatcher"
	"github.com/atomicstack/popup-context-menu/internal/format/markdown"
	"github.com/atomicstack/popup-context-menu/internal/host"
	"github.com/atomicstack/popup-context-menu/internal/menu"
	"github.com/atomicstack/popup-context-menu/internal/theme"
	"github.com/atomicstack/popup-context-menu/internal/ui/command"
	uistate "github.com/atomicstack/popup-context-menu/internal/ui/state"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultBoxWidth is the popup width used when none is configured.
const DefaultBoxWidth = 44

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Context context.Context
	// Width and Height pin the terminal size; zero follows resize events.
	Width  int
	Height int
	// BoxWidth is the outer width of the popup frame.
	BoxWidth   int
	ShowFooter bool
	// Listener streams host events. Nil runs without a host.
	Listener *host.Listener
	// Sender receives outbound requests. Nil discards them.
	Sender        host.Sender
	MarkdownStyle string
	// Initial is shown immediately, as though the host had sent it.
	Initial *menu.Descriptor
	// ExitOnClose quits the program once the menu is closed.
	ExitOnClose bool
}

// Model implements the Bubble Tea model for the context menu popup.
type Model struct {
	menu uistate.Menu

	search      textinput.Model
	placeholder string
	markdown    *markdown.Renderer

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	boxWidth    int
	showFooter  bool
	exitOnClose bool

	handlers map[reflect.Type]msgHandler

	listener   *host.Listener
	bus        *command.Bus
	dispatcher *dispatcher.Dispatcher
}

// NewModel initialises the popup in its hidden state.
func NewModel(opts Options) *Model {
	m := &Model{
		menu:        uistate.New(),
		search:      newSearchInput(),
		placeholder: menu.DefaultSearchPlaceholder,
		markdown:    markdown.New(opts.MarkdownStyle),
		boxWidth:    opts.BoxWidth,
		showFooter:  opts.ShowFooter,
		exitOnClose: opts.ExitOnClose,
		listener:    opts.Listener,
		bus:         command.New(opts.Context, opts.Sender),
		dispatcher:  dispatcher.New(),
	}
	if m.boxWidth <= 0 {
		m.boxWidth = DefaultBoxWidth
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.registerHandlers()
	if opts.Initial != nil {
		// applying to a hidden menu never yields effects
		_ = m.dispatch(uistate.Show{Descriptor: *opts.Initial})
	}
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.listener == nil {
		return nil
	}
	return waitForHostEvent(m.listener)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(graceElapsedMsg{}):   m.handleGraceElapsedMsg,
		reflect.TypeOf(hostEventMsg{}):      m.handleHostEventMsg,
		reflect.TypeOf(hostDoneMsg{}):       m.handleHostDoneMsg,
		reflect.TypeOf(command.Result{}):    m.handleCommandResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// Menu returns a snapshot of the popup state.
func (m *Model) Menu() uistate.Menu {
	return m.menu
}
