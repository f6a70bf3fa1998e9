package app

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/atomicstack/popup-context-menu/internal/host"
	"github.com/atomicstack/popup-context-menu/internal/logging/events"
	"github.com/atomicstack/popup-context-menu/internal/menu"
	"github.com/atomicstack/popup-context-menu/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	Host          string
	MenuFile      string
	Width         int
	Height        int
	BoxWidth      int
	ShowFooter    bool
	MarkdownStyle string
}

// Run bootstraps and executes the Bubble Tea program. Extra program options
// are appended after the defaults, so callers can swap input and output.
func Run(ctx context.Context, cfg Config, opts ...tea.ProgramOption) error {
	if ctx == nil {
		ctx = context.Background()
	}
	modelOpts := ui.Options{
		Context:       ctx,
		Width:         cfg.Width,
		Height:        cfg.Height,
		BoxWidth:      cfg.BoxWidth,
		ShowFooter:    cfg.ShowFooter,
		MarkdownStyle: cfg.MarkdownStyle,
		Sender:        host.Discard,
	}

	if cfg.MenuFile != "" {
		desc, err := menu.LoadFile(cfg.MenuFile)
		if err != nil {
			return err
		}
		events.App.Preload(cfg.MenuFile, desc.Title, desc.Options.Len())
		modelOpts.Initial = &desc
	}

	if cfg.Host != "" {
		conn, err := host.Dial(ctx, cfg.Host)
		if err != nil {
			return err
		}
		defer closeConn(conn)
		listener := host.Listen(conn)
		defer listener.Stop()
		modelOpts.Listener = listener
		modelOpts.Sender = host.NewWriter(conn)
	} else {
		modelOpts.ExitOnClose = true
	}

	model := ui.NewModel(modelOpts)
	programOpts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx)}, opts...)
	program := tea.NewProgram(model, programOpts...)
	_, err := program.Run()
	if err == nil {
		return nil
	}
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
		events.App.Stop("killed")
		return nil
	}
	return fmt.Errorf("run program: %w", err)
}

func closeConn(conn net.Conn) {
	if err := conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		events.Host.Error(err)
		return
	}
	events.Host.Closed()
}
