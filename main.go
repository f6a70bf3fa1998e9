package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/atomicstack/popup-context-menu/internal/app"
	"github.com/atomicstack/popup-context-menu/internal/config"
	"github.com/atomicstack/popup-context-menu/internal/host"
	"github.com/atomicstack/popup-context-menu/internal/logging"
	"github.com/atomicstack/popup-context-menu/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	traceStartup(runtimeCfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := app.Run(ctx, runtimeCfg.App)
	stop()
	if err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg, os.Stdout.Fd()))
}

// runMode names how the popup is driven: by a live host, by a menu file
// alone, or by a preloaded menu that a host then takes over.
func runMode(cfg app.Config) string {
	switch {
	case cfg.Host != "" && cfg.MenuFile != "":
		return "host+menu-file"
	case cfg.Host != "":
		return "host"
	case cfg.MenuFile != "":
		return "standalone"
	}
	return "none"
}

// startupTracePayload summarises what this run will connect to and render.
func startupTracePayload(cfg config.Config, outFd uintptr) map[string]interface{} {
	payload := map[string]interface{}{
		"argv":     cfg.Args,
		"flags":    cfg.Flags,
		"mode":     runMode(cfg.App),
		"trace":    cfg.Logging.Trace,
		"logFile":  cfg.Logging.FilePath,
		"terminal": probeTerminal(outFd),
	}
	if cfg.File != "" {
		payload["configFile"] = cfg.File
	}
	if cfg.App.Host != "" {
		if network, address, err := host.ParseAddress(cfg.App.Host); err == nil {
			payload["host"] = map[string]string{"network": network, "address": address}
		} else {
			payload["hostError"] = err.Error()
		}
	}
	if cfg.App.MenuFile != "" {
		payload["menuFile"] = cfg.App.MenuFile
	}
	return payload
}

type terminalInfo struct {
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// probeTerminal reports the size of the terminal the popup draws into.
func probeTerminal(fd uintptr) terminalInfo {
	info := terminalInfo{}
	if !term.IsTerminal(int(fd)) {
		return info
	}
	info.IsTerminal = true
	width, height, err := term.GetSize(int(fd))
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.Width, info.Height = width, height
	return info
}
