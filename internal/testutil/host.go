package testutil

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/atomicstack/popup-context-menu/internal/host"
)

// Request is one outbound request captured by a fake.
type Request struct {
	ID      string
	Event   string
	Payload json.RawMessage
}

// FakeSender records every request instead of writing it anywhere.
type FakeSender struct {
	mu       sync.Mutex
	requests []Request
	Err      error
}

// Send implements host.Sender.
func (f *FakeSender) Send(ctx context.Context, event string, payload any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id := fmt.Sprintf("req-%d", len(f.requests)+1)
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return id, err
		}
		raw = data
	}
	f.requests = append(f.requests, Request{ID: id, Event: event, Payload: raw})
	return id, f.Err
}

// Requests returns a copy of what has been sent so far.
func (f *FakeSender) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Request, len(f.requests))
	copy(out, f.requests)
	return out
}

// Events returns just the event names sent so far.
func (f *FakeSender) Events() []string {
	reqs := f.Requests()
	names := make([]string, len(reqs))
	for i, req := range reqs {
		names[i] = req.Event
	}
	return names
}

var _ host.Sender = (*FakeSender)(nil)

// Host is a host process stand-in listening on a temporary unix socket.
type Host struct {
	t        *testing.T
	Address  string
	ln       net.Listener
	ready    chan struct{}
	mu       sync.Mutex
	conn     net.Conn
	requests chan host.Envelope
}

// StartHost listens on a fresh socket and accepts a single popup connection.
// The test is skipped when unix sockets are unavailable.
func StartHost(t *testing.T) *Host {
	t.Helper()
	dir, err := os.MkdirTemp("", "popup-host-*")
	if err != nil {
		t.Fatalf("failed to create socket dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	path := filepath.Join(dir, "host.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Skipf("skipping: unix sockets unavailable: %v", err)
	}
	h := &Host{
		t:        t,
		Address:  "unix:" + path,
		ln:       ln,
		ready:    make(chan struct{}),
		requests: make(chan host.Envelope, 32),
	}
	go h.accept()
	t.Cleanup(h.Close)
	return h
}

func (h *Host) accept() {
	conn, err := h.ln.Accept()
	h.mu.Lock()
	h.conn = conn
	h.mu.Unlock()
	close(h.ready)
	if err != nil {
		close(h.requests)
		return
	}
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var env host.Envelope
		if err := json.Unmarshal([]byte(line), &env); err != nil {
			continue
		}
		h.requests <- env
	}
	close(h.requests)
}

func (h *Host) connection() net.Conn {
	h.t.Helper()
	select {
	case <-h.ready:
	case <-time.After(2 * time.Second):
		h.t.Fatal("timed out waiting for popup to connect")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conn == nil {
		h.t.Fatal("host accept failed")
	}
	return h.conn
}

// Emit writes one inbound event line to the popup.
func (h *Host) Emit(event string, data any) {
	h.t.Helper()
	env := host.Envelope{Event: event}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			h.t.Fatalf("encode %s: %v", event, err)
		}
		env.Data = raw
	}
	line, err := json.Marshal(env)
	if err != nil {
		h.t.Fatalf("encode %s: %v", event, err)
	}
	if _, err := h.connection().Write(append(line, '\n')); err != nil {
		h.t.Fatalf("write %s: %v", event, err)
	}
}

// EmitRaw writes line verbatim followed by a newline.
func (h *Host) EmitRaw(line string) {
	h.t.Helper()
	if _, err := h.connection().Write([]byte(line + "\n")); err != nil {
		h.t.Fatalf("write raw line: %v", err)
	}
}

// Next waits for the next request from the popup.
func (h *Host) Next(timeout time.Duration) (host.Envelope, bool) {
	select {
	case env, ok := <-h.requests:
		return env, ok
	case <-time.After(timeout):
		return host.Envelope{}, false
	}
}

// Close stops listening and drops the popup connection.
func (h *Host) Close() {
	_ = h.ln.Close()
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conn != nil {
		_ = h.conn.Close()
	}
}
