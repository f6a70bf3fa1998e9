package host

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
)

// Sender delivers fire-and-forget requests to the host.
type Sender interface {
	Send(ctx context.Context, event string, payload any) (string, error)
}

// Writer encodes requests as newline-delimited envelopes.
type Writer struct {
	mu    sync.Mutex
	w     io.Writer
	newID func() string
}

// NewWriter returns a Writer that tags every request with a fresh UUID.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, newID: uuid.NewString}
}

// Send writes one request and returns its id.
func (w *Writer) Send(ctx context.Context, event string, payload any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	env := Envelope{ID: w.newID(), Event: event}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return env.ID, fmt.Errorf("encode %s payload: %w", event, err)
		}
		env.Data = data
	}
	line, err := json.Marshal(env)
	if err != nil {
		return env.ID, fmt.Errorf("encode %s: %w", event, err)
	}
	line = append(line, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.w.Write(line); err != nil {
		return env.ID, fmt.Errorf("write %s: %w", event, err)
	}
	return env.ID, nil
}

type discard struct{}

func (discard) Send(ctx context.Context, event string, payload any) (string, error) {
	return "", ctx.Err()
}

// Discard accepts and drops every request. It backs standalone runs that
// have no host connection.
var Discard Sender = discard{}
