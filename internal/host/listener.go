package host

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
)

// Event conveys one inbound host message or a read/decode error.
type Event struct {
	Name string
	Data json.RawMessage
	Err  error
}

// Listener reads newline-delimited envelopes and publishes them as events.
type Listener struct {
	r io.Reader

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// Listen starts reading from r until EOF, a read error, or Stop.
func Listen(r io.Reader) *Listener {
	ctx, cancel := context.WithCancel(context.Background())
	l := &Listener{
		r:      r,
		ctx:    ctx,
		cancel: cancel,
		events: make(chan Event, 16),
	}

	l.wg.Add(1)
	go l.read()

	go func() {
		l.wg.Wait()
		close(l.events)
	}()

	return l
}

// Events returns the channel of inbound events. It is closed once reading stops.
func (l *Listener) Events() <-chan Event {
	return l.events
}

// Stop cancels the listener. A read already blocked on the underlying reader
// returns only when that reader is closed or yields data.
func (l *Listener) Stop() {
	l.cancel()
}

// Wait blocks until the reader goroutine has exited and Events is closed.
func (l *Listener) Wait() {
	l.wg.Wait()
}

func (l *Listener) read() {
	defer l.wg.Done()

	emit := func(evt Event) bool {
		select {
		case <-l.ctx.Done():
			return false
		case l.events <- evt:
			return true
		}
	}

	reader := bufio.NewReader(l.r)
	for {
		line, err := reader.ReadBytes('\n')
		if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
			if !emit(decodeLine(trimmed)) {
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				emit(Event{Err: fmt.Errorf("read host stream: %w", err)})
			}
			return
		}
		if l.ctx.Err() != nil {
			return
		}
	}
}

func decodeLine(line []byte) Event {
	var env Envelope
	if err := json.Unmarshal(line, &env); err != nil {
		return Event{Err: fmt.Errorf("decode host message: %w", err)}
	}
	if env.Event == "" {
		return Event{Err: fmt.Errorf("decode host message: missing event name")}
	}
	return Event{Name: env.Event, Data: env.Data}
}
