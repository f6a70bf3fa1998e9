// Package host carries the line-delimited JSON conversation with the host
// process: a Listener streams inbound events and a Writer sends requests.
package host

import "encoding/json"

// Inbound event names.
const (
	EventShowContext = "showContext"
	EventHideContext = "hideContext"
)

// Outbound request names.
const (
	RequestOpenContext  = "openContext"
	RequestCloseContext = "closeContext"
	RequestClickContext = "clickContext"
)

// Envelope is one line on the wire in either direction.
type Envelope struct {
	ID    string          `json:"id,omitempty"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// OpenContext is the payload of an openContext request.
type OpenContext struct {
	ID   string `json:"id,omitempty"`
	Back bool   `json:"back"`
}

// ClickContext is the payload of a clickContext request.
type ClickContext struct {
	ID     string          `json:"id"`
	Option json.RawMessage `json:"option,omitempty"`
}
