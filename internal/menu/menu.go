package menu

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Position anchors the popup to a terminal corner.
type Position string

const (
	TopLeft     Position = "top-left"
	TopRight    Position = "top-right"
	BottomLeft  Position = "bottom-left"
	BottomRight Position = "bottom-right"
)

// Valid reports whether p is one of the four corners.
func (p Position) Valid() bool {
	switch p {
	case TopLeft, TopRight, BottomLeft, BottomRight:
		return true
	}
	return false
}

// Top reports whether the popup is anchored to the top edge.
func (p Position) Top() bool {
	return p != BottomLeft && p != BottomRight
}

// Right reports whether the popup is anchored to the right edge.
func (p Position) Right() bool {
	return p == TopRight || p == BottomRight
}

// Descriptor is the full payload describing one context menu instance.
type Descriptor struct {
	Position Position `json:"position,omitempty"`
	Title    string   `json:"title"`
	Menu     string   `json:"menu,omitempty"`
	CanClose *bool    `json:"canClose,omitempty"`
	Options  Options  `json:"options"`
}

// UnmarshalJSON decodes the descriptor, dropping fields of the wrong type
// rather than rejecting the whole menu.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	type plain Descriptor
	decoded, err := decodeLenient[plain](data, "descriptor")
	if err != nil {
		return err
	}
	*d = Descriptor(decoded)
	return nil
}

// WithDefaults returns a copy with a missing position set to top-left.
func (d Descriptor) WithDefaults() Descriptor {
	if d.Position == "" {
		d.Position = TopLeft
	}
	return d
}

// Closable reports whether user-initiated close is allowed. Only an
// explicit false suppresses it.
func (d Descriptor) Closable() bool {
	return d.CanClose == nil || *d.CanClose
}

// HasParent reports whether the back button should be offered.
func (d Descriptor) HasParent() bool {
	return d.Menu != ""
}

// Kind discriminates the option variants the renderer knows about.
type Kind int

const (
	KindStandard Kind = iota
	KindSearch
	KindProgress
)

func (k Kind) String() string {
	switch k {
	case KindSearch:
		return "search"
	case KindProgress:
		return "progress"
	default:
		return "standard"
	}
}

const searchType = "search"

// DefaultSearchPlaceholder is shown in an empty search entry without its own placeholder.
const DefaultSearchPlaceholder = "Search"

// Option is one entry within a menu. Fields the popup does not interpret are
// kept so they can be handed back to the host untouched.
type Option struct {
	Type          string          `json:"type,omitempty"`
	Placeholder   string          `json:"placeholder,omitempty"`
	Menu          string          `json:"menu,omitempty"`
	Title         string          `json:"title,omitempty"`
	Description   string          `json:"description,omitempty"`
	Arrow         bool            `json:"arrow,omitempty"`
	Image         string          `json:"image,omitempty"`
	Icon          json.RawMessage `json:"icon,omitempty"`
	IconColor     string          `json:"iconColor,omitempty"`
	IconAnimation string          `json:"iconAnimation,omitempty"`
	Progress      *float64        `json:"progress,omitempty"`
	ColorScheme   string          `json:"colorScheme,omitempty"`
	ReadOnly      bool            `json:"readOnly,omitempty"`
	Metadata      Metadata        `json:"metadata,omitempty"`
	Disabled      bool            `json:"disabled,omitempty"`
	Event         string          `json:"event,omitempty"`
	ServerEvent   string          `json:"serverEvent,omitempty"`
	Args          json.RawMessage `json:"args,omitempty"`

	// Raw holds the option exactly as the host sent it.
	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the option and retains its raw form. It fails only
// when data is not an object; mistyped fields are left zero.
func (o *Option) UnmarshalJSON(data []byte) error {
	type plain Option
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("option is not an object")
	}
	decoded, err := decodeLenient[plain](trimmed, "option")
	if err != nil {
		return err
	}
	*o = Option(decoded)
	o.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// Kind returns the variant used to render the option.
func (o Option) Kind() Kind {
	if o.Type == searchType {
		return KindSearch
	}
	if o.Progress != nil {
		return KindProgress
	}
	return KindStandard
}

// SearchPlaceholder returns the placeholder text for a search entry.
func (o Option) SearchPlaceholder() string {
	if o.Placeholder != "" {
		return o.Placeholder
	}
	return DefaultSearchPlaceholder
}

// Selectable reports whether choosing the option should notify the host.
func (o Option) Selectable() bool {
	return o.Kind() != KindSearch && !o.Disabled && !o.ReadOnly
}

// HasSubmenu reports whether the option leads to another menu.
func (o Option) HasSubmenu() bool {
	return o.Arrow || o.Menu != ""
}

// Entry pairs an option with its key.
type Entry struct {
	Key    string
	Option Option
}

// CloneEntries produces a shallow copy of the provided entries.
func CloneEntries(entries []Entry) []Entry {
	if entries == nil {
		return nil
	}
	dup := make([]Entry, len(entries))
	copy(dup, entries)
	return dup
}
