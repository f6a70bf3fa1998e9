package menu

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/atomicstack/popup-context-menu/internal/logging"
)

// Options is the ordered option set of a descriptor. Hosts may send either an
// object keyed by option id or a plain list; list entries are keyed by their
// position.
type Options struct {
	entries []Entry
}

// NewOptions builds an option set from entries, keeping the first position of
// a repeated key and the last value written to it.
func NewOptions(entries ...Entry) Options {
	var opts Options
	for _, entry := range entries {
		opts.set(entry.Key, entry.Option)
	}
	return opts
}

// Entries returns the options in display order.
func (o Options) Entries() []Entry {
	return CloneEntries(o.entries)
}

// Len returns the number of options.
func (o Options) Len() int {
	return len(o.entries)
}

// Lookup returns the option stored under key.
func (o Options) Lookup(key string) (Option, bool) {
	for _, entry := range o.entries {
		if entry.Key == key {
			return entry.Option, true
		}
	}
	return Option{}, false
}

// HasSearch reports whether any option is the search entry.
func (o Options) HasSearch() bool {
	_, ok := o.Search()
	return ok
}

// Search returns the first search entry.
func (o Options) Search() (Entry, bool) {
	for _, entry := range o.entries {
		if entry.Option.Kind() == KindSearch {
			return entry, true
		}
	}
	return Entry{}, false
}

func (o *Options) set(key string, opt Option) {
	for i := range o.entries {
		if o.entries[i].Key == key {
			o.entries[i].Option = opt
			return
		}
	}
	o.entries = append(o.entries, Entry{Key: key, Option: opt})
}

// setRaw decodes one option and stores it under key. Options that cannot be
// decoded at all are logged and skipped.
func (o *Options) setRaw(key string, raw json.RawMessage) {
	var opt Option
	if err := json.Unmarshal(raw, &opt); err != nil {
		logging.Error(fmt.Errorf("decode option %q: %w", key, err))
		return
	}
	o.set(key, opt)
}

// UnmarshalJSON accepts an object or an array of options.
func (o *Options) UnmarshalJSON(data []byte) error {
	*o = Options{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	switch trimmed[0] {
	case '[':
		var list []json.RawMessage
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return fmt.Errorf("decode options list: %w", err)
		}
		for i, raw := range list {
			o.setRaw(strconv.Itoa(i), raw)
		}
		return nil
	case '{':
		return decodeOrderedObject(trimmed, func(key string, raw json.RawMessage) error {
			o.setRaw(key, raw)
			return nil
		})
	default:
		return fmt.Errorf("decode options: unexpected %q", trimmed[0])
	}
}

// MarshalJSON writes the options as an object in display order.
func (o Options) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range o.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value := entry.Option.Raw
		if len(value) == 0 {
			if value, err = json.Marshal(entry.Option); err != nil {
				return nil, err
			}
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// decodeOrderedObject walks a JSON object in document order.
func decodeOrderedObject(data []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decode value for %q: %w", key, err)
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}
