package menu

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atomicstack/popup-context-menu/internal/logging"
)

// MetadataEntry is one label/value row shown alongside an option.
type MetadataEntry struct {
	Label       string   `json:"label"`
	Value       string   `json:"value,omitempty"`
	Progress    *float64 `json:"progress,omitempty"`
	ColorScheme string   `json:"colorScheme,omitempty"`
}

// Metadata normalises the three shapes hosts send: a list of strings, an
// object of label to value, or a list of label/value records.
type Metadata []MetadataEntry

// UnmarshalJSON decodes any of the accepted metadata shapes.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	*m = nil
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	switch trimmed[0] {
	case '{':
		return decodeOrderedObject(trimmed, func(key string, raw json.RawMessage) error {
			*m = append(*m, MetadataEntry{Label: key, Value: displayValue(raw)})
			return nil
		})
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("decode metadata: %w", err)
		}
		for i, item := range items {
			entry, err := decodeMetadataItem(item)
			if err != nil {
				logging.Error(fmt.Errorf("decode metadata entry %d: %w", i, err))
				continue
			}
			*m = append(*m, entry)
		}
		return nil
	default:
		return fmt.Errorf("decode metadata: unexpected %q", trimmed[0])
	}
}

func decodeMetadataItem(raw json.RawMessage) (MetadataEntry, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		type metadataRecord struct {
			Label       json.RawMessage `json:"label"`
			Value       json.RawMessage `json:"value"`
			Progress    *float64        `json:"progress"`
			ColorScheme string          `json:"colorScheme"`
		}
		record, err := decodeLenient[metadataRecord](trimmed, "metadata entry")
		if err != nil {
			return MetadataEntry{}, err
		}
		return MetadataEntry{
			Label:       displayValue(record.Label),
			Value:       displayValue(record.Value),
			Progress:    record.Progress,
			ColorScheme: record.ColorScheme,
		}, nil
	}
	return MetadataEntry{Label: displayValue(trimmed)}, nil
}

// displayValue renders an arbitrary JSON value as display text.
func displayValue(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	return strings.TrimSpace(string(trimmed))
}
