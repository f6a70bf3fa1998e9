package menu

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/atomicstack/popup-context-menu/internal/logging"
)

// decodeLenient decodes a JSON object into T. When the object as a whole
// does not decode, each field is retried on its own; fields that still fail
// are logged and left zero. Only input that is not an object is an error.
func decodeLenient[T any](data []byte, what string) (T, error) {
	var out T
	err := json.Unmarshal(data, &out)
	if err == nil {
		return out, nil
	}
	var fields map[string]json.RawMessage
	if json.Unmarshal(data, &fields) != nil {
		return out, err
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	out = *new(T)
	for _, name := range names {
		one, merr := json.Marshal(map[string]json.RawMessage{name: fields[name]})
		if merr != nil {
			continue
		}
		var single T
		if ferr := json.Unmarshal(one, &single); ferr != nil {
			logging.Error(fmt.Errorf("decode %s: field %q ignored: %w", what, name, ferr))
			continue
		}
		_ = json.Unmarshal(one, &out)
	}
	return out, nil
}
