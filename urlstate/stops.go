package urlstate

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benoitkugler/okgrad/gradstate"
)

var errNotStopList = errors.New("color stops must be a JSON array")

// decodeStops checks the shape of every element: id and color must be
// strings, alpha and position numbers. Unknown members are ignored.
func decodeStops(raw string) ([]gradstate.ColorStop, error) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", errNotStopList, err)
	}
	if items == nil { // JSON null
		return nil, errNotStopList
	}
	stops := make([]gradstate.ColorStop, len(items))
	for i, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			return nil, fmt.Errorf("color stop %d is not an object", i)
		}
		stop := &stops[i]
		if err := member(fields, "id", &stop.ID); err != nil {
			return nil, fmt.Errorf("color stop %d: %w", i, err)
		}
		if err := member(fields, "color", &stop.Color); err != nil {
			return nil, fmt.Errorf("color stop %d: %w", i, err)
		}
		if err := member(fields, "alpha", &stop.Alpha); err != nil {
			return nil, fmt.Errorf("color stop %d: %w", i, err)
		}
		if err := member(fields, "position", &stop.Position); err != nil {
			return nil, fmt.Errorf("color stop %d: %w", i, err)
		}
	}
	return stops, nil
}

// member decodes fields[key] into dst, which must be a *string or a
// *float64. A JSON null does not count as a string or a number.
func member(fields map[string]json.RawMessage, key string, dst any) error {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return fmt.Errorf("missing %q", key)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("invalid %q: %v", key, err)
	}
	return nil
}
