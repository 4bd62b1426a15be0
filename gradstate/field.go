package gradstate

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnknownField is returned by SetField and ParseStopPatch for a field
// name they do not know.
var ErrUnknownField = errors.New("unknown field")

// ErrInvalidValue is returned by SetField and ParseStopPatch when the
// value can't be parsed for its field.
var ErrInvalidValue = errors.New("invalid value")

func parseStrict(field, value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%s %q: %w", field, value, ErrInvalidValue)
	}
	return f, nil
}

// SetField returns the action setting the scalar field named name (its
// JSON name, as in "grainOctaves") to the textual value.
// Unlike the query string decoding, malformed values are errors.
func SetField(name, value string) (Action, error) {
	switch name {
	case "type":
		t, err := ParseType(value)
		if err != nil {
			return nil, err
		}
		return SetType{t}, nil
	case "radialShape":
		sh, err := ParseShape(value)
		if err != nil {
			return nil, err
		}
		return SetRadialShape{sh}, nil
	case "grainBlendMode":
		m, err := ParseBlendMode(value)
		if err != nil {
			return nil, err
		}
		return SetGrainBlendMode{m}, nil
	case "backgroundColor":
		if !IsHexColor(value) {
			return nil, fmt.Errorf("%s %q: %w", name, value, ErrInvalidValue)
		}
		return SetBackgroundColor{value}, nil
	case "grainOctaves":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", name, value, ErrInvalidValue)
		}
		return SetGrainOctaves{n}, nil
	}

	var build func(float64) Action
	switch name {
	case "angle":
		build = func(f float64) Action { return SetAngle{f} }
	case "centerX":
		build = func(f float64) Action { return SetCenterX{f} }
	case "centerY":
		build = func(f float64) Action { return SetCenterY{f} }
	case "radius":
		build = func(f float64) Action { return SetRadius{f} }
	case "aspectRatio":
		build = func(f float64) Action { return SetAspectRatio{f} }
	case "feather":
		build = func(f float64) Action { return SetFeather{f} }
	case "grain":
		build = func(f float64) Action { return SetGrain{f} }
	case "grainFrequency":
		build = func(f float64) Action { return SetGrainFrequency{f} }
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownField)
	}
	f, err := parseStrict(name, value)
	if err != nil {
		return nil, err
	}
	return build(f), nil
}

// ParseStopPatch adds to p the change of the stop field named name
// ("color", "alpha" or "position").
func ParseStopPatch(p StopPatch, name, value string) (StopPatch, error) {
	switch name {
	case "color":
		if !IsHexColor(value) {
			return p, fmt.Errorf("stop color %q: %w", value, ErrInvalidValue)
		}
		return p.WithColor(value), nil
	case "alpha", "position":
		f, err := parseStrict("stop "+name, value)
		if err != nil {
			return p, err
		}
		if name == "alpha" {
			return p.WithAlpha(f), nil
		}
		return p.WithPosition(f), nil
	}
	return p, fmt.Errorf("stop field %q: %w", name, ErrUnknownField)
}
