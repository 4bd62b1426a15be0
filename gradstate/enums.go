package gradstate

import (
	"errors"
	"fmt"
)

// ErrInvalidEnum is returned by the Parse functions for an unknown value.
var ErrInvalidEnum = errors.New("invalid enum value")

// ParseType returns the Type named v.
func ParseType(v string) (Type, error) {
	if t := Type(v); t.Valid() {
		return t, nil
	}
	return "", fmt.Errorf("gradient type %q: %w", v, ErrInvalidEnum)
}

// ParseShape returns the Shape named v.
func ParseShape(v string) (Shape, error) {
	if s := Shape(v); s.Valid() {
		return s, nil
	}
	return "", fmt.Errorf("radial shape %q: %w", v, ErrInvalidEnum)
}

// ParseBlendMode returns the BlendMode named v.
func ParseBlendMode(v string) (BlendMode, error) {
	if m := BlendMode(v); m.Valid() {
		return m, nil
	}
	return "", fmt.Errorf("blend mode %q: %w", v, ErrInvalidEnum)
}
