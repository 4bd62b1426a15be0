package gradstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetField(t *testing.T) {
	for _, test := range []struct {
		name, value string
		expected    Action
	}{
		{"type", "linear", SetType{Linear}},
		{"angle", " 45.5", SetAngle{45.5}},
		{"centerX", "10", SetCenterX{10}},
		{"centerY", "-3", SetCenterY{-3}},
		{"radius", "1e1", SetRadius{10}},
		{"radialShape", "circle", SetRadialShape{Circle}},
		{"aspectRatio", "1.5", SetAspectRatio{1.5}},
		{"feather", "2", SetFeather{2}},
		{"grain", "0.25", SetGrain{0.25}},
		{"grainFrequency", "0.8", SetGrainFrequency{0.8}},
		{"grainOctaves", "6", SetGrainOctaves{6}},
		{"grainBlendMode", "screen", SetGrainBlendMode{Screen}},
		{"backgroundColor", "#000000", SetBackgroundColor{"#000000"}},
	} {
		a, err := SetField(test.name, test.value)
		require.NoError(t, err, test.name)
		assert.Equal(t, test.expected, a)
	}
}

func TestSetFieldErrors(t *testing.T) {
	_, err := SetField("colour", "red")
	assert.ErrorIs(t, err, ErrUnknownField)

	for name, value := range map[string]string{
		"angle":           "12abc",
		"grainOctaves":    "4.5",
		"backgroundColor": "red",
		"feather":         "Infinity",
		"radius":          "1e999",
		"centerX":         "NaN",
	} {
		_, err = SetField(name, value)
		assert.ErrorIs(t, err, ErrInvalidValue, name)
	}
	for name, value := range map[string]string{
		"type":           "conic",
		"radialShape":    "square",
		"grainBlendMode": "dissolve",
	} {
		a, err := SetField(name, value)
		assert.ErrorIs(t, err, ErrInvalidEnum, name)
		assert.Nil(t, a, name)
	}
}

func TestParseStopPatch(t *testing.T) {
	p, err := ParseStopPatch(StopPatch{}, "color", "#ABCDEF")
	require.NoError(t, err)
	p, err = ParseStopPatch(p, "position", "40")
	require.NoError(t, err)
	assert.Equal(t, StopPatch{}.WithColor("#ABCDEF").WithPosition(40), p)

	_, err = ParseStopPatch(p, "alpha", "half")
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = ParseStopPatch(p, "position", "-Infinity")
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = ParseStopPatch(p, "id", "3")
	assert.ErrorIs(t, err, ErrUnknownField)
}
