package cssgen

import (
	"strings"
	"testing"

	"github.com/benoitkugler/okgrad/gradstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLinear(t *testing.T) {
	s := gradstate.Default().WithType(gradstate.Linear)
	assert.Equal(t,
		"background: linear-gradient(90deg, rgba(255, 0, 128, 1) 0%, rgba(121, 40, 202, 1) 100%);",
		Generate(s))
}

func TestGenerateRadial(t *testing.T) {
	s := gradstate.Default()
	assert.Equal(t,
		"background: radial-gradient(ellipse 66% 66% at 32% 32%, rgba(255, 0, 128, 1) 0%, rgba(121, 40, 202, 1) 100%);",
		Generate(s))

	s = s.WithAspectRatio(1.5).WithRadius(40).WithCenterX(10.5)
	assert.Contains(t, Generate(s), "radial-gradient(ellipse 60% 40% at 10.5% 32%, ")
	assert.Contains(t, Generate(s.WithRadialShape(gradstate.Circle)), "radial-gradient(circle 40% at 10.5% 32%, ")
}

func TestGenerateSortsStops(t *testing.T) {
	s := gradstate.Default().WithType(gradstate.Linear).WithColorStops([]gradstate.ColorStop{
		{ID: "1", Color: "#010101", Alpha: 1, Position: 80},
		{ID: "2", Color: "#020202", Alpha: 0.5, Position: 10},
		{ID: "3", Color: "#030303", Alpha: 1, Position: 50},
	})
	assert.Equal(t,
		"background: linear-gradient(90deg, rgba(2, 2, 2, 0.5) 10%, rgba(3, 3, 3, 1) 50%, rgba(1, 1, 1, 1) 80%);",
		Generate(s))
}

func TestHexToRGBA(t *testing.T) {
	assert.Equal(t, "rgba(255, 0, 128, 0.25)", HexToRGBA("#FF0080", 0.25))
	assert.Equal(t, "rgba(171, 205, 239, 1)", HexToRGBA("#abcdef", 1))
	assert.Equal(t, "rgba(0, 0, 0, 1)", HexToRGBA("red", 1))
	assert.Equal(t, "rgba(0, 0, 0, 2)", HexToRGBA("", 2)) // alpha is not clamped
}

func TestFidelityGap(t *testing.T) {
	s := gradstate.Default().WithFeather(4).WithGrain(0.4).WithGrainFrequency(0.77).
		WithGrainOctaves(9).WithGrainBlendMode(gradstate.SoftLight).WithBackgroundColor("#123456")
	for _, typ := range [...]gradstate.Type{gradstate.Linear, gradstate.Radial} {
		out := Generate(s.WithType(typ))
		for _, forbidden := range []string{"blur", "noise", "grain", "filter", "0.77", "soft-light", "#123456", "18, 52, 86"} {
			assert.NotContains(t, out, forbidden)
		}
		assert.Equal(t, Generate(gradstate.Default().WithType(typ)), out)
	}
}

func TestParseRoundTrip(t *testing.T) {
	stops := []gradstate.ColorStop{
		{ID: "9", Color: "#FFFFFF", Alpha: 0.5, Position: 50},
		{ID: "a", Color: "#FF0080", Alpha: 1, Position: 0},
		{ID: "b", Color: "#7928CA", Alpha: 0, Position: 100},
	}
	renumbered := []gradstate.ColorStop{
		{ID: "1", Color: "#FF0080", Alpha: 1, Position: 0},
		{ID: "2", Color: "#FFFFFF", Alpha: 0.5, Position: 50},
		{ID: "3", Color: "#7928CA", Alpha: 0, Position: 100},
	}
	base := gradstate.Default().WithColorStops(stops)
	for _, s := range []gradstate.State{
		base,
		base.WithType(gradstate.Linear).WithAngle(-12.5),
		base.WithRadialShape(gradstate.Circle).WithRadius(20).WithCenterX(70),
		base.WithAspectRatio(1.5).WithRadius(40).WithCenterY(0.25),
	} {
		p, err := Parse(Generate(s))
		require.NoError(t, err)
		assert.Equal(t, s.WithColorStops(renumbered), p.Apply(s.WithColorStops(nil)))
		assert.Nil(t, p.Feather)
		assert.Nil(t, p.BackgroundColor)
	}
}

func TestParseVariants(t *testing.T) {
	p, err := Parse("background-image: linear-gradient(#ff0080 0%, rgb(0, 0, 255) 100%)")
	require.NoError(t, err)
	assert.Equal(t, gradstate.Linear, *p.Type)
	assert.Nil(t, p.Angle)
	assert.Equal(t, []gradstate.ColorStop{
		{ID: "1", Color: "#FF0080", Alpha: 1, Position: 0},
		{ID: "2", Color: "#0000FF", Alpha: 1, Position: 100},
	}, p.ColorStops)

	p, err = Parse("color: red; background: radial-gradient(rgba(1, 2, 3, 0.5) 10%, #010203 90%);")
	require.NoError(t, err)
	assert.Equal(t, gradstate.Radial, *p.Type)
	assert.Nil(t, p.RadialShape)
	assert.Len(t, p.ColorStops, 2)
}

func TestParseErrors(t *testing.T) {
	for _, decl := range []string{
		"color: red;",
		"background: #fff;",
		"background: conic-gradient(red, blue);",
	} {
		_, err := Parse(decl)
		assert.ErrorIs(t, err, ErrNotGradient, decl)
	}
	for _, decl := range []string{
		"background: linear-gradient(90deg, rgba(255, 0, 128, 1) 0%",
		"background: linear-gradient(1turn, #fff 0%, #000 100%);",
		"background: linear-gradient(90deg);",
		"background: linear-gradient(90deg, red 0%, blue 100%);",
		"background: linear-gradient(90deg, #fff, #000);",
		"background: radial-gradient(square 10% at 5% 5%, #fff 0%, #000 100%);",
		"background: radial-gradient(ellipse 10% at 5% 5%, #fff 0%, #000 100%);",
		"background: radial-gradient(circle 10% in 5% 5%, #fff 0%, #000 100%);",
		"background: linear-gradient(90deg, rgba(1, 2) 0%, #000 100%);",
	} {
		_, err := Parse(decl)
		require.Error(t, err, decl)
		assert.False(t, strings.Contains(err.Error(), ErrNotGradient.Error()), decl)
	}
}
