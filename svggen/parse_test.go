package svggen

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/benoitkugler/okgrad/gradstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// renumbered returns the stops as Parse gives them back.
func renumbered(s gradstate.State) []gradstate.ColorStop {
	stops := s.SortedStops()
	for i := range stops {
		stops[i].ID = strconv.Itoa(i + 1)
	}
	return stops
}

func TestParseRoundTrip(t *testing.T) {
	stops := []gradstate.ColorStop{
		{ID: "7", Color: "#102030", Alpha: 0.25, Position: 70},
		{ID: "x", Color: "#FFFFFF", Alpha: 1, Position: 12.5},
		{ID: "3", Color: "#ABCDEF", Alpha: 0, Position: 0},
	}
	base := gradstate.Default().WithColorStops(stops)
	for _, s := range []gradstate.State{
		base,
		base.WithType(gradstate.Linear).WithAngle(-33.3),
		base.WithRadialShape(gradstate.Circle).WithCenterX(0.1 + 0.2).WithRadius(1e-7),
		base.WithAspectRatio(2.25).WithFeather(3),
		base.WithGrain(0.35).WithGrainFrequency(1.2).WithGrainOctaves(6).WithGrainBlendMode(gradstate.SoftLight),
	} {
		doc := Generate(s, Options{Seed: 42})
		imp, err := Parse(strings.NewReader(doc))
		require.NoError(t, err)

		got := imp.State.Apply(s.WithColorStops(nil))
		assert.Equal(t, s.WithColorStops(renumbered(s)), got)
		if s.Grain > 0 {
			assert.Equal(t, 42, imp.Options.Seed)
		}
	}
}

func TestParseFields(t *testing.T) {
	s := gradstate.Default().WithCenterX(10).WithCenterY(20).WithRadius(30).WithAspectRatio(0.5).
		WithFeather(1).WithGrain(0.2).WithGrainFrequency(0.9).WithGrainOctaves(2).WithGrainBlendMode(gradstate.Screen)
	imp, err := Parse(strings.NewReader(Generate(s, Options{Seed: 5})))
	require.NoError(t, err)

	p := imp.State
	require.NotNil(t, p.Type)
	assert.Equal(t, gradstate.Radial, *p.Type)
	assert.Nil(t, p.Angle)
	require.NotNil(t, p.RadialShape)
	assert.Equal(t, gradstate.Ellipse, *p.RadialShape)
	for name, f := range map[string]*float64{
		"centerX": p.CenterX, "centerY": p.CenterY, "radius": p.Radius, "aspectRatio": p.AspectRatio,
		"feather": p.Feather, "grain": p.Grain, "grainFrequency": p.GrainFrequency,
	} {
		assert.NotNil(t, f, name)
	}
	require.NotNil(t, p.GrainOctaves)
	assert.Equal(t, 2, *p.GrainOctaves)
	require.NotNil(t, p.GrainBlendMode)
	assert.Equal(t, gradstate.Screen, *p.GrainBlendMode)
	assert.Nil(t, p.BackgroundColor)
	assert.Len(t, p.ColorStops, 2)
	assert.Equal(t, 5, imp.Options.Seed)

	// linear documents say nothing about the radial geometry
	imp, err = Parse(strings.NewReader(Generate(s.WithType(gradstate.Linear), Options{})))
	require.NoError(t, err)
	assert.NotNil(t, imp.State.Angle)
	assert.Nil(t, imp.State.CenterX)
	assert.Nil(t, imp.State.RadialShape)
	assert.Nil(t, imp.State.AspectRatio)
}

func TestParseColorBurn(t *testing.T) {
	s := gradstate.Default().WithGrain(0.3).WithGrainBlendMode(gradstate.ColorBurn)
	imp, err := Parse(strings.NewReader(Generate(s, Options{})))
	require.NoError(t, err)
	require.NotNil(t, imp.State.Grain)
	assert.Equal(t, 0.5, *imp.State.Grain)
	assert.Equal(t, gradstate.ColorBurn, *imp.State.GrainBlendMode)
}

func TestParseNoFilters(t *testing.T) {
	imp, err := Parse(strings.NewReader(Generate(gradstate.Default(), Options{})))
	require.NoError(t, err)
	assert.Equal(t, 0., *imp.State.Feather)
	assert.Equal(t, 0., *imp.State.Grain)
	assert.Nil(t, imp.State.GrainOctaves)
	assert.Nil(t, imp.State.GrainBlendMode)
}

func TestParseForeignDocument(t *testing.T) {
	// offsets as fractions, as other tools write them
	doc := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
	<title>external</title>
	<linearGradient id="g"><stop offset="0.25" stop-color="#112233"/><stop offset="1"/></linearGradient>
	<circle r="4"/>
	</svg>`
	imp, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Nil(t, imp.State.Angle)
	assert.Equal(t, []gradstate.ColorStop{
		{ID: "1", Color: "#112233", Alpha: 1, Position: 25},
		{ID: "2", Color: "#000000", Alpha: 1, Position: 100},
	}, imp.State.ColorStops)
}

func TestParseCharset(t *testing.T) {
	var doc bytes.Buffer
	doc.WriteString(`<?xml version="1.0" encoding="ISO-8859-1"?>`)
	doc.WriteString(`<svg viewBox="0 0 100 100"><title>d`)
	doc.WriteByte(0xE9) // é in latin-1
	doc.WriteString(`grad</title><linearGradient gradientTransform="rotate(45, 50, 50)"/></svg>`)
	imp, err := Parse(&doc)
	require.NoError(t, err)
	assert.Equal(t, 45., *imp.State.Angle)
}

func TestParseErrors(t *testing.T) {
	for _, doc := range []string{
		"",
		"<html><body/></html>",
		`<svg viewBox="0 0 100 100"><rect/></svg>`,
	} {
		_, err := Parse(strings.NewReader(doc))
		assert.ErrorIs(t, err, ErrNotGradient, doc)
	}

	for _, doc := range []string{
		"<svg><linearGradient>",
		`<svg><linearGradient gradientTransform="rotate(a, 50, 50)"/></svg>`,
		`<svg><linearGradient gradientTransform="rotate 45"/></svg>`,
		`<svg><radialGradient r="big"/></svg>`,
		`<svg><linearGradient><stop offset="x%"/></linearGradient></svg>`,
		`<svg><filter><feTurbulence numOctaves="2.5"/></filter></svg>`,
		`<svg viewBox="0 0 100"/>`,
	} {
		_, err := Parse(strings.NewReader(doc))
		assert.Error(t, err, doc)
		assert.NotErrorIs(t, err, ErrNotGradient, doc)
	}
}
