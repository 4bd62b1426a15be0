// Package urlstate maps a gradient state to a flat query string and back,
// so that a gradient can be shared as a link without any storage.
//
// Decoding never fails: every field falls back independently to its
// default when it is missing or malformed.
package urlstate

import (
	"bytes"
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/benoitkugler/okgrad"
	"github.com/benoitkugler/okgrad/gradstate"
)

// Query keys, in the order Encode writes them.
const (
	KeyType            = "type"
	KeyAngle           = "angle"
	KeyCenterX         = "centerX"
	KeyCenterY         = "centerY"
	KeyRadius          = "radius"
	KeyRadialShape     = "radialShape"
	KeyFeather         = "feather"
	KeyGrain           = "grain"
	KeyGrainFrequency  = "grainFrequency"
	KeyGrainOctaves    = "grainOctaves"
	KeyGrainBlendMode  = "grainBlendMode"
	KeyAspectRatio     = "aspectRatio"
	KeyBackgroundColor = "backgroundColor"
	KeyColorStops      = "colorStops"
)

// Keys lists every key of the query schema.
var Keys = [...]string{
	KeyType, KeyAngle, KeyCenterX, KeyCenterY, KeyRadius, KeyRadialShape,
	KeyFeather, KeyGrain, KeyGrainFrequency, KeyGrainOctaves, KeyGrainBlendMode,
	KeyAspectRatio, KeyBackgroundColor, KeyColorStops,
}

type param struct{ key, value string }

// marshalStops writes stops as JSON.stringify does: no HTML escaping,
// no trailing new line.
func marshalStops(stops []gradstate.ColorStop) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(stops); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Encode returns the query string (without leading '?') describing s.
// Numbers use their shortest decimal form and color stops are written as
// a JSON array, so that Decode(Encode(s)) gives s back.
func Encode(s gradstate.State) string {
	stops := s.ColorStops
	if stops == nil {
		stops = []gradstate.ColorStop{}
	}
	// stops only hold strings and numbers: the only failure is a
	// non finite number, which JSON cannot represent anyway
	stopsJSON, err := marshalStops(stops)
	if err != nil {
		okgrad.Logger().Debug("color stops not encodable", "err", err)
		stopsJSON = "[]"
	}
	params := [...]param{
		{KeyType, string(s.Type)},
		{KeyAngle, gradstate.FormatNumber(s.Angle)},
		{KeyCenterX, gradstate.FormatNumber(s.CenterX)},
		{KeyCenterY, gradstate.FormatNumber(s.CenterY)},
		{KeyRadius, gradstate.FormatNumber(s.Radius)},
		{KeyRadialShape, string(s.RadialShape)},
		{KeyFeather, gradstate.FormatNumber(s.Feather)},
		{KeyGrain, gradstate.FormatNumber(s.Grain)},
		{KeyGrainFrequency, gradstate.FormatNumber(s.GrainFrequency)},
		{KeyGrainOctaves, strconv.Itoa(s.GrainOctaves)},
		{KeyGrainBlendMode, string(s.GrainBlendMode)},
		{KeyAspectRatio, gradstate.FormatNumber(s.AspectRatio)},
		{KeyBackgroundColor, s.BackgroundColor},
		{KeyColorStops, stopsJSON},
	}
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}

// Initial returns the state a session opened on query starts with:
// the decoded fields over the defaults.
func Initial(query string) gradstate.State {
	return Decode(query).Apply(gradstate.Default())
}

// Decode parses a query string, with or without its leading '?'.
//
// Numeric fields are always set, to their default when missing or not a
// number. Enums, the background color and the stops are left nil when
// missing or invalid. A single malformed stop invalidates the whole list.
func Decode(query string) gradstate.Partial {
	values, err := url.ParseQuery(strings.TrimPrefix(query, "?"))
	if err != nil {
		// ParseQuery keeps the well formed pairs
		okgrad.Logger().Debug("malformed query string", "err", err)
	}
	var p gradstate.Partial

	if t := gradstate.Type(get(values, KeyType)); t.Valid() {
		p.Type = &t
	}
	p.Angle = number(values, KeyAngle, gradstate.DefaultAngle)
	p.CenterX = number(values, KeyCenterX, gradstate.DefaultCenterX)
	p.CenterY = number(values, KeyCenterY, gradstate.DefaultCenterY)
	p.Radius = number(values, KeyRadius, gradstate.DefaultRadius)
	p.Feather = number(values, KeyFeather, gradstate.DefaultFeather)
	p.Grain = number(values, KeyGrain, gradstate.DefaultGrain)
	p.GrainFrequency = number(values, KeyGrainFrequency, gradstate.DefaultGrainFrequency)
	p.AspectRatio = number(values, KeyAspectRatio, gradstate.DefaultAspectRatio)

	octaves := gradstate.DefaultGrainOctaves
	if f := *number(values, KeyGrainOctaves, gradstate.DefaultGrainOctaves); math.Abs(f) <= math.MaxInt32 {
		octaves = int(f) // truncates toward zero
	}
	p.GrainOctaves = &octaves

	bg := gradstate.DefaultBackgroundColor
	if v, ok := lookup(values, KeyBackgroundColor); ok {
		if gradstate.IsHexColor(v) {
			bg = v
		} else {
			okgrad.Logger().Debug("rejected background color", "value", v)
		}
	}
	p.BackgroundColor = &bg

	if shape := gradstate.Shape(get(values, KeyRadialShape)); shape.Valid() {
		p.RadialShape = &shape
	}
	if mode := gradstate.BlendMode(get(values, KeyGrainBlendMode)); mode.Valid() {
		p.GrainBlendMode = &mode
	}
	if raw := get(values, KeyColorStops); raw != "" {
		stops, err := decodeStops(raw)
		if err != nil {
			okgrad.Logger().Debug("rejected color stops", "err", err)
		} else {
			p.ColorStops = stops
		}
	}
	return p
}

func lookup(values url.Values, key string) (string, bool) {
	vs, ok := values[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

func get(values url.Values, key string) string {
	v, _ := lookup(values, key)
	return v
}

func number(values url.Values, key string, def float64) *float64 {
	f := def
	if v, ok := lookup(values, key); ok {
		if parsed := gradstate.ParseNumber(v); !math.IsNaN(parsed) {
			f = parsed
		}
	}
	return &f
}
