// Package gradstate holds the canonical description of a gradient being
// edited, its default values and the operations producing new snapshots.
//
// A State is a plain value: every mutation returns a new State and never
// touches the receiver, so a snapshot handed to a renderer stays valid
// while the editor moves on.
package gradstate

import "regexp"

// Type selects the gradient geometry.
type Type string

const (
	Linear Type = "linear"
	Radial Type = "radial"
)

// Valid reports whether t is one of the supported types.
func (t Type) Valid() bool { return t == Linear || t == Radial }

// Shape is the iso-line shape of a radial gradient.
type Shape string

const (
	Circle  Shape = "circle"
	Ellipse Shape = "ellipse"
)

func (s Shape) Valid() bool { return s == Circle || s == Ellipse }

// BlendMode is the mode used to blend the grain texture
// over the gradient.
type BlendMode string

const (
	Overlay   BlendMode = "overlay"
	ColorBurn BlendMode = "color-burn"
	Multiply  BlendMode = "multiply"
	Screen    BlendMode = "screen"
	SoftLight BlendMode = "soft-light"
)

// BlendModes lists the supported blend modes, in UI order.
var BlendModes = [...]BlendMode{Overlay, ColorBurn, Multiply, Screen, SoftLight}

func (b BlendMode) Valid() bool {
	for _, m := range BlendModes {
		if b == m {
			return true
		}
	}
	return false
}

// ColorStop is one anchor of the color ramp.
// Position is a percentage along the gradient axis; stops need not be
// stored sorted.
type ColorStop struct {
	ID       string  `json:"id" yaml:"id" toml:"id" validate:"required"`
	Color    string  `json:"color" yaml:"color" toml:"color" validate:"hexcolor6"`
	Alpha    float64 `json:"alpha" yaml:"alpha" toml:"alpha" validate:"gte=0,lte=1"`
	Position float64 `json:"position" yaml:"position" toml:"position" validate:"gte=0,lte=100"`
}

// State is a full gradient snapshot.
//
// Percentages (CenterX, CenterY, Radius, stop positions) are expressed in
// the 0 0 100 100 view box used by the generators. BackgroundColor is only
// used by previews and never emitted by the code generators.
type State struct {
	Type            Type        `json:"type" yaml:"type" toml:"type" validate:"oneof=linear radial"`
	Angle           float64     `json:"angle" yaml:"angle" toml:"angle"`
	ColorStops      []ColorStop `json:"colorStops" yaml:"colorStops" toml:"colorStops" validate:"min=2,dive"`
	CenterX         float64     `json:"centerX" yaml:"centerX" toml:"centerX" validate:"gte=0,lte=100"`
	CenterY         float64     `json:"centerY" yaml:"centerY" toml:"centerY" validate:"gte=0,lte=100"`
	Radius          float64     `json:"radius" yaml:"radius" toml:"radius" validate:"gte=0,lte=100"`
	RadialShape     Shape       `json:"radialShape" yaml:"radialShape" toml:"radialShape" validate:"oneof=circle ellipse"`
	AspectRatio     float64     `json:"aspectRatio" yaml:"aspectRatio" toml:"aspectRatio" validate:"gte=0.5,lte=2"`
	Feather         float64     `json:"feather" yaml:"feather" toml:"feather" validate:"gte=0"`
	Grain           float64     `json:"grain" yaml:"grain" toml:"grain" validate:"gte=0,lte=1"`
	GrainFrequency  float64     `json:"grainFrequency" yaml:"grainFrequency" toml:"grainFrequency" validate:"gt=0,lte=20"`
	GrainOctaves    int         `json:"grainOctaves" yaml:"grainOctaves" toml:"grainOctaves" validate:"gte=1,lte=10"`
	GrainBlendMode  BlendMode   `json:"grainBlendMode" yaml:"grainBlendMode" toml:"grainBlendMode" validate:"oneof=overlay color-burn multiply screen soft-light"`
	BackgroundColor string      `json:"backgroundColor" yaml:"backgroundColor" toml:"backgroundColor" validate:"hexcolor6"`
}

// Default values, used when nothing else is known.
const (
	DefaultType            = Radial
	DefaultAngle           = 90.
	DefaultCenterX         = 32.
	DefaultCenterY         = 32.
	DefaultRadius          = 66.
	DefaultShape           = Ellipse
	DefaultFeather         = 0.
	DefaultGrain           = 0.
	DefaultGrainFrequency  = 0.6
	DefaultGrainOctaves    = 4
	DefaultGrainBlendMode  = Overlay
	DefaultAspectRatio     = 1.
	DefaultBackgroundColor = "#1e1e2e"

	// NewStopColor is the color of stops created by AddColorStop.
	NewStopColor = "#FFFFFF"

	// MinColorStops is the smallest number of stops a drawable
	// gradient may have.
	MinColorStops = 2
)

// DefaultColorStops returns a fresh copy of the default stop pair.
func DefaultColorStops() []ColorStop {
	return []ColorStop{
		{ID: "1", Color: "#FF0080", Alpha: 1, Position: 0},
		{ID: "2", Color: "#7928CA", Alpha: 1, Position: 100},
	}
}

// Default returns the state a new session starts from.
// Each call returns an independent value.
func Default() State {
	return State{
		Type:            DefaultType,
		Angle:           DefaultAngle,
		ColorStops:      DefaultColorStops(),
		CenterX:         DefaultCenterX,
		CenterY:         DefaultCenterY,
		Radius:          DefaultRadius,
		RadialShape:     DefaultShape,
		AspectRatio:     DefaultAspectRatio,
		Feather:         DefaultFeather,
		Grain:           DefaultGrain,
		GrainFrequency:  DefaultGrainFrequency,
		GrainOctaves:    DefaultGrainOctaves,
		GrainBlendMode:  DefaultGrainBlendMode,
		BackgroundColor: DefaultBackgroundColor,
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	if s.ColorStops != nil {
		s.ColorStops = append([]ColorStop(nil), s.ColorStops...)
	}
	return s
}

// IsEllipse reports whether the gradient is drawn with an elliptical
// silhouette, that is a radial gradient with the ellipse shape.
func (s State) IsEllipse() bool {
	return s.Type == Radial && s.RadialShape == Ellipse
}

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// IsHexColor reports whether c is a #RRGGBB color.
func IsHexColor(c string) bool { return hexColorRe.MatchString(c) }
