package raster

import (
	"image/color"
	"math"

	"github.com/benoitkugler/okgrad/gradstate"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/srwiley/rasterx"
)

type rampStop struct {
	offset     float64 // in [0, 1]
	r, g, b, a float64 // not premultiplied, in [0, 1]
}

// ramp is the color ramp of a gradient, with offsets clamped and made
// non decreasing, as SVG renderers do.
type ramp []rampStop

func clamp01(f float64) float64 { return math.Max(0, math.Min(1, f)) }

// parseColor returns black for colors which can't be parsed.
func parseColor(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

func newRamp(stops []gradstate.ColorStop) ramp {
	out := make(ramp, len(stops))
	var last float64
	for i, stop := range stops {
		c := parseColor(stop.Color)
		offset := math.Max(last, clamp01(stop.Position/100))
		out[i] = rampStop{offset: offset, r: c.R, g: c.G, b: c.B, a: clamp01(stop.Alpha)}
		last = offset
	}
	return out
}

func (rs rampStop) color() color.NRGBA {
	return color.NRGBA{
		R: uint8(rs.r*255 + 0.5),
		G: uint8(rs.g*255 + 0.5),
		B: uint8(rs.b*255 + 0.5),
		A: uint8(rs.a*255 + 0.5),
	}
}

// at returns the color at t, padding with the end colors.
func (r ramp) at(t float64) color.NRGBA {
	if len(r) == 0 {
		return color.NRGBA{}
	}
	if t <= r[0].offset {
		return r[0].color()
	}
	for i := 1; i < len(r); i++ {
		s0, s1 := r[i-1], r[i]
		if t > s1.offset {
			continue
		}
		if s1.offset == s0.offset {
			return s1.color()
		}
		u := (t - s0.offset) / (s1.offset - s0.offset)
		return rampStop{
			r: s0.r + u*(s1.r-s0.r),
			g: s0.g + u*(s1.g-s0.g),
			b: s0.b + u*(s1.b-s0.b),
			a: s0.a + u*(s1.a-s0.a),
		}.color()
	}
	return r[len(r)-1].color()
}

// gradientParam returns the position along the gradient, in [0, 1], of
// the user space point (x, y).
func gradientParam(s gradstate.State, x, y float64) float64 {
	if s.Type == gradstate.Linear {
		// rotate(angle, 50, 50) applied to the x axis
		rad := s.Angle * math.Pi / 180
		return clamp01(((x-50)*math.Cos(rad) + (y-50)*math.Sin(rad) + 50) / 100)
	}
	if s.RadialShape == gradstate.Ellipse && s.AspectRatio != 0 {
		// inverse of translate(50 50) scale(ar 1) translate(-50 -50)
		x = (x-50)/s.AspectRatio + 50
	}
	if s.Radius <= 0 {
		return 1
	}
	return clamp01(math.Hypot(x-s.CenterX, y-s.CenterY) / s.Radius)
}

// colorFunction returns the gradient paint, in pixels.
func (vp viewport) colorFunction(s gradstate.State) rasterx.ColorFunc {
	r := newRamp(s.SortedStops())
	return func(px, py int) color.Color {
		x, y := vp.toUser(px, py)
		return r.at(gradientParam(s, x, y))
	}
}
