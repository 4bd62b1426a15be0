// Package svggen writes a gradient state as a standalone SVG document,
// and reads such a document back.
//
// The document uses a fixed 0 0 100 100 view box, so that the percentage
// fields of the state are directly usable as user units.
package svggen

import (
	"encoding/xml"
	"fmt"
	"math/rand"
	"strings"

	"github.com/benoitkugler/okgrad/gradstate"
)

// Element ids used in the generated document.
const (
	GradientID = "mainGradient"
	NoiseID    = "noise"
	BlurID     = "blur"
	MaskID     = "shapeMask"
)

// ViewBox is the view box of every generated document.
const ViewBox = "0 0 100 100"

// monoMatrix copies the red channel of the turbulence on every channel.
const monoMatrix = "1 0 0 0 0  1 0 0 0 0  1 0 0 0 0  0 0 0 1 0"

// Options tweaks the generation.
type Options struct {
	// Seed is the feTurbulence seed. The zero value is a valid seed, so
	// that the output is a function of the state alone.
	Seed int
}

// RandomSeed returns a seed in [0, 1000), for callers who want each
// generation to draw a different grain.
func RandomSeed() int { return rand.Intn(1000) }

// writer is a small indenting builder
type writer struct {
	b     strings.Builder
	depth int
}

func (w *writer) line(format string, args ...interface{}) {
	for i := 0; i < w.depth; i++ {
		w.b.WriteString("  ")
	}
	fmt.Fprintf(&w.b, format, args...)
	w.b.WriteByte('\n')
}

func (w *writer) open(format string, args ...interface{}) {
	w.line(format, args...)
	w.depth++
}

func (w *writer) close(tag string) {
	w.depth--
	w.line("</%s>", tag)
}

// attr escapes v for use inside a double quoted attribute.
func attr(v string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(v)) // strings.Builder never fails
	return b.String()
}

func num(f float64) string { return gradstate.FormatNumber(f) }

// Generate returns the SVG document drawing s.
// Stops are emitted sorted by position, the blur filter only
// when Feather > 0 and the noise filter only when Grain > 0.
func Generate(s gradstate.State, opts Options) string {
	w := &writer{}
	w.open(`<svg width="100%%" height="100%%" viewBox="%s" xmlns="http://www.w3.org/2000/svg" preserveAspectRatio="xMidYMid meet">`, ViewBox)
	w.open("<defs>")
	if s.Feather > 0 {
		writeBlur(w, s.Feather)
	}
	if s.Grain > 0 {
		writeNoise(w, s, opts.Seed)
	}
	writeGradient(w, s)
	writeMask(w, s)
	w.close("defs")

	w.open(`<g mask="url(#%s)">`, MaskID)
	if s.Feather > 0 {
		w.line(`<rect width="100" height="100" fill="url(#%s)" filter="url(#%s)" />`, GradientID, BlurID)
	} else {
		w.line(`<rect width="100" height="100" fill="url(#%s)" />`, GradientID)
	}
	if s.Grain > 0 {
		w.line(`<rect width="100" height="100" fill="url(#%s)" filter="url(#%s)" />`, GradientID, NoiseID)
	}
	w.close("g")
	w.close("svg")
	return w.b.String()
}

func writeBlur(w *writer, feather float64) {
	w.open(`<filter id="%s">`, BlurID)
	w.line(`<feGaussianBlur stdDeviation="%s" />`, num(feather))
	w.close("filter")
}

func writeNoise(w *writer, s gradstate.State, seed int) {
	w.open(`<filter id="%s">`, NoiseID)
	w.line(`<feTurbulence type="fractalNoise" baseFrequency="%s" numOctaves="%d" seed="%d" stitchTiles="stitch" result="noise" />`,
		num(s.GrainFrequency), s.GrainOctaves, seed)
	w.line(`<feColorMatrix type="matrix" values="%s" in="noise" result="monoNoise" />`, monoMatrix)
	if s.GrainBlendMode == gradstate.ColorBurn {
		w.line(`<feColorMatrix in="monoNoise" type="luminanceToAlpha" result="luminance" />`)
		w.line(`<feComposite operator="in" in="luminance" in2="SourceGraphic" result="composite" />`)
		w.line(`<feBlend mode="color-burn" in="SourceGraphic" in2="composite" />`)
	} else {
		w.line(`<feComposite operator="arithmetic" k1="1" k2="%s" k3="0" k4="0" in="monoNoise" in2="SourceGraphic" result="grainMix" />`,
			num(s.Grain))
		w.line(`<feBlend mode="%s" in="grainMix" in2="SourceGraphic" />`, attr(string(s.GrainBlendMode)))
	}
	w.close("filter")
}

func writeGradient(w *writer, s gradstate.State) {
	var tag string
	if s.Type == gradstate.Linear {
		tag = "linearGradient"
		w.open(`<linearGradient id="%s" gradientTransform="rotate(%s, 50, 50)">`, GradientID, num(s.Angle))
	} else {
		tag = "radialGradient"
		transform := ""
		if s.RadialShape == gradstate.Ellipse {
			transform = fmt.Sprintf(` gradientTransform="translate(50 50) scale(%s 1) translate(-50 -50)"`, num(s.AspectRatio))
		}
		w.open(`<radialGradient id="%s" cx="%s%%" cy="%s%%" r="%s%%" gradientUnits="userSpaceOnUse"%s>`,
			GradientID, num(s.CenterX), num(s.CenterY), num(s.Radius), transform)
	}
	for _, stop := range s.SortedStops() {
		w.line(`<stop offset="%s%%" stop-color="%s" stop-opacity="%s" />`,
			num(stop.Position), attr(stop.Color), num(stop.Alpha))
	}
	w.close(tag)
}

func writeMask(w *writer, s gradstate.State) {
	w.open(`<mask id="%s">`, MaskID)
	if s.IsEllipse() {
		w.line(`<ellipse cx="50" cy="50" rx="%s" ry="50" fill="white" />`, num(50*s.AspectRatio))
	} else {
		w.line(`<rect x="0" y="0" width="100" height="100" fill="white" />`)
	}
	w.close("mask")
}
