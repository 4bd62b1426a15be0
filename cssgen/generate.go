// Package cssgen writes a gradient state as a single CSS background
// declaration, and reads such a declaration back.
//
// CSS gradients have no blur nor noise: feather, grain and its settings
// are not part of the output, nor is the background color.
package cssgen

import (
	"fmt"
	"strings"

	"github.com/benoitkugler/okgrad/gradstate"
	colorful "github.com/lucasb-eyer/go-colorful"
)

func num(f float64) string { return gradstate.FormatNumber(f) }

// HexToRGBA returns the CSS rgba() notation of a #RRGGBB color.
// Colors which can't be parsed are rendered black.
func HexToRGBA(hex string, alpha float64) string {
	var r, g, b uint8
	if c, err := colorful.Hex(hex); err == nil {
		r, g, b = c.RGB255()
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, num(alpha))
}

func formatStops(stops []gradstate.ColorStop) string {
	chunks := make([]string, len(stops))
	for i, stop := range stops {
		chunks[i] = HexToRGBA(stop.Color, stop.Alpha) + " " + num(stop.Position) + "%"
	}
	return strings.Join(chunks, ", ")
}

// Generate returns the `background: ...;` declaration drawing s, with
// stops sorted by position.
func Generate(s gradstate.State) string {
	stops := formatStops(s.SortedStops())
	if s.Type == gradstate.Linear {
		return fmt.Sprintf("background: linear-gradient(%sdeg, %s);", num(s.Angle), stops)
	}
	shape, size := "ellipse", num(s.Radius*s.AspectRatio)+"% "+num(s.Radius)+"%"
	if s.RadialShape == gradstate.Circle {
		shape, size = "circle", num(s.Radius)+"%"
	}
	return fmt.Sprintf("background: radial-gradient(%s %s at %s%% %s%%, %s);",
		shape, size, num(s.CenterX), num(s.CenterY), stops)
}
