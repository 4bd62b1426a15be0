package svggen

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/benoitkugler/okgrad"
	"github.com/benoitkugler/okgrad/gradstate"
	"golang.org/x/net/html/charset"
)

var (
	// ErrNotGradient is returned when the document has no svg root or
	// no gradient definition.
	ErrNotGradient = errors.New("svggen: not a gradient document")

	errParamMismatch = errors.New("svggen: parameter mismatch")
)

// burnGrain is the intensity assigned to a color-burn grain, whose
// filter does not carry it.
const burnGrain = 0.5

// Imported is the content recovered from a document.
type Imported struct {
	State gradstate.Partial
	// Options holds the turbulence seed, when there is a noise filter.
	Options Options
}

type (
	transformOp struct {
		name string
		args []float64
	}

	// importCursor is used while parsing SVG files
	importCursor struct {
		out Imported

		stops              []gradstate.ColorStop
		grain              *float64
		maskRx             *float64
		hasBlur, hasNoise  bool
		seenRoot, seenGrad bool
		inGrad, inMask     bool
	}
)

type svgFunc func(c *importCursor, attrs []xml.Attr) error

var importFuncs = map[string]svgFunc{
	"svg":            svgF,
	"defs":           nopF,
	"g":              nopF,
	"filter":         nopF,
	"feGaussianBlur": blurF,
	"feTurbulence":   turbulenceF,
	"feColorMatrix":  nopF,
	"feComposite":    compositeF,
	"feBlend":        blendF,
	"linearGradient": linearGradientF,
	"radialGradient": radialGradientF,
	"stop":           stopF,
	"mask":           maskF,
	"ellipse":        ellipseF,
	"rect":           nopF,
}

// Parse reads a document written by Generate. Fields the document does
// not describe are left nil, except Feather and Grain which are zero
// when the corresponding filter is missing. Stops get the ids "1" to "n"
// in document order.
//
// The color-burn grain filter has no intensity parameter: Grain is then
// set to 0.5.
func Parse(stream io.Reader) (Imported, error) {
	cursor := &importCursor{}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return Imported{}, fmt.Errorf("svggen: invalid xml: %w", err)
		}
		switch se := t.(type) {
		case xml.StartElement:
			if err = cursor.readStartElement(se); err != nil {
				return Imported{}, err
			}
		case xml.EndElement:
			switch se.Name.Local {
			case "linearGradient", "radialGradient":
				cursor.inGrad = false
			case "mask":
				cursor.inMask = false
			}
		}
	}
	return cursor.finish()
}

func (c *importCursor) readStartElement(se xml.StartElement) error {
	if !c.seenRoot && se.Name.Local != "svg" {
		return ErrNotGradient
	}
	df, ok := importFuncs[se.Name.Local]
	if !ok {
		okgrad.Logger().Debug("ignoring svg element", "element", se.Name.Local)
		return nil
	}
	if err := df(c, se.Attr); err != nil {
		return fmt.Errorf("svggen: element %s: %w", se.Name.Local, err)
	}
	return nil
}

func (c *importCursor) finish() (Imported, error) {
	if !c.seenRoot || !c.seenGrad {
		return Imported{}, ErrNotGradient
	}
	p := &c.out.State
	if !c.hasBlur {
		p.Feather = newFloat(0)
	}
	switch {
	case !c.hasNoise:
		p.Grain = newFloat(0)
	case c.grain != nil:
		p.Grain = c.grain
	case p.GrainBlendMode != nil && *p.GrainBlendMode == gradstate.ColorBurn:
		p.Grain = newFloat(burnGrain)
	}
	if c.maskRx != nil && p.AspectRatio == nil {
		p.AspectRatio = newFloat(*c.maskRx / 50)
	}
	if len(c.stops) > 0 {
		p.ColorStops = c.stops
	}
	return c.out, nil
}

func newFloat(f float64) *float64 { return &f }

func parseFloat(v string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(v), 64)
}

// readOffset reads a stop offset as a percentage:
// "50%" and "0.5" both give 50.
func readOffset(v string) (float64, error) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		return parseFloat(strings.TrimSuffix(v, "%"))
	}
	f, err := parseFloat(v)
	return f * 100, err
}

// readLength reads a coordinate of the 100x100 view box, where user units
// and percentages coincide.
func readLength(v string) (float64, error) {
	return parseFloat(strings.TrimSuffix(strings.TrimSpace(v), "%"))
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma and space delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' '
		})
}

func parseTransform(v string) ([]transformOp, error) {
	var ops []transformOp
	for _, t := range strings.Split(v, ")") {
		t = strings.TrimSpace(t)
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return nil, errParamMismatch // badly formed transformation
		}
		op := transformOp{name: strings.ToLower(strings.TrimSpace(d[0]))}
		for _, field := range splitOnCommaOrSpace(d[1]) {
			f, err := parseFloat(field)
			if err != nil {
				return nil, err
			}
			op.args = append(op.args, f)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func nopF(*importCursor, []xml.Attr) error { return nil }

func svgF(c *importCursor, attrs []xml.Attr) error {
	c.seenRoot = true
	for _, attr := range attrs {
		if attr.Name.Local == "viewBox" && len(splitOnCommaOrSpace(attr.Value)) != 4 {
			return errParamMismatch
		}
	}
	return nil
}

func blurF(c *importCursor, attrs []xml.Attr) error {
	for _, attr := range attrs {
		if attr.Name.Local == "stdDeviation" {
			f, err := parseFloat(attr.Value)
			if err != nil {
				return err
			}
			c.hasBlur = true
			c.out.State.Feather = &f
		}
	}
	return nil
}

func turbulenceF(c *importCursor, attrs []xml.Attr) error {
	c.hasNoise = true
	p := &c.out.State
	for _, attr := range attrs {
		var err error
		switch attr.Name.Local {
		case "baseFrequency":
			var f float64
			f, err = parseFloat(attr.Value)
			p.GrainFrequency = &f
		case "numOctaves":
			var n int
			n, err = strconv.Atoi(strings.TrimSpace(attr.Value))
			p.GrainOctaves = &n
		case "seed":
			c.out.Options.Seed, err = strconv.Atoi(strings.TrimSpace(attr.Value))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func compositeF(c *importCursor, attrs []xml.Attr) error {
	var arithmetic bool
	var k2 *float64
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "operator":
			arithmetic = attr.Value == "arithmetic"
		case "k2":
			f, err := parseFloat(attr.Value)
			if err != nil {
				return err
			}
			k2 = &f
		}
	}
	if arithmetic && k2 != nil {
		c.grain = k2
	}
	return nil
}

func blendF(c *importCursor, attrs []xml.Attr) error {
	for _, attr := range attrs {
		if attr.Name.Local != "mode" {
			continue
		}
		mode, err := gradstate.ParseBlendMode(attr.Value)
		if err != nil {
			okgrad.Logger().Debug("ignoring blend mode", "err", err)
			continue
		}
		c.out.State.GrainBlendMode = &mode
	}
	return nil
}

func linearGradientF(c *importCursor, attrs []xml.Attr) error {
	c.startGradient(gradstate.Linear)
	for _, attr := range attrs {
		if attr.Name.Local != "gradientTransform" {
			continue
		}
		ops, err := parseTransform(attr.Value)
		if err != nil {
			return err
		}
		for _, op := range ops {
			if op.name != "rotate" {
				continue
			}
			if len(op.args) != 1 && len(op.args) != 3 {
				return errParamMismatch
			}
			angle := op.args[0]
			c.out.State.Angle = &angle
		}
	}
	return nil
}

func radialGradientF(c *importCursor, attrs []xml.Attr) error {
	c.startGradient(gradstate.Radial)
	p := &c.out.State
	shape := gradstate.Circle
	for _, attr := range attrs {
		var (
			f   float64
			err error
		)
		switch attr.Name.Local {
		case "cx":
			f, err = readLength(attr.Value)
			p.CenterX = &f
		case "cy":
			f, err = readLength(attr.Value)
			p.CenterY = &f
		case "r":
			f, err = readLength(attr.Value)
			p.Radius = &f
		case "gradientTransform":
			var ops []transformOp
			ops, err = parseTransform(attr.Value)
			for _, op := range ops {
				if op.name != "scale" {
					continue
				}
				if len(op.args) == 0 {
					return errParamMismatch
				}
				ratio := op.args[0]
				p.AspectRatio = &ratio
				shape = gradstate.Ellipse
			}
		}
		if err != nil {
			return err
		}
	}
	p.RadialShape = &shape
	return nil
}

func (c *importCursor) startGradient(t gradstate.Type) {
	if c.seenGrad {
		okgrad.Logger().Debug("several gradients, keeping the last one")
	}
	c.seenGrad = true
	c.inGrad = true
	c.stops = c.stops[:0]
	c.out.State.Type = &t
}

func stopF(c *importCursor, attrs []xml.Attr) error {
	if !c.inGrad {
		return nil
	}
	stop := gradstate.ColorStop{
		ID:    strconv.Itoa(len(c.stops) + 1),
		Color: "#000000",
		Alpha: 1,
	}
	for _, attr := range attrs {
		var err error
		switch attr.Name.Local {
		case "offset":
			stop.Position, err = readOffset(attr.Value)
		case "stop-color":
			stop.Color = strings.TrimSpace(attr.Value)
		case "stop-opacity":
			stop.Alpha, err = parseFloat(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	c.stops = append(c.stops, stop)
	return nil
}

func maskF(c *importCursor, attrs []xml.Attr) error {
	c.inMask = true
	return nil
}

func ellipseF(c *importCursor, attrs []xml.Attr) error {
	if !c.inMask {
		return nil
	}
	for _, attr := range attrs {
		if attr.Name.Local == "rx" {
			f, err := readLength(attr.Value)
			if err != nil {
				return err
			}
			c.maskRx = &f
		}
	}
	return nil
}
