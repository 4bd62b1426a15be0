package cssgen

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aymerick/douceur/parser"
	"github.com/benoitkugler/okgrad/gradstate"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

var (
	// ErrNotGradient is returned when no background declaration holds a
	// linear or radial gradient.
	ErrNotGradient = errors.New("cssgen: not a gradient declaration")

	errSyntax = errors.New("cssgen: unsupported gradient syntax")
)

type token struct {
	tt   css.TokenType
	data string
}

func (t token) is(tt css.TokenType) bool { return t.tt == tt }

// lex returns the significant tokens of a property value.
func lex(value string) ([]token, error) {
	l := css.NewLexer(parse.NewInputString(value))
	var toks []token
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			if err := l.Err(); err != io.EOF {
				return nil, fmt.Errorf("cssgen: %w", err)
			}
			return toks, nil
		case css.WhitespaceToken, css.CommentToken:
			continue
		}
		toks = append(toks, token{tt, string(data)})
	}
}

// Parse reads a declaration written by Generate. Only the geometry and
// the stops are recovered; stops get the ids "1" to "n" and upper case
// hex colors.
func Parse(declaration string) (gradstate.Partial, error) {
	declaration = strings.TrimSpace(declaration)
	// the parser requires the final semicolon
	if !strings.HasSuffix(declaration, ";") {
		declaration += ";"
	}
	decls, err := parser.ParseDeclarations(declaration)
	if err != nil {
		return gradstate.Partial{}, fmt.Errorf("cssgen: %w", err)
	}
	for _, decl := range decls {
		switch strings.ToLower(decl.Property) {
		case "background", "background-image":
		default:
			continue
		}
		toks, err := lex(decl.Value)
		if err != nil {
			return gradstate.Partial{}, err
		}
		if len(toks) == 0 || !toks[0].is(css.FunctionToken) {
			continue
		}
		switch fn := functionName(toks[0]); fn {
		case "linear-gradient", "radial-gradient":
			args, err := splitArgs(toks)
			if err != nil {
				return gradstate.Partial{}, err
			}
			if fn == "linear-gradient" {
				return parseLinear(args)
			}
			return parseRadial(args)
		}
	}
	return gradstate.Partial{}, ErrNotGradient
}

func functionName(t token) string {
	return strings.ToLower(strings.TrimSuffix(t.data, "("))
}

// splitArgs returns the comma separated arguments of the function call
// starting toks. Tokens after the closing parenthesis are ignored.
func splitArgs(toks []token) ([][]token, error) {
	var (
		args    [][]token
		current []token
		depth   int
	)
	for _, t := range toks[1:] {
		switch t.tt {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			if depth == 0 {
				return append(args, current), nil
			}
			depth--
		case css.CommaToken:
			if depth == 0 {
				args = append(args, current)
				current = nil
				continue
			}
		}
		current = append(current, t)
	}
	return nil, fmt.Errorf("%w: missing closing parenthesis", errSyntax)
}

func parseNumber(t token, unit string) (float64, error) {
	data := t.data
	if unit != "" {
		if !strings.HasSuffix(strings.ToLower(data), unit) {
			return 0, fmt.Errorf("%w: expected a %s value, got %q", errSyntax, unit, data)
		}
		data = data[:len(data)-len(unit)]
	}
	f, err := strconv.ParseFloat(data, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errSyntax, err)
	}
	return f, nil
}

func parseLinear(args [][]token) (gradstate.Partial, error) {
	typ := gradstate.Linear
	p := gradstate.Partial{Type: &typ}
	if len(args) > 0 && len(args[0]) == 1 && args[0][0].is(css.DimensionToken) {
		angle, err := parseNumber(args[0][0], "deg")
		if err != nil {
			return p, err
		}
		p.Angle = &angle
		args = args[1:]
	}
	stops, err := parseStops(args)
	p.ColorStops = stops
	return p, err
}

func parseRadial(args [][]token) (gradstate.Partial, error) {
	typ := gradstate.Radial
	p := gradstate.Partial{Type: &typ}
	if len(args) > 0 && len(args[0]) > 0 && args[0][0].is(css.IdentToken) {
		if err := parseRadialShape(args[0], &p); err != nil {
			return p, err
		}
		args = args[1:]
	}
	stops, err := parseStops(args)
	p.ColorStops = stops
	return p, err
}

// parseRadialShape reads `<shape> <size> at <x>% <y>%`
func parseRadialShape(toks []token, p *gradstate.Partial) error {
	shape, err := gradstate.ParseShape(strings.ToLower(toks[0].data))
	if err != nil {
		return fmt.Errorf("%w: %s", errSyntax, err)
	}
	p.RadialShape = &shape

	var sizes []float64
	i := 1
	for ; i < len(toks) && toks[i].is(css.PercentageToken); i++ {
		f, err := parseNumber(toks[i], "%")
		if err != nil {
			return err
		}
		sizes = append(sizes, f)
	}
	switch {
	case shape == gradstate.Circle && len(sizes) == 1:
		p.Radius = &sizes[0]
	case shape == gradstate.Ellipse && len(sizes) == 2:
		p.Radius = &sizes[1]
		if sizes[1] != 0 {
			ratio := sizes[0] / sizes[1]
			p.AspectRatio = &ratio
		}
	default:
		return fmt.Errorf("%w: %d sizes for a %s", errSyntax, len(sizes), shape)
	}

	rest := toks[i:]
	if len(rest) == 0 {
		return nil
	}
	if len(rest) != 3 || !rest[0].is(css.IdentToken) || strings.ToLower(rest[0].data) != "at" {
		return fmt.Errorf("%w: expected a position", errSyntax)
	}
	x, err := parseNumber(rest[1], "%")
	if err != nil {
		return err
	}
	y, err := parseNumber(rest[2], "%")
	if err != nil {
		return err
	}
	p.CenterX, p.CenterY = &x, &y
	return nil
}

func parseStops(args [][]token) ([]gradstate.ColorStop, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: no color stops", errSyntax)
	}
	stops := make([]gradstate.ColorStop, len(args))
	for i, arg := range args {
		stop, err := parseStop(arg)
		if err != nil {
			return nil, fmt.Errorf("color stop %d: %w", i, err)
		}
		stop.ID = strconv.Itoa(i + 1)
		stops[i] = stop
	}
	return stops, nil
}

// parseStop reads `rgba(r, g, b, a) p%`, `rgb(r, g, b) p%` or `#RRGGBB p%`.
func parseStop(toks []token) (gradstate.ColorStop, error) {
	stop := gradstate.ColorStop{Alpha: 1}
	if len(toks) < 2 {
		return stop, fmt.Errorf("%w: expected a color and a position", errSyntax)
	}
	last := toks[len(toks)-1]
	if !last.is(css.PercentageToken) {
		return stop, fmt.Errorf("%w: expected a position, got %q", errSyntax, last.data)
	}
	var err error
	if stop.Position, err = parseNumber(last, "%"); err != nil {
		return stop, err
	}

	color := toks[:len(toks)-1]
	if len(color) == 1 && color[0].is(css.HashToken) {
		c, err := colorful.Hex(color[0].data)
		if err != nil {
			return stop, fmt.Errorf("%w: %s", errSyntax, err)
		}
		stop.Color = strings.ToUpper(c.Hex())
		return stop, nil
	}

	if !color[0].is(css.FunctionToken) || !color[len(color)-1].is(css.RightParenthesisToken) {
		return stop, fmt.Errorf("%w: unsupported color %q", errSyntax, color[0].data)
	}
	var channels []float64
	for _, t := range color[1 : len(color)-1] {
		if t.is(css.CommaToken) {
			continue
		}
		if !t.is(css.NumberToken) {
			return stop, fmt.Errorf("%w: unexpected %q in color", errSyntax, t.data)
		}
		f, err := parseNumber(t, "")
		if err != nil {
			return stop, err
		}
		channels = append(channels, f)
	}
	switch fn := functionName(color[0]); {
	case fn == "rgba" && len(channels) == 4:
		stop.Alpha = channels[3]
	case fn == "rgb" && len(channels) == 3:
	default:
		return stop, fmt.Errorf("%w: %s with %d channels", errSyntax, fn, len(channels))
	}
	c := colorful.Color{R: channels[0] / 255, G: channels[1] / 255, B: channels[2] / 255}
	stop.Color = strings.ToUpper(c.Clamped().Hex())
	return stop, nil
}
