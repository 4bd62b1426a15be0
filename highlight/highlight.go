// Package highlight colors the generated code for terminals and web pages,
// using the chroma lexers.
package highlight

import (
	"errors"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/mattn/go-isatty"
)

// Lang is the language of a generated snippet.
type Lang string

const (
	SVG Lang = "svg"
	CSS Lang = "css"
)

// Format selects the chroma formatter.
type Format string

const (
	Terminal256 Format = "terminal256"
	TrueColor   Format = "terminal16m"
	HTML        Format = "html" // standalone page
)

// DefaultStyle is the chroma style used when none is given.
const DefaultStyle = "monokai"

// ErrUnknownLang is returned for languages without a lexer.
var ErrUnknownLang = errors.New("highlight: unknown language")

func (l Lang) lexer() chroma.Lexer {
	var lexer chroma.Lexer
	switch l {
	case SVG:
		lexer = lexers.Get("xml")
	case CSS:
		lexer = lexers.Get("css")
	}
	if lexer == nil {
		return nil
	}
	return chroma.Coalesce(lexer)
}

// Write writes the highlighted code to w. Unknown formats and styles
// fall back to the chroma defaults.
func Write(w io.Writer, code string, lang Lang, format Format, style string) error {
	lexer := lang.lexer()
	if lexer == nil {
		return ErrUnknownLang
	}
	if style == "" {
		style = DefaultStyle
	}
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return err
	}
	return formatters.Get(string(format)).Format(w, styles.Get(style), iterator)
}

// Enabled reports whether f is a terminal, where colored
// output makes sense.
func Enabled(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
