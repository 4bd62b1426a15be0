package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/okgrad/cssgen"
	"github.com/benoitkugler/okgrad/gradstate"
	"github.com/benoitkugler/okgrad/highlight"
	"github.com/benoitkugler/okgrad/pdfexport"
	"github.com/benoitkugler/okgrad/preset"
	"github.com/benoitkugler/okgrad/raster"
	"github.com/benoitkugler/okgrad/svggen"
	"github.com/benoitkugler/okgrad/urlstate"
	"github.com/spf13/cobra"
)

func generateCode(s gradstate.State, lang highlight.Lang, seed int) string {
	if lang == highlight.CSS {
		return cssgen.Generate(s)
	}
	return svggen.Generate(s, svggen.Options{Seed: seed})
}

func newCodeCmd(g *globalFlags, lang highlight.Lang) *cobra.Command {
	var (
		out        string
		randomSeed bool
	)
	cmd := &cobra.Command{
		Use:   string(lang),
		Short: fmt.Sprintf("Print the %s code of the gradient", strings.ToUpper(string(lang))),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.state()
			if err != nil {
				return err
			}
			seed := g.seed
			if randomSeed {
				seed = svggen.RandomSeed()
			}
			code := generateCode(s, lang, seed)
			if !strings.HasSuffix(code, "\n") {
				code += "\n"
			}

			w, closeFn, err := output(cmd, out)
			if err != nil {
				return err
			}
			format := highlight.Format("")
			if out == "" || out == "-" {
				if format, err = g.colorFormat(w); err != nil {
					return err
				}
			}
			if format != "" {
				err = highlight.Write(w, code, lang, format, "")
			} else {
				_, err = io.WriteString(w, code)
			}
			if cerr := closeFn(); err == nil {
				err = cerr
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write to this file instead of the standard output")
	if lang == highlight.SVG {
		cmd.Flags().BoolVar(&randomSeed, "random-seed", false, "draw a random grain seed")
	}
	return cmd
}

func newImageCmd(g *globalFlags, ext string) *cobra.Command {
	var (
		out           string
		width, height int
		background    bool
	)
	cmd := &cobra.Command{
		Use:   ext,
		Short: fmt.Sprintf("Render the gradient to a %s file", strings.ToUpper(ext)),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.state()
			if err != nil {
				return err
			}
			if out == "" {
				out = "gradient." + ext
			}
			var buf bytes.Buffer
			if ext == "pdf" {
				err = pdfexport.Write(&buf, s, pdfexport.Options{Width: width, Height: height, Seed: g.seed, Background: background})
			} else {
				img := raster.Render(s, raster.Options{Width: width, Height: height, Seed: g.seed, Background: background})
				err = raster.EncodePNG(&buf, img)
			}
			if err != nil {
				return err
			}
			w, closeFn, err := output(cmd, out)
			if err != nil {
				return err
			}
			_, err = w.Write(buf.Bytes())
			if cerr := closeFn(); err == nil {
				err = cerr
			}
			return err
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&out, "output", "o", "", "output file (default gradient."+ext+", - for the standard output)")
	flags.IntVar(&width, "width", raster.DefaultSize, "width in pixels")
	flags.IntVar(&height, "height", raster.DefaultSize, "height in pixels")
	flags.BoolVar(&background, "background", false, "paint the background color behind the gradient")
	return cmd
}

func newURLCmd(g *globalFlags) *cobra.Command {
	var base string
	cmd := &cobra.Command{
		Use:   "url",
		Short: "Print the shareable query string of the gradient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.state()
			if err != nil {
				return err
			}
			query := urlstate.Encode(s)
			if base != "" {
				query = base + "?" + query
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), query)
			return err
		},
	}
	cmd.Flags().StringVar(&base, "base", "", "prefix the query string with this URL")
	return cmd
}

func newDecodeCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "decode QUERY",
		Short: "Print the gradient described by a query string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := args[0]
			if _, q, ok := strings.Cut(query, "?"); ok {
				query = q
			}
			data, err := preset.Encode(urlstate.Initial(query), preset.Format(format))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(preset.YAML), "output format: yaml, toml or json")
	return cmd
}

// importFile reads back a generated SVG or CSS file.
func importFile(path string) (gradstate.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gradstate.State{}, err
	}
	var partial gradstate.Partial
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		var imported svggen.Imported
		imported, err = svggen.Parse(bytes.NewReader(data))
		partial = imported.State
	case ".css":
		partial, err = cssgen.Parse(string(data))
	default:
		return gradstate.State{}, errors.New("only .svg and .css files can be imported")
	}
	if err != nil {
		return gradstate.State{}, err
	}
	return partial.Apply(gradstate.Default()), nil
}

func newImportCmd() *cobra.Command {
	var save string
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Read back a generated SVG or CSS file and print its query string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := importFile(args[0])
			if err != nil {
				return err
			}
			if save != "" {
				if err = preset.Save(save, s); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), urlstate.Encode(s))
			return err
		},
	}
	cmd.Flags().StringVar(&save, "save", "", "also save the gradient to this preset file")
	return cmd
}
