package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/benoitkugler/okgrad"
	"github.com/benoitkugler/okgrad/gradstate"
	"github.com/benoitkugler/okgrad/highlight"
	"github.com/benoitkugler/okgrad/preset"
	"github.com/benoitkugler/okgrad/urlstate"
	"github.com/spf13/cobra"
)

// globalFlags are shared by every sub command.
type globalFlags struct {
	preset   string
	query    string
	seed     int
	logLevel string
	color    string
}

// state returns the gradient selected by the flags: a preset file, a
// query string, or the defaults.
func (g *globalFlags) state() (gradstate.State, error) {
	switch {
	case g.preset != "":
		return preset.Load(g.preset)
	case g.query != "":
		return urlstate.Initial(g.query), nil
	}
	return gradstate.Default(), nil
}

func (g *globalFlags) setupLogger(stderr io.Writer) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q", g.logLevel)
	}
	okgrad.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// colorFormat returns the formatter to use on w, or "" for plain output.
func (g *globalFlags) colorFormat(w io.Writer) (highlight.Format, error) {
	var enabled bool
	switch g.color {
	case "always":
		enabled = true
	case "never":
	case "auto":
		f, ok := w.(*os.File)
		enabled = ok && highlight.Enabled(f)
	default:
		return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", g.color)
	}
	if !enabled {
		return "", nil
	}
	if ct := os.Getenv("COLORTERM"); ct == "truecolor" || ct == "24bit" {
		return highlight.TrueColor, nil
	}
	return highlight.Terminal256, nil
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "okgrad",
		Short:         "Generate gradients as SVG, CSS, PNG or PDF",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setupLogger(cmd.ErrOrStderr())
		},
	}
	flags := root.PersistentFlags()
	flags.StringVarP(&g.preset, "preset", "p", "", "read the gradient from a YAML, TOML or JSON preset file")
	flags.StringVarP(&g.query, "query", "q", "", "read the gradient from a shared link query string")
	flags.IntVar(&g.seed, "seed", 0, "seed of the grain texture")
	flags.StringVar(&g.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.StringVar(&g.color, "color", "auto", "highlight generated code: auto, always or never")
	root.MarkFlagsMutuallyExclusive("preset", "query")

	root.AddCommand(
		newCodeCmd(g, highlight.SVG),
		newCodeCmd(g, highlight.CSS),
		newImageCmd(g, "png"),
		newImageCmd(g, "pdf"),
		newURLCmd(g),
		newDecodeCmd(),
		newImportCmd(),
		newEditCmd(g),
		newServeCmd(),
		newWatchCmd(g),
	)
	return root
}

// output returns the destination of a command: the file at path, or the
// command output when path is empty or "-".
func output(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
