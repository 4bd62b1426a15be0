package main

import (
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/benoitkugler/okgrad"
	"github.com/benoitkugler/okgrad/cssgen"
	"github.com/benoitkugler/okgrad/gradstate"
	"github.com/benoitkugler/okgrad/preset"
	"github.com/benoitkugler/okgrad/svggen"
	"github.com/spf13/cobra"
)

// writeOutputs writes gradient.svg and gradient.css in dir.
func writeOutputs(dir string, s gradstate.State, seed int) error {
	files := map[string]string{
		"gradient.svg": svggen.Generate(s, svggen.Options{Seed: seed}),
		"gradient.css": cssgen.Generate(s) + "\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func newWatchCmd(g *globalFlags) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the SVG and CSS files each time the preset changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if g.preset == "" {
				return errors.New("watch needs a --preset file")
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			logger := okgrad.Logger()
			return preset.Watch(ctx, g.preset, func(s gradstate.State, err error) {
				if err != nil {
					logger.Warn("preset not loaded", "path", g.preset, "err", err)
					return
				}
				if err = writeOutputs(outDir, s, g.seed); err != nil {
					logger.Error("writing outputs", "dir", outDir, "err", err)
					return
				}
				logger.Info("gradient regenerated", "dir", outDir)
			})
		},
	}
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory of the generated files")
	return cmd
}
