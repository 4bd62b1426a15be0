package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/benoitkugler/okgrad/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		addr       string
		configPath string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := server.DefaultConfig()
			if configPath != "" {
				var err error
				if cfg, err = server.LoadConfig(configPath); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			gin.SetMode(gin.ReleaseMode)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(cfg).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", server.DefaultConfig().Addr, "listen address")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML configuration file")
	return cmd
}
