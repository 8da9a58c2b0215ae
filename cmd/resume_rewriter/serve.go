package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-rewriter/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long:  "Start an HTTP server exposing the rewrite, structured, batch and highlight endpoints. The generation flag and credential are re-read on every request.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := server.Config{
				Port:        a.cfg.Server.Port,
				RateLimit:   a.cfg.Server.RateLimit,
				Concurrency: a.cfg.Generation.Concurrency,
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(cfg, a.orchestrator, a.settings, a.logger).Start(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (default from config)")
	return cmd
}
