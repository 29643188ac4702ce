package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eringen/glassblog"
	"github.com/eringen/glassblog/views"
)

func newServeCmd() *cobra.Command {
	var (
		addr    string
		noWatch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the blog over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := siteConfig(cmd)
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if noWatch {
				cfg.Watch = false
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := glassblog.NewLogger(os.Stderr, cfg.Level())
			app := glassblog.New(cfg, nil, views.New(cfg), glassblog.WithLogger(logger))
			defer app.Close()

			return app.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides config")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload posts when the data file changes")
	return cmd
}
