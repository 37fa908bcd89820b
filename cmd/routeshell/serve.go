package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func serveCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a headless shell behind the HTTP inspector",
		Long: `Run a headless shell and expose it over HTTP.

Endpoints:
  GET  /routes      expanded route table
  POST /navigate    navigate to {"path": "..."}
  POST /back        history back
  POST /forward     history forward
  GET  /frame       current frame as JSON
  GET  /frame.html  current frame as a live HTML page
  GET  /ws          frame stream
  GET  /metrics     Prometheus metrics (when enabled)

Examples:
  routeshell serve
  routeshell serve --addr=:7070`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Inspector.Addr = addr
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg.Log)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := openApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer app.Close(cmd.Context())

			out := cmd.OutOrStdout()
			printBanner(out)
			fmt.Fprintln(out, "  serve")
			fmt.Fprintln(out)

			err = app.Serve(ctx, cfg.Inspector.Addr, func(a net.Addr) {
				success(out, "Inspector listening on http://%s", a)
				info(out, "%d routes, initial %s", app.Table().Len(), cfg.Routes.Initial)
				info(out, "Open http://%s/frame.html to follow the shell", a)
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "\n  Shutting down...")
			return nil
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from routeshell.yaml)")

	return cmd
}
