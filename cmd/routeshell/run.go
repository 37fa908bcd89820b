package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routeshell/internal/errors"
	"github.com/vango-dev/routeshell/pkg/tui"
)

func runCmd(opts *rootOptions) *cobra.Command {
	var (
		initial string
		logFile string
		mdStyle string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the shell in the terminal",
		Long: `Open the full-screen terminal shell.

Keys:
  / or ctrl+l      focus the search bar, enter to go, esc to cancel
  tab, shift+tab   move between links and buttons
  enter            follow the focused link or button
  alt+←, alt+→     back and forward
  ctrl+r           reload
  q, ctrl+c        quit

The shell owns the terminal, so logs go to a file.

Examples:
  routeshell run
  routeshell run --path=/items/alpha
  routeshell run --log-file=/tmp/shell.log --log-level=debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if initial != "" {
				cfg.Routes.Initial = initial
			}
			if logFile == "" {
				logFile = filepath.Join(cfg.Dir(), ".routeshell.log")
			}

			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return errors.New("E142").WithDetail("open log file " + logFile).Wrap(err)
			}
			defer f.Close()
			logger := newLogger(f, cfg.Log)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := openApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer app.Close(ctx)

			if err := app.RunTerminal(ctx, tui.WithMarkdownStyle(mdStyle)); err != nil {
				return errors.New("E142").Wrap(err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&initial, "path", "p", "", "Initial route (default from routeshell.yaml)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Log file (default .routeshell.log in the project directory)")
	cmd.Flags().StringVar(&mdStyle, "markdown-style", "auto", "Markdown style (auto, dark, light, notty)")

	return cmd
}
