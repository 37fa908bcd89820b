package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routeshell"
	"github.com/vango-dev/routeshell/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┬─┐┌─┐┬ ┬┌┬┐┌─┐┌─┐┬ ┬┌─┐┬  ┬
  ├┬┘│ ││ │ │ ├┤ └─┐├─┤├┤ │  │
  ┴└─└─┘└─┘ ┴ └─┘└─┘┴ ┴└─┘┴─┘┴─┘
`

func main() {
	routeshell.Version = version

	if err := newRootCmd().Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "routeshell",
		Short: "A file-system routed shell for terminal and headless surfaces",
		Long: `Routeshell turns a directory of route files into a navigable shell.

Every directory under the routes directory is a route. A directory holds
up to three files:

  • page.go or page.md            the screen for the route
  • layout.go                     wraps this route and every route below it
  • not_found.go or not_found.md  shown for unknown paths below it

Directories named [param] are expanded once per value returned by the
page's GenerateStaticParams function.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.dir, "dir", "C", "", "Project directory (default: nearest directory with routeshell.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Override log format (text, json)")

	rootCmd.AddCommand(
		initCmd(),
		runCmd(opts),
		routesCmd(opts),
		renderCmd(opts),
		serveCmd(opts),
		versionCmd(),
	)

	return rootCmd
}

// printBanner prints the routeshell ASCII art banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
