package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routeshell/internal/errors"
	"github.com/vango-dev/routeshell/pkg/render"
	"github.com/vango-dev/routeshell/pkg/view"
)

func renderCmd(opts *rootOptions) *cobra.Command {
	var (
		format string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "render <path>",
		Short: "Render one route headlessly and print the frame",
		Long: `Navigate a headless shell to path and print what it presents.

Formats:
  text   indented control tree (default)
  html   standalone HTML document
  json   the frame as JSON

An unknown path renders the nearest not-found screen. With --strict it
also exits with an error.

Examples:
  routeshell render /about
  routeshell render /items/alpha --format=html > alpha.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg.Log)

			app, err := openApp(cmd.Context(), cfg, logger.With("command", "render"))
			if err != nil {
				return err
			}
			defer app.Close(cmd.Context())

			f, found := app.Render(args[0])
			out := cmd.OutOrStdout()

			switch format {
			case "html":
				err = render.WriteHTML(out, f, render.HTMLOptions{StyleSheets: cfg.Inspector.Stylesheets})
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				err = enc.Encode(f)
			case "text", "":
				if f.Title != "" {
					fmt.Fprintf(out, "%s\n\n", f.Title)
				}
				_, err = fmt.Fprint(out, view.Plain(f.Body))
			default:
				return errors.New("E121").
					WithDetail("unknown format " + format).
					WithSuggestion("Use text, html or json")
			}
			if err != nil {
				return err
			}

			if !found {
				if strict {
					return errors.New("E100").WithDetail(f.Path)
				}
				warn(cmd.ErrOrStderr(), "no route matches %s", f.Path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, html, json)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when the path does not match a route")

	return cmd
}
