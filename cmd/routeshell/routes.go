package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vango-dev/routeshell/pkg/inspect"
	"github.com/vango-dev/routeshell/pkg/module"
	"github.com/vango-dev/routeshell/pkg/router"
)

func routesCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the expanded route table",
		Long: `Build and expand the route table and list every navigable route.

Dynamic directories are shown through their expansions. The EXTRAS column
names the extra values a static params generator attached to an expansion.

Examples:
  routeshell routes
  routeshell routes --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg.Log)

			app, err := openApp(cmd.Context(), cfg, logger.With("command", "routes"))
			if err != nil {
				return err
			}
			defer app.Close(cmd.Context())

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(inspect.Routes(app.Table()))
			}
			printRoutes(out, app.Table())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print routes as JSON")

	return cmd
}

func printRoutes(w io.Writer, t *router.Table) {
	header := lipgloss.NewStyle().Bold(true)
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("PATH", "TEMPLATE", "PARAMS", "EXTRAS", "FILES")

	for _, n := range t.Nodes() {
		var tmpl string
		if n.Template != nil {
			tmpl = n.Template.Path
		}
		tbl.Row(n.Path, tmpl, formatParams(n), extraKeys(n), files(n))
	}

	fmt.Fprintln(w, tbl.String())
	fmt.Fprintf(w, "%d routes\n", t.Len())
}

func formatParams(n *router.RouteNode) string {
	params := n.Params()
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + params[k]
	}
	return strings.Join(parts, " ")
}

func extraKeys(n *router.RouteNode) string {
	seen := make(map[string]bool)
	var keys []string
	for _, p := range n.Combination {
		for _, k := range module.ExtraKeys(p) {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return strings.Join(keys, ", ")
}

func files(n *router.RouteNode) string {
	var out []string
	for _, u := range []*module.Unit{n.PageUnit(), n.Layout, n.NotFound} {
		if u != nil {
			out = append(out, u.File[strings.LastIndex(u.File, "/")+1:])
		}
	}
	return strings.Join(out, " ")
}
