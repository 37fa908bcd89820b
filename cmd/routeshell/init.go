package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routeshell/internal/config"
	"github.com/vango-dev/routeshell/internal/errors"
)

// starterFiles are written below the routes directory by init.
var starterFiles = map[string]string{
	"page.md": `---
title: Home
---
# Welcome

Edit page.md to change this screen, or add a directory to add a route.

[About](/about)
`,
	"about/page.md": `---
title: About
---
# About

Every directory under the routes directory is a route.
`,
	"not_found.md": `# Not found

{{error}}

[Home](/)
`,
	"layout.go": `package app

import "github.com/vango-dev/routeshell/pkg/view"

// Layout wraps every route.
func Layout(props view.Props) []*view.Control {
	out := []*view.Control{view.Muted("` + "%s" + `"), view.Divider()}
	return append(out, props.Children...)
}
`,
}

func initCmd() *cobra.Command {
	var (
		name   string
		routes string
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a new routeshell project",
		Long: `Create routeshell.yaml and a starter routes directory.

The directory defaults to the current one and is created if needed.

Examples:
  routeshell init
  routeshell init my-shell --routes=screens`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(cmd.OutOrStdout(), dir, name, routes)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Project name (default: directory name)")
	cmd.Flags().StringVarP(&routes, "routes", "r", config.DefaultRoutes, "Routes directory")

	return cmd
}

func runInit(w io.Writer, dir, name, routes string) error {
	projectDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if config.Exists(projectDir) {
		return errors.New("E141").
			WithFile(filepath.Join(projectDir, config.ConfigFileName)).
			WithSuggestion("Edit the existing file or choose another directory")
	}
	if name == "" {
		name = filepath.Base(projectDir)
	}

	printBanner(w)
	fmt.Fprintln(w, "  Creating a new routeshell project...")
	fmt.Fprintln(w)

	cfg := config.New()
	cfg.Name = name
	cfg.Routes.Dir = routes
	if err := cfg.Validate(); err != nil {
		return err
	}

	routesDir := filepath.Join(projectDir, routes)
	info(w, "Writing starter routes to %s/", routes)
	for file, content := range starterFiles {
		if file == "layout.go" {
			content = fmt.Sprintf(content, name)
		}
		path := filepath.Join(routesDir, filepath.FromSlash(file))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return err
		}
	}

	if err := cfg.SaveTo(filepath.Join(projectDir, config.ConfigFileName)); err != nil {
		return err
	}

	fmt.Fprintln(w)
	success(w, "Created %s", cfg.Path())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  To get started:")
	fmt.Fprintln(w)
	if dir != "." {
		fmt.Fprintf(w, "    cd %s\n", dir)
	}
	fmt.Fprintln(w, "    routeshell run")
	fmt.Fprintln(w)

	return nil
}
