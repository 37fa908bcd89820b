package main

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/vango-dev/routeshell"
	"github.com/vango-dev/routeshell/internal/config"
)

type rootOptions struct {
	dir       string
	logLevel  string
	logFormat string
}

// loadConfig finds the project from --dir or the working directory and
// applies the logging overrides.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.dir == "" {
		cfg, err = config.LoadFromWorkingDir()
	} else {
		var dir, root string
		dir, err = filepath.Abs(o.dir)
		if err != nil {
			return nil, err
		}
		root, err = config.FindProjectRoot(dir)
		if err != nil {
			return nil, err
		}
		cfg, err = config.Load(root)
	}
	if err != nil {
		return nil, err
	}

	if o.logLevel != "" {
		cfg.Log.Level = strings.ToLower(o.logLevel)
	}
	if o.logFormat != "" {
		cfg.Log.Format = strings.ToLower(o.logFormat)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger described by c and installs it as the
// slog default.
func newLogger(w io.Writer, c config.LogConfig) *slog.Logger {
	var level slog.Level
	switch c.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	hopts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if c.Format == "json" {
		h = slog.NewJSONHandler(w, hopts)
	} else {
		h = slog.NewTextHandler(w, hopts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

func openApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*routeshell.App, error) {
	return routeshell.New(ctx, cfg, routeshell.WithLogger(logger))
}
