package router

import (
	"log/slog"
	"os"
	"sort"

	"github.com/go-git/go-billy/v5"

	"github.com/vango-dev/routeshell/internal/errors"
	"github.com/vango-dev/routeshell/pkg/module"
	"github.com/vango-dev/routeshell/pkg/routepath"
)

// DefaultExclude lists directory names the builder never descends into.
var DefaultExclude = []string{
	".git",
	".cache",
	"node_modules",
	"vendor",
	"testdata",
	"__ignore__",
	"__pycache__",
}

// Builder discovers route directories in a filesystem and loads their units.
type Builder struct {
	fs      billy.Filesystem
	loader  module.Loader
	exclude map[string]bool
	logger  *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLoader sets the unit loader. The default is module.NewResolver(nil).
func WithLoader(l module.Loader) BuilderOption {
	return func(b *Builder) { b.loader = l }
}

// WithExclude replaces the excluded directory names.
func WithExclude(names ...string) BuilderOption {
	return func(b *Builder) {
		b.exclude = make(map[string]bool, len(names))
		for _, n := range names {
			b.exclude[n] = true
		}
	}
}

// WithBuilderLogger sets the logger.
func WithBuilderLogger(l *slog.Logger) BuilderOption {
	return func(b *Builder) { b.logger = l }
}

// NewBuilder creates a builder reading from fs.
func NewBuilder(fs billy.Filesystem, opts ...BuilderOption) *Builder {
	b := &Builder{
		fs:     fs,
		logger: slog.Default().With("component", "router"),
	}
	WithExclude(DefaultExclude...)(b)
	for _, opt := range opts {
		opt(b)
	}
	if b.loader == nil {
		b.loader = module.NewResolver(nil)
	}
	return b
}

// Build walks root and returns a table with one node per eligible directory,
// keyed by route path in lexical order. Parents are wired in a second pass so
// the result does not depend on directory iteration order. Any unit that
// fails to load aborts the build.
func (b *Builder) Build(root string) (*Table, error) {
	dirs := make(map[string]string)
	if err := b.walk(root, "/", dirs); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(dirs))
	for p := range dirs {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	table := NewTable()
	for _, p := range paths {
		node, err := b.node(p, dirs[p])
		if err != nil {
			return nil, err
		}
		if err := table.Add(node); err != nil {
			return nil, err
		}
	}

	for _, node := range table.Nodes() {
		parent, ok := routepath.Parent(node.Path)
		if !ok {
			continue
		}
		if _, found := table.Node(parent); found {
			node.setParent(parent)
		}
	}

	b.logger.Debug("route tree built", "root", root, "routes", table.Len())
	return table, nil
}

func (b *Builder) walk(dir, route string, out map[string]string) error {
	entries, err := b.fs.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) && route == "/" {
			return errors.New("E105").WithFile(dir).WithDetail("route root does not exist").Wrap(err)
		}
		return errors.New("E106").WithFile(dir).Wrap(err)
	}
	out[route] = dir

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if b.exclude[e.Name()] {
			b.logger.Debug("skipping excluded directory", "dir", b.fs.Join(dir, e.Name()))
			continue
		}
		if err := b.walk(b.fs.Join(dir, e.Name()), routepath.Join(route, e.Name()), out); err != nil {
			return err
		}
	}
	return nil
}

// node loads the units present in dir.
func (b *Builder) node(path, dir string) (*RouteNode, error) {
	n := &RouteNode{Path: path, Dir: dir}
	for _, spec := range module.Specs {
		unit, err := b.loadKind(dir, spec)
		if err != nil {
			return nil, err
		}
		switch spec.Kind {
		case module.KindPage:
			n.Page = unit
		case module.KindLayout:
			n.Layout = unit
		case module.KindNotFound:
			n.NotFound = unit
		}
	}
	return n, nil
}

// loadKind loads the first candidate file for spec that exists in dir.
func (b *Builder) loadKind(dir string, spec module.Spec) (*module.Unit, error) {
	var chosen string
	for _, name := range module.Files(spec.Kind) {
		file := b.fs.Join(dir, name)
		if _, err := b.fs.Stat(file); err != nil {
			continue
		}
		if chosen != "" {
			b.logger.Warn("route file shadowed", "file", file, "using", chosen)
			continue
		}
		chosen = file
	}
	if chosen == "" {
		return nil, nil
	}

	unit, err := b.loader.Load(b.fs, chosen, spec)
	if err != nil {
		b.logger.Error("route file failed to load", "file", chosen, "error", err)
		return nil, err
	}
	return unit, nil
}
