package module

import (
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/vango-dev/routeshell/internal/errors"
)

// Loader loads one route file from fs.
type Loader interface {
	Load(fs billy.Filesystem, file string, spec Spec) (*Unit, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(fs billy.Filesystem, file string, spec Spec) (*Unit, error)

func (f LoaderFunc) Load(fs billy.Filesystem, file string, spec Spec) (*Unit, error) {
	return f(fs, file, spec)
}

// Resolver dispatches to a loader by file extension. Go files registered in
// Registry are served from it; other Go files go to Interpreter.
type Resolver struct {
	Registry    *Registry
	Interpreter *Interpreter
	Markdown    *Markdown
}

// NewResolver returns a resolver with all three loaders. reg may be nil.
func NewResolver(reg *Registry, opts ...InterpreterOption) *Resolver {
	if reg == nil {
		reg = NewRegistry()
	}
	return &Resolver{
		Registry:    reg,
		Interpreter: NewInterpreter(opts...),
		Markdown:    NewMarkdown(),
	}
}

// Load implements Loader.
func (r *Resolver) Load(fs billy.Filesystem, file string, spec Spec) (*Unit, error) {
	switch path.Ext(file) {
	case ".go":
		if r.Registry != nil && r.Registry.Has(file) {
			return r.Registry.Load(fs, file, spec)
		}
		if r.Interpreter != nil {
			return r.Interpreter.Load(fs, file, spec)
		}
	case ".md":
		if r.Markdown != nil {
			return r.Markdown.Load(fs, file, spec)
		}
	}
	return nil, errors.New("E103").
		WithFile(file).
		WithDetail("no loader handles " + path.Ext(file) + " files").
		WithSuggestion("Route units are page.go, layout.go, not_found.go or page.md / not_found.md")
}

// readFile reads file from fs, mapping a missing file to E105.
func readFile(fs billy.Filesystem, file string) ([]byte, error) {
	data, err := util.ReadFile(fs, file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E105").WithFile(file).Wrap(err)
		}
		return nil, errors.New("E106").WithFile(file).Wrap(err)
	}
	return data, nil
}

// statFile reports E105 when file does not exist.
func statFile(fs billy.Filesystem, file string) error {
	if _, err := fs.Stat(file); err != nil {
		if os.IsNotExist(err) {
			return errors.New("E105").WithFile(file).Wrap(err)
		}
		return errors.New("E106").WithFile(file).Wrap(err)
	}
	return nil
}

// cleanKey normalizes a route file path to the form the builder passes in.
func cleanKey(file string) string {
	file = strings.ReplaceAll(file, "\\", "/")
	return path.Clean("/" + file)
}

func defaultLogger() *slog.Logger {
	return slog.Default().With("component", "module")
}
