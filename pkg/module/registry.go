package module

import (
	"path"
	"sync"

	"github.com/go-git/go-billy/v5"

	"github.com/vango-dev/routeshell/pkg/view"
)

// Definition is a compiled unit: Go functions standing in for a route file.
type Definition struct {
	Entry RenderFunc
	Aux   map[string]AuxFunc
}

// Registry maps route file paths to compiled definitions. The file must still
// exist in the route tree; its contents are ignored.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register stores def for file. Paths are relative to the route root; a
// leading slash is optional. Registering a file twice replaces the first
// definition.
func (r *Registry) Register(file string, def Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[cleanKey(file)] = def
}

// Page registers a page for the route directory dir.
func (r *Registry) Page(dir string, fn func(view.Props) []*view.Control, aux ...Aux) {
	r.Register(path.Join(dir, "page.go"), Definition{Entry: Controls(fn), Aux: auxMap(aux)})
}

// Layout registers a layout for the route directory dir.
func (r *Registry) Layout(dir string, fn func(view.Props) []*view.Control) {
	r.Register(path.Join(dir, "layout.go"), Definition{Entry: Controls(fn)})
}

// NotFound registers a not-found unit for the route directory dir.
func (r *Registry) NotFound(dir string, fn func(view.Props) []*view.Control) {
	r.Register(path.Join(dir, "not_found.go"), Definition{Entry: Controls(fn)})
}

// Has reports whether file has a registered definition.
func (r *Registry) Has(file string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.defs[cleanKey(file)]
	return ok
}

// Files returns the registered file keys.
func (r *Registry) Files() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.defs))
	for k := range r.defs {
		out = append(out, k)
	}
	return out
}

// Load implements Loader.
func (r *Registry) Load(fs billy.Filesystem, file string, spec Spec) (*Unit, error) {
	if err := statFile(fs, file); err != nil {
		return nil, err
	}

	r.mu.RLock()
	def, ok := r.defs[cleanKey(file)]
	r.mu.RUnlock()

	u := NewUnit(file, spec)
	if !ok {
		return u, nil
	}
	if def.Entry != nil {
		u.Entry = def.Entry
	}
	for name, fn := range def.Aux {
		if fn != nil {
			u.Aux[name] = fn
		}
	}
	return u, nil
}

// Aux names one auxiliary function for Registry.Page.
type Aux struct {
	Name string
	Func AuxFunc
}

// StaticParams wraps a generator as the GenerateStaticParams auxiliary.
func StaticParams(fn func() any) Aux {
	return Aux{Name: AuxStaticParams, Func: func(view.Props) (any, error) { return fn(), nil }}
}

// Metadata wraps fn as the GenerateMetadata auxiliary.
func Metadata(fn func(view.Props) view.Metadata) Aux {
	return Aux{Name: AuxMetadata, Func: func(p view.Props) (any, error) { return fn(p), nil }}
}

// Controls adapts an infallible render function.
func Controls(fn func(view.Props) []*view.Control) RenderFunc {
	if fn == nil {
		return nil
	}
	return func(p view.Props) ([]*view.Control, error) { return fn(p), nil }
}

func auxMap(aux []Aux) map[string]AuxFunc {
	if len(aux) == 0 {
		return nil
	}
	m := make(map[string]AuxFunc, len(aux))
	for _, a := range aux {
		m[a.Name] = a.Func
	}
	return m
}
