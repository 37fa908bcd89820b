package router

import (
	"path"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/routeshell/pkg/module"
	"github.com/vango-dev/routeshell/pkg/view"
)

// fixture is an in-memory route tree whose units are compiled functions
// registered against empty marker files.
type fixture struct {
	t   *testing.T
	fs  billy.Filesystem
	reg *module.Registry
}

func newFixture(t *testing.T, dirs ...string) *fixture {
	t.Helper()
	f := &fixture{t: t, fs: memfs.New(), reg: module.NewRegistry()}
	require.NoError(t, f.fs.MkdirAll("/", 0o755))
	for _, d := range dirs {
		require.NoError(t, f.fs.MkdirAll(d, 0o755))
	}
	return f
}

func (f *fixture) touch(file string) {
	f.t.Helper()
	require.NoError(f.t, util.WriteFile(f.fs, file, nil, 0o644))
}

func (f *fixture) page(dir string, fn func(view.Props) []*view.Control, aux ...module.Aux) {
	f.touch(path.Join(dir, "page.go"))
	f.reg.Page(dir, fn, aux...)
}

func (f *fixture) pageFunc(dir string, fn module.RenderFunc) {
	f.touch(path.Join(dir, "page.go"))
	f.reg.Register(path.Join(dir, "page.go"), module.Definition{Entry: fn})
}

func (f *fixture) params(dir string, gen func() any) {
	f.page(dir, textPage(dir), module.StaticParams(gen))
}

func (f *fixture) layout(dir string, fn func(view.Props) []*view.Control) {
	f.touch(path.Join(dir, "layout.go"))
	f.reg.Layout(dir, fn)
}

func (f *fixture) notFound(dir string, fn func(view.Props) []*view.Control) {
	f.touch(path.Join(dir, "not_found.go"))
	f.reg.NotFound(dir, fn)
}

func (f *fixture) build() *Table {
	f.t.Helper()
	table, err := NewBuilder(f.fs, WithLoader(f.reg)).Build("/")
	require.NoError(f.t, err)
	return table
}

func (f *fixture) expand() *Table {
	f.t.Helper()
	table, err := Expand(f.build())
	require.NoError(f.t, err)
	return table
}

func (f *fixture) propsFor() view.Props {
	return view.Props{Params: map[string]string{}}
}

func (f *fixture) router(mw ...Middleware) (*Router, *recorder) {
	f.t.Helper()
	rec := &recorder{}
	return New(f.expand(), rec, WithMiddleware(mw...)), rec
}

func moduleDef(fn module.RenderFunc) module.Definition {
	return module.Definition{Entry: fn}
}

// textPage renders "page <name>".
func textPage(name string) func(view.Props) []*view.Control {
	return func(p view.Props) []*view.Control {
		return []*view.Control{view.Text("page " + name)}
	}
}

// wrapLayout renders name around its children.
func wrapLayout(name string) func(view.Props) []*view.Control {
	return func(p view.Props) []*view.Control {
		return []*view.Control{view.Column(append([]*view.Control{view.Text(name)}, p.Children...)...)}
	}
}

// recorder is a Renderer that keeps what was mounted.
type recorder struct {
	clears  int
	chrome  int
	nav     view.Navigator
	mounted []*view.Control
	title   string
}

func (r *recorder) Clear() {
	r.clears++
	r.mounted = nil
}

func (r *recorder) MountChrome(nav view.Navigator) {
	r.chrome++
	r.nav = nav
}

func (r *recorder) Mount(cs []*view.Control) { r.mounted = append(r.mounted, cs...) }

func (r *recorder) Display() view.Display { return r }

func (r *recorder) SetTitle(s string) { r.title = s }

func (r *recorder) Title() string { return r.title }

func (r *recorder) Size() (int, int) { return 80, 24 }

func (r *recorder) plain() string { return view.Plain(r.mounted) }
