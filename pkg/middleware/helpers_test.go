package middleware

import (
	stderrors "errors"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/routeshell/pkg/module"
	"github.com/vango-dev/routeshell/pkg/router"
	"github.com/vango-dev/routeshell/pkg/view"
)

// nullRenderer discards everything mounted.
type nullRenderer struct{ title string }

func (n *nullRenderer) Clear()                     {}
func (n *nullRenderer) MountChrome(view.Navigator) {}
func (n *nullRenderer) Mount([]*view.Control)      {}
func (n *nullRenderer) Display() view.Display      { return n }
func (n *nullRenderer) SetTitle(s string)          { n.title = s }
func (n *nullRenderer) Title() string              { return n.title }
func (n *nullRenderer) Size() (int, int)           { return 0, 0 }

// newRouter serves "/", "/items/a", "/items/b" and a failing "/broken".
func newRouter(t *testing.T, mw ...router.Middleware) *router.Router {
	t.Helper()
	fs := memfs.New()
	for _, f := range []string{"/page.go", "/items/[id]/page.go", "/broken/page.go"} {
		require.NoError(t, util.WriteFile(fs, f, nil, 0o644))
	}

	reg := module.NewRegistry()
	text := func(s string) func(view.Props) []*view.Control {
		return func(p view.Props) []*view.Control { return []*view.Control{view.Text(s + p.Param("id"))} }
	}
	reg.Page("/", text("home"))
	reg.Page("/items/[id]", text("item "), module.StaticParams(func() any { return []string{"a", "b"} }))
	reg.Register("/broken/page.go", module.Definition{
		Entry: func(view.Props) ([]*view.Control, error) { return nil, stderrors.New("boom") },
	})

	table, err := router.NewBuilder(fs, router.WithLoader(reg)).Build("/")
	require.NoError(t, err)
	table, err = router.Expand(table)
	require.NoError(t, err)
	return router.New(table, &nullRenderer{}, router.WithMiddleware(mw...))
}
