package router

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/routeshell/internal/errors"
	"github.com/vango-dev/routeshell/pkg/view"
)

func compose(t *testing.T, table *Table, path string) ([]*view.Control, error) {
	t.Helper()
	n, ok := table.Get(path)
	require.True(t, ok, path)
	return NewComposer(table, nil).Build(n, view.Props{Params: n.Params()})
}

func missingPage(p view.Props) []*view.Control {
	return []*view.Control{view.Text("missing: " + p.Param("error"))}
}

func TestComposeNestedLayouts(t *testing.T) {
	f := newFixture(t, "/mid/leaf")
	f.layout("/", wrapLayout("root"))
	f.layout("/mid", wrapLayout("mid"))
	f.page("/mid/leaf", textPage("leaf"))

	out, err := compose(t, f.expand(), "/mid/leaf")
	require.NoError(t, err)
	assert.Equal(t, "<column>\n  root\n  <column>\n    mid\n    page leaf\n", view.Plain(out))
}

func TestComposeSkipsLevelsWithoutLayout(t *testing.T) {
	f := newFixture(t, "/a/b")
	f.layout("/", wrapLayout("root"))
	f.page("/a/b", textPage("b"))

	out, err := compose(t, f.expand(), "/a/b")
	require.NoError(t, err)
	assert.Equal(t, "<column>\n  root\n  page b\n", view.Plain(out))
}

func TestComposeLayoutSeesParams(t *testing.T) {
	f := newFixture(t, "/items/[id]")
	f.params("/items/[id]", segs("7"))
	f.layout("/items", func(p view.Props) []*view.Control {
		return append([]*view.Control{view.Heading(1, "item "+p.Param("id"))}, p.Children...)
	})

	out, err := compose(t, f.expand(), "/items/7")
	require.NoError(t, err)
	assert.Equal(t, "# item 7\npage /items/[id]\n", view.Plain(out))
}

func TestComposePageGetsNoChildren(t *testing.T) {
	f := newFixture(t, "/a")
	f.layout("/", wrapLayout("root"))
	var got []*view.Control
	f.page("/a", func(p view.Props) []*view.Control {
		got = p.Children
		return []*view.Control{view.Text("a")}
	})

	_, err := compose(t, f.expand(), "/a")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestComposeEmptyPage(t *testing.T) {
	t.Run("not-found unit replaces it", func(t *testing.T) {
		f := newFixture(t, "/empty")
		f.layout("/", wrapLayout("root"))
		f.notFound("/", missingPage)

		out, err := compose(t, f.expand(), "/empty")
		require.NoError(t, err)
		assert.Equal(t, "<column>\n  root\n  missing: page not found\n", view.Plain(out))
	})

	t.Run("without not-found unit", func(t *testing.T) {
		f := newFixture(t, "/empty")

		out, err := compose(t, f.expand(), "/empty")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("layouts that drop children", func(t *testing.T) {
		f := newFixture(t, "/a")
		f.page("/a", textPage("a"))
		f.layout("/", func(view.Props) []*view.Control { return nil })
		f.notFound("/", missingPage)

		out, err := compose(t, f.expand(), "/a")
		require.NoError(t, err)
		assert.Equal(t, "missing: page not found\n", view.Plain(out))
	})
}

func TestComposeFailingPage(t *testing.T) {
	boom := stderrors.New("boom")
	tests := []struct {
		name    string
		page    func(view.Props) ([]*view.Control, error)
		wantMsg string
	}{
		{
			name:    "error",
			page:    func(view.Props) ([]*view.Control, error) { return nil, boom },
			wantMsg: "render failed: boom",
		},
		{
			name:    "panic",
			page:    func(view.Props) ([]*view.Control, error) { panic("kaput") },
			wantMsg: "render failed: panic: kaput",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "/a/b")
			f.layout("/", wrapLayout("root"))
			f.notFound("/a", missingPage)
			f.pageFunc("/a/b", tt.page)

			out, err := compose(t, f.expand(), "/a/b")
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, "E108"), err.Error())
			assert.Equal(t, "<column>\n  root\n  missing: "+tt.wantMsg+"\n", view.Plain(out))
		})
	}
}

func TestComposeFailingPageWithoutNotFound(t *testing.T) {
	f := newFixture(t, "/a")
	f.pageFunc("/a", func(view.Props) ([]*view.Control, error) { return nil, stderrors.New("boom") })

	out, err := compose(t, f.expand(), "/a")
	require.Error(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, view.ToneError, out[0].Tone)
	assert.Equal(t, "Error: page not found or route misconfigured. Details: render failed: boom", out[0].Text)
}

func TestComposeFailingLayoutFallsBack(t *testing.T) {
	f := newFixture(t, "/a")
	f.notFound("/", missingPage)
	f.page("/a", textPage("a"))
	f.touch("/layout.go")
	f.reg.Register("/layout.go", moduleDef(func(view.Props) ([]*view.Control, error) {
		return nil, stderrors.New("layout broke")
	}))

	out, err := compose(t, f.expand(), "/a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "layout /: layout broke")
	require.Len(t, out, 1)
	assert.Equal(t, view.ToneError, out[0].Tone)
	assert.Contains(t, out[0].Text, "layout broke")
}

func TestComposeFailingNotFoundFallsBack(t *testing.T) {
	f := newFixture(t, "/a")
	f.layout("/", wrapLayout("root"))
	f.pageFunc("/a", func(view.Props) ([]*view.Control, error) { return nil, stderrors.New("boom") })
	f.touch("/not_found.go")
	f.reg.Register("/not_found.go", moduleDef(func(view.Props) ([]*view.Control, error) {
		panic("not found broke")
	}))

	out, err := compose(t, f.expand(), "/a")
	require.Error(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Error: page not found or route misconfigured. Details: render failed: boom", out[0].Text)
}

func TestComposerErrorUsesRootForNil(t *testing.T) {
	f := newFixture(t, "/a")
	f.layout("/", wrapLayout("root"))
	f.notFound("/", missingPage)
	table := f.expand()

	out := NewComposer(table, nil).Error(nil, view.Props{}, "gone")
	assert.Equal(t, "<column>\n  root\n  missing: gone\n", view.Plain(out))
}

func TestDefaultError(t *testing.T) {
	out := DefaultError(view.Props{})
	require.Len(t, out, 1)
	assert.Equal(t, "Error: page not found or route misconfigured. Details: no details", out[0].Text)
	assert.Equal(t, view.ToneError, out[0].Tone)
}
