package router

import (
	stderrors "errors"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/routeshell/internal/errors"
	"github.com/vango-dev/routeshell/pkg/module"
)

func TestBuildOneNodePerDirectory(t *testing.T) {
	f := newFixture(t,
		"/reports/2024",
		"/settings",
		"/__pycache__/x",
		"/reports/__ignore__",
		"/node_modules/pkg",
	)
	f.page("/", textPage("home"))
	f.layout("/reports", wrapLayout("reports"))

	table := f.build()

	assert.Equal(t, []string{"/", "/reports", "/reports/2024", "/settings"}, table.Paths())

	parents := map[string]string{
		"/reports":      "/",
		"/reports/2024": "/reports",
		"/settings":     "/",
	}
	for child, want := range parents {
		n, ok := table.Get(child)
		require.True(t, ok, child)
		got, ok := n.Parent()
		assert.True(t, ok, child)
		assert.Equal(t, want, got, child)
	}

	root, ok := table.Root()
	require.True(t, ok)
	_, hasParent := root.Parent()
	assert.False(t, hasParent)
	assert.NotNil(t, root.Page)
	assert.Nil(t, root.Layout)

	reports, _ := table.Get("/reports")
	assert.NotNil(t, reports.Layout)
	assert.Nil(t, reports.Page)
}

func TestBuildEmptyDirectoryIsRoutable(t *testing.T) {
	f := newFixture(t, "/empty")
	table := f.build()

	n, ok := table.Get("/empty")
	require.True(t, ok)
	assert.Nil(t, n.Page)
	out, err := n.PageUnit().Render(f.propsFor())
	assert.NoError(t, err)
	assert.Empty(t, out)
}

func TestBuildCustomExclude(t *testing.T) {
	f := newFixture(t, "/drafts", "/vendor", "/public")
	table, err := NewBuilder(f.fs, WithLoader(f.reg), WithExclude("drafts")).Build("/")
	require.NoError(t, err)
	assert.Equal(t, []string{"/", "/public", "/vendor"}, table.Paths())
}

func TestBuildSubdirectoryRoot(t *testing.T) {
	f := newFixture(t, "/app/items", "/other")
	table, err := NewBuilder(f.fs, WithLoader(f.reg)).Build("/app")
	require.NoError(t, err)
	assert.Equal(t, []string{"/", "/items"}, table.Paths())

	items, _ := table.Get("/items")
	assert.Equal(t, "/app/items", items.Dir)
}

func TestBuildMissingRoot(t *testing.T) {
	_, err := NewBuilder(memfs.New()).Build("/nope")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, "E105"), err.Error())
}

func TestBuildLoadFailureAborts(t *testing.T) {
	f := newFixture(t, "/broken")
	f.touch("/broken/page.go")

	boom := stderrors.New("boom")
	loader := module.LoaderFunc(func(fs billy.Filesystem, file string, spec module.Spec) (*module.Unit, error) {
		if file == "/broken/page.go" {
			return nil, errors.New("E106").WithFile(file).Wrap(boom)
		}
		return module.NewUnit(file, spec), nil
	})

	_, err := NewBuilder(f.fs, WithLoader(loader)).Build("/")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, "E106"))
	assert.ErrorIs(t, err, boom)
}

func TestBuildPrefersGoOverMarkdown(t *testing.T) {
	f := newFixture(t, "/doc")
	f.touch("/doc/page.go")
	f.touch("/doc/page.md")

	table := f.build()
	n, _ := table.Get("/doc")
	require.NotNil(t, n.Page)
	assert.Equal(t, "/doc/page.go", n.Page.File)
}

func TestBuildIsOrderIndependent(t *testing.T) {
	a := newFixture(t, "/b", "/a/x", "/c")
	b := newFixture(t, "/c", "/a/x", "/b")
	assert.Equal(t, a.build().Paths(), b.build().Paths())
}
