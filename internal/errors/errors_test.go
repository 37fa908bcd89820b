package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{"route not found", "E100", "Route not found", CategoryRoute},
		{"file not found", "E105", "Route file not found", CategoryLoad},
		{"load failure", "E106", "Route file failed to load", CategoryLoad},
		{"render failure", "E108", "Render failed", CategoryRender},
		{"config", "E120", "Invalid routeshell.yaml", CategoryConfig},
		{"unknown error code", "E999", "Unknown error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			assert.Equal(t, tt.wantMsg, err.Message)
			assert.Equal(t, tt.wantCat, err.Category)
			assert.Equal(t, tt.code, err.Code)
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryRoute, "route %q is malformed", "/a//b")
	assert.Equal(t, `route "/a//b" is malformed`, err.Message)
	assert.Empty(t, err.Code)
	assert.Equal(t, `route "/a//b" is malformed`, err.Error())
}

func TestErrorString(t *testing.T) {
	cause := fmt.Errorf("open page.go: no such file")
	err := New("E105").WithDetail("app/page.go").Wrap(cause)
	assert.Equal(t, "E105: Route file not found: app/page.go: open page.go: no such file", err.Error())
}

func TestIsComparesCodes(t *testing.T) {
	err := fmt.Errorf("building tree: %w", New("E106").Wrap(stderrors.New("boom")))

	assert.True(t, stderrors.Is(err, New("E106")))
	assert.False(t, stderrors.Is(err, New("E105")))
	assert.True(t, HasCode(err, "E106"))
	assert.False(t, HasCode(err, "E100"))
	assert.False(t, HasCode(stderrors.New("plain"), "E106"))
}

func TestHasCodeNested(t *testing.T) {
	inner := New("E105")
	outer := New("E107").Wrap(inner)
	assert.True(t, HasCode(outer, "E105"))
	assert.True(t, HasCode(outer, "E107"))
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil, "E106"))

	existing := New("E104")
	assert.Same(t, existing, FromError(existing, "E106"))

	plain := stderrors.New("boom")
	wrapped := FromError(plain, "E106")
	require.NotNil(t, wrapped)
	assert.Equal(t, "E106", wrapped.Code)
	assert.ErrorIs(t, wrapped, plain)
}

func TestWithLocationReadsContext(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "page.go")
	src := "package page\n\nimport \"view\"\n\nfunc Page() {\n\tbroken(\n}\n"
	require.NoError(t, os.WriteFile(file, []byte(src), 0o644))

	err := New("E106").WithLocation(file, 6, 2)
	require.NotNil(t, err.Location)
	assert.Equal(t, fmt.Sprintf("%s:6:2", file), err.Location.String())
	assert.NotEmpty(t, err.Context)
	assert.Contains(t, strings.Join(err.Context, "\n"), "broken(")
}

func TestWithLocationFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantLine int
		wantCol  int
	}{
		{"positioned", stderrors.New("1:15:4: undefined: foo"), 15, 4},
		{"unpositioned", stderrors.New("evaluation panicked"), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New("E106").WithLocationFromError("app/page.go", tt.err)
			require.NotNil(t, err.Location)
			assert.Equal(t, "app/page.go", err.Location.File)
			assert.Equal(t, tt.wantLine, err.Location.Line)
			assert.Equal(t, tt.wantCol, err.Location.Column)
		})
	}
}

func TestLocationString(t *testing.T) {
	var nilLoc *Location
	assert.Equal(t, "", nilLoc.String())
	assert.Equal(t, "a.go", (&Location{File: "a.go"}).String())
	assert.Equal(t, "a.go:3", (&Location{File: "a.go", Line: 3}).String())
	assert.Equal(t, "a.go:3:7", (&Location{File: "a.go", Line: 3, Column: 7}).String())
}

func TestFormat(t *testing.T) {
	err := New("E103").
		WithFile("app/reports/page.go").
		WithSuggestion("Export func Page(props view.Props) []*view.Control").
		Wrap(stderrors.New("Page has type func()"))

	out := err.Format()
	assert.Contains(t, out, "E103")
	assert.Contains(t, out, "Invalid route file")
	assert.Contains(t, out, "app/reports/page.go")
	assert.Contains(t, out, "Hint:")
	assert.Contains(t, out, "Page has type func()")
}

func TestFormatCompact(t *testing.T) {
	err := New("E104").WithFile("app/items/[id]").WithDetail("/items/new")
	assert.Equal(t, "app/items/[id]: E104: Duplicate route (/items/new)", err.FormatCompact())
}

func TestFormatJSON(t *testing.T) {
	err := New("E105").WithFile("app/page.go").Wrap(stderrors.New("missing"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(err.FormatJSON()), &decoded))
	assert.Equal(t, "E105", decoded["code"])
	assert.Equal(t, "load", decoded["category"])
	assert.Equal(t, "missing", decoded["cause"])
	loc, ok := decoded["location"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "app/page.go", loc["file"])
}

func TestWrapText(t *testing.T) {
	assert.Nil(t, wrapText("", 10))
	assert.Equal(t, []string{"short"}, wrapText("short", 10))
	assert.Equal(t, []string{"one two", "three four"}, wrapText("one two three four", 10))
}

func TestRegistry(t *testing.T) {
	codes := GetAllCodes()
	require.NotEmpty(t, codes)
	assert.IsIncreasing(t, codes)

	for _, code := range codes {
		tmpl, ok := GetTemplate(code)
		require.True(t, ok, code)
		assert.NotEmpty(t, tmpl.Message, code)
		assert.NotEmpty(t, tmpl.Category, code)
	}

	Register("E199", ErrorTemplate{Category: CategoryRoute, Message: "Custom"})
	t.Cleanup(func() { delete(registry, "E199") })
	assert.Equal(t, "Custom", New("E199").Message)
}

func TestFprint(t *testing.T) {
	var b strings.Builder
	Fprint(&b, New("E100"))
	assert.Contains(t, b.String(), "Route not found")

	b.Reset()
	Fprint(&b, stderrors.New("plain failure"))
	assert.Contains(t, b.String(), "plain failure")
}
