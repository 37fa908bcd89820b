package routeshell

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/vango-dev/routeshell/internal/config"
	"github.com/vango-dev/routeshell/internal/errors"
	"github.com/vango-dev/routeshell/pkg/module"
	"github.com/vango-dev/routeshell/pkg/render"
	"github.com/vango-dev/routeshell/pkg/router"
	"github.com/vango-dev/routeshell/pkg/view"
)

var quiet = WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

func loadExample(t *testing.T, opts ...Option) *App {
	t.Helper()
	cfg, err := config.Load("testdata/example")
	require.NoError(t, err)

	app, err := New(context.Background(), cfg, append([]Option{quiet}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { app.Close(context.Background()) })
	return app
}

func TestNewFromProject(t *testing.T) {
	app := loadExample(t)

	assert.ElementsMatch(t, []string{"/", "/about", "/items", "/items/alpha", "/items/beta"}, app.Table().Paths())
	_, ok := app.Table().Get("/drafts")
	assert.False(t, ok, "excluded directories are not routed")
	assert.Equal(t, "example", app.Config().Name)
}

func TestRender(t *testing.T) {
	app := loadExample(t)

	f, found := app.Render("/items/beta")
	require.True(t, found)
	assert.Equal(t, "/items/beta", f.Path)
	assert.Equal(t, "Item beta", f.Title)

	text := f.Plain()
	assert.Contains(t, text, "example shell", "root layout wraps every page")
	assert.Contains(t, text, "BETA")
	assert.Contains(t, text, "The second item.")

	f, found = app.Render("/")
	require.True(t, found)
	assert.Equal(t, "Example shell", f.Title)
	assert.Contains(t, view.Targets(f.Body), "/about")

	f, found = app.Render("/items")
	require.True(t, found)
	assert.Equal(t, "example", f.Title, "pages without metadata get the app name")
}

func TestRenderEveryRoute(t *testing.T) {
	app := loadExample(t)

	for _, path := range app.Table().Paths() {
		f, found := app.Render(path)
		assert.True(t, found, path)
		assert.Equal(t, path, f.Path)
		assert.NotContains(t, f.Plain(), "Lost", path)
	}
}

func TestRenderUnknownPath(t *testing.T) {
	app := loadExample(t)

	f, found := app.Render("/items/gamma")
	assert.False(t, found)
	assert.Equal(t, "/items/gamma", f.Path)
	assert.Contains(t, f.Plain(), "Lost")
	assert.Contains(t, f.Plain(), "page not found: /items/gamma")
}

func TestMetrics(t *testing.T) {
	app := loadExample(t)
	require.NotNil(t, app.Metrics())
	require.NotNil(t, app.Gatherer())

	expected := `
# HELP routeshell_routes Number of navigable routes
# TYPE routeshell_routes gauge
routeshell_routes 5
`
	assert.NoError(t, testutil.GatherAndCompare(app.Gatherer(), strings.NewReader(expected), "routeshell_routes"))

	app.Render("/about")
	n, err := testutil.GatherAndCount(app.Gatherer(), "routeshell_navigations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMetricsDisabled(t *testing.T) {
	cfg := config.New()
	cfg.Metrics.Enabled = false

	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "/page.md", []byte("hello"), 0o644))

	app, err := New(context.Background(), cfg, quiet, WithFilesystem(fs, "/"))
	require.NoError(t, err)
	assert.Nil(t, app.Metrics())
	assert.Nil(t, app.Gatherer())

	f, found := app.Render("/")
	assert.True(t, found)
	assert.Equal(t, "hello", strings.TrimSpace(view.Plain(f.Body)))
}

func TestMetricsExclude(t *testing.T) {
	cfg, err := config.Load("testdata/example")
	require.NoError(t, err)
	cfg.Metrics.Exclude = []string{"/items"}

	app, err := New(context.Background(), cfg, quiet)
	require.NoError(t, err)

	app.Render("/items/alpha")
	app.Render("/items")
	n, err := testutil.GatherAndCount(app.Gatherer(), "routeshell_navigations_total")
	require.NoError(t, err)
	assert.Zero(t, n, "excluded prefixes are not counted")

	app.Render("/about")
	n, err = testutil.GatherAndCount(app.Gatherer(), "routeshell_navigations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestValidationFailureDetail(t *testing.T) {
	fs := memfs.New()
	for _, f := range []string{"/[id]/page.go", "/[id]/[id]/page.go"} {
		require.NoError(t, util.WriteFile(fs, f, nil, 0o644))
	}
	reg := module.NewRegistry()
	reg.Page("/[id]", func(view.Props) []*view.Control { return nil },
		module.StaticParams(func() any { return []string{"x"} }))
	reg.Page("/[id]/[id]", func(view.Props) []*view.Control { return nil },
		module.StaticParams(func() any { return []string{"y"} }))

	_, err := New(context.Background(), config.New(), quiet, WithFilesystem(fs, "/"), WithRegistry(reg))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, "E102"), err.Error())
	assert.Contains(t, err.Error(), "ERROR: param \"id\" appears twice\n  /[id]/[id]")
}

func TestRegistryAndDuplicateRoutes(t *testing.T) {
	fs := memfs.New()
	for _, f := range []string{"/items/[id]/page.go", "/items/new/page.go"} {
		require.NoError(t, util.WriteFile(fs, f, nil, 0o644))
	}
	reg := module.NewRegistry()
	reg.Page("/items/[id]", func(view.Props) []*view.Control { return nil },
		module.StaticParams(func() any { return []string{"new"} }))
	reg.Page("/items/new", func(view.Props) []*view.Control { return nil })

	_, err := New(context.Background(), config.New(), quiet, WithFilesystem(fs, "/"), WithRegistry(reg))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, "E104"), err.Error())
}

func TestTracingAndMiddleware(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	var seen []string
	record := func(name string) router.Middleware {
		return router.MiddlewareFunc(func(nav *router.Navigation, next func() error) error {
			seen = append(seen, name+" "+nav.Path)
			return next()
		})
	}

	app := loadExample(t, WithTracerProvider(tp), WithMiddleware(record("first")), WithMiddleware(record("second")))
	app.Render("/about")

	assert.Equal(t, []string{"first /about", "second /about"}, seen)
	assert.Len(t, sr.Ended(), 1)
}

func TestTracingFromConfig(t *testing.T) {
	cfg, err := config.Load("testdata/example")
	require.NoError(t, err)
	cfg.Tracing.Enabled = true
	cfg.Tracing.Endpoint = "127.0.0.1:4317"
	cfg.Tracing.Insecure = true

	app, err := New(context.Background(), cfg, quiet)
	require.NoError(t, err)
	require.NotNil(t, app.ownTracer)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, app.Close(ctx))
}

func TestServe(t *testing.T) {
	app := loadExample(t)

	ctx, cancel := context.WithCancel(context.Background())
	addrc := make(chan net.Addr, 1)
	errc := make(chan error, 1)
	go func() {
		errc <- app.Serve(ctx, "127.0.0.1:0", func(a net.Addr) { addrc <- a })
	}()

	var addr net.Addr
	select {
	case addr = <-addrc:
	case err := <-errc:
		t.Fatalf("serve: %v", err)
	}

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + addr.String() + "/frame")
	require.NoError(t, err)
	var f render.Frame
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&f))
	resp.Body.Close()
	assert.Equal(t, "/", f.Path)
	assert.Equal(t, "Example shell", f.Title)

	resp, err = client.Get("http://" + addr.String() + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	assert.NoError(t, <-errc)
}
