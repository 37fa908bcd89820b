// Package routeshell loads a directory of route files into a navigable route
// table and hosts it on a terminal or headless surface.
//
// Create an App from a configuration and pick a surface:
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	app, err := routeshell.New(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer app.Close(ctx)
//
//	err = app.RunTerminal(ctx)
package routeshell

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/routeshell/internal/config"
	"github.com/vango-dev/routeshell/internal/errors"
	"github.com/vango-dev/routeshell/internal/telemetry"
	"github.com/vango-dev/routeshell/pkg/inspect"
	"github.com/vango-dev/routeshell/pkg/middleware"
	"github.com/vango-dev/routeshell/pkg/module"
	"github.com/vango-dev/routeshell/pkg/render"
	"github.com/vango-dev/routeshell/pkg/routepath"
	"github.com/vango-dev/routeshell/pkg/router"
	"github.com/vango-dev/routeshell/pkg/tui"
)

// Version is reported in traces and by the CLI. It is set at build time.
var Version = "dev"

// App is a loaded route table plus the services every surface shares:
// logging, metrics and tracing middleware.
type App struct {
	config   *config.Config
	fs       billy.Filesystem
	root     string
	registry *module.Registry
	table    *router.Table
	logger   *slog.Logger

	prom       *prometheus.Registry
	metrics    *middleware.Metrics
	tracer     trace.TracerProvider
	ownTracer  *sdktrace.TracerProvider
	middleware []router.Middleware
}

// Option configures an App.
type Option func(*App)

// WithFilesystem reads routes from fs starting at root instead of the
// configured routes directory on disk.
func WithFilesystem(fs billy.Filesystem, root string) Option {
	return func(a *App) {
		a.fs = fs
		a.root = root
	}
}

// WithRegistry serves compiled units from reg. Files not registered there
// are interpreted.
func WithRegistry(reg *module.Registry) Option {
	return func(a *App) { a.registry = reg }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithMiddleware appends navigation middleware after the built-in chain.
func WithMiddleware(mw ...router.Middleware) Option {
	return func(a *App) { a.middleware = append(a.middleware, mw...) }
}

// WithPrometheusRegistry registers metrics with reg instead of a private
// registry.
func WithPrometheusRegistry(reg *prometheus.Registry) Option {
	return func(a *App) { a.prom = reg }
}

// WithTracerProvider traces navigations with tp. Without it a provider is
// created from the tracing configuration when tracing is enabled.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(a *App) { a.tracer = tp }
}

// New builds and expands the route table. Load, generator and duplicate
// route errors are returned as they occur; none of them is recoverable.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.New()
	}
	a := &App{
		config: cfg,
		root:   "/",
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.fs == nil {
		a.fs = osfs.New(cfg.RoutesPath())
	}

	table, err := a.load()
	if err != nil {
		return nil, err
	}
	a.table = table

	if cfg.Metrics.Enabled {
		if a.prom == nil {
			a.prom = prometheus.NewRegistry()
			a.prom.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
		}
		a.metrics = middleware.NewMetrics(
			middleware.WithNamespace(cfg.Metrics.Namespace),
			middleware.WithRegistry(a.prom),
		)
		a.metrics.SetRoutes(table.Len())
	}

	if cfg.Tracing.Enabled && a.tracer == nil {
		tp, err := telemetry.NewTracerProvider(ctx, cfg.Tracing, telemetry.Service{
			Name:    serviceName(cfg),
			Version: Version,
		})
		if err != nil {
			return nil, err
		}
		a.ownTracer = tp
		a.tracer = tp
	}

	a.logger.Info("routes loaded", "routes", table.Len(), "dir", cfg.RoutesPath())
	return a, nil
}

func (a *App) load() (*router.Table, error) {
	var interp []module.InterpreterOption
	if len(a.config.Scripts.AllowedImports) > 0 {
		interp = append(interp, module.WithAllowedImports(a.config.Scripts.AllowedImports...))
	}
	interp = append(interp, module.WithInterpreterLogger(a.logger.With("component", "module")))
	resolver := module.NewResolver(a.registry, interp...)

	bopts := []router.BuilderOption{
		router.WithLoader(resolver),
		router.WithBuilderLogger(a.logger.With("component", "router")),
	}
	if len(a.config.Routes.Exclude) > 0 {
		bopts = append(bopts, router.WithExclude(a.config.Routes.Exclude...))
	}

	table, err := router.NewBuilder(a.fs, bopts...).Build(a.root)
	if err != nil {
		return nil, err
	}
	table, err = router.NewExpander(router.WithExpanderLogger(a.logger.With("component", "router"))).Expand(table)
	if err != nil {
		return nil, err
	}
	if err := router.NewValidator(table).Validate(); err != nil {
		return nil, errors.New("E102").
			WithDetail(validationDetail(err)).
			Wrap(err)
	}
	return table, nil
}

func validationDetail(err error) string {
	var multi *router.MultiValidationError
	if !stderrors.As(err, &multi) {
		return "route table failed validation"
	}
	var sb strings.Builder
	sb.WriteString("route table failed validation\n")
	for _, ve := range multi.Errors {
		sb.WriteString(router.FormatValidationError(ve))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func serviceName(cfg *config.Config) string {
	if cfg.Name != "" {
		return cfg.Name
	}
	return "routeshell"
}

// Config returns the configuration the app was built from.
func (a *App) Config() *config.Config { return a.config }

// Table returns the expanded route table.
func (a *App) Table() *router.Table { return a.table }

// Metrics returns the navigation metrics, or nil when metrics are disabled.
func (a *App) Metrics() *middleware.Metrics { return a.metrics }

// Gatherer returns the Prometheus registry, or nil when metrics are disabled.
func (a *App) Gatherer() prometheus.Gatherer {
	if a.prom == nil {
		return nil
	}
	return a.prom
}

// NewRouter returns a router over the app's table mounting onto r. Every
// router gets the logging middleware, then metrics and tracing when enabled,
// then the app's own middleware.
func (a *App) NewRouter(r router.Renderer) *router.Router {
	chain := []router.Middleware{middleware.Logger(a.logger)}
	if a.metrics != nil {
		chain = append(chain, router.Skip(a.excluded, a.metrics.Middleware()))
	}
	if a.tracer != nil {
		chain = append(chain, middleware.OpenTelemetry(
			middleware.WithTracerProvider(a.tracer),
			middleware.WithIncludeParams(a.config.Tracing.IncludeParams),
		))
	}
	if len(a.middleware) > 0 {
		chain = append(chain, router.Chain(a.middleware...))
	}

	return router.New(a.table, r,
		router.WithLogger(a.logger.With("component", "router")),
		router.WithMiddleware(chain...),
	)
}

// excluded reports whether nav falls under a route prefix that metrics
// ignore.
func (a *App) excluded(nav *router.Navigation) bool {
	for _, prefix := range a.config.Metrics.Exclude {
		if routepath.HasPrefix(nav.Path, prefix) {
			return true
		}
	}
	return false
}

func (a *App) newRenderer(s render.Surface) *render.Renderer {
	return render.NewRenderer(s,
		render.WithLogger(a.logger.With("component", "render")),
		render.WithTitle(a.config.Name),
	)
}

// Render navigates a fresh headless router to path and returns the frame it
// presents and whether path resolved to a route.
func (a *App) Render(path string) (render.Frame, bool) {
	surface := render.NewMemorySurface(a.config.Surface.Width, a.config.Surface.Height)
	rt := a.NewRouter(a.newRenderer(surface))
	rt.Navigate(path)
	return surface.Frame(), rt.Lookup(rt.Path()) != nil
}

// Serve hosts a headless router behind the HTTP inspector on addr until ctx
// is canceled. ready, if non-nil, receives the bound address.
func (a *App) Serve(ctx context.Context, addr string, ready func(net.Addr)) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	surface := render.NewMemorySurface(a.config.Surface.Width, a.config.Surface.Height)
	rt := a.NewRouter(a.newRenderer(surface))

	loop := render.NewLoop(render.WithLoopLogger(a.logger.With("component", "render")))
	loop.Start(ctx)
	defer loop.Stop()

	if err := loop.Do(ctx, func() { rt.Navigate(a.config.Routes.Initial) }); err != nil {
		return err
	}

	opts := []inspect.Option{
		inspect.WithLogger(a.logger.With("component", "inspect")),
		inspect.WithStylesheets(a.config.Inspector.Stylesheets...),
	}
	if a.metrics != nil {
		opts = append(opts, inspect.WithMetrics(a.metrics, a.prom))
	}
	return inspect.New(loop, rt, surface, opts...).ListenAndServe(ctx, addr, ready)
}

// RunTerminal runs the full-screen terminal shell until the user quits or
// ctx is canceled.
func (a *App) RunTerminal(ctx context.Context, opts ...tui.ModelOption) error {
	surface := tui.NewSurface(a.config.Surface.Width, a.config.Surface.Height)
	rt := a.NewRouter(a.newRenderer(surface))

	opts = append([]tui.ModelOption{
		tui.WithInitialPath(a.config.Routes.Initial),
		tui.WithLogger(a.logger.With("component", "tui")),
	}, opts...)
	return tui.Run(ctx, tui.New(rt, surface, opts...))
}

// Close flushes and stops a tracer provider the app created.
func (a *App) Close(ctx context.Context) error {
	if a.ownTracer == nil {
		return nil
	}
	return a.ownTracer.Shutdown(ctx)
}
