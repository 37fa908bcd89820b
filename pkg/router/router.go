package router

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vango-dev/routeshell/internal/errors"
	"github.com/vango-dev/routeshell/pkg/routepath"
	"github.com/vango-dev/routeshell/pkg/view"
)

// Router resolves paths against an expanded table and mounts the composed
// result on a renderer. It is not safe for concurrent use: every call must
// come from the surface's UI thread.
type Router struct {
	table      *Table
	composer   *Composer
	renderer   Renderer
	middleware []Middleware
	logger     *slog.Logger

	current string
	history History
	state   State
	queue   []request
}

type request struct {
	path string
	opts NavigateOptions
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) { r.logger = l }
}

// WithMiddleware appends navigation middleware.
func WithMiddleware(mw ...Middleware) Option {
	return func(r *Router) { r.middleware = append(r.middleware, mw...) }
}

// New creates a router over an expanded table. No navigation happens until
// Navigate is called.
func New(table *Table, renderer Renderer, opts ...Option) *Router {
	r := &Router{
		table:    table,
		renderer: renderer,
		current:  "/",
		logger:   slog.Default().With("component", "router"),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.composer = NewComposer(table, r.logger)
	return r
}

// Use appends navigation middleware.
func (r *Router) Use(mw ...Middleware) {
	r.middleware = append(r.middleware, mw...)
}

// Table returns the route table.
func (r *Router) Table() *Table { return r.table }

// Composer returns the layout composer.
func (r *Router) Composer() *Composer { return r.composer }

// GetRoute returns the navigable node at path. No pattern matching is done.
func (r *Router) GetRoute(path string) (*RouteNode, bool) {
	return r.table.Get(path)
}

// Lookup is GetRoute returning nil when path is not navigable.
func (r *Router) Lookup(path string) *RouteNode {
	n, _ := r.table.Get(path)
	return n
}

// Path returns the current path. It is updated by every navigation attempt,
// including ones that end on the error page.
func (r *Router) Path() string { return r.current }

// Routes lists navigable paths in table order.
func (r *Router) Routes() []string { return r.table.Paths() }

// State reports whether a navigation is in progress.
func (r *Router) State() State { return r.state }

// History returns the back/forward stack.
func (r *Router) History() *History { return &r.history }

// Navigate renders path. It never panics and never reports failure to the
// caller: unresolvable paths and failing pages end on the error page. A call
// made while another navigation is rendering runs after it completes.
func (r *Router) Navigate(path string) {
	r.NavigateWith(path)
}

// NavigateWith is Navigate with options.
func (r *Router) NavigateWith(path string, opts ...NavigateOption) {
	var o NavigateOptions
	for _, opt := range opts {
		opt(&o)
	}
	r.enqueue(request{path: path, opts: o})
}

// Back navigates to the previous history entry. It reports false when there
// is none.
func (r *Router) Back() bool {
	p, ok := r.history.Back()
	if !ok {
		return false
	}
	r.enqueue(request{path: p, opts: NavigateOptions{fromHistory: true}})
	return true
}

// Forward navigates to the next history entry.
func (r *Router) Forward() bool {
	p, ok := r.history.Forward()
	if !ok {
		return false
	}
	r.enqueue(request{path: p, opts: NavigateOptions{fromHistory: true}})
	return true
}

// Reload renders the current path again without touching history.
func (r *Router) Reload() {
	r.enqueue(request{path: r.current, opts: NavigateOptions{fromHistory: true}})
}

func (r *Router) enqueue(req request) {
	r.queue = append(r.queue, req)
	if r.state == Navigating {
		return
	}
	for len(r.queue) > 0 {
		next := r.queue[0]
		r.queue = r.queue[1:]
		r.run(next)
	}
}

func (r *Router) run(req request) {
	r.state = Navigating
	defer func() { r.state = Idle }()

	nav := &Navigation{
		ID:        uuid.New(),
		Requested: req.path,
		Started:   time.Now(),
	}

	// Table keys are matched as given first: generated segments may hold
	// characters that canonicalization would decode or split off.
	var (
		query string
		cerr  error
	)
	nav.Path = strings.TrimSpace(req.path)
	if _, ok := r.table.Get(nav.Path); !ok {
		var res routepath.Result
		if res, cerr = CanonicalizePath(req.path); cerr == nil {
			nav.Path = res.Path
			query = res.Query
		}
	}

	r.current = nav.Path
	switch {
	case req.opts.fromHistory:
	case req.opts.Replace:
		r.history.Replace(nav.Path)
	default:
		r.history.Push(nav.Path)
	}

	if cerr == nil {
		if node, ok := r.table.Get(nav.Path); ok {
			nav.Route = node
			nav.Params = mergeParams(query, req.opts.Params, node.Params())
		}
	}

	handler := func() error {
		r.render(nav, cerr)
		return nav.Err
	}

	defer func() {
		if p := recover(); p != nil {
			nav.Outcome = OutcomeFailed
			nav.Err = errors.New("E108").WithDetail(nav.Path).Wrap(fmt.Errorf("panic: %v", p))
			r.logger.Error("navigation panicked", "nav_id", nav.ID, "path", nav.Path, "panic", p)
			r.renderer.Clear()
			r.renderer.MountChrome(r)
			r.renderer.Mount(DefaultError(view.Props{Params: map[string]string{"error": nav.Err.Error()}}))
		}
	}()

	if err := ComposeMiddleware(nav, r.middleware, handler); err != nil {
		r.logger.Debug("navigation finished with error", "nav_id", nav.ID, "path", nav.Path, "outcome", nav.Outcome, "error", err)
	}
}

func (r *Router) render(nav *Navigation, cerr error) {
	r.renderer.Clear()
	r.renderer.MountChrome(r)

	props := view.Props{Display: r.renderer.Display(), Router: r}

	if nav.Route == nil {
		nav.Outcome = OutcomeNotFound
		msg := MsgPageNotFound + ": " + nav.Path
		if cerr != nil {
			nav.Err = errors.New("E102").WithDetail(nav.Requested).Wrap(cerr)
			msg = "invalid route path " + fmt.Sprintf("%q", nav.Requested) + ": " + cerr.Error()
		} else {
			nav.Err = errors.New("E100").WithDetail(nav.Path)
		}
		near, _ := r.table.Nearest(nav.Path)
		r.renderer.Mount(r.composer.Error(near, props, msg))
		return
	}

	props.Params = nav.Params
	controls, err := r.composer.Build(nav.Route, props)
	if err != nil {
		nav.Outcome = OutcomeFailed
		nav.Err = err
	} else {
		nav.Outcome = OutcomeRendered
	}
	r.renderer.Mount(controls)
	r.applyMetadata(nav.Route, props)
}

// applyMetadata sets the display title from the page's GenerateMetadata.
func (r *Router) applyMetadata(node *RouteNode, props view.Props) {
	d := r.renderer.Display()
	if d == nil {
		return
	}
	meta, err := metadata(node, props)
	if err != nil {
		r.logger.Warn("metadata generator failed", "route", node.Path, "error", err)
		return
	}
	if meta.Title != "" {
		d.SetTitle(meta.Title)
	}
}

func metadata(node *RouteNode, props view.Props) (meta view.Metadata, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return node.PageUnit().Metadata(props)
}

// mergeParams layers query values, option params and route params, later
// sources winning.
func mergeParams(query string, extra, route map[string]string) map[string]string {
	out := make(map[string]string)
	if query != "" {
		if values, err := url.ParseQuery(query); err == nil {
			for k, v := range values {
				if len(v) > 0 {
					out[k] = v[0]
				}
			}
		}
	}
	for k, v := range extra {
		out[k] = v
	}
	for k, v := range route {
		out[k] = v
	}
	return out
}
