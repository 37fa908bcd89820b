package inspect

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/routeshell/internal/errors"
	"github.com/vango-dev/routeshell/pkg/middleware"
	"github.com/vango-dev/routeshell/pkg/render"
	"github.com/vango-dev/routeshell/pkg/router"
)

// Server is the HTTP inspector for one router.
type Server struct {
	loop    *render.Loop
	router  *router.Router
	surface *render.MemorySurface
	hub     *Hub
	logger  *slog.Logger

	metrics     *middleware.Metrics
	gatherer    prometheus.Gatherer
	stylesheets []string

	handler http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithMetrics counts websocket clients in m and serves g on /metrics.
func WithMetrics(m *middleware.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = g
	}
}

// WithStylesheets links stylesheets from /frame.html.
func WithStylesheets(hrefs ...string) Option {
	return func(s *Server) { s.stylesheets = append(s.stylesheets, hrefs...) }
}

// New creates an inspector. rt must only be used from loop, and its renderer
// must present to surface.
func New(loop *render.Loop, rt *router.Router, surface *render.MemorySurface, opts ...Option) *Server {
	s := &Server{
		loop:    loop,
		router:  rt,
		surface: surface,
		logger:  slog.Default().With("component", "inspect"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.hub = NewHub(surface, s.logger)
	if s.metrics != nil {
		s.hub.onConnect = s.metrics.ClientConnected
		s.hub.onDisconnect = s.metrics.ClientDisconnected
	}
	s.handler = s.routes()
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok")) //nolint:errcheck
	})
	r.Get("/routes", s.handleRoutes)
	r.Post("/navigate", s.handleNavigate)
	r.Post("/back", s.handleHistory(func(rt *router.Router) bool { return rt.Back() }))
	r.Post("/forward", s.handleHistory(func(rt *router.Router) bool { return rt.Forward() }))
	r.Get("/frame", s.handleFrame)
	r.Get("/frame.html", s.handleFrameHTML)
	r.Get("/ws", s.hub.HandleWebSocket)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// Handler returns the inspector's HTTP handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub { return s.hub }

// ListenAndServe serves on addr until ctx is canceled, then shuts down. It
// calls ready, if non-nil, with the bound address once listening.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.New("E140").WithDetail("listen " + addr).Wrap(err)
	}
	if ready != nil {
		ready(ln.Addr())
	}
	s.logger.Info("inspector listening", "addr", ln.Addr().String())

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return errors.New("E140").Wrap(err)
	case <-ctx.Done():
	}

	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.New("E140").WithDetail("shutdown").Wrap(err)
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return errors.New("E140").Wrap(err)
	}
	return nil
}

// RouteInfo describes one navigable route.
type RouteInfo struct {
	Path        string            `json:"path"`
	Dir         string            `json:"dir"`
	Parent      string            `json:"parent,omitempty"`
	Template    string            `json:"template,omitempty"`
	Params      map[string]string `json:"params,omitempty"`
	HasLayout   bool              `json:"has_layout,omitempty"`
	HasNotFound bool              `json:"has_not_found,omitempty"`
}

// RoutesResponse is the body of GET /routes.
type RoutesResponse struct {
	Current string      `json:"current"`
	Routes  []RouteInfo `json:"routes"`
}

// NavigateRequest is the body of POST /navigate.
type NavigateRequest struct {
	Path string `json:"path"`

	// Replace overwrites the current history entry instead of pushing one.
	Replace bool `json:"replace,omitempty"`

	// Params are passed to the rendered route alongside its own params.
	Params map[string]string `json:"params,omitempty"`
}

// NavigateResponse is the body returned by navigation endpoints.
type NavigateResponse struct {
	Path  string        `json:"path"`
	Found bool          `json:"found"`
	Moved bool          `json:"moved"`
	Frame *render.Frame `json:"frame"`
}

// Routes lists the router's table. The table is immutable once expanded, so
// it is read without going through the loop.
func Routes(t *router.Table) []RouteInfo {
	nodes := t.Nodes()
	out := make([]RouteInfo, 0, len(nodes))
	for _, n := range nodes {
		info := RouteInfo{
			Path:        n.Path,
			Dir:         n.Dir,
			Params:      n.Params(),
			HasLayout:   n.Layout != nil,
			HasNotFound: n.NotFound != nil,
		}
		if p, ok := n.Parent(); ok {
			info.Parent = p
		}
		if n.Template != nil {
			info.Template = n.Template.Path
		}
		out = append(out, info)
	}
	return out
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	var current string
	if err := s.loop.Do(r.Context(), func() { current = s.router.Path() }); err != nil {
		s.loopError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, RoutesResponse{
		Current: current,
		Routes:  Routes(s.router.Table()),
	})
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req NavigateRequest
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		req.Path = r.FormValue("path")
		if v := r.FormValue("replace"); v != "" {
			replace, err := strconv.ParseBool(v)
			if err != nil {
				http.Error(w, "invalid replace value: "+v, http.StatusBadRequest)
				return
			}
			req.Replace = replace
		}
	}
	if req.Path == "" {
		http.Error(w, "path is required", http.StatusBadRequest)
		return
	}

	var opts []router.NavigateOption
	if req.Replace {
		opts = append(opts, router.WithReplace())
	}
	if len(req.Params) > 0 {
		opts = append(opts, router.WithParams(req.Params))
	}
	s.navigate(w, r, func(rt *router.Router) bool {
		rt.NavigateWith(req.Path, opts...)
		return true
	})
}

func (s *Server) handleHistory(move func(rt *router.Router) bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.navigate(w, r, move)
	}
}

func (s *Server) navigate(w http.ResponseWriter, r *http.Request, move func(rt *router.Router) bool) {
	var resp NavigateResponse
	err := s.loop.Do(r.Context(), func() {
		resp.Moved = move(s.router)
		resp.Path = s.router.Path()
		resp.Found = s.router.Lookup(resp.Path) != nil
	})
	if err != nil {
		s.loopError(w, err)
		return
	}

	f := s.surface.Frame()
	resp.Frame = &f
	status := http.StatusOK
	if !resp.Found {
		status = http.StatusNotFound
	}
	s.writeJSON(w, status, resp)
}

func (s *Server) handleFrame(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.surface.Frame())
}

func (s *Server) handleFrameHTML(w http.ResponseWriter, _ *http.Request) {
	f := s.surface.Frame()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := render.WriteHTML(w, f, render.HTMLOptions{
		StyleSheets: s.stylesheets,
		Script:      clientScript,
	})
	if err != nil {
		s.logger.Warn("frame write failed", "error", err)
	}
}

func (s *Server) loopError(w http.ResponseWriter, err error) {
	status := http.StatusServiceUnavailable
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		status = http.StatusRequestTimeout
	}
	http.Error(w, fmt.Sprintf("ui loop: %v", err), status)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("response encode failed", "error", err)
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}
