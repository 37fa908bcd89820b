package middleware

import (
	stderrors "errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/routeshell/internal/errors"
	"github.com/vango-dev/routeshell/pkg/router"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "routeshell").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for navigation duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "routeshell",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the shell's Prometheus collectors. Create one per registry.
type Metrics struct {
	navigations      *prometheus.CounterVec
	duration         *prometheus.HistogramVec
	errors           *prometheus.CounterVec
	routes           prometheus.Gauge
	inspectorClients prometheus.Gauge
}

// NewMetrics registers the collectors with the configured registry. It
// panics if they are already registered there, like promauto.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of navigations by route and outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "outcome"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_duration_seconds",
			Help:        "Time to resolve, compose and mount a route",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"outcome"}),

		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_errors_total",
			Help:        "Navigations that did not render their route, by error code",
			ConstLabels: config.ConstLabels,
		}, []string{"code"}),

		routes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "routes",
			Help:        "Number of navigable routes",
			ConstLabels: config.ConstLabels,
		}),

		inspectorClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "inspector_clients",
			Help:        "Connected inspector websocket clients",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Prometheus creates a Metrics and returns its middleware.
func Prometheus(opts ...MetricsOption) router.Middleware {
	return NewMetrics(opts...).Middleware()
}

// Middleware records every navigation passing through it.
func (m *Metrics) Middleware() router.Middleware {
	return router.MiddlewareFunc(func(nav *router.Navigation, next func() error) error {
		start := time.Now()
		err := next()

		outcome := string(nav.Outcome)
		if outcome == "" {
			outcome = "blocked"
		}
		m.duration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
		m.navigations.WithLabelValues(RouteLabel(nav), outcome).Inc()

		cause := err
		if cause == nil {
			cause = nav.Err
		}
		if cause != nil {
			m.errors.WithLabelValues(errorCode(cause)).Inc()
		}
		return err
	})
}

// SetRoutes records the size of the route table.
func (m *Metrics) SetRoutes(n int) {
	m.routes.Set(float64(n))
}

// ClientConnected records an inspector client joining.
func (m *Metrics) ClientConnected() {
	m.inspectorClients.Inc()
}

// ClientDisconnected records an inspector client leaving.
func (m *Metrics) ClientDisconnected() {
	m.inspectorClients.Dec()
}

// RouteLabel names the route a navigation resolved to: the template path for
// expansions, the route path otherwise, and "not_found" when nothing matched.
func RouteLabel(nav *router.Navigation) string {
	switch {
	case nav.Route == nil:
		return "not_found"
	case nav.Route.Template != nil:
		return nav.Route.Template.Path
	default:
		return nav.Route.Path
	}
}

// errorCode keeps error labels low-cardinality.
func errorCode(err error) string {
	var se *errors.ShellError
	if stderrors.As(err, &se) && se.Code != "" {
		return se.Code
	}
	return "unknown"
}
