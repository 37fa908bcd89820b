package middleware

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/routeshell/pkg/router"
)

func TestPrometheusRecordsNavigations(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))
	r := newRouter(t, m.Middleware())

	r.Navigate("/items/a")
	r.Navigate("/items/b")
	r.Navigate("/")
	r.Navigate("/nope")
	r.Navigate("/broken")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.navigations.WithLabelValues("/items/[id]", "rendered")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.navigations.WithLabelValues("/", "rendered")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.navigations.WithLabelValues("not_found", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.navigations.WithLabelValues("/broken", "render_failed")))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.errors.WithLabelValues("E100")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errors.WithLabelValues("E108")))

	assert.Equal(t, 3, testutil.CollectAndCount(m.duration))
}

func TestPrometheusBlockedNavigation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))
	block := router.MiddlewareFunc(func(*router.Navigation, func() error) error { return nil })
	r := newRouter(t, m.Middleware(), block)

	r.Navigate("/")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.navigations.WithLabelValues("/", "blocked")))
}

func TestPrometheusGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("shell"), WithConstLabels(prometheus.Labels{"app": "demo"}))

	m.SetRoutes(12)
	m.ClientConnected()
	m.ClientConnected()
	m.ClientDisconnected()

	expected := `
# HELP shell_inspector_clients Connected inspector websocket clients
# TYPE shell_inspector_clients gauge
shell_inspector_clients{app="demo"} 1
# HELP shell_routes Number of navigable routes
# TYPE shell_routes gauge
shell_routes{app="demo"} 12
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"shell_inspector_clients", "shell_routes"))
}

func TestPrometheusDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	_ = Prometheus(WithRegistry(reg))
	assert.Panics(t, func() { _ = Prometheus(WithRegistry(reg)) })
}

func TestRouteLabel(t *testing.T) {
	tmpl := &router.RouteNode{Path: "/items/[id]"}
	tests := []struct {
		name string
		nav  *router.Navigation
		want string
	}{
		{"unresolved", &router.Navigation{Path: "/x"}, "not_found"},
		{"static", &router.Navigation{Route: &router.RouteNode{Path: "/about"}}, "/about"},
		{"expanded", &router.Navigation{Route: &router.RouteNode{Path: "/items/a", Template: tmpl}}, "/items/[id]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RouteLabel(tt.nav))
		})
	}
}
