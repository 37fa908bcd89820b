// Package middleware provides navigation middleware for the router.
//
// This package includes:
//   - OpenTelemetry tracing, one span per navigation
//   - Prometheus metrics for navigations and inspector clients
//   - Structured navigation logging with log/slog
//
// All of them are router.Middleware values:
//
//	r := router.New(table, renderer,
//	    router.WithMiddleware(
//	        middleware.Logger(logger),
//	        middleware.Prometheus(middleware.WithRegistry(reg)),
//	        middleware.OpenTelemetry(),
//	    ),
//	)
//
// # OpenTelemetry Middleware
//
// Each navigation gets a span named after the route it resolved to. The span
// context is stored on the navigation, so middleware further down the chain
// can add attributes:
//
//	if span := middleware.SpanFromNavigation(nav); span.IsRecording() {
//	    span.SetAttributes(attribute.Int("items", n))
//	}
//
// The tracer comes from the global provider unless WithTracerProvider is
// given.
//
// # Prometheus Metrics
//
//   - routeshell_navigations_total: navigations by route and outcome
//   - routeshell_navigation_duration_seconds: render time by outcome
//   - routeshell_navigation_errors_total: failed navigations by error code
//   - routeshell_routes: navigable routes in the table
//   - routeshell_inspector_clients: connected inspector websocket clients
//
// The route label is the template path for expanded routes, so its
// cardinality is bounded by the route tree rather than by generated params.
package middleware
