package middleware

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/routeshell/pkg/router"
)

const defaultTracerName = "routeshell"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "routeshell").
	TracerName string

	// Provider supplies the tracer. Defaults to the global provider.
	Provider trace.TracerProvider

	// IncludeParams adds the props params as span attributes. They may carry
	// user data, so this is off by default.
	IncludeParams bool

	// Filter determines which navigations to trace. If nil, all are traced.
	Filter func(nav *router.Navigation) bool

	// AttributeExtractor adds custom attributes to each span.
	AttributeExtractor func(nav *router.Navigation) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.Provider = tp
	}
}

// WithIncludeParams enables recording props params on spans.
func WithIncludeParams(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeParams = include
	}
}

// WithNavigationFilter sets a filter function for navigations.
func WithNavigationFilter(filter func(nav *router.Navigation) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(nav *router.Navigation) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// OpenTelemetry creates middleware that traces every navigation. The span
// is stored on the navigation's context before the rest of the chain runs,
// and ends with the navigation's outcome. Failed renders and middleware
// errors mark the span as an error; unmatched paths do not.
func OpenTelemetry(opts ...OTelOption) router.Middleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	provider := config.Provider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	tracer := provider.Tracer(config.TracerName)

	return router.MiddlewareFunc(func(nav *router.Navigation, next func() error) error {
		if config.Filter != nil && !config.Filter(nav) {
			return next()
		}

		attrs := []attribute.KeyValue{
			attribute.String("routeshell.nav_id", nav.ID.String()),
			attribute.String("routeshell.path", nav.Path),
			attribute.String("routeshell.requested", nav.Requested),
			attribute.String("routeshell.route", RouteLabel(nav)),
		}
		if config.IncludeParams {
			for k, v := range nav.Params {
				attrs = append(attrs, attribute.String("routeshell.param."+k, v))
			}
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(nav)...)
		}

		ctx, span := tracer.Start(nav.Context(), "navigate "+RouteLabel(nav),
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
		)
		defer span.End()
		nav.SetContext(ctx)

		err := next()

		span.SetAttributes(attribute.String("routeshell.outcome", string(nav.Outcome)))
		failure := err
		if failure == nil && nav.Outcome == router.OutcomeFailed {
			failure = nav.Err
		}
		if nav.Outcome == router.OutcomeNotFound {
			failure = nil
		}
		if failure != nil {
			span.RecordError(failure)
			span.SetStatus(codes.Error, failure.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		return err
	})
}

// SpanFromNavigation returns the span started for nav, or a non-recording
// span when the navigation is not traced.
func SpanFromNavigation(nav *router.Navigation) trace.Span {
	return trace.SpanFromContext(nav.Context())
}
