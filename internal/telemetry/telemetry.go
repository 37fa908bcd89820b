// Package telemetry installs the OpenTelemetry tracer provider that the
// navigation tracing middleware reports to.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/vango-dev/routeshell/internal/config"
	"github.com/vango-dev/routeshell/internal/errors"
)

// Service identifies the process in exported spans.
type Service struct {
	Name    string
	Version string
}

// NewTracerProvider returns a provider exporting spans over OTLP/gRPC to
// cfg.Endpoint. The caller owns it and must Shutdown it to flush pending
// spans. The exporter connects lazily, so an unreachable collector does not
// fail startup.
func NewTracerProvider(ctx context.Context, cfg config.TracingConfig, svc Service) (*sdktrace.TracerProvider, error) {
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, errors.New("E121").
			WithDetail("tracing exporter for " + cfg.Endpoint).
			Wrap(err)
	}

	res, err := newResource(ctx, svc)
	if err != nil {
		return nil, errors.New("E121").WithDetail("tracing resource").Wrap(err)
	}
	return newProvider(exporter, res, cfg.SampleRatio), nil
}

func newResource(ctx context.Context, svc Service) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{semconv.ServiceName(svc.Name)}
	if svc.Version != "" {
		attrs = append(attrs, semconv.ServiceVersion(svc.Version))
	}
	return resource.New(ctx, resource.WithAttributes(attrs...))
}

func newProvider(exporter sdktrace.SpanExporter, res *resource.Resource, ratio float64) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	)
}
