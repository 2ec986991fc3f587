// Package tracing bootstraps OpenTelemetry directly against the SDK
// (go.opentelemetry.io/otel/sdk/trace + the OTLP/HTTP exporter), the way
// search-service's cmd/main.go calls tracing.InitTracer — except that
// call goes through github.com/Tesseract-Nexus/go-shared/tracing, a
// private module this tree cannot fetch. internal/services' actual
// span-per-call usage (otel.Tracer(name), tracer.Start, span.End) is kept
// unchanged; only the provider bootstrap is replaced with a direct SDK
// setup.
package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Config mirrors the shape of the teacher's tracing.Config (service name
// plus an endpoint and a sample ratio), trimmed to what a direct OTLP/HTTP
// exporter needs.
type Config struct {
	ServiceName  string
	OTLPEndpoint string // host:port, no scheme; empty disables the exporter
	Insecure     bool
	SampleRatio  float64
}

// DefaultConfig matches the teacher's DefaultConfig: always-on sampling,
// no endpoint configured (tracing degrades to a no-op provider).
func DefaultConfig(serviceName string) Config {
	return Config{ServiceName: serviceName, SampleRatio: 1.0}
}

// ProductionConfig matches the teacher's ProductionConfig: a lower
// sample ratio to bound trace volume in production.
func ProductionConfig(serviceName string) Config {
	return Config{ServiceName: serviceName, SampleRatio: 0.1}
}

// Shutdown flushes and stops the tracer provider; callers defer it from
// main, mirroring search-service's tracerProvider.Shutdown(ctx) pattern.
type Shutdown func(ctx context.Context) error

// InitTracer builds and installs a global TracerProvider. With no
// OTLPEndpoint configured it still installs a provider (sampling
// everything into memory and discarding on shutdown) so
// otel.Tracer(...).Start calls throughout the codebase never nil-panic.
func InitTracer(cfg Config) (Shutdown, error) {
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", cfg.ServiceName),
		),
	)
	if err != nil {
		res = resource.Default()
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	}

	if cfg.OTLPEndpoint != "" {
		exporterOpts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.OTLPEndpoint)}
		if cfg.Insecure {
			exporterOpts = append(exporterOpts, otlptracehttp.WithInsecure())
		}
		exporter, err := otlptracehttp.New(context.Background(), exporterOpts...)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return func(ctx context.Context) error {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(shutdownCtx)
	}, nil
}
