// Package tracing installs the process-wide OpenTelemetry tracer provider.
// When disabled the global no-op provider stays in place.
package tracing

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultServiceName = "modelgate"
	tracesPath         = "/v1/traces"
)

// Config selects the OTLP/HTTP collector spans are exported to.
type Config struct {
	Enabled bool
	// Endpoint is the collector base URL, e.g. http://localhost:4318. Empty
	// defers to the OTEL_EXPORTER_OTLP_* environment variables.
	Endpoint    string
	ServiceName string
	// SampleRatio is the fraction of root spans kept; zero keeps all.
	SampleRatio float64
}

// ShutdownFunc flushes pending spans and stops the exporter.
type ShutdownFunc func(context.Context) error

// Setup builds the tracer provider described by cfg and registers it globally.
func Setup(ctx context.Context, cfg Config, log zerolog.Logger) (trace.TracerProvider, ShutdownFunc, error) {
	if !cfg.Enabled {
		return otel.GetTracerProvider(), func(context.Context) error { return nil }, nil
	}
	var opts []otlptracehttp.Option
	if cfg.Endpoint != "" {
		endpoint, err := tracesURL(cfg.Endpoint)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, otlptracehttp.WithEndpointURL(endpoint))
	}
	exp, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("otlp exporter: %w", err)
	}

	name := cfg.ServiceName
	if name == "" {
		name = DefaultServiceName
	}
	sampler := sdktrace.AlwaysSample()
	if cfg.SampleRatio > 0 && cfg.SampleRatio < 1 {
		sampler = sdktrace.TraceIDRatioBased(cfg.SampleRatio)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", name))),
		sdktrace.WithSampler(sdktrace.ParentBased(sampler)),
	)
	otel.SetTracerProvider(tp)
	otel.SetErrorHandler(otel.ErrorHandlerFunc(func(err error) {
		log.Warn().Err(err).Msg("tracing export failed")
	}))
	log.Info().Str("endpoint", cfg.Endpoint).Str("service", name).Msg("tracing enabled")
	return tp, tp.Shutdown, nil
}

// tracesURL appends the OTLP traces path when the endpoint has none.
func tracesURL(endpoint string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid tracing endpoint %q", endpoint)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = tracesPath
	}
	return u.String(), nil
}
