// Package telemetry sets up OpenTelemetry tracing for the proxy. Each
// forwarded command gets one span, started by the Upstream Writer when it
// assigns the proxy-id and ended by the Upstream Reader when the matching
// reply is removed from the correspondence table, correlating client-id to
// proxy-id the same way the correspondence table does.
package telemetry

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// Shutdown flushes and stops the tracer provider.
type Shutdown func(ctx context.Context) error

// Setup configures the global tracer provider. When enabled is false it
// returns a no-op tracer and leaves the global provider untouched.
func Setup(w io.Writer, enabled bool) (trace.Tracer, Shutdown, error) {
	if !enabled {
		return trace.NewNoopTracerProvider().Tracer("jdwp-proxy"), func(context.Context) error { return nil }, nil
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, nil, fmt.Errorf("telemetry: create exporter: %w", err)
	}

	res := resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName("jdwp-proxy"))
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return tp.Tracer("jdwp-proxy"), tp.Shutdown, nil
}
