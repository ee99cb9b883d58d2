// Package tracing wires OpenTelemetry for the AgroVida binaries.
// Spans go to an OTLP collector over gRPC; with tracing disabled a no-op
// provider is installed and log correlation falls back to GetStartingTraceID.
package tracing

import (
	"context"
	"net"
	"time"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/agrovida/meta"
	"github.com/spf13/cast"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.23.1"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	instrumentationName = "github.com/rise-and-shine/agrovida"
	shutdownTimeout     = 5 * time.Second
)

// ShutdownFunc flushes pending spans and stops the provider.
type ShutdownFunc func() error

// InitGlobalTracer installs the global tracer provider and propagator.
// The returned ShutdownFunc is never nil when err is nil.
func InitGlobalTracer(cfg Config) (ShutdownFunc, error) {
	if cfg.Disable {
		otel.SetTracerProvider(noop.NewTracerProvider())
		return func() error { return nil }, nil
	}

	exporter, err := newExporter(cfg)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRate))),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(newResource(cfg.Tags)),
	)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	otel.SetTracerProvider(tp)

	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := tp.ForceFlush(ctx); err != nil {
			return errx.Wrap(err)
		}
		return errx.Wrap(tp.Shutdown(ctx))
	}, nil
}

// Tracer returns the service tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName, trace.WithInstrumentationVersion(meta.CurrentService().Version))
}

func newExporter(cfg Config) (*otlptrace.Exporter, error) {
	client := otlptracegrpc.NewClient(
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithEndpoint(net.JoinHostPort(cfg.ExporterHost, cast.ToString(cfg.ExporterPort))),
		otlptracegrpc.WithReconnectionPeriod(reconnectionPeriod),
	)

	exporter, err := otlptrace.New(context.Background(), client)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"exporter_host": cfg.ExporterHost}))
	}
	return exporter, nil
}

func newResource(tags map[string]string) *resource.Resource {
	attrs := make([]attribute.KeyValue, 0, len(tags)+2)
	for k, v := range tags {
		attrs = append(attrs, attribute.String(k, v))
	}
	svc := meta.CurrentService()
	attrs = append(attrs,
		semconv.ServiceName(svc.Name),
		semconv.ServiceVersion(svc.Version),
	)
	return resource.NewWithAttributes(semconv.SchemaURL, attrs...)
}
