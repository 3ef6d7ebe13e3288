// Package telemetry exports layout operations as OpenTelemetry spans.
package telemetry

import (
	"context"
	"strings"

	"flrdash/internal/layout"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const tracerName = "flrdash/layout"

// Tracer records layout changes. A nil *Tracer is valid and records nothing.
type Tracer struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
}

// NewOTLP creates a Tracer exporting over OTLP/HTTP. It returns nil when
// endpoint is empty (tracing disabled).
func NewOTLP(ctx context.Context, endpoint, serviceName string) (*Tracer, error) {
	if endpoint == "" {
		return nil, nil
	}
	var opt otlptracehttp.Option
	if strings.Contains(endpoint, "://") {
		opt = otlptracehttp.WithEndpointURL(endpoint)
	} else {
		opt = otlptracehttp.WithEndpoint(endpoint)
	}
	exporter, err := otlptracehttp.New(ctx, opt, otlptracehttp.WithInsecure())
	if err != nil {
		return nil, err
	}
	return newTracer(sdktrace.WithBatcher(exporter), serviceName), nil
}

// NewWithExporter creates a Tracer that hands spans to exp synchronously.
func NewWithExporter(exp sdktrace.SpanExporter, serviceName string) *Tracer {
	return newTracer(sdktrace.WithSyncer(exp), serviceName)
}

func newTracer(export sdktrace.TracerProviderOption, serviceName string) *Tracer {
	if serviceName == "" {
		serviceName = "flrdash"
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)
	provider := sdktrace.NewTracerProvider(export, sdktrace.WithResource(res))
	return &Tracer{provider: provider, tracer: provider.Tracer(tracerName)}
}

// RecordChange emits one span for an applied layout mutation.
func (t *Tracer) RecordChange(ctx context.Context, c layout.Change) {
	if t == nil {
		return
	}
	_, span := t.tracer.Start(ctx, "layout."+string(c.Op))
	defer span.End()
	attrs := []attribute.KeyValue{
		attribute.String("flrdash.layout.op", string(c.Op)),
		attribute.Bool("flrdash.panel.visible", c.Visible),
	}
	if c.PanelID != "" {
		attrs = append(attrs, attribute.String("flrdash.panel.id", c.PanelID))
	}
	if c.Zone != "" {
		attrs = append(attrs, attribute.String("flrdash.zone", string(c.Zone)))
	}
	if c.Width != 0 {
		attrs = append(attrs, attribute.Int("flrdash.sidebar.width", c.Width))
	}
	span.SetAttributes(attrs...)
}

// RecordFailure emits an error span for an operation that degraded to a no-op.
func (t *Tracer) RecordFailure(ctx context.Context, op layout.Op, panelID string, err error) {
	if t == nil || err == nil {
		return
	}
	_, span := t.tracer.Start(ctx, "layout."+string(op))
	defer span.End()
	span.SetAttributes(
		attribute.String("flrdash.layout.op", string(op)),
		attribute.String("flrdash.panel.id", panelID),
	)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// Shutdown flushes and closes the exporter.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
