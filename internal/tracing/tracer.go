// Package tracing wires OpenTelemetry for layout resolution and
// rendering.  Tracing is off by default, in which case a no-op tracer is
// handed out.
package tracing

import (
	"context"
	"io"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	DefaultServiceName = "layered-views"

	AttrLayout    = "layout.name"
	AttrExtension = "layout.extension"
	AttrPath      = "layout.path"
	AttrSearch    = "layout.search_paths"
)

// Config selects the exporter.
type Config struct {
	Enabled bool

	// Exporter is "stdout" or "none".  "none" keeps spans in-process,
	// which is useful for tests with a custom SpanProcessor.
	Exporter string

	ServiceName string

	// Writer overrides stdout for the stdout exporter.
	Writer io.Writer
}

func DefaultConfig() Config {
	return Config{
		Enabled:     false,
		Exporter:    "stdout",
		ServiceName: DefaultServiceName,
	}
}

// Provider owns the tracer provider and hands out the tracer.
type Provider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

func NewProvider(cfg Config, opts ...sdktrace.TracerProviderOption) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{tracer: noop.NewTracerProvider().Tracer(DefaultServiceName)}, nil
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = DefaultServiceName
	}
	options := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
	}

	switch cfg.Exporter {
	case "stdout", "":
		writer := cfg.Writer
		if writer == nil {
			writer = os.Stdout
		}
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(writer), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create stdout trace exporter").
				WithCause(err)
		}
		options = append(options, sdktrace.WithSyncer(exporter))
	case "none":
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unsupported trace exporter: " + cfg.Exporter)
	}

	provider := sdktrace.NewTracerProvider(append(options, opts...)...)
	return &Provider{
		provider: provider,
		tracer:   provider.Tracer(serviceName),
	}, nil
}

func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// Shutdown flushes pending spans.  It is a no-op when tracing is off.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.provider == nil {
		return nil
	}
	return p.provider.Shutdown(ctx)
}
