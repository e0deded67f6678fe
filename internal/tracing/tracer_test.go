package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDisabledProviderIsNoop(t *testing.T) {
	provider, err := NewProvider(DefaultConfig())
	require.NoError(t, err)

	_, span := provider.Tracer().Start(context.Background(), "view.render")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestStdoutProviderWritesSpans(t *testing.T) {
	var buf bytes.Buffer
	provider, err := NewProvider(Config{Enabled: true, Exporter: "stdout", Writer: &buf})
	require.NoError(t, err)

	_, span := provider.Tracer().Start(context.Background(), "view.render")
	span.End()
	require.NoError(t, provider.Shutdown(context.Background()))
	assert.Contains(t, buf.String(), "view.render")
}

func TestNoneExporterWithRecorder(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider, err := NewProvider(Config{Enabled: true, Exporter: "none"}, sdktrace.WithSpanProcessor(recorder))
	require.NoError(t, err)

	_, span := provider.Tracer().Start(context.Background(), "view.resolve")
	span.End()
	require.Len(t, recorder.Ended(), 1)
	assert.Equal(t, "view.resolve", recorder.Ended()[0].Name())
}

func TestUnknownExporter(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "otlp"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
