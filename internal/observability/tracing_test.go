package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{ServiceName: "test", Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestStartSpan_RecordsAttributesAndErrors(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := Tracer
	Tracer = tp.Tracer("test")
	defer func() { Tracer = prev }()

	span, ctx := StartSpan(context.Background(), "feed.AddPost", attribute.Int64("post.id", 7))
	assert.NotNil(t, ctx)
	span.SetError(errors.New("boom"))
	assert.NotEmpty(t, span.TraceID())
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "feed.AddPost", ended[0].Name())
	assert.Contains(t, ended[0].Attributes(), attribute.Int64("post.id", 7))
	assert.Len(t, ended[0].Events(), 1)
}

func TestNewExporter_RejectsUnknown(t *testing.T) {
	_, err := newExporter(context.Background(), TracingConfig{Exporter: "zipkin"})
	assert.Error(t, err)

	exp, err := newExporter(context.Background(), TracingConfig{Exporter: "stdout"})
	require.NoError(t, err)
	assert.NoError(t, exp.Shutdown(context.Background()))
}

func TestNewSampler(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), newSampler(1).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), newSampler(0).Description())
	assert.Contains(t, newSampler(0.25).Description(), "ParentBased")
}
