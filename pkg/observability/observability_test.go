package observability

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTraceStageRecordsSpans(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	tr, err := NewTracing(TracingConfig{Enabled: true, ServiceName: "envprobe-test"}, WithExporter(exp))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, tr.TraceStage(ctx, "system", func(ctx context.Context) error {
		SetAttribute(ctx, "disks", 3)
		return nil
	}))

	boom := errors.New("arrow missing")
	err = tr.TraceStage(ctx, "stack", func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)

	spans := exp.GetSpans()
	require.Len(t, spans, 2)

	assert.Equal(t, "envprobe.system", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assert.Contains(t, spans[0].Attributes, attribute.Int("disks", 3))

	assert.Equal(t, "envprobe.stack", spans[1].Name)
	assert.Equal(t, codes.Error, spans[1].Status.Code)
	assert.Equal(t, "arrow missing", spans[1].Status.Description)

	require.NoError(t, tr.Shutdown(ctx))
}

func TestStdoutExporter(t *testing.T) {
	var buf bytes.Buffer
	tr, err := NewTracing(TracingConfig{Enabled: true, ServiceName: "envprobe-test", Writer: &buf})
	require.NoError(t, err)

	require.NoError(t, tr.TraceStage(context.Background(), "pi", func(context.Context) error { return nil }))
	require.NoError(t, tr.Shutdown(context.Background()))

	assert.Contains(t, buf.String(), "envprobe.pi")
}

func TestDisabledTracingIsNoop(t *testing.T) {
	tr, err := NewTracing(TracingConfig{})
	require.NoError(t, err)

	called := false
	require.NoError(t, tr.TraceStage(context.Background(), "system", func(ctx context.Context) error {
		called = true
		SetAttribute(ctx, "ignored", true)
		return nil
	}))
	assert.True(t, called)
	assert.NoError(t, tr.Shutdown(context.Background()))
}
