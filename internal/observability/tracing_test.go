package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), TracingConfig{
		ServiceName: "socialconnect-test",
		Enabled:     false,
	})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracing_StdoutExporter(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), TracingConfig{
		ServiceName:    "socialconnect-test",
		ServiceVersion: "0.0.0",
		Environment:    "test",
		Enabled:        true,
		Exporter:       "stdout",
		SamplerRatio:   1.0,
	})
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	_, ctx := NewSpan(context.Background(), "test-span")
	assert.NotNil(t, ctx)

	assert.NoError(t, shutdown(context.Background()))
}
