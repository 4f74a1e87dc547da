package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), Config{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, tp)

	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("catalog"))
	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  string
	}{
		{"full sampling keeps everything", 1.0, "AlwaysOnSampler"},
		{"ratio above one clamps to always", 1.5, "AlwaysOnSampler"},
		{"zero sampling drops everything", 0.0, "AlwaysOffSampler"},
		{"negative ratio clamps to never", -0.1, "AlwaysOffSampler"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, samplerFor(tt.ratio).Description())
		})
	}

	t.Run("fractional ratio is trace-id based", func(t *testing.T) {
		assert.Contains(t, samplerFor(0.25).Description(), "TraceIDRatioBased")
	})
}
