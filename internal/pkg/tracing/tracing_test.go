//go:build unit

package tracing

import (
	"context"
	"errors"
	"testing"

	"facility-booking/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledTracerRunsFunction(t *testing.T) {
	tracer, err := NewTracer(config.TracingConfig{Enabled: false})
	require.NoError(t, err)

	called := false
	boom := errors.New("boom")
	err = tracer.Segment(context.Background(), "job", func(ctx context.Context) error {
		called = true
		return boom
	})

	assert.True(t, called)
	assert.ErrorIs(t, err, boom)
	assert.False(t, tracer.Enabled())
}

func TestNilTracerIsUsable(t *testing.T) {
	var tracer *Tracer

	err := tracer.Subsegment(context.Background(), "send", func(ctx context.Context) error {
		Annotate(ctx, "alert_id", "x")
		return nil
	})

	assert.NoError(t, err)
}
