package otel

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rockalpatio/pkg/config"
)

func TestInitDisabledIsNoop(t *testing.T) {
	shutdown, err := Init(config.OtelConfig{Enabled: false}, "test", zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	shutdown()
}

func TestInitRequiresEndpoint(t *testing.T) {
	_, err := Init(config.OtelConfig{Enabled: true}, "test", zap.NewNop())
	assert.ErrorContains(t, err, "otel.endpoint")
}

func TestSamplerClampsRatio(t *testing.T) {
	assert.Contains(t, sampler(-1).Description(), "root:AlwaysOffSampler")
	assert.Contains(t, sampler(3).Description(), "root:AlwaysOnSampler")
	assert.Contains(t, sampler(0.25).Description(), "root:TraceIDRatioBased{0.25}")
}

func TestTracedPassesErrorThrough(t *testing.T) {
	boom := errors.New("boom")
	called := false
	err := Traced(context.Background(), "select", "clientes", func(ctx context.Context) error {
		called = true
		return boom
	})
	assert.True(t, called)
	assert.ErrorIs(t, err, boom)

	assert.ErrorIs(t, Traced(context.Background(), "select", "clientes", func(context.Context) error {
		return pgx.ErrNoRows
	}), pgx.ErrNoRows)
}
