package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errDown = errors.New("down")

func newTestBreaker(now *time.Time) *Breaker {
	b := New(Config{FailureThreshold: 2, SuccessThreshold: 2, Cooldown: time.Minute})
	b.now = func() time.Time { return *now }
	return b
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b := newTestBreaker(&now)

	assert.ErrorIs(t, b.Do(func() error { return errDown }), errDown)
	assert.NoError(t, b.Do(func() error { return nil }), "success resets the count")
	assert.ErrorIs(t, b.Do(func() error { return errDown }), errDown)
	assert.Equal(t, StateClosed, b.State())
	assert.ErrorIs(t, b.Do(func() error { return errDown }), errDown)
	assert.Equal(t, StateOpen, b.State())

	called := false
	assert.ErrorIs(t, b.Do(func() error { called = true; return nil }), ErrOpen)
	assert.False(t, called)
}

func TestBreakerRecoversThroughHalfOpen(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b := newTestBreaker(&now)
	_ = b.Do(func() error { return errDown })
	_ = b.Do(func() error { return errDown })
	assert.Equal(t, StateOpen, b.State())

	now = now.Add(time.Minute)
	assert.NoError(t, b.Do(func() error { return nil }))
	assert.Equal(t, StateHalfOpen, b.State())
	assert.NoError(t, b.Do(func() error { return nil }))
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b := newTestBreaker(&now)
	_ = b.Do(func() error { return errDown })
	_ = b.Do(func() error { return errDown })

	now = now.Add(2 * time.Minute)
	assert.ErrorIs(t, b.Do(func() error { return errDown }), errDown)
	assert.Equal(t, StateOpen, b.State())
	assert.ErrorIs(t, b.Do(func() error { return nil }), ErrOpen)
	assert.Equal(t, "open", b.State().String())
}
