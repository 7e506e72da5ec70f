// SPDX-License-Identifier: MIT

package resilience

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xglog "github.com/ManuGH/ipwww-iptv/internal/log"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

var errUpstream = errors.New("upstream 503")

func fail() error    { return errUpstream }
func succeed() error { return nil }

func newTestBreaker(threshold int, opts ...Option) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	opts = append(opts, WithClock(clock))
	return NewCircuitBreaker("test", threshold, 10*time.Second, opts...), clock
}

func TestOpensAfterConsecutiveFailures(t *testing.T) {
	cb, _ := newTestBreaker(3)

	for range 2 {
		assert.ErrorIs(t, cb.Execute(fail), errUpstream)
	}
	assert.Equal(t, StateClosed, cb.State())

	assert.ErrorIs(t, cb.Execute(fail), errUpstream)
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestStaysOpenUntilResetTimeout(t *testing.T) {
	cb, clock := newTestBreaker(1)
	require.Error(t, cb.Execute(fail))

	clock.advance(9 * time.Second)
	assert.ErrorIs(t, cb.Execute(succeed), ErrCircuitOpen)
	assert.Equal(t, StateOpen, cb.State())
}

func TestTrialSuccessCloses(t *testing.T) {
	cb, clock := newTestBreaker(1)
	require.Error(t, cb.Execute(fail))

	clock.advance(11 * time.Second)
	require.NoError(t, cb.Execute(succeed))
	assert.Equal(t, StateClosed, cb.State())
}

func TestTrialFailureReopens(t *testing.T) {
	cb, clock := newTestBreaker(1)
	require.Error(t, cb.Execute(fail))

	clock.advance(11 * time.Second)
	require.ErrorIs(t, cb.Execute(fail), errUpstream)
	assert.Equal(t, StateOpen, cb.State())

	// the reset window restarts from the failed trial
	clock.advance(5 * time.Second)
	assert.ErrorIs(t, cb.Execute(succeed), ErrCircuitOpen)
}

func TestOnlyOneTrialAtATime(t *testing.T) {
	cb, clock := newTestBreaker(1)
	require.Error(t, cb.Execute(fail))
	clock.advance(11 * time.Second)

	var nested error
	require.NoError(t, cb.Execute(func() error {
		assert.Equal(t, StateHalfOpen, cb.State())
		nested = cb.Execute(succeed)
		return nil
	}))
	assert.ErrorIs(t, nested, ErrCircuitOpen)
	assert.Equal(t, StateClosed, cb.State())
}

func TestSuccessResetsStreak(t *testing.T) {
	cb, _ := newTestBreaker(2)

	require.Error(t, cb.Execute(fail))
	require.NoError(t, cb.Execute(succeed))
	require.Error(t, cb.Execute(fail))
	assert.Equal(t, StateClosed, cb.State())
}

func TestFailureFilter(t *testing.T) {
	errNotFound := errors.New("404")
	cb, clock := newTestBreaker(1, WithFailureFilter(func(err error) bool { return !errors.Is(err, errNotFound) }))

	assert.ErrorIs(t, cb.Execute(func() error { return errNotFound }), errNotFound)
	assert.Equal(t, StateClosed, cb.State())

	require.Error(t, cb.Execute(fail))
	require.Equal(t, StateOpen, cb.State())

	// an ignored error on the trial still proves the upstream is answering
	clock.advance(11 * time.Second)
	assert.ErrorIs(t, cb.Execute(func() error { return errNotFound }), errNotFound)
	assert.Equal(t, StateClosed, cb.State())
}

func TestDefaults(t *testing.T) {
	cb := NewCircuitBreaker("defaults", 0, 0)
	assert.Equal(t, 3, cb.threshold)
	assert.Equal(t, 30*time.Second, cb.resetTimeout)
	assert.Equal(t, "defaults", cb.Name())
}

func TestTransitionsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	xglog.Configure(xglog.Config{Level: "info", Output: &buf})
	t.Cleanup(func() { xglog.Configure(xglog.Config{}) })

	cb, clock := newTestBreaker(1)
	require.Error(t, cb.Execute(fail))
	clock.advance(11 * time.Second)
	require.NoError(t, cb.Execute(succeed))

	out := buf.String()
	assert.Contains(t, out, `"event":"breaker.transition"`)
	assert.Contains(t, out, `"from":"closed","to":"open"`)
	assert.Contains(t, out, `"from":"half-open","to":"closed"`)
}
