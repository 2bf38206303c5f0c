package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimAxis(t *testing.T, freq uint32) (*SimClock, *Controller, *SimTimer, *recordOutput) {
	t.Helper()
	clock := NewSimClock(freq)
	c := NewController(clock.Frequency())
	timer := clock.NewTimer(func() { c.Tick(0) })
	out := &recordOutput{}
	_, err := c.Attach(0, AxisHardware{Timer: timer, Output: out})
	require.NoError(t, err)
	return clock, c, timer, out
}

func TestSimClockIdle(t *testing.T) {
	clock := NewSimClock(0)
	assert.Equal(t, uint32(DefaultClockFreq), clock.Frequency())
	assert.False(t, clock.Step())
	assert.True(t, clock.RunUntilIdle(10))
	assert.Zero(t, clock.Now())
}

func TestSimClockAdvance(t *testing.T) {
	clock, c, timer, out := newSimAxis(t, 1000)

	require.NoError(t, c.Go(0, 100, 0, 0))
	clock.Advance(95)

	assert.Equal(t, uint64(95), clock.Now())
	assert.Equal(t, uint32(10), timer.Interrupts())
	assert.Len(t, out.writes, 10)
	assert.Equal(t, uint16(10), timer.Reload())
}

func TestStepperGoWaitForEndToEnd(t *testing.T) {
	clock, c, _, _ := newSimAxis(t, DefaultClockFreq)

	require.NoError(t, c.Go(0, 200, 100, 1000))
	require.True(t, clock.RunUntilIdle(1000000))
	require.NoError(t, c.WaitFor(0))

	st, err := c.Status(0)
	require.NoError(t, err)
	assert.Zero(t, st.State.Steps)
	assert.Zero(t, st.State.Velocity)
	assert.Zero(t, st.State.Reload)
	assert.False(t, st.SignalPending)

	// 1000 steps at up to 200 steps/s take at least five seconds
	assert.Greater(t, TicksToDuration(clock.Now(), clock.Frequency()), 5*time.Second)
}

func TestWaitForBlocksUntilComplete(t *testing.T) {
	clock, c, _, out := newSimAxis(t, 1000000)

	require.NoError(t, c.Go(0, 500, 1000, -200))
	errc := make(chan error, 1)
	go func() {
		errc <- c.WaitFor(0)
	}()

	select {
	case err := <-errc:
		t.Fatalf("WaitFor returned before the axis moved: %v", err)
	case <-time.After(20 * time.Millisecond):
	}

	require.True(t, clock.RunUntilIdle(1000000))
	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("WaitFor did not return")
	}
	assert.Len(t, out.writes, 200)
}

func TestSimClockRunRealTime(t *testing.T) {
	clock, c, _, _ := newSimAxis(t, 1000000)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- clock.Run(ctx)
	}()

	start := time.Now()
	// 100 steps at 1000 steps/s
	require.NoError(t, c.Go(0, 1000, 0, 100))
	require.NoError(t, c.WaitFor(0))
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop")
	}
}
