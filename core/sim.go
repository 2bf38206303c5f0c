package core

import (
	"context"
	"sync/atomic"
	"time"
)

// SimClock emulates the board timers in virtual time on top of a Scheduler.
// Each SimTimer is a 16-bit down counter whose wrap runs its interrupt
// handler. Step and Advance move time forward as fast as the host can go;
// Run paces it against the wall clock.
type SimClock struct {
	freq  uint32
	sched Scheduler
	now   atomic.Uint64
	wake  chan struct{}
}

// NewSimClock returns a clock counting at freq Hz, starting at zero.
func NewSimClock(freq uint32) *SimClock {
	if freq == 0 {
		freq = DefaultClockFreq
	}
	return &SimClock{
		freq: freq,
		wake: make(chan struct{}, 1),
	}
}

// Frequency returns the clock rate in Hz.
func (c *SimClock) Frequency() uint32 {
	return c.freq
}

// Now returns the current virtual time in ticks.
func (c *SimClock) Now() uint64 {
	return c.now.Load()
}

// NewTimer creates a stopped timer channel whose wraps run isr.
func (c *SimClock) NewTimer(isr func()) *SimTimer {
	t := &SimTimer{clock: c, isr: isr}
	t.timer.Handler = t.expired
	return t
}

// Step jumps to the next timer expiry and runs every handler due then.
// It returns false when no timer is running.
func (c *SimClock) Step() bool {
	ran := false
	RunInterrupt(func() {
		next := c.sched.Next()
		if next == nil {
			return
		}
		if next.WakeTime > c.now.Load() {
			c.now.Store(next.WakeTime)
		}
		c.sched.Dispatch(c.now.Load())
		ran = true
	})
	return ran
}

// Advance runs all expiries in the next ticks clock ticks and leaves the
// clock at the end of the interval.
func (c *SimClock) Advance(ticks uint64) {
	end := c.Now() + ticks
	for {
		next, ok := c.nextWake()
		if !ok || next > end {
			break
		}
		c.Step()
	}
	c.now.Store(end)
}

// RunUntilIdle steps until every timer has stopped, at most limit times.
// It reports whether the clock went idle.
func (c *SimClock) RunUntilIdle(limit int) bool {
	for i := 0; i < limit; i++ {
		if !c.Step() {
			return true
		}
	}
	_, busy := c.nextWake()
	return !busy
}

// Run paces virtual time against the wall clock until ctx is done. While
// no timer runs it sleeps until one is triggered.
func (c *SimClock) Run(ctx context.Context) error {
	start := time.Now()
	base := c.Now()

	for {
		next, ok := c.nextWake()
		if !ok {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-c.wake:
			}
			start = time.Now()
			base = c.Now()
			continue
		}

		if next < base {
			next = base
		}
		if d := time.Until(start.Add(TicksToDuration(next-base, c.freq))); d > 0 {
			t := time.NewTimer(d)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-c.wake:
				t.Stop()
				continue
			case <-t.C:
			}
		}
		c.Step()
	}
}

func (c *SimClock) nextWake() (uint64, bool) {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	next := c.sched.Next()
	if next == nil {
		return 0, false
	}
	return next.WakeTime, true
}

func (c *SimClock) kick() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// SimTimer is one emulated timer channel. It implements StepTimer.
type SimTimer struct {
	clock  *SimClock
	timer  Timer
	reload atomic.Uint32
	isr    func()
	fired  atomic.Uint32
}

// SetReload sets the counter period. Zero stops the timer after the
// running handler returns.
func (t *SimTimer) SetReload(reload uint16) {
	t.reload.Store(uint32(reload))
}

// Reload returns the counter period, zero when stopped.
func (t *SimTimer) Reload() uint16 {
	return uint16(t.reload.Load())
}

// Trigger pends the interrupt at the current virtual time. Task context
// only.
func (t *SimTimer) Trigger() {
	state := disableInterrupts()
	t.clock.sched.Remove(&t.timer)
	t.timer.WakeTime = t.clock.Now()
	t.clock.sched.Insert(&t.timer)
	restoreInterrupts(state)
	t.clock.kick()
}

// Interrupts returns how many times the handler has run.
func (t *SimTimer) Interrupts() uint32 {
	return t.fired.Load()
}

func (t *SimTimer) expired(tm *Timer) uint8 {
	t.fired.Add(1)
	if t.isr != nil {
		t.isr()
	}
	r := t.reload.Load()
	if r == 0 {
		return SF_DONE
	}
	tm.WakeTime += uint64(r)
	return SF_RESCHEDULE
}
