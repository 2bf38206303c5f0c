package core

// Stepper axis control.
// Each axis runs a velocity ramp from its own timer interrupt and outputs the
// half-step coil pattern. Commands come in through a single-slot mailbox.

import (
	"sync/atomic"
)

// Axis is one stepper motor. Task code talks to it through Go, Stop, Idle,
// WaitFor and Status; the timer interrupt calls Tick. The ramp state and the
// active command belong to Tick alone.
type Axis struct {
	id     AxisID
	freq   uint32
	timer  StepTimer
	output PhaseOutput
	done   *Completion

	// interrupt side
	state  AxisState
	active AxisCommand
	ticks  uint32

	// task -> interrupt handoff; last writer wins
	mailbox atomic.Pointer[AxisCommand]
	// sequence number of the last issued command if it signals, else 0
	signal atomic.Uint32
	seq    atomic.Uint32
}

func newAxis(id AxisID, freq uint32, hw AxisHardware) *Axis {
	return &Axis{
		id:     id,
		freq:   freq,
		timer:  hw.Timer,
		output: hw.Output,
		done:   NewCompletion(),
	}
}

// ID returns the axis index.
func (a *Axis) ID() AxisID {
	return a.id
}

// Go commands the axis to ramp to velocity (steps/s) with the given
// acceleration and run steps steps. Negative steps reverse the velocity.
// Zero steps runs until the next command and never signals completion.
// The command takes effect on the next interrupt.
func (a *Axis) Go(velocity, acceleration float32, steps int32) {
	if steps < 0 {
		steps = -steps
		velocity = -velocity
	}
	cmd := &AxisCommand{
		Velocity:     velocity,
		Acceleration: abs32(acceleration),
		Steps:        uint32(steps),
		Signal:       steps != 0,
	}

	// No interrupt may run between the drain and the timer check, or a
	// completion landing there is credited to the wrong sequence.
	state := disableInterrupts()
	// A token left by a sequence nobody waited for must not release a
	// wait for this one.
	a.done.TryTake()
	n := a.seq.Add(1)
	if n == 0 {
		n = a.seq.Add(1)
	}
	if cmd.Signal {
		a.signal.Store(n)
	} else {
		a.signal.Store(0)
	}
	a.mailbox.Store(cmd)
	// A stopped timer raises no interrupt to pick the command up.
	kick := a.timer.Reload() == 0
	restoreInterrupts(state)

	if IsDebugEnabled() {
		DebugPrintln("stepper_go: id " + itoa(int(a.id)) +
			", velocity " + ftoa(cmd.Velocity) +
			", accel " + ftoa(cmd.Acceleration) +
			", steps " + utoa(cmd.Steps))
	}

	if kick {
		a.timer.Trigger()
	}
}

// Stop ramps the axis down to rest. A hard stop drops the velocity to zero
// on the next interrupt; a soft stop decelerates at the acceleration of the
// command being executed.
func (a *Axis) Stop(hard bool) {
	var accel float32
	if !hard {
		state := disableInterrupts()
		accel = a.active.Acceleration
		restoreInterrupts(state)
	}
	a.Go(0, accel, 0)
}

// Idle hard-stops the axis and de-energises the coils.
func (a *Axis) Idle() {
	a.Go(0, 0, 0)
	state := disableInterrupts()
	a.output.Write(0)
	restoreInterrupts(state)
}

// WaitFor blocks until the sequence started by the last Go completes, or
// is cut short by a stop. It returns ErrNothingToWait without blocking if
// that command had no steps to count.
func (a *Axis) WaitFor() error {
	n := a.signal.Load()
	if n == 0 {
		return ErrNothingToWait
	}
	a.done.Take()
	a.signal.CompareAndSwap(n, 0)
	return nil
}

// Status returns a consistent snapshot of the axis.
func (a *Axis) Status() AxisStatus {
	state := disableInterrupts()
	s := AxisStatus{
		ID:      a.id,
		State:   a.state,
		Command: a.active,
	}
	restoreInterrupts(state)
	s.MailboxFull = a.mailbox.Load() != nil
	s.SignalPending = a.signal.Load() != 0
	return s
}

// Tick runs one timer interrupt for the axis. Interrupt context only.
func (a *Axis) Tick() TickResult {
	r := a.tick()
	// Keep the timer alive while a command is still waiting to be read.
	if a.timer.Reload() == 0 && a.mailbox.Load() != nil {
		a.timer.SetReload(1)
	}
	return r
}

func (a *Axis) tick() TickResult {
	a.ticks++
	st := &a.state
	cfg := &a.active

	if cmd := a.mailbox.Swap(nil); cmd != nil {
		// Any token still held belongs to an older sequence.
		if cmd.Signal {
			a.done.TryTake()
		}
		// A sequence cut short by a stop still releases its waiter.
		if cfg.Signal && st.Steps != 0 && !cmd.Signal {
			a.done.GiveFromISR()
		}
		*cfg = *cmd
		if cfg.Acceleration == 0 {
			st.Velocity = cfg.Velocity
		}
		a.retime()
		st.Ticks = st.Period
		st.Steps = cfg.Steps
		st.RampHalf = cfg.Steps >> 1
		st.RampStop = stoppingSteps(cfg.Velocity, cfg.Acceleration)
		RecordTiming(EvtCommand, uint8(a.id), a.ticks, cfg.Steps, st.RampStop)
	}

	if st.Period == 0 {
		return TickWaiting
	}

	st.Ticks += uint32(st.Reload)
	if st.Ticks < st.Period {
		return TickWaiting
	}
	// Keep the remainder so rounding does not drift.
	st.Ticks -= st.Period

	if cfg.Acceleration != 0 && st.Velocity != cfg.Velocity {
		dir := sign32(cfg.Velocity - st.Velocity)
		st.Velocity += dir * cfg.Acceleration * (float32(st.Period) / float32(a.freq))
		if (dir > 0 && st.Velocity >= cfg.Velocity) || (dir < 0 && st.Velocity <= cfg.Velocity) {
			st.Velocity = cfg.Velocity
		}
		a.retime()
	}

	if st.Velocity == 0 {
		return TickStopped
	}

	if st.Steps != 0 {
		st.Steps--

		// Whichever comes first: half way without reaching cruise speed,
		// or just enough steps left to stop from the current speed. The
		// braking distance from the target (RampStop) is only right once
		// cruising; ramping down on it earlier stalls the axis short.
		if cfg.Velocity != 0 &&
			((st.Steps == st.RampHalf && st.Velocity != cfg.Velocity) ||
				st.Steps <= stoppingSteps(st.Velocity, cfg.Acceleration)) {
			cfg.Velocity = 0
			RecordTiming(EvtRampDown, uint8(a.id), a.ticks, st.Steps, uint32(abs32(st.Velocity)))
		}

		if st.Steps == 0 {
			cfg.Velocity = 0
			st.Velocity = 0
			a.retime()
			RecordTiming(EvtComplete, uint8(a.id), a.ticks, cfg.Steps, 0)
			// A counting command already queued owns the next token.
			if next := a.mailbox.Load(); cfg.Signal && (next == nil || !next.Signal) {
				a.done.GiveFromISR()
			}
		}
	}

	a.output.Write(halfStep[st.Phase])
	st.Phase = nextPhase(st.Phase, st.Velocity)

	return TickMoving
}

// retime derives the timer reload and step period from the current
// velocity, bootstrapping a ramp that starts from rest and switching the
// timer off once the axis has stopped.
func (a *Axis) retime() {
	st := &a.state
	target := a.active.Velocity

	if target == 0 && abs32(st.Velocity) < 1 {
		st.Velocity = 0
		st.Reload, st.Period = 0, 0
		a.timer.SetReload(0)
		return
	}

	// A ramp from zero would never get going: start at 1% of the target,
	// at least one step per second, heading towards the target.
	if abs32(st.Velocity) <= abs32(0.01*target) {
		v := abs32(0.01 * target)
		if v < 1 {
			v = 1
		}
		st.Velocity = v * sign32(target-st.Velocity)
	}

	period := periodFor(a.freq, st.Velocity)
	if period == 0 {
		st.Velocity = 0
	}
	st.Reload, st.Period = ScaleTimer(period)
	a.timer.SetReload(st.Reload)
}

// stoppingSteps is the distance in steps needed to brake from velocity to
// rest: v^2 / 2a. Zero when the change is instantaneous.
func stoppingSteps(velocity, accel float32) uint32 {
	if accel == 0 {
		return 0
	}
	n := 0.5 * velocity * velocity / accel
	if n >= maxPeriod {
		return ^uint32(0)
	}
	return uint32(n)
}

// Controller owns the axes of a board, indexed by AxisID.
type Controller struct {
	freq uint32
	axes [MaxAxes]*Axis
}

// NewController returns a controller whose timers count at freq Hz.
func NewController(freq uint32) *Controller {
	if freq == 0 {
		freq = DefaultClockFreq
	}
	return &Controller{freq: freq}
}

// ClockFrequency returns the timer clock used for velocity conversion.
func (c *Controller) ClockFrequency() uint32 {
	return c.freq
}

// Attach configures the hardware of axis id and stops its timer.
func (c *Controller) Attach(id AxisID, hw AxisHardware) (*Axis, error) {
	if !id.Valid() {
		return nil, ErrInvalidAxis
	}
	if hw.Timer == nil || hw.Output == nil {
		return nil, ErrAxisNotConfigured
	}
	hw.Timer.SetReload(0)
	if err := hw.Output.Configure(); err != nil {
		return nil, err
	}
	a := newAxis(id, c.freq, hw)
	c.axes[id] = a
	DebugPrintln("Stepper driver " + itoa(int(id)) + " initialized")
	return a, nil
}

// Axis returns the axis with index id.
func (c *Controller) Axis(id AxisID) (*Axis, error) {
	if !id.Valid() {
		return nil, ErrInvalidAxis
	}
	a := c.axes[id]
	if a == nil {
		return nil, ErrAxisNotConfigured
	}
	return a, nil
}

// Tick is the timer interrupt entry point for axis id. Unknown axes are
// ignored.
func (c *Controller) Tick(id AxisID) TickResult {
	if !id.Valid() || c.axes[id] == nil {
		return TickWaiting
	}
	return c.axes[id].Tick()
}

// Go issues a motion command to axis id.
func (c *Controller) Go(id AxisID, velocity, acceleration float32, steps int32) error {
	a, err := c.Axis(id)
	if err != nil {
		return err
	}
	a.Go(velocity, acceleration, steps)
	return nil
}

// Stop brings axis id to rest, immediately when hard is set.
func (c *Controller) Stop(id AxisID, hard bool) error {
	a, err := c.Axis(id)
	if err != nil {
		return err
	}
	a.Stop(hard)
	return nil
}

// Idle hard-stops axis id and switches its coils off.
func (c *Controller) Idle(id AxisID) error {
	a, err := c.Axis(id)
	if err != nil {
		return err
	}
	a.Idle()
	return nil
}

// WaitFor blocks until the last sequence issued to axis id completes.
func (c *Controller) WaitFor(id AxisID) error {
	a, err := c.Axis(id)
	if err != nil {
		return err
	}
	return a.WaitFor()
}

// Status returns a snapshot of axis id.
func (c *Controller) Status(id AxisID) (AxisStatus, error) {
	a, err := c.Axis(id)
	if err != nil {
		return AxisStatus{}, err
	}
	return a.Status(), nil
}
