package core

import "errors"

// MaxAxes is the number of axes the board can drive: two dual-channel
// timers, one channel per motor.
const MaxAxes = 4

var (
	// ErrInvalidAxis is returned for an axis index outside 0..MaxAxes-1.
	ErrInvalidAxis = errors.New("invalid axis")

	// ErrAxisNotConfigured is returned for a valid index with no hardware attached.
	ErrAxisNotConfigured = errors.New("axis not configured")

	// ErrNothingToWait is returned by WaitFor when the last command issued
	// to the axis does not end in a completion signal.
	ErrNothingToWait = errors.New("nothing to wait for")
)

// AxisID names one of the MaxAxes motor axes.
type AxisID uint8

// Valid reports whether id is within range.
func (id AxisID) Valid() bool {
	return id < MaxAxes
}

// TickResult is what one interrupt did for the axis.
type TickResult uint8

const (
	// TickWaiting: idle, or a sub-tick that only accumulated counter time.
	TickWaiting TickResult = iota
	// TickStopped: the step period elapsed but velocity is zero.
	TickStopped
	// TickMoving: a phase was output.
	TickMoving
)

func (r TickResult) String() string {
	switch r {
	case TickWaiting:
		return "waiting"
	case TickStopped:
		return "stopped"
	case TickMoving:
		return "moving"
	}
	return "unknown"
}

// AxisCommand is a motion request handed from task to interrupt context.
// It is copied, never shared.
type AxisCommand struct {
	Velocity     float32 // target, steps/s, sign is direction
	Acceleration float32 // steps/s^2, magnitude; 0 switches velocity immediately
	Steps        uint32  // steps to run, 0 runs until the next command
	Signal       bool    // give the completion semaphore when Steps are done
}

// AxisState is the ramp state, written only by the axis interrupt handler.
type AxisState struct {
	Phase    uint8   // index into the half-step table
	Velocity float32 // steps/s, sign is direction
	Reload   uint16  // hardware timer reload
	Period   uint32  // clock ticks per step, 0 when idle
	Ticks    uint32  // reloads accumulated towards Period
	Steps    uint32  // steps left in the sequence
	RampHalf uint32  // Steps value where a symmetric ramp turns around
	RampStop uint32  // braking steps from the target velocity; diagnostic, logged with EvtCommand, not the ramp-down trigger
}

// AxisStatus is a diagnostic snapshot of one axis.
type AxisStatus struct {
	ID            AxisID
	State         AxisState
	Command       AxisCommand // command being executed
	MailboxFull   bool        // a command is waiting to be picked up
	SignalPending bool        // WaitFor would block
}

// Motion summarises the status as stopped, moving, or waiting for a
// command to be picked up.
func (s AxisStatus) Motion() TickResult {
	switch {
	case s.MailboxFull:
		return TickWaiting
	case s.State.Velocity != 0:
		return TickMoving
	}
	return TickStopped
}
