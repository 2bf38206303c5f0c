// Package platform drives a differential-drive base: two stepper axes
// commanded together from body-frame motion requests.
package platform

import (
	"errors"
	"sync/atomic"

	"woebot/core"
	"woebot/kinematics"
)

// ErrInterrupted is returned by Go when a stop or idle cut the motion short.
var ErrInterrupted = errors.New("motion interrupted")

// Axes is the stepper API the platform needs; *core.Controller provides it.
type Axes interface {
	Go(id core.AxisID, velocity, acceleration float32, steps int32) error
	Stop(id core.AxisID, hard bool) error
	Idle(id core.AxisID) error
	WaitFor(id core.AxisID) error
	Status(id core.AxisID) (core.AxisStatus, error)
}

// State summarises both wheels.
type State uint8

const (
	StateStopped State = iota
	StateMoving
	StateIdle
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateMoving:
		return "moving"
	case StateIdle:
		return "idle"
	}
	return "unknown"
}

// Status is a snapshot of both wheels.
type Status struct {
	State State
	Right core.AxisStatus
	Left  core.AxisStatus
}

// Platform turns motions into wheel commands. Go may block for the whole
// motion; Stop and Idle may be called from other goroutines meanwhile.
type Platform struct {
	axes        Axes
	kin         kinematics.Kinematics
	right, left core.AxisID

	idle        atomic.Bool
	interrupted atomic.Bool
}

// New returns a platform driving right and left through axes.
func New(axes Axes, kin kinematics.Kinematics, right, left core.AxisID) (*Platform, error) {
	if !right.Valid() || !left.Valid() || right == left {
		return nil, core.ErrInvalidAxis
	}
	if _, err := axes.Status(right); err != nil {
		return nil, err
	}
	if _, err := axes.Status(left); err != nil {
		return nil, err
	}
	core.DebugPrintln("Platform driver initialized (steppers: right=" +
		core.Itoa(int(right)) + ", left=" + core.Itoa(int(left)) + ")")
	return &Platform{axes: axes, kin: kin, right: right, left: left}, nil
}

// Kinematics returns the geometry the platform plans with.
func (p *Platform) Kinematics() kinematics.Kinematics {
	return p.kin
}

// Go moves the body at velocity m/s, turning at angular rev/s, for distance
// m, ramping at acceleration m/s^2. Both wheels start together; Go returns
// once both have finished. A zero distance starts the motion and returns
// at once, leaving the wheels running until Stop.
func (p *Platform) Go(velocity, acceleration, angular, distance float64) error {
	plan, err := p.kin.Plan(kinematics.Motion{
		Velocity:        velocity,
		Acceleration:    acceleration,
		AngularVelocity: angular,
		Distance:        distance,
	})
	if err != nil {
		return err
	}

	if core.IsDebugEnabled() {
		if plan.Limiter != 1 {
			core.DebugPrintln("vlimiter " + core.Ftoa(float32(plan.Limiter)))
		}
		core.DebugPrintln("platform_go: velocity " + core.Ftoa(float32(velocity)) +
			", velocity_r " + core.Ftoa(float32(plan.RightVelocity)) +
			", velocity_l " + core.Ftoa(float32(plan.LeftVelocity)) +
			", angular_velocity " + core.Ftoa(float32(angular)) +
			", radius " + core.Ftoa(float32(plan.Radius)))
	}

	p.idle.Store(false)
	p.interrupted.Store(false)
	if err := p.axes.Go(p.right, plan.Right.Velocity, plan.Right.Acceleration, plan.Right.Steps); err != nil {
		return err
	}
	if err := p.axes.Go(p.left, plan.Left.Velocity, plan.Left.Acceleration, plan.Left.Steps); err != nil {
		return err
	}

	if err := p.wait(p.right); err != nil {
		return err
	}
	if err := p.wait(p.left); err != nil {
		return err
	}
	if p.interrupted.Load() {
		return ErrInterrupted
	}
	return nil
}

// wait blocks on one wheel; a wheel with nothing to count is done already.
func (p *Platform) wait(id core.AxisID) error {
	err := p.axes.WaitFor(id)
	if errors.Is(err, core.ErrNothingToWait) {
		return nil
	}
	return err
}

// Stop brings both wheels to rest, at once if hard is set, otherwise at
// the acceleration of the running motion.
func (p *Platform) Stop(hard bool) error {
	p.interrupted.Store(true)
	if err := p.axes.Stop(p.right, hard); err != nil {
		return err
	}
	return p.axes.Stop(p.left, hard)
}

// Idle stops both wheels and switches their coils off.
func (p *Platform) Idle() error {
	p.interrupted.Store(true)
	if err := p.axes.Idle(p.right); err != nil {
		return err
	}
	if err := p.axes.Idle(p.left); err != nil {
		return err
	}
	p.idle.Store(true)
	return nil
}

// Status returns both wheel snapshots and the combined state.
func (p *Platform) Status() (Status, error) {
	r, err := p.axes.Status(p.right)
	if err != nil {
		return Status{}, err
	}
	l, err := p.axes.Status(p.left)
	if err != nil {
		return Status{}, err
	}

	s := Status{Right: r, Left: l, State: StateStopped}
	switch {
	case r.Motion() != core.TickStopped || l.Motion() != core.TickStopped:
		s.State = StateMoving
	case p.idle.Load():
		s.State = StateIdle
	}
	return s, nil
}
