// Package robot assembles the motion stack of one robot from its
// configuration: stepper controller, wheel axes, platform and shell.
package robot

import (
	"errors"

	"woebot/config"
	"woebot/core"
	"woebot/kinematics"
	"woebot/platform"
	"woebot/shell"
)

// HardwareFactory builds the step timer and coil outputs of one axis. The
// timer must call isr on every wrap.
type HardwareFactory func(axis config.AxisConfig, isr func()) (core.AxisHardware, error)

// Robot is an initialised robot
type Robot struct {
	Config   *config.RobotConfig
	Steppers *core.Controller
	Platform *platform.Platform
	Shell    *shell.Shell

	guard *Guard
}

var errNoHardware = errors.New("no hardware factory")

// New attaches every configured axis and builds the platform on the two
// wheel axes. reset may be nil on boards that cannot reboot.
func New(cfg *config.RobotConfig, hw HardwareFactory, reset func()) (*Robot, error) {
	if hw == nil {
		return nil, errNoHardware
	}
	core.SetDebugEnabled(cfg.Debug)

	steppers := core.NewController(cfg.ClockFrequency)
	for _, axis := range cfg.Axes {
		id := axis.ID
		h, err := hw(axis, func() { steppers.Tick(id) })
		if err != nil {
			return nil, err
		}
		if axis.Invert && h.Output != nil {
			h.Output = core.Mirrored(h.Output)
		}
		if _, err := steppers.Attach(id, h); err != nil {
			return nil, err
		}
	}

	if err := cfg.Geometry.Validate(); err != nil {
		return nil, err
	}
	var kin kinematics.Kinematics = cfg.Geometry
	plat, err := platform.New(steppers, kin, cfg.RightAxis, cfg.LeftAxis)
	if err != nil {
		return nil, err
	}

	r := &Robot{
		Config:   cfg,
		Steppers: steppers,
		Platform: plat,
	}
	r.Shell = shell.New(shell.Config{
		Steppers: steppers,
		Platform: plat,
		Reset:    reset,
		Prompt:   cfg.Prompt,
		Echo:     cfg.Echo,
	})
	return r, nil
}

// Guard returns the obstacle guard, nil until AttachRangeSensor.
func (r *Robot) Guard() *Guard {
	return r.guard
}

// AttachRangeSensor installs the obstacle guard on the platform and adds the
// obs command to the shell.
func (r *Robot) AttachRangeSensor(s RangeSensor) *Guard {
	r.guard = NewGuard(s, r.Platform, r.Config.Obstacle.ThresholdMM)
	r.Shell.Registry().Register("obs", "(obstacle sensor) [threshold_mm]", r.guard.command)
	return r.guard
}
