package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	"woebot/config"
	"woebot/core"
	"woebot/robot"
)

type Options struct {
	Config string `short:"c" long:"config" description:"Robot configuration (JSON); built-in defaults when empty"`
	Debug  bool   `short:"v" long:"debug" description:"Print stepper and platform debug lines"`

	Shell ShellCommand `command:"shell" alias:"sh" description:"Interactive shell on the simulated robot, paced in real time"`
	Run   RunCommand   `command:"run" description:"Run shell commands in virtual time and plot the wheel velocities"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "woebot-sim - the woebot motion core on a simulated step timer"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}

// simulation is a robot whose timers run on a SimClock and whose coils
// only record the last pattern.
type simulation struct {
	*robot.Robot
	clock *core.SimClock
}

func newSimulation() (*simulation, error) {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return nil, err
		}
	}
	if opts.Debug {
		cfg.Debug = true
	}
	core.SetDebugWriter(func(s string) {
		fmt.Fprintln(os.Stderr, dimStyle.Render(s))
	})

	clock := core.NewSimClock(cfg.ClockFrequency)
	r, err := robot.New(cfg, robot.SimHardware(clock, func(config.AxisConfig) (core.PhaseOutput, error) {
		return &robot.Recorder{}, nil
	}), nil)
	if err != nil {
		return nil, err
	}

	s := &simulation{Robot: r, clock: clock}
	r.Shell.Registry().Register("view", "(status table)", s.view)
	return s, nil
}
