package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"woebot/core"
)

type RunCommand struct {
	Sample  time.Duration `short:"s" long:"sample" default:"20ms" description:"Virtual time between velocity samples"`
	Settle  time.Duration `long:"settle" default:"0s" description:"Virtual time to keep running after the last command"`
	Timeout time.Duration `long:"timeout" default:"10s" description:"Wall time allowed for each command"`
	Width   int           `long:"width" default:"80" description:"Chart width"`
	Height  int           `long:"height" default:"16" description:"Chart height"`

	Args struct {
		Lines []string `positional-arg-name:"command" required:"1"`
	} `positional-args:"yes"`
}

func (c *RunCommand) Execute(args []string) error {
	sim, err := newSimulation()
	if err != nil {
		return err
	}

	freq := sim.clock.Frequency()
	every := uint64(c.Sample.Seconds() * float64(freq))
	if every == 0 {
		every = 1
	}
	tr := newTrace(c.Width, c.Height, sim.Config.Geometry.MaxStepRate)
	next := sim.clock.Now()

	sample := func() {
		for sim.clock.Now() >= next {
			st, err := sim.Platform.Status()
			if err != nil {
				return
			}
			tr.push(st)
			next += every
		}
	}

	for _, line := range c.Args.Lines {
		fmt.Println(dimStyle.Render(sim.Config.Prompt) + line)

		var out strings.Builder
		done := make(chan struct{})
		go func() {
			sim.Shell.Execute(&out, line)
			close(done)
		}()

		deadline := time.Now().Add(c.Timeout)
	wait:
		for {
			select {
			case <-done:
				break wait
			default:
			}
			if time.Now().After(deadline) {
				return errors.Errorf("%q still running after %v", line, c.Timeout)
			}
			if sim.clock.Step() {
				sample()
			} else {
				time.Sleep(time.Millisecond)
			}
		}
		fmt.Print(out.String())
	}

	end := sim.clock.Now() + uint64(c.Settle.Seconds()*float64(freq))
	for sim.clock.Now() < end {
		step := next
		if step > end {
			step = end
		}
		sim.clock.Advance(step - sim.clock.Now())
		sample()
	}

	fmt.Println()
	fmt.Println(tr.render())

	st, err := sim.Platform.Status()
	if err != nil {
		return err
	}
	fmt.Println(statusTable(st, sim.clock.Now(), freq, sim.Platform.Kinematics().MaxVelocity()))

	if sim.Config.Debug {
		core.DumpTimingRing()
	}
	return nil
}
