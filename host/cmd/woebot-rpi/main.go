package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"woebot/config"
	"woebot/core"
	"woebot/host/gpio"
	"woebot/robot"
)

type Options struct {
	Config string `short:"c" long:"config" description:"Robot configuration (JSON); built-in defaults when empty"`
	Debug  bool   `short:"v" long:"debug" description:"Print stepper and platform debug lines"`
	Echo   bool   `long:"echo" description:"Echo typed characters (raw serial terminals)"`
}

var opts Options

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.LongDescription = "woebot-rpi - drive the woebot steppers from Linux GPIO lines"

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "woebot-rpi:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return err
		}
	}
	cfg.Debug = cfg.Debug || opts.Debug
	cfg.Echo = cfg.Echo || opts.Echo
	core.SetDebugWriter(func(s string) {
		fmt.Fprintln(os.Stderr, s)
	})

	// one pin table, four lines per axis in configuration order
	var names []string
	group := map[core.AxisID]int{}
	for i, axis := range cfg.Axes {
		if len(axis.Pins) != 4 {
			return errors.Errorf("axis %d: no GPIO names configured", axis.ID)
		}
		names = append(names, axis.Pins...)
		group[axis.ID] = i
	}
	pins, err := gpio.Open(names)
	if err != nil {
		return err
	}

	clock := core.NewSimClock(cfg.ClockFrequency)
	r, err := robot.New(cfg, robot.SimHardware(clock, func(axis config.AxisConfig) (core.PhaseOutput, error) {
		return pins.Axis(group[axis.ID])
	}), nil)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	go clock.Run(ctx)

	// de-energise the coils on the way out
	defer func() {
		for _, axis := range cfg.Axes {
			r.Steppers.Idle(axis.ID)
		}
	}()

	served := make(chan error, 1)
	go func() {
		served <- r.Shell.Serve(os.Stdin, os.Stdout)
	}()
	select {
	case err := <-served:
		return err
	case <-ctx.Done():
		fmt.Println()
		return nil
	}
}
