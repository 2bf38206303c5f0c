package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

type ShellCommand struct{}

func (c *ShellCommand) Execute(args []string) error {
	sim, err := newSimulation()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	go sim.clock.Run(ctx)

	fmt.Println(titleStyle.Render("woebot simulator") +
		dimStyle.Render(fmt.Sprintf("  %d Hz step clock, 'help' lists commands, 'view' shows the wheels", sim.clock.Frequency())))

	served := make(chan error, 1)
	go func() {
		served <- sim.Shell.Serve(os.Stdin, os.Stdout)
	}()
	select {
	case err := <-served:
		return err
	case <-ctx.Done():
		fmt.Println()
		return nil
	}
}
