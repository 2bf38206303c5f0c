//go:build rp2040

package main

import (
	"machine"
	"time"

	"woebot/config"
	"woebot/core"
	"woebot/robot"
)

func main() {
	// Disable watchdog on boot to clear any previous state
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	uart := InitConsole()
	core.SetDebugWriter(func(s string) {
		uart.Write([]byte(s + "\r\n"))
	})
	core.InitAsyncDebug()
	core.SetGPIODriver(NewRPGPIODriver())
	InitStepTimers()

	cfg := config.Default()
	cfg.ClockFrequency = stepClockFreq
	cfg.Obstacle.Enabled = true
	cfg.Echo = true
	cfg.Debug = true

	slice := uint8(0)
	r, err := robot.New(cfg, func(axis config.AxisConfig, isr func()) (core.AxisHardware, error) {
		t := NewSliceTimer(slice, isr)
		slice++
		return core.AxisHardware{Timer: t, Output: newCoilPort(axis.BasePin)}, nil
	}, reset)
	if err != nil {
		for {
			core.DebugPrintln("init failed: " + err.Error())
			time.Sleep(time.Second)
		}
	}

	if cfg.Obstacle.Enabled {
		if s, ok := newRangeSensor(cfg.Obstacle.PollMS); ok {
			g := r.AttachRangeSensor(s)
			go guardLoop(g, time.Duration(cfg.Obstacle.PollMS)*time.Millisecond)
			core.DebugPrintln("Obstacle guard initialized")
		}
	}
	core.SetDebugEnabled(false)

	uart.Write([]byte("\r\nwoebot ready, boot " + core.Itoa(int(GetHardwareUptime()/1000)) + " ms\r\n"))
	for {
		r.Shell.Serve(uartReader{uart}, uart)
	}
}

// reset reboots through the watchdog.
func reset() {
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 1})
	if err != nil {
		return
	}
	err = machine.Watchdog.Start()
	if err != nil {
		return
	}
	for {
		time.Sleep(1 * time.Millisecond)
	}
}
