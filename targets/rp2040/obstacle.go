//go:build rp2040

package main

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/vl53l1x"

	"woebot/core"
	"woebot/robot"
)

const (
	sensorI2CFreq    = 400000
	sensorBudgetUS   = 33000
	sensorOutOfRange = 8190
)

// rangeSensor is a VL53L1X on I2C0 (SDA=GP4, SCL=GP5) in continuous mode.
type rangeSensor struct {
	dev vl53l1x.Device
}

func newRangeSensor(pollMS uint32) (*rangeSensor, bool) {
	err := machine.I2C0.Configure(machine.I2CConfig{Frequency: sensorI2CFreq})
	if err != nil {
		return nil, false
	}
	s := &rangeSensor{dev: vl53l1x.New(machine.I2C0)}
	if !s.dev.Configure(true) {
		return nil, false
	}
	s.dev.SetMeasurementTimingBudget(sensorBudgetUS)
	s.dev.StartContinuous(pollMS)
	return s, true
}

// Range returns the latest measurement, if a new one is ready.
func (s *rangeSensor) Range() (uint16, bool) {
	mm := s.dev.Read(false)
	if mm == 0 {
		return 0, false
	}
	if mm >= sensorOutOfRange {
		mm = sensorOutOfRange
	}
	return mm, true
}

func guardLoop(g *robot.Guard, poll time.Duration) {
	for {
		stopped, err := g.Poll()
		switch {
		case err != nil:
			core.DebugAsync("obstacle guard: " + err.Error())
		case stopped:
			last, _, _ := g.Stats()
			core.DebugAsync("obstacle at " + core.Itoa(int(last)) + " mm, platform stopped")
		}
		time.Sleep(poll)
	}
}
