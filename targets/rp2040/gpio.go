//go:build rp2040

package main

import (
	"device/rp"
	"errors"
	"machine"

	"woebot/core"
)

const numGPIO = 30

var errBadPin = errors.New("no such GPIO")

// RPGPIODriver implements the GPIODriver interface for RP2040
type RPGPIODriver struct {
	// Track configured pins to prevent conflicts
	configured [numGPIO]bool
}

// NewRPGPIODriver creates a new RP2040 GPIO driver
func NewRPGPIODriver() *RPGPIODriver {
	return &RPGPIODriver{}
}

// ConfigureOutput configures a pin as a digital output
func (d *RPGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	if pin >= numGPIO {
		return errBadPin
	}
	if d.configured[pin] {
		return nil
	}
	machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinOutput})
	d.configured[pin] = true
	return nil
}

// SetPin sets the pin to high (true) or low (false)
func (d *RPGPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	if err := d.ConfigureOutput(pin); err != nil {
		return err
	}
	machine.Pin(pin).Set(value)
	return nil
}

// GetPin reads the current pin state
func (d *RPGPIODriver) GetPin(pin core.GPIOPin) (bool, error) {
	if pin >= numGPIO || !d.configured[pin] {
		return false, nil
	}
	return machine.Pin(pin).Get(), nil
}

// coilPort drives four consecutive GPIOs in two SIO writes, so the coils of
// one motor change together.
type coilPort struct {
	base core.GPIOPin
	mask uint32
}

func newCoilPort(base uint32) *coilPort {
	return &coilPort{base: core.GPIOPin(base), mask: core.PhaseMask << base}
}

func (p *coilPort) Configure() error {
	gpio := core.MustGPIO()
	for i := core.GPIOPin(0); i < 4; i++ {
		if err := gpio.ConfigureOutput(p.base + i); err != nil {
			return err
		}
	}
	rp.SIO.GPIO_OUT_CLR.Set(p.mask)
	return nil
}

func (p *coilPort) Write(bits uint8) {
	on := uint32(bits) << p.base & p.mask
	rp.SIO.GPIO_OUT_CLR.Set(p.mask &^ on)
	rp.SIO.GPIO_OUT_SET.Set(on)
}
