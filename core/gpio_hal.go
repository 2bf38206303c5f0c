package core

import "errors"

// GPIOPin identifies a hardware GPIO pin number
type GPIOPin uint32

// GPIODriver is the abstract GPIO interface that core code uses.
// Platform-specific implementations handle actual hardware control.
type GPIODriver interface {
	// ConfigureOutput configures a pin as a digital output
	ConfigureOutput(pin GPIOPin) error

	// SetPin sets the pin to high (true) or low (false)
	SetPin(pin GPIOPin, value bool) error

	// GetPin reads the current pin state
	GetPin(pin GPIOPin) (bool, error)
}

var errNoGPIODriver = errors.New("GPIO driver not configured")

// Global singleton used by board code that builds pin groups late.
var gpioDriver GPIODriver

// SetGPIODriver is called by target-specific code to register its driver.
func SetGPIODriver(d GPIODriver) {
	gpioDriver = d
}

// MustGPIO returns the configured driver or panics if missing.
func MustGPIO() GPIODriver {
	if gpioDriver == nil {
		panic(errNoGPIODriver.Error())
	}
	return gpioDriver
}

// PinGroup drives four consecutive GPIO pins as the coil outputs of one
// axis: bit n of the phase pattern goes to pin Base+n.
type PinGroup struct {
	Driver GPIODriver
	Base   GPIOPin

	last uint8
}

// NewPinGroup returns a phase output on pins base..base+3 of d.
func NewPinGroup(d GPIODriver, base GPIOPin) *PinGroup {
	return &PinGroup{Driver: d, Base: base}
}

// Configure sets the four pins as outputs, all low.
func (g *PinGroup) Configure() error {
	if g.Driver == nil {
		return errNoGPIODriver
	}
	for i := GPIOPin(0); i < 4; i++ {
		if err := g.Driver.ConfigureOutput(g.Base + i); err != nil {
			return err
		}
		if err := g.Driver.SetPin(g.Base+i, false); err != nil {
			return err
		}
	}
	g.last = 0
	return nil
}

// Write updates only the pins whose level changes.
func (g *PinGroup) Write(bits uint8) {
	bits &= PhaseMask
	changed := bits ^ g.last
	for i := GPIOPin(0); i < 4; i++ {
		if changed&(1<<i) != 0 {
			g.Driver.SetPin(g.Base+i, bits&(1<<i) != 0)
		}
	}
	g.last = bits
}

// Bits returns the last pattern written.
func (g *PinGroup) Bits() uint8 {
	return g.last
}
