// Package gpio drives stepper coils from Linux GPIO lines through periph.io.
package gpio

import (
	"sync"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"woebot/core"
)

var initOnce struct {
	sync.Once
	err error
}

// Init loads the periph.io host drivers. Safe to call more than once.
func Init() error {
	initOnce.Do(func() {
		_, initOnce.err = host.Init()
	})
	return errors.Wrap(initOnce.err, "periph host init")
}

// Driver implements core.GPIODriver over a table of periph pins. A
// core.GPIOPin is an index into the table, so four consecutive names make a
// core.PinGroup.
type Driver struct {
	pins []gpio.PinIO
}

// NewDriver wraps already resolved pins.
func NewDriver(pins ...gpio.PinIO) *Driver {
	return &Driver{pins: pins}
}

// Open resolves pin names such as "GPIO5" or "P1_29" on the running host.
func Open(names []string) (*Driver, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	d := &Driver{}
	for _, name := range names {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, errors.Errorf("unknown gpio %q", name)
		}
		d.pins = append(d.pins, p)
	}
	return d, nil
}

// Len returns the number of pins in the table.
func (d *Driver) Len() int {
	return len(d.pins)
}

func (d *Driver) pin(n core.GPIOPin) (gpio.PinIO, error) {
	if int(n) >= len(d.pins) {
		return nil, errors.Errorf("gpio index %d out of range", n)
	}
	return d.pins[n], nil
}

func (d *Driver) ConfigureOutput(n core.GPIOPin) error {
	p, err := d.pin(n)
	if err != nil {
		return err
	}
	return errors.Wrapf(p.Out(gpio.Low), "configure %s", p.Name())
}

func (d *Driver) SetPin(n core.GPIOPin, value bool) error {
	p, err := d.pin(n)
	if err != nil {
		return err
	}
	return p.Out(gpio.Level(value))
}

func (d *Driver) GetPin(n core.GPIOPin) (bool, error) {
	p, err := d.pin(n)
	if err != nil {
		return false, err
	}
	return bool(p.Read()), nil
}

// Axis returns the phase output for the idx-th group of four pins.
func (d *Driver) Axis(idx int) (core.PhaseOutput, error) {
	base := core.GPIOPin(idx * 4)
	if int(base)+4 > len(d.pins) {
		return nil, errors.Errorf("no pins for axis group %d", idx)
	}
	return core.NewPinGroup(d, base), nil
}

var _ core.GPIODriver = (*Driver)(nil)
