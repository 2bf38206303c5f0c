package robot

import (
	"woebot/config"
	"woebot/core"
)

// OutputFactory returns the coil outputs of one axis.
type OutputFactory func(axis config.AxisConfig) (core.PhaseOutput, error)

// SimHardware times every axis with a channel of clock and takes the coil
// outputs from outputs.
func SimHardware(clock *core.SimClock, outputs OutputFactory) HardwareFactory {
	return func(axis config.AxisConfig, isr func()) (core.AxisHardware, error) {
		out, err := outputs(axis)
		if err != nil {
			return core.AxisHardware{}, err
		}
		return core.AxisHardware{Timer: clock.NewTimer(isr), Output: out}, nil
	}
}

// Recorder is a phase output that keeps the last pattern written and
// counts the writes.
type Recorder struct {
	bits   uint8
	writes uint32
}

func (r *Recorder) Configure() error {
	r.bits = 0
	return nil
}

func (r *Recorder) Write(bits uint8) {
	r.bits = bits
	r.writes++
}

// Bits returns the last pattern written. Call with the clock stopped.
func (r *Recorder) Bits() uint8 {
	return r.bits
}

// Writes returns the number of patterns written. Call with the clock
// stopped.
func (r *Recorder) Writes() uint32 {
	return r.writes
}
