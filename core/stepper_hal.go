package core

// StepTimer is one hardware timer channel dedicated to an axis. The timer
// counts down from its reload value and raises the axis interrupt on every
// wrap; the interrupt handler must call the axis Tick.
type StepTimer interface {
	// SetReload sets the period in timer clock ticks. Zero stops the timer.
	// Called from the axis interrupt handler only.
	SetReload(reload uint16)

	// Reload returns the current reload value, zero when stopped.
	Reload() uint16

	// Trigger pends the axis interrupt immediately, whether or not the
	// timer is running.
	Trigger()
}

// PhaseOutput is the group of four coil outputs driven by an axis.
type PhaseOutput interface {
	// Configure makes the pins outputs and de-energises them.
	Configure() error

	// Write drives the low four bits of bits onto the coils.
	// Must be fast: called from the axis interrupt handler.
	Write(bits uint8)
}

// AxisHardware bundles what an axis needs from the board.
type AxisHardware struct {
	Timer  StepTimer
	Output PhaseOutput
}

// Mirrored returns out with coils A-D and B-C swapped, which reverses the
// rotation of a motor mounted facing the other way.
func Mirrored(out PhaseOutput) PhaseOutput {
	return mirrored{out}
}

type mirrored struct {
	PhaseOutput
}

func (m mirrored) Write(bits uint8) {
	m.PhaseOutput.Write(mirrorBits(bits))
}

func mirrorBits(bits uint8) uint8 {
	return (bits&0x1)<<3 | (bits&0x2)<<1 | (bits&0x4)>>1 | (bits&0x8)>>3
}
