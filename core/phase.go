package core

// PhaseCount is the length of the half-step coil sequence.
const PhaseCount = 8

// PhaseMask covers the four coil outputs of one axis.
const PhaseMask = 0x0F

// halfStep energises coils A, AB, B, BC, C, CD, D, DA.
var halfStep = [PhaseCount]uint8{
	0x1,
	0x1 | 0x2,
	0x2,
	0x2 | 0x4,
	0x4,
	0x4 | 0x8,
	0x8,
	0x8 | 0x1,
}

// PhaseBits returns the coil pattern for phase index p (taken modulo 8).
func PhaseBits(p uint8) uint8 {
	return halfStep[p%PhaseCount]
}

// nextPhase advances p one half step in the direction of velocity.
// Zero velocity leaves the phase alone.
func nextPhase(p uint8, velocity float32) uint8 {
	switch {
	case velocity > 0:
		p++
		if p == PhaseCount {
			p = 0
		}
	case velocity < 0:
		if p == 0 {
			p = PhaseCount
		}
		p--
	}
	return p
}
