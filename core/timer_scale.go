package core

import "math"

// Velocities at or below this magnitude are treated as exactly zero.
const velocityEpsilon = 0.00001

const maxPeriod = float32(math.MaxUint32)

// ScaleTimer maps a step period, in timer clock ticks, onto the 16-bit
// hardware counter. The counter is reloaded with reload and the handler
// accumulates reloads until soft ticks have passed, so periods longer than
// the counter range cost sqrt(period/65536) interrupts per step instead of
// period/65535.
//
// A zero period yields (0, 0): timer off.
func ScaleTimer(period uint32) (reload uint16, soft uint32) {
	if period == 0 {
		return 0, 0
	}
	div := isqrt(period / (MaxReload + 1))
	if div == 0 {
		div = 1
	}
	r := period / div
	if r > MaxReload {
		r = MaxReload
	}
	return uint16(r), period
}

// periodFor converts a velocity in steps/s to clock ticks per step.
// Returns 0 for velocities too small to time.
func periodFor(freq uint32, velocity float32) uint32 {
	v := abs32(velocity)
	if v <= velocityEpsilon {
		return 0
	}
	p := float32(freq) / v
	if p >= maxPeriod {
		return math.MaxUint32
	}
	return uint32(p)
}

// isqrt returns floor(sqrt(n)).
func isqrt(n uint32) uint32 {
	var root uint32
	bit := uint32(1) << 30
	for bit > n {
		bit >>= 2
	}
	for bit != 0 {
		if n >= root+bit {
			n -= root + bit
			root = root>>1 + bit
		} else {
			root >>= 1
		}
		bit >>= 2
	}
	return root
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// sign32 follows the firmware convention: zero counts as positive.
func sign32(v float32) float32 {
	if v >= 0 {
		return 1
	}
	return -1
}
