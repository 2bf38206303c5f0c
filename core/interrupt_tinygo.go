//go:build tinygo

package core

import "runtime/interrupt"

// disableInterrupts masks interrupts and returns the previous state.
// Nesting is allowed.
func disableInterrupts() interrupt.State {
	return interrupt.Disable()
}

// restoreInterrupts restores the interrupt state
func restoreInterrupts(state interrupt.State) {
	interrupt.Restore(state)
}

// RunInterrupt runs fn with interrupts masked.
func RunInterrupt(fn func()) {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	fn()
}
