//go:build !tinygo

package core

import "sync"

// State is the saved interrupt state returned by disableInterrupts.
type State uintptr

// irqLock stands in for the interrupt mask on hosted builds. Simulated
// interrupt handlers run with it held, so task code that takes it cannot
// observe an axis half way through a tick.
var irqLock sync.Mutex

// disableInterrupts enters the interrupt critical section. Not reentrant
// on hosted builds: never call it from an interrupt handler.
func disableInterrupts() State {
	irqLock.Lock()
	return 0
}

// restoreInterrupts leaves the critical section entered by disableInterrupts.
func restoreInterrupts(state State) {
	irqLock.Unlock()
}

// RunInterrupt runs fn as an interrupt handler would: with task code locked
// out. Used by timer emulations that are not backed by a real interrupt.
func RunInterrupt(fn func()) {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	fn()
}
