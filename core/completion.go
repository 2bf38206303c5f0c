package core

// Completion is a binary semaphore given from interrupt context when an
// axis finishes a step sequence and taken by the task waiting for it.
type Completion struct {
	ch chan struct{}
}

// NewCompletion returns an empty (taken) semaphore.
func NewCompletion() *Completion {
	return &Completion{ch: make(chan struct{}, 1)}
}

// GiveFromISR releases the semaphore without blocking. Giving an already
// given semaphore is a no-op; it reports whether a token was added.
func (c *Completion) GiveFromISR() bool {
	select {
	case c.ch <- struct{}{}:
		return true
	default:
		return false
	}
}

// Take blocks until the semaphore is given, with no timeout.
func (c *Completion) Take() {
	<-c.ch
}

// TryTake takes the semaphore if it is available and reports whether it was.
func (c *Completion) TryTake() bool {
	select {
	case <-c.ch:
		return true
	default:
		return false
	}
}

// Given reports whether a token is waiting to be taken.
func (c *Completion) Given() bool {
	return len(c.ch) > 0
}
