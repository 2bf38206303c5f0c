package core

// Timer represents a scheduled event
type Timer struct {
	WakeTime uint64
	Handler  func(*Timer) uint8
	Next     *Timer
}

const (
	SF_DONE       = 0
	SF_RESCHEDULE = 1
)

// Scheduler is a list of software timers sorted by wake time. Its methods
// must be called with interrupts disabled.
type Scheduler struct {
	head *Timer
}

// Next returns the earliest timer, or nil.
func (s *Scheduler) Next() *Timer {
	return s.head
}

// Empty reports whether no timer is scheduled.
func (s *Scheduler) Empty() bool {
	return s.head == nil
}

// Insert adds t in wake time order, after timers due at the same time.
func (s *Scheduler) Insert(t *Timer) {
	if s.head == nil || t.WakeTime < s.head.WakeTime {
		t.Next = s.head
		s.head = t
		return
	}

	current := s.head
	for current.Next != nil && current.Next.WakeTime <= t.WakeTime {
		current = current.Next
	}

	t.Next = current.Next
	current.Next = t
}

// Remove unlinks t and reports whether it was scheduled.
func (s *Scheduler) Remove(t *Timer) bool {
	for p := &s.head; *p != nil; p = &(*p).Next {
		if *p == t {
			*p = t.Next
			t.Next = nil
			return true
		}
	}
	return false
}

// Dispatch runs every timer due at or before now, rescheduling those whose
// handler asks for it. Returns the number of handlers run.
func (s *Scheduler) Dispatch(now uint64) int {
	n := 0
	for s.head != nil && s.head.WakeTime <= now {
		timer := s.head
		s.head = timer.Next
		timer.Next = nil

		n++
		if timer.Handler(timer) == SF_RESCHEDULE {
			s.Insert(timer)
		}
	}
	return n
}
