package core

import "time"

// Timer clock of the stock board: 16 MHz crystal, PLL divided to 66.67 MHz.
const DefaultClockFreq = 66666666

// MaxReload is the largest reload the 16-bit hardware counters accept.
const MaxReload = 0xFFFF

// TimerToUS converts ticks of a freq Hz clock to microseconds.
func TimerToUS(ticks uint64, freq uint32) uint64 {
	return ticks * 1000000 / uint64(freq)
}

// TicksToDuration converts ticks of a freq Hz clock to a wall-clock duration.
func TicksToDuration(ticks uint64, freq uint32) time.Duration {
	sec := ticks / uint64(freq)
	rem := ticks % uint64(freq)
	return time.Duration(sec)*time.Second + time.Duration(rem*uint64(time.Second)/uint64(freq))
}
