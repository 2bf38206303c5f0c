package robot

import (
	"io"
	"strconv"
	"sync"

	"woebot/core"
	"woebot/platform"
	"woebot/shell"
)

// RangeSensor measures the distance to the nearest object ahead.
type RangeSensor interface {
	// Range returns the distance in millimetres; ok is false when no new
	// measurement is available.
	Range() (mm uint16, ok bool)
}

// Stopper is the part of the platform the guard acts on.
type Stopper interface {
	Stop(hard bool) error
	Status() (platform.Status, error)
}

// Guard soft-stops the platform when it drives forward towards an obstacle
// closer than the threshold. It trips once per approach and re-arms when
// the range clears.
type Guard struct {
	sensor RangeSensor
	plat   Stopper

	mu        sync.Mutex
	threshold uint16
	last      uint16
	tripped   bool
	stops     uint32
}

// NewGuard returns a guard for plat; a zero threshold disables it.
func NewGuard(s RangeSensor, plat Stopper, thresholdMM uint16) *Guard {
	return &Guard{sensor: s, plat: plat, threshold: thresholdMM}
}

// Poll takes one measurement and stops the platform if needed. It reports
// whether it issued a stop.
func (g *Guard) Poll() (bool, error) {
	mm, ok := g.sensor.Range()
	if !ok {
		return false, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.last = mm

	if g.threshold == 0 || mm >= g.threshold {
		g.tripped = false
		return false, nil
	}
	if g.tripped {
		return false, nil
	}

	st, err := g.plat.Status()
	if err != nil {
		return false, err
	}
	if st.State != platform.StateMoving || !forward(st) {
		return false, nil
	}

	g.tripped = true
	g.stops++
	core.DebugPrintln("obstacle at " + strconv.Itoa(int(mm)) + " mm, stopping")
	return true, g.plat.Stop(false)
}

// forward reports whether the body is moving ahead. Mirrored wheels run
// the same step direction for straight travel.
func forward(st platform.Status) bool {
	return st.Right.State.Velocity+st.Left.State.Velocity > 0
}

// SetThreshold changes the trip distance; zero disables the guard.
func (g *Guard) SetThreshold(mm uint16) {
	g.mu.Lock()
	g.threshold = mm
	g.tripped = false
	g.mu.Unlock()
}

// Stats returns the last range, the threshold and the number of stops.
func (g *Guard) Stats() (last, threshold uint16, stops uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last, g.threshold, g.stops
}

func (g *Guard) command(w io.Writer, args shell.Args) error {
	if len(args) > 0 {
		mm, err := args.Int(0)
		if err != nil {
			return err
		}
		g.SetThreshold(uint16(mm))
	}
	last, threshold, stops := g.Stats()
	io.WriteString(w, "obstacle: range "+strconv.Itoa(int(last))+" mm"+
		", threshold "+strconv.Itoa(int(threshold))+" mm"+
		", stops "+strconv.FormatUint(uint64(stops), 10)+"\n")
	return nil
}
