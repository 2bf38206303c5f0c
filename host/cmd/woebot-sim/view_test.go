package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"woebot/core"
	"woebot/platform"
)

func TestStatusTable(t *testing.T) {
	st := platform.Status{
		State: platform.StateMoving,
		Right: core.AxisStatus{State: core.AxisState{Period: 1500, Reload: 100}},
		Left:  core.AxisStatus{State: core.AxisState{Period: 3000, Reload: 200}},
	}
	out := statusTable(st, 2000000, 2000000, 0.115)

	assert.Contains(t, out, "t=1s")
	assert.Contains(t, out, "vmax=0.115 m/s")
	assert.Contains(t, out, "Period us")
	// step periods in microseconds of the 2 MHz clock
	assert.Contains(t, out, "750")
	assert.Contains(t, out, "1500")
}
