package console

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"woebot/core"
	"woebot/shell"
)

func TestParseAxisReport(t *testing.T) {
	st := core.AxisStatus{
		State: core.AxisState{Velocity: -412.7, Steps: 17, Period: 2420, Reload: 2420},
		Command: core.AxisCommand{
			Velocity:     -500,
			Acceleration: 1000,
			Steps:        400,
			Signal:       true,
		},
		MailboxFull: true,
	}
	out := "sst 0\nstepper_status: " + shell.FormatStatus(st) + "\n"

	r, err := ParseAxisReport(out)
	require.NoError(t, err)
	assert.Equal(t, AxisReport{
		Velocity:  -412,
		Target:    -500,
		Accel:     1000,
		Steps:     400,
		Remaining: 17,
		Mailbox:   true,
	}, r)
}

func TestParseAxisReportErrors(t *testing.T) {
	_, err := ParseAxisReport("error: invalid stepper id\n")
	assert.Error(t, err)

	_, err = ParseAxisReport("stepper_status: velocity fast SPS\n")
	assert.Error(t, err)
}

func TestAxisStatusOverConsole(t *testing.T) {
	c := robot(t)

	r, err := c.AxisStatus(0, time.Second)
	require.NoError(t, err)
	assert.Equal(t, AxisReport{}, r)
}
