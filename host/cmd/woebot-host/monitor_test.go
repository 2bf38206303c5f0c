package main

import (
	"net"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"woebot/core"
	"woebot/host/console"
	"woebot/platform"
	"woebot/shell"
)

type pipePort struct {
	net.Conn
}

func (pipePort) Flush() error { return nil }

type stubPlatform struct {
	stops   []bool
	stopErr error
}

func (p *stubPlatform) Go(v, a, w, d float64) error { return nil }
func (p *stubPlatform) Idle() error                 { return nil }

func (p *stubPlatform) Stop(hard bool) error {
	p.stops = append(p.stops, hard)
	return p.stopErr
}

func (p *stubPlatform) Status() (platform.Status, error) {
	return platform.Status{}, nil
}

// robot serves a shell driving plat over a pipe and returns a console
// attached to the other end.
func robot(t *testing.T, plat shell.Platform) *console.Console {
	t.Helper()
	sh := shell.New(shell.Config{Steppers: core.NewController(1000000), Platform: plat, Echo: true})

	host, dev := net.Pipe()
	go sh.Serve(dev, dev)

	c := console.New(pipePort{host}, "")
	t.Cleanup(func() {
		c.Close()
		dev.Close()
	})
	require.NoError(t, c.Sync(time.Second))
	return c
}

func TestStopCmdHardStops(t *testing.T) {
	plat := &stubPlatform{}
	con := robot(t, plat)

	msg := stopCmd(con, time.Second)()
	require.IsType(t, stopMsg{}, msg)
	assert.NoError(t, msg.(stopMsg).err)
	assert.Equal(t, []bool{true}, plat.stops)
}

func TestStopFailureIsShown(t *testing.T) {
	con := robot(t, &stubPlatform{stopErr: errors.New("axis not configured")})

	msg := stopCmd(con, time.Second)()
	err := msg.(stopMsg).err
	require.Error(t, err)
	assert.Contains(t, err.Error(), "emergency stop")
	assert.Contains(t, err.Error(), "axis not configured")

	m := monitorModel{}
	next, cmd := m.Update(msg)
	assert.Nil(t, cmd)
	assert.Equal(t, err, next.(monitorModel).last.err)
}

func TestStopWithoutConnection(t *testing.T) {
	host, dev := net.Pipe()
	defer dev.Close()
	con := console.New(pipePort{host}, "")
	require.NoError(t, con.Close())

	msg := stopCmd(con, 10*time.Millisecond)()
	assert.ErrorIs(t, msg.(stopMsg).err, console.ErrNotConnected)
}
