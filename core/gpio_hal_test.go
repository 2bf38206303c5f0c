package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockGPIODriver records pin modes and writes
type mockGPIODriver struct {
	pins    map[GPIOPin]bool
	outputs map[GPIOPin]bool
	sets    int
}

func newMockGPIODriver() *mockGPIODriver {
	return &mockGPIODriver{
		pins:    make(map[GPIOPin]bool),
		outputs: make(map[GPIOPin]bool),
	}
}

func (m *mockGPIODriver) ConfigureOutput(pin GPIOPin) error {
	m.outputs[pin] = true
	return nil
}

func (m *mockGPIODriver) SetPin(pin GPIOPin, value bool) error {
	m.pins[pin] = value
	m.sets++
	return nil
}

func (m *mockGPIODriver) GetPin(pin GPIOPin) (bool, error) {
	return m.pins[pin], nil
}

func TestPinGroupConfigure(t *testing.T) {
	d := newMockGPIODriver()
	g := NewPinGroup(d, 10)
	require.NoError(t, g.Configure())

	for pin := GPIOPin(10); pin < 14; pin++ {
		assert.True(t, d.outputs[pin], "pin %d not an output", pin)
		assert.False(t, d.pins[pin], "pin %d not low", pin)
	}
	assert.False(t, d.outputs[14])
}

func TestPinGroupWritesChangedPinsOnly(t *testing.T) {
	d := newMockGPIODriver()
	g := NewPinGroup(d, 2)
	require.NoError(t, g.Configure())
	d.sets = 0

	g.Write(0x3)
	assert.Equal(t, 2, d.sets)
	assert.True(t, d.pins[2])
	assert.True(t, d.pins[3])

	g.Write(0x6)
	assert.Equal(t, 4, d.sets)
	assert.False(t, d.pins[2])
	assert.True(t, d.pins[3])
	assert.True(t, d.pins[4])
	assert.Equal(t, uint8(0x6), g.Bits())

	g.Write(0xF6)
	assert.Equal(t, 4, d.sets, "high nibble must be ignored")
}

func TestPinGroupWithoutDriver(t *testing.T) {
	g := NewPinGroup(nil, 0)
	assert.ErrorIs(t, g.Configure(), errNoGPIODriver)
}

func TestMustGPIO(t *testing.T) {
	SetGPIODriver(nil)
	assert.Panics(t, func() { MustGPIO() })

	d := newMockGPIODriver()
	SetGPIODriver(d)
	defer SetGPIODriver(nil)
	assert.Equal(t, GPIODriver(d), MustGPIO())
}
