package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScaleTimerZeroStopsTimer(t *testing.T) {
	reload, soft := ScaleTimer(0)
	assert.Equal(t, uint16(0), reload)
	assert.Equal(t, uint32(0), soft)
}

func TestScaleTimerShortPeriods(t *testing.T) {
	for _, p := range []uint32{1, 10, 1000, 65535} {
		reload, soft := ScaleTimer(p)
		assert.Equal(t, uint16(p), reload, "period %d", p)
		assert.Equal(t, p, soft, "period %d", p)
	}
}

func TestScaleTimerLongPeriods(t *testing.T) {
	for _, p := range []uint32{65536, 200000, 66666666, math.MaxUint32} {
		reload, soft := ScaleTimer(p)
		assert.Equal(t, uint16(MaxReload), reload, "period %d", p)
		assert.Equal(t, p, soft, "period %d", p)
	}
}

func TestScaleTimerDeterministic(t *testing.T) {
	for p := uint32(1); p < 1<<30; p = p*3 + 7 {
		r1, s1 := ScaleTimer(p)
		r2, s2 := ScaleTimer(p)
		assert.Equal(t, r1, r2)
		assert.Equal(t, s1, s2)
		assert.NotZero(t, r1)
	}
}

func TestIsqrt(t *testing.T) {
	cases := map[uint32]uint32{
		0:              0,
		1:              1,
		3:              1,
		4:              2,
		15:             3,
		16:             4,
		1017:           31,
		math.MaxUint32: 65535,
	}
	for n, want := range cases {
		assert.Equal(t, want, isqrt(n), "isqrt(%d)", n)
	}
}

func TestPeriodFor(t *testing.T) {
	assert.Equal(t, uint32(100), periodFor(1000, 10))
	assert.Equal(t, uint32(100), periodFor(1000, -10))
	assert.Equal(t, uint32(0), periodFor(1000, 0))
	assert.Equal(t, uint32(0), periodFor(1000, 0.000001))
	assert.Equal(t, uint32(math.MaxUint32), periodFor(DefaultClockFreq, 0.00002))
}

func TestNextPhaseWraps(t *testing.T) {
	assert.Equal(t, uint8(0), nextPhase(7, 1))
	assert.Equal(t, uint8(7), nextPhase(0, -1))
	assert.Equal(t, uint8(3), nextPhase(3, 0))
	assert.Equal(t, uint8(0x9), PhaseBits(15))
}

func TestTicksToDuration(t *testing.T) {
	assert.Equal(t, uint64(1000), TimerToUS(1000000, 1000000000))
	assert.Equal(t, "1.5s", TicksToDuration(1500000, 1000000).String())
}

func TestFtoa(t *testing.T) {
	assert.Equal(t, "0.0000", ftoa(0))
	assert.Equal(t, "1.5000", ftoa(1.5))
	assert.Equal(t, "-0.2500", ftoa(-0.25))
	assert.Equal(t, "0.0000", ftoa(-0.00001))
	assert.Equal(t, "inf", ftoa(5e9))
	assert.Equal(t, "-12", itoa(-12))
}

func TestMirroredOutput(t *testing.T) {
	out := &recordOutput{}
	m := Mirrored(out)
	assert.NoError(t, m.Configure())
	assert.True(t, out.configured)

	for p := uint8(0); p < PhaseCount; p++ {
		m.Write(PhaseBits(p))
	}
	// mirrored forward sequence is the plain sequence run backwards
	assert.Equal(t, []uint8{0x8, 0xC, 0x4, 0x6, 0x2, 0x3, 0x1, 0x9}, out.writes)
	assert.Equal(t, uint8(0), mirrorBits(0))
}
