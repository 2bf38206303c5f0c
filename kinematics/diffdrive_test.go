package kinematics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultGeometry(t *testing.T) {
	g := DefaultGeometry()
	require.NoError(t, g.Validate())
	assert.InDelta(t, 4096, g.StepsPerRev(), 1e-9)
	assert.InDelta(t, 1500.0/4096*math.Pi*0.10, g.MaxVelocity(), 1e-12)
	assert.InDelta(t, 13037.97, g.StepsPerMeter(), 0.01)
}

func TestValidateRejectsBadGeometry(t *testing.T) {
	for _, g := range []Geometry{
		{WheelBase: 0, WheelDiameter: 0.1, StepAngle: 1, MaxStepRate: 1},
		{WheelBase: 0.2, WheelDiameter: -1, StepAngle: 1, MaxStepRate: 1},
		{WheelBase: 0.2, WheelDiameter: 0.1, StepAngle: math.NaN(), MaxStepRate: 1},
		{WheelBase: 0.2, WheelDiameter: 0.1, StepAngle: 1, MaxStepRate: math.Inf(1)},
	} {
		assert.ErrorIs(t, g.Validate(), ErrBadGeometry)
		_, err := g.Plan(Motion{Velocity: 0.1})
		assert.ErrorIs(t, err, ErrBadGeometry)
	}
}

func TestSaturationStraight(t *testing.T) {
	g := DefaultGeometry()
	vmax := g.MaxVelocity()

	p, err := g.Plan(Motion{Velocity: 1.5 * vmax, Acceleration: 0.1, Distance: 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, p.Limiter, 1e-12)
	assert.InDelta(t, vmax, p.RightVelocity, 1e-12)
	assert.InDelta(t, vmax, p.LeftVelocity, 1e-12)
	assert.InDelta(t, 1500, p.Right.Velocity, 0.01)
}

func TestSaturationKeepsTurnRatio(t *testing.T) {
	g := DefaultGeometry()
	vmax := g.MaxVelocity()
	// right wheel at 1.5 vmax, left at 0.5 vmax
	angular := 0.5 * vmax / (math.Pi * g.WheelBase)

	vr, vl := g.WheelVelocities(vmax, angular)
	require.InDelta(t, 1.5*vmax, vr, 1e-12)
	require.InDelta(t, 0.5*vmax, vl, 1e-12)

	p, err := g.Plan(Motion{Velocity: vmax, Acceleration: 0.1, AngularVelocity: angular, Distance: 1})
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, p.Limiter, 1e-12)
	assert.InDelta(t, vr*2/3, p.RightVelocity, 1e-12)
	assert.InDelta(t, vl*2/3, p.LeftVelocity, 1e-12)

	// travel scales with the saturated wheel speeds: 1.0 m and 1/3 m
	assert.InDelta(t, g.StepsPerMeter(), float64(p.Right.Steps), 1)
	assert.InDelta(t, g.StepsPerMeter()/3, float64(p.Left.Steps), 1)
	assert.InDelta(t, float64(p.Right.Steps), 3*float64(p.Left.Steps), 3)
	assert.InDelta(t, float64(p.Right.Acceleration), 3*float64(p.Left.Acceleration), 0.01)
}

func TestSaturationLeftWheel(t *testing.T) {
	g := DefaultGeometry()
	_, _, f := g.Saturate(0.5*g.MaxVelocity(), -2*g.MaxVelocity())
	assert.InDelta(t, 0.5, f, 1e-12)

	r, l, f := g.Saturate(0.01, -0.01)
	assert.Equal(t, 1.0, f)
	assert.Equal(t, 0.01, r)
	assert.Equal(t, -0.01, l)
}

func TestStraightLineIsSymmetric(t *testing.T) {
	g := DefaultGeometry()
	p, err := g.Plan(Motion{Velocity: 0.05, Acceleration: 0.02, Distance: 1})
	require.NoError(t, err)

	assert.Equal(t, p.Right, p.Left)
	assert.Equal(t, int32(13038), p.Right.Steps)
	assert.InDelta(t, 0.05*g.StepsPerMeter(), float64(p.Right.Velocity), 0.01)
	assert.InDelta(t, 0.02*g.StepsPerMeter(), float64(p.Right.Acceleration), 0.01)
	assert.Equal(t, 1.0, p.Limiter)
	assert.Zero(t, p.Radius)
}

func TestReverse(t *testing.T) {
	g := DefaultGeometry()

	back, err := g.Plan(Motion{Velocity: -0.05, Acceleration: 0.02, Distance: 0.1})
	require.NoError(t, err)
	assert.Less(t, back.Right.Steps, int32(0))
	assert.Equal(t, back.Right, back.Left)
	assert.Greater(t, back.Right.Velocity, float32(0))

	neg, err := g.Plan(Motion{Velocity: 0.05, Acceleration: 0.02, Distance: -0.1})
	require.NoError(t, err)
	assert.Equal(t, back.Right, neg.Right)
	assert.Equal(t, back.Left, neg.Left)
}

func TestRotationOnTheSpot(t *testing.T) {
	g := DefaultGeometry()
	p, err := g.Plan(Motion{AngularVelocity: 0.1, Acceleration: 0.02, Distance: 0.1})
	require.NoError(t, err)

	want := int32(math.Round(0.1 * g.StepsPerMeter()))
	assert.Equal(t, want, p.Right.Steps)
	assert.Equal(t, -want, p.Left.Steps)
	assert.Equal(t, p.Right.Velocity, p.Left.Velocity)
	assert.Equal(t, p.Right.Acceleration, p.Left.Acceleration)
	assert.Zero(t, p.Radius)
}

func TestTurnRadius(t *testing.T) {
	g := DefaultGeometry()
	p, err := g.Plan(Motion{Velocity: 0.05, AngularVelocity: 0.05, Distance: 0.1})
	require.NoError(t, err)
	assert.InDelta(t, 0.05/(2*math.Pi*0.05), p.Radius, 1e-12)
	assert.Greater(t, p.Right.Steps, p.Left.Steps)
}

func TestPlanRejects(t *testing.T) {
	g := DefaultGeometry()

	_, err := g.Plan(Motion{Acceleration: 1, Distance: 1})
	assert.ErrorIs(t, err, ErrNoMotion)

	_, err = g.Plan(Motion{Velocity: math.NaN()})
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = g.Plan(Motion{Velocity: 0.1, Distance: 1e6})
	assert.ErrorIs(t, err, ErrOutOfRange)
}
