package kinematics

import "math"

var _ Kinematics = Geometry{}

// Geometry describes a two-wheeled differential-drive platform driven by
// stepper motors.
type Geometry struct {
	WheelBase     float64 `json:"wheel_base"`     // distance between the wheels, m
	WheelDiameter float64 `json:"wheel_diameter"` // m
	StepAngle     float64 `json:"step_angle"`     // degrees of wheel rotation per step
	MaxStepRate   float64 `json:"max_step_rate"`  // fastest step rate a motor sustains, steps/s
}

// DefaultGeometry is the stock robot: 28BYJ-48 steppers in half-step
// mode on 100 mm wheels, 200 mm apart.
func DefaultGeometry() Geometry {
	return Geometry{
		WheelBase:     0.20,
		WheelDiameter: 0.10,
		StepAngle:     5.625 / 64,
		MaxStepRate:   1500,
	}
}

// Validate checks that every dimension is positive and finite.
func (g Geometry) Validate() error {
	for _, v := range []float64{g.WheelBase, g.WheelDiameter, g.StepAngle, g.MaxStepRate} {
		if !(v > 0) || math.IsInf(v, 0) {
			return ErrBadGeometry
		}
	}
	return nil
}

// StepsPerRev is the number of steps for one wheel revolution.
func (g Geometry) StepsPerRev() float64 {
	return 360 / g.StepAngle
}

// Circumference of a wheel, m.
func (g Geometry) Circumference() float64 {
	return math.Pi * g.WheelDiameter
}

// StepsPerMeter converts wheel surface travel into steps.
func (g Geometry) StepsPerMeter() float64 {
	return g.StepsPerRev() / g.Circumference()
}

// MaxVelocity is the wheel surface speed at MaxStepRate, m/s.
func (g Geometry) MaxVelocity() float64 {
	return g.MaxStepRate / g.StepsPerRev() * g.Circumference()
}

// WheelVelocities returns the surface speed of each wheel for a body
// moving at velocity m/s while turning at angular rev/s.
func (g Geometry) WheelVelocities(velocity, angular float64) (right, left float64) {
	d := 2 * math.Pi * angular * (g.WheelBase / 2)
	return velocity + d, velocity - d
}

// Saturate scales both wheel speeds by the same factor until neither
// exceeds MaxVelocity, keeping the turn ratio. Each wheel's limit is
// checked in turn and applied to both.
func (g Geometry) Saturate(right, left float64) (r, l, factor float64) {
	limit := g.MaxVelocity()
	factor = 1
	if math.Abs(right) > limit {
		f := limit / math.Abs(right)
		right *= f
		left *= f
		factor *= f
	}
	if math.Abs(left) > limit {
		f := limit / math.Abs(left)
		right *= f
		left *= f
		factor *= f
	}
	return right, left, factor
}

// Plan converts m into a command for each wheel.
//
// Each wheel travels Distance scaled by its share of the body speed, so a
// saturated motion takes longer but covers the requested path. Its
// acceleration is scaled by the saturated share so both wheels reach
// speed together. A rotation on the spot (zero Velocity) moves each wheel
// Distance along its own arc, in opposite directions.
func (g Geometry) Plan(m Motion) (Plan, error) {
	if err := g.Validate(); err != nil {
		return Plan{}, err
	}
	for _, v := range []float64{m.Velocity, m.Acceleration, m.AngularVelocity, m.Distance} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Plan{}, ErrOutOfRange
		}
	}
	if m.Velocity == 0 && m.AngularVelocity == 0 {
		return Plan{}, ErrNoMotion
	}

	vr, vl := g.WheelVelocities(m.Velocity, m.AngularVelocity)
	sr, sl, factor := g.Saturate(vr, vl)

	// share of the body motion each wheel carries, after the limiter
	var ratioR, ratioL, accelR, accelL float64
	if m.Velocity != 0 {
		ratioR, ratioL = sr/m.Velocity, sl/m.Velocity
		accelR, accelL = m.Acceleration*math.Abs(ratioR), m.Acceleration*math.Abs(ratioL)
	} else {
		ratioR, ratioL = sign(sr), sign(sl)
		accelR, accelL = m.Acceleration*factor, m.Acceleration*factor
	}

	right, err := g.wheel(sr, accelR, m.Distance*math.Abs(ratioR))
	if err != nil {
		return Plan{}, err
	}
	left, err := g.wheel(sl, accelL, m.Distance*math.Abs(ratioL))
	if err != nil {
		return Plan{}, err
	}

	p := Plan{
		Right:         right,
		Left:          left,
		RightVelocity: sr,
		LeftVelocity:  sl,
		Limiter:       factor,
	}
	if m.AngularVelocity != 0 {
		p.Radius = m.Velocity / (2 * math.Pi * m.AngularVelocity)
	}
	return p, nil
}

// wheel converts one wheel's speed, acceleration and travel to the step
// domain. Direction comes from the speed; a negative distance reverses it.
func (g Geometry) wheel(velocity, accel, distance float64) (WheelCommand, error) {
	spm := g.StepsPerMeter()
	steps := math.Round(math.Abs(distance) * spm)
	if steps > math.MaxInt32 {
		return WheelCommand{}, ErrOutOfRange
	}
	n := int32(steps)
	if velocity < 0 {
		n = -n
	}
	if distance < 0 {
		n = -n
	}
	return WheelCommand{
		Velocity:     float32(math.Abs(velocity) * spm),
		Acceleration: float32(math.Abs(accel) * spm),
		Steps:        n,
	}, nil
}

// sign treats zero as positive
func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
