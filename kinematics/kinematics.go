package kinematics

import "errors"

var (
	// ErrNoMotion is returned for a request with neither linear nor
	// angular velocity.
	ErrNoMotion = errors.New("no motion requested")

	// ErrBadGeometry is returned when a geometry value is not positive.
	ErrBadGeometry = errors.New("invalid platform geometry")

	// ErrOutOfRange is returned when a request is not finite or a wheel
	// would need more steps than a command can carry.
	ErrOutOfRange = errors.New("motion out of range")
)

// Kinematics maps body-frame motions onto wheel step commands
type Kinematics interface {
	// Plan converts a motion request into one command per wheel
	Plan(m Motion) (Plan, error)

	// MaxVelocity returns the fastest a wheel may move, in m/s
	MaxVelocity() float64
}

// Motion is a body-frame motion request.
type Motion struct {
	Velocity        float64 // m/s along the heading
	Acceleration    float64 // m/s^2
	AngularVelocity float64 // rev/s, positive turns left
	Distance        float64 // m travelled by the body centre, 0 runs until stopped
}

// WheelCommand is what one axis is told to do, in the step domain. The
// sign of Steps is the direction of travel; Velocity and Acceleration are
// magnitudes.
type WheelCommand struct {
	Velocity     float32 // steps/s
	Acceleration float32 // steps/s^2
	Steps        int32
}

// Plan is the outcome of planning one motion.
type Plan struct {
	Right, Left WheelCommand

	// Wheel surface speeds after saturation, m/s
	RightVelocity, LeftVelocity float64

	// Factor applied to both wheel speeds to respect the velocity limit,
	// 1 when no limit was hit.
	Limiter float64

	// Turn radius of the body centre in m, 0 for straight lines and
	// rotation on the spot.
	Radius float64
}
