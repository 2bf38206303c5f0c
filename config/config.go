package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"woebot/core"
	"woebot/kinematics"
)

// AxisConfig describes the outputs of one stepper axis
type AxisConfig struct {
	ID      core.AxisID `json:"id"`
	BasePin uint32      `json:"base_pin"` // first of four consecutive GPIOs on a microcontroller
	Pins    []string    `json:"pins"`     // four GPIO names on a Linux board, coil A first
	Invert  bool        `json:"invert"`   // swap the direction of the phase sequence
}

// ObstacleConfig configures the range sensor guard
type ObstacleConfig struct {
	Enabled     bool   `json:"enabled"`
	ThresholdMM uint16 `json:"threshold_mm"` // soft stop below this range
	PollMS      uint32 `json:"poll_ms"`
}

// RobotConfig is the complete robot description
type RobotConfig struct {
	ClockFrequency uint32              `json:"clock_frequency"` // step timer clock, Hz
	Geometry       kinematics.Geometry `json:"geometry"`
	RightAxis      core.AxisID         `json:"right_axis"`
	LeftAxis       core.AxisID         `json:"left_axis"`
	Axes           []AxisConfig        `json:"axes"`
	Obstacle       ObstacleConfig      `json:"obstacle"`
	Prompt         string              `json:"prompt"`
	Echo           bool                `json:"echo"` // echo typed characters, for raw serial terminals
	Debug          bool                `json:"debug"`
}

// Load reads and parses a JSON configuration file
func Load(path string) (*RobotConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes a JSON configuration, fills in defaults and validates it
func Parse(data []byte) (*RobotConfig, error) {
	var cfg RobotConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in missing values from the stock robot
func applyDefaults(cfg *RobotConfig) {
	def := Default()

	if cfg.ClockFrequency == 0 {
		cfg.ClockFrequency = def.ClockFrequency
	}

	// Geometry
	if cfg.Geometry.WheelBase == 0 {
		cfg.Geometry.WheelBase = def.Geometry.WheelBase
	}
	if cfg.Geometry.WheelDiameter == 0 {
		cfg.Geometry.WheelDiameter = def.Geometry.WheelDiameter
	}
	if cfg.Geometry.StepAngle == 0 {
		cfg.Geometry.StepAngle = def.Geometry.StepAngle
	}
	if cfg.Geometry.MaxStepRate == 0 {
		cfg.Geometry.MaxStepRate = def.Geometry.MaxStepRate
	}

	// Both wheel ids zero means neither was given
	if cfg.RightAxis == 0 && cfg.LeftAxis == 0 {
		cfg.RightAxis = def.RightAxis
		cfg.LeftAxis = def.LeftAxis
	}
	if len(cfg.Axes) == 0 {
		cfg.Axes = def.Axes
	}

	if cfg.Obstacle.ThresholdMM == 0 {
		cfg.Obstacle.ThresholdMM = def.Obstacle.ThresholdMM
	}
	if cfg.Obstacle.PollMS == 0 {
		cfg.Obstacle.PollMS = def.Obstacle.PollMS
	}
	if cfg.Prompt == "" {
		cfg.Prompt = def.Prompt
	}
}

// Validate checks the configuration for consistency
func (c *RobotConfig) Validate() error {
	if err := c.Geometry.Validate(); err != nil {
		return errors.Wrap(err, "geometry")
	}
	if !c.RightAxis.Valid() || !c.LeftAxis.Valid() {
		return errors.Wrap(core.ErrInvalidAxis, "wheel axis")
	}
	if c.RightAxis == c.LeftAxis {
		return errors.Errorf("right and left wheel share axis %d", c.RightAxis)
	}

	seen := make(map[core.AxisID]bool)
	for _, axis := range c.Axes {
		if !axis.ID.Valid() {
			return errors.Wrapf(core.ErrInvalidAxis, "axis %d", axis.ID)
		}
		if seen[axis.ID] {
			return errors.Errorf("axis %d configured twice", axis.ID)
		}
		seen[axis.ID] = true
		if len(axis.Pins) != 0 && len(axis.Pins) != 4 {
			return errors.Errorf("axis %d: need 4 pins, got %d", axis.ID, len(axis.Pins))
		}
	}
	if !seen[c.RightAxis] || !seen[c.LeftAxis] {
		return errors.Wrap(core.ErrAxisNotConfigured, "wheel axis")
	}
	return nil
}

// Axis returns the configuration of axis id
func (c *RobotConfig) Axis(id core.AxisID) (AxisConfig, bool) {
	for _, axis := range c.Axes {
		if axis.ID == id {
			return axis, true
		}
	}
	return AxisConfig{}, false
}

// Default returns the configuration of the stock robot
func Default() *RobotConfig {
	return &RobotConfig{
		ClockFrequency: core.DefaultClockFreq,
		Geometry:       kinematics.DefaultGeometry(),
		RightAxis:      0,
		LeftAxis:       1,
		Axes: []AxisConfig{
			{
				ID:      0,
				BasePin: 2,
				Pins:    []string{"GPIO5", "GPIO6", "GPIO13", "GPIO19"},
			},
			{
				ID:      1,
				BasePin: 6,
				Pins:    []string{"GPIO12", "GPIO16", "GPIO20", "GPIO21"},
				Invert:  true,
			},
		},
		Obstacle: ObstacleConfig{
			ThresholdMM: 150,
			PollMS:      50,
		},
		Prompt: "shell# ",
	}
}
