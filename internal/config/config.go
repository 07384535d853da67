// Package config handles coverbot configuration loading and management.
package config

// Config holds all coverbot settings.
type Config struct {
	Planner PlannerConfig `yaml:"planner"`
	IK      IKConfig      `yaml:"ik"`
	Mover   MoverConfig   `yaml:"mover"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// PlannerConfig holds coverage planning settings.
type PlannerConfig struct {
	Density          float64    `yaml:"density"`
	Offset           float64    `yaml:"offset"`
	Strategy         string     `yaml:"strategy"` // boustrophedon or greedy
	PlanarEpsilon    float64    `yaml:"planar_epsilon"`
	DegenerateNormal string     `yaml:"degenerate_normal"` // drop, zero_offset or fallback
	FallbackNormal   [3]float64 `yaml:"fallback_normal,flow"`
}

// IKConfig holds solver settings and the chain to solve for.
type IKConfig struct {
	Threshold    float64       `yaml:"threshold"`
	LearningRate float64       `yaml:"learning_rate"`
	MaxSteps     int           `yaml:"max_steps"`
	DeltaTheta   float64       `yaml:"delta_theta"`
	Symmetric    bool          `yaml:"symmetric"`
	Chain        []JointConfig `yaml:"chain"`
	Tip          [3]float64    `yaml:"tip,flow"`
}

// JointConfig describes one joint, root first. Angles are in radians.
type JointConfig struct {
	Name   string     `yaml:"name"`
	Axis   [3]float64 `yaml:"axis,flow"`
	Offset [3]float64 `yaml:"offset,flow"`
	Angle  float64    `yaml:"angle,omitempty"`
	Min    *float64   `yaml:"min,omitempty"`
	Max    *float64   `yaml:"max,omitempty"`
}

// MoverConfig holds path following settings.
type MoverConfig struct {
	Speed            float64 `yaml:"speed"`
	ArrivalThreshold float64 `yaml:"arrival_threshold"`
	ReturnHome       bool    `yaml:"return_home"`
}

// ExportConfig holds G-code output settings.
type ExportConfig struct {
	FeedRate     float64 `yaml:"feed_rate"`
	Precision    int     `yaml:"precision"`
	SerialDevice string  `yaml:"serial_device"`
	Baud         int     `yaml:"baud"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Planner: PlannerConfig{
			Density:          0.1,
			Offset:           0.1,
			Strategy:         "greedy",
			PlanarEpsilon:    0.1,
			DegenerateNormal: "zero_offset",
			FallbackNormal:   [3]float64{0, 1, 0},
		},
		IK: IKConfig{
			Threshold:    0.05,
			LearningRate: 0.05,
			MaxSteps:     20,
			DeltaTheta:   0.001,
			Symmetric:    false,
			Chain: []JointConfig{
				{Name: "base", Axis: [3]float64{0, 0, 1}},
				{Name: "shoulder", Axis: [3]float64{0, 1, 0}, Offset: [3]float64{0, 0, 0.5}},
				{Name: "elbow", Axis: [3]float64{0, 1, 0}, Offset: [3]float64{0.5, 0, 0}},
			},
			Tip: [3]float64{0.5, 0, 0},
		},
		Mover: MoverConfig{
			Speed:            5,
			ArrivalThreshold: 0.1,
			ReturnHome:       true,
		},
		Export: ExportConfig{
			FeedRate:  1200,
			Precision: 4,
			Baud:      115200,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
