// Package config loads the parameters of a simulation batch from YAML.
// Defaults reproduce the reference data set used by the estimator tooling.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/skelterjohn/go.matrix"
	"gopkg.in/yaml.v3"

	"github.com/HRadak/GDOrientationPerformanceAnalysis/logging"
	"github.com/HRadak/GDOrientationPerformanceAnalysis/magnetometer"
	"github.com/HRadak/GDOrientationPerformanceAnalysis/orientation"
	"github.com/HRadak/GDOrientationPerformanceAnalysis/sim"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds everything needed to run and persist a batch of simulations.
type Config struct {
	// Samples is the run length N.
	Samples int `yaml:"samples"`
	// SamplingInterval is Δt in seconds.
	SamplingInterval float64 `yaml:"sampling_interval"`
	// Seed of the first run; run i uses Seed+i. Zero picks a time-based seed.
	Seed int64 `yaml:"seed"`

	Trajectory TrajectoryConfig `yaml:"trajectory"`
	Gyro       GyroConfig       `yaml:"gyro"`
	Accel      SensorConfig     `yaml:"accel"`
	Mag        MagConfig        `yaml:"mag"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// TrajectoryConfig selects and tunes the attitude profile.
type TrajectoryConfig struct {
	// Mode is one of static, steady, brownian, sinusoidal, ramp.
	Mode          string   `yaml:"mode"`
	Variance      float64  `yaml:"variance"`
	SteadySamples int      `yaml:"steady_samples"`
	Amplitude     float64  `yaml:"amplitude"`
	Step          float64  `yaml:"step"`
	Axes          []string `yaml:"axes"`
	AbsoluteValue bool     `yaml:"absolute_value"`
}

// GyroConfig holds the gyroscope error model. NoiseVariance and BiasVariance
// are the rate noise and bias random-walk parameters of the rate-random-walk
// model.
type GyroConfig struct {
	NoiseVariance [3]float64    `yaml:"noise_variance"`
	BiasVariance  [3]float64    `yaml:"bias_variance"`
	Bias          [3]float64    `yaml:"bias"`
	Misalignment  [3][3]float64 `yaml:"misalignment"`
}

// SensorConfig holds the error model of a field sensor.
type SensorConfig struct {
	NoiseVariance    [3]float64    `yaml:"noise_variance"`
	Bias             [3]float64    `yaml:"bias"`
	BiasWalkVariance [3]float64    `yaml:"bias_walk_variance"`
	Misalignment     [3][3]float64 `yaml:"misalignment"`
	Scale            float64       `yaml:"scale"`
	Reference        [3]float64    `yaml:"reference"`
}

// MagConfig derives the reference field from inclination and declination.
type MagConfig struct {
	SensorConfig   `yaml:",inline"`
	InclinationDeg float64 `yaml:"inclination_deg"`
	DeclinationDeg float64 `yaml:"declination_deg"`
}

// OutputConfig controls where runs are written and how they are labelled.
type OutputConfig struct {
	Dir        string `yaml:"dir"`
	ModeLabel  string `yaml:"mode_label"`
	DataSource string `yaml:"data_source"`
}

// LoggingConfig sets the log verbosity: "trace", "debug", "info" (default) or "warn".
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Misalignment is the default scale and cross-axis matrix shared by all sensors.
var Misalignment = [3][3]float64{
	{0.98, 0.003, 0.003},
	{0.003, 0.97, 0.003},
	{0.003, 0.003, 1.02},
}

// Default returns the reference configuration.
func Default() *Config {
	return &Config{
		Samples:          10000,
		SamplingInterval: 0.01,
		Trajectory: TrajectoryConfig{
			Mode:      string(sim.ModeSteady),
			Variance:  0.81,
			Amplitude: 1,
			Step:      0.005,
			Axes:      []string{"roll", "pitch", "yaw"},
		},
		Gyro: GyroConfig{
			NoiseVariance: [3]float64{0.004803871527954, 0.00099743344257, 0.003393434907676},
			BiasVariance:  [3]float64{0.005, 0.005, 0.005},
			Misalignment:  Misalignment,
		},
		Accel: SensorConfig{
			NoiseVariance: [3]float64{0.060752930685806, 0.010105633537792, 0.052844574242773},
			Bias:          [3]float64{0.1, -0.05, -0.13},
			Misalignment:  Misalignment,
			Scale:         9.81,
			Reference:     [3]float64{0, 0, -1},
		},
		Mag: MagConfig{
			SensorConfig: SensorConfig{
				NoiseVariance: [3]float64{0.248161184191773, 0.948849794812692, 0.574174198795116},
				Bias:          [3]float64{22, 12, 23},
				Misalignment:  Misalignment,
				Scale:         magnetometer.DefaultFieldStrength,
			},
			InclinationDeg: magnetometer.DefaultInclination,
			DeclinationDeg: magnetometer.DefaultDeclination,
		},
		Output: OutputConfig{
			Dir:        "SyntheticData",
			ModeLabel:  "steady",
			DataSource: "SyntheticData",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromFile overlays the YAML document at path on Default().
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return c, nil
}

// Load returns Default(), or the file at path when path is not empty, with
// environment overrides applied.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		var err error
		if c, err = LoadFromFile(path); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}
	if err := applyEnvOverrides(c); err != nil {
		return nil, err
	}
	return c, nil
}

// applyEnvOverrides applies IMUSIM_* environment variables to the config.
func applyEnvOverrides(c *Config) error {
	if v := os.Getenv("IMUSIM_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("IMUSIM_SAMPLES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("IMUSIM_SAMPLES: %w", err)
		}
		c.Samples = n
	}
	if v := os.Getenv("IMUSIM_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("IMUSIM_SEED: %w", err)
		}
		c.Seed = n
	}
	return nil
}

// Validate checks the configuration and the simulation parameters it implies.
func (c *Config) Validate() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("%w: log level %q (valid: trace, debug, info, warn)", ErrInvalid, c.Logging.Level)
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("%w: output dir is empty", ErrInvalid)
	}
	if math.IsNaN(c.Mag.InclinationDeg) || math.IsNaN(c.Mag.DeclinationDeg) {
		return fmt.Errorf("%w: magnetic field angles must be numbers", ErrInvalid)
	}
	if math.Abs(c.Mag.InclinationDeg) > 90 {
		return fmt.Errorf("%w: magnetic inclination %g outside [-90, 90]", ErrInvalid, c.Mag.InclinationDeg)
	}
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Params converts the configuration into simulation parameters.
func (c *Config) Params() sim.Params {
	axes := make([]sim.Axis, len(c.Trajectory.Axes))
	for i, a := range c.Trajectory.Axes {
		axes[i] = sim.Axis(strings.ToLower(a))
	}
	return sim.Params{
		Samples:  c.Samples,
		Interval: c.SamplingInterval,
		Profile: sim.Profile{
			Mode:          sim.Mode(strings.ToLower(c.Trajectory.Mode)),
			Variance:      c.Trajectory.Variance,
			SteadySamples: c.Trajectory.SteadySamples,
			Amplitude:     c.Trajectory.Amplitude,
			Step:          c.Trajectory.Step,
			Axes:          axes,
			AbsoluteValue: c.Trajectory.AbsoluteValue,
		},
		Gyro: sim.GyroModel{
			Misalignment: toMatrix(c.Gyro.Misalignment),
			Bias:         orientation.VectorOf(c.Gyro.Bias),
			RateNoise:    c.Gyro.NoiseVariance,
			BiasNoise:    c.Gyro.BiasVariance,
		},
		Accel: c.Accel.model(orientation.VectorOf(c.Accel.Reference)),
		Mag:   c.Mag.model(c.Mag.reference()),
	}
}

func (s SensorConfig) model(ref orientation.Vector) sim.SensorModel {
	return sim.SensorModel{
		Reference:        ref,
		Scale:            s.Scale,
		Misalignment:     toMatrix(s.Misalignment),
		Bias:             orientation.VectorOf(s.Bias),
		BiasWalkVariance: s.BiasWalkVariance,
		NoiseVariance:    s.NoiseVariance,
	}
}

// reference uses an explicit reference vector when given, else the field
// direction from inclination and declination.
func (m MagConfig) reference() orientation.Vector {
	if r := orientation.VectorOf(m.Reference); r.Norm() > 0 {
		return r
	}
	return magnetometer.Reference(m.InclinationDeg, m.DeclinationDeg)
}

func toMatrix(a [3][3]float64) *matrix.DenseMatrix {
	return matrix.MakeDenseMatrix([]float64{
		a[0][0], a[0][1], a[0][2],
		a[1][0], a[1][1], a[1][2],
		a[2][0], a[2][1], a[2][2],
	}, 3, 3)
}
