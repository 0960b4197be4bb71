package sim

import (
	"fmt"
	"math"

	"github.com/HRadak/GDOrientationPerformanceAnalysis/noise"
)

// Params is the immutable configuration of one simulation run.
type Params struct {
	Samples  int
	Interval float64 // s
	Profile  Profile
	Gyro     GyroModel
	Accel    SensorModel
	Mag      SensorModel
}

// Validate checks every parameter before anything is generated.
func (p Params) Validate() error {
	if p.Samples < 2 {
		return fmt.Errorf("%d samples: %w", p.Samples, ErrTooShort)
	}
	if !(p.Interval > 0) || math.IsInf(p.Interval, 0) {
		return fmt.Errorf("%g: %w", p.Interval, ErrBadInterval)
	}
	if err := p.Profile.Validate(); err != nil {
		return err
	}
	if err := p.Gyro.validate(); err != nil {
		return err
	}
	if err := p.Accel.validate("accel"); err != nil {
		return err
	}
	return p.Mag.validate("mag")
}

// Measurements is everything a run produces.
type Measurements struct {
	Trajectory *Trajectory
	Gyro       Channel
	Accel      Channel
	Mag        Channel
}

// Len returns the number of samples in every series.
func (m *Measurements) Len() int {
	return m.Trajectory.Len()
}

// Run generates the attitude profile, integrates it and synthesizes all
// three sensors, drawing every random number from proc.
func Run(p Params, proc *noise.Process) (*Measurements, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	abs, err := p.Profile.Generate(p.Samples, proc)
	if err != nil {
		return nil, fmt.Errorf("generating profile: %w", err)
	}
	t, err := NewTrajectory(abs, p.Interval)
	if err != nil {
		return nil, fmt.Errorf("building trajectory: %w", err)
	}
	return Synthesize(p, t, proc)
}

// Synthesize produces the sensor channels for an existing trajectory.
func Synthesize(p Params, t *Trajectory, proc *noise.Process) (*Measurements, error) {
	m := &Measurements{Trajectory: t}
	var err error
	if m.Gyro, err = p.Gyro.Synthesize(t, proc); err != nil {
		return nil, fmt.Errorf("gyro: %w", err)
	}
	if m.Accel, err = p.Accel.Synthesize(t, proc); err != nil {
		return nil, fmt.Errorf("accel: %w", err)
	}
	if m.Mag, err = p.Mag.Synthesize(t, proc); err != nil {
		return nil, fmt.Errorf("mag: %w", err)
	}
	return m, nil
}
