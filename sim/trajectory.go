// Package sim generates reference attitude trajectories and synthesizes the
// gyroscope, accelerometer and magnetometer signals an IMU would report
// while following them.
package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/HRadak/GDOrientationPerformanceAnalysis/orientation"
)

var (
	ErrTooShort      = errors.New("trajectory needs at least two samples")
	ErrBadInterval   = errors.New("sampling interval must be positive and finite")
	ErrInvalidParams = errors.New("invalid simulation parameters")
)

// Trajectory is a reference attitude sampled at a fixed interval.
// Relative[i] is the step from sample i to i+1; the last slot has no
// successor and stays zero.
type Trajectory struct {
	Dt          float64
	Absolute    []orientation.EulerAngles
	Relative    []orientation.EulerAngles
	Quaternions []orientation.Quaternion
	Rates       []orientation.Vector // rad/s, the true gyro signal
}

// NewTrajectory differences an absolute attitude profile and integrates it
// into quaternions starting from the identity.
func NewTrajectory(absolute []orientation.EulerAngles, dt float64) (*Trajectory, error) {
	n := len(absolute)
	if n < 2 {
		return nil, fmt.Errorf("%d samples: %w", n, ErrTooShort)
	}
	rel := make([]orientation.EulerAngles, n)
	for i := 0; i < n-1; i++ {
		rel[i] = absolute[i+1].Sub(absolute[i])
	}
	abs := make([]orientation.EulerAngles, n)
	copy(abs, absolute)
	return build(abs, rel, dt)
}

// TrajectoryFromRelative builds a trajectory of len(rel)+1 samples whose
// absolute attitude is the running sum of rel.
func TrajectoryFromRelative(rel []orientation.EulerAngles, dt float64) (*Trajectory, error) {
	n := len(rel) + 1
	if n < 2 {
		return nil, fmt.Errorf("%d samples: %w", n, ErrTooShort)
	}
	abs := make([]orientation.EulerAngles, n)
	r := make([]orientation.EulerAngles, n)
	copy(r, rel)
	for i := 0; i < n-1; i++ {
		abs[i+1] = orientation.EulerAngles{
			Roll:  abs[i].Roll + rel[i].Roll,
			Pitch: abs[i].Pitch + rel[i].Pitch,
			Yaw:   abs[i].Yaw + rel[i].Yaw,
		}
	}
	return build(abs, r, dt)
}

func build(abs, rel []orientation.EulerAngles, dt float64) (*Trajectory, error) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("%g: %w", dt, ErrBadInterval)
	}
	n := len(abs)
	t := &Trajectory{
		Dt:          dt,
		Absolute:    abs,
		Relative:    rel,
		Quaternions: make([]orientation.Quaternion, n),
		Rates:       make([]orientation.Vector, n),
	}
	for i := range rel {
		t.Rates[i] = rel[i].Scale(1 / dt).Vector()
	}

	t.Quaternions[0] = orientation.Identity
	for i := 0; i < n-1; i++ {
		q, err := orientation.Normalize(orientation.Multiply(rel[i].Quaternion(), t.Quaternions[i]))
		if err != nil {
			return nil, fmt.Errorf("propagating step %d: %w", i, err)
		}
		t.Quaternions[i+1] = q
	}
	return t, nil
}

// Len returns the number of samples.
func (t *Trajectory) Len() int {
	return len(t.Quaternions)
}

// Euler recovers the attitude of every sample from its quaternion.
func (t *Trajectory) Euler() []orientation.EulerAngles {
	e := make([]orientation.EulerAngles, len(t.Quaternions))
	for i, q := range t.Quaternions {
		e[i] = orientation.EulerOf(q)
	}
	return e
}

// MaxNormError returns the largest deviation of a quaternion norm from one.
func (t *Trajectory) MaxNormError() float64 {
	var m float64
	for _, q := range t.Quaternions {
		m = math.Max(m, math.Abs(orientation.Norm(q)-1))
	}
	return m
}

// IntegrateRates propagates body rates with the first-order kinematic update
// q[i+1] = normalize(q[i] + ½(ω̃[i] ⊗ q[i])Δt), starting from the identity.
func IntegrateRates(rates []orientation.Vector, dt float64) ([]orientation.Quaternion, error) {
	if len(rates) == 0 {
		return nil, nil
	}
	q := make([]orientation.Quaternion, len(rates))
	q[0] = orientation.Identity
	for i := 0; i < len(rates)-1; i++ {
		dq := orientation.Scale(orientation.Multiply(rates[i].Pure(), q[i]), 0.5*dt)
		next, err := orientation.Normalize(orientation.Add(q[i], dq))
		if err != nil {
			return nil, fmt.Errorf("integrating step %d: %w", i, err)
		}
		q[i+1] = next
	}
	return q, nil
}

// FirstOrderDeviation integrates the trajectory's rates with IntegrateRates
// and returns the largest component difference from the exact quaternions.
func (t *Trajectory) FirstOrderDeviation() (float64, error) {
	q, err := IntegrateRates(t.Rates, t.Dt)
	if err != nil {
		return 0, err
	}
	var m float64
	for i := range q {
		a, b := q[i], t.Quaternions[i]
		m = math.Max(m, math.Max(
			math.Max(math.Abs(a.W-b.W), math.Abs(a.X-b.X)),
			math.Max(math.Abs(a.Y-b.Y), math.Abs(a.Z-b.Z))))
	}
	return m, nil
}
