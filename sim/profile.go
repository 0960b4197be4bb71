package sim

import (
	"fmt"
	"math"

	"github.com/HRadak/GDOrientationPerformanceAnalysis/noise"
	"github.com/HRadak/GDOrientationPerformanceAnalysis/orientation"
)

// Mode selects how the absolute attitude profile is generated.
type Mode string

const (
	ModeStatic     Mode = "static"
	ModeSteady     Mode = "steady"
	ModeBrownian   Mode = "brownian"
	ModeSinusoidal Mode = "sinusoidal"
	ModeRamp       Mode = "ramp"
)

// Modes lists every supported profile mode.
var Modes = []Mode{ModeStatic, ModeSteady, ModeBrownian, ModeSinusoidal, ModeRamp}

// Axis names one Euler angle of the profile.
type Axis string

const (
	Roll  Axis = "roll"
	Pitch Axis = "pitch"
	Yaw   Axis = "yaw"
)

// Profile describes the absolute attitude profile of a run.
type Profile struct {
	Mode Mode
	// Variance of the draws for steady and brownian modes.
	Variance float64
	// SteadySamples is the length of the no-motion prefix in brownian mode.
	SteadySamples int
	// Amplitude of the sinusoidal segments, rad.
	Amplitude float64
	// Step per sample in ramp mode, rad.
	Step float64
	// Axes that move; the others stay at zero. Empty means all three.
	Axes []Axis
	// AbsoluteValue makes brownian increments non-negative.
	AbsoluteValue bool
}

// Validate reports whether the profile can be generated.
func (p Profile) Validate() error {
	switch p.Mode {
	case ModeStatic, ModeSteady, ModeBrownian, ModeSinusoidal, ModeRamp:
	default:
		return fmt.Errorf("unknown profile mode %q: %w", p.Mode, ErrInvalidParams)
	}
	if p.Variance < 0 || math.IsNaN(p.Variance) {
		return fmt.Errorf("profile variance %g: %w", p.Variance, noise.ErrNegativeVariance)
	}
	if p.SteadySamples < 0 {
		return fmt.Errorf("steady samples %d: %w", p.SteadySamples, ErrInvalidParams)
	}
	for _, a := range p.Axes {
		switch a {
		case Roll, Pitch, Yaw:
		default:
			return fmt.Errorf("unknown axis %q: %w", a, ErrInvalidParams)
		}
	}
	return nil
}

func (p Profile) moves(a Axis) bool {
	if len(p.Axes) == 0 {
		return true
	}
	for _, b := range p.Axes {
		if a == b {
			return true
		}
	}
	return false
}

// Generate returns n absolute attitudes following the profile.
func (p Profile) Generate(n int, proc *noise.Process) ([]orientation.EulerAngles, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if n < 2 {
		return nil, fmt.Errorf("%d samples: %w", n, ErrTooShort)
	}

	var axes [3][]float64
	for i, a := range []Axis{Roll, Pitch, Yaw} {
		if !p.moves(a) {
			axes[i] = make([]float64, n)
			continue
		}
		w, err := p.axis(n, proc)
		if err != nil {
			return nil, fmt.Errorf("%s profile: %w", a, err)
		}
		axes[i] = w
	}

	e := make([]orientation.EulerAngles, n)
	for i := range e {
		e[i] = orientation.EulerAngles{Roll: axes[0][i], Pitch: axes[1][i], Yaw: axes[2][i]}
	}
	return e, nil
}

func (p Profile) axis(n int, proc *noise.Process) ([]float64, error) {
	switch p.Mode {
	case ModeSteady:
		return steady(n, p.Variance, proc)
	case ModeBrownian:
		return p.brownian(n, proc)
	case ModeSinusoidal:
		return sinusoid(n, p.Amplitude), nil
	case ModeRamp:
		return noise.Ramp(n, p.Step), nil
	default:
		return make([]float64, n), nil
	}
}

// steady starts at zero and steps once into a random attitude that it then
// holds, so the body is rotated for every sample after the first.
func steady(n int, variance float64, proc *noise.Process) ([]float64, error) {
	hold, err := proc.ConstantBiasHold(n-1, variance)
	if err != nil {
		return nil, err
	}
	return append([]float64{0}, hold...), nil
}

// brownian holds zero for the steady prefix, then walks from there.
func (p Profile) brownian(n int, proc *noise.Process) ([]float64, error) {
	steady := p.SteadySamples
	if steady > n {
		steady = n
	}
	w := make([]float64, steady, n)
	walk, err := proc.RandomWalk(n-steady, p.Variance, 0, p.AbsoluteValue)
	if err != nil {
		return nil, err
	}
	return append(w, walk...), nil
}

// sinusoid is a half wave over the first 30% of the samples, rest for 40%,
// then two full waves over the last 30%.
func sinusoid(n int, amplitude float64) []float64 {
	n1 := 3 * n / 10
	n3 := 3 * n / 10
	n2 := n - n1 - n3

	w := make([]float64, 0, n)
	for _, x := range linspace(0, math.Pi, n1) {
		w = append(w, amplitude*math.Sin(x))
	}
	w = append(w, make([]float64, n2)...)
	for _, x := range linspace(-math.Pi, 3*math.Pi, n3) {
		w = append(w, amplitude*math.Sin(x))
	}
	return w
}

// linspace returns num evenly spaced points over [a, b], endpoints included.
func linspace(a, b float64, num int) []float64 {
	if num <= 0 {
		return nil
	}
	x := make([]float64, num)
	if num == 1 {
		x[0] = a
		return x
	}
	d := (b - a) / float64(num-1)
	for i := range x {
		x[i] = a + float64(i)*d
	}
	return x
}
