package sim

import (
	"fmt"
	"math"

	"github.com/skelterjohn/go.matrix"

	"github.com/HRadak/GDOrientationPerformanceAnalysis/noise"
	"github.com/HRadak/GDOrientationPerformanceAnalysis/orientation"
)

// SensorModel describes a sensor that observes a fixed world-frame field,
// such as gravity for the accelerometer or the earth field for the magnetometer.
type SensorModel struct {
	Reference        orientation.Vector  // world-frame direction of the field
	Scale            float64             // field magnitude in output units
	Misalignment     *matrix.DenseMatrix // scale and cross-axis coupling, 3x3; nil is identity
	Bias             orientation.Vector
	BiasWalkVariance [3]float64 // random-walk bias component per axis, 0 for a constant bias
	NoiseVariance    [3]float64
}

// GyroModel describes the gyroscope. RateNoise and BiasNoise are the white
// rate noise and bias random-walk intensities of the rate-random-walk model;
// they enter the model squared.
type GyroModel struct {
	Misalignment *matrix.DenseMatrix
	Bias         orientation.Vector
	RateNoise    [3]float64
	BiasNoise    [3]float64
}

// Channel holds the noise-free and the measured signal of one sensor.
type Channel struct {
	Ideal    []orientation.Vector
	Measured []orientation.Vector
}

func (m SensorModel) validate(name string) error {
	if err := checkMatrix(m.Misalignment); err != nil {
		return fmt.Errorf("%s misalignment: %w", name, err)
	}
	if m.Reference.Norm() == 0 {
		return fmt.Errorf("%s reference vector is zero: %w", name, ErrInvalidParams)
	}
	if !(m.Scale > 0) {
		return fmt.Errorf("%s scale %g: %w", name, m.Scale, ErrInvalidParams)
	}
	if err := checkVariances(m.NoiseVariance); err != nil {
		return fmt.Errorf("%s noise: %w", name, err)
	}
	if err := checkVariances(m.BiasWalkVariance); err != nil {
		return fmt.Errorf("%s bias walk: %w", name, err)
	}
	return nil
}

func (g GyroModel) validate() error {
	if err := checkMatrix(g.Misalignment); err != nil {
		return fmt.Errorf("gyro misalignment: %w", err)
	}
	if err := checkVariances(g.RateNoise); err != nil {
		return fmt.Errorf("gyro rate noise: %w", err)
	}
	if err := checkVariances(g.BiasNoise); err != nil {
		return fmt.Errorf("gyro bias noise: %w", err)
	}
	return nil
}

func checkMatrix(m *matrix.DenseMatrix) error {
	if m == nil {
		return nil
	}
	if m.Rows() != 3 || m.Cols() != 3 {
		return fmt.Errorf("need 3x3, got %dx%d: %w", m.Rows(), m.Cols(), ErrInvalidParams)
	}
	return nil
}

func checkVariances(v [3]float64) error {
	for _, x := range v {
		if x < 0 || math.IsNaN(x) {
			return fmt.Errorf("%g: %w", x, noise.ErrNegativeVariance)
		}
	}
	return nil
}

func orIdentity(m *matrix.DenseMatrix) *matrix.DenseMatrix {
	if m == nil {
		return matrix.Eye(3)
	}
	return m
}

// Synthesize rotates the reference field into the body frame along the
// trajectory and injects misalignment, bias and white noise.
func (m SensorModel) Synthesize(t *Trajectory, proc *noise.Process) (Channel, error) {
	n := t.Len()
	M := orIdentity(m.Misalignment)

	var white, walk [3][]float64
	for j := 0; j < 3; j++ {
		var err error
		if white[j], err = proc.WhiteGaussian(n, m.NoiseVariance[j]); err != nil {
			return Channel{}, err
		}
		if m.BiasWalkVariance[j] > 0 {
			if walk[j], err = proc.RandomWalk(n, m.BiasWalkVariance[j], 0, false); err != nil {
				return Channel{}, err
			}
		} else {
			walk[j] = make([]float64, n)
		}
	}

	c := Channel{
		Ideal:    make([]orientation.Vector, n),
		Measured: make([]orientation.Vector, n),
	}
	for i, q := range t.Quaternions {
		// World to body is the inverse of the body attitude.
		ideal := orientation.RotateVector(orientation.Conjugate(q), m.Reference).Scale(m.Scale)
		c.Ideal[i] = ideal
		c.Measured[i] = orientation.Apply(M, ideal).
			Add(m.Bias).
			Add(orientation.Vector{X: walk[0][i], Y: walk[1][i], Z: walk[2][i]}).
			Add(orientation.Vector{X: white[0][i], Y: white[1][i], Z: white[2][i]})
	}
	return c, nil
}

// Synthesize returns the true rates as the ideal signal and the measured rates
// with misalignment, constant bias, a trapezoidal random-walk bias and the
// rate-random-walk noise term.
func (g GyroModel) Synthesize(t *Trajectory, proc *noise.Process) (Channel, error) {
	n := t.Len()
	M := orIdentity(g.Misalignment)
	sqdt := math.Sqrt(t.Dt)

	var drift, jitter [3][]float64
	for j := 0; j < 3; j++ {
		su, sv := g.BiasNoise[j], g.RateNoise[j]
		drift[j] = make([]float64, n)
		for i := 0; i < n-1; i++ {
			drift[j][i+1] = drift[j][i] + su*sqdt*proc.Normal()
		}
		sd := math.Sqrt(su*su/t.Dt + sv*sv*t.Dt/12)
		jitter[j] = make([]float64, n)
		for i := range jitter[j] {
			jitter[j][i] = sd * proc.Normal()
		}
	}

	c := Channel{
		Ideal:    make([]orientation.Vector, n),
		Measured: make([]orientation.Vector, n),
	}
	copy(c.Ideal, t.Rates)
	for i, w := range t.Rates {
		var b orientation.Vector
		if i == 0 {
			b = orientation.Vector{X: drift[0][0], Y: drift[1][0], Z: drift[2][0]}
		} else {
			b = orientation.Vector{
				X: 0.5 * (drift[0][i] + drift[0][i-1]),
				Y: 0.5 * (drift[1][i] + drift[1][i-1]),
				Z: 0.5 * (drift[2][i] + drift[2][i-1]),
			}
		}
		c.Measured[i] = orientation.Apply(M, w).
			Add(b).
			Add(g.Bias).
			Add(orientation.Vector{X: jitter[0][i], Y: jitter[1][i], Z: jitter[2][i]})
	}
	return c, nil
}
