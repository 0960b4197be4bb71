// Package noise generates the scalar stochastic sequences that every sensor
// error model is built from.
//
// A Process owns its random source and is not safe for concurrent use; give
// each simulation run its own Process.
package noise

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
)

// MinSteps is the sequence length below which sample statistics are unreliable.
const MinSteps = 30

var (
	ErrNegativeVariance = errors.New("variance must be non-negative")
	ErrNegativeSteps    = errors.New("steps must be non-negative")
)

// Process draws noise sequences from a seeded source.
type Process struct {
	rng *rand.Rand
	log *slog.Logger
}

// New returns a Process seeded with seed. A nil logger uses slog.Default().
func New(seed int64, logger *slog.Logger) *Process {
	if logger == nil {
		logger = slog.Default()
	}
	return &Process{
		rng: rand.New(rand.NewSource(seed)),
		log: logger,
	}
}

func (p *Process) check(generator string, steps int, variance float64) error {
	if steps < 0 {
		return fmt.Errorf("%s: %d: %w", generator, steps, ErrNegativeSteps)
	}
	if variance < 0 || math.IsNaN(variance) {
		return fmt.Errorf("%s: %g: %w", generator, variance, ErrNegativeVariance)
	}
	if steps < MinSteps {
		p.log.Warn("short noise sequence, statistics may be unstable",
			"generator", generator, "steps", steps)
	}
	return nil
}

// WhiteGaussian returns steps independent draws from N(0, variance).
func (p *Process) WhiteGaussian(steps int, variance float64) ([]float64, error) {
	if err := p.check("whiteGaussian", steps, variance); err != nil {
		return nil, err
	}
	sd := math.Sqrt(variance)
	w := make([]float64, steps)
	for i := range w {
		w[i] = sd * p.rng.NormFloat64()
	}
	return w, nil
}

// RandomWalk returns a discretized Wiener path starting at initial, with
// increments drawn from N(0, variance) and scaled by 1/sqrt(steps) so that
// the variance of the total displacement does not depend on steps.
// With abs set every increment is taken as its absolute value.
func (p *Process) RandomWalk(steps int, variance, initial float64, abs bool) ([]float64, error) {
	if err := p.check("randomWalk", steps, variance); err != nil {
		return nil, err
	}
	w := make([]float64, steps)
	if steps == 0 {
		return w, nil
	}
	sd := math.Sqrt(variance)
	scale := 1 / math.Sqrt(float64(steps))
	w[0] = initial
	for i := 1; i < steps; i++ {
		s := sd * p.rng.NormFloat64()
		if abs {
			s = math.Abs(s)
		}
		w[i] = w[i-1] + s*scale
	}
	return w, nil
}

// ConstantBiasHold draws a single sample from N(0, variance) and repeats it
// steps times.
func (p *Process) ConstantBiasHold(steps int, variance float64) ([]float64, error) {
	if err := p.check("constantBiasHold", steps, variance); err != nil {
		return nil, err
	}
	v := math.Sqrt(variance) * p.rng.NormFloat64()
	w := make([]float64, steps)
	for i := range w {
		w[i] = v
	}
	return w, nil
}

// Normal returns one draw from N(0, 1).
func (p *Process) Normal() float64 {
	return p.rng.NormFloat64()
}

// Ramp returns the deterministic sequence 0, step, 2*step, ...
func Ramp(steps int, step float64) []float64 {
	if steps < 0 {
		steps = 0
	}
	w := make([]float64, steps)
	for i := 1; i < steps; i++ {
		w[i] = w[i-1] + step
	}
	return w
}
