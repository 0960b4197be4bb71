package noise

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietProcess(seed int64) *Process {
	return New(seed, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
}

func TestWhiteGaussianStatistics(t *testing.T) {
	const variance = 0.81
	p := quietProcess(1)

	w, err := p.WhiteGaussian(100000, variance)
	require.NoError(t, err)
	require.Len(t, w, 100000)

	s := Summarize(w)
	assert.InEpsilon(t, variance, s.Variance, 0.05)
	assert.Less(t, math.Abs(s.Mean), 0.05*math.Sqrt(variance))
}

func TestRandomWalkScaling(t *testing.T) {
	const trials = 5000
	p := quietProcess(2)

	endVariance := func(steps int) float64 {
		ends := make([]float64, trials)
		for i := range ends {
			w, err := p.RandomWalk(steps, 1, 0, false)
			require.NoError(t, err)
			ends[i] = w[steps-1]
		}
		return Summarize(ends).Variance
	}

	ratio := endVariance(1000) / endVariance(10000)
	assert.InDelta(t, 1.0, ratio, 0.1)
}

func TestRandomWalkShape(t *testing.T) {
	p := quietProcess(3)

	w, err := p.RandomWalk(500, 0.3, 1.5, false)
	require.NoError(t, err)
	assert.Equal(t, 1.5, w[0])

	w, err = p.RandomWalk(500, 0.3, -2, true)
	require.NoError(t, err)
	for i := 1; i < len(w); i++ {
		if w[i] < w[i-1] {
			t.Fatalf("absolute-value walk decreased at %d: %f < %f", i, w[i], w[i-1])
		}
	}

	w, err = p.RandomWalk(0, 1, 0, false)
	require.NoError(t, err)
	assert.Empty(t, w)
}

func TestConstantBiasHold(t *testing.T) {
	p := quietProcess(4)

	w, err := p.ConstantBiasHold(100, 0.81)
	require.NoError(t, err)
	require.Len(t, w, 100)
	for _, v := range w {
		assert.Equal(t, w[0], v)
	}
}

func TestSeedReproducible(t *testing.T) {
	a, err := quietProcess(99).WhiteGaussian(50, 1)
	require.NoError(t, err)
	b, err := quietProcess(99).WhiteGaussian(50, 1)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestConfigurationErrors(t *testing.T) {
	p := quietProcess(5)

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{"white negative variance", func() error { _, err := p.WhiteGaussian(100, -1); return err }, ErrNegativeVariance},
		{"walk negative variance", func() error { _, err := p.RandomWalk(100, -0.1, 0, false); return err }, ErrNegativeVariance},
		{"hold negative variance", func() error { _, err := p.ConstantBiasHold(100, -2); return err }, ErrNegativeVariance},
		{"white negative steps", func() error { _, err := p.WhiteGaussian(-1, 1); return err }, ErrNegativeSteps},
		{"walk NaN variance", func() error { _, err := p.RandomWalk(100, math.NaN(), 0, false); return err }, ErrNegativeVariance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.run(), tt.want)
		})
	}
}

func TestShortSequenceWarns(t *testing.T) {
	var buf bytes.Buffer
	p := New(6, slog.New(slog.NewTextHandler(&buf, nil)))

	w, err := p.WhiteGaussian(10, 1)
	require.NoError(t, err)
	assert.Len(t, w, 10)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "steps=10")

	buf.Reset()
	_, err = p.WhiteGaussian(MinSteps, 1)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestRamp(t *testing.T) {
	w := Ramp(4, 0.5)
	assert.Equal(t, []float64{0, 0.5, 1, 1.5}, w)
	assert.Empty(t, Ramp(-3, 1))
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{1, 2, 3, 4})
	assert.Equal(t, 4, s.N)
	assert.InDelta(t, 2.5, s.Mean, 1e-12)
	assert.InDelta(t, 5.0/3, s.Variance, 1e-12)
	assert.Equal(t, Stats{}, Summarize(nil))
}
