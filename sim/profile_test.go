package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HRadak/GDOrientationPerformanceAnalysis/orientation"
)

func TestSinusoidSegments(t *testing.T) {
	w := sinusoid(1000, 2)
	require.Len(t, w, 1000)

	assert.InDelta(t, 0, w[0], 1e-12)
	assert.InDelta(t, 2, w[150], 0.01)
	for i := 300; i < 700; i++ {
		require.Zero(t, w[i])
	}
	assert.InDelta(t, 0, w[999], 1e-12)
	for _, v := range w {
		require.LessOrEqual(t, math.Abs(v), 2.0)
	}
}

func TestLinspace(t *testing.T) {
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, linspace(0, 1, 5))
	assert.Equal(t, []float64{3}, linspace(3, 7, 1))
	assert.Nil(t, linspace(0, 1, 0))
}

func TestProfileAxes(t *testing.T) {
	p := Profile{Mode: ModeRamp, Step: 0.01, Axes: []Axis{Pitch}}
	e, err := p.Generate(100, newProc(20))
	require.NoError(t, err)

	for i, a := range e {
		require.Zero(t, a.Roll)
		require.Zero(t, a.Yaw)
		require.InDelta(t, 0.01*float64(i), a.Pitch, 1e-12)
	}
}

func TestBrownianSteadyPrefix(t *testing.T) {
	p := Profile{Mode: ModeBrownian, Variance: 0.3, SteadySamples: 200}
	e, err := p.Generate(1000, newProc(21))
	require.NoError(t, err)
	require.Len(t, e, 1000)

	for i := 0; i < 201; i++ {
		require.Zero(t, e[i].Roll)
	}
	assert.NotZero(t, e[999].Roll)
}

func TestSteadyHold(t *testing.T) {
	p := Profile{Mode: ModeSteady, Variance: 0.81}
	e, err := p.Generate(100, newProc(22))
	require.NoError(t, err)

	assert.Equal(t, orientation.EulerAngles{}, e[0])
	assert.NotEqual(t, orientation.EulerAngles{}, e[1])
	for _, a := range e[1:] {
		require.Equal(t, e[1], a)
	}
}

func TestStatic(t *testing.T) {
	e, err := Profile{Mode: ModeStatic}.Generate(50, newProc(23))
	require.NoError(t, err)
	for _, a := range e {
		require.Zero(t, a.Roll+a.Pitch+a.Yaw)
	}
}
