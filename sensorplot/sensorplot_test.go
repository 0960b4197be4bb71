package sensorplot

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HRadak/GDOrientationPerformanceAnalysis/noise"
	"github.com/HRadak/GDOrientationPerformanceAnalysis/orientation"
	"github.com/HRadak/GDOrientationPerformanceAnalysis/sim"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestSaveSeries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plots", "ramp.png")
	require.NoError(t, SaveSeries(path, "Ramp", "value", 0.01, []string{"a", "b"},
		noise.Ramp(100, 1), noise.Ramp(100, -0.5)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))
}

func TestSaveSeriesErrors(t *testing.T) {
	dir := t.TempDir()
	assert.ErrorIs(t, SaveSeries(filepath.Join(dir, "a.png"), "x", "y", 0.01, nil), ErrNoData)
	assert.ErrorIs(t, SaveSeries(filepath.Join(dir, "b.png"), "x", "y", 0.01, []string{"a"}, nil), ErrNoData)
	assert.ErrorIs(t, SaveSeries(filepath.Join(dir, "c.png"), "x", "y", 0.01, []string{"a", "b"}, []float64{1}), ErrNoData)
}

func TestSaveRun(t *testing.T) {
	p := sim.Params{
		Samples:  300,
		Interval: 0.01,
		Profile:  sim.Profile{Mode: sim.ModeSinusoidal, Amplitude: 0.4},
		Accel:    sim.SensorModel{Reference: orientation.Vector{Z: -1}, Scale: 9.81},
		Mag:      sim.SensorModel{Reference: orientation.Vector{X: 1}, Scale: 65},
	}
	m, err := sim.Run(p, noise.New(1, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	require.NoError(t, err)

	paths, err := SaveRun(t.TempDir(), m)
	require.NoError(t, err)
	assert.Len(t, paths, 8)
	for _, path := range paths {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}
