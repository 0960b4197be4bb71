package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HRadak/GDOrientationPerformanceAnalysis/datafile"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, version)
}

func TestGenerate(t *testing.T) {
	t.Setenv("IMUSIM_SAMPLES", "300")
	dir := filepath.Join(t.TempDir(), "SyntheticData")

	out, err := execute(t, "generate", "--runs", "3", "--start", "1", "--workers", "2", "--seed", "5", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 3 runs")

	for i := 1; i <= 3; i++ {
		rs := datafile.NewRunSet(dir, i)
		for _, name := range []string{rs.Gyro, rs.GyroTrue, rs.Acc, rs.AccIdeal, rs.Mag, rs.MagIdeal, rs.Quat, rs.EulerTrue, rs.Trajectory, rs.Config} {
			_, err := os.Stat(rs.Path(name))
			require.NoError(t, err, name)
		}
		f, err := datafile.ReadFile(rs.Path(rs.Quat))
		require.NoError(t, err)
		assert.Equal(t, 300, f.NumSamples)
	}
	_, err = os.Stat(filepath.Join(dir, "gyro_0000.dat"))
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateTraceSamples(t *testing.T) {
	t.Setenv("IMUSIM_SAMPLES", "50")
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--log-level", "trace", "generate", "--seed", "2", "--out", t.TempDir()})
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	require.NoError(t, cmd.Execute())

	logs := errOut.String()
	assert.Equal(t, 50, strings.Count(logs, "level=TRACE msg=sample"))
	assert.Contains(t, logs, "i=49")
}

func TestGenerateReproducible(t *testing.T) {
	t.Setenv("IMUSIM_SAMPLES", "100")
	a := filepath.Join(t.TempDir(), "a")
	b := filepath.Join(t.TempDir(), "b")

	_, err := execute(t, "generate", "--runs", "2", "--seed", "11", "--out", a)
	require.NoError(t, err)
	_, err = execute(t, "generate", "--runs", "2", "--seed", "11", "--out", b)
	require.NoError(t, err)

	for _, name := range []string{"mag_0001.dat", "gyro_0000.dat"} {
		x, err := os.ReadFile(filepath.Join(a, name))
		require.NoError(t, err)
		y, err := os.ReadFile(filepath.Join(b, name))
		require.NoError(t, err)
		assert.Equal(t, x, y, name)
	}
}

func TestGenerateRejectsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("accel:\n  noise_variance: [-1, 0, 0]\n"), 0644))

	_, err := execute(t, "--config", path, "generate", "--out", t.TempDir())
	assert.Error(t, err)

	_, err = execute(t, "generate", "--runs", "0", "--out", t.TempDir())
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	out, err := execute(t, "check", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "control scenario")
	assert.Contains(t, out, "magnetic reference: inclination 66.9333 deg")
	assert.Contains(t, out, "ok")
}

func TestPlot(t *testing.T) {
	t.Setenv("IMUSIM_SAMPLES", "200")
	dir := t.TempDir()
	out, err := execute(t, "plot", "--seed", "1", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "euler.png"))
}
