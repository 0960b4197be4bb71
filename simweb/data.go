package simweb

import (
	"github.com/HRadak/GDOrientationPerformanceAnalysis/orientation"
	"github.com/HRadak/GDOrientationPerformanceAnalysis/sim"
)

const Port = 8000

// Sample is one time step of a run as streamed to browsers.
type Sample struct {
	Index int     `json:"index"`
	T     float64 `json:"t"` // s

	Gyro      [3]float64 `json:"gyro"`       // rad/s, measured
	GyroTrue  [3]float64 `json:"gyro_true"`  // rad/s
	Accel     [3]float64 `json:"accel"`      // m/s², measured
	AccelTrue [3]float64 `json:"accel_true"` // m/s²
	Mag       [3]float64 `json:"mag"`        // measured
	MagTrue   [3]float64 `json:"mag_true"`

	Quat  [4]float64 `json:"quat"`  // w, x, y, z
	Euler [3]float64 `json:"euler"` // roll, pitch, yaw in degrees
}

// SampleAt extracts time step i of m.
func SampleAt(m *sim.Measurements, i int) Sample {
	t := m.Trajectory
	q := t.Quaternions[i]
	e := orientation.EulerOf(q).Degrees()
	return Sample{
		Index:     i,
		T:         float64(i) * t.Dt,
		Gyro:      m.Gyro.Measured[i].Array(),
		GyroTrue:  m.Gyro.Ideal[i].Array(),
		Accel:     m.Accel.Measured[i].Array(),
		AccelTrue: m.Accel.Ideal[i].Array(),
		Mag:       m.Mag.Measured[i].Array(),
		MagTrue:   m.Mag.Ideal[i].Array(),
		Quat:      [4]float64{q.W, q.X, q.Y, q.Z},
		Euler:     [3]float64{e.Roll, e.Pitch, e.Yaw},
	}
}
