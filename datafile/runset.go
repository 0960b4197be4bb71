package datafile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/HRadak/GDOrientationPerformanceAnalysis/orientation"
	"github.com/HRadak/GDOrientationPerformanceAnalysis/sim"
)

// Section names of the numbered file set.
const (
	GyroSection  = "GYRO_DATA"
	AccSection   = "ACC_DATA"
	MagSection   = "MAG_DATA"
	QuatSection  = "QUAT_DATA"
	EulerSection = "EULER_DATA"
)

// RunSet names the files written for one run, relative to Dir.
type RunSet struct {
	Dir        string
	Index      int
	Gyro       string
	GyroTrue   string
	Acc        string
	AccIdeal   string
	Mag        string
	MagIdeal   string
	Quat       string
	EulerTrue  string
	Trajectory string
	Config     string
}

// NewRunSet returns the file names for run index, numbered with four digits.
func NewRunSet(dir string, index int) RunSet {
	n := fmt.Sprintf("%04d", index)
	return RunSet{
		Dir:        dir,
		Index:      index,
		Gyro:       "gyro_" + n + ".dat",
		GyroTrue:   "gyro_true_" + n + ".dat",
		Acc:        "acc_" + n + ".dat",
		AccIdeal:   "acc_ideal_" + n + ".dat",
		Mag:        "mag_" + n + ".dat",
		MagIdeal:   "mag_ideal_" + n + ".dat",
		Quat:       "quat_" + n + ".dat",
		EulerTrue:  "euler_true_" + n + ".dat",
		Trajectory: "trajectory_" + n + ".csv",
		Config:     "sense_" + n + ".cfg",
	}
}

// Path joins a file name of the set with its directory.
func (r RunSet) Path(name string) string {
	return filepath.Join(r.Dir, name)
}

// VectorFile packs a vector series as three tagged columns prefix_x, prefix_y, prefix_z.
func VectorFile(section, prefix string, v []orientation.Vector) *File {
	x := make([]float64, len(v))
	y := make([]float64, len(v))
	z := make([]float64, len(v))
	for i := range v {
		x[i], y[i], z[i] = v[i].X, v[i].Y, v[i].Z
	}
	return &File{
		NumSamples: len(v),
		Sections: []Section{{Name: section, Series: []Series{
			{Key: prefix + "_x", Values: x},
			{Key: prefix + "_y", Values: y},
			{Key: prefix + "_z", Values: z},
		}}},
	}
}

// QuaternionFile packs quaternions as quat_w, quat_x, quat_y, quat_z.
func QuaternionFile(q []orientation.Quaternion) *File {
	n := len(q)
	w, x, y, z := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	for i := range q {
		w[i], x[i], y[i], z[i] = q[i].W, q[i].X, q[i].Y, q[i].Z
	}
	return &File{
		NumSamples: n,
		Sections: []Section{{Name: QuatSection, Series: []Series{
			{Key: "quat_w", Values: w},
			{Key: "quat_x", Values: x},
			{Key: "quat_y", Values: y},
			{Key: "quat_z", Values: z},
		}}},
	}
}

// EulerFile packs attitudes as roll, pitch, yaw in degrees.
func EulerFile(e []orientation.EulerAngles) *File {
	n := len(e)
	r, p, y := make([]float64, n), make([]float64, n), make([]float64, n)
	for i := range e {
		d := e[i].Degrees()
		r[i], p[i], y[i] = d.Roll, d.Pitch, d.Yaw
	}
	return &File{
		NumSamples: n,
		Sections: []Section{{Name: EulerSection, Series: []Series{
			{Key: "roll", Values: r},
			{Key: "pitch", Values: p},
			{Key: "yaw", Values: y},
		}}},
	}
}

// Vectors unpacks three tagged columns written by VectorFile.
func (f *File) Vectors(section, prefix string) ([]orientation.Vector, error) {
	var cols [3][]float64
	for j, axis := range []string{"_x", "_y", "_z"} {
		v, err := f.Values(section, prefix+axis)
		if err != nil {
			return nil, err
		}
		cols[j] = v
	}
	out := make([]orientation.Vector, f.NumSamples)
	for i := range out {
		out[i] = orientation.Vector{X: cols[0][i], Y: cols[1][i], Z: cols[2][i]}
	}
	return out, nil
}

// Quaternions unpacks a QUAT_DATA section.
func (f *File) Quaternions() ([]orientation.Quaternion, error) {
	var cols [4][]float64
	for j, key := range []string{"quat_w", "quat_x", "quat_y", "quat_z"} {
		v, err := f.Values(QuatSection, key)
		if err != nil {
			return nil, err
		}
		cols[j] = v
	}
	out := make([]orientation.Quaternion, f.NumSamples)
	for i := range out {
		out[i] = orientation.Quaternion{W: cols[0][i], X: cols[1][i], Y: cols[2][i], Z: cols[3][i]}
	}
	return out, nil
}

// WriteRunSet writes every series of m plus the estimator configuration file
// into r.Dir, creating the directory if needed.
func WriteRunSet(r RunSet, mode, dataSource string, m *sim.Measurements) error {
	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return err
	}
	files := []struct {
		name string
		file *File
	}{
		{r.Gyro, VectorFile(GyroSection, "gyro", m.Gyro.Measured)},
		{r.GyroTrue, VectorFile(GyroSection, "gyro", m.Gyro.Ideal)},
		{r.Acc, VectorFile(AccSection, "acc", m.Accel.Measured)},
		{r.AccIdeal, VectorFile(AccSection, "acc", m.Accel.Ideal)},
		{r.Mag, VectorFile(MagSection, "mag", m.Mag.Measured)},
		{r.MagIdeal, VectorFile(MagSection, "mag", m.Mag.Ideal)},
		{r.Quat, QuaternionFile(m.Trajectory.Quaternions)},
		{r.EulerTrue, EulerFile(m.Trajectory.Euler())},
	}
	for _, f := range files {
		if err := WriteFile(r.Path(f.name), f.file); err != nil {
			return err
		}
	}
	if err := writeTrajectoryLog(r.Path(r.Trajectory), m); err != nil {
		return err
	}
	return WriteConfig(r.Path(r.Config), r.Entries(mode, dataSource))
}
