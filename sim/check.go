package sim

import (
	"math"

	"github.com/HRadak/GDOrientationPerformanceAnalysis/orientation"
)

// ControlRelative is the relative attitude sequence of the five-sample
// control scenario: a roll and pitch of 90 degrees followed by a 90 degree yaw.
func ControlRelative() []orientation.EulerAngles {
	return []orientation.EulerAngles{
		{Roll: math.Pi / 2, Pitch: math.Pi / 2},
		{Yaw: math.Pi / 2},
		{},
		{},
	}
}

// CheckControl runs the control scenario and returns the largest component
// difference between the third quaternion and the direct construction of
// the combined attitude.
func CheckControl(dt float64) (float64, error) {
	t, err := TrajectoryFromRelative(ControlRelative(), dt)
	if err != nil {
		return 0, err
	}
	got := t.Quaternions[2]
	want := orientation.FromEulerZYX(math.Pi/2, math.Pi/2, math.Pi/2)
	return math.Max(
		math.Max(math.Abs(got.W-want.W), math.Abs(got.X-want.X)),
		math.Max(math.Abs(got.Y-want.Y), math.Abs(got.Z-want.Z))), nil
}
