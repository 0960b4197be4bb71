package orientation

import "math"

// EulerAngles is a roll, pitch, yaw triple in radians.
type EulerAngles struct {
	Roll, Pitch, Yaw float64
}

// Quaternion converts the angles with FromEulerZYX.
func (e EulerAngles) Quaternion() Quaternion {
	return FromEulerZYX(e.Roll, e.Pitch, e.Yaw)
}

// EulerOf recovers the angles of q with ToEulerZYX.
func EulerOf(q Quaternion) EulerAngles {
	r, p, y := ToEulerZYX(q)
	return EulerAngles{Roll: r, Pitch: p, Yaw: y}
}

func (e EulerAngles) Sub(o EulerAngles) EulerAngles {
	return EulerAngles{Roll: e.Roll - o.Roll, Pitch: e.Pitch - o.Pitch, Yaw: e.Yaw - o.Yaw}
}

func (e EulerAngles) Scale(s float64) EulerAngles {
	return EulerAngles{Roll: s * e.Roll, Pitch: s * e.Pitch, Yaw: s * e.Yaw}
}

// Vector reinterprets the triple as a body-rate vector (roll->x, pitch->y, yaw->z).
func (e EulerAngles) Vector() Vector {
	return Vector{X: e.Roll, Y: e.Pitch, Z: e.Yaw}
}

// Degrees converts the angles for presentation.
func (e EulerAngles) Degrees() EulerAngles {
	return e.Scale(180 / math.Pi)
}
