// Package orientation holds the quaternion algebra used to propagate and
// convert attitudes. Angles are radians throughout.
package orientation

import (
	"errors"
	"fmt"
	"math"

	"github.com/westphae/quaternion"
)

// Quaternion is a rotation quaternion with scalar part W.
type Quaternion = quaternion.Quaternion

// Identity is the null rotation.
var Identity = Quaternion{W: 1}

// ErrDegenerateQuaternion is returned when a quaternion with zero norm is normalized.
var ErrDegenerateQuaternion = errors.New("zero-norm quaternion")

// FromEulerZYX calculates the rotation quaternion corresponding to the
// roll, pitch, yaw angles.
func FromEulerZYX(roll, pitch, yaw float64) Quaternion {
	cr := math.Cos(roll / 2)
	sr := math.Sin(roll / 2)
	cp := math.Cos(pitch / 2)
	sp := math.Sin(pitch / 2)
	cy := math.Cos(yaw / 2)
	sy := math.Sin(yaw / 2)

	return Quaternion{
		W: cr*cp*cy + sr*sp*sy,
		X: sr*cp*cy - cr*sp*sy,
		Y: cr*sp*cy + sr*cp*sy,
		Z: cr*cp*sy - sr*sp*cy,
	}
}

// ToEulerZYX calculates the roll, pitch, yaw angles corresponding to q.
// The pitch argument is clamped to [-1, 1] so that rounding near the poles
// never produces NaN.
func ToEulerZYX(q Quaternion) (roll, pitch, yaw float64) {
	roll = math.Atan2(2*(q.W*q.X+q.Y*q.Z), 1-2*(q.X*q.X+q.Y*q.Y))
	pitch = math.Asin(clamp(2*(q.W*q.Y-q.Z*q.X), -1, 1))
	yaw = math.Atan2(2*(q.W*q.Z+q.X*q.Y), 1-2*(q.Y*q.Y+q.Z*q.Z))
	return
}

// Multiply returns the Hamilton product q1 ⊗ q0, that is q0 applied first then q1.
func Multiply(q1, q0 Quaternion) Quaternion {
	return quaternion.Prod(q1, q0)
}

// Conjugate negates the vector part of q.
func Conjugate(q Quaternion) Quaternion {
	return q.Conj()
}

// Norm returns the Euclidean norm of q.
func Norm(q Quaternion) float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Normalize scales q to unit norm.
func Normalize(q Quaternion) (Quaternion, error) {
	n := Norm(q)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return Quaternion{}, fmt.Errorf("normalize %v: %w", q, ErrDegenerateQuaternion)
	}
	return q.Unit(), nil
}

// RotateVector rotates v by q as q ⊗ (0, v) ⊗ q*.
func RotateVector(q Quaternion, v Vector) Vector {
	r := quaternion.Prod(q, v.Pure(), q.Conj())
	return Vector{X: r.X, Y: r.Y, Z: r.Z}
}

// Add returns the component-wise sum of the quaternions.
func Add(a, b Quaternion) Quaternion {
	return Quaternion{W: a.W + b.W, X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z}
}

// Scale multiplies every component of q by s.
func Scale(q Quaternion, s float64) Quaternion {
	return Quaternion{W: s * q.W, X: s * q.X, Y: s * q.Y, Z: s * q.Z}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
