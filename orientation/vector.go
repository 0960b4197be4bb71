package orientation

import (
	"math"

	"github.com/skelterjohn/go.matrix"
)

// Vector is a 3-vector in either the world or the body frame.
type Vector struct {
	X, Y, Z float64
}

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v Vector) Scale(s float64) Vector {
	return Vector{X: s * v.X, Y: s * v.Y, Z: s * v.Z}
}

func (v Vector) Add(w Vector) Vector {
	return Vector{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// Pure embeds v as a quaternion with zero scalar part.
func (v Vector) Pure() Quaternion {
	return Quaternion{X: v.X, Y: v.Y, Z: v.Z}
}

// Array returns the components in x, y, z order.
func (v Vector) Array() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// VectorOf builds a Vector from a 3-element array.
func VectorOf(a [3]float64) Vector {
	return Vector{X: a[0], Y: a[1], Z: a[2]}
}

// Apply returns m·v for a 3x3 matrix m.
func Apply(m *matrix.DenseMatrix, v Vector) Vector {
	return Vector{
		X: m.Get(0, 0)*v.X + m.Get(0, 1)*v.Y + m.Get(0, 2)*v.Z,
		Y: m.Get(1, 0)*v.X + m.Get(1, 1)*v.Y + m.Get(1, 2)*v.Z,
		Z: m.Get(2, 0)*v.X + m.Get(2, 1)*v.Y + m.Get(2, 2)*v.Z,
	}
}

// RotationMatrix returns the 3x3 matrix R such that R·v equals RotateVector(q, v)
// for unit q.
func RotationMatrix(q Quaternion) *matrix.DenseMatrix {
	w, x, y, z := q.W, q.X, q.Y, q.Z
	return matrix.MakeDenseMatrix([]float64{
		2*(w*w+x*x) - 1, 2 * (x*y - w*z), 2 * (x*z + w*y),
		2 * (x*y + w*z), 2*(w*w+y*y) - 1, 2 * (y*z - w*x),
		2 * (x*z - w*y), 2 * (y*z + w*x), 2*(w*w+z*z) - 1,
	}, 3, 3)
}
