// Package magnetometer models the earth magnetic field seen by a magnetometer.
// World frame is x north, y east, z down.
package magnetometer

import (
	"math"

	"github.com/HRadak/GDOrientationPerformanceAnalysis/orientation"
)

const (
	Pi  = math.Pi
	Deg = Pi / 180

	// DefaultFieldStrength is the field magnitude reported by the simulated sensor.
	DefaultFieldStrength = 65
	// DefaultInclination is the dip angle of the default field, degrees.
	DefaultInclination = 66.93333437
	// DefaultDeclination is the angle from true north to magnetic north, degrees.
	DefaultDeclination = 0
)

// Reference returns the unit field direction for the given inclination and
// declination in degrees.
func Reference(inclination, declination float64) orientation.Vector {
	ci, si := math.Cos(inclination*Deg), math.Sin(inclination*Deg)
	cd, sd := math.Cos(declination*Deg), math.Sin(declination*Deg)
	return orientation.Vector{X: ci * cd, Y: ci * sd, Z: si}
}

// Inclination returns the dip angle of v in degrees.
func Inclination(v orientation.Vector) float64 {
	return math.Atan2(v.Z, math.Hypot(v.X, v.Y)) / Deg
}

// Declination returns the heading of the horizontal component of v in degrees.
func Declination(v orientation.Vector) float64 {
	return math.Atan2(v.Y, v.X) / Deg
}

// NormDiff calculates the norm of the diff of two 3-vectors to see how different they are.
func NormDiff(v1, v2 orientation.Vector) float64 {
	return v1.Add(v2.Scale(-1)).Norm()
}
