package astro

import (
	"math"
)

// AU is the Astronomical Unit in kilometers.
const AU = 149597870.7

// Vec3 represents a 3D vector in any reference frame.
type Vec3 struct {
	X, Y, Z float64
}

// FromSpherical returns the unit vector for longitude/latitude in radians.
func FromSpherical(lon, lat float64) Vec3 {
	sinLon, cosLon := math.Sincos(lon)
	sinLat, cosLat := math.Sincos(lat)
	return Vec3{X: cosLat * cosLon, Y: cosLat * sinLon, Z: sinLat}
}

// Spherical returns longitude in (-π, π] and latitude in [-π/2, π/2].
func (v Vec3) Spherical() (lon, lat float64) {
	r := math.Hypot(v.X, v.Y)
	if r == 0 && v.Z == 0 {
		return 0, 0
	}
	return math.Atan2(v.Y, v.X), math.Atan2(v.Z, r)
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns a unit vector in the same direction.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return Vec3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// RotateX rotates the reference frame about the X axis by angle.
// RotateX(ε) takes equatorial to ecliptic; RotateX(-ε) is the inverse.
func (v Vec3) RotateX(angle float64) Vec3 {
	s, c := math.Sincos(angle)
	return Vec3{
		X: v.X,
		Y: v.Y*c + v.Z*s,
		Z: -v.Y*s + v.Z*c,
	}
}

// RotateZ rotates the reference frame about the Z axis by angle.
func (v Vec3) RotateZ(angle float64) Vec3 {
	s, c := math.Sincos(angle)
	return Vec3{
		X: v.X*c + v.Y*s,
		Y: -v.X*s + v.Y*c,
		Z: v.Z,
	}
}
