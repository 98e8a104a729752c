package ui

import (
	"math"

	"github.com/litescript/skyseeker/internal/sky"
)

// Luminance bounds keep extreme magnitudes renderable.
const (
	MinLuminance = 0.0001
	MaxLuminance = 100000.0

	// luminance of a magnitude-zero body
	zeroMagLuminance = 500.0
	pogsonRatio      = 2.512
)

// Direction converts a position into a scene vector of length radius.
// Y is up; at azimuth 0 the vector points along +Z and turns toward -X
// as azimuth increases.
func Direction(pos sky.Position, radius float64) (x, y, z float64) {
	alt := pos.Altitude * math.Pi / 180
	az := pos.Azimuth * math.Pi / 180

	y = radius * math.Sin(alt)
	horizontal := radius * math.Cos(alt)
	x = horizontal * math.Sin(-az)
	z = horizontal * math.Cos(-az)
	return x, y, z
}

// Luminance maps a visual magnitude to a display brightness using the
// Pogson ratio, clamped to [MinLuminance, MaxLuminance].
func Luminance(mag float64) float64 {
	l := zeroMagLuminance * math.Pow(pogsonRatio, -mag)
	return min(max(l, MinLuminance), MaxLuminance)
}
