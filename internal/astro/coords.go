// Package astro provides the numerical providers behind the position
// pipeline: star reduction, solar-system ephemerides, and sky math.
package astro

import (
	"math"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/unit"
)

// J2000 is the Julian date of the J2000.0 epoch.
const J2000 = base.J2000

// EquatorialToHorizontal converts right ascension and declination to
// geometric horizontal coordinates for an observer at lat/lon (radians,
// east positive) and Greenwich sidereal time st (radians).
//
// Azimuth follows the ephemeris convention: 0 = South, increasing
// westward, in (-π, π]. Altitude is in [-π/2, π/2].
func EquatorialToHorizontal(ra, dec, lat, lon, st float64) (az, alt float64) {
	// meeus measures longitude positive westward.
	A, h := coord.EqToHz(unit.RAFromRad(ra), unit.Angle(dec), unit.Angle(lat), unit.Angle(-lon), unit.TimeFromRad(st))
	az, alt = A.Rad(), h.Rad()
	if math.IsNaN(alt) {
		// asin overflows by an ulp at the zenith and nadir.
		alt = math.Copysign(math.Pi/2, math.Sin(lat)*math.Sin(dec))
	}
	return az, alt
}

// EclipticToEquatorial converts ecliptic longitude/latitude to right
// ascension/declination for the given obliquity. All angles in radians.
func EclipticToEquatorial(lon, lat, obliquity float64) (ra, dec float64) {
	sinE, cosE := math.Sincos(obliquity)
	α, δ := coord.EclToEq(unit.Angle(lon), unit.Angle(lat), sinE, cosE)
	return α.Rad(), δ.Rad()
}

// GreenwichMeanSiderealTime returns GMST in radians for a UT1 Julian date
// (IAU 1982 expression).
func GreenwichMeanSiderealTime(jdUT1 float64) float64 {
	return sidereal.Mean(jdUT1).Rad()
}

// ApparentSiderealTime adds the equation of the equinoxes to mean
// sidereal time. meeus only offers this bundled with its own nutation
// evaluation, and callers here already hold Δψ and ε for the same date.
func ApparentSiderealTime(mean, dpsi, trueObliquity float64) float64 {
	return NormalizeRadians(mean + dpsi*math.Cos(trueObliquity))
}

// NormalizeDegrees maps an angle to [0, 360).
func NormalizeDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a -= 360
	}
	return a
}

// NormalizeRadians maps an angle to [0, 2π).
func NormalizeRadians(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
