package astro

import (
	"math"

	"github.com/soniakeys/meeus/v3/apparent"
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/kepler"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/planetelements"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"
)

// Body identifies a solar-system body known to the ephemeris.
type Body int

const (
	BodySun Body = iota
	BodyMoon
	BodyMercury
	BodyVenus
	BodyMars
	BodyJupiter
	BodySaturn
	BodyUranus
	BodyNeptune
)

// String returns the body name.
func (b Body) String() string {
	switch b {
	case BodySun:
		return "Sun"
	case BodyMoon:
		return "Moon"
	case BodyMercury:
		return "Mercury"
	case BodyVenus:
		return "Venus"
	case BodyMars:
		return "Mars"
	case BodyJupiter:
		return "Jupiter"
	case BodySaturn:
		return "Saturn"
	case BodyUranus:
		return "Uranus"
	case BodyNeptune:
		return "Neptune"
	default:
		return "unknown"
	}
}

// Ephemeris supplies geocentric positions and Earth-rotation quantities.
// All angles are radians; jd is a decimal Julian day. Implementations
// must accept any finite jd.
type Ephemeris interface {
	// GeocentricEcliptic returns apparent ecliptic longitude and latitude
	// referred to the ecliptic and equinox of date.
	GeocentricEcliptic(b Body, jd float64) (lon, lat float64)

	// Nutation returns nutation in longitude and in obliquity.
	Nutation(jd float64) (dpsi, deps float64)

	// MeanObliquity returns the mean obliquity of the ecliptic.
	MeanObliquity(jd float64) float64

	// MeanSidereal returns Greenwich mean sidereal time.
	MeanSidereal(jd float64) float64

	// ApparentSidereal applies the equation of the equinoxes.
	ApparentSidereal(mean, dpsi, trueObliquity float64) float64
}

// SolarFrame is the subset of ephemeris data needed by star reduction.
type SolarFrame interface {
	Nutation(jd float64) (dpsi, deps float64)
	MeanObliquity(jd float64) float64

	// EarthHeliocentric returns Earth's heliocentric position in AU,
	// ecliptic and mean equinox of date.
	EarthHeliocentric(jd float64) Vec3
}

// lightTimePerAU is the light travel time for 1 AU, in days.
const lightTimePerAU = 0.0057755183

// heliocentricSource yields heliocentric ecliptic positions of date in AU.
// Planet indexes follow the meeus planetelements constants, which include
// Earth.
type heliocentricSource interface {
	heliocentric(planet int, jde float64) Vec3
}

// MeeusEphemeris implements Ephemeris on the Meeus algorithms.
type MeeusEphemeris struct {
	planets heliocentricSource
}

// NewMeeusEphemeris returns an ephemeris that propagates planets from
// mean orbital elements.
func NewMeeusEphemeris() *MeeusEphemeris {
	return &MeeusEphemeris{planets: meanElements{}}
}

// GeocentricEcliptic implements Ephemeris.
func (e *MeeusEphemeris) GeocentricEcliptic(b Body, jd float64) (lon, lat float64) {
	switch b {
	case BodySun:
		T := base.J2000Century(jd)
		return NormalizeRadians(solar.ApparentLongitude(T).Rad()), 0
	case BodyMoon:
		λ, β, _ := moonposition.Position(jd)
		dpsi, _ := nutation.Nutation(jd)
		return NormalizeRadians(λ.Rad() + dpsi.Rad()), β.Rad()
	default:
		p, ok := planetIndex(b)
		if !ok {
			return 0, 0
		}
		return e.planetEcliptic(p, jd)
	}
}

func (e *MeeusEphemeris) planetEcliptic(p int, jd float64) (lon, lat float64) {
	earth := e.planets.heliocentric(planetelements.Earth, jd)
	geo := e.planets.heliocentric(p, jd).Sub(earth)

	// One light-time iteration is enough at this precision.
	tau := lightTimePerAU * geo.Norm()
	geo = e.planets.heliocentric(p, jd-tau).Sub(earth)

	lon, lat = geo.Spherical()

	dLon, dLat := apparent.EclipticAberration(unit.Angle(lon), unit.Angle(lat), jd)
	dpsi, _ := nutation.Nutation(jd)
	return NormalizeRadians(lon + dLon.Rad() + dpsi.Rad()), lat + dLat.Rad()
}

// Nutation implements Ephemeris.
func (e *MeeusEphemeris) Nutation(jd float64) (dpsi, deps float64) {
	ψ, ε := nutation.Nutation(jd)
	return ψ.Rad(), ε.Rad()
}

// MeanObliquity implements Ephemeris.
func (e *MeeusEphemeris) MeanObliquity(jd float64) float64 {
	return nutation.MeanObliquity(jd).Rad()
}

// MeanSidereal implements Ephemeris.
func (e *MeeusEphemeris) MeanSidereal(jd float64) float64 {
	return GreenwichMeanSiderealTime(jd)
}

// ApparentSidereal implements Ephemeris.
func (e *MeeusEphemeris) ApparentSidereal(mean, dpsi, trueObliquity float64) float64 {
	return ApparentSiderealTime(mean, dpsi, trueObliquity)
}

// EarthHeliocentric implements SolarFrame.
func (e *MeeusEphemeris) EarthHeliocentric(jd float64) Vec3 {
	return e.planets.heliocentric(planetelements.Earth, jd)
}

// solarEarth is Earth's heliocentric position from the geometric Sun.
func solarEarth(jde float64) Vec3 {
	T := base.J2000Century(jde)
	s, _ := solar.True(T)
	return FromSpherical(s.Rad()+math.Pi, 0).Scale(solar.Radius(T))
}

func planetIndex(b Body) (int, bool) {
	switch b {
	case BodyMercury:
		return planetelements.Mercury, true
	case BodyVenus:
		return planetelements.Venus, true
	case BodyMars:
		return planetelements.Mars, true
	case BodyJupiter:
		return planetelements.Jupiter, true
	case BodySaturn:
		return planetelements.Saturn, true
	case BodyUranus:
		return planetelements.Uranus, true
	case BodyNeptune:
		return planetelements.Neptune, true
	default:
		return 0, false
	}
}

// meanElements propagates Keplerian orbits from mean elements of date.
// meeus tabulates no ascending node for Earth, so Earth comes from the
// solar theory instead.
type meanElements struct{}

func (meanElements) heliocentric(planet int, jde float64) Vec3 {
	if planet == planetelements.Earth {
		return solarEarth(jde)
	}

	var el planetelements.Elements
	planetelements.Mean(planet, jde, &el)

	E := kepler.Kepler3(el.Ecc, el.Lon-el.Peri)
	ν := kepler.True(E, el.Ecc)
	r := kepler.Radius(E, el.Ecc, el.Axis)

	u := ν.Rad() + el.Peri.Rad() - el.Node.Rad()
	sinU, cosU := math.Sincos(u)
	sinN, cosN := el.Node.Sincos()
	sinI, cosI := el.Inc.Sincos()

	return Vec3{
		X: r * (cosN*cosU - sinN*sinU*cosI),
		Y: r * (sinN*cosU + cosN*sinU*cosI),
		Z: r * sinU * sinI,
	}
}
