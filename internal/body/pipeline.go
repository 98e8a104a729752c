package body

import (
	"errors"
	"fmt"
	"math"

	"github.com/litescript/skyseeker/internal/astro"
	"github.com/litescript/skyseeker/internal/sky"
)

// ErrStarPosition is returned when star reduction rejects its inputs.
var ErrStarPosition = errors.New("unable to calculate star position: invalid date")

// Pipeline computes observed positions. Stars go through full
// topocentric reduction with refraction; planets, the Moon and the Sun
// go through a geometric ecliptic-to-horizontal conversion without
// refraction.
//
// A Pipeline holds no mutable state and is safe for concurrent use.
type Pipeline struct {
	Astrometry astro.Astrometry
	Ephemeris  astro.Ephemeris
}

// NewPipeline creates a pipeline from its two providers.
func NewPipeline(a astro.Astrometry, e astro.Ephemeris) Pipeline {
	return Pipeline{Astrometry: a, Ephemeris: e}
}

// DefaultPipeline uses the meeus ephemeris for both providers.
func DefaultPipeline() Pipeline {
	e := astro.NewMeeusEphemeris()
	return NewPipeline(astro.NewReducer(e), e)
}

// Position returns the observed azimuth and altitude of b.
func (p Pipeline) Position(b CelestialBody, o sky.Observer, t sky.Time, eo sky.EarthOrientation) (sky.Position, error) {
	switch b.kind {
	case KindStar:
		return p.starPosition(b.star, o, t, eo)
	case KindPlanet:
		return p.eclipticPosition(b.planet.ephemerisBody(), o, t), nil
	case KindMoon:
		return p.eclipticPosition(astro.BodyMoon, o, t), nil
	case KindSun:
		return p.eclipticPosition(astro.BodySun, o, t), nil
	default:
		return sky.Position{}, fmt.Errorf("unknown body kind %d", b.kind)
	}
}

func (p Pipeline) starPosition(s *Star, o sky.Observer, t sky.Time, eo sky.EarthOrientation) (sky.Position, error) {
	utc1, utc2 := t.JulianPair()
	obs, err := p.Astrometry.ReduceStar(astro.StarReduction{
		RA:         s.RA,
		Dec:        s.Dec,
		PMRA:       s.PMRA,
		PMDec:      s.PMDec,
		Parallax:   s.Parallax,
		RadialVel:  s.RadialVelocity,
		UTC1:       utc1,
		UTC2:       utc2,
		DUT1:       eo.DUT1,
		Longitude:  o.Longitude,
		Latitude:   o.Latitude,
		Height:     o.HeightMeters(),
		PolarX:     eo.PolarX,
		PolarY:     eo.PolarY,
		Atmosphere: o.Atmosphere(),
	})
	if err != nil {
		return sky.Position{}, fmt.Errorf("%w (%s): %w", ErrStarPosition, s.ID, err)
	}
	return sky.Position{
		Azimuth:  astro.NormalizeDegrees(obs.Azimuth * 180 / math.Pi),
		Altitude: 90 - obs.ZenithDistance*180/math.Pi,
	}, nil
}

// eclipticPosition converts an apparent ecliptic position to the horizon
// of the observer using apparent sidereal time on UTC.
func (p Pipeline) eclipticPosition(target astro.Body, o sky.Observer, t sky.Time) sky.Position {
	jd := t.JulianDay()
	eph := p.Ephemeris

	lon, lat := eph.GeocentricEcliptic(target, jd)
	dpsi, deps := eph.Nutation(jd)
	trueObliquity := eph.MeanObliquity(jd) + deps

	ra, dec := astro.EclipticToEquatorial(lon, lat, trueObliquity)

	gast := eph.ApparentSidereal(eph.MeanSidereal(jd), dpsi, trueObliquity)
	az, alt := astro.EquatorialToHorizontal(ra, dec, o.Latitude, o.Longitude, gast)

	return sky.Position{
		// Ephemeris azimuth is measured from the south.
		Azimuth:  astro.NormalizeDegrees(az*180/math.Pi + 180),
		Altitude: alt * 180 / math.Pi,
	}
}
