package astro

import (
	"errors"
	"fmt"
	"math"

	"github.com/soniakeys/meeus/v3/apparent"
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/precess"
	"github.com/soniakeys/unit"
)

// ErrUnacceptableDate is returned when a date cannot be represented.
var ErrUnacceptableDate = errors.New("unacceptable date")

const (
	// Representable UTC Julian date range.
	minJulianDate = -68569.5
	maxJulianDate = 1e9

	auPerParsec = 206264.80624709636

	// kmPerSecToParsecPerYear converts km/s to parsecs per Julian year.
	kmPerSecToParsecPerYear = 86400 * 365.25 / (auPerParsec * AU)

	earthEquatorialRadius = 6378137.0   // meters
	earthRotationRate     = 7.292115e-5 // rad/s
	speedOfLight          = 299792458.0 // m/s
)

// StarReduction holds the inputs of a catalog-to-observed reduction.
type StarReduction struct {
	RA, Dec     float64 // ICRS at J2000.0, radians
	PMRA, PMDec float64 // proper motion, radians/year (dRA/dt, not cos δ·dRA/dt)
	Parallax    float64 // arcseconds
	RadialVel   float64 // km/s, positive receding

	UTC1, UTC2 float64 // two-part UTC Julian date
	DUT1       float64 // UT1 − UTC, seconds

	Longitude float64 // radians, east positive
	Latitude  float64 // geodetic radians
	Height    float64 // meters above the ellipsoid

	PolarX, PolarY float64 // radians

	Atmosphere
}

// Observed is the result of a star reduction.
type Observed struct {
	Azimuth        float64 // radians, N=0 E=π/2, refracted
	ZenithDistance float64 // radians, refracted
	HourAngle      float64 // topocentric apparent, radians
	Declination    float64 // topocentric apparent, radians
	RightAscension float64 // apparent, radians
}

// Astrometry reduces catalog star data to observed horizontal coordinates.
type Astrometry interface {
	ReduceStar(in StarReduction) (Observed, error)
}

// Reducer implements Astrometry using the Earth vector and nutation of
// a SolarFrame.
type Reducer struct {
	frame SolarFrame
}

// NewReducer creates a Reducer.
func NewReducer(frame SolarFrame) *Reducer {
	return &Reducer{frame: frame}
}

// ReduceStar applies space motion, precession, annual parallax,
// nutation, annual aberration, Earth rotation, polar motion, diurnal
// aberration and refraction.
func (r *Reducer) ReduceStar(in StarReduction) (Observed, error) {
	if err := checkDate(in.UTC1, in.UTC2); err != nil {
		return Observed{}, err
	}
	if !allFinite(in.RA, in.Dec, in.PMRA, in.PMDec, in.Parallax, in.RadialVel,
		in.DUT1, in.Longitude, in.Latitude, in.Height, in.PolarX, in.PolarY) {
		return Observed{}, fmt.Errorf("%w: non-finite parameter", ErrUnacceptableDate)
	}

	jd := in.UTC1 + in.UTC2
	jdTT := jd + TTMinusUTC(jd)/86400
	jdUT1 := jd + in.DUT1/86400
	epoch := base.JDEToJulianYear(jdTT)

	// Space motion to the epoch of date, then precession.
	eq := &coord.Equatorial{RA: unit.RAFromRad(in.RA), Dec: unit.Angle(in.Dec)}
	mα, mδ := unit.HourAngle(in.PMRA), unit.Angle(in.PMDec)
	dist := 0.0 // parsecs
	if in.Parallax > 0 {
		pc := 1 / in.Parallax
		mr := in.RadialVel * kmPerSecToParsecPerYear
		precess.ProperMotion3D(eq, eq, 2000, epoch, pc, mr, mα, mδ)
		precess.NewPrecessor(2000, epoch).Precess(eq, eq)
		dist = pc + mr*(epoch-2000)
	} else {
		precess.Position(eq, eq, 2000, epoch, mα, mδ)
	}

	// Annual parallax: shift to the geocentre.
	if dist > 0 {
		eps0 := r.frame.MeanObliquity(jdTT)
		earth := r.frame.EarthHeliocentric(jdTT).RotateX(-eps0)
		p := FromSpherical(eq.RA.Rad(), eq.Dec.Rad()).Scale(dist * auPerParsec).Sub(earth)
		ra, dec := p.Spherical()
		eq.RA, eq.Dec = unit.RAFromRad(ra), unit.Angle(dec)
	}

	Δα1, Δδ1 := apparent.Nutation(eq.RA, eq.Dec, jdTT)
	Δα2, Δδ2 := apparent.Aberration(eq.RA, eq.Dec, jdTT)
	appRA := eq.RA.Add(Δα1 + Δα2).Rad()
	appDec := (eq.Dec + Δδ1 + Δδ2).Rad()

	dpsi, deps := r.frame.Nutation(jdTT)
	eps := r.frame.MeanObliquity(jdTT) + deps
	gast := ApparentSiderealTime(GreenwichMeanSiderealTime(jdUT1), dpsi, eps)

	lat := in.Latitude + in.PolarX*math.Cos(in.Longitude) - in.PolarY*math.Sin(in.Longitude)
	lon := in.Longitude + (in.PolarX*math.Sin(in.Longitude)+in.PolarY*math.Cos(in.Longitude))*math.Tan(in.Latitude)

	az, alt := EquatorialToHorizontal(appRA, appDec, lat, lon, gast)

	// South-based westward azimuth to an (east, north, up) vector.
	sinA, cosA := math.Sincos(az)
	sinH, cosH := math.Sincos(alt)
	enu := Vec3{X: -cosH * sinA, Y: -cosH * cosA, Z: sinH}

	vrot := earthRotationRate * (earthEquatorialRadius + in.Height) * math.Cos(lat) / speedOfLight
	enu = Vec3{X: enu.X + vrot, Y: enu.Y, Z: enu.Z}.Normalized()

	a, b := RefractionConstants(in.Atmosphere)
	enu = Refract(enu, a, b)

	return Observed{
		Azimuth:        NormalizeRadians(math.Atan2(enu.X, enu.Y)),
		ZenithDistance: math.Atan2(math.Hypot(enu.X, enu.Y), enu.Z),
		HourAngle:      math.Remainder(gast+lon-appRA, 2*math.Pi),
		Declination:    appDec,
		RightAscension: appRA,
	}, nil
}

func checkDate(utc1, utc2 float64) error {
	if !allFinite(utc1, utc2) {
		return fmt.Errorf("%w: non-finite julian date", ErrUnacceptableDate)
	}
	jd := utc1 + utc2
	if jd < minJulianDate || jd > maxJulianDate {
		return fmt.Errorf("%w: julian date %.1f out of range", ErrUnacceptableDate, jd)
	}
	return nil
}

func allFinite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
