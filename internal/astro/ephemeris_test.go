package astro

import (
	"math"
	"testing"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/planetelements"
)

func TestSunLongitudeAtSolstice(t *testing.T) {
	e := NewMeeusEphemeris()
	jd := julian.CalendarGregorianToJD(2024, 6, 20.87)

	lon, lat := e.GeocentricEcliptic(BodySun, jd)
	if d := math.Abs(radToDeg(lon) - 90); d > 0.1 {
		t.Errorf("solstice Sun longitude = %v, want ~90", radToDeg(lon))
	}
	if lat != 0 {
		t.Errorf("Sun latitude = %v, want 0", lat)
	}
}

func TestGeocentricEcliptic_AllBodies(t *testing.T) {
	e := NewMeeusEphemeris()
	jd := julian.CalendarGregorianToJD(2025, 10, 14.0625)

	for b := BodySun; b <= BodyNeptune; b++ {
		t.Run(b.String(), func(t *testing.T) {
			lon, lat := e.GeocentricEcliptic(b, jd)
			if lon < 0 || lon >= 2*math.Pi {
				t.Errorf("lon out of range: %v", lon)
			}
			// Every major body stays within ~8° of the ecliptic.
			if math.Abs(radToDeg(lat)) > 8 {
				t.Errorf("lat = %v°", radToDeg(lat))
			}
		})
	}
}

func TestPlanetsTrackSunForInnerPlanets(t *testing.T) {
	e := NewMeeusEphemeris()
	jd := julian.CalendarGregorianToJD(2025, 3, 1)
	sun, _ := e.GeocentricEcliptic(BodySun, jd)

	// Maximum elongations: Mercury ~28°, Venus ~47°.
	limits := map[Body]float64{BodyMercury: 29, BodyVenus: 48}
	for b, limit := range limits {
		lon, _ := e.GeocentricEcliptic(b, jd)
		elong := math.Abs(math.Remainder(lon-sun, 2*math.Pi))
		if radToDeg(elong) > limit {
			t.Errorf("%v elongation = %v°, limit %v°", b, radToDeg(elong), limit)
		}
	}
}

func TestMeanSidereal(t *testing.T) {
	e := NewMeeusEphemeris()
	got := radToDeg(e.MeanSidereal(J2000))
	if math.Abs(got-280.46) > 0.01 {
		t.Errorf("MeanSidereal(J2000) = %v, want ~280.46", got)
	}

	// Star reduction and the ecliptic path share one sidereal clock.
	for _, jd := range []float64{J2000, 2460962.5625, 2488069.5} {
		if e.MeanSidereal(jd) != GreenwichMeanSiderealTime(jd) {
			t.Errorf("MeanSidereal(%v) differs from GreenwichMeanSiderealTime", jd)
		}
	}
}

func TestApparentSidereal(t *testing.T) {
	e := NewMeeusEphemeris()
	jd := julian.CalendarGregorianToJD(2025, 1, 1)
	dpsi, deps := e.Nutation(jd)
	eps := e.MeanObliquity(jd) + deps

	mean := e.MeanSidereal(jd)
	app := e.ApparentSidereal(mean, dpsi, eps)

	// The equation of the equinoxes never exceeds ~1.2 seconds of time.
	eqeq := math.Remainder(app-mean, 2*math.Pi)
	if math.Abs(radToDeg(eqeq)*240) > 1.2 {
		t.Errorf("equation of the equinoxes = %vs", radToDeg(eqeq)*240)
	}
}

func TestEarthHeliocentric(t *testing.T) {
	e := NewMeeusEphemeris()
	jd := julian.CalendarGregorianToJD(2025, 1, 4)

	v := e.EarthHeliocentric(jd)
	// Perihelion in early January.
	if r := v.Norm(); math.Abs(r-0.9833) > 0.001 {
		t.Errorf("Earth-Sun distance = %v AU, want ~0.9833", r)
	}

	// Earth sits opposite the Sun's geocentric longitude.
	sun, _ := e.GeocentricEcliptic(BodySun, jd)
	lon, _ := v.Spherical()
	if d := math.Abs(math.Remainder(lon-sun-math.Pi, 2*math.Pi)); d > degToRad(0.05) {
		t.Errorf("Earth longitude offset = %v°", radToDeg(d))
	}
}

func TestGeocentricEcliptic_PlanetsDoNotPanic(t *testing.T) {
	e := NewMeeusEphemeris()
	for _, jd := range []float64{2415020.5, J2000, 2460962.5625, 2488069.5} {
		for b := BodyMercury; b <= BodyNeptune; b++ {
			lon, lat := e.GeocentricEcliptic(b, jd)
			if math.IsNaN(lon) || math.IsNaN(lat) {
				t.Errorf("%v at %v: (%v, %v)", b, jd, lon, lat)
			}
		}
	}
}

func TestGeocentricEcliptic_OuterPlanetsMatchAlmanac(t *testing.T) {
	e := NewMeeusEphemeris()
	jd := julian.CalendarGregorianToJD(2025, 10, 14.0625)
	_, deps := e.Nutation(jd)
	eps := e.MeanObliquity(jd) + deps

	tests := []struct {
		body           Body
		raHour, decDeg float64
	}{
		{BodyJupiter, 7.716, 21.38},
		{BodySaturn, 23.87, -3.60},
	}

	for _, tt := range tests {
		t.Run(tt.body.String(), func(t *testing.T) {
			lon, lat := e.GeocentricEcliptic(tt.body, jd)
			ra, dec := EclipticToEquatorial(lon, lat, eps)

			dRA := math.Abs(math.Remainder(radToDeg(ra)-tt.raHour*15, 360))
			if dRA > 1 {
				t.Errorf("RA = %vh, want ~%vh", radToDeg(ra)/15, tt.raHour)
			}
			if d := math.Abs(radToDeg(dec) - tt.decDeg); d > 1 {
				t.Errorf("Dec = %v°, want ~%v°", radToDeg(dec), tt.decDeg)
			}
		})
	}
}

func TestMeanElements_EarthFromSolarTheory(t *testing.T) {
	jd := julian.CalendarGregorianToJD(2025, 1, 4)
	if got, want := (meanElements{}).heliocentric(planetelements.Earth, jd), solarEarth(jd); got != want {
		t.Errorf("Earth = %+v, want %+v", got, want)
	}
}

func TestMeanElements_OrbitRadius(t *testing.T) {
	jd := julian.CalendarGregorianToJD(2025, 10, 14)
	tests := []struct {
		planet   int
		min, max float64 // perihelion and aphelion, AU
	}{
		{planetelements.Mercury, 0.307, 0.467},
		{planetelements.Mars, 1.381, 1.666},
		{planetelements.Jupiter, 4.95, 5.46},
	}
	for _, tt := range tests {
		r := (meanElements{}).heliocentric(tt.planet, jd).Norm()
		if r < tt.min || r > tt.max {
			t.Errorf("planet %d: r = %v AU, want in [%v, %v]", tt.planet, r, tt.min, tt.max)
		}
	}
}

func TestBodyString(t *testing.T) {
	if BodyJupiter.String() != "Jupiter" {
		t.Errorf("BodyJupiter.String() = %q", BodyJupiter.String())
	}
	if Body(99).String() != "unknown" {
		t.Errorf("Body(99).String() = %q", Body(99).String())
	}
}
