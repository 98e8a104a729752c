package body

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/skyseeker/internal/astro"
	"github.com/litescript/skyseeker/internal/sky"
)

func betelgeuse() CelestialBody {
	hr := uint16(2061)
	ra, _ := astro.HoursToRadians('+', 5, 55, 10.30536)
	dec, _ := astro.AngleToRadians('+', 7, 24, 25.4304)
	return NewStar(Star{
		HR:              &hr,
		CommonName:      "Betelgeuse",
		RA:              ra,
		Dec:             dec,
		PMRA:            astro.ArcsecondsToRadians(0.02754) / math.Cos(dec),
		PMDec:           astro.ArcsecondsToRadians(0.01130),
		Parallax:        0.00655,
		RadialVelocity:  21.91,
		VisualMagnitude: 0.5,
	})
}

func scenarioA(t *testing.T) (sky.Observer, sky.Time) {
	t.Helper()
	tm, err := sky.FromUTC(2025, 10, 14, 1, 30, 0)
	require.NoError(t, err)
	o := sky.NewObserver(14, 51)
	o.Height = sky.Float(300)
	return o, tm
}

func TestStarPosition_ScenarioA(t *testing.T) {
	o, tm := scenarioA(t)
	p := DefaultPipeline()

	pos, err := p.Position(betelgeuse(), o, tm, sky.EarthOrientation{})
	require.NoError(t, err)

	assert.False(t, math.IsNaN(pos.Azimuth))
	assert.False(t, math.IsNaN(pos.Altitude))
	assert.GreaterOrEqual(t, pos.Azimuth, 0.0)
	assert.Less(t, pos.Azimuth, 360.0)
	assert.GreaterOrEqual(t, pos.Altitude, -90.0)
	assert.LessOrEqual(t, pos.Altitude, 90.0)

	// Orion climbs in the southeast before dawn in October.
	assert.InDelta(t, 140, pos.Azimuth, 10)
	assert.InDelta(t, 40, pos.Altitude, 5)
}

func TestPlanetPosition_ScenarioA(t *testing.T) {
	o, tm := scenarioA(t)
	p := DefaultPipeline()

	for pl := Mercury; pl <= Neptune; pl++ {
		t.Run(pl.String(), func(t *testing.T) {
			var pos sky.Position
			var err error
			require.NotPanics(t, func() {
				pos, err = p.Position(NewPlanet(pl), o, tm, sky.EarthOrientation{})
			})
			require.NoError(t, err)
			assert.False(t, math.IsNaN(pos.Azimuth))
			assert.False(t, math.IsNaN(pos.Altitude))
			assert.GreaterOrEqual(t, pos.Azimuth, 0.0)
			assert.Less(t, pos.Azimuth, 360.0)
		})
	}
}

func TestStarPosition_Deterministic(t *testing.T) {
	o, tm := scenarioA(t)
	p := DefaultPipeline()
	eo := sky.EarthOrientation{PolarX: 1e-6, PolarY: 2e-6, DUT1: 0.1}

	a, err := p.Position(betelgeuse(), o, tm, eo)
	require.NoError(t, err)
	b, err := p.Position(betelgeuse(), o, tm, eo)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestStarPosition_RefractionLiftsStar(t *testing.T) {
	o, tm := scenarioA(t)
	p := DefaultPipeline()

	withAir, err := p.Position(betelgeuse(), o, tm, sky.EarthOrientation{})
	require.NoError(t, err)

	o.Pressure = sky.Float(0)
	vacuum, err := p.Position(betelgeuse(), o, tm, sky.EarthOrientation{})
	require.NoError(t, err)

	assert.Greater(t, withAir.Altitude, vacuum.Altitude)
	assert.InDelta(t, vacuum.Azimuth, withAir.Azimuth, 1e-6)
}

func TestStarPosition_Polaris(t *testing.T) {
	tm, err := sky.FromUTC(2024, 3, 1, 6, 0, 0)
	require.NoError(t, err)
	p := DefaultPipeline()

	var polaris CelestialBody
	for _, b := range BrightStars() {
		if b.ID() == "HR 424" {
			polaris = b
		}
	}
	require.True(t, polaris.IsStar())

	for _, lat := range []float64{15, 40, 65} {
		pos, err := p.Position(polaris, sky.NewObserver(-75, lat), tm, sky.EarthOrientation{})
		require.NoError(t, err)
		assert.InDelta(t, lat, pos.Altitude, 1.5, "lat %v", lat)
	}
}

type failingAstrometry struct{}

func (failingAstrometry) ReduceStar(astro.StarReduction) (astro.Observed, error) {
	return astro.Observed{}, astro.ErrUnacceptableDate
}

func TestStarPosition_ProviderFailure(t *testing.T) {
	o, tm := scenarioA(t)
	p := NewPipeline(failingAstrometry{}, astro.NewMeeusEphemeris())

	_, err := p.Position(betelgeuse(), o, tm, sky.EarthOrientation{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStarPosition))
	assert.True(t, errors.Is(err, astro.ErrUnacceptableDate))

	// The ecliptic path never consults the star provider.
	_, err = p.Position(Sun(), o, tm, sky.EarthOrientation{})
	assert.NoError(t, err)
}

func TestStarPosition_UnrepresentableDate(t *testing.T) {
	o, _ := scenarioA(t)
	p := DefaultPipeline()

	_, err := p.Position(betelgeuse(), o, sky.FromJulianPair(math.NaN(), 0), sky.EarthOrientation{})
	assert.ErrorIs(t, err, ErrStarPosition)
}

func TestSunNearNoon(t *testing.T) {
	tm, err := sky.FromUTC(2024, 6, 21, 12, 0, 0)
	require.NoError(t, err)

	pos, err := DefaultPipeline().Position(Sun(), sky.NewObserver(0, 51.5), tm, sky.EarthOrientation{})
	require.NoError(t, err)

	// 90 − 51.5 + 23.44
	assert.InDelta(t, 61.9, pos.Altitude, 0.5)
	assert.InDelta(t, 180, pos.Azimuth, 2)
}

func TestEclipticBodiesInRange(t *testing.T) {
	p := DefaultPipeline()
	o := sky.NewObserver(-122.4, 37.8)
	bodies := StandardBodies()

	for _, jd := range []float64{2415020.5, 2451545.0, 2460962.5625, 2488069.5} {
		tm := sky.FromJulianPair(jd, 0)
		for _, b := range bodies {
			pos, err := p.Position(b, o, tm, sky.EarthOrientation{})
			require.NoError(t, err)
			assert.GreaterOrEqual(t, pos.Azimuth, 0.0, "%s at %v", b.ID(), jd)
			assert.Less(t, pos.Azimuth, 360.0, "%s at %v", b.ID(), jd)
			assert.GreaterOrEqual(t, pos.Altitude, -90.0, "%s at %v", b.ID(), jd)
			assert.LessOrEqual(t, pos.Altitude, 90.0, "%s at %v", b.ID(), jd)
		}
	}
}

// fixedEphemeris places every body at the vernal equinox with sidereal
// time zero, so the body transits the Greenwich meridian.
type fixedEphemeris struct{}

func (fixedEphemeris) GeocentricEcliptic(astro.Body, float64) (float64, float64) { return 0, 0 }
func (fixedEphemeris) Nutation(float64) (float64, float64)                     { return 0, 0 }
func (fixedEphemeris) MeanObliquity(float64) float64                           { return 0 }
func (fixedEphemeris) MeanSidereal(float64) float64                            { return 0 }
func (fixedEphemeris) ApparentSidereal(mean, _, _ float64) float64             { return mean }

func TestEclipticPosition_CompassConversion(t *testing.T) {
	p := NewPipeline(failingAstrometry{}, fixedEphemeris{})
	tm := sky.FromJulianPair(2451545.0, 0)

	tests := []struct {
		name    string
		lat     float64
		wantAz  float64
		wantAlt float64
	}{
		{"northern observer sees it south", 40, 180, 50},
		{"southern observer sees it north", -40, 0, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := p.Position(NewPlanet(Mars), sky.NewObserver(0, tt.lat), tm, sky.EarthOrientation{})
			require.NoError(t, err)
			assert.InDelta(t, tt.wantAlt, pos.Altitude, 1e-9)
			diff := math.Abs(pos.Azimuth - tt.wantAz)
			if diff > 180 {
				diff = 360 - diff
			}
			assert.Less(t, diff, 1e-6, "azimuth %v", pos.Azimuth)
		})
	}
}
