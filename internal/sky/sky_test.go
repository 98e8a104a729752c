package sky

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromUTC(t *testing.T) {
	tests := []struct {
		name     string
		y, mo, d int
		h, mi    int
		s        float64
		wantJD   float64
	}{
		{"J2000 epoch", 2000, 1, 1, 12, 0, 0, 2451545.0},
		{"unix epoch", 1970, 1, 1, 0, 0, 0, 2440587.5},
		{"2024-01-01", 2024, 1, 1, 0, 0, 0, 2460310.5},
		{"scenario date", 2025, 10, 14, 1, 30, 0, 2460962.5625},
		{"leap day", 2024, 2, 29, 6, 0, 0, 2460369.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromUTC(tt.y, tt.mo, tt.d, tt.h, tt.mi, tt.s)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantJD, got.JulianDay(), 1e-9)

			utc1, utc2 := got.JulianPair()
			assert.InDelta(t, got.JulianDay(), utc1+utc2, 0)
			assert.True(t, utc2 >= 0 && utc2 < 1, "utc2 = %v", utc2)
		})
	}
}

func TestFromUTC_Errors(t *testing.T) {
	tests := []struct {
		name     string
		y, mo, d int
		h, mi    int
		s        float64
		want     error
	}{
		{"year too early", -4800, 1, 1, 0, 0, 0, ErrBadYear},
		{"month zero", 2025, 0, 1, 0, 0, 0, ErrBadMonth},
		{"month 13", 2025, 13, 1, 0, 0, 0, ErrBadMonth},
		{"day zero", 2025, 1, 0, 0, 0, 0, ErrBadDay},
		{"april 31", 2025, 4, 31, 0, 0, 0, ErrBadDay},
		{"feb 29 non-leap", 2025, 2, 29, 0, 0, 0, ErrBadDay},
		{"feb 29 1900", 1900, 2, 29, 0, 0, 0, ErrBadDay},
		{"hour 24", 2025, 1, 1, 24, 0, 0, ErrBadHour},
		{"negative hour", 2025, 1, 1, -1, 0, 0, ErrBadHour},
		{"minute 60", 2025, 1, 1, 0, 60, 0, ErrBadMinute},
		{"second 60", 2025, 1, 1, 0, 0, 60, ErrBadSecond},
		{"negative second", 2025, 1, 1, 0, 0, -0.5, ErrBadSecond},
		{"NaN second", 2025, 1, 1, 0, 0, math.NaN(), ErrBadSecond},
		{"leap second on ordinary day", 2025, 6, 30, 23, 59, 60.5, ErrBadSecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromUTC(tt.y, tt.mo, tt.d, tt.h, tt.mi, tt.s)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFromUTC_LeapSecond(t *testing.T) {
	got, err := FromUTC(2016, 12, 31, 23, 59, 60.5)
	require.NoError(t, err)

	_, utc2 := got.JulianPair()
	assert.Less(t, utc2, 1.0)

	next, err := FromUTC(2017, 1, 1, 0, 0, 0)
	require.NoError(t, err)
	assert.Less(t, got.JulianDay(), next.JulianDay())
}

func TestFromUTC_Feb29LeapCentury(t *testing.T) {
	_, err := FromUTC(2000, 2, 29, 0, 0, 0)
	assert.NoError(t, err)
}

func TestFromTime(t *testing.T) {
	loc := time.FixedZone("CEST", 2*3600)
	got, err := FromTime(time.Date(2025, 10, 14, 3, 30, 0, 0, loc))
	require.NoError(t, err)

	want, err := FromUTC(2025, 10, 14, 1, 30, 0)
	require.NoError(t, err)
	assert.InDelta(t, want.JulianDay(), got.JulianDay(), 1e-9)
}

func TestFromJulianPair(t *testing.T) {
	got := FromJulianPair(2451545.0, 0.25)
	utc1, utc2 := got.JulianPair()
	assert.Equal(t, 2451545.0, utc1)
	assert.Equal(t, 0.25, utc2)
	assert.Equal(t, 2451545.25, got.JulianDay())
}

func TestObserverDefaults(t *testing.T) {
	o := NewObserver(14, 51)
	assert.InDelta(t, 14*math.Pi/180, o.Longitude, 1e-15)
	assert.InDelta(t, 51*math.Pi/180, o.Latitude, 1e-15)

	assert.Equal(t, 0.0, o.HeightMeters())
	assert.Equal(t, 1013.25, o.PressureHPa())
	assert.Equal(t, 15.0, o.TemperatureC())
	assert.Equal(t, 0.5, o.RelativeHumidity())
	assert.Equal(t, 0.55, o.WavelengthUM())
}

func TestObserverOverrides(t *testing.T) {
	o := NewObserver(0, 0)
	o.Height = Float(300)
	o.Pressure = Float(0)
	o.Humidity = Float(0.2)

	assert.Equal(t, 300.0, o.HeightMeters())
	atm := o.Atmosphere()
	assert.Equal(t, 0.0, atm.PressureHPa)
	assert.Equal(t, 15.0, atm.TemperatureC)
	assert.Equal(t, 0.2, atm.Humidity)
	assert.Equal(t, 0.55, atm.WavelengthUM)
}

func TestEarthOrientationZeroValue(t *testing.T) {
	var eo EarthOrientation
	assert.Zero(t, eo.PolarX)
	assert.Zero(t, eo.PolarY)
	assert.Zero(t, eo.DUT1)
}
