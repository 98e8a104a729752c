package sky

import (
	"math"

	"github.com/litescript/skyseeker/internal/astro"
)

// Defaults applied when an optional observer field is unset.
const (
	DefaultHeight      = 0.0     // meters
	DefaultPressure    = 1013.25 // hPa
	DefaultTemperature = 15.0    // °C
	DefaultHumidity    = 0.5     // fraction
	DefaultWavelength  = 0.55    // µm
)

// Observer is a geodetic site on Earth. Longitude and latitude are in
// radians, east and north positive. Nil optional fields take the
// package defaults.
type Observer struct {
	Longitude float64
	Latitude  float64

	Height      *float64
	Pressure    *float64
	Temperature *float64
	Humidity    *float64
	Wavelength  *float64
}

// NewObserver creates an observer from decimal degrees with every
// optional field unset.
func NewObserver(lonDeg, latDeg float64) Observer {
	return Observer{
		Longitude: lonDeg * math.Pi / 180,
		Latitude:  latDeg * math.Pi / 180,
	}
}

// Float returns a pointer to v, for setting optional observer fields.
func Float(v float64) *float64 {
	return &v
}

func orDefault(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// HeightMeters returns the height above the ellipsoid.
func (o Observer) HeightMeters() float64 { return orDefault(o.Height, DefaultHeight) }

// PressureHPa returns the ambient pressure.
func (o Observer) PressureHPa() float64 { return orDefault(o.Pressure, DefaultPressure) }

// TemperatureC returns the ambient temperature.
func (o Observer) TemperatureC() float64 { return orDefault(o.Temperature, DefaultTemperature) }

// RelativeHumidity returns the relative humidity as a fraction.
func (o Observer) RelativeHumidity() float64 { return orDefault(o.Humidity, DefaultHumidity) }

// WavelengthUM returns the observing wavelength.
func (o Observer) WavelengthUM() float64 { return orDefault(o.Wavelength, DefaultWavelength) }

// Atmosphere returns the refraction inputs with defaults applied.
func (o Observer) Atmosphere() astro.Atmosphere {
	return astro.Atmosphere{
		PressureHPa:  o.PressureHPa(),
		TemperatureC: o.TemperatureC(),
		Humidity:     o.RelativeHumidity(),
		WavelengthUM: o.WavelengthUM(),
	}
}

// EarthOrientation carries polar motion (radians) and UT1−UTC (seconds).
// The zero value is the accepted default.
type EarthOrientation struct {
	PolarX float64
	PolarY float64
	DUT1   float64
}

// Position is an observed direction. Azimuth is a compass bearing in
// degrees [0, 360), 0 = North, 90 = East. Altitude is in degrees above
// the horizon.
type Position struct {
	Azimuth  float64
	Altitude float64
}

// Above reports whether the position is above the horizon.
func (p Position) Above() bool {
	return p.Altitude > 0
}
