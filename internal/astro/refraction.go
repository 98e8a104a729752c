package astro

import (
	"math"
)

// Atmosphere holds the ambient conditions used for refraction.
type Atmosphere struct {
	PressureHPa  float64 // 0 disables refraction
	TemperatureC float64
	Humidity     float64 // relative, 0..1
	WavelengthUM float64 // micrometers; above 100 selects the radio model
}

// RefractionConstants returns A and B for ΔZ = A·tan Z + B·tan³ Z,
// in radians.
func RefractionConstants(atm Atmosphere) (a, b float64) {
	optical := atm.WavelengthUM <= 100

	t := clamp(atm.TemperatureC, -150, 200)
	p := clamp(atm.PressureHPa, 0, 10000)
	r := clamp(atm.Humidity, 0, 1)
	w := clamp(atm.WavelengthUM, 0.1, 1e6)

	// Water vapour pressure at the observer.
	var pw float64
	if p > 0 {
		ps := math.Pow(10, (0.7859+0.03477*t)/(1+0.00412*t)) *
			(1 + p*(4.5e-6+6e-10*t*t))
		pw = r * ps / (1 - (1-r)*ps/p)
	}

	tk := t + 273.15
	var gamma float64
	if optical {
		wlsq := w * w
		gamma = ((77.53484e-6+(4.39108e-7+3.666e-9/wlsq)/wlsq)*p - 11.2684e-6*pw) / tk
	} else {
		gamma = (77.6890e-6*p - (6.3938e-6-0.375463/tk)*pw) / tk
	}

	beta := 4.4474e-6 * tk
	if !optical {
		beta -= 0.0074 * pw * beta
	}

	a = gamma * (1 - beta)
	b = -gamma * (beta - gamma/2)
	return a, b
}

const (
	// Floors keep tan Z finite at and below the horizon.
	refrMinCosZ = 0.05
	refrMinSinZ = 1e-6
)

// Refract lifts a topocentric unit vector (east, north, up) by the
// refraction model. The result is a unit vector.
func Refract(enu Vec3, a, b float64) Vec3 {
	if a == 0 && b == 0 {
		return enu
	}
	r := math.Hypot(enu.X, enu.Y)
	if r < refrMinSinZ {
		r = refrMinSinZ
	}
	z := enu.Z
	if z < refrMinCosZ {
		z = refrMinCosZ
	}

	tz := r / z
	w := b * tz * tz
	del := (a + w) * tz / (1 + (a+3*w)/(z*z))

	cosdel := 1 - del*del/2
	f := cosdel - del*z/r

	return Vec3{
		X: enu.X * f,
		Y: enu.Y * f,
		Z: cosdel*enu.Z + del*r,
	}.Normalized()
}
