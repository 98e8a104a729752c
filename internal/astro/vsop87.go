package astro

import (
	"fmt"

	pp "github.com/soniakeys/meeus/v3/planetposition"
)

// vsop87 serves heliocentric positions from loaded VSOP87 series.
type vsop87 struct {
	planets [pp.Neptune + 1]*pp.V87Planet
}

// NewVSOP87Ephemeris returns an ephemeris whose planet and Earth positions
// come from the VSOP87B files in dir. Sun and Moon are unchanged.
func NewVSOP87Ephemeris(dir string) (*MeeusEphemeris, error) {
	var v vsop87
	for i := pp.Mercury; i <= pp.Neptune; i++ {
		planet, err := pp.LoadPlanetPath(i, dir)
		if err != nil {
			return nil, fmt.Errorf("load VSOP87 planet %d from %s: %w", i, dir, err)
		}
		v.planets[i] = planet
	}
	return &MeeusEphemeris{planets: &v}, nil
}

func (v *vsop87) heliocentric(planet int, jde float64) Vec3 {
	L, B, R := v.planets[planet].Position(jde)
	return FromSpherical(L.Rad(), B.Rad()).Scale(R)
}
