// Package body models the closed set of sky objects (stars, planets,
// the Moon and the Sun) and the pipeline that positions them.
package body

import (
	"fmt"
	"slices"

	"github.com/litescript/skyseeker/internal/astro"
)

// Kind identifies the variant of a CelestialBody.
type Kind uint8

const (
	KindStar Kind = iota + 1
	KindPlanet
	KindMoon
	KindSun
)

func (k Kind) String() string {
	switch k {
	case KindStar:
		return "star"
	case KindPlanet:
		return "planet"
	case KindMoon:
		return "moon"
	case KindSun:
		return "sun"
	default:
		return "unknown"
	}
}

// Planet enumerates the planets other than Earth.
type Planet uint8

const (
	Mercury Planet = iota
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
)

var planetNames = [...]string{"Mercury", "Venus", "Mars", "Jupiter", "Saturn", "Uranus", "Neptune"}

// ID returns the catalog identifier of the planet.
func (p Planet) ID() string {
	if int(p) < len(planetNames) {
		return planetNames[p]
	}
	return fmt.Sprintf("Planet(%d)", p)
}

func (p Planet) String() string { return p.ID() }

// Valid reports whether p is one of the enumerated planets.
func (p Planet) Valid() bool { return p <= Neptune }

// ephemerisBody maps a planet to the ephemeris body selector.
func (p Planet) ephemerisBody() astro.Body {
	return astro.BodyMercury + astro.Body(p)
}

// CelestialBody is one of Star, Planet, Moon or Sun. Star data is shared
// by pointer and must not be modified once wrapped.
type CelestialBody struct {
	kind   Kind
	star   *Star
	planet Planet
}

// NewStar wraps a copy of s. When s.ID is empty it is derived from the
// HR number, or the name when there is no HR number.
func NewStar(s Star) CelestialBody {
	s.Notes = slices.Clone(s.Notes)
	if s.ID == "" {
		s.ID = deriveStarID(s)
	}
	return CelestialBody{kind: KindStar, star: &s}
}

// NewPlanet returns the body for p.
func NewPlanet(p Planet) CelestialBody {
	return CelestialBody{kind: KindPlanet, planet: p}
}

// Moon returns the Moon.
func Moon() CelestialBody { return CelestialBody{kind: KindMoon} }

// Sun returns the Sun.
func Sun() CelestialBody { return CelestialBody{kind: KindSun} }

// StandardBodies returns the seven planets followed by the Moon and Sun.
func StandardBodies() []CelestialBody {
	bodies := make([]CelestialBody, 0, 9)
	for p := Mercury; p <= Neptune; p++ {
		bodies = append(bodies, NewPlanet(p))
	}
	return append(bodies, Moon(), Sun())
}

// Kind returns the variant.
func (b CelestialBody) Kind() Kind { return b.kind }

// ID returns the unique catalog identifier.
func (b CelestialBody) ID() string {
	switch b.kind {
	case KindStar:
		return b.star.ID
	case KindPlanet:
		return b.planet.ID()
	case KindMoon:
		return "Moon"
	case KindSun:
		return "Sun"
	default:
		return ""
	}
}

// Star returns the shared star record for star bodies.
func (b CelestialBody) Star() (*Star, bool) {
	return b.star, b.kind == KindStar
}

// Planet returns the planet for planet bodies.
func (b CelestialBody) Planet() (Planet, bool) {
	return b.planet, b.kind == KindPlanet
}

func (b CelestialBody) IsStar() bool   { return b.kind == KindStar }
func (b CelestialBody) IsPlanet() bool { return b.kind == KindPlanet }
func (b CelestialBody) IsMoon() bool   { return b.kind == KindMoon }
func (b CelestialBody) IsSun() bool    { return b.kind == KindSun }

// VisualMagnitude returns the catalog magnitude for stars and a fixed
// display magnitude for the other bodies.
func (b CelestialBody) VisualMagnitude() float64 {
	switch b.kind {
	case KindStar:
		return b.star.VisualMagnitude
	case KindMoon:
		return -3
	case KindSun:
		return -14
	default:
		return 0
	}
}

// Constellation returns the star's constellation abbreviation, or "".
func (b CelestialBody) Constellation() string {
	if b.kind != KindStar {
		return ""
	}
	return b.star.Constellation
}

// DisplayName returns the most readable name available.
func (b CelestialBody) DisplayName() string {
	if b.kind == KindStar {
		switch {
		case b.star.CommonName != "":
			return b.star.CommonName
		case b.star.Name != "":
			return b.star.Name
		}
	}
	return b.ID()
}

func (b CelestialBody) String() string {
	return fmt.Sprintf("%s %s", b.kind, b.ID())
}
