// Package visibility derives rise, transit and set times from positions
// sampled over a time span.
package visibility

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/litescript/skyseeker/internal/body"
	"github.com/litescript/skyseeker/internal/sky"
)

// Horizon is the altitude threshold in degrees for rise and set.
const Horizon = 0.0

// Errors for visibility calculations.
var (
	ErrInsufficientSamples = errors.New("insufficient samples for visibility calculation")
	ErrBadStep             = errors.New("sampling step must be positive")
)

// Positioner computes the position of a body. body.Pipeline satisfies it.
type Positioner interface {
	Position(b body.CelestialBody, o sky.Observer, t sky.Time, eo sky.EarthOrientation) (sky.Position, error)
}

// Sample is a position at an instant.
type Sample struct {
	Time     time.Time
	Position sky.Position
}

// Window is a rise-transit-set cycle. Rise or Set is zero when the
// crossing falls outside the sampled span.
type Window struct {
	Rise        time.Time
	Transit     time.Time
	Set         time.Time
	MaxAltitude float64
	AlwaysUp    bool // circumpolar over the span
	NeverUp     bool
}

// SampleSpan positions b every step over [start, start+span].
func SampleSpan(p Positioner, b body.CelestialBody, o sky.Observer, eo sky.EarthOrientation, start time.Time, span, step time.Duration) ([]Sample, error) {
	if step <= 0 {
		return nil, ErrBadStep
	}
	n := int(span/step) + 1
	samples := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		at := start.Add(time.Duration(i) * step)
		t, err := sky.FromTime(at)
		if err != nil {
			return nil, err
		}
		pos, err := p.Position(b, o, t, eo)
		if err != nil {
			return nil, fmt.Errorf("sample %s at %s: %w", b.ID(), at.Format(time.RFC3339), err)
		}
		samples = append(samples, Sample{Time: at, Position: pos})
	}
	return samples, nil
}

// RiseSet finds the first rise, the following set and the highest point
// in chronologically ordered samples. Crossings are linearly
// interpolated between samples.
func RiseSet(samples []Sample) (Window, error) {
	if len(samples) < 3 {
		return Window{}, ErrInsufficientSamples
	}

	minAlt, maxAlt := 90.0, -90.0
	for _, s := range samples {
		minAlt = math.Min(minAlt, s.Position.Altitude)
		maxAlt = math.Max(maxAlt, s.Position.Altitude)
	}

	transit, peak := MaxAltitude(samples)
	switch {
	case minAlt > Horizon:
		return Window{Transit: transit, MaxAltitude: peak, AlwaysUp: true}, nil
	case maxAlt <= Horizon:
		return Window{NeverUp: true, MaxAltitude: maxAlt}, nil
	}

	w := Window{Transit: transit, MaxAltitude: peak}
	riseIdx := 0
	for i := 1; i < len(samples); i++ {
		prev, cur := samples[i-1], samples[i]
		if prev.Position.Altitude <= Horizon && cur.Position.Altitude > Horizon {
			w.Rise = interpolateCrossing(prev, cur, Horizon)
			riseIdx = i
			break
		}
	}
	for i := riseIdx + 1; i < len(samples); i++ {
		prev, cur := samples[i-1], samples[i]
		if prev.Position.Altitude > Horizon && cur.Position.Altitude <= Horizon {
			w.Set = interpolateCrossing(prev, cur, Horizon)
			break
		}
	}
	return w, nil
}

// MaxAltitude returns the time and altitude of the highest sample,
// refined with a parabola through its neighbours.
func MaxAltitude(samples []Sample) (time.Time, float64) {
	if len(samples) == 0 {
		return time.Time{}, 0
	}

	idx := 0
	for i, s := range samples {
		if s.Position.Altitude > samples[idx].Position.Altitude {
			idx = i
		}
	}
	if idx == 0 || idx == len(samples)-1 {
		return samples[idx].Time, samples[idx].Position.Altitude
	}

	// y = at² + bt + c with t = -1, 0, +1 at the three samples
	y0 := samples[idx-1].Position.Altitude
	y1 := samples[idx].Position.Altitude
	y2 := samples[idx+1].Position.Altitude
	c := y1
	a := (y0+y2)/2 - c
	b := (y2 - y0) / 2
	if a >= 0 {
		return samples[idx].Time, y1
	}

	tMax := min(max(-b/(2*a), -1), 1)
	dt := samples[idx].Time.Sub(samples[idx-1].Time)
	return samples[idx].Time.Add(time.Duration(float64(dt) * tMax)), a*tMax*tMax + b*tMax + c
}

// interpolateCrossing finds when altitude crosses threshold between s1 and s2.
func interpolateCrossing(s1, s2 Sample, threshold float64) time.Time {
	alt1, alt2 := s1.Position.Altitude, s2.Position.Altitude
	if math.Abs(alt2-alt1) < 0.0001 {
		return s1.Time
	}
	fraction := min(max((threshold-alt1)/(alt2-alt1), 0), 1)
	return s1.Time.Add(time.Duration(float64(s2.Time.Sub(s1.Time)) * fraction))
}

// Tier categorizes altitude for display.
type Tier int

const (
	TierNone   Tier = iota // below horizon
	TierLow                // 0-15 degrees
	TierMedium             // 15-45 degrees
	TierHigh               // 45+ degrees
)

// AltitudeTier returns the tier for an altitude in degrees.
func AltitudeTier(alt float64) Tier {
	switch {
	case alt <= Horizon:
		return TierNone
	case alt < 15:
		return TierLow
	case alt < 45:
		return TierMedium
	default:
		return TierHigh
	}
}
