package ui

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/litescript/skyseeker/internal/sky"
)

func TestDirection(t *testing.T) {
	const r = 100.0
	tests := []struct {
		name    string
		pos     sky.Position
		x, y, z float64
	}{
		{"north horizon", sky.Position{Azimuth: 0, Altitude: 0}, 0, 0, r},
		{"east horizon", sky.Position{Azimuth: 90, Altitude: 0}, -r, 0, 0},
		{"south horizon", sky.Position{Azimuth: 180, Altitude: 0}, 0, 0, -r},
		{"west horizon", sky.Position{Azimuth: 270, Altitude: 0}, r, 0, 0},
		{"zenith", sky.Position{Azimuth: 123, Altitude: 90}, 0, r, 0},
		{"nadir", sky.Position{Azimuth: 0, Altitude: -90}, 0, -r, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, z := Direction(tt.pos, r)
			assert.InDelta(t, tt.x, x, 1e-9)
			assert.InDelta(t, tt.y, y, 1e-9)
			assert.InDelta(t, tt.z, z, 1e-9)
		})
	}
}

func TestDirection_Length(t *testing.T) {
	x, y, z := Direction(sky.Position{Azimuth: 37.5, Altitude: 21.25}, 7)
	assert.InDelta(t, 7.0, math.Sqrt(x*x+y*y+z*z), 1e-12)
	assert.InDelta(t, 7*math.Sin(21.25*math.Pi/180), y, 1e-12)
}

func TestLuminance(t *testing.T) {
	assert.InDelta(t, 500.0, Luminance(0), 1e-9)
	assert.InDelta(t, 5000.0, Luminance(-2.5), 1.0, "2.5 magnitudes is about a factor of ten")
	assert.Greater(t, Luminance(1), Luminance(2))

	assert.Equal(t, MaxLuminance, Luminance(-26.7))
	assert.Equal(t, MinLuminance, Luminance(30))
}
