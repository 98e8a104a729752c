package astro

import (
	"math"
	"testing"
)

func vecNear(a, b Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func TestVec3Norm(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want float64
	}{
		{"zero", Vec3{0, 0, 0}, 0},
		{"unit x", Vec3{1, 0, 0}, 1},
		{"unit y", Vec3{0, 1, 0}, 1},
		{"unit z", Vec3{0, 0, 1}, 1},
		{"3-4-5", Vec3{3, 4, 0}, 5},
		{"negative", Vec3{-3, -4, 0}, 5},
		{"3D", Vec3{1, 2, 2}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Norm()
			if math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("Norm() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3Normalized(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want Vec3
	}{
		{"unit x", Vec3{5, 0, 0}, Vec3{1, 0, 0}},
		{"unit y", Vec3{0, 3, 0}, Vec3{0, 1, 0}},
		{"diagonal", Vec3{1, 1, 0}, Vec3{1 / math.Sqrt(2), 1 / math.Sqrt(2), 0}},
		{"zero", Vec3{0, 0, 0}, Vec3{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Normalized()
			if !vecNear(got, tt.want, 1e-10) {
				t.Errorf("Normalized() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSphericalRoundTrip(t *testing.T) {
	for lon := -170.0; lon <= 180; lon += 35 {
		for lat := -80.0; lat <= 80; lat += 20 {
			v := FromSpherical(degToRad(lon), degToRad(lat))
			if math.Abs(v.Norm()-1) > 1e-12 {
				t.Fatalf("FromSpherical(%v, %v) not a unit vector", lon, lat)
			}
			gotLon, gotLat := v.Spherical()
			if math.Abs(radToDeg(gotLon)-lon) > 1e-9 || math.Abs(radToDeg(gotLat)-lat) > 1e-9 {
				t.Errorf("round trip (%v, %v) -> (%v, %v)", lon, lat, radToDeg(gotLon), radToDeg(gotLat))
			}
		}
	}
}

func TestSphericalZero(t *testing.T) {
	lon, lat := Vec3{}.Spherical()
	if lon != 0 || lat != 0 {
		t.Errorf("zero vector Spherical() = (%v, %v), want (0, 0)", lon, lat)
	}
}

func TestRotateX_Obliquity(t *testing.T) {
	// The equatorial north pole tilts toward +Y in the ecliptic frame.
	obl := degToRad(23.44)
	got := Vec3{0, 0, 1}.RotateX(obl)
	want := Vec3{0, math.Sin(obl), math.Cos(obl)}
	if !vecNear(got, want, 1e-12) {
		t.Errorf("RotateX(ε) of pole = %v, want %v", got, want)
	}

	back := got.RotateX(-obl)
	if !vecNear(back, Vec3{0, 0, 1}, 1e-12) {
		t.Errorf("RotateX(-ε) did not invert: %v", back)
	}
}

func TestRotateZ_AddsLongitude(t *testing.T) {
	v := FromSpherical(degToRad(30), degToRad(10))
	lon, lat := v.RotateZ(-degToRad(15)).Spherical()
	if math.Abs(radToDeg(lon)-45) > 1e-9 {
		t.Errorf("lon = %v, want 45", radToDeg(lon))
	}
	if math.Abs(radToDeg(lat)-10) > 1e-9 {
		t.Errorf("lat = %v, want 10", radToDeg(lat))
	}
}

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -5, 6}

	if got := a.Add(b); got != (Vec3{5, -3, 9}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != (Vec3{-3, 7, -3}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale = %v", got)
	}
}
