package codec

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/skyseeker/internal/body"
)

func sampleBodies() []body.CelestialBody {
	hr := uint16(2061)
	bv := 1.85
	bodies := []body.CelestialBody{
		body.NewStar(body.Star{
			HR:              &hr,
			Name:            "58Alp Ori",
			CommonName:      "Betelgeuse",
			Bayer:           "Alp",
			BayerFull:       "Alp Ori",
			Constellation:   "Ori",
			Notes:           []body.Note{{Category: "VAR", Remark: "semiregular"}},
			RA:              1.5497291,
			Dec:             0.1292776,
			PMRA:            1.3e-7,
			PMDec:           5.3e-8,
			Parallax:        0.00655,
			RadialVelocity:  21.91,
			VisualMagnitude: 0.5,
			BV:              &bv,
		}),
		body.NewStar(body.Star{ID: "bare", Parallax: 0.001}),
		body.NewStar(body.Star{ID: "zero color", HR: new(uint16), BV: new(float64)}),
	}
	return append(bodies, body.StandardBodies()...)
}

func TestRoundTrip(t *testing.T) {
	in := sampleBodies()

	data, err := Encode(in)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	out, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, out, len(in))

	for i := range in {
		assert.Equal(t, in[i].ID(), out[i].ID())
		assert.Equal(t, in[i].Kind(), out[i].Kind())

		if s, ok := in[i].Star(); ok {
			got, ok := out[i].Star()
			require.True(t, ok)
			assert.Equal(t, *s, *got)
		}
		if p, ok := in[i].Planet(); ok {
			got, _ := out[i].Planet()
			assert.Equal(t, p, got)
		}
	}
}

func TestRoundTripEmpty(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)

	out, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDecodeCorrupt(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte("definitely not zstd")},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			assert.ErrorIs(t, err, ErrCorrupt)
		})
	}
}

func TestDecodeTruncated(t *testing.T) {
	data, err := Encode(sampleBodies())
	require.NoError(t, err)

	_, err = Decode(data[:len(data)/2])
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestReadWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleBodies()))

	out, err := Read(&buf)
	require.NoError(t, err)
	assert.Len(t, out, len(sampleBodies()))
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.bin")
	require.NoError(t, SaveFile(path, body.BrightStars()))

	out, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, out, len(body.BrightStars()))
}
