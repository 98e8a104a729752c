// Package codec serializes catalogs of celestial bodies as zstd
// compressed gob streams.
package codec

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/litescript/skyseeker/internal/body"
)

// ErrCorrupt is returned for data that cannot be decompressed or decoded.
var ErrCorrupt = errors.New("corrupt catalog data")

// record is the wire form of a CelestialBody.
type record struct {
	Kind   body.Kind
	Star   *starRecord
	Planet body.Planet
}

// starRecord flattens the optional fields of body.Star, since gob drops
// pointers to zero values.
type starRecord struct {
	Star  body.Star
	HasHR bool
	HR    uint16
	HasBV bool
	BV    float64
}

func newStarRecord(s *body.Star) *starRecord {
	r := &starRecord{Star: *s}
	r.Star.HR, r.Star.BV = nil, nil
	if s.HR != nil {
		r.HasHR, r.HR = true, *s.HR
	}
	if s.BV != nil {
		r.HasBV, r.BV = true, *s.BV
	}
	return r
}

func (r *starRecord) star() body.Star {
	s := r.Star
	if r.HasHR {
		hr := r.HR
		s.HR = &hr
	}
	if r.HasBV {
		bv := r.BV
		s.BV = &bv
	}
	return s
}

type envelope struct {
	Version int
	Bodies  []record
}

const formatVersion = 1

// Encode serializes bodies.
func Encode(bodies []body.CelestialBody) ([]byte, error) {
	env := envelope{Version: formatVersion, Bodies: make([]record, 0, len(bodies))}
	for _, b := range bodies {
		r := record{Kind: b.Kind()}
		if s, ok := b.Star(); ok {
			r.Star = newStarRecord(s)
		}
		if p, ok := b.Planet(); ok {
			r.Planet = p
		}
		env.Bodies = append(env.Bodies, r)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(env); err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(buf.Bytes(), nil), nil
}

// Decode parses data produced by Encode.
func Decode(data []byte) ([]body.CelestialBody, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer dec.Close()

	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	var env envelope
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if env.Version != formatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, env.Version)
	}

	bodies := make([]body.CelestialBody, 0, len(env.Bodies))
	for i, r := range env.Bodies {
		b, err := r.body()
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrCorrupt, i, err)
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

func (r record) body() (body.CelestialBody, error) {
	switch r.Kind {
	case body.KindStar:
		if r.Star == nil {
			return body.CelestialBody{}, errors.New("star without data")
		}
		return body.NewStar(r.Star.star()), nil
	case body.KindPlanet:
		if !r.Planet.Valid() {
			return body.CelestialBody{}, fmt.Errorf("unknown planet %d", r.Planet)
		}
		return body.NewPlanet(r.Planet), nil
	case body.KindMoon:
		return body.Moon(), nil
	case body.KindSun:
		return body.Sun(), nil
	default:
		return body.CelestialBody{}, fmt.Errorf("unknown kind %d", r.Kind)
	}
}

// Write encodes bodies to w.
func Write(w io.Writer, bodies []body.CelestialBody) error {
	data, err := Encode(bodies)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Read decodes all of r.
func Read(r io.Reader) ([]body.CelestialBody, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Decode(data)
}

// LoadFile decodes the catalog file at path.
func LoadFile(path string) ([]body.CelestialBody, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// SaveFile encodes bodies to path, replacing any existing file.
func SaveFile(path string, bodies []body.CelestialBody) error {
	data, err := Encode(bodies)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}
