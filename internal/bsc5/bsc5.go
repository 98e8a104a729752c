// Package bsc5 parses the JSON export of the Yale Bright Star Catalogue
// (5th revised edition) into star bodies.
package bsc5

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/litescript/skyseeker/internal/astro"
	"github.com/litescript/skyseeker/internal/body"
	"github.com/litescript/skyseeker/internal/logging"
)

// DefaultParallax is used for entries without a measured parallax, in arcseconds.
const DefaultParallax = 0.001

// ErrMissingRadialVelocity marks entries that cannot be reduced.
var ErrMissingRadialVelocity = errors.New("missing radial velocity")

// Entry is one record of the catalog export. Numeric fields are strings
// in the source data.
type Entry struct {
	HR            string  `json:"HR"`
	Name          *string `json:"Name"`
	Common        *string `json:"Common"`
	Bayer         *string `json:"Bayer"`
	BayerFull     *string `json:"BayerF"`
	Constellation *string `json:"Constellation"`
	Notes         []Note  `json:"Notes"`

	RAHours   string `json:"RAh"`
	RAMinutes string `json:"RAm"`
	RASeconds string `json:"RAs"`

	DecSign    string `json:"DE-"`
	DecDegrees string `json:"DEd"`
	DecMinutes string `json:"DEm"`
	DecSeconds string `json:"DEs"`

	VMag     string  `json:"Vmag"`
	PMRA     string  `json:"pmRA"`     // arcsec/yr
	PMDec    string  `json:"pmDE"`     // arcsec/yr
	RadVel   *string `json:"RadVel"`   // km/s
	Parallax *string `json:"Parallax"` // arcsec
	BV       *string `json:"B-V"`
}

// Note is a catalog remark attached to an entry.
type Note struct {
	Category string `json:"Category"`
	Remark   string `json:"Remark"`
}

// Parse decodes a JSON array of entries. A document that is not valid
// JSON is an error; individual entries that cannot be converted are
// skipped and reported to log at Warn.
func Parse(data []byte, log *logging.Logger) ([]body.CelestialBody, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to deserialize BSC5 data: %w", err)
	}
	return convert(entries, log), nil
}

// ParseReader is Parse over a stream.
func ParseReader(r io.Reader, log *logging.Logger) ([]body.CelestialBody, error) {
	var entries []Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to deserialize BSC5 data: %w", err)
	}
	return convert(entries, log), nil
}

func convert(entries []Entry, log *logging.Logger) []body.CelestialBody {
	if log == nil {
		log = logging.Discard()
	}
	stars := make([]body.CelestialBody, 0, len(entries))
	for _, e := range entries {
		s, err := e.Star()
		if err != nil {
			log.With("hr", e.HR).Warn("skipping BSC5 entry: %v", err)
			continue
		}
		stars = append(stars, body.NewStar(s))
	}
	return stars
}

// Star converts the entry.
func (e Entry) Star() (body.Star, error) {
	hr, err := strconv.ParseUint(strings.TrimSpace(e.HR), 10, 16)
	if err != nil {
		return body.Star{}, fmt.Errorf("failed to parse HR: %w", err)
	}

	ra, err := e.rightAscension()
	if err != nil {
		return body.Star{}, fmt.Errorf("failed to parse right ascension: %w", err)
	}
	dec, err := e.declination()
	if err != nil {
		return body.Star{}, fmt.Errorf("failed to parse declination: %w", err)
	}

	pmra, err := parseFloat(e.PMRA)
	if err != nil {
		return body.Star{}, fmt.Errorf("failed to parse proper motion: %w", err)
	}
	pmdec, err := parseFloat(e.PMDec)
	if err != nil {
		return body.Star{}, fmt.Errorf("failed to parse proper motion: %w", err)
	}

	parallax := DefaultParallax
	if e.Parallax != nil {
		if parallax, err = parseFloat(*e.Parallax); err != nil {
			return body.Star{}, fmt.Errorf("failed to parse parallax: %w", err)
		}
	}

	if e.RadVel == nil {
		return body.Star{}, ErrMissingRadialVelocity
	}
	rv, err := parseFloat(*e.RadVel)
	if err != nil {
		return body.Star{}, fmt.Errorf("failed to parse radial velocity: %w", err)
	}

	vmag, err := parseFloat(e.VMag)
	if err != nil {
		return body.Star{}, fmt.Errorf("failed to parse visual magnitude: %w", err)
	}

	var bv *float64
	if e.BV != nil {
		v, err := parseFloat(*e.BV)
		if err != nil {
			return body.Star{}, fmt.Errorf("failed to parse B-V color: %w", err)
		}
		bv = &v
	}

	n := uint16(hr)
	s := body.Star{
		HR:              &n,
		Name:            deref(e.Name),
		CommonName:      deref(e.Common),
		Bayer:           deref(e.Bayer),
		BayerFull:       deref(e.BayerFull),
		Constellation:   deref(e.Constellation),
		RA:              ra,
		Dec:             dec,
		PMRA:            astro.ArcsecondsToRadians(pmra),
		PMDec:           astro.ArcsecondsToRadians(pmdec),
		Parallax:        parallax,
		RadialVelocity:  rv,
		VisualMagnitude: vmag,
		BV:              bv,
	}
	for _, note := range e.Notes {
		s.Notes = append(s.Notes, body.Note{Category: note.Category, Remark: note.Remark})
	}
	return s, nil
}

func (e Entry) rightAscension() (float64, error) {
	h, err := parseInt(e.RAHours)
	if err != nil {
		return 0, err
	}
	m, err := parseInt(e.RAMinutes)
	if err != nil {
		return 0, err
	}
	s, err := parseFloat(e.RASeconds)
	if err != nil {
		return 0, err
	}
	return astro.HoursToRadians(' ', h, m, s)
}

func (e Entry) declination() (float64, error) {
	sign := strings.TrimSpace(e.DecSign)
	if len(sign) != 1 {
		return 0, fmt.Errorf("%w: %q", astro.ErrBadSign, e.DecSign)
	}
	d, err := parseInt(e.DecDegrees)
	if err != nil {
		return 0, err
	}
	m, err := parseInt(e.DecMinutes)
	if err != nil {
		return 0, err
	}
	s, err := parseFloat(e.DecSeconds)
	if err != nil {
		return 0, err
	}
	return astro.AngleToRadians(sign[0], d, m, s)
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// parseFloat accepts the catalog's explicit leading plus sign.
func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
