package astro

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/soniakeys/unit"
)

// Errors for sexagesimal conversion.
var (
	ErrBadSign        = errors.New("unable to convert angle format to radians: bad sign")
	ErrBadDegrees     = errors.New("unable to convert angle format to radians: bad degrees")
	ErrBadHours       = errors.New("unable to convert time format to radians: bad hours")
	ErrBadMinutes     = errors.New("unable to convert angle format to radians: bad minutes")
	ErrBadSeconds     = errors.New("unable to convert angle format to radians: bad seconds")
	ErrMalformedAngle = errors.New("unable to convert angle format to radians")
)

// ArcsecondsToRadians converts arcseconds to radians.
func ArcsecondsToRadians(arcsec float64) float64 {
	return unit.AngleFromSec(arcsec).Rad()
}

// AngleToRadians converts sign/degrees/arcminutes/arcseconds to radians.
// Sign is '-' for negative; '+', ' ' and 0 are positive.
func AngleToRadians(sign byte, degrees, minutes int, seconds float64) (float64, error) {
	neg, err := parseSign(sign)
	if err != nil {
		return 0, err
	}
	if degrees < 0 || degrees > 359 {
		return 0, fmt.Errorf("%w: %d", ErrBadDegrees, degrees)
	}
	if err := checkMinSec(minutes, seconds); err != nil {
		return 0, err
	}
	return unit.NewAngle(neg, degrees, minutes, seconds).Rad(), nil
}

// HoursToRadians converts sign/hours/minutes/seconds of time to radians.
func HoursToRadians(sign byte, hours, minutes int, seconds float64) (float64, error) {
	neg, err := parseSign(sign)
	if err != nil {
		return 0, err
	}
	if hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%w: %d", ErrBadHours, hours)
	}
	if err := checkMinSec(minutes, seconds); err != nil {
		return 0, err
	}
	return unit.NewHourAngle(neg, hours, minutes, seconds).Rad(), nil
}

// ParseDMS parses "±DD:MM:SS.s" or "±DD MM SS.s" into radians.
// A single field is read as decimal degrees.
func ParseDMS(s string) (float64, error) {
	sign, fields, err := splitSexagesimal(s)
	if err != nil {
		return 0, err
	}
	if len(fields) == 1 {
		deg, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedAngle, s)
		}
		if sign == '-' {
			deg = -deg
		}
		return degToRad(deg), nil
	}
	d, m, sec, err := sexagesimalFields(s, fields)
	if err != nil {
		return 0, err
	}
	return AngleToRadians(sign, d, m, sec)
}

// ParseHMS parses "HH:MM:SS.s" (optionally signed) into radians.
func ParseHMS(s string) (float64, error) {
	sign, fields, err := splitSexagesimal(s)
	if err != nil {
		return 0, err
	}
	h, m, sec, err := sexagesimalFields(s, fields)
	if err != nil {
		return 0, err
	}
	return HoursToRadians(sign, h, m, sec)
}

func parseSign(sign byte) (byte, error) {
	switch sign {
	case '-':
		return '-', nil
	case '+', ' ', 0:
		return ' ', nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadSign, sign)
	}
}

func checkMinSec(minutes int, seconds float64) error {
	if minutes < 0 || minutes > 59 {
		return fmt.Errorf("%w: %d", ErrBadMinutes, minutes)
	}
	if !(seconds >= 0 && seconds < 60) {
		return fmt.Errorf("%w: %v", ErrBadSeconds, seconds)
	}
	return nil
}

func splitSexagesimal(s string) (byte, []string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil, ErrMalformedAngle
	}
	var sign byte = '+'
	switch s[0] {
	case '+', '-':
		sign = s[0]
		s = strings.TrimSpace(s[1:])
	}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ':' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 || len(fields) > 3 {
		return 0, nil, fmt.Errorf("%w: %q", ErrMalformedAngle, s)
	}
	return sign, fields, nil
}

func sexagesimalFields(orig string, fields []string) (int, int, float64, error) {
	for len(fields) < 3 {
		fields = append(fields, "0")
	}
	a, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrMalformedAngle, orig)
	}
	b, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrMalformedAngle, orig)
	}
	c, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrMalformedAngle, orig)
	}
	return a, b, c, nil
}
