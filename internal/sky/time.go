// Package sky holds the value types shared by every position query:
// time, observer, earth orientation and the resulting position.
package sky

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"

	"github.com/litescript/skyseeker/internal/astro"
)

// Time construction errors.
var (
	ErrBadYear   = errors.New("bad year")
	ErrBadMonth  = errors.New("bad month")
	ErrBadDay    = errors.New("bad day")
	ErrBadHour   = errors.New("bad hour")
	ErrBadMinute = errors.New("bad minute")
	ErrBadSecond = errors.New("bad second")
)

// minYear is the earliest year the two-part date can represent.
const minYear = -4799

// Time is an instant in UTC held as a two-part quasi Julian date.
// The zero value is not a valid time; use a constructor.
type Time struct {
	utc1, utc2 float64
}

// FromUTC builds a Time from Gregorian calendar fields.
//
// Seconds may reach 61 on a day that ends with a positive leap second.
func FromUTC(year, month, day, hour, minute int, second float64) (Time, error) {
	if year < minYear {
		return Time{}, fmt.Errorf("%w: %d", ErrBadYear, year)
	}
	if month < 1 || month > 12 {
		return Time{}, fmt.Errorf("%w: %d", ErrBadMonth, month)
	}
	if day < 1 || day > daysIn(year, month) {
		return Time{}, fmt.Errorf("%w: %d-%02d-%02d", ErrBadDay, year, month, day)
	}
	if hour < 0 || hour > 23 {
		return Time{}, fmt.Errorf("%w: %d", ErrBadHour, hour)
	}
	if minute < 0 || minute > 59 {
		return Time{}, fmt.Errorf("%w: %d", ErrBadMinute, minute)
	}

	utc1 := julian.CalendarGregorianToJD(year, month, float64(day))

	// A leap second lengthens the last minute of the day.
	leap := astro.TAIMinusUTC(utc1+1) - astro.TAIMinusUTC(utc1)
	limit := 60.0
	if hour == 23 && minute == 59 {
		limit += leap
	}
	if math.IsNaN(second) || second < 0 || second >= limit {
		return Time{}, fmt.Errorf("%w: %v", ErrBadSecond, second)
	}

	seconds := float64(hour*3600+minute*60) + second
	return Time{utc1: utc1, utc2: seconds / (86400 + leap)}, nil
}

// FromJulianPair builds a Time from a two-part UTC Julian date.
func FromJulianPair(utc1, utc2 float64) Time {
	return Time{utc1: utc1, utc2: utc2}
}

// FromTime converts a Go time to a Time. The location is ignored after
// conversion to UTC.
func FromTime(t time.Time) (Time, error) {
	t = t.UTC()
	sec := float64(t.Second()) + float64(t.Nanosecond())/1e9
	return FromUTC(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), sec)
}

// JulianPair returns the two-part UTC Julian date used by star reduction.
func (t Time) JulianPair() (utc1, utc2 float64) {
	return t.utc1, t.utc2
}

// JulianDay returns the decimal Julian day used by the ephemeris.
func (t Time) JulianDay() float64 {
	return t.utc1 + t.utc2
}

// String formats the time as a Julian day.
func (t Time) String() string {
	return fmt.Sprintf("JD %.6f", t.JulianDay())
}

func daysIn(year, month int) int {
	switch month {
	case 2:
		if julian.LeapYearGregorian(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}
