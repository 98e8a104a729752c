package astro

import (
	"sort"

	"github.com/soniakeys/meeus/v3/julian"
)

// ttMinusTAI is TT − TAI in seconds.
const ttMinusTAI = 32.184

// leapStep is the TAI − UTC offset in effect from the start of a month.
type leapStep struct {
	year, month int
	seconds     float64
	jd          float64
}

// leapSteps lists TAI − UTC since the introduction of integral leap seconds,
// transcribed from IERS Bulletin C (also distributed as tai-utc.dat). No
// leap second has been announced since 2017-01. Append new steps here when
// Bulletin C announces one.
var leapSteps = buildLeapSteps([]leapStep{
	{year: 1972, month: 1, seconds: 10},
	{year: 1972, month: 7, seconds: 11},
	{year: 1973, month: 1, seconds: 12},
	{year: 1974, month: 1, seconds: 13},
	{year: 1975, month: 1, seconds: 14},
	{year: 1976, month: 1, seconds: 15},
	{year: 1977, month: 1, seconds: 16},
	{year: 1978, month: 1, seconds: 17},
	{year: 1979, month: 1, seconds: 18},
	{year: 1980, month: 1, seconds: 19},
	{year: 1981, month: 7, seconds: 20},
	{year: 1982, month: 7, seconds: 21},
	{year: 1983, month: 7, seconds: 22},
	{year: 1985, month: 7, seconds: 23},
	{year: 1988, month: 1, seconds: 24},
	{year: 1990, month: 1, seconds: 25},
	{year: 1991, month: 1, seconds: 26},
	{year: 1992, month: 7, seconds: 27},
	{year: 1993, month: 7, seconds: 28},
	{year: 1994, month: 7, seconds: 29},
	{year: 1996, month: 1, seconds: 30},
	{year: 1997, month: 7, seconds: 31},
	{year: 1999, month: 1, seconds: 32},
	{year: 2006, month: 1, seconds: 33},
	{year: 2009, month: 1, seconds: 34},
	{year: 2012, month: 7, seconds: 35},
	{year: 2015, month: 7, seconds: 36},
	{year: 2017, month: 1, seconds: 37},
})

func buildLeapSteps(steps []leapStep) []leapStep {
	for i := range steps {
		steps[i].jd = julian.CalendarGregorianToJD(steps[i].year, steps[i].month, 1)
	}
	return steps
}

// TAIMinusUTC returns TAI − UTC in seconds for a UTC Julian date.
// Dates before 1972 use the 1972 offset.
func TAIMinusUTC(jdUTC float64) float64 {
	i := sort.Search(len(leapSteps), func(i int) bool {
		return leapSteps[i].jd > jdUTC
	})
	if i == 0 {
		return leapSteps[0].seconds
	}
	return leapSteps[i-1].seconds
}

// TTMinusUTC returns TT − UTC in seconds for a UTC Julian date.
func TTMinusUTC(jdUTC float64) float64 {
	return TAIMinusUTC(jdUTC) + ttMinusTAI
}
