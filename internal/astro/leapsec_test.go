package astro

import "testing"

func TestLeapSteps_OneSecondIncrements(t *testing.T) {
	if got := leapSteps[0].seconds; got != 10 {
		t.Errorf("first step = %v, want 10", got)
	}
	for i := 1; i < len(leapSteps); i++ {
		prev, cur := leapSteps[i-1], leapSteps[i]
		if cur.jd <= prev.jd {
			t.Errorf("step %d-%02d not after %d-%02d", cur.year, cur.month, prev.year, prev.month)
		}
		if cur.seconds-prev.seconds != 1 {
			t.Errorf("step %d-%02d = %v, want %v", cur.year, cur.month, cur.seconds, prev.seconds+1)
		}
		if cur.month != 1 && cur.month != 7 {
			t.Errorf("step %d-%02d not at a January or July boundary", cur.year, cur.month)
		}
	}
}

func TestTAIMinusUTC_Boundaries(t *testing.T) {
	tests := []struct {
		name string
		jd   float64
		want float64
	}{
		{"before 1972", 2440000.5, 10},
		{"last day of 2016", 2457753.5, 36},
		{"first day of 2017", 2457754.5, 37},
		{"2025", 2460962.5, 37},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TAIMinusUTC(tt.jd); got != tt.want {
				t.Errorf("TAIMinusUTC(%v) = %v, want %v", tt.jd, got, tt.want)
			}
		})
	}
}
