package handlers

import (
	"testing"
	"time"
)

func d(day int) time.Time {
	return time.Date(2024, 6, day, 0, 0, 0, 0, time.UTC)
}

func TestRangesOverlap(t *testing.T) {
	cases := []struct {
		name                       string
		start1, end1, start2, end2 time.Time
		want                       bool
	}{
		{"disjoint before", d(1), d(3), d(5), d(10), false},
		{"disjoint after", d(11), d(12), d(5), d(10), false},
		{"touching endpoints conflict", d(1), d(5), d(5), d(10), true},
		{"touching at start conflicts", d(10), d(12), d(5), d(10), true},
		{"contained", d(6), d(7), d(5), d(10), true},
		{"containing", d(1), d(20), d(5), d(10), true},
		{"partial overlap", d(8), d(15), d(5), d(10), true},
		{"identical", d(5), d(10), d(5), d(10), true},
		{"single-day inside", d(7), d(7), d(5), d(10), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := rangesOverlap(tc.start1, tc.end1, tc.start2, tc.end2); got != tc.want {
				t.Errorf("rangesOverlap = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRangesOverlapIsSymmetric(t *testing.T) {
	pairs := [][4]time.Time{
		{d(1), d(5), d(5), d(10)},
		{d(1), d(3), d(5), d(10)},
		{d(6), d(7), d(5), d(10)},
	}

	for _, p := range pairs {
		a := rangesOverlap(p[0], p[1], p[2], p[3])
		b := rangesOverlap(p[2], p[3], p[0], p[1])
		if a != b {
			t.Errorf("overlap not symmetric for %v", p)
		}
	}
}
