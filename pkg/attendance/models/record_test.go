package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRoll(t *testing.T) {
	assert.Equal(t, "R001", NormalizeRoll("  r001\t"))
	assert.Equal(t, "", NormalizeRoll("   "))
}

func TestParseMark(t *testing.T) {
	for _, s := range []string{"P", "A"} {
		m, ok := ParseMark(s)
		assert.True(t, ok, s)
		assert.Equal(t, Mark(s), m)
	}
	for _, s := range []string{"p", " P", "L", ""} {
		_, ok := ParseMark(s)
		assert.False(t, ok, s)
	}
}

func TestSessionTally(t *testing.T) {
	rec := AttendanceRecord{TotalPresent: 10, TotalAbsent: 0, Sessions: []Mark{Present, Absent, Present}}

	present, absent := rec.SessionTally()
	assert.Equal(t, 2, present)
	assert.Equal(t, 1, absent)
	assert.Equal(t, 10, rec.TotalClasses())
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		pct      float64
		expected Band
	}{
		{100, BandHigh},
		{75, BandHigh},
		{74.99, BandMedium},
		{60, BandMedium},
		{59.9, BandLow},
		{0, BandLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, BandFor(tt.pct), "%v", tt.pct)
	}
}
