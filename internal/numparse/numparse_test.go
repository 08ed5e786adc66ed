package numparse

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadingInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1", 1, true},
		{"  42", 42, true},
		{"12abc", 12, true},
		{"-3", -3, true},
		{"+7", 7, true},
		{"1.9", 1, true},
		{"1e3", 1, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-", 0, false},
		{".5", 0, false},
		{"9223372036854775807", math.MaxInt, true},
		{"9223372036854775808", math.MaxInt, true},
		{"18446744073709551615", math.MaxInt, true},
		{"-9223372036854775808", math.MinInt, true},
		{"-99999999999999999999", math.MinInt, true},
		{"0x10", 0, true},
	}
	for _, tt := range tests {
		got, ok := LeadingInt(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestIsNumeric(t *testing.T) {
	for _, s := range []string{"5", " 5 ", "-2", "1.5", "1e3", "   ", ".5", "1.", "1e400",
		"Infinity", "-Infinity", "0x10", "0XfF", "0o17", "0b101", "99999999999999999999"} {
		assert.True(t, IsNumeric(s), s)
	}
	for _, s := range []string{"abc", "5x", "NaN", "nan", "1,000", "inf", "infinity", "INFINITY",
		"-0x10", "0x", "0x1p-2", "1_000", "0b102", "."} {
		assert.False(t, IsNumeric(s), s)
	}
}
