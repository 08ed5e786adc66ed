// Package numparse holds lenient integer parsing for values that arrive as
// free text (delimited reference tables, query parameters).
package numparse

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// LeadingInt parses an optional sign and the leading decimal digits of s
// after leading whitespace, ignoring anything that follows ("12abc" is 12,
// "1.9" is 1). It fails when no digit follows the sign. Values beyond the
// int range saturate to math.MaxInt or math.MinInt.
func LeadingInt(s string) (int, bool) {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	start := i
	n := 0
	saturated := false
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		d := int(s[i] - '0')
		if !saturated && n > (math.MaxInt-d)/10 {
			saturated = true
		}
		if !saturated {
			n = n*10 + d
		}
		i++
	}
	if i == start {
		return 0, false
	}
	switch {
	case saturated && neg:
		return math.MinInt, true
	case saturated:
		return math.MaxInt, true
	case neg:
		return -n, true
	}
	return n, true
}

// IsNumeric reports whether s, trimmed, reads as a number the way a
// browser's Number() does. Blank input counts as numeric (zero). Accepted:
// signed decimals with optional fraction and exponent, out-of-range
// magnitudes, exactly "Infinity" with an optional sign, and unsigned
// 0x/0o/0b integers. Go-only spellings ("inf", "nan", hex floats,
// underscores) are rejected.
func IsNumeric(s string) bool {
	t := strings.TrimSpace(s)
	switch t {
	case "":
		return true
	case "Infinity", "+Infinity", "-Infinity":
		return true
	}
	if len(t) > 2 && t[0] == '0' {
		if base, ok := radixPrefixes[t[1]]; ok {
			_, err := strconv.ParseUint(t[2:], base, 64)
			return err == nil || errors.Is(err, strconv.ErrRange)
		}
	}
	for i := 0; i < len(t); i++ {
		c := t[i]
		if (c < '0' || c > '9') && c != '.' && c != '+' && c != '-' && c != 'e' && c != 'E' {
			return false
		}
	}
	_, err := strconv.ParseFloat(t, 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}

var radixPrefixes = map[byte]int{
	'x': 16, 'X': 16,
	'o': 8, 'O': 8,
	'b': 2, 'B': 2,
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
