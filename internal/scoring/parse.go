package scoring

import (
	"math"
	"strconv"
	"strings"
)

// Numeric settings arrive as form text. These helpers make the coercion
// explicit: trim, parse, and fall back to a documented default instead of
// failing on a typo.

// FloatOrDefault parses s as a decimal, returning def when s is empty,
// malformed, or not a finite number.
func FloatOrDefault(s string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// IntOrDefault parses s as an integer, returning def when s is empty or
// malformed. A decimal string is truncated toward zero, matching parseInt.
func IntOrDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int(f)
	}
	return def
}

// FloatOrNil parses s as a decimal, returning nil for empty or malformed
// input. Used for the handicap index, where absent means "no handicap" rather
// than zero.
func FloatOrNil(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
