package domain

import (
	"math"
	"strconv"
	"strings"
)

// Round2 rounds to two decimal places using round-half-to-even, so repeated
// aggregation over symmetric data does not drift upward.
func Round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

// FormatAmount renders an already-rounded value for the output CSV with a
// minimum of one decimal place: 30 → "30.0", 3.75 → "3.75". Counts are
// written as plain integers and do not go through this function.
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
