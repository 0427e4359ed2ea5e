package output

import (
	"math"
	"strconv"
	"strings"
)

const floatPrecision = 6

// RoundFloat rounds a float to six decimal places.
func RoundFloat(f float64) float64 {
	multiplier := math.Pow(10, floatPrecision)
	return math.Round(f*multiplier) / multiplier
}

// FormatFloat renders a float with at most six decimals and no trailing
// zeros, so scores print identically across runs and platforms.
func FormatFloat(f float64) string {
	str := strconv.FormatFloat(RoundFloat(f), 'f', floatPrecision, 64)
	str = strings.TrimRight(str, "0")
	return strings.TrimRight(str, ".")
}
