package utils

import "math"

// RoundToCents rounds half away from zero to two decimals.
func RoundToCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
