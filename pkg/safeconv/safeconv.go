// Package safeconv provides integer conversions that saturate instead of
// wrapping around.
package safeconv

import "math"

// Uint64ToInt64 converts v, clamping values above math.MaxInt64.
func Uint64ToInt64(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(v)
}

// AddInt64 returns a+b, saturating at the int64 bounds.
func AddInt64(a, b int64) int64 {
	switch {
	case b > 0 && a > math.MaxInt64-b:
		return math.MaxInt64
	case b < 0 && a < math.MinInt64-b:
		return math.MinInt64
	default:
		return a + b
	}
}
