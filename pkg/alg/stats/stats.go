// Package stats provides core statistical functions for numerical analysis.
// All standard deviation calculations use population stddev (÷n, not ÷(n−1)).
package stats

import (
	"cmp"
	"math"

	"gonum.org/v1/gonum/stat"
)

// zeroSpreadTolerance is the relative tolerance under which a standard
// deviation is treated as zero. Identical inputs can leave a residue of a few
// ULPs after the mean is subtracted.
const zeroSpreadTolerance = 1e-12

// Mean returns the arithmetic mean of values.
// Returns 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	return stat.Mean(values, nil)
}

// MeanStdDev returns the arithmetic mean and population standard deviation.
// Returns (0, 0) for an empty slice.
func MeanStdDev(values []float64) (mean, stddev float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}

	return stat.PopMeanStdDev(values, nil)
}

// IsZeroSpread reports whether stddev is zero up to rounding residue relative
// to the magnitude of mean. Populations of tiny values with a real spread are
// not zero spread.
func IsZeroSpread(mean, stddev float64) bool {
	return stddev == 0 || stddev <= zeroSpreadTolerance*math.Abs(mean)
}

// ZScore returns how many standard deviations value lies from mean.
// A zero spread means every member of the population equals the mean,
// so the score is 0 instead of an infinite or NaN quotient.
func ZScore(value, mean, stddev float64) float64 {
	if IsZeroSpread(mean, stddev) {
		return 0
	}

	return (value - mean) / stddev
}

// Min returns the smallest element in values.
// Returns the zero value of T for an empty slice.
func Min[T cmp.Ordered](values []T) T {
	if len(values) == 0 {
		var zero T

		return zero
	}

	result := values[0]

	for _, v := range values[1:] {
		if v < result {
			result = v
		}
	}

	return result
}

// Max returns the largest element in values.
// Returns the zero value of T for an empty slice.
func Max[T cmp.Ordered](values []T) T {
	if len(values) == 0 {
		var zero T

		return zero
	}

	result := values[0]

	for _, v := range values[1:] {
		if v > result {
			result = v
		}
	}

	return result
}
