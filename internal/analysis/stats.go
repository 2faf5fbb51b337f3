package analysis

import (
	"math"
	"sort"
)

func sum(xs []float64) float64 {
	var total float64
	for _, x := range xs {
		total += x
	}
	return total
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return sum(xs) / float64(len(xs))
}

func median(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func maxOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func minOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

// stddev is the sample standard deviation (n-1 denominator); 0 when fewer
// than two values exist.
func stddev(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	m := mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}

// percentile computes the p-th percentile (0-100) with linear interpolation
// between closest ranks.
func percentile(xs []float64, p float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	if n == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// longestRunBelow returns the length of the longest run of consecutive
// values under threshold. The sequence partitions into maximal runs of
// dry/wet days; the result is the longest dry run, 0 if none is dry.
func longestRunBelow(xs []float64, threshold float64) int {
	longest, current := 0, 0
	for _, x := range xs {
		if x < threshold {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}
	return longest
}

func countBelow(xs []float64, threshold float64) int {
	var n int
	for _, x := range xs {
		if x < threshold {
			n++
		}
	}
	return n
}

// meanDelta is the mean of day-over-day differences; 0 with fewer than two
// values.
func meanDelta(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	var total float64
	for i := 1; i < len(xs); i++ {
		total += xs[i] - xs[i-1]
	}
	return total / float64(len(xs)-1)
}
