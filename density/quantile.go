package density

import (
	"math"
	"sort"
)

// DefaultThreshold replaces any threshold outside [0,1].
const DefaultThreshold = 0.5

// NormalizeThreshold returns t when 0 <= t <= 1, otherwise DefaultThreshold.
func NormalizeThreshold(t float64) float64 {
	if t >= 0 && t <= 1 {
		return t
	}
	return DefaultThreshold
}

// Quantile returns the q-quantile of counts using linear interpolation:
// counts are sorted, pos = q×(n−1), and the result interpolates between
// the values at floor(pos) and ceil(pos). q is normalized first.
// An empty input yields 0.
func Quantile(counts []int, q float64) float64 {
	if len(counts) == 0 {
		return 0
	}
	q = NormalizeThreshold(q)
	sorted := make([]int, len(counts))
	copy(sorted, counts)
	sort.Ints(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return float64(sorted[lo])
	}
	frac := pos - float64(lo)
	return float64(sorted[lo]) + frac*float64(sorted[hi]-sorted[lo])
}
