package math3d

import "math"

// Radians converts degrees to radians. The camera keeps its angles in
// degrees and converts only when building vectors or projections.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
