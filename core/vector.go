package core

import "math"

// NormalizeVector scales v to unit length and returns the result as a new
// slice. A zero vector has no direction and comes back as all zeros; empty
// input is returned as is.
func NormalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	var sumSquares float64
	for _, x := range v {
		sumSquares += float64(x) * float64(x)
	}

	out := make([]float32, len(v))
	if sumSquares == 0 {
		return out
	}

	norm := float32(math.Sqrt(sumSquares))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}
