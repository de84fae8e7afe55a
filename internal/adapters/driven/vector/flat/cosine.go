package flat

import "math"

// Cosine returns the cosine similarity of a and b.
// Vectors of different length, or with zero magnitude, score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	return cosine(a, magnitude(a), b, magnitude(b))
}

func cosine(a []float32, anorm float64, b []float32, bnorm float64) float64 {
	if anorm == 0 || bnorm == 0 {
		return 0
	}
	var dot float64
	for n := range a {
		dot += float64(a[n]) * float64(b[n])
	}
	sim := dot / (anorm * bnorm)
	// Rounding can push identical vectors just past 1.
	return math.Max(-1, math.Min(1, sim))
}

func magnitude(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}
