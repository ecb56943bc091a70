package dsp

import (
	"math"
	"sort"
)

// Hann returns a Hann window of length n.
func Hann(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

// Median returns the median of xs. The input is not modified.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	tmp := make([]float64, len(xs))
	copy(tmp, xs)
	return MedianInPlace(tmp)
}

// MedianInPlace returns the median of xs, reordering xs as a side effect.
// Useful in tight filter loops where the scratch buffer is reused.
func MedianInPlace(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sort.Float64s(xs)
	mid := len(xs) / 2
	if len(xs)%2 == 1 {
		return xs[mid]
	}
	return 0.5 * (xs[mid-1] + xs[mid])
}

// CosineSimilarity returns the cosine of the angle between a and b,
// or 0 if either vector has (near-)zero norm.
func CosineSimilarity(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na < 1e-24 || nb < 1e-24 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// EuclideanDistance returns the Euclidean distance between a and b.
// The shorter length wins if they differ.
func EuclideanDistance(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
