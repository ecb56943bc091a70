package anchor

import "sort"

// Series is any time-ordered sequence whose times inside a half-open window
// can be pushed through a remap function. midievent.List satisfies it, as
// does TimeAxis for raw sample-time tracks.
type Series interface {
	ApplyWindowedRemap(lo, hi float64, f func(float64) float64)
}

// TimeAxis is a sorted slice of times in seconds implementing Series.
type TimeAxis []float64

func (a TimeAxis) ApplyWindowedRemap(lo, hi float64, f func(float64) float64) {
	start := sort.SearchFloat64s(a, lo)
	end := sort.SearchFloat64s(a, hi)
	for i := start; i < end; i++ {
		a[i] = f(a[i])
	}
}
