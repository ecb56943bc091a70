// Package remap builds continuous time-remapping functions from discrete
// correspondence points: piecewise-linear interpolation between the points,
// linear (slope-following) extrapolation beyond them.
package remap

import (
	"errors"
	"sort"

	"github.com/aheidt/dtw-app/align"
)

// ErrDegenerateTable indicates fewer than two distinct sample points; no
// meaningful interpolant exists and the caller must not fall back to a
// constant.
var ErrDegenerateTable = errors.New("remap: need at least two distinct sample points")

// Interpolant is a piecewise-linear function over (x, y) sample points.
// Outside the sampled range it follows the slope of the nearest segment;
// it never continues flat.
type Interpolant struct {
	xs []float64
	ys []float64
}

// NewInterpolant builds an interpolant from parallel x/y slices. Points are
// sorted by x internally; duplicate x values collapse to their first
// occurrence (after sorting, the one first in input order).
func NewInterpolant(xs, ys []float64) (*Interpolant, error) {
	if len(xs) != len(ys) {
		return nil, errors.New("remap: xs and ys length mismatch")
	}
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })

	f := &Interpolant{
		xs: make([]float64, 0, len(xs)),
		ys: make([]float64, 0, len(ys)),
	}
	for _, i := range idx {
		if n := len(f.xs); n > 0 && xs[i] == f.xs[n-1] {
			continue
		}
		f.xs = append(f.xs, xs[i])
		f.ys = append(f.ys, ys[i])
	}
	if len(f.xs) < 2 {
		return nil, ErrDegenerateTable
	}
	return f, nil
}

// FromTable builds the global remap function of a correspondence table,
// mapping query time to reference time.
func FromTable(tbl align.Table) (*Interpolant, error) {
	xs := make([]float64, len(tbl))
	ys := make([]float64, len(tbl))
	for i, p := range tbl {
		xs[i] = p.Query
		ys[i] = p.Reference
	}
	return NewInterpolant(xs, ys)
}

// At evaluates the interpolant at t.
func (f *Interpolant) At(t float64) float64 {
	n := len(f.xs)
	// Segment index: the first knot >= t, clamped so extrapolation reuses
	// the outermost segment's slope.
	k := sort.SearchFloat64s(f.xs, t)
	if k == 0 {
		k = 1
	}
	if k >= n {
		k = n - 1
	}
	x0, x1 := f.xs[k-1], f.xs[k]
	y0, y1 := f.ys[k-1], f.ys[k]
	slope := (y1 - y0) / (x1 - x0)
	return y0 + slope*(t-x0)
}

// ApplyInPlace maps every value of ts through the interpolant, one pass.
func (f *Interpolant) ApplyInPlace(ts []float64) {
	for i := range ts {
		ts[i] = f.At(ts[i])
	}
}
