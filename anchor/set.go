// Package anchor implements user-placed correspondence anchors and the
// bounded local remapping that moving one triggers. An anchor is a bare
// position on a track's time axis; the Editor turns click, drag, and delete
// gestures into set mutations and windowed remaps of attached series.
package anchor

import "sort"

// Set is an ordered collection of anchor positions. Positions are kept
// sorted at all times; duplicates are allowed to coexist but the editing
// gestures never create them.
type Set struct {
	pos []float64
}

func NewSet() *Set { return &Set{} }

func (s *Set) Len() int { return len(s.pos) }

// Positions returns a copy of the sorted positions.
func (s *Set) Positions() []float64 {
	out := make([]float64, len(s.pos))
	copy(out, s.pos)
	return out
}

func (s *Set) Clear() { s.pos = s.pos[:0] }

// Insert adds x, keeping the slice sorted.
func (s *Set) Insert(x float64) {
	i := sort.SearchFloat64s(s.pos, x)
	s.pos = append(s.pos, 0)
	copy(s.pos[i+1:], s.pos[i:])
	s.pos[i] = x
}

// Remove deletes one anchor exactly at x and reports whether one existed.
func (s *Set) Remove(x float64) bool {
	i := sort.SearchFloat64s(s.pos, x)
	if i >= len(s.pos) || s.pos[i] != x {
		return false
	}
	s.pos = append(s.pos[:i], s.pos[i+1:]...)
	return true
}

// Contains reports whether an anchor sits exactly at x.
func (s *Set) Contains(x float64) bool {
	i := sort.SearchFloat64s(s.pos, x)
	return i < len(s.pos) && s.pos[i] == x
}

// ExistsWithin reports whether any anchor lies strictly inside
// (x-halfWidth, x+halfWidth). A non-positive halfWidth degrades to an
// exact membership test.
func (s *Set) ExistsWithin(x, halfWidth float64) bool {
	if halfWidth <= 0 {
		return s.Contains(x)
	}
	i := sort.SearchFloat64s(s.pos, x-halfWidth)
	for ; i < len(s.pos) && s.pos[i] < x+halfWidth; i++ {
		if s.pos[i] > x-halfWidth {
			return true
		}
	}
	return false
}

// ClosestWithin returns the anchor nearest to x among those strictly inside
// (x-halfWidth, x+halfWidth), or false when the window is empty.
func (s *Set) ClosestWithin(x, halfWidth float64) (float64, bool) {
	best, found := 0.0, false
	for _, p := range s.pos {
		if p <= x-halfWidth || p >= x+halfWidth {
			continue
		}
		if !found || abs(p-x) < abs(best-x) {
			best, found = p, true
		}
	}
	return best, found
}

// Bounding returns the nearest anchor strictly below x and the nearest
// strictly above it, falling back to the global bounds when no anchor is
// on that side.
func (s *Set) Bounding(x, boundMin, boundMax float64) (lo, hi float64) {
	lo, hi = boundMin, boundMax
	for _, p := range s.pos {
		if p < x {
			if p > lo {
				lo = p
			}
		} else if p > x {
			// sorted, so the first anchor above x is the closest
			if p < hi {
				hi = p
			}
			break
		}
	}
	return lo, hi
}

// ValidateMove reports whether moving an anchor at from to to keeps the
// ordering intact: no other anchor may end up on the opposite side of the
// moved one. The anchor itself trivially satisfies both checks.
func (s *Set) ValidateMove(from, to float64) bool {
	for _, p := range s.pos {
		if p == from {
			continue
		}
		if p < from != (p < to) || p == to {
			return false
		}
	}
	return true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
