package align

import "errors"

// ErrEmptyPath indicates a mapping was requested for an empty warp path.
var ErrEmptyPath = errors.New("align: warp path is empty")

// Point is one correspondence between the two time axes, in seconds.
type Point struct {
	Query     float64
	Reference float64
}

// Table is the minimal monotone sample of a warp path: strictly increasing in
// Query, sufficient to build a remap interpolant.
type Table []Point

// Mapping converts a warp path to a correspondence table. Frame indices
// become seconds via hop/rate, the (reference, query) orientation of the path
// flips to (query, reference), and duplicate query times collapse to their
// first occurrence rather than being averaged.
func Mapping(path []Coord, hopSize, sampleRate int) (Table, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}
	scale := float64(hopSize) / float64(sampleRate)

	out := make(Table, 0, len(path))
	for _, p := range path {
		q := float64(p.J) * scale
		if len(out) > 0 && q <= out[len(out)-1].Query {
			continue
		}
		out = append(out, Point{Query: q, Reference: float64(p.I) * scale})
	}
	return out, nil
}
