// Package align computes the temporal warp between two chroma feature
// sequences: a dense local-cost matrix, a weighted multi-step dynamic time
// warping search, and the conversion of the discrete warp path into a
// correspondence table in seconds.
package align

import (
	"github.com/aheidt/dtw-app/chroma"
	"github.com/aheidt/dtw-app/dsp"
)

// CostMatrix holds the pairwise local distances between the frames of a
// reference and a query feature sequence. Entry (i, j) is the Euclidean
// distance between reference frame i and query frame j.
type CostMatrix [][]float64

// Rows returns the number of reference frames.
func (c CostMatrix) Rows() int { return len(c) }

// Cols returns the number of query frames.
func (c CostMatrix) Cols() int {
	if len(c) == 0 {
		return 0
	}
	return len(c[0])
}

// NewCostMatrix computes the dense Euclidean cost matrix between two feature
// sequences. No windowing restriction is applied; every (i, j) pair is
// evaluated.
func NewCostMatrix(ref, query *chroma.Features) CostMatrix {
	out := make(CostMatrix, ref.Frames())
	for i := range out {
		row := make([]float64, query.Frames())
		a := ref.Frame(i)
		for j := range row {
			row[j] = dsp.EuclideanDistance(a, query.Frame(j))
		}
		out[i] = row
	}
	return out
}
