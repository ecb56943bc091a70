package align

import (
	"errors"
	"math"
)

var (
	// ErrEmptyCost indicates a cost matrix with zero rows or columns; the
	// warp search is undefined and backtracking must not be attempted.
	ErrEmptyCost = errors.New("align: cost matrix must have at least one row and column")

	// ErrUnreachable indicates the terminal cell cannot be reached from the
	// origin with the allowed step set (pathological shapes, e.g. 1xN).
	ErrUnreachable = errors.New("align: terminal cell unreachable with allowed steps")
)

// Step is one allowed local move of the warp search, with its additive
// penalty. Weights bias the search toward the unit diagonal: long oblique
// jumps and long same-coordinate runs pay progressively more.
type Step struct {
	DI, DJ int
	Weight float64
}

// Steps is the fixed step-size set. Order matters: cost ties in the argmin go
// to the first-listed step, in both the forward pass and the backtrack. Do
// not reorder.
var Steps = []Step{
	{1, 1, 1.0},
	{3, 4, 1.625},
	{4, 3, 1.625},
	{2, 3, 1.8},
	{3, 2, 1.8},
	{1, 2, 2.25},
	{2, 1, 2.25},
	{1, 3, 2.7},
	{3, 1, 2.7},
	{1, 4, 2.875},
	{4, 1, 2.875},
}

// Coord is one cell of the warp path: reference frame I, query frame J.
type Coord struct {
	I, J int
}

// Search runs the weighted shortest-accumulated-cost search over c and
// backtracks the optimal warp path. It returns the accumulated-cost matrix
// and the path in ascending order, from (0,0) to the terminal cell. Steps
// that would leave the matrix are excluded from the minimum, not treated as
// infinite-but-chosen.
func Search(c CostMatrix) ([][]float64, []Coord, error) {
	rows, cols := c.Rows(), c.Cols()
	if rows == 0 || cols == 0 {
		return nil, nil, ErrEmptyCost
	}

	inf := math.Inf(1)
	acc := make([][]float64, rows)
	for i := range acc {
		acc[i] = make([]float64, cols)
		for j := range acc[i] {
			acc[i][j] = inf
		}
	}
	acc[0][0] = c[0][0]

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if i == 0 && j == 0 {
				continue
			}
			best := inf
			for _, s := range Steps {
				pi, pj := i-s.DI, j-s.DJ
				if pi < 0 || pj < 0 {
					continue
				}
				if cand := acc[pi][pj] + s.Weight; cand < best {
					best = cand
				}
			}
			if !math.IsInf(best, 1) {
				acc[i][j] = c[i][j] + best
			}
		}
	}

	if math.IsInf(acc[rows-1][cols-1], 1) {
		return acc, nil, ErrUnreachable
	}

	// Backtrack by re-deriving the argmin at each cell with the same scan
	// order as the forward pass.
	path := []Coord{{rows - 1, cols - 1}}
	i, j := rows-1, cols-1
	for i != 0 || j != 0 {
		best := inf
		bi, bj := -1, -1
		for _, s := range Steps {
			pi, pj := i-s.DI, j-s.DJ
			if pi < 0 || pj < 0 {
				continue
			}
			if cand := acc[pi][pj] + s.Weight; cand < best {
				best = cand
				bi, bj = pi, pj
			}
		}
		if bi < 0 {
			return acc, nil, ErrUnreachable
		}
		i, j = bi, bj
		path = append(path, Coord{i, j})
	}

	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return acc, path, nil
}
