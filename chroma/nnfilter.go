package chroma

import (
	"math"
	"sort"

	"github.com/aheidt/dtw-app/dsp"
)

// nnFilter returns a smoothed copy of the chroma frames: each frame is
// replaced by the per-bin median over its k most cosine-similar frames
// (itself included), k ≈ √T. Energy that does not recur anywhere else in the
// piece cannot survive the median, so taking the element-wise minimum of the
// raw and filtered chroma strips transients.
func nnFilter(frames [][]float64) [][]float64 {
	total := len(frames)
	if total == 0 {
		return nil
	}
	k := int(math.Ceil(math.Sqrt(float64(total))))
	if k < 1 {
		k = 1
	}
	if k > total {
		k = total
	}

	type scored struct {
		idx int
		sim float64
	}
	sims := make([]scored, total)
	column := make([]float64, k)

	out := make([][]float64, total)
	for t := range frames {
		for u := range frames {
			sims[u] = scored{idx: u, sim: dsp.CosineSimilarity(frames[t], frames[u])}
		}
		sort.Slice(sims, func(a, b int) bool {
			if sims[a].sim != sims[b].sim {
				return sims[a].sim > sims[b].sim
			}
			return sims[a].idx < sims[b].idx
		})

		row := make([]float64, len(frames[t]))
		for b := range row {
			for n := 0; n < k; n++ {
				column[n] = frames[sims[n].idx][b]
			}
			row[b] = dsp.MedianInPlace(column)
		}
		out[t] = row
	}
	return out
}
