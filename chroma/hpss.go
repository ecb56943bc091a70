package chroma

import (
	"github.com/aheidt/dtw-app/dsp"
)

// hpssKernel is the median-filter length used for both the time-direction
// (harmonic) and frequency-direction (percussive) estimates.
const hpssKernel = 31

// harmonicMagnitudes isolates the sustained tonal part of a magnitude
// spectrogram. Horizontal (per-bin, across-time) medians estimate harmonic
// energy, vertical (per-frame, across-frequency) medians estimate percussive
// energy, and a power-2 soft mask with the given margin keeps bins where the
// harmonic estimate dominates. mags is indexed [frame][bin].
func harmonicMagnitudes(mags [][]float64, margin float64) [][]float64 {
	frames := len(mags)
	if frames == 0 {
		return nil
	}
	bins := len(mags[0])
	half := hpssKernel / 2
	scratch := make([]float64, 0, hpssKernel)

	harm := make([][]float64, frames)
	for t := range harm {
		harm[t] = make([]float64, bins)
		for b := 0; b < bins; b++ {
			scratch = scratch[:0]
			for tt := t - half; tt <= t+half; tt++ {
				if tt >= 0 && tt < frames {
					scratch = append(scratch, mags[tt][b])
				}
			}
			harm[t][b] = dsp.MedianInPlace(scratch)
		}
	}

	out := make([][]float64, frames)
	for t := range out {
		out[t] = make([]float64, bins)
		for b := 0; b < bins; b++ {
			scratch = scratch[:0]
			lo, hi := b-half, b+half
			if lo < 0 {
				lo = 0
			}
			if hi >= bins {
				hi = bins - 1
			}
			scratch = append(scratch, mags[t][lo:hi+1]...)
			perc := dsp.MedianInPlace(scratch)

			h2 := harm[t][b] * harm[t][b]
			p2 := margin * perc * margin * perc
			if h2+p2 < 1e-24 {
				continue
			}
			out[t][b] = mags[t][b] * h2 / (h2 + p2)
		}
	}
	return out
}
