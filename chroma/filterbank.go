package chroma

import "math"

const (
	chromaBins    = 12
	binsPerOctave = 12
	numOctaves    = 5

	// minFreq is C2; five octaves up is C7, covering the pitched range of
	// most keyboard material without the noisy extremes.
	minFreq = 65.40639132514966

	// qFactor is the constant ratio of center frequency to bandwidth.
	qFactor = 25.0
)

// bandFilter is one constant-Q band: Gaussian weights over a contiguous run
// of FFT bins, normalized to unit sum.
type bandFilter struct {
	pitchClass int
	firstBin   int
	weights    []float64
}

// filterbank projects a magnitude spectrum onto logarithmically spaced
// constant-Q bands and folds them into 12 pitch classes (bin 0 = C).
type filterbank struct {
	bands []bandFilter

	// specBins is how many FFT bins the bank actually reads; spectra can be
	// cropped to this width before any per-bin processing.
	specBins int
}

func newFilterbank(sampleRate int) *filterbank {
	fb := &filterbank{}
	binHz := float64(sampleRate) / fftSize
	nyquistBin := fftSize / 2

	for k := 0; k < numOctaves*binsPerOctave; k++ {
		freq := minFreq * math.Pow(2, float64(k)/binsPerOctave)
		if freq >= float64(sampleRate)/2 {
			break
		}
		sigma := freq / qFactor
		lo := int(math.Floor((freq - 4*sigma) / binHz))
		hi := int(math.Ceil((freq + 4*sigma) / binHz))
		if lo < 1 {
			lo = 1
		}
		if hi > nyquistBin {
			hi = nyquistBin
		}
		if lo > hi {
			continue
		}

		weights := make([]float64, hi-lo+1)
		var sum float64
		for b := lo; b <= hi; b++ {
			d := (float64(b)*binHz - freq) / sigma
			weights[b-lo] = math.Exp(-0.5 * d * d)
			sum += weights[b-lo]
		}
		if sum < 1e-24 {
			continue
		}
		for i := range weights {
			weights[i] /= sum
		}

		fb.bands = append(fb.bands, bandFilter{
			pitchClass: k % chromaBins,
			firstBin:   lo,
			weights:    weights,
		})
		if hi+1 > fb.specBins {
			fb.specBins = hi + 1
		}
	}
	return fb
}

// chromaFrame fills out (length 12) with the pitch-class energies of one
// magnitude frame, scaled so the strongest class is 1.
func (fb *filterbank) chromaFrame(mag []float64, out []float64) {
	for i := range out {
		out[i] = 0
	}
	for _, band := range fb.bands {
		var energy float64
		for i, w := range band.weights {
			b := band.firstBin + i
			if b >= len(mag) {
				break
			}
			energy += w * mag[b] * mag[b]
		}
		out[band.pitchClass] += energy
	}

	var max float64
	for _, v := range out {
		if v > max {
			max = v
		}
	}
	if max > 1e-24 {
		for i := range out {
			out[i] /= max
		}
	}
}
