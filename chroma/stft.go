package chroma

import (
	"math/cmplx"

	algofft "github.com/cwbudde/algo-fft"

	"github.com/aheidt/dtw-app/dsp"
)

const (
	// HopSize is the analysis hop in samples. Frame i corresponds to time
	// i*HopSize/sampleRate seconds; every downstream frame-to-seconds
	// conversion must use this constant.
	HopSize = 512

	// fftSize is the analysis window length. Large enough to resolve
	// semitone spacing at the bottom of the C2..C7 filterbank range.
	fftSize = 8192
)

// stft returns the complex half-spectrum of each centered, Hann-windowed
// frame. Frames past the signal edges are zero-padded, so even an empty
// signal yields one (silent) frame.
func stft(samples []float64) ([][]complex128, error) {
	plan, err := algofft.NewPlanReal64(fftSize)
	if err != nil {
		return nil, err
	}
	win := dsp.Hann(fftSize)

	frames := 1 + len(samples)/HopSize
	out := make([][]complex128, frames)
	buf := make([]float64, fftSize)
	for t := 0; t < frames; t++ {
		start := t*HopSize - fftSize/2
		for i := 0; i < fftSize; i++ {
			idx := start + i
			if idx >= 0 && idx < len(samples) {
				buf[i] = samples[idx] * win[i]
			} else {
				buf[i] = 0
			}
		}
		spec := make([]complex128, fftSize/2+1)
		plan.Forward(spec, buf)
		out[t] = spec
	}
	return out, nil
}

// magnitudes converts complex spectra to magnitude frames, keeping only the
// first nBins bins (the filterbank never reads above its frequency ceiling).
func magnitudes(spec [][]complex128, nBins int) [][]float64 {
	out := make([][]float64, len(spec))
	for t, frame := range spec {
		n := nBins
		if n > len(frame) {
			n = len(frame)
		}
		row := make([]float64, n)
		for b := 0; b < n; b++ {
			row[b] = cmplx.Abs(frame[b])
		}
		out[t] = row
	}
	return out
}
