// Package chroma extracts harmonic-enhanced chroma features from raw audio:
// a Hann STFT, median-filter harmonic/percussive separation, a constant-Q
// pitch-class filterbank, and nearest-neighbour transient suppression.
package chroma

import (
	"errors"
)

// harmonicMargin controls how aggressively percussive energy is masked out
// before the chroma projection. Larger values keep only strongly harmonic
// bins.
const harmonicMargin = 8.0

// ErrBadSampleRate indicates a non-positive sample rate.
var ErrBadSampleRate = errors.New("chroma: sample rate must be positive")

// Features is a chroma feature matrix: one 12-bin pitch-class vector per
// analysis frame. Read-only after construction.
type Features struct {
	frames     [][]float64
	hop        int
	sampleRate int
}

// Frames returns the number of analysis frames T.
func (f *Features) Frames() int { return len(f.frames) }

// Bins returns the number of pitch classes per frame (always 12).
func (f *Features) Bins() int { return chromaBins }

// Frame returns the pitch-class vector of frame t. The returned slice is the
// backing storage; callers must not modify it.
func (f *Features) Frame(t int) []float64 { return f.frames[t] }

// Row returns pitch class pc across all frames, for (12, T)-shaped exports.
func (f *Features) Row(pc int) []float64 {
	row := make([]float64, len(f.frames))
	for t := range f.frames {
		row[t] = f.frames[t][pc]
	}
	return row
}

// FrameTime returns the time of frame t in seconds.
func (f *Features) FrameTime(t int) float64 {
	return float64(t) * float64(f.hop) / float64(f.sampleRate)
}

// HopSize returns the analysis hop in samples.
func (f *Features) HopSize() int { return f.hop }

// SampleRate returns the sample rate the features were extracted at.
func (f *Features) SampleRate() int { return f.sampleRate }

// FeaturesFromFrames wraps precomputed pitch-class frames (indexed
// [frame][bin]) in a Features value. Intended for features that were not
// extracted here, e.g. synthetic fixtures or externally computed matrices.
func FeaturesFromFrames(frames [][]float64, hop, sampleRate int) *Features {
	return &Features{frames: frames, hop: hop, sampleRate: sampleRate}
}

// Extractor turns sample sequences into Features. One Extractor is built per
// sample rate; the filterbank is precomputed once and reused across signals.
type Extractor struct {
	sampleRate int
	fb         *filterbank
}

// NewExtractor builds an extractor for the given sample rate.
func NewExtractor(sampleRate int) (*Extractor, error) {
	if sampleRate <= 0 {
		return nil, ErrBadSampleRate
	}
	return &Extractor{
		sampleRate: sampleRate,
		fb:         newFilterbank(sampleRate),
	}, nil
}

// Extract computes the harmonic-enhanced chroma features of samples.
// A silent or empty signal is not an error; it degenerates to near-zero
// frames and the caller's cost computation proceeds as usual.
func (e *Extractor) Extract(samples []float64) (*Features, error) {
	spec, err := stft(samples)
	if err != nil {
		return nil, err
	}
	mags := magnitudes(spec, e.fb.specBins)
	harm := harmonicMagnitudes(mags, harmonicMargin)

	raw := make([][]float64, len(harm))
	for t := range harm {
		raw[t] = make([]float64, chromaBins)
		e.fb.chromaFrame(harm[t], raw[t])
	}

	smoothed := nnFilter(raw)
	for t := range raw {
		for b := range raw[t] {
			if smoothed[t][b] < raw[t][b] {
				raw[t][b] = smoothed[t][b]
			}
		}
	}

	return &Features{frames: raw, hop: HopSize, sampleRate: e.sampleRate}, nil
}
