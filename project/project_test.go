package project_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aheidt/dtw-app/anchor"
	"github.com/aheidt/dtw-app/midievent"
	"github.com/aheidt/dtw-app/project"
	"github.com/aheidt/dtw-app/remap"
)

func TestSignal_Duration(t *testing.T) {
	s := project.Signal{Samples: make([]float64, 22050), SampleRate: 22050}
	assert.Equal(t, 1.0, s.Duration())
	assert.Equal(t, 0.0, project.Signal{}.Duration())
}

func TestAlign_SampleRateMismatch(t *testing.T) {
	p := project.New()
	p.Reference = project.Signal{Samples: make([]float64, 100), SampleRate: 22050}
	p.Performance = project.Signal{Samples: make([]float64, 100), SampleRate: 44100}

	_, err := p.Align()
	assert.ErrorIs(t, err, project.ErrSampleRateMismatch)
}

// TestAlign_RecoversTwoToOneTempo aligns an eight-note melody against a
// double-speed performance of it and expects the remap function to roughly
// double times across the middle of the track. The notes all have distinct
// pitch classes; long runs of identical chroma would leave the path
// underdetermined.
func TestAlign_RecoversTwoToOneTempo(t *testing.T) {
	const sr = 22050
	p := project.New()
	p.Reference = project.Signal{Samples: melodyTake(sr, 0.25), SampleRate: sr}
	p.Performance = project.Signal{Samples: melodyTake(sr, 0.125), SampleRate: sr}

	a, err := p.Align()
	require.NoError(t, err)
	require.NotEmpty(t, a.Table)

	assert.Equal(t, a.RefFeatures.Frames(), a.Cost.Rows())
	assert.Equal(t, a.PerfFeatures.Frames(), a.Cost.Cols())

	// Performance time t should land near reference time 2t, within one
	// note length of wiggle.
	for _, pt := range []float64{0.25, 0.5, 0.75} {
		assert.InDelta(t, 2*pt, a.Remap.At(pt), 0.3, "at performance time %v", pt)
	}
}

// TestApply_WarpsEventsInOnePass applies a hand-built alignment and checks
// the events moved and the bounds followed.
func TestApply_WarpsEventsInOnePass(t *testing.T) {
	p := project.New()
	p.SetEvents(midievent.List{
		{Type: midievent.NoteOn, Note: 60, Velocity: 90, Time: 0.5},
		{Type: midievent.NoteOff, Note: 60, Time: 1.0},
		{Type: midievent.NoteOn, Note: 64, Velocity: 90, Time: 1.5},
	})

	f, err := remap.NewInterpolant([]float64{0, 1}, []float64{0, 2})
	require.NoError(t, err)

	p.Apply(&project.Alignment{Remap: f})

	assert.Equal(t, 1.0, p.Events[0].Time)
	assert.Equal(t, 2.0, p.Events[1].Time)
	assert.Equal(t, 3.0, p.Events[2].Time, "extrapolated past the table")
	assert.Equal(t, 3.0, p.BoundMax, "bounds follow the warped event end")
}

// TestApply_NotIdempotent documents that committing the same alignment
// twice warps twice; re-running on already-remapped data is the caller's
// responsibility to avoid.
func TestApply_NotIdempotent(t *testing.T) {
	p := project.New()
	p.SetEvents(midievent.List{{Type: midievent.NoteOn, Note: 60, Time: 1.0}})

	f, err := remap.NewInterpolant([]float64{0, 1}, []float64{0, 2})
	require.NoError(t, err)

	p.Apply(&project.Alignment{Remap: f})
	once := p.Events[0].Time
	p.Apply(&project.Alignment{Remap: f})

	assert.NotEqual(t, once, p.Events[0].Time)
}

// TestReset restores the as-loaded event times and drops the anchors.
func TestReset(t *testing.T) {
	p := project.New()
	p.SetEvents(midievent.List{
		{Type: midievent.NoteOn, Note: 60, Time: 0.5},
		{Type: midievent.NoteOff, Note: 60, Time: 1.0},
	})

	f, err := remap.NewInterpolant([]float64{0, 1}, []float64{0, 3})
	require.NoError(t, err)
	p.Apply(&project.Alignment{Remap: f})
	p.PerfEditor.Click(1.2)
	require.NotEqual(t, 0.5, p.Events[0].Time)

	p.Reset()

	assert.Equal(t, 0.5, p.Events[0].Time)
	assert.Equal(t, 1.0, p.Events[1].Time)
	assert.Equal(t, 0, p.PerfEditor.Anchors().Len())
}

// TestPerfEditorEditsEvents checks the wiring: anchors on the performance
// editor remap the project's event table.
func TestPerfEditorEditsEvents(t *testing.T) {
	p := project.New()
	p.SetEvents(midievent.List{
		{Type: midievent.NoteOn, Note: 60, Time: 2.0},
		{Type: midievent.NoteOn, Note: 62, Time: 4.0},
	})
	// Bounds snapped to [0, 4] by SetEvents.
	require.Equal(t, 4.0, p.BoundMax)

	require.Equal(t, anchor.Inserted, p.PerfEditor.Click(2.0))
	require.Equal(t, anchor.Moved, p.PerfEditor.Drag(2.0, 3.0))

	// Table {0:0, 2:3, 4:4} over [0, 4).
	assert.InDelta(t, 3.0, p.Events[0].Time, 1e-12)
	assert.Equal(t, 4.0, p.Events[1].Time, "event at the upper bound stays put")
}

// melodyTake renders an ascending eight-note melody, one sine tone of
// noteDur seconds per note, every note a distinct pitch class.
func melodyTake(sr int, noteDur float64) []float64 {
	freqs := []float64{261.63, 293.66, 329.63, 349.23, 392.00, 440.00, 493.88, 554.37}
	n := int(noteDur * float64(sr))
	out := make([]float64, 0, len(freqs)*n)
	for _, f := range freqs {
		for i := 0; i < n; i++ {
			out = append(out, 0.8*math.Sin(2*math.Pi*f*float64(i)/float64(sr)))
		}
	}
	return out
}
