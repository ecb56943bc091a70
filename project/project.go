// Package project ties the pipeline together: it owns the two audio tracks
// and the MIDI event table, runs the alignment from chroma extraction down
// to the remap function, and hosts the anchor editors for the manual
// touch-up that follows.
package project

import (
	"errors"
	"fmt"

	"github.com/aheidt/dtw-app/align"
	"github.com/aheidt/dtw-app/anchor"
	"github.com/aheidt/dtw-app/chroma"
	"github.com/aheidt/dtw-app/midievent"
	"github.com/aheidt/dtw-app/remap"
)

// ErrSampleRateMismatch indicates the two tracks were loaded at different
// rates; the cost matrix would compare frames of different durations.
var ErrSampleRateMismatch = errors.New("project: reference and performance sample rates differ")

// Signal is one mono audio track.
type Signal struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the track length in seconds.
func (s Signal) Duration() float64 {
	if s.SampleRate <= 0 {
		return 0
	}
	return float64(len(s.Samples)) / float64(s.SampleRate)
}

// Alignment bundles everything one alignment run produces, from the raw
// feature matrices down to the remap function. Intermediate stages stay
// accessible for inspection and dumping.
type Alignment struct {
	RefFeatures  *chroma.Features
	PerfFeatures *chroma.Features
	Cost         align.CostMatrix
	Acc          [][]float64
	Path         []align.Coord
	Table        align.Table
	Remap        *remap.Interpolant
}

// Project holds a reference track, a performance track, and the MIDI events
// that follow the reference timeline until Apply warps them onto the
// performance.
type Project struct {
	Reference   Signal
	Performance Signal
	Events      midievent.List

	RefEditor  *anchor.Editor
	PerfEditor *anchor.Editor

	BoundMin float64
	BoundMax float64

	loaded midievent.List
}

// New creates an empty project with unit bounds and one anchor editor per
// track.
func New() *Project {
	p := &Project{BoundMax: 1}
	p.RefEditor = anchor.NewEditor(anchor.NewSet(), 0, 1)
	p.PerfEditor = anchor.NewEditor(anchor.NewSet(), 0, 1)
	return p
}

// SetEvents installs the MIDI event table and snapshots it so Reset can
// restore the as-loaded times. The table is attached to the performance
// editor: its anchors edit the event timeline.
func (p *Project) SetEvents(l midievent.List) {
	p.Events = l
	p.loaded = make(midievent.List, len(l))
	copy(p.loaded, l)
	p.PerfEditor = anchor.NewEditor(anchor.NewSet(), p.BoundMin, p.BoundMax)
	p.PerfEditor.Attach(p.Events)
	p.ResetBounds()
}

// ResetBounds recomputes the global bound range: zero up to the longest
// track end, with a one second floor so an empty project still has a
// usable range.
func (p *Project) ResetBounds() {
	end := 1.0
	for _, d := range []float64{
		p.Reference.Duration(),
		p.Performance.Duration(),
		p.Events.End(),
	} {
		if d > end {
			end = d
		}
	}
	p.BoundMin, p.BoundMax = 0, end
	for _, e := range []*anchor.Editor{p.RefEditor, p.PerfEditor} {
		e.SetBounds(p.BoundMin, p.BoundMax)
		e.SetView(p.BoundMin, p.BoundMax)
	}
}

// Align runs the full pipeline on the current tracks: chroma features for
// both, the pairwise cost matrix, the constrained path search, and the
// correspondence table with its remap function. The project itself is not
// modified; pass the result to Apply to commit it.
//
// Aligning already-warped data is allowed but not idempotent: each run
// measures the tracks as they currently sound.
func (p *Project) Align() (*Alignment, error) {
	if p.Reference.SampleRate != p.Performance.SampleRate {
		return nil, fmt.Errorf("%w: %d vs %d", ErrSampleRateMismatch,
			p.Reference.SampleRate, p.Performance.SampleRate)
	}

	ex, err := chroma.NewExtractor(p.Reference.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("project: extractor: %w", err)
	}
	refF, err := ex.Extract(p.Reference.Samples)
	if err != nil {
		return nil, fmt.Errorf("project: reference features: %w", err)
	}
	perfF, err := ex.Extract(p.Performance.Samples)
	if err != nil {
		return nil, fmt.Errorf("project: performance features: %w", err)
	}

	cost := align.NewCostMatrix(refF, perfF)
	acc, path, err := align.Search(cost)
	if err != nil {
		return nil, fmt.Errorf("project: path search: %w", err)
	}
	tbl, err := align.Mapping(path, chroma.HopSize, p.Reference.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("project: correspondence table: %w", err)
	}
	f, err := remap.FromTable(tbl)
	if err != nil {
		return nil, fmt.Errorf("project: remap function: %w", err)
	}

	return &Alignment{
		RefFeatures:  refF,
		PerfFeatures: perfF,
		Cost:         cost,
		Acc:          acc,
		Path:         path,
		Table:        tbl,
		Remap:        f,
	}, nil
}

// Apply commits an alignment: every event time is pushed through the remap
// function in one pass, moving the events from the performance timeline
// onto the reference timeline. Bounds are recomputed afterwards.
func (p *Project) Apply(a *Alignment) {
	p.Events.ApplyRemap(a.Remap.At)
	p.Events.SortByTime()
	p.ResetBounds()
}

// Reset restores the as-loaded event times and discards all anchors.
func (p *Project) Reset() {
	copy(p.Events, p.loaded)
	p.RefEditor.Anchors().Clear()
	p.PerfEditor.Anchors().Clear()
	p.ResetBounds()
}
