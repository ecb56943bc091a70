package midievent

import (
	"fmt"
	"math"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Timing is fixed rather than read from the tempo map: the alignment works in
// wall-clock seconds and a constant 120 BPM grid keeps the tick conversion
// trivial in both directions.
const (
	tempoMicros       = 500000
	writeTicksPerBeat = 96
)

// ReadOptions control the SMF import.
type ReadOptions struct {
	// ClipStart shifts all events so the earliest one lands at t=0.
	ClipStart bool
	// VelocityZeroAsOff treats note-on with velocity 0 as a note-off,
	// the running-status shorthand many sequencers emit.
	VelocityZeroAsOff bool
	// TempoFactor scales the tick resolution used for the conversion to
	// seconds; 0 means 1.0.
	TempoFactor float64
}

// ReadSMF loads the note events of a standard MIDI file, merging all tracks
// into one list ordered by absolute time in seconds. Non-note messages
// (tempo, program change, controllers) are dropped.
func ReadSMF(path string, opts ReadOptions) (List, error) {
	s, err := smf.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("midievent: read %s: %w", path, err)
	}

	tpb := 480.0
	if mt, ok := s.TimeFormat.(smf.MetricTicks); ok {
		tpb = float64(mt)
	}
	if opts.TempoFactor > 0 {
		tpb *= opts.TempoFactor
	}
	secPerTick := tempoMicros / 1e6 / tpb

	var out List
	for _, tr := range s.Tracks {
		var ticks uint64
		for _, ev := range tr {
			ticks += uint64(ev.Delta)
			var ch, key, vel uint8
			var e Event
			switch {
			case opts.VelocityZeroAsOff && ev.Message.GetNoteStart(&ch, &key, &vel):
				e = Event{Type: NoteOn, Channel: ch, Note: key, Velocity: vel}
			case opts.VelocityZeroAsOff && ev.Message.GetNoteEnd(&ch, &key):
				e = Event{Type: NoteOff, Channel: ch, Note: key}
			case !opts.VelocityZeroAsOff && ev.Message.GetNoteOn(&ch, &key, &vel):
				e = Event{Type: NoteOn, Channel: ch, Note: key, Velocity: vel}
			case !opts.VelocityZeroAsOff && ev.Message.GetNoteOff(&ch, &key, &vel):
				e = Event{Type: NoteOff, Channel: ch, Note: key, Velocity: vel}
			default:
				continue
			}
			e.Time = float64(ticks) * secPerTick
			out = append(out, e)
		}
	}
	out.SortByTime()

	if opts.ClipStart && len(out) > 0 {
		t0 := out[0].Time
		for i := range out {
			out[i].Time -= t0
		}
	}
	return out, nil
}

// WriteSMF saves the list as a single-track format-0 file on the fixed
// 120 BPM grid. Events must already be ordered by time; negative deltas
// from unordered input clamp to zero instead of corrupting the file.
func WriteSMF(path string, events List) error {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(writeTicksPerBeat)
	ticksPerSec := writeTicksPerBeat * 1e6 / tempoMicros

	var tr smf.Track
	prev := 0.0
	for _, e := range events {
		dt := e.Time - prev
		if dt < 0 {
			dt = 0
		}
		delta := uint32(math.Round(dt * ticksPerSec))
		if e.Type == NoteOn {
			tr.Add(delta, midi.NoteOn(e.Channel, e.Note, e.Velocity))
		} else {
			tr.Add(delta, midi.NoteOffVelocity(e.Channel, e.Note, e.Velocity))
		}
		prev += dt
	}
	tr.Close(0)
	s.Add(tr)

	if err := s.WriteFile(path); err != nil {
		return fmt.Errorf("midievent: write %s: %w", path, err)
	}
	return nil
}
