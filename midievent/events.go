// Package midievent holds the pitched-event table the aligner remaps: typed
// note events with absolute times in seconds, plus standard MIDI file
// import/export. The core pipeline only ever reads and writes seconds;
// tick quantization happens at the file boundary.
package midievent

import "sort"

// EventType distinguishes note starts from note ends.
type EventType uint8

const (
	NoteOn EventType = iota
	NoteOff
)

func (t EventType) String() string {
	if t == NoteOn {
		return "note_on"
	}
	return "note_off"
}

// Event is one pitched event with its absolute time in seconds.
type Event struct {
	Type     EventType
	Channel  uint8
	Note     uint8
	Velocity uint8
	Time     float64
}

// List is a time-ordered sequence of events. Remap operations mutate times
// in place; the ordering invariant is the caller's to preserve (monotone
// remap functions keep it automatically).
type List []Event

// End returns the time of the last event, or 0 for an empty list.
func (l List) End() float64 {
	if len(l) == 0 {
		return 0
	}
	return l[len(l)-1].Time
}

// SortByTime restores the time ordering, keeping equal-time events in their
// current relative order (note-off before the re-struck note-on survives).
func (l List) SortByTime() {
	sort.SliceStable(l, func(a, b int) bool { return l[a].Time < l[b].Time })
}

// ApplyRemap maps every event time through f in one pass.
func (l List) ApplyRemap(f func(float64) float64) {
	for i := range l {
		l[i].Time = f(l[i].Time)
	}
}

// ApplyWindowedRemap maps only the events with Time in [lo, hi) through f,
// located by binary search. Everything outside the window is untouched.
func (l List) ApplyWindowedRemap(lo, hi float64, f func(float64) float64) {
	start := sort.Search(len(l), func(i int) bool { return l[i].Time >= lo })
	end := sort.Search(len(l), func(i int) bool { return l[i].Time >= hi })
	for i := start; i < end; i++ {
		l[i].Time = f(l[i].Time)
	}
}
