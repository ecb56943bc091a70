package anchor

import "github.com/aheidt/dtw-app/remap"

// Gesture proximity windows, as fractions of the visible view width. The
// insert window is slightly wider than the pickup window so that a click
// near an existing anchor reports it instead of stacking a second one on
// top.
const (
	insertWindowFrac = 0.013
	pickupWindowFrac = 0.01
)

// Result describes what a gesture did.
type Result int

const (
	NoMatch Result = iota
	Inserted
	AlreadyExists
	Moved
	Blocked
	Deleted
)

func (r Result) String() string {
	switch r {
	case Inserted:
		return "inserted"
	case AlreadyExists:
		return "exists"
	case Moved:
		return "moved"
	case Blocked:
		return "blocked"
	case Deleted:
		return "deleted"
	default:
		return "no match"
	}
}

// Editor applies anchor gestures to a Set and propagates anchor moves to
// the attached series. The view range scales the gesture proximity
// windows; the bound range limits how far a move's remap can reach.
type Editor struct {
	set    *Set
	series []Series

	viewMin, viewMax   float64
	boundMin, boundMax float64
}

// NewEditor wraps a set with global bounds; the view starts equal to the
// bounds.
func NewEditor(set *Set, boundMin, boundMax float64) *Editor {
	return &Editor{
		set:      set,
		viewMin:  boundMin,
		viewMax:  boundMax,
		boundMin: boundMin,
		boundMax: boundMax,
	}
}

// Attach registers series to be remapped when an anchor moves.
func (e *Editor) Attach(s ...Series) {
	e.series = append(e.series, s...)
}

// SetView updates the visible range the proximity windows scale with.
func (e *Editor) SetView(lo, hi float64) {
	e.viewMin, e.viewMax = lo, hi
}

// SetBounds updates the global bound range.
func (e *Editor) SetBounds(lo, hi float64) {
	e.boundMin, e.boundMax = lo, hi
}

// Anchors exposes the underlying set, mainly for rendering.
func (e *Editor) Anchors() *Set { return e.set }

func (e *Editor) halfWindow(frac float64) float64 {
	return 0.5 * frac * (e.viewMax - e.viewMin)
}

// Click inserts an anchor at x unless one already lies within the insert
// proximity window. New anchors map to themselves until dragged.
func (e *Editor) Click(x float64) Result {
	if e.set.ExistsWithin(x, e.halfWindow(insertWindowFrac)) {
		return AlreadyExists
	}
	e.set.Insert(x)
	return Inserted
}

// Drag moves the anchor nearest from (within the pickup window) to to,
// remapping the attached series between the bounding anchors. A move that
// would cross or land on another anchor is rejected with no side effects.
func (e *Editor) Drag(from, to float64) Result {
	picked, ok := e.set.ClosestWithin(from, e.halfWindow(pickupWindowFrac))
	if !ok {
		return NoMatch
	}
	if picked == to {
		return Moved
	}
	if !e.set.ValidateMove(picked, to) {
		return Blocked
	}
	if !e.move(picked, to) {
		return Blocked
	}
	return Moved
}

// Delete removes the anchor nearest x within the pickup window. No remap
// happens; the series keep the times the deleted anchor gave them.
func (e *Editor) Delete(x float64) Result {
	picked, ok := e.set.ClosestWithin(x, e.halfWindow(pickupWindowFrac))
	if !ok {
		return NoMatch
	}
	e.set.Remove(picked)
	return Deleted
}

// move builds the local remap table and applies it to every attached
// series. The table pins the global bounds and all other anchors to
// themselves and sends from to to; the application window is the bounding
// anchor pair, so the stretch stays local. The moved anchor is off the set
// while the table is built and reinserted at its new position afterwards.
func (e *Editor) move(from, to float64) bool {
	e.set.Remove(from)
	others := e.set.Positions()
	lo, hi := e.set.Bounding(to, e.boundMin, e.boundMax)

	xs := make([]float64, 0, len(others)+3)
	ys := make([]float64, 0, len(others)+3)
	xs = append(xs, e.boundMin)
	ys = append(ys, e.boundMin)
	for _, p := range others {
		xs = append(xs, p)
		ys = append(ys, p)
	}
	xs = append(xs, e.boundMax, from)
	ys = append(ys, e.boundMax, to)

	f, err := remap.NewInterpolant(xs, ys)
	if err != nil {
		e.set.Insert(from)
		return false
	}
	for _, s := range e.series {
		s.ApplyWindowedRemap(lo, hi, f.At)
	}
	e.set.Insert(to)
	return true
}
