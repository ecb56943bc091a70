package anchor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aheidt/dtw-app/anchor"
	"github.com/aheidt/dtw-app/midievent"
)

func TestSet_InsertKeepsSorted(t *testing.T) {
	s := anchor.NewSet()
	s.Insert(5)
	s.Insert(2)
	s.Insert(8)
	assert.Equal(t, []float64{2, 5, 8}, s.Positions())
	assert.Equal(t, 3, s.Len())
}

func TestSet_RemoveExactOnly(t *testing.T) {
	s := anchor.NewSet()
	s.Insert(2)
	s.Insert(5)

	assert.False(t, s.Remove(5.0001))
	assert.True(t, s.Remove(5))
	assert.Equal(t, []float64{2}, s.Positions())
}

// TestSet_ExistsWithin checks the window is open: anchors exactly at the
// edges do not count.
func TestSet_ExistsWithin(t *testing.T) {
	s := anchor.NewSet()
	s.Insert(3.0)

	assert.True(t, s.ExistsWithin(3.04, 0.05))
	assert.False(t, s.ExistsWithin(3.05, 0.05), "edge of the open window")
	assert.False(t, s.ExistsWithin(3.2, 0.05))
	assert.True(t, s.ExistsWithin(3.0, 0), "zero width means exact membership")
}

func TestSet_ClosestWithin(t *testing.T) {
	s := anchor.NewSet()
	s.Insert(1.0)
	s.Insert(1.5)

	p, ok := s.ClosestWithin(1.4, 0.5)
	require.True(t, ok)
	assert.Equal(t, 1.5, p)

	_, ok = s.ClosestWithin(5.0, 0.5)
	assert.False(t, ok)
}

func TestSet_Bounding(t *testing.T) {
	s := anchor.NewSet()
	s.Insert(2)
	s.Insert(8)

	lo, hi := s.Bounding(5, 0, 10)
	assert.Equal(t, 2.0, lo)
	assert.Equal(t, 8.0, hi)

	// No anchor on a side falls back to the global bound.
	lo, hi = s.Bounding(1, 0, 10)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 2.0, hi)

	lo, hi = s.Bounding(9, 0, 10)
	assert.Equal(t, 8.0, lo)
	assert.Equal(t, 10.0, hi)

	empty := anchor.NewSet()
	lo, hi = empty.Bounding(5, 0, 10)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 10.0, hi)
}

func TestSet_ValidateMove(t *testing.T) {
	s := anchor.NewSet()
	s.Insert(2)
	s.Insert(5)
	s.Insert(8)

	assert.True(t, s.ValidateMove(5, 6))
	assert.True(t, s.ValidateMove(5, 2.1))
	assert.False(t, s.ValidateMove(5, 9), "crossing the anchor at 8")
	assert.False(t, s.ValidateMove(5, 1), "crossing the anchor at 2")
	assert.False(t, s.ValidateMove(5, 8), "landing exactly on another anchor")
}

func TestTimeAxis_ApplyWindowedRemap(t *testing.T) {
	a := anchor.TimeAxis{0, 1, 2, 3, 4}
	a.ApplyWindowedRemap(1, 3, func(x float64) float64 { return x * 10 })
	assert.Equal(t, anchor.TimeAxis{0, 10, 20, 3, 4}, a)
}

func TestEditor_ClickInsertAndProximity(t *testing.T) {
	e := anchor.NewEditor(anchor.NewSet(), 0, 10)

	assert.Equal(t, anchor.Inserted, e.Click(3.0))
	// Insert half-window is 0.5*0.013*10 = 0.065.
	assert.Equal(t, anchor.AlreadyExists, e.Click(3.05))
	assert.Equal(t, anchor.Inserted, e.Click(3.2))
	assert.Equal(t, []float64{3.0, 3.2}, e.Anchors().Positions())
}

func TestEditor_DeleteRoundTrip(t *testing.T) {
	e := anchor.NewEditor(anchor.NewSet(), 0, 10)

	require.Equal(t, anchor.Inserted, e.Click(3.0))
	assert.True(t, e.Anchors().ExistsWithin(3.0, 0.065))

	assert.Equal(t, anchor.Deleted, e.Delete(3.0))
	assert.Equal(t, 0, e.Anchors().Len())
	assert.Equal(t, anchor.NoMatch, e.Delete(3.0))
}

func TestEditor_DragNoMatch(t *testing.T) {
	e := anchor.NewEditor(anchor.NewSet(), 0, 10)
	assert.Equal(t, anchor.NoMatch, e.Drag(1.0, 2.0))
}

// TestEditor_BlockedMoveHasNoSideEffects drags an anchor across its right
// neighbour and expects the gesture to be rejected outright.
func TestEditor_BlockedMoveHasNoSideEffects(t *testing.T) {
	s := anchor.NewSet()
	s.Insert(2)
	s.Insert(5)
	s.Insert(8)
	e := anchor.NewEditor(s, 0, 10)

	axis := anchor.TimeAxis{1, 3, 6, 9}
	e.Attach(axis)

	assert.Equal(t, anchor.Blocked, e.Drag(5.0, 9.0))
	assert.Equal(t, []float64{2, 5, 8}, s.Positions(), "set unchanged")
	assert.Equal(t, anchor.TimeAxis{1, 3, 6, 9}, axis, "series unchanged")
}

// TestEditor_MoveRemapsOnlyBetweenBoundingAnchors moves the middle of three
// anchors and checks the remap touches exactly the half-open window between
// its neighbours.
func TestEditor_MoveRemapsOnlyBetweenBoundingAnchors(t *testing.T) {
	s := anchor.NewSet()
	s.Insert(2)
	s.Insert(5)
	s.Insert(8)
	e := anchor.NewEditor(s, 0, 10)

	events := midievent.List{
		{Note: 60, Time: 0.5},
		{Note: 61, Time: 1.0},
		{Note: 62, Time: 2.0},
		{Note: 63, Time: 3.0},
		{Note: 64, Time: 5.0},
		{Note: 65, Time: 7.9},
		{Note: 66, Time: 8.0},
		{Note: 67, Time: 9.0},
	}
	e.Attach(events)

	require.Equal(t, anchor.Moved, e.Drag(5.0, 6.0))
	assert.Equal(t, []float64{2, 6, 8}, s.Positions())

	// Local table: {0:0, 2:2, 5:6, 8:8, 10:10}, applied on [2, 8).
	assert.Equal(t, 0.5, events[0].Time)
	assert.Equal(t, 1.0, events[1].Time, "bit-identical outside the window")
	assert.Equal(t, 2.0, events[2].Time, "window edge pins to the left anchor")
	assert.InDelta(t, 2.0+4.0/3.0, events[3].Time, 1e-12)
	assert.InDelta(t, 6.0, events[4].Time, 1e-12, "moved anchor drags its time along")
	assert.InDelta(t, 6.0+2.9*2.0/3.0, events[5].Time, 1e-12)
	assert.Equal(t, 8.0, events[6].Time, "right bounding anchor is outside the half-open window")
	assert.Equal(t, 9.0, events[7].Time)
}

// TestEditor_MoveAgainstGlobalBound moves a lone anchor; the stretch spans
// the whole bound range since no other anchor limits it.
func TestEditor_MoveAgainstGlobalBound(t *testing.T) {
	s := anchor.NewSet()
	s.Insert(4)
	e := anchor.NewEditor(s, 0, 10)

	axis := anchor.TimeAxis{0, 2, 4, 6, 8}
	e.Attach(axis)

	require.Equal(t, anchor.Moved, e.Drag(4.0, 5.0))

	// Table {0:0, 4:5, 10:10} over [0, 10).
	assert.InDelta(t, 0.0, axis[0], 1e-12)
	assert.InDelta(t, 2.5, axis[1], 1e-12)
	assert.InDelta(t, 5.0, axis[2], 1e-12)
	assert.InDelta(t, 5.0+2.0*5.0/6.0, axis[3], 1e-12)
	assert.InDelta(t, 5.0+4.0*5.0/6.0, axis[4], 1e-12)
}

// TestEditor_ViewScalesWindows zooms the view in and expects the pickup
// window to shrink with it.
func TestEditor_ViewScalesWindows(t *testing.T) {
	s := anchor.NewSet()
	s.Insert(5)
	e := anchor.NewEditor(s, 0, 100)

	// Full view: pickup half-window 0.5, press at 5.3 finds the anchor.
	assert.Equal(t, anchor.Moved, e.Drag(5.3, 5.5))

	e.SetView(0, 10)
	// Zoomed view: pickup half-window 0.05, the same offset misses.
	assert.Equal(t, anchor.NoMatch, e.Drag(5.8, 6.0))
}
