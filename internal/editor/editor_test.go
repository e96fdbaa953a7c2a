package editor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/estatehq/sales-service/internal/geometry"
)

// recordingSink collects emitted events for assertions.
type recordingSink struct {
	created  []geometry.Polygon
	selected []string
	updated  map[string]geometry.Polygon
	deleted  []string
}

func newRecordingSink() *recordingSink {
	return &recordingSink{updated: map[string]geometry.Polygon{}}
}

func (s *recordingSink) PolygonCreated(pts geometry.Polygon) { s.created = append(s.created, pts) }
func (s *recordingSink) PolygonSelected(id string)           { s.selected = append(s.selected, id) }
func (s *recordingSink) PolygonUpdated(id string, pts geometry.Polygon) {
	s.updated[id] = pts
}
func (s *recordingSink) DeleteRequested(id string) { s.deleted = append(s.deleted, id) }

func square(x, y, size float64) geometry.Polygon {
	return geometry.Polygon{
		{X: x, Y: y}, {X: x + size, Y: y}, {X: x + size, Y: y + size}, {X: x, Y: y + size},
	}
}

func TestDrawAndCloseEmitsSingleCreate(t *testing.T) {
	sink := newRecordingSink()
	e := New(sink)

	e.Click(geometry.Point{X: 10, Y: 10})
	require.Equal(t, ModeDrawing, e.Mode())
	e.Click(geometry.Point{X: 40, Y: 10})
	e.Click(geometry.Point{X: 40, Y: 40})
	e.Click(geometry.Point{X: 10, Y: 40})

	// within the close threshold of the first point
	e.Click(geometry.Point{X: 11, Y: 11})

	require.Equal(t, ModeIdle, e.Mode())
	require.Len(t, sink.created, 1)
	require.Len(t, sink.created[0], 4)
	require.Empty(t, e.Draft())
}

func TestCloseRequiresThreePoints(t *testing.T) {
	sink := newRecordingSink()
	e := New(sink)

	e.Click(geometry.Point{X: 10, Y: 10})
	e.Click(geometry.Point{X: 40, Y: 10})

	// near the first point but only two accumulated: appended, not closed
	e.Click(geometry.Point{X: 11, Y: 11})

	require.Equal(t, ModeDrawing, e.Mode())
	require.Empty(t, sink.created)
	require.Len(t, e.Draft(), 3)
}

func TestEscapeDiscardsDraft(t *testing.T) {
	sink := newRecordingSink()
	e := New(sink)

	e.Click(geometry.Point{X: 10, Y: 10})
	e.Click(geometry.Point{X: 40, Y: 10})
	e.Escape()

	require.Equal(t, ModeIdle, e.Mode())
	require.Empty(t, e.Draft())
	require.Empty(t, sink.created)

	// next click starts a fresh draft
	e.Click(geometry.Point{X: 50, Y: 50})
	require.Equal(t, ModeDrawing, e.Mode())
	require.Len(t, e.Draft(), 1)
}

func TestClickSelectsAndEscapeClears(t *testing.T) {
	sink := newRecordingSink()
	e := New(sink)
	e.SetShapes([]Shape{{ID: "u1", Points: square(10, 10, 30)}})

	e.Click(geometry.Point{X: 20, Y: 20})
	require.Equal(t, "u1", e.Selected())
	require.Equal(t, []string{"u1"}, sink.selected)

	e.Escape()
	require.Equal(t, "", e.Selected())
	require.Equal(t, []string{"u1", ""}, sink.selected)
}

func TestMissClearsSelectionAndStartsDrawing(t *testing.T) {
	sink := newRecordingSink()
	e := New(sink)
	e.SetShapes([]Shape{{ID: "u1", Points: square(10, 10, 30)}})

	e.Click(geometry.Point{X: 20, Y: 20})
	e.Click(geometry.Point{X: 80, Y: 80})

	require.Equal(t, "", e.Selected())
	require.Equal(t, ModeDrawing, e.Mode())
	require.Equal(t, []string{"u1", ""}, sink.selected)
}

func TestHitTestTopmostWins(t *testing.T) {
	shapes := []Shape{
		{ID: "bottom", Points: square(10, 10, 50)},
		{ID: "top", Points: square(30, 30, 50)},
	}

	id, ok := HitTest(shapes, geometry.Point{X: 40, Y: 40})
	require.True(t, ok)
	require.Equal(t, "top", id)

	id, ok = HitTest(shapes, geometry.Point{X: 15, Y: 15})
	require.True(t, ok)
	require.Equal(t, "bottom", id)

	_, ok = HitTest(shapes, geometry.Point{X: 95, Y: 95})
	require.False(t, ok)
}

func TestDeleteRespectsFocusAndDrawing(t *testing.T) {
	sink := newRecordingSink()
	e := New(sink)
	e.SetShapes([]Shape{{ID: "u1", Points: square(10, 10, 30)}})

	e.Click(geometry.Point{X: 20, Y: 20})

	e.Delete(true) // typing in a text field
	require.Empty(t, sink.deleted)

	e.Delete(false)
	require.Equal(t, []string{"u1"}, sink.deleted)
}

func TestVertexDragEmitsUpdates(t *testing.T) {
	sink := newRecordingSink()
	e := New(sink)
	e.SetShapes([]Shape{{ID: "u1", Points: square(10, 10, 30)}})

	// not selected yet: drag refused
	e.VertexDown("u1", 0)
	require.Equal(t, ModeIdle, e.Mode())

	e.Click(geometry.Point{X: 20, Y: 20})
	e.VertexDown("u1", 0)
	require.Equal(t, ModeDragging, e.Mode())

	e.Move(geometry.Point{X: 5, Y: 5})
	require.Equal(t, geometry.Point{X: 5, Y: 5}, sink.updated["u1"][0])

	// clicks are ignored mid-drag
	e.Click(geometry.Point{X: 90, Y: 90})
	require.Empty(t, sink.created)

	e.Release()
	require.Equal(t, ModeIdle, e.Mode())
}

func TestVertexDownOutOfRange(t *testing.T) {
	sink := newRecordingSink()
	e := New(sink)
	e.SetShapes([]Shape{{ID: "u1", Points: square(10, 10, 30)}})
	e.Click(geometry.Point{X: 20, Y: 20})

	e.VertexDown("u1", 99)
	require.Equal(t, ModeIdle, e.Mode())
	e.VertexDown("u1", -1)
	require.Equal(t, ModeIdle, e.Mode())
}

func TestSetShapesEndsDragWhenHandleVanishes(t *testing.T) {
	sink := newRecordingSink()
	e := New(sink)
	e.SetShapes([]Shape{{ID: "u1", Points: square(10, 10, 30)}})
	e.Click(geometry.Point{X: 20, Y: 20})
	e.VertexDown("u1", 3)
	require.Equal(t, ModeDragging, e.Mode())

	// an external edit shrinks the dragged polygon below the handle index
	e.SetShapes([]Shape{{ID: "u1", Points: geometry.Polygon{
		{X: 10, Y: 10}, {X: 40, Y: 10}, {X: 40, Y: 40},
	}}})
	require.Equal(t, ModeIdle, e.Mode())

	e.Move(geometry.Point{X: 5, Y: 5})
	require.Empty(t, sink.updated)

	// same when the reload drops the shape entirely
	e.VertexDown("u1", 2)
	require.Equal(t, ModeDragging, e.Mode())
	e.SetShapes([]Shape{{ID: "u2", Points: square(50, 50, 20)}})
	require.Equal(t, ModeIdle, e.Mode())
	e.Move(geometry.Point{X: 5, Y: 5})
	require.Empty(t, sink.updated)
}

func TestSetShapesKeepsDragWhenHandleSurvives(t *testing.T) {
	sink := newRecordingSink()
	e := New(sink)
	e.SetShapes([]Shape{{ID: "u1", Points: square(10, 10, 30)}})
	e.Click(geometry.Point{X: 20, Y: 20})
	e.VertexDown("u1", 0)

	e.SetShapes([]Shape{{ID: "u1", Points: square(10, 10, 30)}})
	require.Equal(t, ModeDragging, e.Mode())
	e.Move(geometry.Point{X: 5, Y: 5})
	require.Equal(t, geometry.Point{X: 5, Y: 5}, sink.updated["u1"][0])
}

func TestSetShapesClearsDanglingSelection(t *testing.T) {
	sink := newRecordingSink()
	e := New(sink)
	e.SetShapes([]Shape{{ID: "u1", Points: square(10, 10, 30)}})
	e.Click(geometry.Point{X: 20, Y: 20})

	e.SetShapes([]Shape{{ID: "u2", Points: square(50, 50, 20)}})
	require.Equal(t, "", e.Selected())
	require.Equal(t, []string{"u1", ""}, sink.selected)
}

func TestCanvasToPercent(t *testing.T) {
	c := Canvas{Left: 100, Top: 50, Width: 400, Height: 200}

	p := c.ToPercent(300, 150)
	require.Equal(t, geometry.Point{X: 50, Y: 50}, p)

	// outside the box clamps
	p = c.ToPercent(0, 0)
	require.Equal(t, geometry.Point{X: 0, Y: 0}, p)
	p = c.ToPercent(1000, 1000)
	require.Equal(t, geometry.Point{X: 100, Y: 100}, p)

	// zero-size box maps to origin
	require.Equal(t, geometry.Point{}, Canvas{}.ToPercent(123, 456))
}
