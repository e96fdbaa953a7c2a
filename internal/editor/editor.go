// Package editor implements the stateful interaction protocol for authoring
// percentage-space polygons over a displayed image. The same geometry feeds
// the public viewer's read-only hit-testing, so what an admin draws is
// exactly what a visitor can click.
package editor

import (
	"github.com/estatehq/sales-service/internal/geometry"
)

// Mode is the editor's current interaction state. Exactly one applies at a
// time: a click can never both start a new polygon and drag an existing
// vertex.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDrawing
	ModeDragging
)

// CloseThreshold is how near (in percentage units) a click must land to the
// first draft point to close the polygon being drawn.
const CloseThreshold = 3.0

// Shape is a polygon on the canvas together with the id of its owning
// entity (a unit or a building footprint).
type Shape struct {
	ID     string
	Points geometry.Polygon
}

// Sink receives the editor's output events. Implementations persist
// geometry, update selection UI, or confirm deletes; the editor itself
// never touches storage.
type Sink interface {
	PolygonCreated(points geometry.Polygon)
	PolygonSelected(id string) // empty id means the selection was cleared
	PolygonUpdated(id string, points geometry.Polygon)
	DeleteRequested(id string)
}

type vertexDrag struct {
	shapeID string
	vertex  int
}

// Editor tracks drawing, selection and vertex-drag state over a set of
// shapes. It is single-threaded by design: every method corresponds to one
// UI event.
type Editor struct {
	shapes   []Shape
	selected string
	mode     Mode
	draft    geometry.Polygon
	drag     vertexDrag
	sink     Sink
}

func New(sink Sink) *Editor {
	return &Editor{sink: sink}
}

// SetShapes replaces the displayed polygons, e.g. after a reload or an
// external edit. In-progress drawing survives; a selection pointing at a
// shape that no longer exists is cleared, and a vertex drag whose handle no
// longer exists ends.
func (e *Editor) SetShapes(shapes []Shape) {
	e.shapes = shapes
	if e.mode == ModeDragging && !e.dragTargetExists() {
		e.mode = ModeIdle
		e.drag = vertexDrag{}
	}
	if e.selected == "" {
		return
	}
	for _, s := range shapes {
		if s.ID == e.selected {
			return
		}
	}
	e.selected = ""
	e.sink.PolygonSelected("")
}

func (e *Editor) dragTargetExists() bool {
	for i := range e.shapes {
		if e.shapes[i].ID == e.drag.shapeID {
			return e.drag.vertex < len(e.shapes[i].Points)
		}
	}
	return false
}

func (e *Editor) Mode() Mode       { return e.mode }
func (e *Editor) Selected() string { return e.selected }

// Draft returns a copy of the in-progress point sequence.
func (e *Editor) Draft() geometry.Polygon {
	out := make(geometry.Polygon, len(e.draft))
	copy(out, e.draft)
	return out
}

// Click handles a pointer click at a percentage-space position.
//
// Idle: a hit on an existing polygon selects it; a miss starts drawing with
// the click as the first point and clears any selection.
//
// Drawing: the click appends a point, unless it lands within CloseThreshold
// of the first point with at least MinPolygonPoints already accumulated; in
// that case the polygon is committed and the editor returns to idle. A close
// attempt with too few points is ignored and drawing continues.
func (e *Editor) Click(p geometry.Point) {
	if e.mode == ModeDragging {
		return
	}
	p = p.Clamp()

	if e.mode == ModeIdle {
		if id, ok := HitTest(e.shapes, p); ok {
			e.selected = id
			e.sink.PolygonSelected(id)
			return
		}
		e.mode = ModeDrawing
		e.draft = geometry.Polygon{p}
		if e.selected != "" {
			e.selected = ""
			e.sink.PolygonSelected("")
		}
		return
	}

	if len(e.draft) >= geometry.MinPolygonPoints && geometry.Distance(p, e.draft[0]) < CloseThreshold {
		pts := e.draft
		e.draft = nil
		e.mode = ModeIdle
		e.sink.PolygonCreated(pts)
		return
	}
	e.draft = append(e.draft, p)
}

// Escape cancels an in-progress drawing, discarding its points. When idle
// it clears the current selection instead.
func (e *Editor) Escape() {
	if e.mode == ModeDrawing {
		e.draft = nil
		e.mode = ModeIdle
		return
	}
	if e.mode == ModeIdle && e.selected != "" {
		e.selected = ""
		e.sink.PolygonSelected("")
	}
}

// Delete handles the Delete/Backspace key. It emits a delete request for
// the selected polygon unless the user is drawing or typing into a text
// input, textarea, select or contenteditable element (focusInText).
func (e *Editor) Delete(focusInText bool) {
	if focusInText || e.mode == ModeDrawing {
		return
	}
	if e.selected != "" {
		e.sink.DeleteRequested(e.selected)
	}
}

// VertexDown begins dragging a vertex handle. Only the selected polygon's
// handles are draggable, and never mid-draw.
func (e *Editor) VertexDown(shapeID string, vertex int) {
	if e.mode != ModeIdle || shapeID == "" || shapeID != e.selected {
		return
	}
	for i := range e.shapes {
		if e.shapes[i].ID != shapeID {
			continue
		}
		if vertex < 0 || vertex >= len(e.shapes[i].Points) {
			return
		}
		e.mode = ModeDragging
		e.drag = vertexDrag{shapeID: shapeID, vertex: vertex}
		return
	}
}

// Move updates the dragged vertex to the pointer position. The shape is
// updated locally for responsive rendering and the new point list is
// emitted so the caller can persist it independently.
func (e *Editor) Move(p geometry.Point) {
	if e.mode != ModeDragging {
		return
	}
	p = p.Clamp()
	for i := range e.shapes {
		if e.shapes[i].ID != e.drag.shapeID {
			continue
		}
		pts := make(geometry.Polygon, len(e.shapes[i].Points))
		copy(pts, e.shapes[i].Points)
		pts[e.drag.vertex] = p
		e.shapes[i].Points = pts
		e.sink.PolygonUpdated(e.drag.shapeID, pts)
		return
	}
}

// Release ends a vertex drag. Mouse-up and mouse-leave both land here.
func (e *Editor) Release() {
	if e.mode == ModeDragging {
		e.mode = ModeIdle
		e.drag = vertexDrag{}
	}
}
