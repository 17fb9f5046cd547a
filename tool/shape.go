// seehuhn.de/go/annotedit - interactive editing of vector annotations
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package tool

import (
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotedit"
	"seehuhn.de/go/annotedit/commit"
	"seehuhn.de/go/annotedit/vertex"
)

// Shape creates polylines, polygons and clouds.
//
// Every tap adds a vertex, and dragging moves the vertex being added.
// A press-drag-release gesture at the start draws the first segment.
// The shape is written to the document when the tool is finished, or
// when a tap lands on another page.
type Shape struct {
	env  *Env
	kind annotedit.Kind
	acc  *vertex.Accumulator
	down bool
	next Mode
}

func newShape(env *Env, kind annotedit.Kind) *Shape {
	t := &Shape{
		env:  env,
		kind: kind,
		acc:  vertex.New(env.Log),
	}
	t.next = t.Mode()
	return t
}

// Mode implements [Tool].
func (t *Shape) Mode() Mode {
	switch t.kind {
	case annotedit.KindPolygon:
		return ModePolygon
	case annotedit.KindCloud:
		return ModeCloud
	default:
		return ModePolyline
	}
}

// Next implements [Tool].
func (t *Shape) Next() Mode { return t.next }

// Down implements [Tool].
func (t *Shape) Down(p vec.Vec2) {
	page, p, ok := t.env.pointOnPage(p)
	if !ok {
		return
	}
	q := t.env.Bridge.ScreenToDocument(p, page)
	if flushed, ok := t.acc.Begin(page, q); ok {
		t.commit(flushed)
	}
	t.down = true
}

// Move implements [Tool].
func (t *Shape) Move(p vec.Vec2) {
	if !t.down {
		return
	}
	t.acc.Extend(t.toDoc(p))
}

// Up implements [Tool].
func (t *Shape) Up(p vec.Vec2) {
	if !t.down {
		return
	}
	t.down = false
	t.acc.CommitVertex(t.toDoc(p))
}

// Cancel implements [Tool].
func (t *Shape) Cancel() {
	t.down = false
	t.acc.Abort()
}

// Finish implements [Tool].
func (t *Shape) Finish() {
	t.down = false
	t.commit(t.acc.Finish())
}

// Clear removes all vertices, as one undoable edit.
func (t *Shape) Clear() bool {
	return t.acc.Clear()
}

// Undo implements [Undoer].
func (t *Shape) Undo() bool { return t.acc.Undo() }

// Redo implements [Undoer].
func (t *Shape) Redo() bool { return t.acc.Redo() }

// CanUndo implements [Undoer].
func (t *Shape) CanUndo() bool { return t.acc.CanUndo() }

// CanRedo implements [Undoer].
func (t *Shape) CanRedo() bool { return t.acc.CanRedo() }

// Page returns the page of the shape being drawn.
func (t *Shape) Page() int {
	return t.acc.Page()
}

// Vertices returns the document-space vertices of the shape being
// drawn, including the vertex which follows the pointer.
func (t *Shape) Vertices() []vec.Vec2 {
	return t.acc.Points()
}

// ScreenVertices returns the vertices in current screen coordinates,
// for drawing.
func (t *Shape) ScreenVertices() []vec.Vec2 {
	pts := t.acc.Points()
	for i, p := range pts {
		pts[i] = t.env.Bridge.DocumentToScreen(p, t.acc.Page())
	}
	return pts
}

func (t *Shape) toDoc(p vec.Vec2) vec.Vec2 {
	page := t.acc.Page()
	return t.env.Bridge.ScreenToDocument(t.env.clamp(p, page), page)
}

func (t *Shape) commit(l vertex.List) {
	if len(l.Points) == 0 {
		return
	}
	s, err := commit.FromVertices(t.kind, l.Points, t.env.Settings.CloudIntensity)
	if err != nil {
		t.env.fail(err)
		return
	}
	_, err = commit.Create(t.env.Doc, l.Page, annotedit.Geometry{Style: t.env.Style, Shape: s})
	if err != nil && t.env.fail(err) {
		t.next = ModePan
	}
}
