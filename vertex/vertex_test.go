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

package vertex

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/vec"
)

func tap(a *Accumulator, page int, p vec.Vec2) {
	a.Begin(page, p)
	a.CommitVertex(p)
}

func TestPolygonScenario(t *testing.T) {
	a := New(nil)
	tap(a, 1, vec.Vec2{X: 10, Y: 10})
	tap(a, 1, vec.Vec2{X: 50, Y: 10})
	tap(a, 1, vec.Vec2{X: 50, Y: 50})
	tap(a, 1, vec.Vec2{X: 50, Y: 50}) // second tap of the double tap

	want := []vec.Vec2{{X: 10, Y: 10}, {X: 50, Y: 10}, {X: 50, Y: 50}}
	if d := cmp.Diff(want, a.Points()); d != "" {
		t.Fatalf("vertices (-want +got):\n%s", d)
	}
	if a.UndoLen() != 3 {
		t.Errorf("undo depth %d, want 3", a.UndoLen())
	}

	if !a.Undo() {
		t.Fatal("Undo failed")
	}
	if d := cmp.Diff(want[:2], a.Points()); d != "" {
		t.Errorf("after undo (-want +got):\n%s", d)
	}
}

func TestCoalescing(t *testing.T) {
	a := New(nil)
	p := vec.Vec2{X: 3, Y: 4}
	tap(a, 1, p)
	tap(a, 1, p)
	if a.Len() != 1 || a.UndoLen() != 1 {
		t.Errorf("got %d vertices and %d edits, want 1 and 1", a.Len(), a.UndoLen())
	}

	// committing without a preceding Begin coalesces as well
	if a.CommitVertex(p) {
		t.Error("CommitVertex added a duplicate vertex")
	}
	if a.Len() != 1 || a.UndoLen() != 1 {
		t.Errorf("got %d vertices and %d edits, want 1 and 1", a.Len(), a.UndoLen())
	}
}

func TestDragDrawsSegment(t *testing.T) {
	a := New(nil)
	a.Begin(1, vec.Vec2{X: 0, Y: 0})
	a.Extend(vec.Vec2{X: 5, Y: 0})
	a.Extend(vec.Vec2{X: 10, Y: 2})
	if got := a.Vertices(); len(got) != 1 {
		t.Errorf("%d locked-in vertices during drag, want 1", len(got))
	}
	a.CommitVertex(vec.Vec2{X: 10, Y: 0})

	want := []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}}
	if d := cmp.Diff(want, a.Vertices()); d != "" {
		t.Errorf("vertices (-want +got):\n%s", d)
	}
	if a.UndoLen() != 2 {
		t.Errorf("undo depth %d, want 2", a.UndoLen())
	}
}

func TestRubberBand(t *testing.T) {
	a := New(nil)
	tap(a, 1, vec.Vec2{X: 0, Y: 0})
	tap(a, 1, vec.Vec2{X: 10, Y: 0})

	a.Begin(1, vec.Vec2{X: 10, Y: 5})
	a.Extend(vec.Vec2{X: 12, Y: 8})
	a.Extend(vec.Vec2{X: 20, Y: 20})
	if d := cmp.Diff(vec.Vec2{X: 20, Y: 20}, a.Points()[2]); d != "" {
		t.Errorf("pending vertex (-want +got):\n%s", d)
	}
	if a.UndoLen() != 2 {
		t.Errorf("dragging recorded edits: depth %d", a.UndoLen())
	}

	a.Abort()
	if a.Len() != 2 {
		t.Errorf("%d vertices after Abort, want 2", a.Len())
	}
}

func TestAbortDrag(t *testing.T) {
	a := New(nil)
	a.Begin(1, vec.Vec2{X: 100, Y: 100})
	a.Extend(vec.Vec2{X: 120, Y: 100})
	a.Abort()
	if a.Len() != 0 || a.UndoLen() != 0 {
		t.Errorf("got %d vertices and %d edits after Abort, want none", a.Len(), a.UndoLen())
	}

	// earlier edits survive
	tap(a, 1, vec.Vec2{X: 0, Y: 0})
	a.Begin(1, vec.Vec2{X: 10, Y: 0})
	a.Extend(vec.Vec2{X: 20, Y: 0})
	a.Abort()
	want := []vec.Vec2{{X: 0, Y: 0}}
	if d := cmp.Diff(want, a.Points()); d != "" {
		t.Errorf("vertices (-want +got):\n%s", d)
	}
	if a.UndoLen() != 1 {
		t.Errorf("undo depth %d, want 1", a.UndoLen())
	}
}

func TestUndoRedoInverse(t *testing.T) {
	a := New(nil)
	pts := []vec.Vec2{{X: 1, Y: 1}, {X: 2, Y: 3}, {X: 5, Y: 8}, {X: 13, Y: 21}}
	for _, p := range pts {
		tap(a, 2, p)
	}
	a.Clear()
	tap(a, 2, vec.Vec2{X: 7, Y: 7})

	before := a.Points()
	n := a.UndoLen()
	for range n {
		if !a.Undo() {
			t.Fatal("Undo failed")
		}
	}
	if a.Len() != 0 {
		t.Errorf("%d vertices left after undoing everything", a.Len())
	}
	for range n {
		if !a.Redo() {
			t.Fatal("Redo failed")
		}
	}
	if d := cmp.Diff(before, a.Points()); d != "" {
		t.Errorf("undo/redo changed the vertices (-want +got):\n%s", d)
	}
}

func TestUndoClear(t *testing.T) {
	a := New(nil)
	pts := []vec.Vec2{{X: 1, Y: 1}, {X: 2, Y: 3}, {X: 5, Y: 8}}
	for _, p := range pts {
		tap(a, 1, p)
	}
	if !a.Clear() {
		t.Fatal("Clear failed")
	}
	if a.Len() != 0 {
		t.Fatalf("%d vertices after Clear", a.Len())
	}
	a.Undo()
	if d := cmp.Diff(pts, a.Points()); d != "" {
		t.Errorf("undo of clear (-want +got):\n%s", d)
	}
	if !a.Clear() {
		t.Error("second Clear failed")
	}
	if a.Clear() {
		t.Error("Clear of an empty list recorded an edit")
	}
}

func TestRedoInvalidation(t *testing.T) {
	a := New(nil)
	tap(a, 1, vec.Vec2{X: 1, Y: 1})
	tap(a, 1, vec.Vec2{X: 2, Y: 2})
	a.Undo()
	tap(a, 1, vec.Vec2{X: 3, Y: 3})

	if a.CanRedo() || a.Redo() {
		t.Error("redo possible after a new vertex")
	}
	want := []vec.Vec2{{X: 1, Y: 1}, {X: 3, Y: 3}}
	if d := cmp.Diff(want, a.Points()); d != "" {
		t.Errorf("vertices (-want +got):\n%s", d)
	}
}

func TestPageSwitch(t *testing.T) {
	a := New(nil)
	tap(a, 1, vec.Vec2{X: 1, Y: 1})
	tap(a, 1, vec.Vec2{X: 2, Y: 2})
	a.Undo()

	flushed, ok := a.Begin(2, vec.Vec2{X: 9, Y: 9})
	if !ok {
		t.Fatal("page switch did not flush the shape")
	}
	want := List{Page: 1, Points: []vec.Vec2{{X: 1, Y: 1}}}
	if d := cmp.Diff(want, flushed); d != "" {
		t.Errorf("flushed list (-want +got):\n%s", d)
	}
	if a.Page() != 2 || a.CanUndo() || a.CanRedo() {
		t.Error("new page did not start with empty stacks")
	}
	if a.Len() != 1 {
		t.Errorf("%d vertices on the new page, want 1", a.Len())
	}
}

func TestEmptyIsNoop(t *testing.T) {
	a := New(nil)
	a.Extend(vec.Vec2{X: 1, Y: 1})
	if a.CommitVertex(vec.Vec2{X: 1, Y: 1}) || a.Clear() || a.Undo() || a.Redo() {
		t.Error("operation on empty accumulator had an effect")
	}
	if l := a.Finish(); len(l.Points) != 0 {
		t.Errorf("Finish returned %v", l.Points)
	}
}
