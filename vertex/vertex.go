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

// Package vertex accumulates the vertices of a polyline, polygon or cloud
// while the shape is being drawn.
//
// Every vertex starts out pending: it follows the pointer while the
// pointer is dragged, and it is locked in when the pointer is released.
// Each locked-in vertex is one undoable edit.
package vertex

import (
	"io"
	"slices"

	"github.com/sirupsen/logrus"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotedit/history"
)

// Snapshot records one undoable change of the vertex list.
type Snapshot struct {
	// Points are the vertices affected by the change.
	Points []vec.Vec2

	// Removed is true if Points were removed by [Accumulator.Clear],
	// and false if they were appended.
	Removed bool
}

// List is a finished vertex list.
type List struct {
	Page   int
	Points []vec.Vec2
}

// Accumulator collects the document-space vertices of one shape.
type Accumulator struct {
	log logrus.FieldLogger

	page    int
	points  []vec.Vec2
	pending bool

	// state at the start of the gesture in progress, used by Abort
	inGesture  bool
	markPoints int
	markDepth  int

	hist history.Stack[Snapshot]
}

// New returns an empty accumulator.  Inconsistent history entries are
// reported to log.  If log is nil, nothing is logged.
func New(log logrus.FieldLogger) *Accumulator {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Accumulator{log: log}
}

// Page returns the page the vertices belong to.
// The value is zero before the first call to [Accumulator.Begin].
func (a *Accumulator) Page() int {
	return a.page
}

// Len returns the number of vertices, including a pending one.
func (a *Accumulator) Len() int {
	return len(a.points)
}

// Points returns a copy of all vertices, including a pending one.
// This is intended for drawing the shape while it is being edited.
func (a *Accumulator) Points() []vec.Vec2 {
	return slices.Clone(a.points)
}

// Vertices returns a copy of the locked-in vertices.
func (a *Accumulator) Vertices() []vec.Vec2 {
	n := len(a.points)
	if a.pending {
		n--
	}
	return slices.Clone(a.points[:n])
}

// Begin starts a new pending vertex at p.
//
// If page differs from the page of the vertices collected so far, the
// collected vertices are returned as a finished list and the accumulator
// starts afresh, with empty undo and redo stacks.
func (a *Accumulator) Begin(page int, p vec.Vec2) (List, bool) {
	var flushed List
	var ok bool
	if page != a.page {
		if len(a.Vertices()) > 0 {
			flushed, ok = a.Finish(), true
		}
		a.Reset()
		a.page = page
	}

	a.inGesture = true
	a.markPoints = len(a.points)
	if a.pending {
		a.markPoints--
	}
	a.markDepth = a.hist.UndoLen()

	if a.pending {
		a.points[len(a.points)-1] = p
	} else {
		a.points = append(a.points, p)
		a.pending = true
	}
	return flushed, ok
}

// Extend moves the pending vertex to p.
//
// If the only vertex is the pending first vertex and p differs from it,
// the first vertex is locked in and p becomes a new pending vertex.
// This way, a press-drag-release gesture draws a segment.
func (a *Accumulator) Extend(p vec.Vec2) {
	n := len(a.points)
	switch {
	case n == 0:
		return
	case !a.pending:
		a.points = append(a.points, p)
		a.pending = true
	case n == 1 && a.points[0] != p:
		a.hist.Push(Snapshot{Points: []vec.Vec2{a.points[0]}})
		a.points = append(a.points, p)
	default:
		a.points[n-1] = p
	}
}

// CommitVertex moves the pending vertex to p and locks it in.
//
// If p equals the previous vertex, the pending vertex is discarded
// instead and no edit is recorded.  The return value reports whether
// a new vertex was added.
func (a *Accumulator) CommitVertex(p vec.Vec2) bool {
	n := len(a.points)
	if n == 0 {
		return false
	}

	if !a.pending {
		if a.points[n-1] == p {
			return false
		}
		a.points = append(a.points, p)
		n++
	}
	a.pending = false
	a.inGesture = false

	if n >= 2 && a.points[n-2] == p {
		a.points = a.points[:n-1]
		return false
	}
	a.points[n-1] = p
	a.hist.Push(Snapshot{Points: []vec.Vec2{p}})
	return true
}

// Abort discards the pending vertex, if any.  This is used when a gesture
// turns out to be a scroll rather than a tap.
//
// Inside a gesture, that is between [Accumulator.Begin] and
// [Accumulator.CommitVertex], Abort also removes the vertices and the
// edits the gesture has recorded so far.
func (a *Accumulator) Abort() {
	if a.inGesture {
		a.inGesture = false
		for a.hist.UndoLen() > a.markDepth {
			a.hist.Drop()
		}
		if a.markPoints < len(a.points) {
			a.points = a.points[:a.markPoints]
		}
		a.pending = false
		return
	}
	if a.pending {
		a.points = a.points[:len(a.points)-1]
		a.pending = false
	}
}

// Clear removes all vertices as one undoable edit.
// Clearing an empty list does nothing.
func (a *Accumulator) Clear() bool {
	a.Abort()
	if len(a.points) == 0 {
		return false
	}
	a.hist.Push(Snapshot{Points: a.points, Removed: true})
	a.points = nil
	return true
}

// CanUndo reports whether there is an edit to undo.
func (a *Accumulator) CanUndo() bool {
	return a.hist.CanUndo()
}

// CanRedo reports whether there is an edit to redo.
func (a *Accumulator) CanRedo() bool {
	return a.hist.CanRedo()
}

// UndoLen returns the number of edits which can be undone.
func (a *Accumulator) UndoLen() int {
	return a.hist.UndoLen()
}

// Undo reverts the most recent edit.
func (a *Accumulator) Undo() bool {
	a.Abort()
	snap, ok := a.hist.Undo()
	if !ok {
		return false
	}
	if snap.Removed {
		a.points = append(a.points, snap.Points...)
		return true
	}
	return a.dropTail(snap, "undo")
}

// Redo re-applies the most recently undone edit.
func (a *Accumulator) Redo() bool {
	a.Abort()
	snap, ok := a.hist.Redo()
	if !ok {
		return false
	}
	if snap.Removed {
		return a.dropTail(snap, "redo")
	}
	a.points = append(a.points, snap.Points...)
	return true
}

// dropTail removes the points of snap from the end of the vertex list.
func (a *Accumulator) dropTail(snap Snapshot, op string) bool {
	n := len(a.points)
	k := len(snap.Points)
	if k > n || !slices.Equal(a.points[n-k:], snap.Points) {
		a.log.WithFields(logrus.Fields{
			"op":     op,
			"points": k,
			"have":   n,
		}).Warn("vertex snapshot does not match the vertex list, skipped")
		return false
	}
	a.points = a.points[:n-k]
	return true
}

// Finish returns the locked-in vertices and resets the accumulator.
func (a *Accumulator) Finish() List {
	l := List{Page: a.page, Points: a.Vertices()}
	a.Reset()
	return l
}

// Reset discards all vertices and the edit history.
// The page is kept.
func (a *Accumulator) Reset() {
	a.points = nil
	a.pending = false
	a.inGesture = false
	a.hist.Reset()
}
