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

package ink

import (
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotedit"
	"seehuhn.de/go/annotedit/internal/planar"
)

// Item is one freehand annotation in the making: a list of strokes on
// one page, drawn in one style.
type Item struct {
	Page  int
	Style annotedit.Style

	// Strokes holds the document-space points of every stroke.
	// This is the geometry of record, smoothing never changes it.
	Strokes [][]vec.Vec2

	// Committed is set once the current strokes have been written to
	// the document.
	Committed bool

	// Existing marks the item which was loaded from an existing
	// annotation for in-place editing.
	Existing bool

	// Handle is the document annotation this item was last committed
	// to, or the empty string.
	Handle annotedit.Handle

	lo, hi   vec.Vec2
	hasBox   bool
	smoothed [][]vec.Vec2
	dirty    bool
}

func newItem(page int, style annotedit.Style) *Item {
	return &Item{Page: page, Style: style, dirty: true}
}

// Clone returns a deep copy of the item.
func (it *Item) Clone() *Item {
	if it == nil {
		return nil
	}
	c := *it
	c.Strokes = cloneStrokes(it.Strokes)
	c.smoothed = nil
	c.dirty = true
	return &c
}

// IsEmpty reports whether the item has no points.
func (it *Item) IsEmpty() bool {
	for _, s := range it.Strokes {
		if len(s) > 0 {
			return false
		}
	}
	return true
}

// NumPoints returns the total number of points in all strokes.
func (it *Item) NumPoints() int {
	n := 0
	for _, s := range it.Strokes {
		n += len(s)
	}
	return n
}

// BBox returns the bounding box of all points, inflated by the stroke
// thickness.  The second return value is false for an item without
// points.
func (it *Item) BBox() (rect.Rect, bool) {
	if !it.hasBox {
		return rect.Rect{}, false
	}
	r := rect.Rect{LLx: it.lo.X, LLy: it.lo.Y, URx: it.hi.X, URy: it.hi.Y}
	return planar.Inflate(r, it.Style.Thickness), true
}

// Smoothed returns the display strokes of the item.  Each display stroke
// is a sequence of cubic Bézier control points, see [Smooth].
// The result is cached until the strokes change.
func (it *Item) Smoothed() [][]vec.Vec2 {
	if it.dirty {
		it.smoothed = it.smoothed[:0]
		for _, s := range it.Strokes {
			it.smoothed = append(it.smoothed, Smooth(s))
		}
		it.dirty = false
	}
	return it.smoothed
}

// Shape returns the strokes of the item as an ink shape.
func (it *Item) Shape() *annotedit.Ink {
	return &annotedit.Ink{Strokes: cloneStrokes(it.Strokes)}
}

// extend adds p to the running bounding box.
func (it *Item) extend(p vec.Vec2) {
	if !it.hasBox {
		it.lo, it.hi, it.hasBox = p, p, true
		return
	}
	it.lo = vec.Vec2{X: min(it.lo.X, p.X), Y: min(it.lo.Y, p.Y)}
	it.hi = vec.Vec2{X: max(it.hi.X, p.X), Y: max(it.hi.Y, p.Y)}
}

// rescan recomputes the bounding box from scratch.  This is needed after
// points have been removed.
func (it *Item) rescan() {
	it.hasBox = false
	for _, s := range it.Strokes {
		for _, p := range s {
			it.extend(p)
		}
	}
	it.dirty = true
}

func cloneStrokes(strokes [][]vec.Vec2) [][]vec.Vec2 {
	if strokes == nil {
		return nil
	}
	res := make([][]vec.Vec2, len(strokes))
	for i, s := range strokes {
		res[i] = slices.Clone(s)
	}
	return res
}
