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

// Package viewport implements a coordinate bridge for a scrolling,
// zoomable view of a document.
//
// The pages of the document are stacked vertically, separated by a
// fixed gap, and aligned at their left edges.  Document space uses the
// PDF convention with y growing upwards, screen space has y growing
// downwards.
package viewport

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotedit/internal/planar"
)

// Viewport maps between screen space and the document space of the
// individual pages.  Pages are numbered from 1.
type Viewport struct {
	pages []rect.Rect
	tops  []float64
	gap   float64

	zoom   float64
	scroll vec.Vec2
}

// New returns a viewport showing pages with the given crop boxes, at
// zoom 1 and scrolled to the top left corner of the first page.
func New(pages []rect.Rect, gap float64) *Viewport {
	v := &Viewport{
		pages: make([]rect.Rect, len(pages)),
		tops:  make([]float64, len(pages)),
		gap:   gap,
		zoom:  1,
	}
	y := 0.0
	for i, p := range pages {
		p = planar.Normalize(p)
		v.pages[i] = p
		v.tops[i] = y
		y += p.URy - p.LLy + gap
	}
	return v
}

// NumPages returns the number of pages.
func (v *Viewport) NumPages() int {
	return len(v.pages)
}

// PageBox returns the crop box of a page, in document space.
func (v *Viewport) PageBox(page int) (rect.Rect, bool) {
	if page < 1 || page > len(v.pages) {
		return rect.Rect{}, false
	}
	return v.pages[page-1], true
}

// Zoom returns the current zoom factor.
func (v *Viewport) Zoom() float64 {
	return v.zoom
}

// Scroll returns the layout position shown at the top left corner of
// the screen.
func (v *Viewport) Scroll() vec.Vec2 {
	return v.scroll
}

// SetZoom changes the zoom factor, keeping the top left corner of the
// screen fixed.  Non-positive factors are ignored.
func (v *Viewport) SetZoom(zoom float64) {
	if zoom > 0 {
		v.zoom = zoom
	}
}

// ZoomAt multiplies the zoom factor by f, keeping the screen point p
// fixed.
func (v *Viewport) ZoomAt(p vec.Vec2, f float64) {
	if f <= 0 {
		return
	}
	before := v.screenToLayout(p)
	v.zoom *= f
	after := v.screenToLayout(p)
	v.scroll = v.scroll.Add(before.Sub(after))
}

// ScrollTo sets the layout position shown at the top left corner of the
// screen.
func (v *Viewport) ScrollTo(p vec.Vec2) {
	v.scroll = p
}

// ScrollBy scrolls the view by d screen units.
func (v *Viewport) ScrollBy(d vec.Vec2) {
	v.scroll = v.scroll.Add(d.Mul(1 / v.zoom))
}

// Matrix returns the transformation from the document space of a page to
// screen space.  For an invalid page number, the identity is returned.
func (v *Viewport) Matrix(page int) matrix.Matrix {
	box, ok := v.PageBox(page)
	if !ok {
		return matrix.Identity
	}
	top := v.tops[page-1]
	return matrix.Translate(-box.LLx, -box.URy).
		Mul(matrix.Scale(1, -1)).
		Mul(matrix.Translate(-v.scroll.X, top-v.scroll.Y)).
		Mul(matrix.Scale(v.zoom, v.zoom))
}

// DocumentToScreen converts a point on the given page to screen space.
func (v *Viewport) DocumentToScreen(p vec.Vec2, page int) vec.Vec2 {
	return apply(v.Matrix(page), p)
}

// ScreenToDocument converts a screen point to the document space of the
// given page.  The point does not need to lie on the page.
func (v *Viewport) ScreenToDocument(p vec.Vec2, page int) vec.Vec2 {
	return apply(v.Matrix(page).Inv(), p)
}

// PageAt returns the page shown at the screen point p.  Points in the
// gaps between pages, or beside the pages, are on no page.
func (v *Viewport) PageAt(p vec.Vec2) (int, bool) {
	q := v.screenToLayout(p)
	for i, box := range v.pages {
		top := v.tops[i]
		if q.Y < top || q.Y > top+box.URy-box.LLy {
			continue
		}
		if q.X < 0 || q.X > box.URx-box.LLx {
			return 0, false
		}
		return i + 1, true
	}
	return 0, false
}

func (v *Viewport) screenToLayout(p vec.Vec2) vec.Vec2 {
	return p.Mul(1 / v.zoom).Add(v.scroll)
}

func apply(m matrix.Matrix, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}
