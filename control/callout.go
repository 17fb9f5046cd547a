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

package control

import (
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotedit/internal/planar"
)

// Control point indices for callouts.
const (
	TopLeft = iota
	TopRight
	BottomRight
	BottomLeft
	TopMid
	RightMid
	BottomMid
	LeftMid

	CalloutStart
	CalloutKnee
	CalloutEnd

	numCalloutPoints
	numBoxHandles = CalloutStart
)

// SnapEnd returns the end point of a callout line with the given knee:
// the midpoint of a text box edge closest to the knee.  Edges are tried
// in the order top, left, bottom, right, and on ties the first one wins.
func SnapEnd(box rect.Rect, knee vec.Vec2) vec.Vec2 {
	c := planar.Center(box)
	candidates := [4]vec.Vec2{
		{X: c.X, Y: box.LLy}, // top
		{X: box.LLx, Y: c.Y}, // left
		{X: c.X, Y: box.URy}, // bottom
		{X: box.URx, Y: c.Y}, // right
	}
	best := candidates[0]
	bestDist := planar.Dist(knee, best)
	for _, p := range candidates[1:] {
		if d := planar.Dist(knee, p); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

func setBoxHandles(pts []vec.Vec2, b rect.Rect) {
	c := planar.Center(b)
	pts[TopLeft] = vec.Vec2{X: b.LLx, Y: b.LLy}
	pts[TopRight] = vec.Vec2{X: b.URx, Y: b.LLy}
	pts[BottomRight] = vec.Vec2{X: b.URx, Y: b.URy}
	pts[BottomLeft] = vec.Vec2{X: b.LLx, Y: b.URy}
	pts[TopMid] = vec.Vec2{X: c.X, Y: b.LLy}
	pts[RightMid] = vec.Vec2{X: b.URx, Y: c.Y}
	pts[BottomMid] = vec.Vec2{X: c.X, Y: b.URy}
	pts[LeftMid] = vec.Vec2{X: b.LLx, Y: c.Y}
}

func textBox(pts []vec.Vec2) rect.Rect {
	return rect.Rect{
		LLx: pts[TopLeft].X, LLy: pts[TopLeft].Y,
		URx: pts[BottomRight].X, URy: pts[BottomRight].Y,
	}
}

// resizeBox moves the edges of the text box which belong to handle i.
// The box must stay at least twice the radius wide and high.
func (m *Model) resizeBox(i int, delta vec.Vec2) bool {
	q := m.downPts[i].Add(delta)
	clamped := false
	if m.hasCrop {
		q, clamped = planar.Clamp(q, m.crop)
	}

	b := textBox(m.downPts)
	switch i {
	case TopLeft:
		b.LLx, b.LLy = q.X, q.Y
	case TopRight:
		b.URx, b.LLy = q.X, q.Y
	case BottomRight:
		b.URx, b.URy = q.X, q.Y
	case BottomLeft:
		b.LLx, b.URy = q.X, q.Y
	case TopMid:
		b.LLy = q.Y
	case RightMid:
		b.URx = q.X
	case BottomMid:
		b.URy = q.Y
	case LeftMid:
		b.LLx = q.X
	}
	minSize := 2 * m.radius
	if b.URx-b.LLx < minSize || b.URy-b.LLy < minSize {
		return false
	}
	if b == textBox(m.pts) {
		return false
	}

	setBoxHandles(m.pts, b)
	m.pts[CalloutEnd] = SnapEnd(b, m.pts[CalloutKnee])
	changed := make([]int, 0, numBoxHandles+1)
	for k := range numBoxHandles {
		changed = append(changed, k)
	}
	changed = append(changed, CalloutEnd)
	m.updateBox(clamped, changed)
	return true
}
