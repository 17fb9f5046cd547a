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

// Package planar collects the small pieces of plane geometry used by the
// editor: bounding boxes, clamping and point-to-segment distances.
package planar

import (
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Bounds returns the smallest rectangle containing all points.
// The second return value is false if pts is empty.
func Bounds(pts ...vec.Vec2) (rect.Rect, bool) {
	if len(pts) == 0 {
		return rect.Rect{}, false
	}
	r := rect.Rect{LLx: pts[0].X, LLy: pts[0].Y, URx: pts[0].X, URy: pts[0].Y}
	for _, p := range pts[1:] {
		r = Extend(r, p)
	}
	return r, true
}

// Extend enlarges r so that it contains p.
func Extend(r rect.Rect, p vec.Vec2) rect.Rect {
	r.LLx = min(r.LLx, p.X)
	r.LLy = min(r.LLy, p.Y)
	r.URx = max(r.URx, p.X)
	r.URy = max(r.URy, p.Y)
	return r
}

// Union returns the smallest rectangle containing a and b.
func Union(a, b rect.Rect) rect.Rect {
	return rect.Rect{
		LLx: min(a.LLx, b.LLx),
		LLy: min(a.LLy, b.LLy),
		URx: max(a.URx, b.URx),
		URy: max(a.URy, b.URy),
	}
}

// Inflate grows r by d on every side.
func Inflate(r rect.Rect, d float64) rect.Rect {
	return rect.Rect{LLx: r.LLx - d, LLy: r.LLy - d, URx: r.URx + d, URy: r.URy + d}
}

// Normalize reorders the corners of r so that LL is the minimum corner.
func Normalize(r rect.Rect) rect.Rect {
	if r.LLx > r.URx {
		r.LLx, r.URx = r.URx, r.LLx
	}
	if r.LLy > r.URy {
		r.LLy, r.URy = r.URy, r.LLy
	}
	return r
}

// Translate moves r by d.
func Translate(r rect.Rect, d vec.Vec2) rect.Rect {
	return rect.Rect{LLx: r.LLx + d.X, LLy: r.LLy + d.Y, URx: r.URx + d.X, URy: r.URy + d.Y}
}

// Contains reports whether p lies inside r or on its boundary.
func Contains(r rect.Rect, p vec.Vec2) bool {
	return p.X >= r.LLx && p.X <= r.URx && p.Y >= r.LLy && p.Y <= r.URy
}

// ContainsRect reports whether inner lies completely inside outer.
func ContainsRect(outer, inner rect.Rect) bool {
	return inner.LLx >= outer.LLx && inner.URx <= outer.URx &&
		inner.LLy >= outer.LLy && inner.URy <= outer.URy
}

// Clamp moves p into r.  The second return value reports whether
// p had to be moved.
func Clamp(p vec.Vec2, r rect.Rect) (vec.Vec2, bool) {
	q := vec.Vec2{
		X: min(max(p.X, r.LLx), r.URx),
		Y: min(max(p.Y, r.LLy), r.URy),
	}
	return q, q != p
}

// Center returns the midpoint of r.
func Center(r rect.Rect) vec.Vec2 {
	return vec.Vec2{X: (r.LLx + r.URx) / 2, Y: (r.LLy + r.URy) / 2}
}

// IsEmpty reports whether r has zero width or zero height.
func IsEmpty(r rect.Rect) bool {
	return !(r.URx > r.LLx) || !(r.URy > r.LLy)
}

// Finite reports whether both coordinates of p are finite numbers.
func Finite(p vec.Vec2) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Dist returns the Euclidean distance between p and q.
func Dist(p, q vec.Vec2) float64 {
	return p.Sub(q).Length()
}

// SegmentDist returns the distance from p to the segment from a to b.
// If a and b coincide, this is the distance from p to a.
func SegmentDist(p, a, b vec.Vec2) float64 {
	d := b.Sub(a)
	l2 := d.X*d.X + d.Y*d.Y
	if l2 == 0 {
		return Dist(p, a)
	}
	t := ((p.X-a.X)*d.X + (p.Y-a.Y)*d.Y) / l2
	t = min(max(t, 0), 1)
	return Dist(p, a.Add(d.Mul(t)))
}

// SegmentsDist returns the distance between the segments a0-a1 and b0-b1.
func SegmentsDist(a0, a1, b0, b1 vec.Vec2) float64 {
	if segmentsCross(a0, a1, b0, b1) {
		return 0
	}
	return min(
		SegmentDist(a0, b0, b1),
		SegmentDist(a1, b0, b1),
		SegmentDist(b0, a0, a1),
		SegmentDist(b1, a0, a1),
	)
}

func segmentsCross(a0, a1, b0, b1 vec.Vec2) bool {
	d1 := cross(b1.Sub(b0), a0.Sub(b0))
	d2 := cross(b1.Sub(b0), a1.Sub(b0))
	d3 := cross(a1.Sub(a0), b0.Sub(a0))
	d4 := cross(a1.Sub(a0), b1.Sub(a0))
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func cross(u, v vec.Vec2) float64 {
	return u.X*v.Y - u.Y*v.X
}
