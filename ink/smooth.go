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

import "seehuhn.de/go/geom/vec"

// Smooth converts a polyline into a piecewise cubic Bézier curve through
// all of its points, using Catmull-Rom tangents.
//
// The result has the form p0, c1, c2, p1, c1, c2, p2, ..., so that a
// curve with n points yields 3n-2 control points.  Points are passed
// through unchanged.  A single point is returned as is, and an empty
// input gives nil.
func Smooth(pts []vec.Vec2) []vec.Vec2 {
	n := len(pts)
	if n == 0 {
		return nil
	}
	res := make([]vec.Vec2, 0, 3*n-2)
	res = append(res, pts[0])
	for i := 0; i+1 < n; i++ {
		prev := pts[max(i-1, 0)]
		p0 := pts[i]
		p1 := pts[i+1]
		next := pts[min(i+2, n-1)]

		c1 := p0.Add(p1.Sub(prev).Mul(1.0 / 6))
		c2 := p1.Sub(next.Sub(p0).Mul(1.0 / 6))
		res = append(res, c1, c2, p1)
	}
	return res
}
