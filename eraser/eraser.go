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

// Package eraser removes ink points which come close to an eraser path.
//
// A point is erased if its distance to an eraser segment is at most the
// eraser's half thickness.  Removing interior points splits a stroke: the
// result contains one stroke for every maximal run of consecutive points
// which survived.  Runs of fewer than two points are dropped.  Strokes
// which the eraser does not touch are left alone, even if they consist of
// a single point.
//
// Erasing is incremental along a drag.  Applying the segments A-B and
// B-C one after the other gives the same result as applying the path
// A-B-C in one call to [ErasePath].
package eraser

import (
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotedit"
	"seehuhn.de/go/annotedit/internal/planar"
)

// Erase removes all points within halfThickness of the segment from a to b.
// If a equals b, the eraser acts like a single dot.
//
// The returned stroke list may share strokes with the input, but the
// input is never modified.  The second return value reports whether any
// point was removed.
func Erase(strokes [][]vec.Vec2, a, b vec.Vec2, halfThickness float64) ([][]vec.Vec2, bool) {
	return erase(strokes, func(p vec.Vec2) bool {
		return planar.SegmentDist(p, a, b) <= halfThickness
	})
}

// ErasePath removes all points within halfThickness of the polyline path.
// A path with a single point acts like a dot.  An empty path erases
// nothing.
func ErasePath(strokes [][]vec.Vec2, path []vec.Vec2, halfThickness float64) ([][]vec.Vec2, bool) {
	switch len(path) {
	case 0:
		return strokes, false
	case 1:
		return Erase(strokes, path[0], path[0], halfThickness)
	}
	return erase(strokes, func(p vec.Vec2) bool {
		for i := 1; i < len(path); i++ {
			if planar.SegmentDist(p, path[i-1], path[i]) <= halfThickness {
				return true
			}
		}
		return false
	})
}

func erase(strokes [][]vec.Vec2, hit func(vec.Vec2) bool) ([][]vec.Vec2, bool) {
	res := make([][]vec.Vec2, 0, len(strokes))
	changed := false
	for _, stroke := range strokes {
		cut := -1
		for i, p := range stroke {
			if hit(p) {
				cut = i
				break
			}
		}
		if cut < 0 {
			res = append(res, stroke)
			continue
		}

		changed = true
		start := 0
		for i := cut; i <= len(stroke); i++ {
			if i < len(stroke) && (i < cut || !hit(stroke[i])) {
				continue
			}
			if i-start >= 2 {
				run := make([]vec.Vec2, i-start)
				copy(run, stroke[start:i])
				res = append(res, run)
			}
			start = i + 1
		}
	}
	if !changed {
		return strokes, false
	}
	return res, true
}

// IsEmpty reports whether no stroke has any points left.
func IsEmpty(strokes [][]vec.Vec2) bool {
	for _, s := range strokes {
		if len(s) > 0 {
			return false
		}
	}
	return true
}

// Touches reports whether the eraser segment from a to b comes within
// halfThickness of the outline of s.  This is used to erase complete
// annotations rather than individual ink points.
func Touches(s annotedit.Shape, a, b vec.Vec2, halfThickness float64) bool {
	found := false
	annotedit.Edges(s, func(p, q vec.Vec2) bool {
		if planar.SegmentsDist(a, b, p, q) <= halfThickness {
			found = true
			return false
		}
		return true
	})
	return found
}
