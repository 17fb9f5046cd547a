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

package annotedit

import (
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotedit/internal/planar"
)

// Shape is the geometry of one annotation.  The set of shapes is closed:
// the only implementations are [*Line], [*Polyline], [*Polygon], [*Cloud],
// [*Callout] and [*Ink].
//
// Depending on context, the coordinates of a shape are either in document
// space or in screen space.  Use [Map] to convert between the two.
type Shape interface {
	// Kind returns the kind of the shape.
	Kind() Kind

	// Points returns all points which define the shape, in a fixed order.
	Points() []vec.Vec2

	// mapped returns a copy of the shape with f applied to every point.
	mapped(f func(vec.Vec2) vec.Vec2) Shape
}

// Line is a straight line segment, optionally with an arrow head at the
// end point.
type Line struct {
	Start, End vec.Vec2
	Arrow      bool
}

// Kind returns [KindLine].
func (l *Line) Kind() Kind { return KindLine }

// Points returns the start and end point.
func (l *Line) Points() []vec.Vec2 { return []vec.Vec2{l.Start, l.End} }

func (l *Line) mapped(f func(vec.Vec2) vec.Vec2) Shape {
	return &Line{Start: f(l.Start), End: f(l.End), Arrow: l.Arrow}
}

// Polyline is an open sequence of connected line segments.
type Polyline struct {
	Vertices []vec.Vec2
}

// Kind returns [KindPolyline].
func (p *Polyline) Kind() Kind { return KindPolyline }

// Points returns the vertices.
func (p *Polyline) Points() []vec.Vec2 { return slices.Clone(p.Vertices) }

func (p *Polyline) mapped(f func(vec.Vec2) vec.Vec2) Shape {
	return &Polyline{Vertices: mapPoints(p.Vertices, f)}
}

// Polygon is a closed sequence of connected line segments.
type Polygon struct {
	Vertices []vec.Vec2
}

// Kind returns [KindPolygon].
func (p *Polygon) Kind() Kind { return KindPolygon }

// Points returns the vertices.
func (p *Polygon) Points() []vec.Vec2 { return slices.Clone(p.Vertices) }

func (p *Polygon) mapped(f func(vec.Vec2) vec.Vec2) Shape {
	return &Polygon{Vertices: mapPoints(p.Vertices, f)}
}

// Cloud is a polygon which is drawn with a cloudy border.
type Cloud struct {
	Vertices []vec.Vec2

	// Intensity controls the size of the cloud bulges.
	// Zero means the default intensity of 1.
	Intensity float64
}

// Kind returns [KindCloud].
func (c *Cloud) Kind() Kind { return KindCloud }

// Points returns the vertices.
func (c *Cloud) Points() []vec.Vec2 { return slices.Clone(c.Vertices) }

func (c *Cloud) mapped(f func(vec.Vec2) vec.Vec2) Shape {
	return &Cloud{Vertices: mapPoints(c.Vertices, f), Intensity: c.Intensity}
}

// Callout is a text box with a callout line.  The line starts at the point
// the callout refers to, bends at the knee and ends on one of the edge
// midpoints of the text box.
type Callout struct {
	TextBox          rect.Rect
	Start, Knee, End vec.Vec2
}

// Kind returns [KindCallout].
func (c *Callout) Kind() Kind { return KindCallout }

// Points returns the four corners of the text box (lower left first,
// counter-clockwise) followed by the start, knee and end point.
func (c *Callout) Points() []vec.Vec2 {
	b := c.TextBox
	return []vec.Vec2{
		{X: b.LLx, Y: b.LLy}, {X: b.URx, Y: b.LLy},
		{X: b.URx, Y: b.URy}, {X: b.LLx, Y: b.URy},
		c.Start, c.Knee, c.End,
	}
}

func (c *Callout) mapped(f func(vec.Vec2) vec.Vec2) Shape {
	p0 := f(vec.Vec2{X: c.TextBox.LLx, Y: c.TextBox.LLy})
	p1 := f(vec.Vec2{X: c.TextBox.URx, Y: c.TextBox.URy})
	box := planar.Normalize(rect.Rect{LLx: p0.X, LLy: p0.Y, URx: p1.X, URy: p1.Y})
	return &Callout{
		TextBox: box,
		Start:   f(c.Start),
		Knee:    f(c.Knee),
		End:     f(c.End),
	}
}

// Ink is a freehand drawing, consisting of one or more strokes.
type Ink struct {
	Strokes [][]vec.Vec2
}

// Kind returns [KindInk].
func (i *Ink) Kind() Kind { return KindInk }

// Points returns the points of all strokes, concatenated.
func (i *Ink) Points() []vec.Vec2 {
	var res []vec.Vec2
	for _, s := range i.Strokes {
		res = append(res, s...)
	}
	return res
}

func (i *Ink) mapped(f func(vec.Vec2) vec.Vec2) Shape {
	strokes := make([][]vec.Vec2, len(i.Strokes))
	for k, s := range i.Strokes {
		strokes[k] = mapPoints(s, f)
	}
	return &Ink{Strokes: strokes}
}

// Map returns a copy of s with f applied to every point.
// The argument s is not modified.
func Map(s Shape, f func(vec.Vec2) vec.Vec2) Shape {
	return s.mapped(f)
}

// Clone returns a deep copy of s.
func Clone(s Shape) Shape {
	return s.mapped(func(p vec.Vec2) vec.Vec2 { return p })
}

// Bounds returns the bounding box of all points of s.
func Bounds(s Shape) rect.Rect {
	r, _ := planar.Bounds(s.Points()...)
	return r
}

// Edges calls yield for every straight edge of the outline of s.
// Ink strokes are treated as polylines, callouts contribute the
// four sides of the text box and the two segments of the callout line.
func Edges(s Shape, yield func(a, b vec.Vec2) bool) {
	chain := func(pts []vec.Vec2, closed bool) bool {
		if len(pts) == 1 {
			return yield(pts[0], pts[0])
		}
		for i := 1; i < len(pts); i++ {
			if !yield(pts[i-1], pts[i]) {
				return false
			}
		}
		if closed && len(pts) > 2 {
			return yield(pts[len(pts)-1], pts[0])
		}
		return true
	}

	switch s := s.(type) {
	case *Line:
		yield(s.Start, s.End)
	case *Polyline:
		chain(s.Vertices, false)
	case *Polygon:
		chain(s.Vertices, true)
	case *Cloud:
		chain(s.Vertices, true)
	case *Callout:
		pts := s.Points()
		if chain(pts[:4], true) {
			chain(pts[4:], false)
		}
	case *Ink:
		for _, stroke := range s.Strokes {
			if !chain(stroke, false) {
				return
			}
		}
	}
}

func mapPoints(pts []vec.Vec2, f func(vec.Vec2) vec.Vec2) []vec.Vec2 {
	if pts == nil {
		return nil
	}
	res := make([]vec.Vec2, len(pts))
	for i, p := range pts {
		res[i] = f(p)
	}
	return res
}
