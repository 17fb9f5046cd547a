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

// Package paint turns annotation shapes into drawing operations.
// It is shared by the PDF and the raster exporters.
package paint

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotedit"
	"seehuhn.de/go/annotedit/cloud"
	"seehuhn.de/go/annotedit/ink"
)

// Painter is the target of [Draw].  Coordinates are in document space.
type Painter interface {
	cloud.Pather

	// Stroke strokes and clears the current path.
	Stroke()

	// Fill fills and clears the current path.
	Fill()
}

// Draw emits the drawing operations for a shape.
func Draw(p Painter, s annotedit.Shape, lineWidth float64) {
	switch s := s.(type) {
	case *annotedit.Line:
		p.MoveTo(s.Start)
		p.LineTo(s.End)
		p.Stroke()
		if s.Arrow {
			head := ArrowHead(s.Start, s.End, lineWidth)
			cloud.Plain(p, head[:])
			p.Fill()
		}
	case *annotedit.Polyline:
		polyline(p, s.Vertices)
		p.Stroke()
	case *annotedit.Polygon:
		cloud.Plain(p, s.Vertices)
		p.Stroke()
	case *annotedit.Cloud:
		if o := cloud.New(s.Vertices, s.Intensity, lineWidth); o != nil {
			o.Stroke(p)
		} else {
			cloud.Plain(p, s.Vertices)
		}
		p.Stroke()
	case *annotedit.Callout:
		b := s.TextBox
		cloud.Plain(p, []vec.Vec2{
			{X: b.LLx, Y: b.LLy}, {X: b.URx, Y: b.LLy},
			{X: b.URx, Y: b.URy}, {X: b.LLx, Y: b.URy},
		})
		p.Stroke()
		polyline(p, []vec.Vec2{s.Start, s.Knee, s.End})
		p.Stroke()
	case *annotedit.Ink:
		for _, stroke := range s.Strokes {
			curve(p, stroke)
		}
		p.Stroke()
	}
}

func polyline(p Painter, pts []vec.Vec2) {
	for i, v := range pts {
		if i == 0 {
			p.MoveTo(v)
		} else {
			p.LineTo(v)
		}
	}
}

// curve emits a smooth curve through the points of an ink stroke.
func curve(p Painter, stroke []vec.Vec2) {
	switch len(stroke) {
	case 0:
		return
	case 1:
		p.MoveTo(stroke[0])
		p.LineTo(stroke[0])
		return
	}
	c := ink.Smooth(stroke)
	p.MoveTo(c[0])
	for i := 1; i+2 < len(c); i += 3 {
		p.CubeTo(c[i], c[i+1], c[i+2])
	}
}

// ArrowHead returns the corners of the arrow head at the end of a line.
// The tip is at end.
func ArrowHead(start, end vec.Vec2, lineWidth float64) [3]vec.Vec2 {
	length := 3 + 4*lineWidth
	d := end.Sub(start)
	l := d.Length()
	if l == 0 {
		return [3]vec.Vec2{end, end, end}
	}
	d = d.Mul(1 / l)

	const spread = math.Pi / 6
	back := func(angle float64) vec.Vec2 {
		sin, cos := math.Sincos(angle)
		r := vec.Vec2{X: d.X*cos - d.Y*sin, Y: d.X*sin + d.Y*cos}
		return end.Sub(r.Mul(length))
	}
	return [3]vec.Vec2{end, back(spread), back(-spread)}
}
