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

// Package cloud computes the cloudy border of a polygon.
//
// The border consists of circular-looking bulges along the polygon
// boundary, with a short tick mark at every cusp between two bulges.  If
// the polygon has a long, nearly horizontal bottom edge, that edge is
// kept flat.
package cloud

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotedit/internal/planar"
)

// Pather receives the segments of an outline.
type Pather interface {
	MoveTo(p vec.Vec2)
	LineTo(p vec.Vec2)
	CubeTo(c1, c2, p vec.Vec2)
	Close()
}

// Outline is the cloudy border of a polygon.
type Outline struct {
	points  []vec.Vec2 // equidistant boundary points, counter-clockwise
	cusps   []int      // indices into points where bulges meet
	hasBase bool
}

// New computes the cloudy border of a polygon.  Intensity controls the
// size of the bulges, zero means 1.  The line width is used to choose
// the spacing of the sample points.
//
// If the polygon is too small for at least three bulges, New returns
// nil.  Callers then draw the plain polygon, see [Plain].
func New(vertices []vec.Vec2, intensity, lineWidth float64) *Outline {
	n := len(vertices)
	if n < 3 {
		return nil
	}
	if intensity <= 0 {
		intensity = 1
	}
	if signedArea(vertices) < 0 {
		vertices = slices.Clone(vertices)
		slices.Reverse(vertices)
	}

	points := sample(vertices, lineWidth)
	if len(points) < 3 {
		return nil
	}
	baseStart, baseLen := flatBase(points)

	perBulge := max(2, int(math.Round(3*intensity)))
	nPoints := len(points)
	hasBase := baseLen > 0
	cloudLen := nPoints
	if hasBase {
		cloudLen -= baseLen
	}
	nBulges := int(math.Round(float64(cloudLen) / float64(perBulge)))
	if nBulges < 3 {
		return nil
	}

	var cusps []int
	if hasBase {
		first := (baseStart + baseLen) % nPoints
		cusps = make([]int, nBulges+1)
		for i := range cusps {
			cusps[i] = (first + i*cloudLen/nBulges) % nPoints
		}
	} else {
		cusps = make([]int, nBulges)
		for i := range cusps {
			cusps[i] = i * nPoints / nBulges
		}
	}
	return &Outline{points: points, cusps: cusps, hasBase: hasBase}
}

// NumBulges returns the number of bulges.
func (o *Outline) NumBulges() int {
	if o.hasBase {
		return len(o.cusps) - 1
	}
	return len(o.cusps)
}

// HasBase reports whether the outline has a flat bottom edge.
func (o *Outline) HasBase() bool {
	return o.hasBase
}

// Fill emits the closed outline, for filling the shape.
func (o *Outline) Fill(p Pather) {
	n := o.NumBulges()
	if o.hasBase {
		p.MoveTo(o.points[o.cusps[n]])
		p.LineTo(o.points[o.cusps[0]])
	} else {
		p.MoveTo(o.points[o.cusps[0]])
	}
	for i := range n {
		c1, c2, end := o.bulge(i)
		p.CubeTo(c1, c2, end)
	}
	p.Close()
}

// Stroke emits the border for stroking.  Unlike [Outline.Fill], this
// includes the tick marks at the cusps.
func (o *Outline) Stroke(p Pather) {
	n := o.NumBulges()
	p.MoveTo(o.points[o.cusps[0]])
	for i := range n {
		j := o.bulgeEnd(i)
		start := o.points[o.cusps[i]]
		c1, c2, end := o.bulge(i)
		p.CubeTo(c1, c2, end)

		if o.hasBase && (j == 0 || j == n) {
			continue
		}
		theta := tangent(o.points, o.cusps[j]) + 3*math.Pi/4
		ext := 0.1 * planar.Dist(start, end)
		p.MoveTo(end.Add(vec.Vec2{X: ext * math.Cos(theta), Y: ext * math.Sin(theta)}))
		p.LineTo(end)
	}
	if o.hasBase {
		p.LineTo(o.points[o.cusps[0]])
	}
}

// Bounds returns a box enclosing all control points of the outline.
func (o *Outline) Bounds() rect.Rect {
	b := &bounder{}
	o.Stroke(b)
	return b.box
}

func (o *Outline) bulgeEnd(i int) int {
	if o.hasBase {
		return i + 1
	}
	return (i + 1) % len(o.cusps)
}

// bulge returns the Bézier control points of bulge i.
func (o *Outline) bulge(i int) (c1, c2, end vec.Vec2) {
	n := o.NumBulges()
	j := o.bulgeEnd(i)

	p0 := o.points[o.cusps[i]]
	p3 := o.points[o.cusps[j]]
	dist := 0.5 * planar.Dist(p0, p3)

	// the bulges leave each cusp at 45 degrees towards the outside
	out := tangent(o.points, o.cusps[i]) - math.Pi/4
	outDist := dist
	if o.hasBase && i == 0 {
		out = o.baseAngle()
		outDist *= 1.2
	}
	in := tangent(o.points, o.cusps[j]) + math.Pi/4
	inDist := dist
	if o.hasBase && j == n {
		in = o.baseAngle()
		inDist *= 1.2
	}

	c1 = p0.Add(vec.Vec2{X: outDist * math.Cos(out), Y: outDist * math.Sin(out)})
	c2 = p3.Sub(vec.Vec2{X: inDist * math.Cos(in), Y: inDist * math.Sin(in)})
	return c1, c2, p3
}

func (o *Outline) baseAngle() float64 {
	from := o.points[o.cusps[o.NumBulges()]]
	d := o.points[o.cusps[0]].Sub(from)
	return math.Atan2(d.Y, d.X)
}

// Plain emits the closed polygon, for polygons without a cloudy border.
func Plain(p Pather, vertices []vec.Vec2) {
	for i, v := range vertices {
		if i == 0 {
			p.MoveTo(v)
		} else {
			p.LineTo(v)
		}
	}
	if len(vertices) > 0 {
		p.Close()
	}
}

func tangent(points []vec.Vec2, k int) float64 {
	n := len(points)
	d := points[(k+1)%n].Sub(points[(k-1+n)%n])
	return math.Atan2(d.Y, d.X)
}

// sample places equidistant points along the polygon boundary.
func sample(vertices []vec.Vec2, lineWidth float64) []vec.Vec2 {
	n := len(vertices)
	lengths := make([]float64, n)
	var perimeter float64
	for i := range n {
		lengths[i] = planar.Dist(vertices[i], vertices[(i+1)%n])
		perimeter += lengths[i]
	}
	if perimeter < 1e-9 {
		return nil
	}

	spacing := min(4*(lineWidth+1), 20)
	count := max(3, int(math.Round(perimeter/spacing)))
	step := perimeter / float64(count)

	points := make([]vec.Vec2, 0, count)
	for i := range count {
		d := float64(i) * step
		for e := range n {
			if d <= lengths[e]+1e-9 {
				var t float64
				if lengths[e] > 1e-9 {
					t = min(d/lengths[e], 1)
				}
				a, b := vertices[e], vertices[(e+1)%n]
				points = append(points, a.Add(b.Sub(a).Mul(t)))
				break
			}
			d -= lengths[e]
		}
	}
	return points
}

// flatBase finds the longest run of nearly horizontal segments close to
// the bottom of the shape.  A run shorter than a quarter of the boundary
// does not count.
func flatBase(points []vec.Vec2) (start, length int) {
	n := len(points)
	if n < 4 {
		return 0, 0
	}

	const maxAngle = 15.0 * math.Pi / 180
	horiz := make([]bool, n)
	for i := range n {
		d := points[(i+1)%n].Sub(points[i])
		a := math.Abs(math.Atan2(d.Y, d.X))
		horiz[i] = a <= maxAngle || math.Pi-a <= maxAngle
	}

	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	nearBottom := func(start, length int) bool {
		if maxY-minY < 1e-9 {
			return true
		}
		var sum float64
		for i := range length {
			sum += points[(start+i)%n].Y
		}
		return sum/float64(length)-minY <= 0.1*(maxY-minY)
	}

	// two passes, so that runs wrapping around the end are found
	bestStart, bestLen := 0, 0
	runStart, runLen := 0, 0
	for i := range 2 * n {
		idx := i % n
		if horiz[idx] {
			if runLen == 0 {
				runStart = idx
			}
			runLen = min(runLen+1, n)
			continue
		}
		if runLen > bestLen && nearBottom(runStart, runLen) {
			bestStart, bestLen = runStart, runLen
		}
		runLen = 0
	}
	if runLen > bestLen && nearBottom(runStart, runLen) {
		bestStart, bestLen = runStart, runLen
	}

	if bestLen < n/4 {
		return 0, 0
	}
	return bestStart, bestLen
}

// signedArea returns twice the signed area of a polygon.
// The value is positive for counter-clockwise polygons.
func signedArea(vertices []vec.Vec2) float64 {
	var area float64
	n := len(vertices)
	for i := range n {
		j := (i + 1) % n
		area += vertices[i].X*vertices[j].Y - vertices[j].X*vertices[i].Y
	}
	return area
}

type bounder struct {
	box  rect.Rect
	init bool
}

func (b *bounder) add(pts ...vec.Vec2) {
	for _, p := range pts {
		if !b.init {
			b.box = rect.Rect{LLx: p.X, LLy: p.Y, URx: p.X, URy: p.Y}
			b.init = true
			continue
		}
		b.box = planar.Extend(b.box, p)
	}
}

func (b *bounder) MoveTo(p vec.Vec2)         { b.add(p) }
func (b *bounder) LineTo(p vec.Vec2)         { b.add(p) }
func (b *bounder) CubeTo(c1, c2, p vec.Vec2) { b.add(c1, c2, p) }
func (b *bounder) Close()                    {}
