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

// Package control implements the control-point model used to reshape
// committed annotations.
//
// A [Model] holds the screen-space control points of one shape, together
// with a snapshot of their positions at the start of the current drag.
// During a drag, every proposed position is computed from the snapshot
// plus the total pointer movement, so that no rounding errors accumulate.
// Proposals which would collapse two control points, or leave the crop
// box, are corrected or rejected before they are applied.
//
// The layout of the control points depends on the kind of shape:
//
//   - Line: start and end point.
//   - Polyline, Polygon, Cloud: the vertices.
//   - Callout: the eight handles of the text box ([TopLeft] to
//     [LeftMid]), followed by the start, knee and end point of the
//     callout line ([CalloutStart], [CalloutKnee], [CalloutEnd]).
//   - Ink: no control points, ink can only be moved as a whole.
//
// All coordinates are in screen space, where y grows downwards.
package control

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotedit"
	"seehuhn.de/go/annotedit/internal/planar"
)

const (
	// hitFactor scales the control point radius for hit tests.
	hitFactor = 2.25

	// bodyFactor scales the control point radius for hit tests against
	// the edges of lines and polylines.
	bodyFactor = 2

	// edgeSlack is the distance from an extremal edge of the bounding
	// box within which a moved point forces a full rescan.
	edgeSlack = 1
)

// Model is the control-point model of one shape.
type Model struct {
	kind      annotedit.Kind
	arrow     bool
	intensity float64

	radius  float64
	crop    rect.Rect
	hasCrop bool

	pts     []vec.Vec2
	strokes [][]vec.Vec2 // only for ink
	box     rect.Rect

	// state at the start of the current drag
	id          ID
	dragging    bool
	downPos     vec.Vec2
	downPts     []vec.Vec2
	downStrokes [][]vec.Vec2
	downBox     rect.Rect

	last Update
}

// New returns the control-point model of s, which must be given in
// screen space.  The argument radius is the size of the control point
// handles.  If crop is not empty, all control points are kept inside it.
func New(s annotedit.Shape, radius float64, crop rect.Rect) *Model {
	m := &Model{
		kind:   s.Kind(),
		radius: radius,
	}
	if !planar.IsEmpty(crop) {
		m.crop = planar.Normalize(crop)
		m.hasCrop = true
	}

	switch s := s.(type) {
	case *annotedit.Line:
		m.arrow = s.Arrow
		m.pts = []vec.Vec2{s.Start, s.End}
	case *annotedit.Polyline:
		m.pts = slices.Clone(s.Vertices)
	case *annotedit.Polygon:
		m.pts = slices.Clone(s.Vertices)
	case *annotedit.Cloud:
		m.intensity = s.Intensity
		m.pts = slices.Clone(s.Vertices)
	case *annotedit.Callout:
		m.pts = make([]vec.Vec2, numCalloutPoints)
		setBoxHandles(m.pts, planar.Normalize(s.TextBox))
		m.pts[CalloutStart] = s.Start
		m.pts[CalloutKnee] = s.Knee
		m.pts[CalloutEnd] = s.End
	case *annotedit.Ink:
		m.strokes = cloneStrokes(s.Strokes)
	}
	m.rescan()
	return m
}

// Kind returns the kind of the shape.
func (m *Model) Kind() annotedit.Kind {
	return m.kind
}

// Radius returns the control point radius.
func (m *Model) Radius() float64 {
	return m.radius
}

// Len returns the number of control points.
func (m *Model) Len() int {
	return len(m.pts)
}

// Point returns control point i.
func (m *Model) Point(i int) vec.Vec2 {
	return m.pts[i]
}

// Points returns a copy of all control points, for drawing.
func (m *Model) Points() []vec.Vec2 {
	return slices.Clone(m.pts)
}

// Selectable reports whether control point i can be dragged.
func (m *Model) Selectable(i int) bool {
	if i < 0 || i >= len(m.pts) {
		return false
	}
	return m.kind != annotedit.KindCallout || i != CalloutEnd
}

// BBox returns the bounding box of all control points, inflated by the
// control point radius.
func (m *Model) BBox() rect.Rect {
	return m.box
}

// LastUpdate reports how the bounding box was computed after the most
// recent change.
func (m *Model) LastUpdate() Update {
	return m.last
}

// Active returns the target of the current drag.  If no drag is in
// progress, [None] is returned.
func (m *Model) Active() ID {
	if !m.dragging {
		return None
	}
	return m.id
}

// HitTest returns the target a gesture starting at p would have.
//
// Control points within 2.25 times the radius of p are hit, the closest
// one wins.  If no control point is hit, the body of the shape is tested:
// lines and polylines are hit within twice the radius of an edge, other
// shapes are hit inside their bounding box (callouts: inside the text
// box).  A body hit moves the whole shape.
func (m *Model) HitTest(p vec.Vec2) ID {
	best := -1
	bestDist := m.radius * hitFactor
	for i, q := range m.pts {
		if !m.Selectable(i) {
			continue
		}
		if d := planar.Dist(p, q); d <= bestDist && (best < 0 || d < bestDist) {
			best, bestDist = i, d
		}
	}
	if best >= 0 {
		return Vertex(best)
	}

	switch m.kind {
	case annotedit.KindLine, annotedit.KindPolyline:
		for i := 1; i < len(m.pts); i++ {
			if planar.SegmentDist(p, m.pts[i-1], m.pts[i]) < m.radius*bodyFactor {
				return MoveWhole
			}
		}
	case annotedit.KindCallout:
		if planar.Contains(textBox(m.pts), p) {
			return MoveWhole
		}
	default:
		if planar.Contains(m.box, p) {
			return MoveWhole
		}
	}
	return None
}

// Down starts a drag at p and returns its target.  If the target is
// [None], no drag is started.
func (m *Model) Down(p vec.Vec2) ID {
	id := m.HitTest(p)
	m.id = id
	m.dragging = !id.IsNone()
	m.downPos = p
	m.downPts = slices.Clone(m.pts)
	m.downStrokes = cloneStrokes(m.strokes)
	m.downBox = m.box
	m.last = UpdateNone
	return id
}

// Move continues the drag to p.  The return value reports whether the
// shape changed.  A proposal which is rejected leaves the shape as it
// was after the previous call, but the drag continues.
func (m *Model) Move(p vec.Vec2) bool {
	if !m.dragging {
		return false
	}
	delta := p.Sub(m.downPos)
	switch m.id.Op {
	case OpMoveWhole:
		return m.moveWhole(delta)
	case OpVertex:
		if m.kind == annotedit.KindCallout && m.id.Index < numBoxHandles {
			return m.resizeBox(m.id.Index, delta)
		}
		return m.moveVertex(m.id.Index, delta)
	}
	return false
}

// Up ends the drag.  The return value reports whether the shape differs
// from the shape at the start of the drag.
func (m *Model) Up() bool {
	if !m.dragging {
		return false
	}
	m.dragging = false
	if !slices.Equal(m.pts, m.downPts) {
		return true
	}
	return !slices.EqualFunc(m.strokes, m.downStrokes, slices.Equal)
}

// Cancel ends the drag and restores the shape to its state at the start
// of the drag.
func (m *Model) Cancel() {
	if !m.dragging {
		return
	}
	m.dragging = false
	m.pts = m.downPts
	m.strokes = m.downStrokes
	m.box = m.downBox
	m.downPts = slices.Clone(m.pts)
	m.downStrokes = cloneStrokes(m.strokes)
	m.last = UpdateNone
}

// Shape returns the current shape, in screen space.
func (m *Model) Shape() annotedit.Shape {
	switch m.kind {
	case annotedit.KindLine:
		return &annotedit.Line{Start: m.pts[0], End: m.pts[1], Arrow: m.arrow}
	case annotedit.KindPolyline:
		return &annotedit.Polyline{Vertices: slices.Clone(m.pts)}
	case annotedit.KindPolygon:
		return &annotedit.Polygon{Vertices: slices.Clone(m.pts)}
	case annotedit.KindCloud:
		return &annotedit.Cloud{Vertices: slices.Clone(m.pts), Intensity: m.intensity}
	case annotedit.KindCallout:
		return &annotedit.Callout{
			TextBox: textBox(m.pts),
			Start:   m.pts[CalloutStart],
			Knee:    m.pts[CalloutKnee],
			End:     m.pts[CalloutEnd],
		}
	default:
		return &annotedit.Ink{Strokes: cloneStrokes(m.strokes)}
	}
}

func (m *Model) moveWhole(delta vec.Vec2) bool {
	clamped := false
	if m.hasCrop {
		delta, clamped = m.clampTranslation(delta)
	}
	for i, q := range m.downPts {
		m.pts[i] = q.Add(delta)
	}
	for k, s := range m.downStrokes {
		for i, q := range s {
			m.strokes[k][i] = q.Add(delta)
		}
	}
	if clamped {
		m.rescan()
	} else {
		m.box = planar.Translate(m.downBox, delta)
		m.last = UpdateTranslate
	}
	return true
}

// clampTranslation shortens delta so that the translated shape stays
// inside the crop box.  If the shape is larger than the crop box, its
// top left corner is kept inside.
func (m *Model) clampTranslation(delta vec.Vec2) (vec.Vec2, bool) {
	var pts []vec.Vec2
	pts = append(pts, m.downPts...)
	for _, s := range m.downStrokes {
		pts = append(pts, s...)
	}
	r, ok := planar.Bounds(pts...)
	if !ok {
		return delta, false
	}
	r = planar.Translate(r, delta)

	var d vec.Vec2
	if r.URx > m.crop.URx {
		d.X = m.crop.URx - r.URx
	}
	if r.LLx+d.X < m.crop.LLx {
		d.X = m.crop.LLx - r.LLx
	}
	if r.URy > m.crop.URy {
		d.Y = m.crop.URy - r.URy
	}
	if r.LLy+d.Y < m.crop.LLy {
		d.Y = m.crop.LLy - r.LLy
	}
	return delta.Add(d), d != vec.Vec2{}
}

func (m *Model) moveVertex(i int, delta vec.Vec2) bool {
	if i < 0 || i >= len(m.pts) {
		return false
	}
	q := m.downPts[i].Add(delta)
	clamped := false
	if m.hasCrop {
		q, clamped = planar.Clamp(q, m.crop)
	}
	if !m.separated(i, q) {
		return false
	}
	if q == m.pts[i] {
		return false
	}

	m.pts[i] = q
	changed := []int{i}
	if m.kind == annotedit.KindCallout && i == CalloutKnee {
		m.pts[CalloutEnd] = SnapEnd(textBox(m.pts), q)
		changed = append(changed, CalloutEnd)
	}
	m.updateBox(clamped, changed)
	return true
}

// separated reports whether q keeps the minimum distance of twice the
// radius from the other control points, measured against their positions
// at the start of the drag.  Callout box handles and the callout end
// point are not checked.
func (m *Model) separated(i int, q vec.Vec2) bool {
	thresh := 2 * m.radius
	for j, p := range m.downPts {
		if j == i {
			continue
		}
		if m.kind == annotedit.KindCallout && (j < numBoxHandles || j == CalloutEnd) {
			continue
		}
		if math.Abs(q.X-p.X) < thresh && math.Abs(q.Y-p.Y) < thresh {
			return false
		}
	}
	return true
}

// updateBox recomputes the bounding box after the points with the given
// indices have moved.
func (m *Model) updateBox(clamped bool, changed []int) {
	if clamped || m.touchesEdge(changed) {
		m.rescan()
		return
	}
	box := m.downBox
	for _, i := range changed {
		box = planar.Union(box, planar.Inflate(rect.Rect{
			LLx: m.pts[i].X, LLy: m.pts[i].Y, URx: m.pts[i].X, URy: m.pts[i].Y,
		}, m.radius))
	}
	m.box = box
	m.last = UpdateIncremental
}

// touchesEdge reports whether any of the given points was on an extremal
// edge of the bounding box at the start of the drag.
func (m *Model) touchesEdge(changed []int) bool {
	b := m.downBox
	r := m.radius
	for _, i := range changed {
		p := m.downPts[i]
		if math.Abs(p.X-r-b.LLx) <= edgeSlack || math.Abs(p.X+r-b.URx) <= edgeSlack ||
			math.Abs(p.Y-r-b.LLy) <= edgeSlack || math.Abs(p.Y+r-b.URy) <= edgeSlack {
			return true
		}
	}
	return false
}

// rescan recomputes the bounding box from all points.
func (m *Model) rescan() {
	pts := slices.Clone(m.pts)
	for _, s := range m.strokes {
		pts = append(pts, s...)
	}
	r, ok := planar.Bounds(pts...)
	if !ok {
		m.box = rect.Rect{}
	} else {
		m.box = planar.Inflate(r, m.radius)
	}
	m.last = UpdateFull
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
