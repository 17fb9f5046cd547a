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

package tool

import (
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotedit"
	"seehuhn.de/go/annotedit/commit"
	"seehuhn.de/go/annotedit/internal/planar"
)

// Line creates straight lines and arrows with a press-drag-release
// gesture.
type Line struct {
	env   *Env
	arrow bool

	page       int
	start, end vec.Vec2 // screen space
	down       bool
	next       Mode
}

func newLine(env *Env, arrow bool) *Line {
	t := &Line{env: env, arrow: arrow}
	t.next = t.Mode()
	return t
}

// Mode implements [Tool].
func (t *Line) Mode() Mode {
	if t.arrow {
		return ModeArrow
	}
	return ModeLine
}

// Next implements [Tool].
func (t *Line) Next() Mode { return t.next }

// Down implements [Tool].
func (t *Line) Down(p vec.Vec2) {
	page, p, ok := t.env.pointOnPage(p)
	if !ok {
		return
	}
	t.page = page
	t.start, t.end = p, p
	t.down = true
}

// Move implements [Tool].
func (t *Line) Move(p vec.Vec2) {
	if t.down {
		t.end = t.env.clamp(p, t.page)
	}
}

// Up implements [Tool].
func (t *Line) Up(p vec.Vec2) {
	if !t.down {
		return
	}
	t.down = false
	t.end = t.env.clamp(p, t.page)
	if planar.Dist(t.start, t.end) < t.env.Settings.DotThreshold {
		return
	}

	line := &annotedit.Line{
		Start: t.env.Bridge.ScreenToDocument(t.start, t.page),
		End:   t.env.Bridge.ScreenToDocument(t.end, t.page),
		Arrow: t.arrow,
	}
	_, err := commit.Create(t.env.Doc, t.page, annotedit.Geometry{Style: t.env.Style, Shape: line})
	if err != nil && t.env.fail(err) {
		t.next = ModePan
	}
}

// Cancel implements [Tool].
func (t *Line) Cancel() { t.down = false }

// Finish implements [Tool].
func (t *Line) Finish() { t.down = false }

// Preview returns the line being drawn, in screen space.
func (t *Line) Preview() (*annotedit.Line, bool) {
	if !t.down {
		return nil, false
	}
	return &annotedit.Line{Start: t.start, End: t.end, Arrow: t.arrow}, true
}
