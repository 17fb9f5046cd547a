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
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotedit"
	"seehuhn.de/go/annotedit/commit"
	"seehuhn.de/go/annotedit/internal/planar"
)

// calloutStep is the distance, in document units, between the target
// point, the knee and the end of a new callout line.  The text box is
// twice as wide and as high as this.
const calloutStep = 40

// Callout creates a callout with a single tap.  The tap marks the point
// the callout refers to.  The knee of the callout line points towards
// the centre of the page, and the text box is placed beyond the knee.
type Callout struct {
	env  *Env
	page int
	down bool
	next Mode
}

func newCallout(env *Env) *Callout {
	return &Callout{env: env, next: ModeCallout}
}

// Mode implements [Tool].
func (t *Callout) Mode() Mode { return ModeCallout }

// Next implements [Tool].
func (t *Callout) Next() Mode { return t.next }

// Down implements [Tool].
func (t *Callout) Down(p vec.Vec2) {
	page, _, ok := t.env.pointOnPage(p)
	t.page, t.down = page, ok
}

// Move implements [Tool].
func (t *Callout) Move(p vec.Vec2) {}

// Up implements [Tool].
func (t *Callout) Up(p vec.Vec2) {
	if !t.down {
		return
	}
	t.down = false

	p = t.env.clamp(p, t.page)
	target := t.env.Bridge.ScreenToDocument(p, t.page)
	var box rect.Rect
	if pb, ok := t.env.Bridge.(annotedit.PageBoxer); ok {
		box, _ = pb.PageBox(t.page)
	}
	c := NewCallout(target, box)
	_, err := commit.Create(t.env.Doc, t.page, annotedit.Geometry{Style: t.env.Style, Shape: c})
	if err != nil && t.env.fail(err) {
		t.next = ModePan
	}
}

// Cancel implements [Tool].
func (t *Callout) Cancel() { t.down = false }

// Finish implements [Tool].
func (t *Callout) Finish() { t.down = false }

// NewCallout lays out a callout for the document point target on a page
// with the given crop box.  An empty page box disables clamping.
func NewCallout(target vec.Vec2, page rect.Rect) *annotedit.Callout {
	clip := !planar.IsEmpty(page)
	mid := planar.Center(page)
	if !clip {
		mid = target
	}

	knee := target
	if target.X > mid.X {
		knee.X -= calloutStep
	} else {
		knee.X += calloutStep
	}
	if target.Y > mid.Y {
		knee.Y -= calloutStep
	} else {
		knee.Y += calloutStep
	}

	end := knee
	if target.X > knee.X {
		end.X = knee.X - calloutStep
	} else {
		end.X = knee.X + calloutStep
	}

	var box rect.Rect
	if end.X > knee.X {
		box.LLx, box.URx = end.X, end.X+2*calloutStep
	} else {
		box.LLx, box.URx = end.X-2*calloutStep, end.X
	}
	box.LLy = end.Y - calloutStep/2
	box.URy = box.LLy + calloutStep

	if clip {
		knee, _ = planar.Clamp(knee, page)
		end, _ = planar.Clamp(end, page)
		box.LLx = max(box.LLx, page.LLx)
		box.URx = min(box.URx, page.URx)
		box.LLy = max(box.LLy, page.LLy)
		box.URy = min(box.URy, page.URy)
	}
	return &annotedit.Callout{TextBox: box, Start: target, Knee: knee, End: end}
}
