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
	"seehuhn.de/go/annotedit/eraser"
	"seehuhn.de/go/annotedit/ink"
)

// Eraser removes ink from committed annotations.
//
// In point mode, the points of ink annotations under the eraser are
// removed, and annotations which lose all their points are deleted.
// In annotation mode, every annotation touched by the eraser is deleted
// as a whole.  The document is updated when the pointer is released.
type Eraser struct {
	env    *Env
	annots bool

	down bool
	page int
	last vec.Vec2

	// point mode
	store *ink.Store

	// annotation mode
	shapes []erasable
	hits   []annotedit.Handle

	next Mode
}

type erasable struct {
	handle annotedit.Handle
	shape  annotedit.Shape // screen space
	hit    bool
}

func newEraser(env *Env, annots bool) *Eraser {
	t := &Eraser{env: env, annots: annots}
	t.next = t.Mode()
	return t
}

// Mode implements [Tool].
func (t *Eraser) Mode() Mode {
	if t.annots {
		return ModeAnnotEraser
	}
	return ModeEraser
}

// Next implements [Tool].
func (t *Eraser) Next() Mode { return t.next }

// Down implements [Tool].
func (t *Eraser) Down(p vec.Vec2) {
	page, p, ok := t.env.pointOnPage(p)
	if !ok {
		return
	}
	annots, err := t.env.Doc.Annotations(page)
	if err != nil {
		t.env.fail(err)
		t.next = ModePan
		return
	}

	t.page, t.last, t.down = page, p, true
	t.store, t.shapes, t.hits = nil, nil, nil
	if t.annots {
		for _, a := range annots {
			t.shapes = append(t.shapes, erasable{
				handle: a.Handle,
				shape:  annotedit.ToScreen(t.env.Bridge, a.Shape, page),
			})
		}
	} else {
		t.store = ink.NewStore(t.env.Bridge, ink.Config{KeepSeparate: true, Log: t.env.Log})
		for _, a := range annots {
			if s, ok := a.Shape.(*annotedit.Ink); ok {
				t.store.LoadExisting(a.Handle, page, a.Style, s.Strokes)
			}
		}
	}
	t.eraseTo(p)
}

// Move implements [Tool].
func (t *Eraser) Move(p vec.Vec2) {
	if t.down {
		t.eraseTo(t.env.clamp(p, t.page))
	}
}

func (t *Eraser) eraseTo(p vec.Vec2) {
	if t.annots {
		half := t.env.Settings.AnnotEraserHalfThickness
		for i := range t.shapes {
			e := &t.shapes[i]
			if !e.hit && eraser.Touches(e.shape, t.last, p, half) {
				e.hit = true
				t.hits = append(t.hits, e.handle)
			}
		}
	} else {
		a := t.env.Bridge.ScreenToDocument(t.last, t.page)
		b := t.env.Bridge.ScreenToDocument(p, t.page)
		half := t.env.docLength(t.env.Settings.EraserHalfThickness, p, t.page)
		t.store.Erase(t.page, a, b, half)
	}
	t.last = p
}

// Up implements [Tool].
func (t *Eraser) Up(p vec.Vec2) {
	if !t.down {
		return
	}
	t.Move(p)
	t.down = false

	var err error
	if t.annots {
		err = commit.Remove(t.env.Doc, t.hits...)
	} else {
		t.store.FinishErase()
		_, err = commit.Ink(t.env.Doc, t.store)
	}
	if err != nil && t.env.fail(err) {
		t.next = ModePan
	}
}

// Hits returns the annotations marked for removal by the gesture in
// progress, in annotation mode.
func (t *Eraser) Hits() []annotedit.Handle {
	return t.hits
}

// Cancel implements [Tool].  Nothing is written to the document.
func (t *Eraser) Cancel() {
	t.down = false
	t.store, t.shapes, t.hits = nil, nil, nil
}

// Finish implements [Tool].
func (t *Eraser) Finish() {
	t.Cancel()
}
