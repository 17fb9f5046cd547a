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
	"errors"

	"github.com/sirupsen/logrus"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotedit"
	"seehuhn.de/go/annotedit/commit"
	"seehuhn.de/go/annotedit/control"
)

// Edit reshapes a committed annotation by dragging its control points.
//
// The control points are recomputed from the document at the start of
// every gesture, so that scrolling and zooming between gestures is
// harmless.  If the annotation was changed or removed by someone else
// in the meantime, the tool gives up without writing anything.  A press
// which misses the annotation ends the edit.
type Edit struct {
	env   *Env
	annot *annotedit.Annotation
	model *control.Model
	next  Mode
}

func newEdit(env *Env, a *annotedit.Annotation) *Edit {
	t := &Edit{env: env, annot: a, next: ModeEdit}
	t.model = t.newModel()
	return t
}

func (t *Edit) newModel() *control.Model {
	page := t.annot.Page
	s := annotedit.ToScreen(t.env.Bridge, t.annot.Shape, page)
	crop, _ := annotedit.ScreenCropBox(t.env.Bridge, page)
	return control.New(s, t.env.Settings.ControlRadius, crop)
}

// Mode implements [Tool].
func (t *Edit) Mode() Mode { return ModeEdit }

// Next implements [Tool].
func (t *Edit) Next() Mode { return t.next }

// Annotation returns the annotation being edited, as it was when the
// current gesture started.
func (t *Edit) Annotation() *annotedit.Annotation {
	return t.annot
}

// Model returns the control-point model, for drawing.
func (t *Edit) Model() *control.Model {
	return t.model
}

// Down implements [Tool].
func (t *Edit) Down(p vec.Vec2) {
	if err := t.refresh(); err != nil {
		t.env.Log.WithFields(logrus.Fields{
			"handle": t.annot.Handle,
		}).WithError(err).Debug("edit abandoned")
		t.env.fail(err)
		t.next = ModePan
		return
	}
	if t.model.Down(p).IsNone() {
		t.next = ModePan
	}
}

// refresh checks that the annotation is unchanged in the document, and
// rebuilds the control points for the current view.
func (t *Edit) refresh() error {
	cur, err := t.env.Doc.Annotation(t.annot.Handle)
	if errors.Is(err, annotedit.ErrNotFound) {
		return annotedit.ErrStale
	} else if err != nil {
		return err
	}
	if cur.Revision != t.annot.Revision {
		return annotedit.ErrStale
	}
	t.model = t.newModel()
	return nil
}

// Move implements [Tool].
func (t *Edit) Move(p vec.Vec2) {
	t.model.Move(p)
}

// Up implements [Tool].
func (t *Edit) Up(p vec.Vec2) {
	if t.model.Active().IsNone() {
		return
	}
	t.model.Move(p)
	if !t.model.Up() {
		return
	}

	page := t.annot.Page
	s := annotedit.ToDocument(t.env.Bridge, t.model.Shape(), page)
	g := annotedit.Geometry{Style: t.annot.Style, Shape: s}
	err := commit.Update(t.env.Doc, t.annot.Handle, g)
	if err != nil {
		if t.env.fail(err) {
			t.next = ModePan
		} else {
			t.model = t.newModel()
		}
		return
	}

	a, err := t.env.Doc.Annotation(t.annot.Handle)
	if err != nil {
		t.env.fail(err)
		t.next = ModePan
		return
	}
	t.annot = a
}

// Cancel implements [Tool].
func (t *Edit) Cancel() {
	t.model.Cancel()
}

// Finish implements [Tool].
func (t *Edit) Finish() {
	t.model.Cancel()
}

// BBox returns the bounding box of the control points, in screen space.
func (t *Edit) BBox() rect.Rect {
	return t.model.BBox()
}
