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
	"time"

	"github.com/sirupsen/logrus"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotedit/commit"
	"seehuhn.de/go/annotedit/ink"
)

// Freehand draws ink.
//
// Every stroke becomes a new ink item with the current style.  In
// multi-stroke mode the items are kept until [Freehand.Commit] is
// called or the tool is finished; otherwise every stroke is committed
// when the pointer is released.  For a stylus, multi-stroke mode is
// timed: the strokes are committed after a pause, or when a new stroke
// starts far away from the previous one.
//
// With the eraser switched on, gestures erase points from the strokes
// held by the tool instead of drawing.
type Freehand struct {
	env   *Env
	store *ink.Store

	eraser  bool
	down    bool
	page    int
	last    vec.Vec2
	lastEnd time.Time
	waiting bool

	result *commit.InkResult
	next   Mode
}

func newFreehand(env *Env) *Freehand {
	t := &Freehand{env: env, next: ModeFreehand}
	t.reset()
	return t
}

// reset replaces the store by an empty one.  Strokes drawn afterwards
// go into new annotations.
func (t *Freehand) reset() {
	t.store = ink.NewStore(t.env.Bridge, ink.Config{
		TouchTolerance: t.env.Settings.TouchTolerance,
		DotThreshold:   t.env.Settings.DotThreshold,
		Log:            t.env.Log,
	})
	t.waiting = false
}

// Mode implements [Tool].
func (t *Freehand) Mode() Mode { return ModeFreehand }

// Next implements [Tool].
func (t *Freehand) Next() Mode { return t.next }

// Store returns the ink store of the tool, for drawing.
func (t *Freehand) Store() *ink.Store {
	return t.store
}

// SetEraser switches the eraser on or off.
func (t *Freehand) SetEraser(on bool) {
	if t.down {
		t.Cancel()
	}
	t.eraser = on
}

// Eraser reports whether the eraser is switched on.
func (t *Freehand) Eraser() bool {
	return t.eraser
}

func (t *Freehand) timed() bool {
	return t.env.Settings.MultiStroke && t.env.Style.Stylus
}

// Down implements [Tool].
func (t *Freehand) Down(p vec.Vec2) {
	page, p, ok := t.env.pointOnPage(p)
	if !ok {
		return
	}
	t.page, t.last, t.down = page, p, true

	if t.eraser {
		t.eraseTo(p)
		return
	}

	if t.timed() && t.waiting {
		q := t.env.Bridge.ScreenToDocument(p, page)
		if !t.store.Near(page, q, t.env.Settings.TimedSaveMargin) {
			t.commitAndReset()
		}
	}
	t.store.StartStroke(t.env.Style, page)
	t.store.AddPoint(p)
}

// Move implements [Tool].
func (t *Freehand) Move(p vec.Vec2) {
	if !t.down {
		return
	}
	if t.eraser {
		t.eraseTo(p)
		return
	}
	t.store.AddPoint(p)
}

// Up implements [Tool].
func (t *Freehand) Up(p vec.Vec2) {
	if !t.down {
		return
	}
	t.Move(p)
	t.down = false

	if t.eraser {
		t.store.FinishErase()
	} else {
		t.store.EndStroke()
	}

	switch {
	case !t.env.Settings.MultiStroke:
		t.commitAndReset()
	case t.timed():
		t.lastEnd = t.env.Now()
		t.waiting = true
	}
}

func (t *Freehand) eraseTo(p vec.Vec2) {
	p = t.env.clamp(p, t.page)
	a := t.env.Bridge.ScreenToDocument(t.last, t.page)
	b := t.env.Bridge.ScreenToDocument(p, t.page)
	half := t.env.docLength(t.env.Settings.EraserHalfThickness, p, t.page)
	t.store.Erase(t.page, a, b, half)
	t.last = p
}

// Cancel implements [Tool].
// A stroke in progress is removed, and the effect of an eraser gesture
// in progress is reverted.
func (t *Freehand) Cancel() {
	if !t.down {
		return
	}
	t.down = false
	if t.eraser {
		t.store.AbandonErase()
	} else {
		t.store.Abandon()
	}
}

// Tick implements [Ticker].  In timed mode, the strokes are committed
// once the configured interval has passed since the last stroke ended.
func (t *Freehand) Tick(now time.Time) {
	if !t.timed() || !t.waiting || t.down {
		return
	}
	if now.Sub(t.lastEnd) >= t.env.Settings.TimedSaveInterval {
		t.commitAndReset()
	}
}

// Finish implements [Tool].
func (t *Freehand) Finish() {
	if t.down {
		t.down = false
		if t.eraser {
			t.store.FinishErase()
		} else {
			t.store.EndStroke()
		}
	}
	t.Commit()
}

// commitAndReset commits the strokes and, on success, starts afresh
// so that the next strokes form a new annotation.
func (t *Freehand) commitAndReset() {
	if t.Commit() {
		t.reset()
	}
}

// Commit writes the strokes to the document.  Strokes which were
// written before are updated in place.  The strokes stay in the tool,
// so that they can be undone and committed again.  Commit reports
// whether the document was brought up to date.
func (t *Freehand) Commit() bool {
	t.waiting = false
	existing := t.store.Existing()
	res, err := commit.Ink(t.env.Doc, t.store)
	t.result = res
	if err != nil {
		if t.env.fail(err) {
			t.next = ModePan
		}
		return false
	}
	if res.ExistingRemoved {
		t.env.Log.WithFields(logrus.Fields{
			"handle": existing,
		}).Debug("all strokes erased, annotation removed")
	}
	return true
}

// LastResult returns the outcome of the most recent commit, or nil.
func (t *Freehand) LastResult() *commit.InkResult {
	return t.result
}

// Clear removes all strokes, as one undoable edit.
func (t *Freehand) Clear() bool {
	return t.store.ClearStrokes()
}

// Undo implements [Undoer].
func (t *Freehand) Undo() bool {
	_, ok := t.store.Undo()
	return ok
}

// Redo implements [Undoer].
func (t *Freehand) Redo() bool {
	_, ok := t.store.Redo()
	return ok
}

// CanUndo implements [Undoer].
func (t *Freehand) CanUndo() bool { return t.store.CanUndo() }

// CanRedo implements [Undoer].
func (t *Freehand) CanRedo() bool { return t.store.CanRedo() }
