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
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotedit"
)

// Session dispatches pointer events to the current tool.
type Session struct {
	env  *Env
	tool Tool
}

// NewSession returns a session in [ModePan].
func NewSession(env Env) *Session {
	env.init()
	s := &Session{env: &env}
	s.tool = newPan(s.env)
	return s
}

// Mode returns the current tool mode.
func (s *Session) Mode() Mode {
	return s.tool.Mode()
}

// Tool returns the current tool.
func (s *Session) Tool() Tool {
	return s.tool
}

// SetStyle changes the style for shapes started from now on.
func (s *Session) SetStyle(style annotedit.Style) {
	s.env.Style = style
}

// SetMode finishes the current tool and switches to mode m.
// Use [Session.Edit] to enter [ModeEdit].
func (s *Session) SetMode(m Mode) error {
	if m == ModeEdit {
		return fmt.Errorf("use Edit to enter %s mode", m)
	}
	s.tool.Finish()
	s.switchTo(m)
	return nil
}

// Edit finishes the current tool and starts reshaping the annotation h.
// Ink annotations are loaded into the freehand tool, so that their
// strokes can be extended and erased.
func (s *Session) Edit(h annotedit.Handle) error {
	a, err := s.env.Doc.Annotation(h)
	if err != nil {
		return err
	}
	s.tool.Finish()
	if ink, ok := a.Shape.(*annotedit.Ink); ok {
		f := newFreehand(s.env)
		f.store.LoadExisting(a.Handle, a.Page, a.Style, ink.Strokes)
		s.tool = f
		return nil
	}
	s.tool = newEdit(s.env, a)
	return nil
}

// Down forwards a pointer press to the current tool.
func (s *Session) Down(p vec.Vec2) {
	s.tool.Down(p)
	s.follow()
}

// Move forwards a pointer drag to the current tool.
func (s *Session) Move(p vec.Vec2) {
	s.tool.Move(p)
	s.follow()
}

// Up forwards a pointer release to the current tool.
func (s *Session) Up(p vec.Vec2) {
	s.tool.Up(p)
	s.follow()
}

// Cancel aborts the gesture in progress.
func (s *Session) Cancel() {
	s.tool.Cancel()
	s.follow()
}

// Finish writes pending geometry of the current tool to the document.
func (s *Session) Finish() {
	s.tool.Finish()
	s.follow()
}

// Tick informs time-dependent tools about the current time.
func (s *Session) Tick(now time.Time) {
	if t, ok := s.tool.(Ticker); ok {
		t.Tick(now)
		s.follow()
	}
}

// Undo reverts the most recent edit of the current tool.
func (s *Session) Undo() bool {
	if u, ok := s.tool.(Undoer); ok {
		return u.Undo()
	}
	return false
}

// Redo re-applies the most recently undone edit of the current tool.
func (s *Session) Redo() bool {
	if u, ok := s.tool.(Undoer); ok {
		return u.Redo()
	}
	return false
}

func (s *Session) follow() {
	if next := s.tool.Next(); next != s.tool.Mode() {
		s.env.Log.WithFields(logrus.Fields{
			"from": s.tool.Mode(),
			"to":   next,
		}).Debug("tool mode changed")
		s.switchTo(next)
	}
}

func (s *Session) switchTo(m Mode) {
	switch m {
	case ModePolyline:
		s.tool = newShape(s.env, annotedit.KindPolyline)
	case ModePolygon:
		s.tool = newShape(s.env, annotedit.KindPolygon)
	case ModeCloud:
		s.tool = newShape(s.env, annotedit.KindCloud)
	case ModeLine:
		s.tool = newLine(s.env, false)
	case ModeArrow:
		s.tool = newLine(s.env, true)
	case ModeCallout:
		s.tool = newCallout(s.env)
	case ModeFreehand:
		s.tool = newFreehand(s.env)
	case ModeEraser:
		s.tool = newEraser(s.env, false)
	case ModeAnnotEraser:
		s.tool = newEraser(s.env, true)
	default:
		s.tool = newPan(s.env)
	}
}

// Pan is the neutral tool.  Dragging scrolls the view, if the bridge
// supports scrolling.
type Pan struct {
	env  *Env
	last vec.Vec2
	down bool
}

func newPan(env *Env) *Pan {
	return &Pan{env: env}
}

// Mode implements [Tool].
func (t *Pan) Mode() Mode { return ModePan }

// Next implements [Tool].
func (t *Pan) Next() Mode { return ModePan }

// Down implements [Tool].
func (t *Pan) Down(p vec.Vec2) {
	t.last = p
	t.down = true
}

// Move implements [Tool].
func (t *Pan) Move(p vec.Vec2) {
	if !t.down {
		return
	}
	if sc, ok := t.env.Bridge.(Scroller); ok {
		sc.ScrollBy(t.last.Sub(p))
	}
	t.last = p
}

// Up implements [Tool].
func (t *Pan) Up(p vec.Vec2) {
	t.Move(p)
	t.down = false
}

// Cancel implements [Tool].
func (t *Pan) Cancel() { t.down = false }

// Finish implements [Tool].
func (t *Pan) Finish() {}
