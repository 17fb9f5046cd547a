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

// Package tool implements the gesture state machines of the editor.
//
// A [Session] owns the current [Tool] and forwards pointer events to it.
// Each tool turns press, drag and release events into geometry and
// writes finished geometry to the document.  When the document fails,
// the tool discards its geometry, reports the error, and the session
// falls back to [ModePan].
package tool

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotedit"
	"seehuhn.de/go/annotedit/internal/planar"
)

// Mode selects a tool.
type Mode int

// These are the supported tool modes.
const (
	ModePan Mode = iota
	ModePolyline
	ModePolygon
	ModeCloud
	ModeLine
	ModeArrow
	ModeCallout
	ModeFreehand
	ModeEraser
	ModeAnnotEraser
	ModeEdit
)

var modeNames = map[Mode]string{
	ModePan:         "pan",
	ModePolyline:    "polyline",
	ModePolygon:     "polygon",
	ModeCloud:       "cloud",
	ModeLine:        "line",
	ModeArrow:       "arrow",
	ModeCallout:     "callout",
	ModeFreehand:    "freehand",
	ModeEraser:      "eraser",
	ModeAnnotEraser: "annot-eraser",
	ModeEdit:        "edit",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode returns the mode with the given name.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown tool mode %q", s)
}

// Tool is the gesture state machine of one tool mode.
// All coordinates are in screen space.
type Tool interface {
	Mode() Mode

	Down(p vec.Vec2)
	Move(p vec.Vec2)
	Up(p vec.Vec2)

	// Cancel aborts the gesture in progress, for example because a
	// second pointer appeared.  Edits recorded optimistically for the
	// gesture are rolled back.
	Cancel()

	// Finish writes pending geometry to the document.
	// It is called before the session leaves the tool.
	Finish()

	// Next returns the mode the session should switch to.  This is
	// Mode(), unless the tool is done.
	Next() Mode
}

// Undoer is implemented by tools with an undo history.
type Undoer interface {
	Undo() bool
	Redo() bool
	CanUndo() bool
	CanRedo() bool
}

// Ticker is implemented by tools which act on the passage of time.
type Ticker interface {
	Tick(now time.Time)
}

// Scroller is implemented by bridges which can scroll the view.
type Scroller interface {
	ScrollBy(d vec.Vec2)
}

// Reporter receives errors which cannot be returned to a caller, for
// example failures of the document during a gesture.
type Reporter interface {
	Report(err error)
}

// LogReporter is a [Reporter] which writes errors to a logger.
type LogReporter struct {
	Log logrus.FieldLogger
}

// Report implements [Reporter].
func (r LogReporter) Report(err error) {
	entry := r.Log.WithError(err)
	var commitErr *annotedit.CommitError
	if errors.As(err, &commitErr) {
		entry = entry.WithFields(logrus.Fields{
			"op":     commitErr.Op,
			"handle": commitErr.Handle,
		})
	}
	entry.Error("annotation not saved")
}

// Settings holds the tunables of the tools.
type Settings struct {
	// ControlRadius is the radius of control point handles, in screen
	// units.
	ControlRadius float64

	// TouchTolerance is the minimal distance between consecutive ink
	// points, in screen units.
	TouchTolerance float64

	// DotThreshold is the size of dots drawn by a single tap, and the
	// minimal length of a line, in screen units.
	DotThreshold float64

	// EraserHalfThickness is half the width of the ink eraser, in
	// screen units.
	EraserHalfThickness float64

	// AnnotEraserHalfThickness is half the width of the eraser which
	// removes whole annotations, in screen units.
	AnnotEraserHalfThickness float64

	// MultiStroke keeps freehand strokes until they are committed
	// explicitly.  Otherwise every stroke is committed on release.
	MultiStroke bool

	// TimedSaveInterval is the idle time after which the strokes of a
	// stylus are committed in multi-stroke mode.
	TimedSaveInterval time.Duration

	// TimedSaveMargin is the distance, in document units, from the
	// previous stroke beyond which a new stylus stroke commits the
	// previous ones first.
	TimedSaveMargin float64

	// CloudIntensity is the intensity of new clouds.
	CloudIntensity float64
}

// DefaultSettings returns the default tool settings.
func DefaultSettings() Settings {
	return Settings{
		ControlRadius:            7.5,
		TouchTolerance:           1,
		DotThreshold:             5,
		EraserHalfThickness:      5,
		AnnotEraserHalfThickness: 2,
		MultiStroke:              true,
		TimedSaveInterval:        2 * time.Second,
		TimedSaveMargin:          200,
		CloudIntensity:           1,
	}
}

// Env holds the collaborators of the tools.
type Env struct {
	Doc      annotedit.Document
	Bridge   annotedit.Bridge
	Style    annotedit.Style
	Settings Settings

	// Reporter receives document failures.  If nil, they are logged.
	Reporter Reporter

	// Log receives diagnostic messages.  If nil, nothing is logged.
	Log logrus.FieldLogger

	// Now returns the current time.  If nil, [time.Now] is used.
	Now func() time.Time
}

func (env *Env) init() {
	if env.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		env.Log = l
	}
	if env.Reporter == nil {
		env.Reporter = LogReporter{Log: env.Log}
	}
	if env.Now == nil {
		env.Now = time.Now
	}
	if env.Settings == (Settings{}) {
		env.Settings = DefaultSettings()
	}
}

// fail handles an error from the commit layer.  Invalid geometry is
// dropped silently, everything else is reported.  The return value
// reports whether the error was a document failure.
func (env *Env) fail(err error) bool {
	var geomErr *annotedit.InvalidGeometryError
	if errors.As(err, &geomErr) {
		env.Log.WithFields(logrus.Fields{
			"kind":   geomErr.Kind,
			"reason": geomErr.Reason,
		}).Debug("geometry discarded")
		return false
	}
	env.Reporter.Report(err)
	return true
}

// pointOnPage returns the page under the screen point p, and p clamped
// to the crop box of that page.
func (env *Env) pointOnPage(p vec.Vec2) (int, vec.Vec2, bool) {
	page, ok := env.Bridge.PageAt(p)
	if !ok {
		return 0, p, false
	}
	return page, env.clamp(p, page), true
}

// clamp moves the screen point p into the crop box of page.
func (env *Env) clamp(p vec.Vec2, page int) vec.Vec2 {
	if crop, ok := annotedit.ScreenCropBox(env.Bridge, page); ok {
		p, _ = planar.Clamp(p, crop)
	}
	return p
}

// docLength converts a screen length near p to document units.
func (env *Env) docLength(l float64, p vec.Vec2, page int) float64 {
	a := env.Bridge.ScreenToDocument(p, page)
	b := env.Bridge.ScreenToDocument(p.Add(vec.Vec2{X: l, Y: 0}), page)
	return planar.Dist(a, b)
}
