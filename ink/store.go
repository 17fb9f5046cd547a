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

// Package ink implements the multi-stroke freehand ink store.
//
// The store holds an ordered list of [Item]s.  Every stroke the user draws
// opens a new item with its own page and style.  When the store is
// committed, runs of adjacent items with the same page and style are
// merged into one ink annotation.
//
// All changes to the list of items are recorded as [Snapshot]s on an
// undo/redo stack which is independent of any other history.
package ink

import (
	"io"
	"math"

	"github.com/sirupsen/logrus"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotedit"
	"seehuhn.de/go/annotedit/eraser"
	"seehuhn.de/go/annotedit/history"
	"seehuhn.de/go/annotedit/internal/planar"
)

// Change records the state of one item before and after an edit.
// A nil Before means the item was added, a nil After means it was removed.
type Change struct {
	Index  int
	Before *Item
	After  *Item
}

// Snapshot is one undoable edit of the ink store.
type Snapshot struct {
	Page    int
	Changes []Change
}

// Config holds the tunables of a [Store].
type Config struct {
	// TouchTolerance is the minimal distance, in screen units, between
	// two consecutive points of a stroke.  A new point is kept if it
	// differs from the previous one by at least this amount on either
	// axis.
	TouchTolerance float64

	// DotThreshold determines the size of dots.  A stroke with a single
	// point gets a second point, offset by DotThreshold/2 screen units
	// in both directions.
	DotThreshold float64

	// KeepSeparate disables the merging of adjacent items when the
	// store is committed: every item becomes its own annotation.
	KeepSeparate bool

	// Log receives messages about inconsistent history entries.
	Log logrus.FieldLogger
}

// Store is the multi-stroke ink store.
type Store struct {
	bridge annotedit.Bridge
	cfg    Config
	log    logrus.FieldLogger

	items []*Item
	hist  history.Stack[Snapshot]

	// existing is the handle of the annotation loaded by LoadExisting
	existing annotedit.Handle

	// live holds the document annotations written by this store, or
	// loaded into it.  order keeps them in the order they were seen.
	live  map[annotedit.Handle]bool
	order []annotedit.Handle

	// members holds the number of items last written to each live
	// annotation.
	members map[annotedit.Handle]int

	// state of the stroke being drawn
	active     *Item
	activeIdx  int
	stroke     int
	lastScreen vec.Vec2
	screenPts  int

	// the eraser gesture in progress
	erasing *Snapshot

	dirty bool
}

// NewStore returns an empty ink store.  The bridge is used to convert
// screen points to document space.
func NewStore(bridge annotedit.Bridge, cfg Config) *Store {
	if cfg.TouchTolerance <= 0 {
		cfg.TouchTolerance = 1
	}
	if cfg.DotThreshold <= 0 {
		cfg.DotThreshold = 5
	}
	log := cfg.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Store{bridge: bridge, cfg: cfg, log: log, activeIdx: -1}
}

// Len returns the number of items, including empty ones.
func (s *Store) Len() int {
	return len(s.items)
}

// Item returns a copy of the item at index i.
func (s *Store) Item(i int) *Item {
	return s.items[i].Clone()
}

// Items returns copies of all items.
func (s *Store) Items() []*Item {
	res := make([]*Item, len(s.items))
	for i, it := range s.items {
		res[i] = it.Clone()
	}
	return res
}

// Smoothed returns the cached display strokes of item i.
// The result must not be modified.
func (s *Store) Smoothed(i int) [][]vec.Vec2 {
	return s.items[i].Smoothed()
}

// Drawing reports whether a stroke is in progress.
func (s *Store) Drawing() bool {
	return s.active != nil
}

// Dirty reports whether the items changed since the last call to
// [Store.ClearDirty].
func (s *Store) Dirty() bool {
	return s.dirty
}

// ClearDirty resets the dirty flag, typically after a redraw.
func (s *Store) ClearDirty() {
	s.dirty = false
}

// Existing returns the handle of the annotation loaded for in-place
// editing, or the empty string.
func (s *Store) Existing() annotedit.Handle {
	return s.existing
}

// LoadExisting seeds the store with the strokes of an existing ink
// annotation.  The item is marked as committed and as existing.
// Loading is not an undoable edit.
func (s *Store) LoadExisting(h annotedit.Handle, page int, style annotedit.Style, strokes [][]vec.Vec2) {
	it := newItem(page, style)
	it.Strokes = cloneStrokes(strokes)
	it.Committed = true
	it.Existing = true
	it.Handle = h
	it.rescan()
	s.items = append(s.items, it)
	s.existing = h
	s.track(h, 1)
	s.dirty = true
}

// StartStroke opens a new item for a stroke on the given page.
// The creation of the item is recorded as an undoable edit.
// A stroke which is still in progress is finished first.
func (s *Store) StartStroke(style annotedit.Style, page int) {
	if s.active != nil {
		s.EndStroke()
	}
	s.erasing = nil
	it := newItem(page, style)
	it.Strokes = [][]vec.Vec2{nil}
	s.items = append(s.items, it)
	s.active = it
	s.activeIdx = len(s.items) - 1
	s.stroke = 0
	s.screenPts = 0
	s.hist.Push(Snapshot{
		Page:    page,
		Changes: []Change{{Index: s.activeIdx, After: it.Clone()}},
	})
	s.dirty = true
}

// AddPoint appends a screen point to the stroke in progress.
//
// The point is clamped to the crop box of the page, if the bridge knows
// it.  Points closer than the touch tolerance to the previous point are
// ignored.  The return value reports whether the point was kept.
func (s *Store) AddPoint(p vec.Vec2) bool {
	it := s.active
	if it == nil {
		return false
	}
	if crop, ok := annotedit.ScreenCropBox(s.bridge, it.Page); ok {
		p, _ = planar.Clamp(p, crop)
	}
	if s.screenPts > 0 {
		d := p.Sub(s.lastScreen)
		tol := s.cfg.TouchTolerance
		if math.Abs(d.X) < tol && math.Abs(d.Y) < tol {
			return false
		}
	}
	s.appendScreen(p)
	return true
}

func (s *Store) appendScreen(p vec.Vec2) {
	it := s.active
	q := s.bridge.ScreenToDocument(p, it.Page)
	it.Strokes[s.stroke] = append(it.Strokes[s.stroke], q)
	it.extend(q)
	it.dirty = true
	s.lastScreen = p
	s.screenPts++
	s.dirty = true
}

// EndStroke finishes the stroke in progress and returns the index of its
// item.  A stroke consisting of a single point is turned into a small dot.
// The second return value is false if no stroke was in progress.
func (s *Store) EndStroke() (int, bool) {
	it := s.active
	if it == nil {
		return -1, false
	}
	if s.screenPts == 1 {
		off := s.cfg.DotThreshold / 2
		s.appendScreen(s.lastScreen.Add(vec.Vec2{X: off, Y: off}))
	}
	it.dirty = true

	idx := s.activeIdx
	s.hist.ReplaceTop(Snapshot{
		Page:    it.Page,
		Changes: []Change{{Index: idx, After: it.Clone()}},
	})
	s.active = nil
	s.activeIdx = -1
	s.dirty = true
	return idx, true
}

// Abandon removes the item of the stroke in progress, together with the
// edit which recorded its creation.  This is used when a gesture turns
// out to be a scroll.  Abandon reports whether there was anything to
// remove.
func (s *Store) Abandon() bool {
	if s.active == nil {
		return false
	}
	s.items = append(s.items[:s.activeIdx], s.items[s.activeIdx+1:]...)
	s.hist.Drop()
	s.active = nil
	s.activeIdx = -1
	s.dirty = true
	return true
}

// Near reports whether the document point p on the given page lies
// within margin of the bounding box of the most recent item.
// If there is no item, or the most recent item is on another page,
// Near returns false.
func (s *Store) Near(page int, p vec.Vec2, margin float64) bool {
	if len(s.items) == 0 {
		return false
	}
	last := s.items[len(s.items)-1]
	if last.Page != page {
		return false
	}
	box, ok := last.BBox()
	if !ok {
		return false
	}
	return planar.Contains(planar.Inflate(box, margin), p)
}

// Erase applies the eraser segment from a to b, in document space, to
// all items on the given page.  Changed items are marked as
// uncommitted and their bounding boxes are recomputed.
//
// All calls to Erase until the next [Store.FinishErase] form one
// undoable edit.  Erase reports whether any point was removed.
func (s *Store) Erase(page int, a, b vec.Vec2, halfThickness float64) bool {
	changed := false
	for i, it := range s.items {
		if it.Page != page || it.IsEmpty() || it == s.active {
			continue
		}
		strokes, ok := eraser.Erase(it.Strokes, a, b, halfThickness)
		if !ok {
			continue
		}
		before := it.Clone()
		it.Strokes = cloneStrokes(strokes)
		it.Committed = false
		it.rescan()
		s.recordErase(page, i, before, it.Clone())
		changed = true
	}
	if changed {
		s.dirty = true
	}
	return changed
}

func (s *Store) recordErase(page, idx int, before, after *Item) {
	if s.erasing == nil {
		s.erasing = &Snapshot{Page: page}
		s.erasing.Changes = append(s.erasing.Changes, Change{Index: idx, Before: before, After: after})
		s.hist.Push(*s.erasing)
		return
	}
	found := false
	for k := range s.erasing.Changes {
		if s.erasing.Changes[k].Index == idx {
			s.erasing.Changes[k].After = after
			found = true
			break
		}
	}
	if !found {
		s.erasing.Changes = append(s.erasing.Changes, Change{Index: idx, Before: before, After: after})
	}
	s.hist.ReplaceTop(*s.erasing)
}

// FinishErase closes the eraser gesture in progress.
func (s *Store) FinishErase() {
	s.erasing = nil
}

// AbandonErase reverts the eraser gesture in progress and removes it
// from the history.  AbandonErase reports whether anything had been
// erased.
func (s *Store) AbandonErase() bool {
	if s.erasing == nil {
		return false
	}
	snap := *s.erasing
	s.erasing = nil
	s.hist.Drop()
	s.revert(snap, false)
	return true
}

// ClearStrokes removes all items as one undoable edit.
// ClearStrokes reports whether there was anything to remove.
func (s *Store) ClearStrokes() bool {
	s.finishGesture()
	if len(s.items) == 0 {
		return false
	}
	snap := Snapshot{Changes: make([]Change, len(s.items))}
	if top, ok := s.hist.Peek(); ok {
		snap.Page = top.Page
	}
	for i, it := range s.items {
		snap.Changes[i] = Change{Index: i, Before: it.Clone()}
	}
	s.hist.Push(snap)
	s.items = nil
	s.dirty = true
	return true
}

// CanUndo reports whether there is an edit to undo.
func (s *Store) CanUndo() bool {
	return s.hist.CanUndo()
}

// CanRedo reports whether there is an edit to redo.
func (s *Store) CanRedo() bool {
	return s.hist.CanRedo()
}

// UndoLen returns the number of edits which can be undone.
func (s *Store) UndoLen() int {
	return s.hist.UndoLen()
}

// Undo reverts the most recent edit and returns its page.
// The second return value is false if there was nothing to undo.
func (s *Store) Undo() (int, bool) {
	s.finishGesture()
	snap, ok := s.hist.Undo()
	if !ok {
		return 0, false
	}
	s.revert(snap, true)
	return snap.Page, true
}

// revert restores the "before" state of every change in snap.  If
// uncommit is set, the restored items are marked as not written, since
// the document holds the state from after the change.
func (s *Store) revert(snap Snapshot, uncommit bool) {
	for _, c := range snap.Changes {
		if c.Index < 0 {
			s.skip("undo", c.Index)
			continue
		}
		switch {
		case c.Before == nil: // undo addition
			if c.Index >= len(s.items) {
				s.skip("undo", c.Index)
				continue
			}
			s.items = append(s.items[:c.Index], s.items[c.Index+1:]...)
		case c.Index < len(s.items): // undo modification
			s.items[c.Index] = s.restore(c.Before, uncommit)
		case c.Index == len(s.items): // undo removal
			s.items = append(s.items, s.restore(c.Before, uncommit))
		default:
			s.skip("undo", c.Index)
		}
	}
	s.dirty = true
}

// Redo re-applies the most recently undone edit and returns its page.
// The second return value is false if there was nothing to redo.
func (s *Store) Redo() (int, bool) {
	s.finishGesture()
	snap, ok := s.hist.Redo()
	if !ok {
		return 0, false
	}
	for k := len(snap.Changes) - 1; k >= 0; k-- {
		c := snap.Changes[k]
		if c.Index < 0 || c.Index > len(s.items) {
			s.skip("redo", c.Index)
			continue
		}
		switch {
		case c.Before == nil: // addition
			if c.Index == len(s.items) {
				s.items = append(s.items, s.restore(c.After, true))
			} else {
				s.items[c.Index] = s.restore(c.After, true)
			}
		case c.After == nil: // removal
			if c.Index == len(s.items) {
				s.skip("redo", c.Index)
				continue
			}
			s.items = append(s.items[:c.Index], s.items[c.Index+1:]...)
		default: // modification
			if c.Index == len(s.items) {
				s.skip("redo", c.Index)
				continue
			}
			s.items[c.Index] = s.restore(c.After, true)
		}
	}
	s.dirty = true
	return snap.Page, true
}

// restore returns a copy of a recorded item for insertion into the store.
func (s *Store) restore(it *Item, uncommit bool) *Item {
	c := it.Clone()
	if uncommit {
		c.Committed = false
	}
	c.rescan()
	return c
}

func (s *Store) finishGesture() {
	if s.active != nil {
		s.Abandon()
	}
	s.erasing = nil
}

func (s *Store) skip(op string, idx int) {
	s.log.WithFields(logrus.Fields{
		"op":    op,
		"index": idx,
		"items": len(s.items),
	}).Warn("ink snapshot index out of range, skipped")
}
