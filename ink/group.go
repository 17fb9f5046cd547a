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

package ink

import (
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotedit"
)

// Group is a contiguous run of non-empty items which share page and
// style attributes.  A group is written to the document as one ink
// annotation.
type Group struct {
	Page    int
	Style   annotedit.Style
	Indices []int

	// Handle is the annotation to update.  If Handle is empty, a new
	// annotation must be created.
	Handle annotedit.Handle
}

// Plan lists the document changes needed to bring the document in line
// with the store.
type Plan struct {
	// Groups lists the runs which need to be written.  Runs whose
	// items are exactly the items last written to one annotation are
	// left out.
	Groups []Group

	// Remove lists annotations which no longer correspond to any
	// item.  This includes annotations of items which were merged into
	// a neighbouring run, and annotations whose strokes were erased
	// completely.
	Remove []annotedit.Handle
}

// IsEmpty reports whether the plan contains no document changes.
func (p *Plan) IsEmpty() bool {
	return len(p.Groups) == 0 && len(p.Remove) == 0
}

// Plan computes the commit plan for the current items.
//
// Items without points are skipped and do not break a run.  Items
// which are not adjacent are never merged, even if their attributes
// match.
func (s *Store) Plan() *Plan {
	plan := &Plan{}
	used := make(map[annotedit.Handle]bool)

	var cur *Group
	committed := true
	flush := func() {
		if cur == nil {
			return
		}
		for _, i := range cur.Indices {
			h := s.items[i].Handle
			if h != "" && s.live[h] && !used[h] {
				cur.Handle = h
				break
			}
		}
		if cur.Handle != "" {
			used[cur.Handle] = true
		}
		if !committed || !s.sameHandle(cur) || s.members[cur.Handle] != len(cur.Indices) {
			plan.Groups = append(plan.Groups, *cur)
		}
		cur = nil
		committed = true
	}

	for i, it := range s.items {
		if it.IsEmpty() || it == s.active {
			continue
		}
		if cur != nil && (s.cfg.KeepSeparate || it.Page != cur.Page || !it.Style.SameAttributes(cur.Style)) {
			flush()
		}
		if cur == nil {
			cur = &Group{Page: it.Page, Style: it.Style}
		}
		cur.Indices = append(cur.Indices, i)
		committed = committed && it.Committed
	}
	flush()

	for _, h := range s.order {
		if s.live[h] && !used[h] {
			plan.Remove = append(plan.Remove, h)
		}
	}
	return plan
}

// sameHandle reports whether all items of g are committed to g.Handle.
func (s *Store) sameHandle(g *Group) bool {
	if g.Handle == "" {
		return false
	}
	for _, i := range g.Indices {
		if s.items[i].Handle != g.Handle {
			return false
		}
	}
	return true
}

// Geometry returns the annotation geometry for a group: the strokes of
// all items, in order, drawn in the style of the first item.
func (s *Store) Geometry(g Group) annotedit.Geometry {
	var strokes [][]vec.Vec2
	for _, i := range g.Indices {
		for _, stroke := range s.items[i].Strokes {
			if len(stroke) > 0 {
				strokes = append(strokes, cloneStrokes([][]vec.Vec2{stroke})[0])
			}
		}
	}
	return annotedit.Geometry{
		Style: g.Style,
		Shape: &annotedit.Ink{Strokes: strokes},
	}
}

// MarkCommitted records that the items of g have been written to the
// annotation h.
func (s *Store) MarkCommitted(g Group, h annotedit.Handle) {
	for _, i := range g.Indices {
		if i < 0 || i >= len(s.items) {
			s.skip("commit", i)
			continue
		}
		it := s.items[i]
		it.Committed = true
		it.Handle = h
	}
	s.track(h, len(g.Indices))
}

// MarkRemoved records that the annotation h has been removed from the
// document.  Items which refer to h lose their handle.
func (s *Store) MarkRemoved(h annotedit.Handle) {
	delete(s.live, h)
	delete(s.members, h)
	for _, it := range s.items {
		if it.Handle == h {
			it.Handle = ""
			it.Existing = false
		}
	}
	if s.existing == h {
		s.existing = ""
	}
}

// track records that n items have been written to the annotation h.
func (s *Store) track(h annotedit.Handle, n int) {
	if h == "" {
		return
	}
	if s.live == nil {
		s.live = make(map[annotedit.Handle]bool)
		s.members = make(map[annotedit.Handle]int)
	}
	s.members[h] = n
	if !s.live[h] {
		s.live[h] = true
		s.order = append(s.order, h)
	}
}
