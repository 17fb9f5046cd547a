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

// Package memdoc implements an in-memory annotation document.
package memdoc

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"seehuhn.de/go/annotedit"
)

// Document holds annotations in memory.  It is safe for concurrent use.
type Document struct {
	mu     sync.Mutex
	locked bool
	annots map[annotedit.Handle]*annotedit.Annotation
	order  []annotedit.Handle
}

var _ annotedit.Document = (*Document)(nil)

// New returns an empty document.
func New() *Document {
	return &Document{
		annots: make(map[annotedit.Handle]*annotedit.Annotation),
	}
}

// BeginExclusiveEdit implements [annotedit.Committer].
func (d *Document) BeginExclusiveEdit() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.locked {
		return annotedit.ErrLocked
	}
	d.locked = true
	return nil
}

// EndExclusiveEdit implements [annotedit.Committer].
func (d *Document) EndExclusiveEdit() {
	d.mu.Lock()
	d.locked = false
	d.mu.Unlock()
}

// Locked reports whether an exclusive edit is in progress.
func (d *Document) Locked() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.locked
}

// CreateAnnotation implements [annotedit.Committer].
func (d *Document) CreateAnnotation(kind annotedit.Kind, page int, g annotedit.Geometry) (annotedit.Handle, error) {
	if err := check(kind, g); err != nil {
		return "", err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.locked {
		return "", annotedit.ErrNotLocked
	}

	h := annotedit.Handle(uuid.NewString())
	d.annots[h] = &annotedit.Annotation{
		Handle:   h,
		Page:     page,
		Geometry: clone(g),
		Revision: 1,
	}
	d.order = append(d.order, h)
	return h, nil
}

// UpdateAnnotation implements [annotedit.Committer].
func (d *Document) UpdateAnnotation(h annotedit.Handle, g annotedit.Geometry) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.locked {
		return annotedit.ErrNotLocked
	}

	a, ok := d.annots[h]
	if !ok {
		return annotedit.ErrNotFound
	}
	if err := check(a.Shape.Kind(), g); err != nil {
		return err
	}
	a.Geometry = clone(g)
	a.Revision++
	return nil
}

// RemoveAnnotation implements [annotedit.Committer].
func (d *Document) RemoveAnnotation(h annotedit.Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.locked {
		return annotedit.ErrNotLocked
	}

	if _, ok := d.annots[h]; !ok {
		return annotedit.ErrNotFound
	}
	delete(d.annots, h)
	d.order = slices.DeleteFunc(d.order, func(x annotedit.Handle) bool { return x == h })
	return nil
}

// Annotation implements [annotedit.Reader].
func (d *Document) Annotation(h annotedit.Handle) (*annotedit.Annotation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	a, ok := d.annots[h]
	if !ok {
		return nil, annotedit.ErrNotFound
	}
	return copyAnnotation(a), nil
}

// Annotations implements [annotedit.Reader].
func (d *Document) Annotations(page int) ([]*annotedit.Annotation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var res []*annotedit.Annotation
	for _, h := range d.order {
		if a := d.annots[h]; a.Page == page {
			res = append(res, copyAnnotation(a))
		}
	}
	return res, nil
}

// Len returns the total number of annotations.
func (d *Document) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.order)
}

func check(kind annotedit.Kind, g annotedit.Geometry) error {
	if g.Shape == nil {
		return &annotedit.InvalidGeometryError{Kind: kind, Reason: "missing shape"}
	}
	if g.Shape.Kind() != kind {
		return &annotedit.InvalidGeometryError{Kind: kind, Reason: "shape is a " + g.Shape.Kind().String()}
	}
	return annotedit.Validate(g.Shape)
}

func clone(g annotedit.Geometry) annotedit.Geometry {
	return annotedit.Geometry{Style: g.Style, Shape: annotedit.Clone(g.Shape)}
}

func copyAnnotation(a *annotedit.Annotation) *annotedit.Annotation {
	c := *a
	c.Geometry = clone(a.Geometry)
	return &c
}
