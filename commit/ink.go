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

package commit

import (
	"errors"

	"seehuhn.de/go/annotedit"
	"seehuhn.de/go/annotedit/ink"
)

// InkResult describes the document changes made by [Ink].
type InkResult struct {
	Created []annotedit.Handle
	Updated []annotedit.Handle
	Removed []annotedit.Handle

	// ExistingRemoved is set if the annotation which was loaded into
	// the store for editing has been removed, because all of its
	// strokes were erased.
	ExistingRemoved bool
}

// Changed reports whether the document was modified.
func (r *InkResult) Changed() bool {
	return len(r.Created)+len(r.Updated)+len(r.Removed) > 0
}

// Ink writes the items of an ink store to the document.
//
// Adjacent items with the same page and style are written as one
// annotation, see [ink.Store.Plan].  Annotations which no longer
// correspond to any item are removed.  The store records the handles of
// the written annotations, so that a later call only writes what has
// changed since.
//
// If the document fails, the changes made so far are kept and recorded
// in the store, and the error is returned together with the partial
// result.
func Ink(doc annotedit.Committer, store *ink.Store) (*InkResult, error) {
	res := &InkResult{}
	plan := store.Plan()
	if plan.IsEmpty() {
		return res, nil
	}
	existing := store.Existing()

	err := Exclusive(doc, func() error {
		for _, g := range plan.Groups {
			geom := store.Geometry(g)
			if err := annotedit.Validate(geom.Shape); err != nil {
				return err
			}

			if g.Handle != "" {
				err := doc.UpdateAnnotation(g.Handle, geom)
				if err == nil {
					store.MarkCommitted(g, g.Handle)
					res.Updated = append(res.Updated, g.Handle)
					continue
				}
				if !errors.Is(err, annotedit.ErrNotFound) {
					return &annotedit.CommitError{Op: "update", Handle: g.Handle, Err: err}
				}
				// the annotation has gone, write a new one
				store.MarkRemoved(g.Handle)
			}

			h, err := doc.CreateAnnotation(annotedit.KindInk, g.Page, geom)
			if err != nil {
				return &annotedit.CommitError{Op: "create", Err: err}
			}
			store.MarkCommitted(g, h)
			res.Created = append(res.Created, h)
		}

		for _, h := range plan.Remove {
			err := doc.RemoveAnnotation(h)
			if err != nil && !errors.Is(err, annotedit.ErrNotFound) {
				return &annotedit.CommitError{Op: "remove", Handle: h, Err: err}
			}
			store.MarkRemoved(h)
			res.Removed = append(res.Removed, h)
			if h == existing {
				res.ExistingRemoved = true
			}
		}
		return nil
	})
	return res, err
}
