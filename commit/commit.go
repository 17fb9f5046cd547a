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

// Package commit writes finished geometry to a host document.
//
// Every function in this package brackets its document calls with
// BeginExclusiveEdit and EndExclusiveEdit, so that the document is
// unlocked again on every exit path.  Failures of the document are
// returned as [*annotedit.CommitError].
package commit

import (
	"errors"
	"slices"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotedit"
)

// Exclusive calls fn while holding the exclusive edit lock of doc.
// The lock is released when fn returns, or panics.
func Exclusive(doc annotedit.Committer, fn func() error) error {
	if err := doc.BeginExclusiveEdit(); err != nil {
		return &annotedit.CommitError{Op: "lock", Err: err}
	}
	defer doc.EndExclusiveEdit()
	return fn()
}

// Create validates g and adds it to the document as a new annotation.
func Create(doc annotedit.Committer, page int, g annotedit.Geometry) (annotedit.Handle, error) {
	if g.Shape == nil {
		return "", errors.New("missing shape")
	}
	if err := annotedit.Validate(g.Shape); err != nil {
		return "", err
	}

	var h annotedit.Handle
	err := Exclusive(doc, func() error {
		var err error
		h, err = doc.CreateAnnotation(g.Shape.Kind(), page, g)
		if err != nil {
			return &annotedit.CommitError{Op: "create", Err: err}
		}
		return nil
	})
	return h, err
}

// Update validates g and replaces the geometry of annotation h.
func Update(doc annotedit.Committer, h annotedit.Handle, g annotedit.Geometry) error {
	if g.Shape == nil {
		return errors.New("missing shape")
	}
	if err := annotedit.Validate(g.Shape); err != nil {
		return err
	}
	return Exclusive(doc, func() error {
		if err := doc.UpdateAnnotation(h, g); err != nil {
			return &annotedit.CommitError{Op: "update", Handle: h, Err: err}
		}
		return nil
	})
}

// Remove deletes the annotations with the given handles.
func Remove(doc annotedit.Committer, handles ...annotedit.Handle) error {
	if len(handles) == 0 {
		return nil
	}
	return Exclusive(doc, func() error {
		for _, h := range handles {
			if err := doc.RemoveAnnotation(h); err != nil {
				return &annotedit.CommitError{Op: "remove", Handle: h, Err: err}
			}
		}
		return nil
	})
}

// FromVertices builds a shape of the given kind from a vertex list.
// Only lines, polylines, polygons and clouds can be built this way.
// The result is validated.
func FromVertices(kind annotedit.Kind, pts []vec.Vec2, cloudIntensity float64) (annotedit.Shape, error) {
	pts = slices.Clone(pts)
	var s annotedit.Shape
	switch kind {
	case annotedit.KindLine:
		if len(pts) != 2 {
			return nil, &annotedit.InvalidGeometryError{Kind: kind, Reason: "a line needs exactly two points"}
		}
		s = &annotedit.Line{Start: pts[0], End: pts[1]}
	case annotedit.KindPolyline:
		s = &annotedit.Polyline{Vertices: pts}
	case annotedit.KindPolygon:
		s = &annotedit.Polygon{Vertices: pts}
	case annotedit.KindCloud:
		s = &annotedit.Cloud{Vertices: pts, Intensity: cloudIntensity}
	default:
		return nil, &annotedit.InvalidGeometryError{Kind: kind, Reason: "not a vertex shape"}
	}
	if err := annotedit.Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}
