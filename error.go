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

package annotedit

import (
	"errors"
	"math"

	"seehuhn.de/go/annotedit/internal/planar"
)

var (
	// ErrNotFound is returned by a [Document] for unknown handles.
	ErrNotFound = errors.New("annotation not found")

	// ErrStale indicates that an annotation was modified or removed
	// by someone else while it was being edited.
	ErrStale = errors.New("annotation changed during edit")

	// ErrLocked is returned by [Document.BeginExclusiveEdit] if the
	// exclusive edit lock is already held.
	ErrLocked = errors.New("document is locked for editing")

	// ErrNotLocked is returned by the mutating methods of a [Document]
	// if they are called outside an exclusive edit.
	ErrNotLocked = errors.New("document is not locked for editing")
)

// InvalidGeometryError indicates that a shape cannot be committed,
// for example because it has too few vertices.
type InvalidGeometryError struct {
	Kind   Kind
	Reason string
}

func (err *InvalidGeometryError) Error() string {
	return "invalid " + err.Kind.String() + " geometry: " + err.Reason
}

// CommitError indicates that the host document rejected a change.
type CommitError struct {
	Op     string // "create", "update" or "remove"
	Handle Handle
	Err    error
}

func (err *CommitError) Error() string {
	msg := err.Op + " annotation"
	if err.Handle != "" {
		msg += " " + string(err.Handle)
	}
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

func (err *CommitError) Unwrap() error {
	return err.Err
}

// Validate checks whether s can be committed to a document.
// If not, an [*InvalidGeometryError] is returned.
func Validate(s Shape) error {
	kind := s.Kind()
	invalid := func(reason string) error {
		return &InvalidGeometryError{Kind: kind, Reason: reason}
	}

	pts := s.Points()
	for _, p := range pts {
		if !planar.Finite(p) {
			return invalid("non-finite coordinate")
		}
	}

	switch s := s.(type) {
	case *Line:
		if s.Start == s.End {
			return invalid("start and end point coincide")
		}
		return nil
	case *Polyline:
		if len(s.Vertices) < kind.MinVertices() {
			return invalid("too few vertices")
		}
	case *Polygon:
		if len(s.Vertices) < kind.MinVertices() {
			return invalid("too few vertices")
		}
	case *Cloud:
		if len(s.Vertices) < kind.MinVertices() {
			return invalid("too few vertices")
		}
		if s.Intensity < 0 || math.IsNaN(s.Intensity) {
			return invalid("negative intensity")
		}
	case *Callout:
		if planar.IsEmpty(s.TextBox) {
			return invalid("empty text box")
		}
		return nil
	case *Ink:
		n := 0
		for _, stroke := range s.Strokes {
			if len(stroke) > 0 {
				n++
			}
		}
		if n < kind.MinVertices() {
			return invalid("no strokes")
		}
		// a single dot is a valid ink annotation
		return nil
	}

	if b := Bounds(s); b.URx == b.LLx && b.URy == b.LLy {
		return invalid("zero-size bounding box")
	}
	return nil
}
