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
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotedit/internal/planar"
)

// Handle identifies an annotation inside a [Document].
type Handle string

// Geometry is what gets stored in a document when a shape is committed.
type Geometry struct {
	Style Style
	Shape Shape
}

// Annotation is a committed annotation, as returned by a [Reader].
type Annotation struct {
	Handle Handle
	Page   int
	Geometry

	// Revision is incremented by the document whenever the annotation
	// is updated.  Editors use it to detect concurrent changes.
	Revision uint64
}

// Committer is the part of a host document which materialises geometry.
//
// Every call to one of the mutating methods must be bracketed by
// BeginExclusiveEdit and EndExclusiveEdit.  Use
// [seehuhn.de/go/annotedit/commit.Exclusive] to get this right.
type Committer interface {
	// BeginExclusiveEdit locks the document for exclusive access.
	// If the lock is already held, [ErrLocked] is returned.
	BeginExclusiveEdit() error

	// CreateAnnotation adds a new annotation to the given page.
	// The kind must match the kind of g.Shape.
	CreateAnnotation(kind Kind, page int, g Geometry) (Handle, error)

	// UpdateAnnotation replaces the geometry of an existing annotation.
	UpdateAnnotation(h Handle, g Geometry) error

	// RemoveAnnotation deletes an annotation.
	RemoveAnnotation(h Handle) error

	// EndExclusiveEdit releases the lock taken by BeginExclusiveEdit.
	EndExclusiveEdit()
}

// Reader gives read access to the annotations of a host document.
type Reader interface {
	// Annotation returns the annotation with the given handle.
	// If there is no such annotation, [ErrNotFound] is returned.
	Annotation(h Handle) (*Annotation, error)

	// Annotations lists the annotations on a page, in creation order.
	Annotations(page int) ([]*Annotation, error)
}

// Document combines [Committer] and [Reader].
type Document interface {
	Committer
	Reader
}

// Bridge maps between screen space and document space.
//
// Results must not be cached across scroll or zoom events.
type Bridge interface {
	// ScreenToDocument converts a screen point to the coordinates
	// of the given page.
	ScreenToDocument(p vec.Vec2, page int) vec.Vec2

	// DocumentToScreen converts a point on the given page to
	// screen coordinates.
	DocumentToScreen(p vec.Vec2, page int) vec.Vec2

	// PageAt returns the page which is shown at the given screen point.
	PageAt(p vec.Vec2) (page int, ok bool)
}

// PageBoxer is implemented by bridges which know the crop boxes
// of the pages.
type PageBoxer interface {
	// PageBox returns the crop box of a page, in document space.
	PageBox(page int) (rect.Rect, bool)
}

// ToScreen converts a document-space shape on the given page to
// screen space.
func ToScreen(b Bridge, s Shape, page int) Shape {
	return Map(s, func(p vec.Vec2) vec.Vec2 { return b.DocumentToScreen(p, page) })
}

// ToDocument converts a screen-space shape to document space.
func ToDocument(b Bridge, s Shape, page int) Shape {
	return Map(s, func(p vec.Vec2) vec.Vec2 { return b.ScreenToDocument(p, page) })
}

// ScreenCropBox returns the crop box of a page in screen coordinates.
// The second return value is false if the bridge does not know the
// crop box.
func ScreenCropBox(b Bridge, page int) (rect.Rect, bool) {
	pb, ok := b.(PageBoxer)
	if !ok {
		return rect.Rect{}, false
	}
	box, ok := pb.PageBox(page)
	if !ok {
		return rect.Rect{}, false
	}
	p0 := b.DocumentToScreen(vec.Vec2{X: box.LLx, Y: box.LLy}, page)
	p1 := b.DocumentToScreen(vec.Vec2{X: box.URx, Y: box.URy}, page)
	return planar.Normalize(rect.Rect{LLx: p0.X, LLy: p0.Y, URx: p1.X, URy: p1.Y}), true
}
