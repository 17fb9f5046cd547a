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

package relay

import (
	"seehuhn.de/go/annotedit"
)

// Document wraps an annotation document.  Every successful change is
// broadcast to the listeners of a hub.
type Document struct {
	annotedit.Document
	hub *Hub
}

// Wrap returns a document which reports all changes of doc to hub.
func Wrap(doc annotedit.Document, hub *Hub) *Document {
	return &Document{Document: doc, hub: hub}
}

// CreateAnnotation implements [annotedit.Committer].
func (d *Document) CreateAnnotation(kind annotedit.Kind, page int, g annotedit.Geometry) (annotedit.Handle, error) {
	h, err := d.Document.CreateAnnotation(kind, page, g)
	if err != nil {
		return "", err
	}
	d.hub.Broadcast(Event{Op: "create", Handle: h, Kind: kind.String(), Page: page, Revision: 1})
	return h, nil
}

// UpdateAnnotation implements [annotedit.Committer].
func (d *Document) UpdateAnnotation(h annotedit.Handle, g annotedit.Geometry) error {
	if err := d.Document.UpdateAnnotation(h, g); err != nil {
		return err
	}
	ev := Event{Op: "update", Handle: h}
	if a, err := d.Document.Annotation(h); err == nil {
		ev.Kind = a.Shape.Kind().String()
		ev.Page = a.Page
		ev.Revision = a.Revision
	}
	d.hub.Broadcast(ev)
	return nil
}

// RemoveAnnotation implements [annotedit.Committer].
func (d *Document) RemoveAnnotation(h annotedit.Handle) error {
	ev := Event{Op: "remove", Handle: h}
	if a, err := d.Document.Annotation(h); err == nil {
		ev.Kind = a.Shape.Kind().String()
		ev.Page = a.Page
	}
	if err := d.Document.RemoveAnnotation(h); err != nil {
		return err
	}
	d.hub.Broadcast(ev)
	return nil
}
