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
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotedit"
	"seehuhn.de/go/annotedit/ink"
	"seehuhn.de/go/annotedit/memdoc"
)

var errBoom = errors.New("boom")

// failingDoc is a document whose mutating methods fail.
type failingDoc struct {
	*memdoc.Document
}

func (failingDoc) CreateAnnotation(annotedit.Kind, int, annotedit.Geometry) (annotedit.Handle, error) {
	return "", errBoom
}

func (failingDoc) UpdateAnnotation(annotedit.Handle, annotedit.Geometry) error {
	return errBoom
}

type flatBridge struct{}

func (flatBridge) ScreenToDocument(p vec.Vec2, page int) vec.Vec2 { return p }
func (flatBridge) DocumentToScreen(p vec.Vec2, page int) vec.Vec2 { return p }
func (flatBridge) PageAt(p vec.Vec2) (int, bool)                  { return 1, true }

var (
	red  = annotedit.Style{Color: color.NRGBA{R: 255, A: 255}, Opacity: 1, Thickness: 1}
	blue = annotedit.Style{Color: color.NRGBA{B: 255, A: 255}, Opacity: 1, Thickness: 1}
)

func TestExclusiveReleasesLock(t *testing.T) {
	doc := memdoc.New()

	err := Exclusive(doc, func() error { return errBoom })
	if !errors.Is(err, errBoom) {
		t.Errorf("got %v, want %v", err, errBoom)
	}
	if doc.Locked() {
		t.Error("document still locked after error")
	}

	func() {
		defer func() { recover() }()
		Exclusive(doc, func() error { panic("oops") })
	}()
	if doc.Locked() {
		t.Error("document still locked after panic")
	}
}

func TestNestedLock(t *testing.T) {
	doc := memdoc.New()
	err := Exclusive(doc, func() error {
		return Exclusive(doc, func() error { return nil })
	})
	if !errors.Is(err, annotedit.ErrLocked) {
		t.Errorf("got %v, want %v", err, annotedit.ErrLocked)
	}
}

func TestCreate(t *testing.T) {
	doc := memdoc.New()
	shape := &annotedit.Polyline{Vertices: []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}}}
	h, err := Create(doc, 3, annotedit.Geometry{Style: red, Shape: shape})
	if err != nil {
		t.Fatal(err)
	}
	a, err := doc.Annotation(h)
	if err != nil {
		t.Fatal(err)
	}
	if a.Page != 3 || a.Shape.Kind() != annotedit.KindPolyline {
		t.Errorf("got page %d kind %v", a.Page, a.Shape.Kind())
	}

	_, err = Create(doc, 3, annotedit.Geometry{Shape: &annotedit.Polyline{Vertices: shape.Vertices[:1]}})
	var geomErr *annotedit.InvalidGeometryError
	if !errors.As(err, &geomErr) {
		t.Errorf("got %v, want invalid geometry", err)
	}
	if doc.Len() != 1 {
		t.Errorf("got %d annotations, want 1", doc.Len())
	}
}

func TestHostFailure(t *testing.T) {
	doc := failingDoc{memdoc.New()}
	shape := &annotedit.Line{End: vec.Vec2{X: 1, Y: 1}}
	_, err := Create(doc, 1, annotedit.Geometry{Shape: shape})

	var commitErr *annotedit.CommitError
	if !errors.As(err, &commitErr) || commitErr.Op != "create" {
		t.Fatalf("got %v, want commit error", err)
	}
	if !errors.Is(err, errBoom) {
		t.Error("commit error does not wrap the document error")
	}
	if doc.Locked() {
		t.Error("document still locked")
	}
}

func TestFromVertices(t *testing.T) {
	pts := []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	s, err := FromVertices(annotedit.KindCloud, pts, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := &annotedit.Cloud{Vertices: pts, Intensity: 2}
	if d := cmp.Diff(want, s); d != "" {
		t.Errorf("shape (-want +got):\n%s", d)
	}

	for _, kind := range []annotedit.Kind{annotedit.KindPolygon, annotedit.KindLine, annotedit.KindInk} {
		if _, err := FromVertices(kind, pts[:2], 1); err == nil && kind != annotedit.KindLine {
			t.Errorf("%v with two points accepted", kind)
		}
	}
	if _, err := FromVertices(annotedit.KindLine, pts, 1); err == nil {
		t.Error("line with three points accepted")
	}
}

func draw(s *ink.Store, style annotedit.Style, pts ...vec.Vec2) {
	s.StartStroke(style, 1)
	for _, p := range pts {
		s.AddPoint(p)
	}
	s.EndStroke()
}

func TestInk(t *testing.T) {
	doc := memdoc.New()
	store := ink.NewStore(flatBridge{}, ink.Config{})
	draw(store, red, vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 10, Y: 0})
	draw(store, blue, vec.Vec2{X: 0, Y: 20}, vec.Vec2{X: 10, Y: 20})
	draw(store, red, vec.Vec2{X: 0, Y: 40}, vec.Vec2{X: 10, Y: 40})

	res, err := Ink(doc, store)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Created) != 3 || doc.Len() != 3 {
		t.Fatalf("created %d annotations, document has %d", len(res.Created), doc.Len())
	}

	res, err = Ink(doc, store)
	if err != nil {
		t.Fatal(err)
	}
	if res.Changed() {
		t.Errorf("second commit changed the document: %+v", res)
	}

	// erasing the blue stroke merges the two red ones
	store.Erase(1, vec.Vec2{X: -5, Y: 20}, vec.Vec2{X: 15, Y: 20}, 1)
	store.FinishErase()
	first := store.Item(0).Handle
	res, err = Ink(doc, store)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]annotedit.Handle{first}, res.Updated); d != "" {
		t.Errorf("updated (-want +got):\n%s", d)
	}
	if len(res.Removed) != 2 || doc.Len() != 1 {
		t.Errorf("removed %d annotations, document has %d", len(res.Removed), doc.Len())
	}
	a, err := doc.Annotation(first)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(a.Shape.(*annotedit.Ink).Strokes); n != 2 {
		t.Errorf("merged annotation has %d strokes, want 2", n)
	}
	if doc.Locked() {
		t.Error("document still locked")
	}
}

func TestInkExistingRemoved(t *testing.T) {
	doc := memdoc.New()
	strokes := [][]vec.Vec2{{{X: 0, Y: 0}, {X: 10, Y: 0}}}
	h, err := Create(doc, 1, annotedit.Geometry{Style: red, Shape: &annotedit.Ink{Strokes: strokes}})
	if err != nil {
		t.Fatal(err)
	}

	store := ink.NewStore(flatBridge{}, ink.Config{})
	store.LoadExisting(h, 1, red, strokes)
	store.Erase(1, vec.Vec2{X: -5, Y: 0}, vec.Vec2{X: 15, Y: 0}, 1)
	store.FinishErase()

	res, err := Ink(doc, store)
	if err != nil {
		t.Fatal(err)
	}
	if !res.ExistingRemoved {
		t.Error("removal of the edited annotation not reported")
	}
	if d := cmp.Diff([]annotedit.Handle{h}, res.Removed); d != "" {
		t.Errorf("removed (-want +got):\n%s", d)
	}
	if doc.Len() != 0 {
		t.Errorf("document has %d annotations", doc.Len())
	}
}

func TestInkHostFailure(t *testing.T) {
	doc := failingDoc{memdoc.New()}
	store := ink.NewStore(flatBridge{}, ink.Config{})
	draw(store, red, vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 10, Y: 0})

	_, err := Ink(doc, store)
	if !errors.Is(err, errBoom) {
		t.Errorf("got %v, want %v", err, errBoom)
	}
	if doc.Locked() {
		t.Error("document still locked")
	}
	if store.Item(0).Committed {
		t.Error("item marked committed after failure")
	}
}

func inkStrokes(t *testing.T, doc annotedit.Reader, h annotedit.Handle) [][]vec.Vec2 {
	t.Helper()
	a, err := doc.Annotation(h)
	if err != nil {
		t.Fatal(err)
	}
	return a.Shape.(*annotedit.Ink).Strokes
}

func TestInkUndoAfterCommit(t *testing.T) {
	doc := memdoc.New()
	store := ink.NewStore(flatBridge{}, ink.Config{})
	a := []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}}
	b := []vec.Vec2{{X: 0, Y: 20}, {X: 10, Y: 20}}

	draw(store, red, a...)
	if _, err := Ink(doc, store); err != nil {
		t.Fatal(err)
	}
	h := store.Item(0).Handle
	draw(store, red, b...)
	if _, err := Ink(doc, store); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([][]vec.Vec2{a, b}, inkStrokes(t, doc, h)); d != "" {
		t.Fatalf("strokes after second commit (-want +got):\n%s", d)
	}

	store.Undo()
	res, err := Ink(doc, store)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]annotedit.Handle{h}, res.Updated); d != "" {
		t.Errorf("updated after undo (-want +got):\n%s", d)
	}
	if d := cmp.Diff([][]vec.Vec2{a}, inkStrokes(t, doc, h)); d != "" {
		t.Errorf("strokes after undo (-want +got):\n%s", d)
	}

	store.Redo()
	if _, err := Ink(doc, store); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([][]vec.Vec2{a, b}, inkStrokes(t, doc, h)); d != "" {
		t.Errorf("strokes after redo (-want +got):\n%s", d)
	}
	if doc.Len() != 1 {
		t.Errorf("document has %d annotations, want 1", doc.Len())
	}
}

func TestInkUndoEraseAfterCommit(t *testing.T) {
	doc := memdoc.New()
	store := ink.NewStore(flatBridge{}, ink.Config{})
	orig := []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}, {X: 30, Y: 0}, {X: 40, Y: 0}}
	draw(store, red, orig...)
	if _, err := Ink(doc, store); err != nil {
		t.Fatal(err)
	}
	h := store.Item(0).Handle

	store.Erase(1, vec.Vec2{X: 20, Y: -5}, vec.Vec2{X: 20, Y: 5}, 1)
	store.FinishErase()
	if _, err := Ink(doc, store); err != nil {
		t.Fatal(err)
	}
	if n := len(inkStrokes(t, doc, h)); n != 2 {
		t.Fatalf("erased annotation has %d strokes, want 2", n)
	}

	store.Undo()
	if _, err := Ink(doc, store); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([][]vec.Vec2{orig}, inkStrokes(t, doc, h)); d != "" {
		t.Errorf("strokes after undo (-want +got):\n%s", d)
	}
}
