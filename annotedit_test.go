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
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

func TestKindNames(t *testing.T) {
	for k := KindLine; k <= KindInk; k++ {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("Circle"); err == nil {
		t.Error("unknown kind was accepted")
	}
	if s := Kind(99).String(); s != "Kind(99)" {
		t.Errorf("Kind(99).String() = %q", s)
	}
}

func TestValidate(t *testing.T) {
	nan := math.NaN()
	cases := []struct {
		name  string
		shape Shape
		ok    bool
	}{
		{"line", &Line{Start: vec.Vec2{X: 1, Y: 1}, End: vec.Vec2{X: 2, Y: 1}}, true},
		{"line degenerate", &Line{Start: vec.Vec2{X: 1, Y: 1}, End: vec.Vec2{X: 1, Y: 1}}, false},
		{"line NaN", &Line{Start: vec.Vec2{X: nan}, End: vec.Vec2{X: 1, Y: 1}}, false},
		{"polyline", &Polyline{Vertices: []vec.Vec2{{X: 0, Y: 0}, {X: 5, Y: 0}}}, true},
		{"polyline one vertex", &Polyline{Vertices: []vec.Vec2{{X: 0, Y: 0}}}, false},
		{"polyline zero size", &Polyline{Vertices: []vec.Vec2{{X: 3, Y: 3}, {X: 3, Y: 3}}}, false},
		{"polygon", &Polygon{Vertices: []vec.Vec2{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 5}}}, true},
		{"polygon two vertices", &Polygon{Vertices: []vec.Vec2{{X: 0, Y: 0}, {X: 5, Y: 0}}}, false},
		{"polygon infinite", &Polygon{Vertices: []vec.Vec2{{X: 0, Y: 0}, {X: math.Inf(1), Y: 0}, {X: 5, Y: 5}}}, false},
		{"cloud", &Cloud{Vertices: []vec.Vec2{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 50}}}, true},
		{"cloud negative intensity", &Cloud{Vertices: []vec.Vec2{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 50}}, Intensity: -1}, false},
		{"callout", &Callout{TextBox: rect.Rect{LLx: 10, LLy: 10, URx: 90, URy: 50}}, true},
		{"callout empty box", &Callout{TextBox: rect.Rect{LLx: 10, LLy: 10, URx: 10, URy: 50}}, false},
		{"ink dot", &Ink{Strokes: [][]vec.Vec2{nil, {{X: 1, Y: 1}}}}, true},
		{"ink empty", &Ink{Strokes: [][]vec.Vec2{nil, {}}}, false},
	}
	for _, c := range cases {
		err := Validate(c.shape)
		if c.ok && err != nil {
			t.Errorf("%s: unexpected error %v", c.name, err)
		} else if !c.ok {
			var geomErr *InvalidGeometryError
			if !errors.As(err, &geomErr) {
				t.Errorf("%s: got %v, want *InvalidGeometryError", c.name, err)
			} else if geomErr.Kind != c.shape.Kind() {
				t.Errorf("%s: error kind %v", c.name, geomErr.Kind)
			}
		}
	}
}

func TestMapCopies(t *testing.T) {
	orig := &Ink{Strokes: [][]vec.Vec2{{{X: 1, Y: 2}, {X: 3, Y: 4}}}}
	shift := func(p vec.Vec2) vec.Vec2 { return p.Add(vec.Vec2{X: 10}) }

	got := Map(orig, shift)
	want := &Ink{Strokes: [][]vec.Vec2{{{X: 11, Y: 2}, {X: 13, Y: 4}}}}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("mapped (-want +got):\n%s", d)
	}
	if orig.Strokes[0][0].X != 1 {
		t.Error("Map modified its argument")
	}

	c := Clone(orig).(*Ink)
	c.Strokes[0][1] = vec.Vec2{}
	if orig.Strokes[0][1] != (vec.Vec2{X: 3, Y: 4}) {
		t.Error("Clone shares storage with the original")
	}
}

func TestCalloutMapFlipsBox(t *testing.T) {
	c := &Callout{TextBox: rect.Rect{LLx: 0, LLy: 0, URx: 80, URy: 40}}
	flip := func(p vec.Vec2) vec.Vec2 { return vec.Vec2{X: p.X, Y: 100 - p.Y} }
	got := Map(c, flip).(*Callout)
	want := rect.Rect{LLx: 0, LLy: 60, URx: 80, URy: 100}
	if d := cmp.Diff(want, got.TextBox); d != "" {
		t.Errorf("text box (-want +got):\n%s", d)
	}
}

func TestEdges(t *testing.T) {
	count := func(s Shape) int {
		n := 0
		Edges(s, func(a, b vec.Vec2) bool {
			n++
			return true
		})
		return n
	}

	square := []vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	cases := []struct {
		shape Shape
		want  int
	}{
		{&Line{End: vec.Vec2{X: 1}}, 1},
		{&Polyline{Vertices: square}, 3},
		{&Polygon{Vertices: square}, 4},
		{&Callout{TextBox: rect.Rect{URx: 1, URy: 1}}, 6},
		{&Ink{Strokes: [][]vec.Vec2{square, {{X: 5, Y: 5}}}}, 4},
	}
	for _, c := range cases {
		if got := count(c.shape); got != c.want {
			t.Errorf("%v: %d edges, want %d", c.shape.Kind(), got, c.want)
		}
	}

	// stop early
	n := 0
	Edges(&Polygon{Vertices: square}, func(a, b vec.Vec2) bool {
		n++
		return false
	})
	if n != 1 {
		t.Errorf("yield called %d times after returning false", n)
	}
}

func TestHexColor(t *testing.T) {
	s := Style{Color: color.NRGBA{R: 0x12, G: 0xAB, B: 0x00, A: 0x80}}
	if got := s.HexColor(); got != "#12ab00" {
		t.Errorf("HexColor() = %q", got)
	}

	col, err := ParseHexColor(" #12AB00")
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(color.NRGBA{R: 0x12, G: 0xAB, A: 0xFF}, col); d != "" {
		t.Errorf("parsed color (-want +got):\n%s", d)
	}

	for _, bad := range []string{"", "#12ab0", "#12ab0g", "red"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Errorf("ParseHexColor(%q) succeeded", bad)
		}
	}
}

func TestSameAttributes(t *testing.T) {
	a := Style{Color: color.NRGBA{R: 1, A: 255}, Opacity: 1, Thickness: 2}
	b := a
	b.Stylus = true
	b.Color.A = 0
	if !a.SameAttributes(b) {
		t.Error("input device or alpha should not matter")
	}
	b.Thickness = 3
	if a.SameAttributes(b) {
		t.Error("different thickness was merged")
	}
}

func TestCommitError(t *testing.T) {
	err := error(&CommitError{Op: "update", Handle: "h1", Err: ErrNotFound})
	if !errors.Is(err, ErrNotFound) {
		t.Error("CommitError does not unwrap")
	}
	if got := err.Error(); got != "update annotation h1: annotation not found" {
		t.Errorf("Error() = %q", got)
	}
}
