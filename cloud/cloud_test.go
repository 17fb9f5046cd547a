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

package cloud

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotedit/internal/planar"
)

type recorder struct {
	ops []string
	pts []vec.Vec2
}

func (r *recorder) MoveTo(p vec.Vec2) {
	r.ops = append(r.ops, "M")
	r.pts = append(r.pts, p)
}

func (r *recorder) LineTo(p vec.Vec2) {
	r.ops = append(r.ops, "L")
	r.pts = append(r.pts, p)
}

func (r *recorder) CubeTo(c1, c2, p vec.Vec2) {
	r.ops = append(r.ops, "C")
	r.pts = append(r.pts, p)
}

func (r *recorder) Close() {
	r.ops = append(r.ops, "Z")
}

func (r *recorder) count(op string) int {
	n := 0
	for _, o := range r.ops {
		if o == op {
			n++
		}
	}
	return n
}

var diamond = []vec.Vec2{{X: 0, Y: -100}, {X: 100, Y: 0}, {X: 0, Y: 100}, {X: -100, Y: 0}}

func TestTooSmall(t *testing.T) {
	tiny := []vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	if o := New(tiny, 1, 1); o != nil {
		t.Errorf("got %d bulges for a tiny triangle", o.NumBulges())
	}
	if o := New(tiny[:2], 1, 1); o != nil {
		t.Error("got an outline for two points")
	}
}

func TestFillAndStroke(t *testing.T) {
	o := New(diamond, 1, 1)
	if o == nil {
		t.Fatal("no outline")
	}
	if o.HasBase() {
		t.Error("diamond has a flat base")
	}
	n := o.NumBulges()
	if n < 3 {
		t.Fatalf("got %d bulges", n)
	}

	fill := &recorder{}
	o.Fill(fill)
	if fill.count("C") != n || fill.count("M") != 1 || fill.ops[len(fill.ops)-1] != "Z" {
		t.Errorf("unexpected fill path %v", fill.ops)
	}

	stroke := &recorder{}
	o.Stroke(stroke)
	if stroke.count("C") != n || stroke.count("L") != n || stroke.count("Z") != 0 {
		t.Errorf("unexpected stroke path %v", stroke.ops)
	}

	// the last bulge ends where the first one starts
	if d := cmp.Diff(fill.pts[0], fill.pts[len(fill.pts)-1]); d != "" {
		t.Errorf("outline not closed (-start +end):\n%s", d)
	}
}

func TestFlatBase(t *testing.T) {
	box := []vec.Vec2{{X: 0, Y: 0}, {X: 200, Y: 0}, {X: 200, Y: 40}, {X: 0, Y: 40}}
	o := New(box, 1, 1)
	if o == nil {
		t.Fatal("no outline")
	}
	if !o.HasBase() {
		t.Fatal("flat base not detected")
	}

	fill := &recorder{}
	o.Fill(fill)
	if fill.ops[0] != "M" || fill.ops[1] != "L" {
		t.Errorf("fill does not start with the base line: %v", fill.ops[:2])
	}
	for _, p := range fill.pts[:2] {
		if p.Y != 0 {
			t.Errorf("base point %v not on the bottom edge", p)
		}
	}
}

func TestWinding(t *testing.T) {
	cw := []vec.Vec2{diamond[3], diamond[2], diamond[1], diamond[0]}
	a, b := New(diamond, 1, 1), New(cw, 1, 1)
	if a == nil || b == nil {
		t.Fatal("no outline")
	}
	if d := cmp.Diff(a.Bounds(), b.Bounds()); d != "" {
		t.Errorf("bounds depend on the winding (-ccw +cw):\n%s", d)
	}
}

func TestBounds(t *testing.T) {
	o := New(diamond, 1, 1)
	box := o.Bounds()
	for _, v := range diamond {
		if !planar.Contains(box, v) {
			t.Errorf("vertex %v outside of %v", v, box)
		}
	}
	// the bulges stick out of the polygon
	if box.URx <= 100 {
		t.Errorf("bulges do not extend beyond the polygon: %v", box)
	}
}

func TestIntensity(t *testing.T) {
	low, high := New(diamond, 1, 1), New(diamond, 3, 1)
	if low.NumBulges() <= high.NumBulges() {
		t.Errorf("intensity 3 gives %d bulges, intensity 1 gives %d", high.NumBulges(), low.NumBulges())
	}
	if zero := New(diamond, 0, 1); zero.NumBulges() != low.NumBulges() {
		t.Errorf("intensity 0 gives %d bulges, want %d", zero.NumBulges(), low.NumBulges())
	}
}
