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

package eraser

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotedit"
)

func TestEraseSplitsStroke(t *testing.T) {
	strokes := [][]vec.Vec2{
		{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}, {X: 30, Y: 0}},
	}
	got, changed := Erase(strokes, vec.Vec2{X: 10, Y: 5}, vec.Vec2{X: 20, Y: 5}, 5)
	if !changed {
		t.Fatal("nothing erased")
	}
	if len(got) != 0 {
		t.Errorf("got %v, want no strokes", got)
	}
	if !IsEmpty(got) {
		t.Error("IsEmpty returned false")
	}
}

func TestEraseInterior(t *testing.T) {
	var stroke []vec.Vec2
	for i := range 10 {
		stroke = append(stroke, vec.Vec2{X: float64(i), Y: 0})
	}
	in := [][]vec.Vec2{stroke}

	// a vertical eraser through x=4.5 removes the points 4 and 5
	got, changed := Erase(in, vec.Vec2{X: 4.5, Y: -10}, vec.Vec2{X: 4.5, Y: 10}, 0.5)
	if !changed {
		t.Fatal("nothing erased")
	}
	want := [][]vec.Vec2{stroke[:4], stroke[6:]}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("strokes (-want +got):\n%s", d)
	}
	if len(in[0]) != 10 {
		t.Error("input was modified")
	}
}

func TestEraseMultipleCuts(t *testing.T) {
	var stroke []vec.Vec2
	for i := range 12 {
		stroke = append(stroke, vec.Vec2{X: float64(i), Y: 0})
	}
	path := []vec.Vec2{{X: 2, Y: 5}, {X: 2, Y: -5}, {X: 7, Y: -5}, {X: 7, Y: 5}}
	got, _ := ErasePath([][]vec.Vec2{stroke}, path, 0.1)

	// points 2 and 7 are removed, leaving runs 0-1, 3-6 and 8-11
	want := [][]vec.Vec2{stroke[0:2], stroke[3:7], stroke[8:12]}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("strokes (-want +got):\n%s", d)
	}
}

func TestEraseMiss(t *testing.T) {
	strokes := [][]vec.Vec2{
		{{X: 0, Y: 0}},
		{{X: 0, Y: 10}, {X: 10, Y: 10}},
	}
	got, changed := Erase(strokes, vec.Vec2{X: 50, Y: 50}, vec.Vec2{X: 60, Y: 60}, 2)
	if changed {
		t.Error("erased points far away from the eraser")
	}
	if d := cmp.Diff(strokes, got); d != "" {
		t.Errorf("strokes changed (-want +got):\n%s", d)
	}
}

func TestEraseDot(t *testing.T) {
	strokes := [][]vec.Vec2{{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0}}}
	p := vec.Vec2{X: 2, Y: 0.5}
	got, changed := Erase(strokes, p, p, 0.6)
	if !changed {
		t.Fatal("tap did not erase")
	}
	want := [][]vec.Vec2{strokes[0][:2], strokes[0][3:]}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("strokes (-want +got):\n%s", d)
	}
}

func TestAssociativity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	randPt := func() vec.Vec2 {
		return vec.Vec2{X: rng.Float64() * 100, Y: rng.Float64() * 100}
	}

	for trial := range 200 {
		var strokes [][]vec.Vec2
		for range 1 + rng.Intn(4) {
			n := 1 + rng.Intn(30)
			p := randPt()
			stroke := []vec.Vec2{p}
			for range n - 1 {
				p = p.Add(vec.Vec2{X: rng.Float64()*6 - 3, Y: rng.Float64()*6 - 3})
				stroke = append(stroke, p)
			}
			strokes = append(strokes, stroke)
		}
		path := []vec.Vec2{randPt()}
		for range 1 + rng.Intn(5) {
			path = append(path, randPt())
		}
		half := rng.Float64() * 10

		batch, batchChanged := ErasePath(strokes, path, half)

		seq := strokes
		seqChanged := false
		for i := 1; i < len(path); i++ {
			var c bool
			seq, c = Erase(seq, path[i-1], path[i], half)
			seqChanged = seqChanged || c
		}

		if d := cmp.Diff(batch, seq); d != "" {
			t.Fatalf("trial %d: incremental and batch erasing differ (-batch +incremental):\n%s", trial, d)
		}
		if batchChanged != seqChanged {
			t.Fatalf("trial %d: changed flags differ: %t vs %t", trial, batchChanged, seqChanged)
		}
	}
}

func TestTouches(t *testing.T) {
	poly := &annotedit.Polygon{Vertices: []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}}
	callout := &annotedit.Callout{
		TextBox: rect.Rect{LLx: 50, LLy: 50, URx: 90, URy: 70},
		Start:   vec.Vec2{X: 0, Y: 100},
		Knee:    vec.Vec2{X: 20, Y: 80},
		End:     vec.Vec2{X: 50, Y: 60},
	}
	cases := []struct {
		name  string
		shape annotedit.Shape
		a, b  vec.Vec2
		want  bool
	}{
		{"crossing edge", poly, vec.Vec2{X: 5, Y: -5}, vec.Vec2{X: 5, Y: 5}, true},
		{"closing edge", poly, vec.Vec2{X: 6, Y: 4}, vec.Vec2{X: 6, Y: 4}, true},
		{"inside", poly, vec.Vec2{X: 6.6, Y: 3.3}, vec.Vec2{X: 6.6, Y: 3.3}, false},
		{"far away", poly, vec.Vec2{X: 50, Y: 50}, vec.Vec2{X: 60, Y: 50}, false},
		{"callout line", callout, vec.Vec2{X: 10, Y: 80}, vec.Vec2{X: 10, Y: 100}, true},
		{"callout box", callout, vec.Vec2{X: 70, Y: 40}, vec.Vec2{X: 70, Y: 49}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Touches(c.shape, c.a, c.b, 2); got != c.want {
				t.Errorf("Touches = %t, want %t", got, c.want)
			}
		})
	}
}
