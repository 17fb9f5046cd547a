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

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotedit"
	"seehuhn.de/go/annotedit/memdoc"
	"seehuhn.de/go/annotedit/tool"
	"seehuhn.de/go/annotedit/viewport"
)

const testScript = `
pages:
  - [600, 800]
  - [0, 0, 300, 400]
steps:
  - mode: polygon
  - tap: [10, 790]
  - tap: [50, 790]
  - tap: [50, 750]
  - do: finish
  - mode: freehand
  - drag: [[10, 10], [20, 10], [30, 10]]
  - mode: pan
`

func play(t *testing.T, src string) (*memdoc.Document, *Script) {
	t.Helper()
	script, err := parseScript([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	boxes, err := script.Boxes()
	if err != nil {
		t.Fatal(err)
	}
	doc := memdoc.New()
	p := newPlayer(doc, viewport.New(boxes, script.Gap), tool.Env{
		Style:    annotedit.DefaultStyle,
		Settings: tool.DefaultSettings(),
	})
	if err := p.Play(script.Steps); err != nil {
		t.Fatal(err)
	}
	return doc, script
}

func TestPlay(t *testing.T) {
	doc, script := play(t, testScript)

	boxes, _ := script.Boxes()
	wantBoxes := []rect.Rect{{URx: 600, URy: 800}, {URx: 300, URy: 400}}
	if d := cmp.Diff(wantBoxes, boxes); d != "" {
		t.Errorf("boxes (-want +got):\n%s", d)
	}

	annots, err := doc.Annotations(1)
	if err != nil {
		t.Fatal(err)
	}
	var got []annotedit.Shape
	for _, a := range annots {
		got = append(got, a.Shape)
	}
	want := []annotedit.Shape{
		&annotedit.Polygon{Vertices: []vec.Vec2{{X: 10, Y: 10}, {X: 50, Y: 10}, {X: 50, Y: 50}}},
		&annotedit.Ink{Strokes: [][]vec.Vec2{{{X: 10, Y: 790}, {X: 20, Y: 790}, {X: 30, Y: 790}}}},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("annotations (-want +got):\n%s", d)
	}
}

func TestPlayErrors(t *testing.T) {
	cases := []string{
		"steps:\n  - {}\n",
		"steps:\n  - mode: teleport\n",
		"steps:\n  - tap: [1, 2, 3]\n",
		"steps:\n  - drag: [[1, 2]]\n",
		"steps:\n  - do: dance\n",
		"steps:\n  - do: erase\n",
		"steps:\n  - edit: {page: 1, index: 0}\n",
	}
	for _, src := range cases {
		script, err := parseScript([]byte(src))
		if err != nil {
			t.Errorf("%q: %v", src, err)
			continue
		}
		p := newPlayer(memdoc.New(), viewport.New([]rect.Rect{a4}, 10), tool.Env{})
		if err := p.Play(script.Steps); err == nil {
			t.Errorf("%q: expected an error", src)
		}
	}
}

func TestBadPages(t *testing.T) {
	for _, src := range []string{"pages: [[1]]\n", "pages: [[0, 100]]\n"} {
		script, err := parseScript([]byte(src))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := script.Boxes(); err == nil {
			t.Errorf("%q: expected an error", src)
		}
	}
}

func TestOutputFormat(t *testing.T) {
	cases := []struct {
		format, fname, want string
	}{
		{"", "", "pdf"},
		{"", "out.PNG", "png"},
		{"", "out.tif", "tiff"},
		{"", "out.bmp", "bmp"},
		{"png", "out.pdf", "png"},
	}
	for _, c := range cases {
		got, err := outputFormat(c.format, c.fname)
		if err != nil || got != c.want {
			t.Errorf("outputFormat(%q, %q) = %q, %v", c.format, c.fname, got, err)
		}
	}
	if _, err := outputFormat("gif", ""); err == nil {
		t.Error("gif was accepted")
	}
}

func TestExport(t *testing.T) {
	doc, script := play(t, testScript)
	boxes, _ := script.Boxes()

	buf := &bytes.Buffer{}
	if err := export(buf, doc, boxes, "pdf"); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "%PDF-") {
		t.Error("output is not a PDF file")
	}

	buf.Reset()
	if err := export(buf, doc, boxes, "png"); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not a PNG file")
	}
}
