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
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotedit"
	"seehuhn.de/go/annotedit/internal/planar"
	"seehuhn.de/go/annotedit/tool"
	"seehuhn.de/go/annotedit/viewport"
)

// Script is a recorded editing session.  Coordinates are screen
// coordinates.
type Script struct {
	// Pages lists the page sizes, either as [width, height] or as
	// [llx, lly, urx, ury].  The default is a single A4 page.
	Pages [][]float64 `yaml:"pages"`
	Gap   float64     `yaml:"gap"`
	Steps []Step      `yaml:"steps"`
}

// Step is one action of a script.  Exactly one field must be set.
type Step struct {
	Mode   string        `yaml:"mode"`
	Tap    []float64     `yaml:"tap"`
	Drag   [][]float64   `yaml:"drag"`
	Wait   time.Duration `yaml:"wait"`
	Edit   *EditRef      `yaml:"edit"`
	Zoom   float64       `yaml:"zoom"`
	Scroll []float64     `yaml:"scroll"`
	Do     string        `yaml:"do"`
}

// EditRef selects an annotation by its position on a page.
type EditRef struct {
	Page  int `yaml:"page"`
	Index int `yaml:"index"`
}

var a4 = rect.Rect{URx: 595, URy: 842}

// readScript reads a script file.
func readScript(fname string) (*Script, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	s, err := parseScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return s, nil
}

func parseScript(data []byte) (*Script, error) {
	s := &Script{}
	if err := yaml.UnmarshalStrict(data, s); err != nil {
		return nil, err
	}
	if s.Gap == 0 {
		s.Gap = 10
	}
	return s, nil
}

// Boxes returns the crop boxes of the pages.
func (s *Script) Boxes() ([]rect.Rect, error) {
	if len(s.Pages) == 0 {
		return []rect.Rect{a4}, nil
	}
	boxes := make([]rect.Rect, len(s.Pages))
	for i, p := range s.Pages {
		switch len(p) {
		case 2:
			boxes[i] = rect.Rect{URx: p[0], URy: p[1]}
		case 4:
			boxes[i] = rect.Rect{LLx: p[0], LLy: p[1], URx: p[2], URy: p[3]}
		default:
			return nil, fmt.Errorf("page %d: need 2 or 4 numbers, got %d", i+1, len(p))
		}
		boxes[i] = planar.Normalize(boxes[i])
		if planar.IsEmpty(boxes[i]) {
			return nil, fmt.Errorf("page %d is empty", i+1)
		}
	}
	return boxes, nil
}

// player replays the steps of a script.
type player struct {
	session *tool.Session
	view    *viewport.Viewport
	doc     annotedit.Reader
	now     time.Time
}

func newPlayer(doc annotedit.Document, view *viewport.Viewport, env tool.Env) *player {
	p := &player{
		view: view,
		doc:  doc,
		now:  time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	env.Doc = doc
	env.Bridge = view
	env.Now = func() time.Time { return p.now }
	p.session = tool.NewSession(env)
	return p
}

// Play runs all steps and then writes pending geometry to the document.
func (p *player) Play(steps []Step) error {
	for i, st := range steps {
		if err := p.step(st); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	p.session.Finish()
	return nil
}

var errEmptyStep = errors.New("empty step")

func (p *player) step(st Step) error {
	s := p.session
	switch {
	case st.Mode != "":
		m, err := tool.ParseMode(st.Mode)
		if err != nil {
			return err
		}
		return s.SetMode(m)

	case st.Tap != nil:
		pt, err := point(st.Tap)
		if err != nil {
			return err
		}
		s.Down(pt)
		s.Up(pt)

	case st.Drag != nil:
		if len(st.Drag) < 2 {
			return errors.New("drag needs at least two points")
		}
		pts := make([]vec.Vec2, len(st.Drag))
		for i, c := range st.Drag {
			var err error
			if pts[i], err = point(c); err != nil {
				return err
			}
		}
		s.Down(pts[0])
		for _, pt := range pts[1 : len(pts)-1] {
			s.Move(pt)
		}
		s.Up(pts[len(pts)-1])

	case st.Wait > 0:
		p.now = p.now.Add(st.Wait)
		s.Tick(p.now)

	case st.Edit != nil:
		annots, err := p.doc.Annotations(st.Edit.Page)
		if err != nil {
			return err
		}
		if st.Edit.Index < 0 || st.Edit.Index >= len(annots) {
			return fmt.Errorf("page %d has no annotation %d", st.Edit.Page, st.Edit.Index)
		}
		return s.Edit(annots[st.Edit.Index].Handle)

	case st.Zoom > 0:
		p.view.SetZoom(st.Zoom)

	case st.Scroll != nil:
		pt, err := point(st.Scroll)
		if err != nil {
			return err
		}
		p.view.ScrollTo(pt)

	case st.Do != "":
		return p.do(st.Do)

	default:
		return errEmptyStep
	}
	return nil
}

type clearer interface {
	Clear() bool
}

func (p *player) do(action string) error {
	s := p.session
	switch action {
	case "finish":
		s.Finish()
	case "cancel":
		s.Cancel()
	case "undo":
		s.Undo()
	case "redo":
		s.Redo()
	case "clear":
		if c, ok := s.Tool().(clearer); ok {
			c.Clear()
		}
	case "erase", "draw":
		f, ok := s.Tool().(*tool.Freehand)
		if !ok {
			return fmt.Errorf("%q needs the freehand tool, not %s", action, s.Mode())
		}
		f.SetEraser(action == "erase")
	default:
		return fmt.Errorf("unknown action %q", action)
	}
	return nil
}

func point(c []float64) (vec.Vec2, error) {
	if len(c) != 2 {
		return vec.Vec2{}, fmt.Errorf("need 2 coordinates, got %d", len(c))
	}
	return vec.Vec2{X: c[0], Y: c[1]}, nil
}
