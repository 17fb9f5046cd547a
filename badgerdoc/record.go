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

package badgerdoc

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ulikunitz/xz/lzma"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotedit"
)

// The first byte of every stored record gives its encoding.
const (
	encPlain byte = 0
	encLZMA  byte = 1
)

var errCorrupt = errors.New("corrupt annotation record")

// record is the stored form of an annotation.
type record struct {
	Page     int
	Seq      uint64
	Revision uint64
	annotedit.Geometry
}

// marshal encodes r as a protobuf Struct.  Records larger than
// compressAbove bytes are compressed, unless compressAbove is negative.
func marshal(r *record, compressAbove int) ([]byte, error) {
	s, err := structpb.NewStruct(map[string]any{
		"kind":     r.Shape.Kind().String(),
		"page":     float64(r.Page),
		"seq":      float64(r.Seq),
		"revision": float64(r.Revision),
		"style":    styleMap(r.Style),
		"shape":    shapeMap(r.Shape),
	})
	if err != nil {
		return nil, err
	}
	data, err := proto.Marshal(s)
	if err != nil {
		return nil, err
	}

	if compressAbove < 0 || len(data) <= compressAbove {
		return append([]byte{encPlain}, data...), nil
	}
	buf := bytes.NewBuffer([]byte{encLZMA})
	w, err := lzma.NewWriter(buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func unmarshal(data []byte) (*record, error) {
	if len(data) == 0 {
		return nil, errCorrupt
	}
	body := data[1:]
	switch data[0] {
	case encPlain:
	case encLZMA:
		r, err := lzma.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errCorrupt, err)
		}
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(r); err != nil {
			return nil, fmt.Errorf("%w: %w", errCorrupt, err)
		}
		body = buf.Bytes()
	default:
		return nil, fmt.Errorf("%w: unknown encoding %d", errCorrupt, data[0])
	}

	s := &structpb.Struct{}
	if err := proto.Unmarshal(body, s); err != nil {
		return nil, fmt.Errorf("%w: %w", errCorrupt, err)
	}
	m := s.AsMap()

	d := &decoder{m: m}
	kindName := d.str("kind")
	r := &record{
		Page:     int(d.num("page")),
		Seq:      uint64(d.num("seq")),
		Revision: uint64(d.num("revision")),
	}
	r.Style = d.style(d.sub("style"))
	if d.err == nil {
		kind, err := annotedit.ParseKind(kindName)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errCorrupt, err)
		}
		r.Shape = d.shape(kind, d.sub("shape"))
	}
	if d.err != nil {
		return nil, d.err
	}
	return r, nil
}

func styleMap(s annotedit.Style) map[string]any {
	return map[string]any{
		"color":     s.HexColor(),
		"opacity":   s.Opacity,
		"thickness": s.Thickness,
		"stylus":    s.Stylus,
	}
}

func shapeMap(s annotedit.Shape) map[string]any {
	switch s := s.(type) {
	case *annotedit.Line:
		return map[string]any{
			"points": coords([]vec.Vec2{s.Start, s.End}),
			"arrow":  s.Arrow,
		}
	case *annotedit.Polyline:
		return map[string]any{"points": coords(s.Vertices)}
	case *annotedit.Polygon:
		return map[string]any{"points": coords(s.Vertices)}
	case *annotedit.Cloud:
		return map[string]any{
			"points":    coords(s.Vertices),
			"intensity": s.Intensity,
		}
	case *annotedit.Callout:
		b := s.TextBox
		return map[string]any{
			"box":    []any{b.LLx, b.LLy, b.URx, b.URy},
			"points": coords([]vec.Vec2{s.Start, s.Knee, s.End}),
		}
	case *annotedit.Ink:
		strokes := make([]any, len(s.Strokes))
		for i, stroke := range s.Strokes {
			strokes[i] = coords(stroke)
		}
		return map[string]any{"strokes": strokes}
	}
	return map[string]any{}
}

// coords flattens points into an x, y, x, y, ... list.
func coords(pts []vec.Vec2) []any {
	res := make([]any, 0, 2*len(pts))
	for _, p := range pts {
		res = append(res, p.X, p.Y)
	}
	return res
}

// decoder reads values from a decoded Struct.  After the first
// error, all methods return zero values.
type decoder struct {
	m   map[string]any
	err error
}

func (d *decoder) fail(key, want string) {
	if d.err == nil {
		d.err = fmt.Errorf("%w: field %q is not a %s", errCorrupt, key, want)
	}
}

func (d *decoder) num(key string) float64 {
	x, ok := d.m[key].(float64)
	if !ok {
		d.fail(key, "number")
	}
	return x
}

func (d *decoder) str(key string) string {
	x, ok := d.m[key].(string)
	if !ok {
		d.fail(key, "string")
	}
	return x
}

func (d *decoder) flag(key string) bool {
	x, _ := d.m[key].(bool)
	return x
}

func (d *decoder) sub(key string) *decoder {
	x, ok := d.m[key].(map[string]any)
	if !ok {
		d.fail(key, "struct")
	}
	return &decoder{m: x, err: d.err}
}

func (d *decoder) points(key string) []vec.Vec2 {
	pts, ok := toPoints(d.m[key])
	if !ok {
		d.fail(key, "coordinate list")
	}
	return pts
}

func (d *decoder) style(sub *decoder) annotedit.Style {
	var s annotedit.Style
	if sub.err != nil {
		return s
	}
	c, err := annotedit.ParseHexColor(sub.str("color"))
	if err != nil && sub.err == nil {
		sub.err = fmt.Errorf("%w: %w", errCorrupt, err)
	}
	s.Color = c
	s.Opacity = sub.num("opacity")
	s.Thickness = sub.num("thickness")
	s.Stylus = sub.flag("stylus")
	if d.err == nil {
		d.err = sub.err
	}
	return s
}

func (d *decoder) shape(kind annotedit.Kind, sub *decoder) annotedit.Shape {
	if sub.err != nil {
		return nil
	}
	var s annotedit.Shape
	switch kind {
	case annotedit.KindLine:
		pts := sub.points("points")
		if len(pts) == 2 {
			s = &annotedit.Line{Start: pts[0], End: pts[1], Arrow: sub.flag("arrow")}
		}
	case annotedit.KindPolyline:
		s = &annotedit.Polyline{Vertices: sub.points("points")}
	case annotedit.KindPolygon:
		s = &annotedit.Polygon{Vertices: sub.points("points")}
	case annotedit.KindCloud:
		s = &annotedit.Cloud{Vertices: sub.points("points"), Intensity: sub.num("intensity")}
	case annotedit.KindCallout:
		pts := sub.points("points")
		box, ok := toFloats(sub.m["box"])
		if len(pts) == 3 && ok && len(box) == 4 {
			s = &annotedit.Callout{
				TextBox: rect.Rect{LLx: box[0], LLy: box[1], URx: box[2], URy: box[3]},
				Start:   pts[0],
				Knee:    pts[1],
				End:     pts[2],
			}
		}
	case annotedit.KindInk:
		list, ok := sub.m["strokes"].([]any)
		if !ok {
			sub.fail("strokes", "list")
			break
		}
		ink := &annotedit.Ink{Strokes: make([][]vec.Vec2, len(list))}
		for i, x := range list {
			pts, ok := toPoints(x)
			if !ok {
				sub.fail("strokes", "list of coordinate lists")
				break
			}
			ink.Strokes[i] = pts
		}
		s = ink
	}
	if s == nil && sub.err == nil {
		sub.err = fmt.Errorf("%w: malformed %s", errCorrupt, kind)
	}
	if d.err == nil {
		d.err = sub.err
	}
	return s
}

func toFloats(v any) ([]float64, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	res := make([]float64, len(list))
	for i, x := range list {
		f, ok := x.(float64)
		if !ok {
			return nil, false
		}
		res[i] = f
	}
	return res, true
}

func toPoints(v any) ([]vec.Vec2, bool) {
	xs, ok := toFloats(v)
	if !ok || len(xs)%2 != 0 {
		return nil, false
	}
	pts := make([]vec.Vec2, len(xs)/2)
	for i := range pts {
		pts[i] = vec.Vec2{X: xs[2*i], Y: xs[2*i+1]}
	}
	return pts, true
}
