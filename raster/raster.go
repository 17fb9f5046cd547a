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

// Package raster draws annotations into images, for previews and
// thumbnails.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotedit"
	"seehuhn.de/go/annotedit/internal/paint"
)

// discSides is the number of sides of the polygons used for round line
// joins and caps.
const discSides = 12

// Render draws the annotations of one page.  Scale is the number of
// pixels per document unit.  The page is drawn on a white background.
func Render(page rect.Rect, annots []*annotedit.Annotation, scale float64) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	w := max(1, int(math.Ceil((page.URx-page.LLx)*scale)))
	h := max(1, int(math.Ceil((page.URy-page.LLy)*scale)))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(img, img.Bounds(), image.White, image.Point{}, xdraw.Src)

	r := &renderer{
		img:   img,
		ras:   vector.NewRasterizer(w, h),
		page:  page,
		scale: scale,
	}
	for _, a := range annots {
		r.color = image.NewUniform(toColor(a.Style))
		r.width = max(a.Style.Thickness*scale, 1)
		paint.Draw(r, a.Shape, a.Style.Thickness)
	}
	return img
}

// Thumbnail scales img down so that neither side exceeds size pixels.
// Smaller images are returned unchanged.
func Thumbnail(img image.Image, size int) image.Image {
	b := img.Bounds()
	if size <= 0 || (b.Dx() <= size && b.Dy() <= size) {
		return img
	}
	f := float64(size) / float64(max(b.Dx(), b.Dy()))
	w := max(1, int(math.Round(float64(b.Dx())*f)))
	h := max(1, int(math.Round(float64(b.Dy())*f)))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// Encode writes img in the given format: "png", "tiff" or "bmp".
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "", "png":
		return png.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case "bmp":
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("unsupported image format %q", format)
}

func toColor(s annotedit.Style) color.NRGBA {
	c := s.Color
	c.A = uint8(math.Round(min(max(s.Opacity, 0), 1) * 255))
	return c
}

type subpath struct {
	pts    []vec.Vec2
	closed bool
}

// renderer implements paint.Painter on top of a vector.Rasterizer.
// Paths are flattened to polygons in device space.
type renderer struct {
	img   *image.RGBA
	ras   *vector.Rasterizer
	page  rect.Rect
	scale float64

	color *image.Uniform
	width float64

	path []subpath
}

func (r *renderer) device(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: (p.X - r.page.LLx) * r.scale,
		Y: (r.page.URy - p.Y) * r.scale,
	}
}

func (r *renderer) current() *subpath {
	if len(r.path) == 0 {
		r.path = append(r.path, subpath{})
	}
	return &r.path[len(r.path)-1]
}

func (r *renderer) MoveTo(p vec.Vec2) {
	r.path = append(r.path, subpath{pts: []vec.Vec2{r.device(p)}})
}

func (r *renderer) LineTo(p vec.Vec2) {
	sp := r.current()
	sp.pts = append(sp.pts, r.device(p))
}

func (r *renderer) CubeTo(c1, c2, p vec.Vec2) {
	sp := r.current()
	if len(sp.pts) == 0 {
		sp.pts = append(sp.pts, r.device(c1))
	}
	p0 := sp.pts[len(sp.pts)-1]
	p1, p2, p3 := r.device(c1), r.device(c2), r.device(p)

	l := p1.Sub(p0).Length() + p2.Sub(p1).Length() + p3.Sub(p2).Length()
	n := max(4, int(math.Ceil(l/2)))
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		q := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		sp.pts = append(sp.pts, q)
	}
}

func (r *renderer) Close() {
	if len(r.path) > 0 {
		r.current().closed = true
	}
}

func (r *renderer) Fill() {
	r.ras.Reset(r.img.Bounds().Dx(), r.img.Bounds().Dy())
	for _, sp := range r.path {
		if len(sp.pts) < 3 {
			continue
		}
		r.ras.MoveTo(float32(sp.pts[0].X), float32(sp.pts[0].Y))
		for _, p := range sp.pts[1:] {
			r.ras.LineTo(float32(p.X), float32(p.Y))
		}
		r.ras.ClosePath()
	}
	r.draw()
}

// Stroke draws every segment as a rectangle and every point as a small
// disc.  All pieces have the same orientation, so that their overlap is
// not cancelled out by the non-zero winding rule.
func (r *renderer) Stroke() {
	r.ras.Reset(r.img.Bounds().Dx(), r.img.Bounds().Dy())
	half := r.width / 2
	for _, sp := range r.path {
		pts := sp.pts
		if sp.closed && len(pts) > 1 {
			pts = append(pts, pts[0])
		}
		for i, p := range pts {
			r.disc(p, half)
			if i > 0 {
				r.segment(pts[i-1], p, half)
			}
		}
	}
	r.draw()
}

func (r *renderer) segment(a, b vec.Vec2, half float64) {
	d := b.Sub(a)
	l := d.Length()
	if l == 0 {
		return
	}
	n := vec.Vec2{X: -d.Y, Y: d.X}.Mul(half / l)
	r.polygon(a.Add(n), b.Add(n), b.Sub(n), a.Sub(n))
}

func (r *renderer) disc(c vec.Vec2, radius float64) {
	pts := make([]vec.Vec2, discSides)
	for k := range pts {
		sin, cos := math.Sincos(-2 * math.Pi * float64(k) / discSides)
		pts[k] = c.Add(vec.Vec2{X: radius * cos, Y: radius * sin})
	}
	r.polygon(pts...)
}

func (r *renderer) polygon(pts ...vec.Vec2) {
	r.ras.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		r.ras.LineTo(float32(p.X), float32(p.Y))
	}
	r.ras.ClosePath()
}

func (r *renderer) draw() {
	r.ras.Draw(r.img, r.img.Bounds(), r.color, image.Point{})
	r.path = r.path[:0]
}
