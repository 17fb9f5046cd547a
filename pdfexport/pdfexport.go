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

// Package pdfexport writes annotations to a new PDF file, one PDF page
// per document page.
package pdfexport

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotedit"
	"seehuhn.de/go/annotedit/internal/paint"
)

// Page is one page of the exported file.
type Page struct {
	Box         rect.Rect
	Annotations []*annotedit.Annotation
}

// Options controls the output.  A nil *Options is valid.
type Options struct {
	Title   string
	Creator string

	// CreationDate is stored in the document information dictionary.
	// If zero, the current time is used.
	CreationDate time.Time

	// Uncompressed disables compression of the content streams.
	Uncompressed bool
}

// Collect reads the annotations of all pages from a document.
// Page numbers start at 1, boxes[i] is the crop box of page i+1.
func Collect(doc annotedit.Reader, boxes []rect.Rect) ([]Page, error) {
	pages := make([]Page, len(boxes))
	for i, box := range boxes {
		annots, err := doc.Annotations(i + 1)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		pages[i] = Page{Box: box, Annotations: annots}
	}
	return pages, nil
}

// Write writes a PDF file showing the given pages.
func Write(w io.Writer, pages []Page, opt *Options) error {
	if opt == nil {
		opt = &Options{}
	}
	if len(pages) == 0 {
		return fmt.Errorf("no pages to export")
	}

	f := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    size(pages[0].Box),
	})
	f.SetAutoPageBreak(false, 0)
	f.SetMargins(0, 0, 0)
	f.SetCompression(!opt.Uncompressed)
	if opt.Title != "" {
		f.SetTitle(opt.Title, true)
	}
	if opt.Creator != "" {
		f.SetCreator(opt.Creator, true)
	}
	if !opt.CreationDate.IsZero() {
		f.SetCreationDate(opt.CreationDate)
	}
	f.SetLineCapStyle("round")
	f.SetLineJoinStyle("round")

	for _, page := range pages {
		f.AddPageFormat("P", size(page.Box))
		p := &painter{f: f, box: page.Box}
		for _, a := range page.Annotations {
			p.style(a.Style)
			paint.Draw(p, a.Shape, a.Style.Thickness)
		}
		f.SetAlpha(1, "Normal")
	}
	if err := f.Error(); err != nil {
		return err
	}
	return f.Output(w)
}

func size(box rect.Rect) gofpdf.SizeType {
	return gofpdf.SizeType{Wd: box.URx - box.LLx, Ht: box.URy - box.LLy}
}

// painter implements paint.Painter for gofpdf, which places the origin
// in the top left corner of the page.
type painter struct {
	f   *gofpdf.Fpdf
	box rect.Rect
}

func (p *painter) style(s annotedit.Style) {
	r, g, b := int(s.Color.R), int(s.Color.G), int(s.Color.B)
	p.f.SetDrawColor(r, g, b)
	p.f.SetFillColor(r, g, b)
	p.f.SetLineWidth(s.Thickness)
	p.f.SetAlpha(min(max(s.Opacity, 0), 1), "Normal")
}

func (p *painter) xy(v vec.Vec2) (float64, float64) {
	return v.X - p.box.LLx, p.box.URy - v.Y
}

func (p *painter) MoveTo(v vec.Vec2) {
	p.f.MoveTo(p.xy(v))
}

func (p *painter) LineTo(v vec.Vec2) {
	p.f.LineTo(p.xy(v))
}

func (p *painter) CubeTo(c1, c2, v vec.Vec2) {
	x1, y1 := p.xy(c1)
	x2, y2 := p.xy(c2)
	x, y := p.xy(v)
	p.f.CurveBezierCubicTo(x1, y1, x2, y2, x, y)
}

func (p *painter) Close() {
	p.f.ClosePath()
}

func (p *painter) Stroke() {
	p.f.DrawPath("D")
}

func (p *painter) Fill() {
	p.f.DrawPath("F")
}
