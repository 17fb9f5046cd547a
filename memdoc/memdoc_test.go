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

package memdoc

import (
	"errors"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotedit"
)

var testStyle = annotedit.Style{Color: color.NRGBA{G: 128, A: 255}, Opacity: 0.5, Thickness: 3}

func TestLifecycle(t *testing.T) {
	d := New()
	require.NoError(t, d.BeginExclusiveEdit())

	line := &annotedit.Line{Start: vec.Vec2{X: 1, Y: 2}, End: vec.Vec2{X: 3, Y: 4}}
	h, err := d.CreateAnnotation(annotedit.KindLine, 2, annotedit.Geometry{Style: testStyle, Shape: line})
	require.NoError(t, err)
	require.NotEmpty(t, h)

	// the document keeps its own copy
	line.End = vec.Vec2{X: 100, Y: 100}

	a, err := d.Annotation(h)
	require.NoError(t, err)
	want := &annotedit.Annotation{
		Handle: h,
		Page:   2,
		Geometry: annotedit.Geometry{
			Style: testStyle,
			Shape: &annotedit.Line{Start: vec.Vec2{X: 1, Y: 2}, End: vec.Vec2{X: 3, Y: 4}},
		},
		Revision: 1,
	}
	if diff := cmp.Diff(want, a); diff != "" {
		t.Errorf("annotation (-want +got):\n%s", diff)
	}

	require.NoError(t, d.UpdateAnnotation(h, annotedit.Geometry{Style: testStyle, Shape: line}))
	a, err = d.Annotation(h)
	require.NoError(t, err)
	require.Equal(t, uint64(2), a.Revision)

	require.NoError(t, d.RemoveAnnotation(h))
	_, err = d.Annotation(h)
	require.ErrorIs(t, err, annotedit.ErrNotFound)
	require.ErrorIs(t, d.RemoveAnnotation(h), annotedit.ErrNotFound)

	d.EndExclusiveEdit()
	require.False(t, d.Locked())
}

func TestLocking(t *testing.T) {
	d := New()
	poly := &annotedit.Polyline{Vertices: []vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}}}
	_, err := d.CreateAnnotation(annotedit.KindPolyline, 1, annotedit.Geometry{Shape: poly})
	require.ErrorIs(t, err, annotedit.ErrNotLocked)

	require.NoError(t, d.BeginExclusiveEdit())
	require.ErrorIs(t, d.BeginExclusiveEdit(), annotedit.ErrLocked)
	d.EndExclusiveEdit()
	require.NoError(t, d.BeginExclusiveEdit())
	d.EndExclusiveEdit()
}

func TestRejectsInvalidGeometry(t *testing.T) {
	d := New()
	require.NoError(t, d.BeginExclusiveEdit())
	defer d.EndExclusiveEdit()

	poly := &annotedit.Polygon{Vertices: []vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}}}
	_, err := d.CreateAnnotation(annotedit.KindPolygon, 1, annotedit.Geometry{Shape: poly})
	var geomErr *annotedit.InvalidGeometryError
	require.True(t, errors.As(err, &geomErr))

	_, err = d.CreateAnnotation(annotedit.KindLine, 1, annotedit.Geometry{Shape: poly})
	require.True(t, errors.As(err, &geomErr))
	require.Zero(t, d.Len())
}

func TestAnnotationsByPage(t *testing.T) {
	d := New()
	require.NoError(t, d.BeginExclusiveEdit())
	var handles []annotedit.Handle
	for i, page := range []int{1, 2, 1} {
		line := &annotedit.Line{End: vec.Vec2{X: float64(i + 1), Y: 0}}
		h, err := d.CreateAnnotation(annotedit.KindLine, page, annotedit.Geometry{Shape: line})
		require.NoError(t, err)
		handles = append(handles, h)
	}
	d.EndExclusiveEdit()

	annots, err := d.Annotations(1)
	require.NoError(t, err)
	var got []annotedit.Handle
	for _, a := range annots {
		got = append(got, a.Handle)
	}
	require.Equal(t, []annotedit.Handle{handles[0], handles[2]}, got)
}
