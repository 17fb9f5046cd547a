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

import "fmt"

// Kind identifies one of the shape kinds the editor can create and reshape.
type Kind int

// These are the supported shape kinds.
const (
	KindLine Kind = iota + 1
	KindPolyline
	KindPolygon
	KindCloud
	KindCallout
	KindInk
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "Line"
	case KindPolyline:
		return "Polyline"
	case KindPolygon:
		return "Polygon"
	case KindCloud:
		return "Cloud"
	case KindCallout:
		return "Callout"
	case KindInk:
		return "Ink"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts the name returned by [Kind.String] back into a Kind.
func ParseKind(s string) (Kind, error) {
	for k := KindLine; k <= KindInk; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown shape kind %q", s)
}

// MinVertices returns the minimal number of vertices a shape of this kind
// needs before it can be committed.  For ink, the value refers to the
// number of non-empty strokes.
func (k Kind) MinVertices() int {
	switch k {
	case KindLine, KindPolyline:
		return 2
	case KindPolygon, KindCloud, KindCallout:
		return 3
	case KindInk:
		return 1
	default:
		return 0
	}
}
