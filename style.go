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
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Style is the visual style of a shape or an ink stroke.
//
// A Style is handed to an editing session once, when a shape or stroke is
// started, and is not changed while the shape is being drawn.
type Style struct {
	// Color is the stroke color.  The alpha component is ignored,
	// use Opacity instead.
	Color color.NRGBA

	// Opacity is the constant opacity of the shape, in the range 0 to 1.
	Opacity float64

	// Thickness is the line width in document units.
	Thickness float64

	// Stylus records whether the input came from a stylus rather than
	// from a finger.  Stylus ink is not smoothed.
	Stylus bool
}

// DefaultStyle is used when no style has been configured.
var DefaultStyle = Style{
	Color:     color.NRGBA{R: 0xE4, G: 0x46, B: 0x3B, A: 0xFF},
	Opacity:   1,
	Thickness: 1,
}

// SameAttributes reports whether two styles can be merged into one
// annotation.  The input device is not taken into account.
func (s Style) SameAttributes(other Style) bool {
	return s.rgb() == other.rgb() &&
		s.Opacity == other.Opacity &&
		s.Thickness == other.Thickness
}

func (s Style) rgb() [3]uint8 {
	return [3]uint8{s.Color.R, s.Color.G, s.Color.B}
}

// HexColor returns the stroke color in the form "#rrggbb".
func (s Style) HexColor() string {
	return fmt.Sprintf("#%02x%02x%02x", s.Color.R, s.Color.G, s.Color.B)
}

// ParseHexColor parses a color of the form "#rrggbb" or "rrggbb".
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}
