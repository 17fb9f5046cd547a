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

// Package annotedit holds the vocabulary shared by the interactive
// annotation editor: shape kinds, styles, the closed set of shapes,
// and the interfaces through which the editor talks to its host.
//
// The editor turns pointer gestures into geometry.  The geometry of
// record is always kept in document space, which is stable and
// page-relative.  Screen space is only used for hit-testing and for
// drawing, and every screen-space value is recomputed through a [Bridge]
// after scrolling or zooming.
//
// The sub-packages implement the individual parts:
//
//   - [seehuhn.de/go/annotedit/history]: the generic undo/redo stack
//   - [seehuhn.de/go/annotedit/vertex]: accumulation of polyline and polygon vertices
//   - [seehuhn.de/go/annotedit/ink]: the multi-stroke freehand ink store
//   - [seehuhn.de/go/annotedit/eraser]: proximity based erasing of ink points
//   - [seehuhn.de/go/annotedit/control]: reshaping committed shapes by their control points
//   - [seehuhn.de/go/annotedit/commit]: materialising geometry through a [Document]
//   - [seehuhn.de/go/annotedit/tool]: the gesture state machines tying it all together
package annotedit
