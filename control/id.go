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

package control

import "fmt"

// Op says what a gesture on a shape does.
type Op uint8

// These are the possible operations.
const (
	OpNone Op = iota
	OpVertex
	OpMoveWhole
)

// ID identifies the target of a gesture: one control point, the whole
// shape, or nothing.
type ID struct {
	Op Op

	// Index is the control point index, if Op is OpVertex.
	Index int
}

var (
	// None is the ID of a gesture which missed the shape.
	None = ID{}

	// MoveWhole is the ID of a gesture which moves the whole shape.
	MoveWhole = ID{Op: OpMoveWhole}
)

// Vertex returns the ID of control point i.
func Vertex(i int) ID {
	return ID{Op: OpVertex, Index: i}
}

// IsNone reports whether the gesture missed the shape.
func (id ID) IsNone() bool {
	return id.Op == OpNone
}

func (id ID) String() string {
	switch id.Op {
	case OpVertex:
		return fmt.Sprintf("vertex %d", id.Index)
	case OpMoveWhole:
		return "move whole"
	default:
		return "none"
	}
}

// Update describes how the bounding box was recomputed after the most
// recent change.
type Update uint8

// These are the possible bounding box updates.
const (
	UpdateNone Update = iota
	UpdateIncremental
	UpdateFull
	UpdateTranslate
)

func (u Update) String() string {
	switch u {
	case UpdateIncremental:
		return "incremental"
	case UpdateFull:
		return "full"
	case UpdateTranslate:
		return "translate"
	default:
		return "none"
	}
}
