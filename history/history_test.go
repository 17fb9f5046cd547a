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

package history

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUndoRedoOrder(t *testing.T) {
	var s Stack[int]
	for i := 1; i <= 3; i++ {
		s.Push(i)
	}

	var undone []int
	for s.CanUndo() {
		x, _ := s.Undo()
		undone = append(undone, x)
	}
	if d := cmp.Diff([]int{3, 2, 1}, undone); d != "" {
		t.Errorf("undo order (-want +got):\n%s", d)
	}

	var redone []int
	for s.CanRedo() {
		x, _ := s.Redo()
		redone = append(redone, x)
	}
	if d := cmp.Diff([]int{1, 2, 3}, redone); d != "" {
		t.Errorf("redo order (-want +got):\n%s", d)
	}
	if s.UndoLen() != 3 || s.RedoLen() != 0 {
		t.Errorf("got %d/%d edits, want 3/0", s.UndoLen(), s.RedoLen())
	}
}

func TestPushInvalidatesRedo(t *testing.T) {
	var s Stack[string]
	s.Push("a")
	s.Push("b")
	s.Undo()
	s.Push("c")

	if s.CanRedo() {
		t.Fatal("redo still possible after a new edit")
	}
	if x, ok := s.Redo(); ok {
		t.Errorf("Redo returned %q", x)
	}
	x, _ := s.Undo()
	if x != "c" {
		t.Errorf("Undo returned %q, want %q", x, "c")
	}
}

func TestEmpty(t *testing.T) {
	var s Stack[*int]
	if x, ok := s.Undo(); ok || x != nil {
		t.Errorf("Undo on empty stack returned %v, %t", x, ok)
	}
	if x, ok := s.Redo(); ok || x != nil {
		t.Errorf("Redo on empty stack returned %v, %t", x, ok)
	}
	if _, ok := s.Peek(); ok {
		t.Error("Peek on empty stack succeeded")
	}
	if s.ReplaceTop(nil) {
		t.Error("ReplaceTop on empty stack succeeded")
	}
	if _, ok := s.Drop(); ok {
		t.Error("Drop on empty stack succeeded")
	}
}

func TestReplaceAndDrop(t *testing.T) {
	var s Stack[int]
	s.Push(1)
	s.Push(2)
	s.Undo()

	// refining the top edit keeps the redo stack
	if !s.ReplaceTop(10) {
		t.Fatal("ReplaceTop failed")
	}
	if !s.CanRedo() {
		t.Error("ReplaceTop cleared the redo stack")
	}
	if x, _ := s.Peek(); x != 10 {
		t.Errorf("Peek returned %d, want 10", x)
	}

	// dropping does not make the edit redoable
	x, ok := s.Drop()
	if !ok || x != 10 {
		t.Errorf("Drop returned %d, %t", x, ok)
	}
	if s.CanUndo() {
		t.Error("undo stack not empty after Drop")
	}
	if s.RedoLen() != 1 {
		t.Errorf("redo stack has %d entries, want 1", s.RedoLen())
	}

	s.Reset()
	if s.CanUndo() || s.CanRedo() {
		t.Error("Reset left edits behind")
	}
}
