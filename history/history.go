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

// Package history implements a generic pair of undo and redo stacks.
//
// The stacks know nothing about the edits they store.  Undo moves the most
// recent edit to the redo stack and hands it back to the caller, who is
// responsible for reverting it.  Redo does the reverse.  Any new edit
// pushed with [Stack.Push] makes the redo stack unreachable.
package history

// Stack is an undo/redo stack pair.  The zero value is an empty stack,
// ready to use.
type Stack[T any] struct {
	undo []T
	redo []T
}

// Push records a new edit.  This clears the redo stack.
func (s *Stack[T]) Push(edit T) {
	s.undo = append(s.undo, edit)
	clear(s.redo)
	s.redo = s.redo[:0]
}

// Undo moves the most recent edit from the undo stack to the redo stack
// and returns it.  If there is nothing to undo, the second return value
// is false.
func (s *Stack[T]) Undo() (T, bool) {
	edit, ok := pop(&s.undo)
	if ok {
		s.redo = append(s.redo, edit)
	}
	return edit, ok
}

// Redo moves the most recently undone edit back to the undo stack
// and returns it.  If there is nothing to redo, the second return value
// is false.
func (s *Stack[T]) Redo() (T, bool) {
	edit, ok := pop(&s.redo)
	if ok {
		s.undo = append(s.undo, edit)
	}
	return edit, ok
}

// Peek returns the most recent edit without removing it.
func (s *Stack[T]) Peek() (T, bool) {
	if len(s.undo) == 0 {
		var zero T
		return zero, false
	}
	return s.undo[len(s.undo)-1], true
}

// ReplaceTop overwrites the most recent edit.  This is used when an
// edit is refined after it was first recorded, for example when a stroke
// is finished.  The redo stack is not affected.
// ReplaceTop reports false if the undo stack is empty.
func (s *Stack[T]) ReplaceTop(edit T) bool {
	if len(s.undo) == 0 {
		return false
	}
	s.undo[len(s.undo)-1] = edit
	return true
}

// Drop discards the most recent edit without moving it to the redo stack.
// This rolls back an edit which was recorded optimistically and then
// abandoned.
func (s *Stack[T]) Drop() (T, bool) {
	return pop(&s.undo)
}

// CanUndo reports whether [Stack.Undo] would succeed.
func (s *Stack[T]) CanUndo() bool {
	return len(s.undo) > 0
}

// CanRedo reports whether [Stack.Redo] would succeed.
func (s *Stack[T]) CanRedo() bool {
	return len(s.redo) > 0
}

// UndoLen returns the number of edits on the undo stack.
func (s *Stack[T]) UndoLen() int {
	return len(s.undo)
}

// RedoLen returns the number of edits on the redo stack.
func (s *Stack[T]) RedoLen() int {
	return len(s.redo)
}

// Reset empties both stacks.
func (s *Stack[T]) Reset() {
	clear(s.undo)
	clear(s.redo)
	s.undo = s.undo[:0]
	s.redo = s.redo[:0]
}

func pop[T any](stack *[]T) (T, bool) {
	var zero T
	n := len(*stack)
	if n == 0 {
		return zero, false
	}
	edit := (*stack)[n-1]
	(*stack)[n-1] = zero
	*stack = (*stack)[:n-1]
	return edit, true
}
