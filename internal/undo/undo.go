// SPDX-FileCopyrightText:  Copyright 2026 the tedit contributors
// SPDX-License-Identifier: MIT
//
// Project:  tedit
// File:     undo.go
//
// =============================================================================

// Package undo implements the editor's undo/redo history: a doubly-linked
// sequence of edit records with a cursor marking the last applied forward
// edit, and three coalescing rules that fold runs of single-byte edits
// (typing, backspacing, forward-deleting) into one record.
package undo

// Record describes one edit: it removed Erased bytes at Pos and inserted
// Inserted bytes in their place. Either may be empty, but not both (such an
// edit would be a no-op and is never recorded).
type Record struct {
	Pos      int
	Erased   []byte
	Inserted []byte

	prev, next *Record
}

// Log is the undo/redo history of a single document.
//
// The zero value is ready to use.
type Log struct {
	head, tail, cursor *Record
}

// Record appends a new edit to the log, truncating any redo history beyond
// the cursor first, then attempting to coalesce with the current tail.
// Coalescing applies only when the incoming edit is a single byte:
//
//   - append-insert: tail is a pure insertion and the new edit is a
//     single-byte insertion immediately following it.
//   - append-erase-right (forward delete): tail is a pure erase and the new
//     edit erases a single byte at the same position, repeatedly consuming
//     what slides into that position.
//   - append-erase-left (backspace): tail is a pure erase and the new edit
//     erases the single byte immediately before it; the byte is prepended
//     to the existing erased payload so it reads in buffer order.
//
// Any other edit starts a new record.
func (l *Log) Record(pos int, erased, inserted []byte) {
	if len(erased) == 0 && len(inserted) == 0 {
		return
	}
	l.truncateAfterCursor()
	if l.coalesce(pos, erased, inserted) {
		return
	}
	rec := &Record{
		Pos:      pos,
		Erased:   append([]byte(nil), erased...),
		Inserted: append([]byte(nil), inserted...),
		prev:     l.tail,
	}
	if l.tail != nil {
		l.tail.next = rec
	} else {
		l.head = rec
	}
	l.tail = rec
	l.cursor = rec
}

func (l *Log) truncateAfterCursor() {
	if l.cursor == nil {
		l.head, l.tail = nil, nil
		return
	}
	l.cursor.next = nil
	l.tail = l.cursor
}

func (l *Log) coalesce(pos int, erased, inserted []byte) bool {
	t := l.tail
	if t == nil {
		return false
	}
	pureInsert := len(t.Erased) == 0 && len(t.Inserted) > 0
	pureErase := len(t.Inserted) == 0 && len(t.Erased) > 0

	switch {
	case pureInsert && len(erased) == 0 && len(inserted) == 1 && pos == t.Pos+len(t.Inserted):
		t.Inserted = append(t.Inserted, inserted[0])
	case pureErase && len(inserted) == 0 && len(erased) == 1 && pos == t.Pos:
		t.Erased = append(t.Erased, erased[0])
	case pureErase && len(inserted) == 0 && len(erased) == 1 && pos == t.Pos-1:
		t.Erased = append([]byte{erased[0]}, t.Erased...)
		t.Pos--
	default:
		return false
	}
	l.cursor = t
	return true
}

// Undo returns the record at the cursor (nil, false if the cursor is
// already before the head) and moves the cursor one step toward the head.
// The caller applies the record inverted: insert Erased at Pos, erase
// len(Inserted) bytes from Pos.
func (l *Log) Undo() (*Record, bool) {
	if l.cursor == nil {
		return nil, false
	}
	r := l.cursor
	l.cursor = l.cursor.prev
	return r, true
}

// Redo moves the cursor one step toward the tail (from NIL to head, or to
// cursor.next) and returns the record now under the cursor for the caller
// to apply forward: erase Erased bytes at Pos, insert Inserted.
func (l *Log) Redo() (*Record, bool) {
	var next *Record
	if l.cursor == nil {
		next = l.head
	} else {
		next = l.cursor.next
	}
	if next == nil {
		return nil, false
	}
	l.cursor = next
	return next, true
}

// AtBaseline reports whether the cursor is before the head, i.e. every
// recorded edit has been undone.
func (l *Log) AtBaseline() bool {
	return l.cursor == nil
}

// Clear releases every record. The log never coalesces across this
// boundary: the next Record call always starts a fresh record.
func (l *Log) Clear() {
	l.head, l.tail, l.cursor = nil, nil, nil
}
