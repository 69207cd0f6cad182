// SPDX-FileCopyrightText:  Copyright 2026 the tedit contributors
// SPDX-License-Identifier: MIT
//
// Project:  tedit
// File:     workspace.go
//
// =============================================================================

package editor

import "fmt"

// node is one element of the circular document ring.
type node struct {
	doc        *Document
	prev, next *node
}

// Workspace is the circular ring of open Documents plus the clipboard and
// last-search state shared across them, per spec.md §4.4.
type Workspace struct {
	current   *node
	clipboard []byte
	search    string
	untitledN int
}

// NewWorkspace returns an empty workspace.
func NewWorkspace() *Workspace {
	return &Workspace{}
}

// Current returns the focused document, or nil if the workspace is empty.
func (w *Workspace) Current() *Document {
	if w.current == nil {
		return nil
	}
	return w.current.doc
}

// Empty reports whether the workspace holds no documents.
func (w *Workspace) Empty() bool { return w.current == nil }

func (w *Workspace) nextUntitledName() string {
	w.untitledN++
	return fmt.Sprintf("Untitled-%d", w.untitledN)
}

// splice inserts doc into the ring immediately after current and focuses
// it, per spec.md §4.4's create_document.
func (w *Workspace) splice(doc *Document) *node {
	n := &node{doc: doc}
	if w.current == nil {
		n.prev, n.next = n, n
		w.current = n
		return n
	}
	n.prev = w.current
	n.next = w.current.next
	w.current.next.prev = n
	w.current.next = n
	w.current = n
	return n
}

// CreateDocument opens a fresh untitled document in the ring.
func (w *Workspace) CreateDocument() *Document {
	doc := NewUntitled(w.nextUntitledName())
	w.splice(doc)
	return doc
}

// AddStdin splices an ingested-stdin document into the ring.
func (w *Workspace) AddStdin(data []byte) *Document {
	doc := FromStdin(data)
	w.splice(doc)
	return doc
}

// FindByPath returns the open document whose filename matches name after
// canonicalization, if any.
func (w *Workspace) FindByPath(name string) (*Document, bool) {
	if w.current == nil {
		return nil, false
	}
	path := canonical(name)
	for n := w.current; ; {
		if n.doc.filename == path {
			return n.doc, true
		}
		n = n.next
		if n == w.current {
			return nil, false
		}
	}
}

// Open focuses name if it is already open, otherwise loads and splices it.
func (w *Workspace) Open(name string) (*Document, error) {
	if doc, ok := w.FindByPath(name); ok {
		w.focus(doc)
		return doc, nil
	}
	doc, err := Open(name)
	if err != nil {
		return nil, err
	}
	w.splice(doc)
	return doc, nil
}

func (w *Workspace) focus(doc *Document) {
	if w.current == nil {
		return
	}
	for n := w.current; ; {
		if n.doc == doc {
			w.current = n
			return
		}
		n = n.next
		if n == w.current {
			return
		}
	}
}

// Close unsplices doc from the ring; if doc was current, focus moves to
// its former predecessor. It returns true if the ring is now empty, in which case the caller
// should either create a fresh untitled document or exit, per
// spec.md §3.
func (w *Workspace) Close(doc *Document) bool {
	if w.current == nil {
		return true
	}
	var target *node
	for n := w.current; ; {
		if n.doc == doc {
			target = n
			break
		}
		n = n.next
		if n == w.current {
			break
		}
	}
	if target == nil {
		return w.current == nil
	}
	if target.next == target {
		w.current = nil
		return true
	}
	target.prev.next = target.next
	target.next.prev = target.prev
	if w.current == target {
		w.current = target.prev
	}
	return false
}

// Next rotates the current document forward in the ring (Shift-Tab).
func (w *Workspace) Next() *Document {
	if w.current == nil {
		return nil
	}
	w.current = w.current.next
	return w.current.doc
}

// Prev rotates the current document backward in the ring (Ctrl-Tab).
func (w *Workspace) Prev() *Document {
	if w.current == nil {
		return nil
	}
	w.current = w.current.prev
	return w.current.doc
}

// LastSearch returns the most recently queried search needle.
func (w *Workspace) LastSearch() string { return w.search }

// SetLastSearch records the search needle for subsequent find-next calls.
func (w *Workspace) SetLastSearch(s string) { w.search = s }

// Find searches the current document. If next is false, needle becomes
// the new stored search term; otherwise the stored term is reused.
func (w *Workspace) Find(next bool, needle string) bool {
	doc := w.Current()
	if doc == nil {
		return false
	}
	if !next {
		w.search = needle
	}
	return doc.FindText(w.search)
}

// Copy stores the current document's selection in the shared clipboard.
func (w *Workspace) Copy() {
	doc := w.Current()
	if doc == nil {
		return
	}
	if data, ok := doc.CopySelection(); ok {
		w.clipboard = data
	}
}

// Cut erases the current document's selection into the shared clipboard.
func (w *Workspace) Cut() {
	doc := w.Current()
	if doc == nil {
		return
	}
	if data, ok := doc.CutSelection(); ok {
		w.clipboard = data
	}
}

// Paste inserts the shared clipboard's content at the current document's
// cursor.
func (w *Workspace) Paste() error {
	doc := w.Current()
	if doc == nil || w.clipboard == nil {
		return nil
	}
	return doc.Paste(w.clipboard)
}

// JumpToFileUnderCursor finds (or opens) the file named at the current
// document's cursor and moves to the line number following it, if any.
func (w *Workspace) JumpToFileUnderCursor() error {
	doc := w.Current()
	if doc == nil {
		return nil
	}
	name, line, hasLine := doc.FileUnderCursor()
	if name == "" {
		return nil
	}
	target, err := w.Open(name)
	if err != nil {
		return err
	}
	if hasLine {
		target.GotoLine(line - 1)
	}
	return nil
}
