// SPDX-FileCopyrightText:  Copyright 2026 the tedit contributors
// SPDX-License-Identifier: MIT
//
// Project:  tedit
// File:     document.go
//
// =============================================================================

// Package editor implements the Document and Workspace described in
// spec.md §4.3-4.4: the gap buffer and undo log wrapped with cursor,
// scroll, and selection state, plus the multi-document ring that holds
// them.
package editor

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tedit-editor/tedit/internal/gapbuf"
	"github.com/tedit-editor/tedit/internal/undo"
)

// TabSize is the column width a tab advances the cursor to the next
// multiple of, per spec.md §4.3's visual_column. It is a var rather than
// a const so cmd/tedit's -tabsize flag can override it at startup.
var TabSize = 8

// NoAnchor is the Document.anchor value meaning "no selection".
const NoAnchor = -1

// RefreshKind tells the renderer how much of the screen an operation
// invalidated.
type RefreshKind int

const (
	RefreshNone RefreshKind = iota
	RefreshLine
	RefreshFull
)

// Document wraps a GapBuffer and UndoLog with the cursor, scroll, and
// selection state spec.md §3 describes.
type Document struct {
	buf *gapbuf.Buffer
	log undo.Log

	linePos int
	col     int
	line    int
	lastCol int

	topPos  int
	topLine int
	margin  int

	anchor int

	filename string
	newFile  bool

	viewCols  int
	viewLines int

	refresh RefreshKind
}

func newDocument(filename string, content []byte, newFile bool) *Document {
	return &Document{
		buf:       gapbuf.NewFromBytes(content),
		filename:  filename,
		newFile:   newFile,
		anchor:    NoAnchor,
		viewCols:  80,
		viewLines: 24,
	}
}

// NewUntitled returns an empty, unsaved document bound to a synthetic name.
func NewUntitled(name string) *Document {
	return newDocument(name, nil, true)
}

// FromStdin returns a document loaded from ingested standard input, named
// "<stdin>" and not dirty.
func FromStdin(data []byte) *Document {
	return newDocument("<stdin>", data, true)
}

// Open loads path into a new Document. A missing file yields a new,
// unsaved document bound to that path rather than an error; any other I/O
// failure is reported as an *IOError.
func Open(path string) (*Document, error) {
	name := canonical(path)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return newDocument(name, nil, true), nil
	}
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	return newDocument(name, data, false), nil
}

// canonical resolves name to an absolute path; on failure (spec.md §7's
// PathResolutionError) it falls back to the literal path.
func canonical(name string) string {
	abs, err := filepath.Abs(name)
	if err != nil {
		return name
	}
	return abs
}

// Save writes the document's content to path, truncating any prior
// contents with mode 0644, and clears the undo log and dirty state.
func (d *Document) Save(path string) error {
	if err := os.WriteFile(path, d.buf.Bytes(), 0o644); err != nil {
		return &IOError{Op: "save", Path: path, Err: err}
	}
	d.filename = canonical(path)
	d.newFile = false
	d.log.Clear()
	return nil
}

// Filename returns the document's canonical path, or its synthetic name.
func (d *Document) Filename() string { return d.filename }

// IsNewFile reports whether the document has never been saved.
func (d *Document) IsNewFile() bool { return d.newFile }

// Dirty reports whether the document has unsaved edits: the undo log is
// not at its baseline (the cursor is somewhere other than NIL).
func (d *Document) Dirty() bool { return !d.log.AtBaseline() }

// Length returns the number of bytes in the document.
func (d *Document) Length() int { return d.buf.Length() }

// Position returns the cursor's absolute byte offset.
func (d *Document) Position() int { return d.linePos + d.col }

// Line, Col, TopLine, TopPos, Margin expose cursor/scroll state to the
// renderer (outside the core, per spec.md §1).
func (d *Document) Line() int     { return d.line }
func (d *Document) Col() int      { return d.col }
func (d *Document) TopLine() int  { return d.topLine }
func (d *Document) TopPos() int   { return d.topPos }
func (d *Document) Margin() int   { return d.margin }

// SetViewport records the renderer's current geometry, used for scroll
// and page-motion math.
func (d *Document) SetViewport(cols, lines int) {
	if cols > 0 {
		d.viewCols = cols
	}
	if lines > 0 {
		d.viewLines = lines
	}
}

// TakeRefresh returns and clears the pending redraw request.
func (d *Document) TakeRefresh() RefreshKind {
	r := d.refresh
	d.refresh = RefreshNone
	return r
}

// ForceRefresh schedules a full redraw, for collaborators outside the
// core that change what the renderer should show (e.g. a terminal resize).
func (d *Document) ForceRefresh() { d.refresh = RefreshFull }

// ReadRange returns a copy of the bytes in [start, end).
func (d *Document) ReadRange(start, end int) []byte {
	if end < start {
		end = start
	}
	out := make([]byte, end-start)
	d.buf.CopyOut(out, start, end-start)
	return out
}

// ReplaceRange erases [start, end) and inserts data in its place as a
// single undoable edit, then repositions the cursor just after the
// inserted text. Used by collaborators such as the pipe-through-shell
// command that replace a range computed outside the core.
func (d *Document) ReplaceRange(start, end int, data []byte) error {
	if err := d.apply(start, end-start, data, len(data)); err != nil {
		return err
	}
	d.anchor = NoAnchor
	d.reseat(start+len(data), false)
	d.refresh = RefreshFull
	return nil
}

// ByteAt returns the byte at an absolute position, or -1 past the end.
func (d *Document) ByteAt(pos int) int { return d.buf.Get(pos) }

// LineLength returns the number of bytes from linePos up to but excluding
// the next '\n' or '\r', or end of file.
func (d *Document) LineLength(linePos int) int {
	n := 0
	for {
		b := d.buf.Get(linePos + n)
		if b == -1 || b == '\n' || b == '\r' {
			return n
		}
		n++
	}
}

// LineStart walks back from pos until pos == 0 or the preceding byte is
// '\n'.
func (d *Document) LineStart(pos int) int {
	for pos > 0 && d.buf.Get(pos-1) != '\n' {
		pos--
	}
	return pos
}

// NextLine returns the position just after the next '\n' at or after pos,
// or -1 if there is no further newline.
func (d *Document) NextLine(pos int) int {
	length := d.buf.Length()
	for i := pos; i < length; i++ {
		if d.buf.Get(i) == '\n' {
			return i + 1
		}
	}
	return -1
}

// PrevLine returns the first byte of the line preceding the one
// containing pos, or -1 if pos is already on the first line.
func (d *Document) PrevLine(pos int) int {
	ls := d.LineStart(pos)
	if ls == 0 {
		return -1
	}
	return d.LineStart(ls - 1)
}

// VisualColumn walks col bytes from linePos, expanding tabs to the next
// multiple of TabSize, and returns the resulting visual column.
func (d *Document) VisualColumn(linePos, col int) int {
	vc := 0
	for i := 0; i < col; i++ {
		if d.buf.Get(linePos+i) == '\t' {
			vc += TabSize - (vc % TabSize)
		} else {
			vc++
		}
	}
	return vc
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// ---- cursor/scroll reconciliation ----

// moveto incrementally steps the cursor to target, updating line_pos/line
// and scrolling the viewport as line boundaries are crossed. It assumes
// d.linePos is still a valid line start for the current buffer content
// (true for pure navigation; edits that shift content before the cursor
// use reseat instead).
func (d *Document) moveto(target int, center bool) {
	scrolled := false
	for target < d.linePos {
		p := d.PrevLine(d.linePos)
		if p == -1 {
			break
		}
		d.linePos = p
		d.line--
		if d.line < d.topLine {
			d.topPos = d.linePos
			d.topLine = d.line
			scrolled = true
		}
	}
	for {
		ll := d.LineLength(d.linePos)
		if target <= d.linePos+ll {
			break
		}
		n := d.NextLine(d.linePos)
		if n == -1 {
			break
		}
		d.linePos = n
		d.line++
		if d.line >= d.topLine+d.viewLines {
			p := d.NextLine(d.topPos)
			if p != -1 {
				d.topPos = p
				d.topLine++
			}
			scrolled = true
		}
	}
	d.col = target - d.linePos
	if scrolled {
		if center {
			d.centerOn(d.line, d.linePos)
		}
		d.refresh = RefreshFull
	}
}

// reseat recomputes line_pos/line/col from an absolute position by a full
// scan, for repositions where the cursor's cached line_pos can no longer
// be trusted (undo/redo, search hits, paste, replaced ranges).
func (d *Document) reseat(target int, center bool) {
	length := d.buf.Length()
	if target < 0 {
		target = 0
	}
	if target > length {
		target = length
	}
	line, linePos := 0, 0
	for i := 0; i < target; i++ {
		if d.buf.Get(i) == '\n' {
			line++
			linePos = i + 1
		}
	}
	d.linePos = linePos
	d.line = line
	d.col = target - linePos
	d.lastCol = d.col
	if center {
		d.centerOn(line, linePos)
	} else {
		d.ensureVisible()
	}
	d.refresh = RefreshFull
}

func (d *Document) centerOn(line, linePos int) {
	half := d.viewLines / 2
	pos, ln := linePos, line
	for i := 0; i < half && ln > 0; i++ {
		p := d.PrevLine(pos)
		if p == -1 {
			break
		}
		pos = p
		ln--
	}
	d.topPos = pos
	d.topLine = ln
}

func (d *Document) ensureVisible() {
	if d.line < d.topLine {
		d.topPos = d.linePos
		d.topLine = d.line
		return
	}
	if d.line >= d.topLine+d.viewLines {
		pos, ln := d.linePos, d.line
		for ln > d.line-d.viewLines+1 {
			p := d.PrevLine(pos)
			if p == -1 {
				break
			}
			pos = p
			ln--
		}
		d.topPos = pos
		d.topLine = ln
	}
}

func (d *Document) scrollHorizontal() {
	vc := d.VisualColumn(d.linePos, d.col)
	for vc < d.margin {
		d.margin -= 4
		if d.margin < 0 {
			d.margin = 0
		}
	}
	for vc >= d.margin+d.viewCols {
		d.margin += 4
	}
}

// adjust clamps col to the current line's length using last_col as the
// remembered goal column, then reconciles horizontal scroll.
func (d *Document) adjust() {
	ll := d.LineLength(d.linePos)
	col := d.lastCol
	if col > ll {
		col = ll
	}
	d.col = col
	d.scrollHorizontal()
}

// ---- navigation ----

func (d *Document) updateSelection(sel bool) {
	if sel {
		if d.anchor == NoAnchor {
			d.anchor = d.Position()
		}
	} else {
		d.anchor = NoAnchor
	}
}

func (d *Document) Up(sel bool) {
	d.updateSelection(sel)
	if d.line == 0 {
		return
	}
	d.moveto(d.PrevLine(d.linePos), false)
	d.adjust()
}

func (d *Document) Down(sel bool) {
	d.updateSelection(sel)
	n := d.NextLine(d.linePos)
	if n == -1 {
		return
	}
	d.moveto(n, false)
	d.adjust()
}

func (d *Document) Left(sel bool) {
	d.updateSelection(sel)
	pos := d.Position()
	if pos == 0 {
		return
	}
	d.moveto(pos-1, false)
	d.lastCol = d.col
	d.scrollHorizontal()
}

func (d *Document) Right(sel bool) {
	d.updateSelection(sel)
	pos := d.Position()
	if pos >= d.buf.Length() {
		return
	}
	d.moveto(pos+1, false)
	d.lastCol = d.col
	d.scrollHorizontal()
}

// Home moves to the start of the line, or (ctrl) to the top of the
// document.
func (d *Document) Home(sel, ctrl bool) {
	d.updateSelection(sel)
	if ctrl {
		d.moveto(0, true)
	} else {
		d.moveto(d.linePos, false)
	}
	d.lastCol = d.col
	d.scrollHorizontal()
}

// End moves to the end of the line, or (ctrl) to the bottom of the
// document.
func (d *Document) End(sel, ctrl bool) {
	d.updateSelection(sel)
	if ctrl {
		d.moveto(d.buf.Length(), true)
	} else {
		d.moveto(d.linePos+d.LineLength(d.linePos), false)
	}
	d.lastCol = d.col
	d.scrollHorizontal()
}

func (d *Document) PageUp(sel bool) {
	d.updateSelection(sel)
	target := d.linePos
	for i := 0; i < d.viewLines; i++ {
		p := d.PrevLine(target)
		if p == -1 {
			break
		}
		target = p
	}
	d.moveto(target, true)
	d.adjust()
}

func (d *Document) PageDown(sel bool) {
	d.updateSelection(sel)
	target := d.linePos
	for i := 0; i < d.viewLines; i++ {
		n := d.NextLine(target)
		if n == -1 {
			break
		}
		target = n
	}
	d.moveto(target, true)
	d.adjust()
}

func (d *Document) WordLeft(sel bool) {
	d.updateSelection(sel)
	pos := d.Position()
	for pos > 0 && !isWordByte(byte(d.buf.Get(pos-1))) {
		pos--
	}
	for pos > 0 && isWordByte(byte(d.buf.Get(pos-1))) {
		pos--
	}
	d.moveto(pos, false)
	d.lastCol = d.col
	d.scrollHorizontal()
}

func (d *Document) WordRight(sel bool) {
	d.updateSelection(sel)
	pos := d.Position()
	length := d.buf.Length()
	for pos < length && !isWordByte(byte(d.buf.Get(pos))) {
		pos++
	}
	for pos < length && isWordByte(byte(d.buf.Get(pos))) {
		pos++
	}
	d.moveto(pos, false)
	d.lastCol = d.col
	d.scrollHorizontal()
}

// GotoLine moves the cursor to the start of the given zero-based line
// number, centering the viewport.
func (d *Document) GotoLine(target int) {
	if target < 0 {
		target = 0
	}
	pos, line := 0, 0
	for line < target {
		n := d.NextLine(pos)
		if n == -1 {
			break
		}
		pos = n
		line++
	}
	d.linePos = pos
	d.line = line
	d.col = 0
	d.lastCol = 0
	d.centerOn(line, pos)
	d.refresh = RefreshFull
}

// ---- selection ----

// SelectionRange returns the ordered (start, end) of the active selection,
// or ok=false if there is none.
func (d *Document) SelectionRange() (start, end int, ok bool) {
	if d.anchor == NoAnchor {
		return 0, 0, false
	}
	pos := d.Position()
	if d.anchor == pos {
		return 0, 0, false
	}
	if d.anchor < pos {
		return d.anchor, pos, true
	}
	return pos, d.anchor, true
}

func (d *Document) SelectAll() {
	d.anchor = 0
	d.moveto(d.buf.Length(), false)
	d.lastCol = d.col
}

// EraseSelection erases the active selection, moving the cursor to its
// start and clearing the anchor, and reports whether a selection existed.
func (d *Document) EraseSelection() bool {
	start, end, ok := d.SelectionRange()
	if !ok {
		return false
	}
	d.moveto(start, false)
	_ = d.eraseRange(start, end-start)
	d.anchor = NoAnchor
	return true
}

func (d *Document) CopySelection() ([]byte, bool) {
	start, end, ok := d.SelectionRange()
	if !ok {
		return nil, false
	}
	out := make([]byte, end-start)
	d.buf.CopyOut(out, start, end-start)
	return out, true
}

func (d *Document) CutSelection() ([]byte, bool) {
	data, ok := d.CopySelection()
	if !ok {
		return nil, false
	}
	d.EraseSelection()
	d.refresh = RefreshFull
	return data, true
}

// Paste erases any selection, then inserts data at the cursor.
func (d *Document) Paste(data []byte) error {
	d.EraseSelection()
	pos := d.Position()
	if err := d.insertAt(pos, data); err != nil {
		return err
	}
	d.reseat(pos+len(data), false)
	return nil
}

// ---- editing ----

// apply performs a GapBuffer replace and records it to the undo log.
func (d *Document) apply(pos, eraseN int, src []byte, insertN int) error {
	var erased []byte
	if eraseN > 0 {
		erased = make([]byte, eraseN)
		d.buf.CopyOut(erased, pos, eraseN)
	}
	if err := d.buf.Replace(pos, eraseN, src, insertN); err != nil {
		return err
	}
	d.log.Record(pos, erased, src[:insertN])
	return nil
}

func (d *Document) insertAt(pos int, src []byte) error {
	return d.apply(pos, 0, src, len(src))
}

func (d *Document) eraseRange(pos, n int) error {
	return d.apply(pos, n, nil, 0)
}

// InsertChar erases any selection, then inserts one byte at the cursor.
func (d *Document) InsertChar(b byte) error {
	d.EraseSelection()
	pos := d.Position()
	if err := d.insertAt(pos, []byte{b}); err != nil {
		return err
	}
	d.col++
	d.lastCol = d.col
	d.refresh = RefreshLine
	d.scrollHorizontal()
	return nil
}

// Newline erases any selection, inserts '\n', and moves to column 0 of
// the following line.
func (d *Document) Newline() error {
	d.EraseSelection()
	pos := d.Position()
	if err := d.insertAt(pos, []byte{'\n'}); err != nil {
		return err
	}
	d.linePos = pos + 1
	d.line++
	d.col = 0
	d.lastCol = 0
	if d.line >= d.topLine+d.viewLines {
		p := d.NextLine(d.topPos)
		if p != -1 {
			d.topPos = p
			d.topLine++
		}
	}
	d.refresh = RefreshFull
	return nil
}

// Backspace erases the active selection if one exists; otherwise, at the
// start of a line it erases the preceding '\n' (and a preceding '\r', if
// present, atomically) merging lines, and elsewhere erases the byte to
// the left of the cursor.
func (d *Document) Backspace() error {
	if d.EraseSelection() {
		d.refresh = RefreshFull
		return nil
	}
	pos := d.Position()
	if pos == 0 {
		return nil
	}
	if d.col == 0 {
		eraseN := 1
		if pos >= 2 && d.buf.Get(pos-2) == '\r' {
			eraseN = 2
		}
		start := pos - eraseN
		if err := d.eraseRange(start, eraseN); err != nil {
			return err
		}
		d.linePos = d.LineStart(start)
		d.line--
		d.col = start - d.linePos
		d.lastCol = d.col
		d.refresh = RefreshFull
		return nil
	}
	if err := d.eraseRange(pos-1, 1); err != nil {
		return err
	}
	d.col--
	d.lastCol = d.col
	d.refresh = RefreshLine
	return nil
}

// Del erases the active selection if one exists; otherwise it is the
// forward counterpart of Backspace, atomically erasing a CRLF pair.
func (d *Document) Del() error {
	if d.EraseSelection() {
		d.refresh = RefreshFull
		return nil
	}
	pos := d.Position()
	if pos >= d.buf.Length() {
		return nil
	}
	b := d.buf.Get(pos)
	eraseN := 1
	if b == '\r' && d.buf.Get(pos+1) == '\n' {
		eraseN = 2
	}
	if err := d.eraseRange(pos, eraseN); err != nil {
		return err
	}
	if b == '\n' || b == '\r' {
		d.refresh = RefreshFull
	} else {
		d.refresh = RefreshLine
	}
	return nil
}

// ---- undo/redo ----

// Undo reverts the most recent not-yet-undone edit: it replays the
// record's inverse directly against the GapBuffer (bypassing the undo
// log, since this is not itself an undoable edit) and repositions the
// cursor to the edit point.
func (d *Document) Undo() error {
	rec, ok := d.log.Undo()
	if !ok {
		return nil
	}
	if err := d.buf.Replace(rec.Pos, len(rec.Inserted), rec.Erased, len(rec.Erased)); err != nil {
		return err
	}
	d.reseat(rec.Pos, true)
	return nil
}

// Redo reapplies the next record forward.
func (d *Document) Redo() error {
	rec, ok := d.log.Redo()
	if !ok {
		return nil
	}
	if err := d.buf.Replace(rec.Pos, len(rec.Erased), rec.Inserted, len(rec.Inserted)); err != nil {
		return err
	}
	d.reseat(rec.Pos, true)
	return nil
}

// ---- search ----

// Search returns the absolute position of the first occurrence of needle
// at or after from, closing the gap buffer's gap to scan contiguously.
func (d *Document) Search(needle string, from int) (int, bool) {
	if needle == "" {
		return 0, false
	}
	if err := d.buf.CloseGap(); err != nil {
		return 0, false
	}
	content := d.buf.Contiguous()
	if from < 0 {
		from = 0
	}
	if from > len(content) {
		from = len(content)
	}
	idx := bytes.Index(content[from:], []byte(needle))
	if idx == -1 {
		return 0, false
	}
	return from + idx, true
}

// FindText searches forward from the cursor for needle. On a hit it sets
// the selection anchor to the match start, moves the cursor to the match
// end, centers the viewport, and returns true. On a miss it leaves state
// unchanged and returns false; the caller emits a bell.
func (d *Document) FindText(needle string) bool {
	start, ok := d.Search(needle, d.Position())
	if !ok {
		return false
	}
	d.anchor = start
	d.reseat(start+len(needle), true)
	return true
}

// ---- jump to file under cursor ----

const jumpDelims = "!@\"'#%&()[]{}*?+:;"

func isJumpDelim(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return strings.IndexByte(jumpDelims, b) >= 0
}

// FileUnderCursor returns the filename (and, if present, a ":<line>"
// suffix) at the cursor: the active selection if one exists, otherwise
// the run of non-delimiter bytes around the cursor.
func (d *Document) FileUnderCursor() (name string, line int, hasLine bool) {
	if start, end, ok := d.SelectionRange(); ok {
		buf := make([]byte, end-start)
		d.buf.CopyOut(buf, start, end-start)
		return string(buf), 0, false
	}
	pos := d.Position()
	length := d.buf.Length()

	start := pos
	for start > 0 && !isJumpDelim(byte(d.buf.Get(start-1))) {
		start--
	}
	end := pos
	for end < length && !isJumpDelim(byte(d.buf.Get(end))) {
		end++
	}
	nameBuf := make([]byte, end-start)
	d.buf.CopyOut(nameBuf, start, end-start)
	name = string(nameBuf)

	if end < length && d.buf.Get(end) == ':' {
		i := end + 1
		digitsStart := i
		for i < length && d.buf.Get(i) >= '0' && d.buf.Get(i) <= '9' {
			i++
		}
		if i > digitsStart {
			numBuf := make([]byte, i-digitsStart)
			d.buf.CopyOut(numBuf, digitsStart, i-digitsStart)
			if n, err := strconv.Atoi(string(numBuf)); err == nil {
				line, hasLine = n, true
			}
		}
	}
	return name, line, hasLine
}
