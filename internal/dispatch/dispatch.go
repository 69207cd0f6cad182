// SPDX-FileCopyrightText:  Copyright 2026 the tedit contributors
// SPDX-License-Identifier: MIT
//
// Project:  tedit
// File:     dispatch.go
//
// =============================================================================

// Package dispatch implements the engine loop driver of spec.md §4.5: a
// key-to-operation table that turns decoded keys.Events into calls on an
// editor.Workspace/editor.Document, reporting failures through a
// statusline.Line rather than letting them propagate out of the loop.
//
// Everything that touches the terminal or the OS process table -
// prompting for a line of input, confirming a destructive action, running
// a shell command - is a Prompter/Shell collaborator passed in by the
// caller (cmd/tedit), never called directly here, so the dispatch table
// stays testable without a real terminal.
package dispatch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tedit-editor/tedit/internal/editor"
	"github.com/tedit-editor/tedit/internal/keys"
	"github.com/tedit-editor/tedit/internal/statusline"
)

// Prompter supplies the line prompts and confirmations the dispatch table
// needs (filenames, search needles, line numbers, unsaved-changes
// confirmation). PromptLine's ok return is false if the prompt was
// cancelled with Esc, in which case the operation aborts with no side
// effect.
type Prompter interface {
	PromptLine(label string) (string, bool)
	Confirm(label string) bool
}

// ShellFunc runs input through an external command and returns its
// output, for Ctrl-P's pipe-through-shell binding. It is the one External
// Collaborator spec.md §1 names explicitly ("the shell-pipe facility");
// a nil ShellFunc makes Ctrl-P a no-op.
type ShellFunc func(input []byte, command string) ([]byte, error)

const helpText = "^S save  ^O open  ^N new  ^W close  ^Q quit  ^F find  ^G find next  ^L goto line  ^Z undo  ^R redo  ^A select all  ^C/^X/^V copy/cut/paste  shift-tab/ctrl-tab switch doc  ^P pipe  F3 jump to file"

// Engine dispatches decoded key Events to Workspace/Document operations.
type Engine struct {
	Workspace *editor.Workspace
	Status    *statusline.Line
	Prompt    Prompter
	Shell     ShellFunc

	// QuerySize, if set, is called on F5 to re-read the terminal's
	// current geometry before requesting a full redraw.
	QuerySize func() (cols, lines int)

	// ReadOnly puts the engine in the "LESS variant" of spec.md §6:
	// every mutating binding is ignored and Esc quits.
	ReadOnly bool

	// Quit is set once Ctrl-Q's unsaved-changes confirmations have all
	// been accepted (in ReadOnly mode, at once on Esc or Ctrl-Q); the
	// caller's main loop checks it after each Dispatch.
	Quit bool
}

// New builds an Engine around an already-populated Workspace.
func New(ws *editor.Workspace, status *statusline.Line, prompt Prompter) *Engine {
	return &Engine{Workspace: ws, Status: status, Prompt: prompt}
}

// Dispatch routes one decoded key event to its bound operation. The
// previous status message is cleared first, so a message lasts until the
// next key.
func (e *Engine) Dispatch(ev keys.Event) {
	e.Status.Clear()
	if e.ReadOnly {
		e.dispatchReadOnly(ev)
		return
	}

	doc := e.Workspace.Current()
	if doc == nil {
		return
	}

	switch ev.Code {
	case keys.Rune:
		e.edit(func() error { return doc.InsertChar(ev.Rune) })
	case keys.Enter:
		e.edit(doc.Newline)
	case keys.Tab:
		e.edit(func() error { return doc.InsertChar('\t') })
	case keys.Backspace:
		e.edit(doc.Backspace)
	case keys.Delete:
		e.edit(doc.Del)

	case keys.Up:
		if ev.Ctrl {
			doc.Home(ev.Shift, true)
		} else {
			doc.Up(ev.Shift)
		}
	case keys.Down:
		if ev.Ctrl {
			doc.End(ev.Shift, true)
		} else {
			doc.Down(ev.Shift)
		}
	case keys.Left:
		if ev.Ctrl {
			doc.WordLeft(ev.Shift)
		} else {
			doc.Left(ev.Shift)
		}
	case keys.Right:
		if ev.Ctrl {
			doc.WordRight(ev.Shift)
		} else {
			doc.Right(ev.Shift)
		}
	case keys.Home:
		doc.Home(ev.Shift, ev.Ctrl)
	case keys.End:
		doc.End(ev.Shift, ev.Ctrl)
	case keys.PageUp:
		doc.PageUp(ev.Shift)
	case keys.PageDown:
		doc.PageDown(ev.Shift)

	case keys.CtrlA:
		doc.SelectAll()
	case keys.CtrlC:
		e.Workspace.Copy()
	case keys.CtrlX:
		e.Workspace.Cut()
	case keys.CtrlV:
		e.edit(e.Workspace.Paste)

	case keys.CtrlZ:
		e.edit(doc.Undo)
	case keys.CtrlR:
		e.edit(doc.Redo)

	case keys.CtrlF:
		e.find(false)
	case keys.CtrlG:
		e.find(true)
	case keys.CtrlL:
		e.gotoLine()

	case keys.CtrlO:
		e.open()
	case keys.CtrlN:
		e.Workspace.CreateDocument()
	case keys.CtrlW:
		e.closeCurrent()
	case keys.CtrlS:
		e.save()
	case keys.CtrlP:
		e.pipeThroughShell()
	case keys.CtrlQ:
		e.quit()

	case keys.ShiftTab:
		e.Workspace.Next()
	case keys.CtrlTab:
		e.Workspace.Prev()

	case keys.F3, keys.CtrlU:
		if err := e.Workspace.JumpToFileUnderCursor(); err != nil {
			e.reportError(err)
		}
	case keys.F1:
		e.Status.Set(statusline.Info, helpText)
	case keys.F5:
		if e.QuerySize != nil {
			cols, lines := e.QuerySize()
			doc.SetViewport(cols, lines)
		}
		doc.ForceRefresh()
	}
}

// dispatchReadOnly implements spec.md §6's LESS variant: navigation and
// search still work, every mutating binding is ignored, and Esc quits.
func (e *Engine) dispatchReadOnly(ev keys.Event) {
	doc := e.Workspace.Current()
	if doc == nil {
		if ev.Code == keys.Esc {
			e.Quit = true
		}
		return
	}
	switch ev.Code {
	case keys.Esc, keys.CtrlQ:
		e.Quit = true
	case keys.Up:
		if ev.Ctrl {
			doc.Home(false, true)
		} else {
			doc.Up(false)
		}
	case keys.Down:
		if ev.Ctrl {
			doc.End(false, true)
		} else {
			doc.Down(false)
		}
	case keys.Left:
		doc.Left(false)
	case keys.Right:
		doc.Right(false)
	case keys.Home:
		doc.Home(false, ev.Ctrl)
	case keys.End:
		doc.End(false, ev.Ctrl)
	case keys.PageUp:
		doc.PageUp(false)
	case keys.PageDown:
		doc.PageDown(false)
	case keys.CtrlF:
		e.find(false)
	case keys.CtrlG:
		e.find(true)
	case keys.CtrlL:
		e.gotoLine()
	case keys.ShiftTab:
		e.Workspace.Next()
	case keys.CtrlTab:
		e.Workspace.Prev()
	case keys.F1:
		e.Status.Set(statusline.Info, helpText)
	}
}

func (e *Engine) edit(op func() error) {
	if err := op(); err != nil {
		e.reportError(err)
	}
}

func (e *Engine) reportError(err error) {
	e.Status.Set(statusline.Error, err.Error())
}

func (e *Engine) find(next bool) {
	needle := e.Workspace.LastSearch()
	if !next {
		text, ok := e.Prompt.PromptLine("Find: ")
		if !ok {
			return
		}
		needle = text
	}
	if needle == "" {
		return
	}
	if !e.Workspace.Find(next, needle) {
		e.Status.Set(statusline.Bell, "not found: "+needle)
	}
}

func (e *Engine) gotoLine() {
	text, ok := e.Prompt.PromptLine("Goto line: ")
	if !ok {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		e.Status.Set(statusline.Error, "invalid line number: "+text)
		return
	}
	e.Workspace.Current().GotoLine(n - 1)
}

func (e *Engine) open() {
	text, ok := e.Prompt.PromptLine("Open: ")
	if !ok {
		return
	}
	if _, err := e.Workspace.Open(text); err != nil {
		e.reportError(err)
	}
}

func (e *Engine) save() {
	doc := e.Workspace.Current()
	path := doc.Filename()
	if doc.IsNewFile() {
		text, ok := e.Prompt.PromptLine("Save as: ")
		if !ok {
			return
		}
		path = text
	}
	if err := doc.Save(path); err != nil {
		e.reportError(err)
		return
	}
	e.Status.Set(statusline.Info, fmt.Sprintf("saved %s", path))
}

// closeCurrent implements spec.md §4.5's unsaved-changes confirmation:
// Dirty documents prompt before closing, and cancelling the prompt aborts
// the close with no side effect.
func (e *Engine) closeCurrent() {
	doc := e.Workspace.Current()
	if doc == nil {
		return
	}
	if doc.Dirty() && !e.Prompt.Confirm(fmt.Sprintf("%s has unsaved changes, close anyway?", doc.Filename())) {
		return
	}
	if e.Workspace.Close(doc) {
		e.Workspace.CreateDocument()
	}
}

// quit closes every open document in turn, confirming each Dirty one, and
// only sets Quit once the ring empties. A declined confirmation stops the
// quit with Quit unset; the documents closed before it stay closed.
func (e *Engine) quit() {
	for {
		doc := e.Workspace.Current()
		if doc == nil {
			break
		}
		if doc.Dirty() && !e.Prompt.Confirm(fmt.Sprintf("%s has unsaved changes, quit anyway?", doc.Filename())) {
			return
		}
		if e.Workspace.Close(doc) {
			break
		}
	}
	e.Quit = true
}

// pipeThroughShell implements Ctrl-P: the selection (or, with none, the
// whole document) is piped through a prompted shell command and replaced
// with its output, as one undoable edit.
func (e *Engine) pipeThroughShell() {
	if e.Shell == nil {
		return
	}
	doc := e.Workspace.Current()
	if doc == nil {
		return
	}
	command, ok := e.Prompt.PromptLine("Pipe through: ")
	if !ok || command == "" {
		return
	}
	start, end, hasSel := doc.SelectionRange()
	if !hasSel {
		start, end = 0, doc.Length()
	}
	out, err := e.Shell(doc.ReadRange(start, end), command)
	if err != nil {
		e.reportError(err)
		return
	}
	if err := doc.ReplaceRange(start, end, out); err != nil {
		e.reportError(err)
	}
}
