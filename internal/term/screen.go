// SPDX-FileCopyrightText:  Copyright 2026 the tedit contributors
// SPDX-License-Identifier: MIT
//
// Project:  tedit
// File:     screen.go
//
// =============================================================================

package term

import (
	"fmt"
	"io"

	"atomicgo.dev/cursor"

	"github.com/tedit-editor/tedit/internal/editor"
	"github.com/tedit-editor/tedit/internal/statusline"
)

// Screen renders a Document's viewport and status line to an io.Writer
// (stdout in production). Cursor positioning and line clearing go
// through atomicgo.dev/cursor rather than hand-rolled escape sequences;
// only the one-time screen-clear/home uses a raw ANSI sequence, since
// that's outside what the cursor package covers.
type Screen struct {
	w io.Writer
}

// NewScreen wraps w for rendering.
func NewScreen(w io.Writer) *Screen {
	return &Screen{w: w}
}

// Home clears the screen and anchors the cursor at the top-left as the
// reference point every subsequent Draw restores to before repainting.
func (s *Screen) Home() {
	fmt.Fprint(s.w, "\033[2J\033[H")
	cursor.SavePosition()
}

// Hide/Show toggle the terminal caret around a redraw so it doesn't
// visibly jump mid-frame.
func (s *Screen) Hide() { cursor.Hide() }
func (s *Screen) Show() { cursor.Show() }

// Draw repaints the document's viewport, reserving the last row for the
// status line, then leaves the real cursor positioned over the
// document's visual cursor.
func (s *Screen) Draw(doc *editor.Document, status *statusline.Line, cols, lines int) {
	cursor.RestorePosition()

	pos := doc.TopPos()
	for row := 0; row < lines-1; row++ {
		cursor.ClearLine()
		if pos <= doc.Length() {
			end := pos + doc.LineLength(pos)
			if end > doc.Length() {
				end = doc.Length()
			}
			text := doc.ReadRange(pos, end)
			if len(text) > cols {
				text = text[:cols]
			}
			fmt.Fprint(s.w, string(text))
		}
		cursor.Down(1)
		cursor.StartOfLine()
		if next := doc.NextLine(pos); next != -1 {
			pos = next
		} else {
			pos = doc.Length() + 1
		}
	}

	cursor.ClearLine()
	s.drawStatus(status)

	cursor.RestorePosition()
	cursorRow := doc.Line() - doc.TopLine()
	cursorCol := doc.VisualColumn(doc.LineStart(doc.Position()), doc.Col()) - doc.Margin()
	if cursorCol < 0 {
		cursorCol = 0
	}
	cursor.Down(cursorRow)
	cursor.HorizontalAbsolute(cursorCol)
}

func (s *Screen) drawStatus(status *statusline.Line) {
	msg := status.Current()
	if msg == nil {
		return
	}
	fmt.Fprint(s.w, msg.Text)
}
