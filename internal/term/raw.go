// SPDX-FileCopyrightText:  Copyright 2026 the tedit contributors
// SPDX-License-Identifier: MIT
//
// Project:  tedit
// File:     raw.go
//
// =============================================================================

// Package term is the terminal driver spec.md §1 treats as an external
// collaborator to the core: raw-mode setup, window-size queries, screen
// rendering, and keyboard decoding. Nothing in internal/editor or
// internal/dispatch imports this package; cmd/tedit wires the two
// together.
package term

import (
	"os"

	"golang.org/x/term"
)

// Raw puts stdin into raw mode for the duration of the editor session and
// returns a Restore func to hand terminal control back on exit, the same
// MakeRaw/Restore pairing the rest of the pack uses around interactive
// input.
func Raw() (restore func(), err error) {
	fd := int(os.Stdin.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() { _ = term.Restore(fd, old) }, nil
}

// Size returns the current terminal window's columns and rows.
func Size() (cols, lines int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// IsTerminal reports whether stdin is attached to a terminal; cmd/tedit
// uses this to decide whether to ingest piped stdin as a document before
// starting the interactive session on the controlling terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
