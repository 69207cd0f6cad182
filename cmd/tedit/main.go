// SPDX-FileCopyrightText:  Copyright 2026 the tedit contributors
// SPDX-License-Identifier: MIT
//
// Project:  tedit
// File:     main.go
//
// =============================================================================

// Command tedit is a terminal multi-buffer text editor built on a gap
// buffer and coalescing undo log, per spec.md.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tedit-editor/tedit/internal/dispatch"
	"github.com/tedit-editor/tedit/internal/editor"
	"github.com/tedit-editor/tedit/internal/keys"
	"github.com/tedit-editor/tedit/internal/statusline"
	"github.com/tedit-editor/tedit/internal/term"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("tedit", flag.ContinueOnError)
	tabSize := fs.Int("tabsize", editor.TabSize, "columns a tab advances the cursor to the next multiple of")
	readOnly := fs.Bool("readonly", false, "open in the read-only LESS variant (navigation and search only)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	editor.TabSize = *tabSize

	ws := editor.NewWorkspace()
	paths := fs.Args()

	if len(paths) == 0 {
		if !term.IsTerminal() {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				fmt.Fprintf(os.Stderr, "tedit: reading stdin: %v\n", err)
				return 1
			}
			ws.AddStdin(data)
			// Keys come from the controlling terminal once stdin is used up.
			tty, err := os.Open("/dev/tty")
			if err != nil {
				fmt.Fprintf(os.Stderr, "tedit: %v\n", err)
				return 1
			}
			defer tty.Close()
			os.Stdin = tty
		} else {
			ws.CreateDocument()
		}
	} else {
		for _, p := range paths {
			if _, err := ws.Open(p); err != nil {
				fmt.Fprintf(os.Stderr, "tedit: %v\n", err)
				return 1
			}
		}
	}

	restore, err := term.Raw()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tedit: %v\n", err)
		return 1
	}
	defer restore()

	// The editor owns Ctrl-C/Ctrl-Z as ordinary key bindings (copy,
	// undo), not process-control signals, and a
	// caught SIGABRT shouldn't dump core mid-session.
	signal.Ignore(syscall.SIGINT, syscall.SIGTSTP, syscall.SIGABRT)

	status := &statusline.Line{}
	engine := dispatch.New(ws, status, &termPrompter{status: status})
	engine.Shell = pipeThroughShell
	engine.ReadOnly = *readOnly

	screen := term.NewScreen(os.Stdout)
	screen.Home()
	defer screen.Show()

	engine.QuerySize = func() (int, int) {
		cols, lines, err := term.Size()
		if err != nil {
			return 80, 24
		}
		return cols, lines
	}

	redraw := func() {
		cols, lines, err := term.Size()
		if err != nil {
			cols, lines = 80, 24
		}
		doc := ws.Current()
		if doc == nil {
			return
		}
		doc.SetViewport(cols, lines)
		screen.Hide()
		screen.Draw(doc, status, cols, lines)
		screen.Show()
	}
	redraw()

	err = term.Listen(func(ev keys.Event) bool {
		engine.Dispatch(ev)
		if engine.Quit {
			return true
		}
		redraw()
		return false
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "tedit: %v\n", err)
		return 1
	}
	return 0
}

// termPrompter implements dispatch.Prompter by drawing a one-line prompt
// on the status line and reading raw keystrokes until Enter or Esc.
type termPrompter struct {
	status *statusline.Line
}

func (p *termPrompter) PromptLine(label string) (string, bool) {
	var sb strings.Builder
	result := ""
	ok := false
	done := false

	p.status.Set(statusline.Info, label)
	err := term.Listen(func(ev keys.Event) bool {
		switch ev.Code {
		case keys.Enter:
			result, ok, done = sb.String(), true, true
		case keys.Esc:
			done = true
		case keys.Backspace:
			if s := sb.String(); len(s) > 0 {
				sb.Reset()
				sb.WriteString(s[:len(s)-1])
			}
			p.status.Set(statusline.Info, label+sb.String())
		case keys.Rune:
			sb.WriteByte(ev.Rune)
			p.status.Set(statusline.Info, label+sb.String())
		}
		return done
	})
	p.status.Clear()
	if err != nil {
		return "", false
	}
	return result, ok
}

func (p *termPrompter) Confirm(label string) bool {
	p.status.Set(statusline.Info, label+" (y/n)")
	answer := false
	_ = term.Listen(func(ev keys.Event) bool {
		if ev.Code == keys.Esc {
			return true
		}
		if ev.Code != keys.Rune {
			return false
		}
		switch ev.Rune {
		case 'y', 'Y':
			answer = true
			return true
		case 'n', 'N':
			return true
		}
		return false
	})
	p.status.Clear()
	return answer
}

// pipeThroughShell runs command with input on stdin via the user's shell,
// spec.md §4.5's Ctrl-P facility; it is the one place this module starts
// a child process.
func pipeThroughShell(input []byte, command string) ([]byte, error) {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	cmd := exec.Command(shell, "-c", command)
	cmd.Stdin = strings.NewReader(string(input))
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pipe through shell: %w", err)
	}
	return out, nil
}
