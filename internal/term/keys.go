// SPDX-FileCopyrightText:  Copyright 2026 the tedit contributors
// SPDX-License-Identifier: MIT
//
// Project:  tedit
// File:     keys.go
//
// =============================================================================

package term

import (
	"atomicgo.dev/keyboard"
	akeys "atomicgo.dev/keyboard/keys"

	"github.com/tedit-editor/tedit/internal/keys"
)

// Listen blocks reading decoded keystrokes from the terminal, invoking
// handle with each one until it returns true (or the underlying listener
// errors). It is the only place cmd/tedit's main loop touches raw
// keyboard input.
func Listen(handle func(keys.Event) (stop bool)) error {
	return keyboard.Listen(func(k akeys.Key) (bool, error) {
		return handle(decode(k)), nil
	})
}

// decode turns one atomicgo.dev/keyboard keystroke into the core's
// abstract keys.Event, the one point where a raw terminal keycode is
// translated into something internal/dispatch understands.
//
// Shift/Ctrl-chorded arrows (selection-extend, word-jump) need a CSI
// sequence with an explicit modifier parameter that plain Key.Code/Alt
// doesn't carry, so those modifiers are reported false here; a
// selection-aware driver would need to read the raw escape sequence
// itself rather than go through Listen's decoded Key.
func decode(k akeys.Key) keys.Event {
	switch k.Code {
	case akeys.RuneKey, akeys.Space:
		if len(k.Runes) == 0 {
			return keys.Event{Code: keys.Invalid}
		}
		return keys.Event{Code: keys.Rune, Rune: byte(k.Runes[0])}
	case akeys.Enter:
		return keys.Event{Code: keys.Enter}
	case akeys.Tab:
		return keys.Event{Code: keys.Tab}
	case akeys.ShiftTab:
		return keys.Event{Code: keys.ShiftTab}
	case akeys.Backspace:
		return keys.Event{Code: keys.Backspace}
	case akeys.Delete:
		return keys.Event{Code: keys.Delete}
	case akeys.Up:
		return keys.Event{Code: keys.Up}
	case akeys.Down:
		return keys.Event{Code: keys.Down}
	case akeys.Left:
		return keys.Event{Code: keys.Left}
	case akeys.Right:
		return keys.Event{Code: keys.Right}
	case akeys.Home:
		return keys.Event{Code: keys.Home}
	case akeys.End:
		return keys.Event{Code: keys.End}
	case akeys.PgUp:
		return keys.Event{Code: keys.PageUp}
	case akeys.PgDown:
		return keys.Event{Code: keys.PageDown}
	case akeys.Esc:
		return keys.Event{Code: keys.Esc}
	case akeys.CtrlA:
		return keys.Event{Code: keys.CtrlA}
	case akeys.CtrlC:
		return keys.Event{Code: keys.CtrlC}
	case akeys.CtrlF:
		return keys.Event{Code: keys.CtrlF}
	case akeys.CtrlG:
		return keys.Event{Code: keys.CtrlG}
	case akeys.CtrlL:
		return keys.Event{Code: keys.CtrlL}
	case akeys.CtrlN:
		return keys.Event{Code: keys.CtrlN}
	case akeys.CtrlO:
		return keys.Event{Code: keys.CtrlO}
	case akeys.CtrlP:
		return keys.Event{Code: keys.CtrlP}
	case akeys.CtrlQ:
		return keys.Event{Code: keys.CtrlQ}
	case akeys.CtrlR:
		return keys.Event{Code: keys.CtrlR}
	case akeys.CtrlS:
		return keys.Event{Code: keys.CtrlS}
	case akeys.CtrlU:
		return keys.Event{Code: keys.CtrlU}
	case akeys.CtrlV:
		return keys.Event{Code: keys.CtrlV}
	case akeys.CtrlW:
		return keys.Event{Code: keys.CtrlW}
	case akeys.CtrlX:
		return keys.Event{Code: keys.CtrlX}
	case akeys.CtrlZ:
		return keys.Event{Code: keys.CtrlZ}
	case akeys.F1:
		return keys.Event{Code: keys.F1}
	case akeys.F3:
		return keys.Event{Code: keys.F3}
	case akeys.F5:
		return keys.Event{Code: keys.F5}
	default:
		return keys.Event{Code: keys.Invalid}
	}
}
