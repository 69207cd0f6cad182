package undo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tedit-editor/tedit/internal/undo"
)

// TestTypeThenBackspaceCoalesces reproduces spec.md scenario 1: typing
// "abc" then backspacing twice leaves one coalesced insertion record
// followed by one coalesced erase record, and undoing the erase record
// must restore the pre-backspace content exactly.
func TestTypeThenBackspaceCoalesces(t *testing.T) {
	t.Parallel()

	var l undo.Log
	l.Record(0, nil, []byte("a"))
	l.Record(1, nil, []byte("b"))
	l.Record(2, nil, []byte("c"))
	l.Record(2, []byte("c"), nil) // backspace erases 'c'
	l.Record(1, []byte("b"), nil) // backspace erases 'b'

	rec, ok := l.Undo()
	require.True(t, ok)
	assert.Equal(t, 1, rec.Pos)
	assert.Equal(t, "bc", string(rec.Erased))
	assert.Empty(t, rec.Inserted)

	rec, ok = l.Undo()
	require.True(t, ok)
	assert.Equal(t, 0, rec.Pos)
	assert.Equal(t, "abc", string(rec.Inserted))
	assert.Empty(t, rec.Erased)

	_, ok = l.Undo()
	assert.False(t, ok)
	assert.True(t, l.AtBaseline())
}

func TestForwardDeleteCoalescesInAppendOrder(t *testing.T) {
	t.Parallel()

	var l undo.Log
	l.Record(0, []byte("a"), nil)
	l.Record(0, []byte("b"), nil)
	l.Record(0, []byte("c"), nil)

	rec, ok := l.Undo()
	require.True(t, ok)
	assert.Equal(t, 0, rec.Pos)
	assert.Equal(t, "abc", string(rec.Erased))
}

func TestCursorJumpBreaksCoalescing(t *testing.T) {
	t.Parallel()

	var l undo.Log
	l.Record(0, nil, []byte("a"))
	l.Record(5, nil, []byte("z")) // not contiguous: new record

	_, ok := l.Undo()
	require.True(t, ok)
	_, ok = l.Undo()
	require.True(t, ok)
	_, ok = l.Undo()
	assert.False(t, ok)
}

func TestRedoReappliesInOrder(t *testing.T) {
	t.Parallel()

	var l undo.Log
	l.Record(0, nil, []byte("a"))
	l.Record(5, nil, []byte("z"))

	_, _ = l.Undo()
	_, _ = l.Undo()
	assert.True(t, l.AtBaseline())

	rec, ok := l.Redo()
	require.True(t, ok)
	assert.Equal(t, "a", string(rec.Inserted))

	rec, ok = l.Redo()
	require.True(t, ok)
	assert.Equal(t, "z", string(rec.Inserted))

	_, ok = l.Redo()
	assert.False(t, ok)
}

func TestNewEditTruncatesRedoHistory(t *testing.T) {
	t.Parallel()

	var l undo.Log
	l.Record(0, nil, []byte("a"))
	l.Record(5, nil, []byte("z"))
	_, _ = l.Undo()

	l.Record(0, nil, []byte("q")) // new edit while one redo record is pending

	_, ok := l.Redo()
	assert.False(t, ok, "the z record must have been discarded")
}

func TestClearDropsAllRecordsAndCoalescing(t *testing.T) {
	t.Parallel()

	var l undo.Log
	l.Record(0, nil, []byte("a"))
	l.Clear()
	assert.True(t, l.AtBaseline())

	l.Record(0, nil, []byte("b"))
	rec, ok := l.Undo()
	require.True(t, ok)
	assert.Equal(t, "b", string(rec.Inserted))
	_, ok = l.Undo()
	assert.False(t, ok)
}
