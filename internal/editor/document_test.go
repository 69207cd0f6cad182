package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoc(content string) *Document {
	return newDocument("test", []byte(content), false)
}

func TestBackspaceMergesLines(t *testing.T) {
	t.Parallel()

	d := newDoc("foo\nbar\n")
	d.GotoLine(1) // "bar\n", col 0
	require.Equal(t, 4, d.Position())

	require.NoError(t, d.Backspace())

	assert.Equal(t, "foobar\n", string(d.buf.Bytes()))
	assert.Equal(t, 0, d.Line())
	assert.Equal(t, 3, d.Col())
}

func TestDeleteErasesCRLFAtomically(t *testing.T) {
	t.Parallel()

	d := newDoc("x\r\ny\n")
	d.moveto(1, false) // cursor right before the '\r'
	require.Equal(t, 1, d.Position())

	require.NoError(t, d.Del())

	assert.Equal(t, "xy\n", string(d.buf.Bytes()))
}

func TestTabVisualColumn(t *testing.T) {
	t.Parallel()

	d := newDoc("\tX")
	assert.Equal(t, 9, d.VisualColumn(0, 2))
}

func TestFindThenFindNextThenMiss(t *testing.T) {
	t.Parallel()

	d := newDoc("hello hello\n")

	assert.True(t, d.FindText("hello"))
	assert.Equal(t, 0, d.anchor)
	assert.Equal(t, 5, d.Position())

	assert.True(t, d.FindText("hello"))
	assert.Equal(t, 6, d.anchor)
	assert.Equal(t, 11, d.Position())

	before := d.Position()
	anchorBefore := d.anchor
	assert.False(t, d.FindText("hello"))
	assert.Equal(t, before, d.Position())
	assert.Equal(t, anchorBefore, d.anchor)
}

func TestBackspaceAtStartIsNoOp(t *testing.T) {
	t.Parallel()

	d := newDoc("abc")
	require.NoError(t, d.Backspace())
	assert.Equal(t, "abc", string(d.buf.Bytes()))
	assert.Equal(t, 0, d.Position())
}

func TestDeleteAtEndIsNoOp(t *testing.T) {
	t.Parallel()

	d := newDoc("abc")
	d.moveto(3, false)
	require.NoError(t, d.Del())
	assert.Equal(t, "abc", string(d.buf.Bytes()))
}

func TestUpAtTopLeavesCursorUnchanged(t *testing.T) {
	t.Parallel()

	d := newDoc("abc\ndef\n")
	before := d.Position()
	d.Up(false)
	assert.Equal(t, before, d.Position())
}

func TestDownPastLastLineLeavesCursorUnchanged(t *testing.T) {
	t.Parallel()

	d := newDoc("abc\ndef")
	d.GotoLine(1)
	before := d.Position()
	d.Down(false)
	assert.Equal(t, before, d.Position())
}

func TestUndoImmediatelyRestoresContent(t *testing.T) {
	t.Parallel()

	d := newDoc("hello")
	before := string(d.buf.Bytes())
	d.moveto(5, false)
	require.NoError(t, d.InsertChar('!'))
	require.NoError(t, d.Undo())

	assert.Equal(t, before, string(d.buf.Bytes()))
	assert.False(t, d.Dirty())
}

func TestUndoRedoRoundTrip(t *testing.T) {
	t.Parallel()

	d := newDoc("")
	for _, b := range []byte("abc") {
		require.NoError(t, d.InsertChar(b))
	}
	require.NoError(t, d.Backspace())
	require.NoError(t, d.Backspace())
	afterEdits := string(d.buf.Bytes())
	assert.Equal(t, "a", afterEdits)

	require.NoError(t, d.Undo())
	require.NoError(t, d.Undo())
	assert.Equal(t, "", string(d.buf.Bytes()))
	assert.False(t, d.Dirty())

	require.NoError(t, d.Redo())
	require.NoError(t, d.Redo())
	assert.Equal(t, afterEdits, string(d.buf.Bytes()))
}

func TestLinePosInvariantAfterEdits(t *testing.T) {
	t.Parallel()

	d := newDoc("one\ntwo\nthree\n")
	d.GotoLine(2)
	require.NoError(t, d.InsertChar('X'))
	require.NoError(t, d.Newline())
	require.NoError(t, d.Backspace())

	if d.linePos > 0 {
		assert.Equal(t, '\n', rune(d.buf.Get(d.linePos-1)))
	}
	assert.LessOrEqual(t, d.col, d.LineLength(d.linePos))
}

func TestSelectAllThenCut(t *testing.T) {
	t.Parallel()

	d := newDoc("hello world")
	d.SelectAll()
	start, end, ok := d.SelectionRange()
	require.True(t, ok)
	assert.Equal(t, 0, start)
	assert.Equal(t, 11, end)

	data, ok := d.CutSelection()
	require.True(t, ok)
	assert.Equal(t, "hello world", string(data))
	assert.Equal(t, "", string(d.buf.Bytes()))
}

func TestFileUnderCursorParsesLineSuffix(t *testing.T) {
	t.Parallel()

	d := newDoc("see main.go:42 for details")
	d.moveto(6, false) // inside "main.go"

	name, line, hasLine := d.FileUnderCursor()
	assert.Equal(t, "main.go", name)
	assert.True(t, hasLine)
	assert.Equal(t, 42, line)
}

func TestOpenMissingFileYieldsNewUnsavedDocument(t *testing.T) {
	t.Parallel()

	d, err := Open("/nonexistent/path/that/should/not/exist.txt")
	require.NoError(t, err)
	assert.True(t, d.IsNewFile())
	assert.Equal(t, 0, d.Length())
}
