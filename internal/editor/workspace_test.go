package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRingNavigationOrder reproduces spec.md scenario 6: with documents
// A, B, C opened in that order (C current), Shift-Tab (Next) visits
// A then B, and Ctrl-Tab (Prev) from B goes back to A.
func TestRingNavigationOrder(t *testing.T) {
	t.Parallel()

	w := NewWorkspace()
	a := w.CreateDocument()
	b := w.CreateDocument()
	c := w.CreateDocument()
	require.Equal(t, c, w.Current())

	assert.Equal(t, a, w.Next())
	assert.Equal(t, b, w.Next())
	assert.Equal(t, a, w.Prev())
}

func TestCloseFocusesPredecessorAndReportsEmpty(t *testing.T) {
	t.Parallel()

	w := NewWorkspace()
	a := w.CreateDocument()
	b := w.CreateDocument()

	empty := w.Close(b)
	assert.False(t, empty)
	assert.Equal(t, a, w.Current())

	empty = w.Close(a)
	assert.True(t, empty)
	assert.True(t, w.Empty())
}

func TestCutCopyPasteRoundTrip(t *testing.T) {
	t.Parallel()

	w := NewWorkspace()
	doc := w.CreateDocument()
	require.NoError(t, doc.InsertChar('h'))
	require.NoError(t, doc.InsertChar('i'))
	doc.SelectAll()

	w.Cut()
	assert.Equal(t, "", string(doc.buf.Bytes()))

	require.NoError(t, w.Paste())
	assert.Equal(t, "hi", string(doc.buf.Bytes()))
}

func TestFindByPathMatchesCanonicalized(t *testing.T) {
	t.Parallel()

	w := NewWorkspace()
	doc := w.CreateDocument()
	doc.filename = canonical("some/relative/path.txt")

	found, ok := w.FindByPath("some/relative/path.txt")
	assert.True(t, ok)
	assert.Equal(t, doc, found)

	_, ok = w.FindByPath("another/path.txt")
	assert.False(t, ok)
}

func TestUntitledNamesIncrement(t *testing.T) {
	t.Parallel()

	w := NewWorkspace()
	a := w.CreateDocument()
	b := w.CreateDocument()
	assert.Equal(t, "Untitled-1", a.Filename())
	assert.Equal(t, "Untitled-2", b.Filename())
}
