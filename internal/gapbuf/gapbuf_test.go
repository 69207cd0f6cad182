package gapbuf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tedit-editor/tedit/internal/gapbuf"
)

func TestEmpty(t *testing.T) {
	t.Parallel()

	g := gapbuf.New()
	assert.Equal(t, 0, g.Length())
	assert.Equal(t, -1, g.Get(0))
}

func TestInsertAtEnd(t *testing.T) {
	t.Parallel()

	g := gapbuf.New()
	require.NoError(t, g.Replace(0, 0, []byte("hello"), 5))
	assert.Equal(t, 5, g.Length())
	assert.Equal(t, "hello", string(g.Bytes()))
}

func TestInsertInMiddle(t *testing.T) {
	t.Parallel()

	g := gapbuf.NewFromBytes([]byte("helloworld"))
	require.NoError(t, g.Replace(5, 0, []byte(" "), 1))
	assert.Equal(t, "hello world", string(g.Bytes()))
}

func TestEraseRange(t *testing.T) {
	t.Parallel()

	g := gapbuf.NewFromBytes([]byte("hello world"))
	require.NoError(t, g.Replace(5, 6, nil, 0))
	assert.Equal(t, "hello", string(g.Bytes()))
}

func TestReplaceRange(t *testing.T) {
	t.Parallel()

	g := gapbuf.NewFromBytes([]byte("hello world"))
	require.NoError(t, g.Replace(6, 5, []byte("there"), 5))
	assert.Equal(t, "hello there", string(g.Bytes()))
}

func TestCopyOutSpansGap(t *testing.T) {
	t.Parallel()

	g := gapbuf.NewFromBytes([]byte("abcdefgh"))
	require.NoError(t, g.Replace(4, 0, nil, 0)) // moves the gap to the middle
	dest := make([]byte, 8)
	n := g.CopyOut(dest, 0, 8)
	assert.Equal(t, 8, n)
	assert.Equal(t, "abcdefgh", string(dest))
}

func TestCopyOutPartial(t *testing.T) {
	t.Parallel()

	g := gapbuf.NewFromBytes([]byte("abcdefgh"))
	dest := make([]byte, 10)
	n := g.CopyOut(dest, 3, 10)
	assert.Equal(t, 5, n)
	assert.Equal(t, "defgh", string(dest[:n]))
}

func TestLengthTracksInsertsAndErases(t *testing.T) {
	t.Parallel()

	g := gapbuf.New()
	inserted, erased := 0, 0
	ops := []struct {
		pos, eraseN int
		src         string
	}{
		{0, 0, "hello world"},
		{5, 0, ","},
		{0, 0, "oh, "},
		{2, 3, "wow"},
	}
	for _, op := range ops {
		require.NoError(t, g.Replace(op.pos, op.eraseN, []byte(op.src), len(op.src)))
		inserted += len(op.src)
		erased += op.eraseN
	}
	assert.Equal(t, inserted-erased, g.Length())
}

func TestReplaceRejectsOutOfRange(t *testing.T) {
	t.Parallel()

	g := gapbuf.NewFromBytes([]byte("abc"))
	assert.Error(t, g.Replace(2, 5, nil, 0))
	assert.Error(t, g.Replace(-1, 0, nil, 0))
}
