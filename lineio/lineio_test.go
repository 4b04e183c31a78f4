package lineio_test

import (
	"strings"
	"testing"

	"github.com/nucleobase/insdc/lineio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeekDoesNotConsume(t *testing.T) {
	ls := lineio.New(strings.NewReader("one\ntwo\n"), 1024)
	line, ok := ls.Peek()
	require.True(t, ok)
	assert.Equal(t, "one", line)
	line, ok = ls.Peek()
	require.True(t, ok)
	assert.Equal(t, "one", line)
}

func TestConsumeAdvancesAndCountsLines(t *testing.T) {
	ls := lineio.New(strings.NewReader("one\ntwo\nthree\n"), 1024)
	assert.Equal(t, "one", ls.Consume())
	assert.Equal(t, 1, ls.Line())
	assert.Equal(t, "two", ls.Consume())
	assert.Equal(t, "three", ls.Consume())
	assert.True(t, ls.AtEOF())
}

func TestEmptyInputIsImmediatelyAtEOF(t *testing.T) {
	ls := lineio.New(strings.NewReader(""), 1024)
	assert.True(t, ls.AtEOF())
	_, ok := ls.Peek()
	assert.False(t, ok)
}
