package lines

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kk-code-lab/rpick/internal/candidate"
)

func TestRead(t *testing.T) {
	items, err := Read(strings.NewReader("alpha\r\n\n  \nbeta gamma\nlast"))
	require.NoError(t, err)

	require.Len(t, items, 3)
	assert.Equal(t, candidate.Item{Name: "alpha", Exec: "alpha", Kind: candidate.KindLine}, items[0])
	assert.Equal(t, "beta gamma", items[1].Name)
	assert.Equal(t, "last", items[2].Name)
}

func TestReadEmpty(t *testing.T) {
	items, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestReadLongLine(t *testing.T) {
	long := strings.Repeat("x", 200*1024)
	items, err := Read(strings.NewReader(long + "\n"))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Len(t, items[0].Name, len(long))
}

func TestReadTooLong(t *testing.T) {
	_, err := Read(strings.NewReader(strings.Repeat("x", maxLineBytes+1)))
	assert.True(t, errors.Is(err, bufio.ErrTooLong))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestReadError(t *testing.T) {
	_, err := Read(failingReader{})
	assert.ErrorContains(t, err, "boom")
}

func TestReadDropsUTF8BOM(t *testing.T) {
	items, err := Read(strings.NewReader("\xEF\xBB\xBFfirst\nsecond\n"))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "first", items[0].Name)
}

func TestReadTranscodesUTF16LE(t *testing.T) {
	// BOM, "hi\nyo\n" in UTF-16LE
	data := []byte{0xFF, 0xFE, 'h', 0, 'i', 0, '\n', 0, 'y', 0, 'o', 0, '\n', 0}
	items, err := Read(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "hi", items[0].Name)
	assert.Equal(t, "yo", items[1].Name)
}

func TestReadTranscodesUTF16BE(t *testing.T) {
	data := []byte{0xFE, 0xFF, 0, 'o', 0, 'k'}
	items, err := Read(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "ok", items[0].Name)
}

func TestReadRejectsBinary(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte{0x7F, 'E', 'L', 'F', 0x02, 0x01, 0x00, 0x00}))
	assert.ErrorIs(t, err, ErrBinaryInput)
}

func TestLooksText(t *testing.T) {
	assert.True(t, looksText(nil))
	assert.True(t, looksText([]byte("plain ascii\n")))
	assert.True(t, looksText([]byte("caf\xC3\xA9")))
	assert.True(t, looksText([]byte("latin1 caf\xE9\n")))
	assert.False(t, looksText([]byte{0x01, 0x02, 0x03, 0x04, 'a'}))
}

func TestReadRejectsControlBytes(t *testing.T) {
	// Valid UTF-8, but mostly C0 controls.
	data := []byte{0x01, 0x02, 0x03, 0x04, 'a', '\n', 0x07, 0x08, 0x1f, '\n'}
	_, err := Read(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrBinaryInput)
}

func TestReadAcceptsColoredLines(t *testing.T) {
	items, err := Read(strings.NewReader("\x1b[31mred\x1b[0m\nplain\n"))
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
