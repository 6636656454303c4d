package contextfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestIsBinaryFile(t *testing.T) {
	t.Run("plain ascii text", func(t *testing.T) {
		path := writeTempFile(t, "notes.txt", []byte("hello world\n"))
		assert.False(t, IsBinaryFile(path))
	})

	t.Run("empty file is text", func(t *testing.T) {
		path := writeTempFile(t, "empty.txt", nil)
		assert.False(t, IsBinaryFile(path))
	})

	t.Run("null byte in probe window", func(t *testing.T) {
		path := writeTempFile(t, "data.txt", []byte("abc\x00def"))
		assert.True(t, IsBinaryFile(path))
	})

	t.Run("null byte regardless of code extension", func(t *testing.T) {
		path := writeTempFile(t, "fake.py", append([]byte("print('hi')"), 0x00))
		assert.True(t, IsBinaryFile(path))
	})

	t.Run("invalid utf8 without nulls", func(t *testing.T) {
		path := writeTempFile(t, "latin1.txt", []byte{0xff, 0xfe, 0x41, 0x42})
		assert.True(t, IsBinaryFile(path))
	})

	t.Run("non-text mime type wins over content", func(t *testing.T) {
		path := writeTempFile(t, "image.png", []byte("this is actually text"))
		assert.True(t, IsBinaryFile(path))
	})

	t.Run("unreadable file treated as binary", func(t *testing.T) {
		assert.True(t, IsBinaryFile(filepath.Join(t.TempDir(), "missing.txt")))
	})

	t.Run("multibyte rune straddling probe boundary", func(t *testing.T) {
		// Fill up to one byte short of the probe window, then a 3-byte rune.
		content := append(bytes.Repeat([]byte("a"), BinaryProbeSize-1), []byte("€")...)
		path := writeTempFile(t, "boundary.txt", content)
		assert.False(t, IsBinaryFile(path))
	})

	t.Run("utf8 multibyte text", func(t *testing.T) {
		path := writeTempFile(t, "unicode.txt", []byte(strings.Repeat("héllo wörld ", 10)))
		assert.False(t, IsBinaryFile(path))
	})
}
