package contextfile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func decideOn(t *testing.T, f *Filter, path string) Disposition {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	return f.Decide(path, info)
}

func TestFilterDecide(t *testing.T) {
	root := t.TempDir()
	write := func(name string, content []byte) string {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, content, 0o644))
		return path
	}

	textFile := write("src/main.py", []byte("print('ok')\n"))
	gitFile := write(".git/config", []byte("[core]\n"))
	vendored := write("vendor/lib.js", []byte("module.exports = {}\n"))
	binFile := write("blob.dat", []byte{0x01, 0x00, 0x02})
	bigFile := write("big.txt", bytes.Repeat([]byte("x"), MaxFileSizeBytes+1))

	ignores := NewIgnoreList(root, []string{"vendor/"}, zap.NewNop())
	filter, err := NewFilter([]string{`\.git`}, ignores)
	require.NoError(t, err)

	t.Run("clean text file is included", func(t *testing.T) {
		assert.Equal(t, Included, decideOn(t, filter, textFile))
	})

	t.Run("exclude regex", func(t *testing.T) {
		assert.Equal(t, ExcludedByRegex, decideOn(t, filter, gitFile))
	})

	t.Run("ignore pattern", func(t *testing.T) {
		assert.Equal(t, IgnoredByPattern, decideOn(t, filter, vendored))
	})

	t.Run("binary content", func(t *testing.T) {
		assert.Equal(t, SkippedBinary, decideOn(t, filter, binFile))
	})

	t.Run("over size threshold", func(t *testing.T) {
		assert.Equal(t, SkippedTooLarge, decideOn(t, filter, bigFile))
	})

	t.Run("regex outranks ignore pattern", func(t *testing.T) {
		// A file matching both checks must land in the regex bucket,
		// because the regex check runs first.
		both := write("vendor/.git-keep", []byte("x\n"))
		assert.Equal(t, ExcludedByRegex, decideOn(t, filter, both))
	})
}

func TestNewFilterRejectsInvalidRegex(t *testing.T) {
	_, err := NewFilter([]string{"("}, nil)
	assert.Error(t, err)
}

func TestDefaultExcludePatternsCopied(t *testing.T) {
	first := DefaultExcludePatterns()
	first[0] = "mutated"
	second := DefaultExcludePatterns()
	assert.NotEqual(t, first[0], second[0])
}
