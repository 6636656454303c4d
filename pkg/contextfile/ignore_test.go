package contextfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestIgnoreListMatchesPath(t *testing.T) {
	root := filepath.FromSlash("/repo")
	list := func(patterns ...string) *IgnoreList {
		return NewIgnoreList(root, patterns, zap.NewNop())
	}

	t.Run("no patterns matches nothing", func(t *testing.T) {
		assert.False(t, list().MatchesPath(filepath.FromSlash("/repo/main.go")))
	})

	t.Run("directory marker matches the directory itself", func(t *testing.T) {
		assert.True(t, list("node_modules/").MatchesPath(filepath.FromSlash("/repo/node_modules")))
	})

	t.Run("directory marker matches everything beneath", func(t *testing.T) {
		il := list("node_modules/")
		assert.True(t, il.MatchesPath(filepath.FromSlash("/repo/node_modules/pkg/index.js")))
		assert.False(t, il.MatchesPath(filepath.FromSlash("/repo/node_modules_backup/index.js")))
	})

	t.Run("glob pattern", func(t *testing.T) {
		il := list("*.log")
		assert.True(t, il.MatchesPath(filepath.FromSlash("/repo/debug.log")))
		// filepath.Match does not cross separators with a single star.
		assert.False(t, il.MatchesPath(filepath.FromSlash("/repo/logs/debug.log")))
	})

	t.Run("exact match fallback", func(t *testing.T) {
		il := list("docs/internal.md")
		assert.True(t, il.MatchesPath(filepath.FromSlash("/repo/docs/internal.md")))
		assert.False(t, il.MatchesPath(filepath.FromSlash("/repo/docs/internal.md.bak")))
	})

	t.Run("first matching pattern wins", func(t *testing.T) {
		il := list("secrets/", "*.md")
		assert.True(t, il.MatchesPath(filepath.FromSlash("/repo/secrets/keys.md")))
		assert.True(t, il.MatchesPath(filepath.FromSlash("/repo/notes.md")))
	})

	t.Run("path outside root matched by full string", func(t *testing.T) {
		il := NewIgnoreList(root, []string{"../elsewhere/f.txt"}, zap.NewNop())
		assert.True(t, il.MatchesPath(filepath.FromSlash("/elsewhere/f.txt")))
	})
}

func TestLoadIgnoreFile(t *testing.T) {
	t.Run("missing file yields empty list", func(t *testing.T) {
		il := LoadIgnoreFile(t.TempDir(), zap.NewNop())
		assert.Zero(t, il.Len())
	})

	t.Run("comments and blanks are dropped, order preserved", func(t *testing.T) {
		root := t.TempDir()
		content := "# ignore rules\n\nnode_modules/\n  *.log  \n\n# trailing comment\ndocs/tmp.md\n"
		require.NoError(t, os.WriteFile(filepath.Join(root, IgnoreFileName), []byte(content), 0o644))

		il := LoadIgnoreFile(root, zap.NewNop())
		require.Equal(t, 3, il.Len())
		assert.Equal(t, []string{"node_modules/", "*.log", "docs/tmp.md"}, il.patterns)
	})
}
