// File: pkg/contextfile/gitignore.go
package contextfile

import (
	"os"
	"path/filepath"

	gitignore "github.com/monochromegane/go-gitignore"
	"go.uber.org/zap"
)

// loadGitignore parses a .gitignore at the scan root when the caller asked
// for it. Returns nil when the file is absent or unparseable; files matched
// by it are counted as skipped, never as ignored by the context ignore file.
func loadGitignore(root string, logger *zap.Logger) gitignore.IgnoreMatcher {
	gitignorePath := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(gitignorePath); err != nil {
		return nil
	}

	matcher, err := gitignore.NewGitIgnore(gitignorePath)
	if err != nil {
		logger.Warn("Failed to parse .gitignore",
			zap.String("file", gitignorePath),
			zap.Error(err))
		return nil
	}

	logger.Info("Honoring .gitignore", zap.String("file", gitignorePath))
	return matcher
}

// matchesGitignore applies the optional matcher to a root-relative path.
func matchesGitignore(matcher gitignore.IgnoreMatcher, root, path string) bool {
	if matcher == nil {
		return false
	}
	relPath, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return matcher.Match(relPath, false)
}
