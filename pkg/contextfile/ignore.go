// File: pkg/contextfile/ignore.go
package contextfile

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// IgnoreList holds the ordered patterns loaded from a .context-ignore file
// and matches paths against them. Patterns keep their file order; the first
// match decides.
type IgnoreList struct {
	root     string
	patterns []string
	logger   *zap.Logger
}

// NewIgnoreList builds an IgnoreList for the given scan root and patterns.
func NewIgnoreList(root string, patterns []string, logger *zap.Logger) *IgnoreList {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IgnoreList{root: root, patterns: patterns, logger: logger}
}

// LoadIgnoreFile reads the .context-ignore file at the root directory, if
// present, and returns an IgnoreList over its patterns. Every non-empty,
// non-comment line becomes one pattern, order preserved. A missing or
// unreadable file yields an empty list; read failures are logged, not fatal.
func LoadIgnoreFile(root string, logger *zap.Logger) *IgnoreList {
	ignorePath := filepath.Join(root, IgnoreFileName)

	content, err := os.ReadFile(ignorePath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to read ignore file",
				zap.String("file", ignorePath),
				zap.Error(err))
		}
		return NewIgnoreList(root, nil, logger)
	}

	var patterns []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}

	logger.Info("Loaded ignore file",
		zap.String("file", ignorePath),
		zap.Int("patterns", len(patterns)))
	return NewIgnoreList(root, patterns, logger)
}

// Len returns the number of loaded patterns.
func (il *IgnoreList) Len() int {
	return len(il.patterns)
}

// MatchesPath reports whether the given file path matches any ignore
// pattern. Matching runs against the root-relative path in slash form; if
// the path cannot be made relative to the root, its full string form is
// used instead. A pattern with a trailing separator names a directory and
// matches everything beneath it; otherwise glob matching is attempted,
// falling back to exact string equality.
func (il *IgnoreList) MatchesPath(path string) bool {
	if len(il.patterns) == 0 {
		return false
	}

	relPath, err := filepath.Rel(il.root, path)
	if err != nil {
		relPath = path
	}
	relPath = filepath.ToSlash(relPath)

	for _, pattern := range il.patterns {
		if matchesPattern(relPath, pattern) {
			il.logger.Debug("Path matches ignore pattern",
				zap.String("path", relPath),
				zap.String("pattern", pattern))
			return true
		}
	}
	return false
}

// matchesPattern applies a single ignore pattern to a slash-form relative path.
func matchesPattern(relPath, pattern string) bool {
	if strings.HasSuffix(pattern, "/") {
		dir := strings.TrimSuffix(pattern, "/")
		return relPath == dir || strings.HasPrefix(relPath, dir+"/")
	}
	if matched, err := filepath.Match(pattern, relPath); err == nil && matched {
		return true
	}
	return relPath == pattern
}
