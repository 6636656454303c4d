// File: pkg/contextfile/aggregate.go
package contextfile

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	gitignore "github.com/monochromegane/go-gitignore"
	"go.uber.org/zap"
)

// timeLayout is the ISO 8601 form used for the generation and
// last-modified timestamps.
const timeLayout = "2006-01-02T15:04:05"

// separatorLine divides the per-file blocks in the artifact.
var separatorLine = strings.Repeat("=", 80)

// FileRecord captures the metadata emitted in a file's header block.
// Derived on demand from filesystem metadata, never persisted.
type FileRecord struct {
	Path         string    // Absolute path.
	RelativePath string    // Path relative to the scan root, slash form.
	SizeBytes    int64     // Size at stat time.
	LastModified time.Time // Modification timestamp.
	Type         FileType  // Classification per ClassifyFile.
	Extension    string    // File extension including the dot.
	Filename     string    // Base name.
}

// NewFileRecord builds a FileRecord from stat metadata.
func NewFileRecord(path, root string, info fs.FileInfo) FileRecord {
	relPath, err := filepath.Rel(root, path)
	if err != nil {
		relPath = path
	}
	return FileRecord{
		Path:         path,
		RelativePath: filepath.ToSlash(relPath),
		SizeBytes:    info.Size(),
		LastModified: info.ModTime(),
		Type:         ClassifyFile(path),
		Extension:    filepath.Ext(path),
		Filename:     filepath.Base(path),
	}
}

// RunSummary accumulates the per-file dispositions of one run. Every
// discovered regular file lands in exactly one of the three counters.
type RunSummary struct {
	Processed  int   // Files written into the artifact.
	Ignored    int   // Files matched by the .context-ignore file.
	Skipped    int   // Files excluded for any other reason.
	TotalBytes int64 // Sum of processed files' sizes.
}

// candidate pairs a discovered file with its stat info so each file is
// statted once during the walk.
type candidate struct {
	path string
	info fs.FileInfo
}

// Aggregate walks the tree rooted at args.Directory, filters each regular
// file, and writes the context file to args.Output. It returns the run
// counters. Per-file failures are logged and counted as skipped; only
// failures to produce the artifact itself are returned as errors.
func Aggregate(args *Arguments, filter *Filter, gi gitignore.IgnoreMatcher, logger *zap.Logger) (*RunSummary, error) {
	root, err := filepath.Abs(args.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root directory: %w", err)
	}
	outputPath, err := filepath.Abs(args.Output)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output path: %w", err)
	}

	logger.Info("Scanning directory", zap.String("root", root))

	candidates, err := collectCandidates(root, args.IncludePatterns, logger)
	if err != nil {
		return nil, err
	}

	// Deterministic output regardless of traversal order.
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].path < candidates[j].path
	})

	outFile, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", outputPath, err)
	}
	defer func() {
		if closeErr := outFile.Close(); closeErr != nil {
			logger.Error("Failed to close output file",
				zap.String("file", outputPath),
				zap.Error(closeErr))
		}
	}()

	writer := bufio.NewWriter(outFile)
	writeArtifactHeader(writer, root)

	summary := &RunSummary{}
	for _, cand := range candidates {
		processCandidate(writer, cand, root, outputPath, filter, gi, summary, logger)
	}

	writeSummaryBlock(writer, summary)

	if err := writer.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush output file: %w", err)
	}
	return summary, nil
}

// collectCandidates enumerates all regular files under root, narrowed by
// the optional include regexes. Files dropped by the include pre-filter
// are not candidates and touch no counter.
func collectCandidates(root string, includePatterns []string, logger *zap.Logger) ([]candidate, error) {
	includes, err := compilePatterns(includePatterns)
	if err != nil {
		return nil, fmt.Errorf("invalid include pattern: %w", err)
	}

	var candidates []candidate
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Error accessing path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if len(includes) > 0 && !matchesAny(includes, path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			logger.Warn("Failed to stat file", zap.String("path", path), zap.Error(err))
			return nil
		}
		candidates = append(candidates, candidate{path: path, info: info})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", root, walkErr)
	}
	return candidates, nil
}

// processCandidate gives one file its disposition, bumps the matching
// counter, and emits the file's block when it is included.
func processCandidate(writer *bufio.Writer, cand candidate, root, outputPath string, filter *Filter, gi gitignore.IgnoreMatcher, summary *RunSummary, logger *zap.Logger) {
	// Never ingest the artifact being written.
	if cand.path == outputPath {
		summary.Skipped++
		return
	}

	disposition := filter.Decide(cand.path, cand.info)
	switch disposition {
	case IgnoredByPattern:
		summary.Ignored++
		return
	case ExcludedByRegex, SkippedBinary, SkippedTooLarge:
		summary.Skipped++
		logger.Debug("Excluding file",
			zap.String("path", cand.path),
			zap.String("reason", disposition.String()))
		return
	}

	if matchesGitignore(gi, root, cand.path) {
		summary.Skipped++
		logger.Debug("Excluding file matched by .gitignore", zap.String("path", cand.path))
		return
	}

	// Read before writing anything so a failed file leaves no orphan
	// header in the artifact.
	content, err := os.ReadFile(cand.path)
	if err != nil {
		logger.Error("Error processing file", zap.String("path", cand.path), zap.Error(err))
		summary.Skipped++
		return
	}

	record := NewFileRecord(cand.path, root, cand.info)
	writeFileBlock(writer, record, content)

	summary.Processed++
	summary.TotalBytes += record.SizeBytes
}

// writeArtifactHeader writes the fixed artifact preamble.
func writeArtifactHeader(writer *bufio.Writer, root string) {
	fmt.Fprintf(writer, "# Codebase Context File for Gemini 2.5 Pro\n\n")
	fmt.Fprintf(writer, "Generated on: %s\n", time.Now().Format(timeLayout))
	fmt.Fprintf(writer, "Root directory: %s\n\n", root)
}

// writeFileBlock writes one file's separator header and content. Bytes
// that do not decode as UTF-8 are replaced rather than dropped.
func writeFileBlock(writer *bufio.Writer, record FileRecord, content []byte) {
	fmt.Fprintf(writer, "\n\n%s\n", separatorLine)
	fmt.Fprintf(writer, "FILE: %s\n", record.RelativePath)
	fmt.Fprintf(writer, "TYPE: %s\n", record.Type)
	fmt.Fprintf(writer, "SIZE: %d bytes\n", record.SizeBytes)
	fmt.Fprintf(writer, "LAST MODIFIED: %s\n", record.LastModified.Format(timeLayout))
	fmt.Fprintf(writer, "%s\n\n", separatorLine)
	writer.WriteString(strings.ToValidUTF8(string(content), string(utf8.RuneError)))
}

// writeSummaryBlock appends the closing counter block.
func writeSummaryBlock(writer *bufio.Writer, summary *RunSummary) {
	fmt.Fprintf(writer, "\n\n%s\n", separatorLine)
	fmt.Fprintf(writer, "SUMMARY\n")
	fmt.Fprintf(writer, "Files processed: %d\n", summary.Processed)
	fmt.Fprintf(writer, "Files ignored by %s: %d\n", IgnoreFileName, summary.Ignored)
	fmt.Fprintf(writer, "Files skipped for other reasons: %d\n", summary.Skipped)
	fmt.Fprintf(writer, "Total size: %d bytes\n", summary.TotalBytes)
	fmt.Fprintf(writer, "%s\n", separatorLine)
}

// matchesAny reports whether the path matches at least one compiled regex.
func matchesAny(patterns []*regexp.Regexp, path string) bool {
	for _, re := range patterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}
