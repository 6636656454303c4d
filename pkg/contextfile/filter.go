// File: pkg/contextfile/filter.go
package contextfile

import (
	"io/fs"
	"regexp"
)

// Disposition is the single decision every discovered regular file receives.
type Disposition int

const (
	// Included files are written into the context file.
	Included Disposition = iota
	// ExcludedByRegex marks files matching an exclude regex; counted as skipped.
	ExcludedByRegex
	// IgnoredByPattern marks files matched by the ignore file; counted separately.
	IgnoredByPattern
	// SkippedBinary marks files whose content probed as binary.
	SkippedBinary
	// SkippedTooLarge marks files over the size cutoff.
	SkippedTooLarge
)

// String returns a short label for logging.
func (d Disposition) String() string {
	switch d {
	case Included:
		return "included"
	case ExcludedByRegex:
		return "excluded by regex"
	case IgnoredByPattern:
		return "ignored by pattern"
	case SkippedBinary:
		return "binary"
	case SkippedTooLarge:
		return "too large"
	default:
		return "unknown"
	}
}

// Filter bundles the compiled exclusion rules applied to each candidate file.
type Filter struct {
	excludes []*regexp.Regexp
	ignores  *IgnoreList
}

// NewFilter compiles the exclude regexes and pairs them with the ignore
// list. An invalid regex is a caller error and fails construction.
func NewFilter(excludePatterns []string, ignores *IgnoreList) (*Filter, error) {
	excludes, err := compilePatterns(excludePatterns)
	if err != nil {
		return nil, err
	}
	return &Filter{excludes: excludes, ignores: ignores}, nil
}

// Decide returns the disposition for one file. The checks run in a fixed
// order so that each exclusion reason lands in the right counter: exclude
// regexes first, then ignore patterns, then binary content, then size.
func (f *Filter) Decide(path string, info fs.FileInfo) Disposition {
	for _, re := range f.excludes {
		if re.MatchString(path) {
			return ExcludedByRegex
		}
	}
	if f.ignores != nil && f.ignores.MatchesPath(path) {
		return IgnoredByPattern
	}
	if IsBinaryFile(path) {
		return SkippedBinary
	}
	if info.Size() > MaxFileSizeBytes {
		return SkippedTooLarge
	}
	return Included
}

// compilePatterns compiles a list of regex strings, failing on the first
// invalid one.
func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}
