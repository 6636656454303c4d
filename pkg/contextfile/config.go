// File: pkg/contextfile/config.go
package contextfile

// Arguments holds the configuration options for a single context file run.
type Arguments struct {
	Directory        string   // Root directory of the codebase to scan.
	Output           string   // Destination path for the generated context file.
	ExcludePatterns  []string // Regex patterns excluding files; empty means "use defaults".
	IncludePatterns  []string // Optional regex patterns pre-filtering the candidate set.
	RespectGitignore bool     // If true, also honor a root .gitignore file.
	CountTokens      bool     // If true, estimate tokens of the emitted artifact.
	CopyToClipboard  bool     // If true, copy the artifact to the system clipboard.
}

// Constants governing file selection and output formatting.
const (
	// IgnoreFileName is the user-maintained ignore file read from the scan root.
	IgnoreFileName = ".context-ignore"

	// DefaultOutputFile is the artifact path when -o is not given.
	DefaultOutputFile = "gemini_context.txt"

	// MaxFileSizeBytes is the inclusion cutoff; larger files are skipped.
	MaxFileSizeBytes = 1_000_000

	// BinaryProbeSize is how many leading bytes are inspected for binary content.
	BinaryProbeSize = 1024
)

// defaultExcludePatterns is the built-in exclusion list covering version
// control, caches, dependencies, build artifacts, and coverage output.
// Never mutated; callers receive a copy via DefaultExcludePatterns.
var defaultExcludePatterns = [...]string{
	`\.git`,
	`__pycache__`,
	`\.pyc$`,
	`\.DS_Store$`,
	`node_modules`,
	`\.venv`,
	`venv`,
	`\.env`,
	`\.idea`,
	`\.vscode`,
	`dist`,
	`build`,
	`coverage`,
	`\.coverage`,
	`\.pytest_cache`,
	`\.tox`,
}

// DefaultExcludePatterns returns a fresh copy of the built-in exclude list.
func DefaultExcludePatterns() []string {
	patterns := make([]string, len(defaultExcludePatterns))
	copy(patterns, defaultExcludePatterns[:])
	return patterns
}
