// File: pkg/contextfile/classify.go
package contextfile

import (
	"mime"
	"path/filepath"
	"strings"
)

// FileType is the closed set of classifications a file can receive.
type FileType string

const (
	TypeCode                 FileType = "code"
	TypeDocumentation        FileType = "documentation"
	TypeArchitectureDecision FileType = "architecture_decision"
	TypeText                 FileType = "text"
	TypeBinary               FileType = "binary"
	TypeUnknown              FileType = "unknown"
)

// codeExtensions maps known source-code file extensions.
var codeExtensions = map[string]bool{
	".py": true, ".js": true, ".ts": true, ".java": true, ".cpp": true,
	".c": true, ".go": true, ".rs": true, ".php": true, ".rb": true,
}

// documentationExtensions maps known documentation file extensions.
var documentationExtensions = map[string]bool{
	".md": true, ".txt": true, ".rst": true, ".adoc": true,
}

// documentationFilenames maps well-known extensionless documentation names.
var documentationFilenames = map[string]bool{
	"readme": true, "license": true, "contributing": true,
	"changelog": true, "authors": true,
}

// codeMimeSubtypes maps MIME text subtypes that identify source code.
var codeMimeSubtypes = map[string]bool{
	"x-python": true, "javascript": true, "x-java": true, "x-c": true,
}

// ClassifyFile determines the type of a file from its path alone.
// It consults the system MIME table first and falls back to fixed
// extension and filename tables. It never fails; unresolvable paths
// are classified as unknown.
func ClassifyFile(path string) FileType {
	ext := strings.ToLower(filepath.Ext(path))

	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		return classifyByName(path, ext)
	}

	// Strip any parameters such as "; charset=utf-8".
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}

	if !strings.HasPrefix(mimeType, "text") {
		return TypeBinary
	}
	if strings.Contains(mimeType, "markdown") {
		if isArchitectureDecision(path, ext) {
			return TypeArchitectureDecision
		}
		return TypeDocumentation
	}
	subtype := mimeType[strings.LastIndex(mimeType, "/")+1:]
	if codeMimeSubtypes[subtype] {
		return TypeCode
	}
	return TypeText
}

// classifyByName applies the fixed fallback tables when no MIME type is known.
func classifyByName(path, ext string) FileType {
	if isArchitectureDecision(path, ext) {
		return TypeArchitectureDecision
	}
	if codeExtensions[ext] {
		return TypeCode
	}
	if documentationExtensions[ext] {
		return TypeDocumentation
	}
	if documentationFilenames[strings.ToLower(filepath.Base(path))] {
		return TypeDocumentation
	}
	return TypeUnknown
}

// isArchitectureDecision reports whether the path carries an ADR marker
// together with a documentation extension.
func isArchitectureDecision(path, ext string) bool {
	return ext == ".md" && strings.Contains(strings.ToLower(path), "adr")
}
