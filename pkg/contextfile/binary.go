// File: pkg/contextfile/binary.go
package contextfile

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// IsBinaryFile reports whether a file should be treated as binary and
// therefore excluded from the context file. The MIME table is trusted when
// it confidently declares a non-text type; otherwise the first
// BinaryProbeSize bytes are probed for null bytes and UTF-8 validity.
// Any I/O failure while probing counts as binary, excluding the file
// rather than risking corrupt output.
func IsBinaryFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if mimeType := mime.TypeByExtension(ext); mimeType != "" && !strings.HasPrefix(mimeType, "text") {
		return true
	}

	file, err := os.Open(path)
	if err != nil {
		return true
	}
	defer file.Close()

	buffer := make([]byte, BinaryProbeSize)
	n, err := file.Read(buffer)
	if err != nil && !errors.Is(err, io.EOF) {
		return true
	}
	chunk := buffer[:n]

	if bytes.IndexByte(chunk, 0) >= 0 {
		return true
	}

	return !validUTF8Chunk(chunk)
}

// validUTF8Chunk checks that the probed bytes decode as UTF-8 text. A rune
// truncated by the probe boundary is tolerated: only the complete prefix
// is required to be valid.
func validUTF8Chunk(chunk []byte) bool {
	if utf8.Valid(chunk) {
		return true
	}
	if len(chunk) < BinaryProbeSize {
		return false
	}
	// The probe may have cut a multi-byte rune; strip up to three trailing
	// continuation bytes before judging.
	end := len(chunk)
	for i := 0; i < utf8.UTFMax-1 && end > 0; i++ {
		if r, _ := utf8.DecodeLastRune(chunk[:end]); r != utf8.RuneError {
			break
		}
		end--
	}
	return utf8.Valid(chunk[:end])
}
