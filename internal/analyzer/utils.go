package analyzer

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadFile reads a source file with automatic encoding detection.
// UTF-8 is tried first (a leading BOM is dropped); otherwise the configured
// fallback encodings are tried in order, e.g. "euc-kr", "shift_jis", "windows-1252".
func ReadFile(path string, encodings []string) (string, error) {
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return BytesToString(rawBytes, encodings)
}

// BytesToString decodes source bytes, see ReadFile
func BytesToString(data []byte, encodings []string) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}

	for _, name := range encodings {
		if isUTF8(name) {
			continue
		}
		enc, err := htmlindex.Get(name)
		if err != nil {
			return "", fmt.Errorf("unknown encoding %q: %w", name, err)
		}
		decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
		if err != nil {
			continue
		}
		if utf8.Valid(decoded) {
			return string(decoded), nil
		}
	}

	return "", fmt.Errorf("content is not valid UTF-8 and no configured encoding (%s) could decode it", strings.Join(encodings, ", "))
}

// DetectEncoding reports the first encoding that decodes data
func DetectEncoding(data []byte, encodings []string) string {
	if utf8.Valid(bytes.TrimPrefix(data, utf8BOM)) {
		return "utf-8"
	}
	for _, name := range encodings {
		if isUTF8(name) {
			continue
		}
		if _, err := BytesToString(data, []string{name}); err == nil {
			return strings.ToLower(name)
		}
	}
	return ""
}

func isUTF8(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8", "utf8":
		return true
	}
	return false
}

// IsTypeScriptFile checks if a file is a TypeScript source file.
// Declaration files carry no implementations and are skipped.
func IsTypeScriptFile(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".ts") && !strings.HasSuffix(lower, ".d.ts")
}
