package generator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Sink receives rendered files
type Sink interface {
	// WriteFile writes content to a path relative to the sink's root
	WriteFile(path string, content []byte) error
}

// FilesystemSink writes files under Root using temp file + rename, so a
// reader never sees a half-written client.
type FilesystemSink struct {
	Root string
	Mode os.FileMode
}

// NewFilesystemSink creates a sink writing to root
func NewFilesystemSink(root string) *FilesystemSink {
	return &FilesystemSink{Root: root, Mode: 0644}
}

// WriteFile writes content to path within the root directory
func (s *FilesystemSink) WriteFile(path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}

	fullPath := filepath.Join(s.Root, filepath.FromSlash(path))
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	mode := s.Mode
	if mode == 0 {
		mode = 0644
	}

	tempFile, err := os.CreateTemp(dir, ".nest-sdk-gen-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	_, writeErr := tempFile.Write(content)
	closeErr := tempFile.Close()
	if writeErr == nil {
		writeErr = closeErr
	}
	if writeErr == nil {
		writeErr = os.Chmod(tempPath, mode)
	}
	if writeErr == nil {
		writeErr = os.Rename(tempPath, fullPath)
	}
	if writeErr != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to write file: %w", writeErr)
	}
	return nil
}

// MemorySink keeps written files in memory
type MemorySink struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemorySink creates an empty MemorySink
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// WriteFile stores a copy of content under path
func (s *MemorySink) WriteFile(path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = append([]byte(nil), content...)
	return nil
}

// Get returns the content stored under path
func (s *MemorySink) Get(path string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.files[path]
	return content, ok
}

// Len returns the number of stored files
func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

// ValidatePath rejects paths that could leave the sink's root
func ValidatePath(path string) error {
	if path == "" {
		return errors.New("path is empty")
	}
	if strings.Contains(path, "\\") {
		return errors.New("path must use forward slashes")
	}
	if strings.HasPrefix(path, "/") || filepath.IsAbs(path) {
		return errors.New("path must be relative")
	}
	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return errors.New("path must not contain ..")
		}
	}
	return nil
}
