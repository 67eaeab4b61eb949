package source

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/natefinch/atomic"
)

// FileStore loads a source file fully into memory and writes it back to the
// same path.
type FileStore struct {
	useAtomic bool
}

// NewFileStore returns a store. With useAtomic set, Save writes a temporary
// file next to the target and renames it into place; otherwise the target is
// truncated and rewritten directly.
func NewFileStore(useAtomic bool) *FileStore {
	return &FileStore{useAtomic: useAtomic}
}

func (s *FileStore) Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	return SplitLines(string(data)), nil
}

func (s *FileStore) Save(path string, lines []string) error {
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
	}

	if s.useAtomic {
		if err := atomic.WriteFile(path, &buf); err != nil {
			return fmt.Errorf("failed to write source %s: %w", path, err)
		}
		return nil
	}

	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(path, buf.Bytes(), perm); err != nil {
		return fmt.Errorf("failed to write source: %w", err)
	}
	return nil
}

// SplitLines splits content after each "\n", keeping terminators. A final
// line without terminator is kept; empty content has no lines.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
