package names

import (
	"bufio"
	"fmt"
	"os"

	"decorate/internal/domain"
)

// maxLineSize bounds a single name list entry.
const maxLineSize = 1024 * 1024

// FileLoader reads a name list with one function name per line.
type FileLoader struct{}

func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// LoadNames strips the line terminator from each entry and nothing else.
func (l *FileLoader) LoadNames(path string) (domain.NameSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open name list: %w", err)
	}
	defer f.Close()

	names := make(domain.NameSet)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		// ScanLines drops "\n" and one preceding "\r".
		names.Add(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read name list %s: %w", path, err)
	}

	return names, nil
}
