// Package source reads annotated files as line slices.
package source

import (
	"fmt"
	"os"
	"strings"
)

// ReadLines reads the file at path and returns its lines without line
// terminators. Both "\n" and "\r\n" endings are stripped, and a trailing
// newline does not add an empty final line.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return SplitLines(string(data)), nil
}

// SplitLines splits content the same way ReadLines does.
func SplitLines(content string) []string {
	if content == "" {
		return []string{}
	}

	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}

	return lines
}
