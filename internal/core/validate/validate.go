// Package validate provides shared validation functions for command input.
package validate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hay-kot/criterio"
)

// LineNumber checks that s is a one-based line number.
func LineNumber(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("%q is not a line number", s)
	}
	if n < 1 {
		return fmt.Errorf("line numbers start at 1, got %d", n)
	}
	return nil
}

// ParseLine converts a one-based line argument to a zero-based index.
func ParseLine(s string) (int, error) {
	if err := LineNumber(s); err != nil {
		return 0, err
	}
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n - 1, nil
}

// FilePath validates a path argument is non-empty after trimming whitespace.
func FilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

// PathLine validates a path and line argument pair, reporting both fields.
func PathLine(path, line string) error {
	return criterio.ValidateStruct(
		criterio.Run("path", path, FilePath),
		criterio.Run("line", line, LineNumber),
	)
}
