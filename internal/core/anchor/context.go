package anchor

import (
	"errors"
	"fmt"
	"slices"
)

// ErrOutOfRange is returned when a line index falls outside the file.
var ErrOutOfRange = errors.New("line index out of range")

// Context is the fingerprint of a line: up to Radius lines before it, the
// line itself and up to Radius lines after it.
type Context struct {
	Before []string `json:"before"`
	Target string   `json:"target"`
	After  []string `json:"after"`
}

// Equal reports whether both contexts hold exactly the same text. Nil and
// empty windows are equal.
func (c Context) Equal(o Context) bool {
	return c.Target == o.Target &&
		slices.Equal(c.Before, o.Before) &&
		slices.Equal(c.After, o.After)
}

// Extract returns the context window of lines[index] with the given radius,
// clipped at the start and end of the file. The returned slices are copies
// and do not alias lines.
func Extract(lines []string, index, radius int) (Context, error) {
	if index < 0 || index >= len(lines) {
		return Context{}, fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, index, len(lines))
	}

	start := max(0, index-radius)
	end := min(index+radius+1, len(lines))

	return Context{
		Before: slices.Clone(lines[start:index]),
		Target: lines[index],
		After:  slices.Clone(lines[index+1 : end]),
	}, nil
}
