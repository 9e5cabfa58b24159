// Package note defines line-bound annotations and the store that persists them.
package note

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/hay-kot/docnote/internal/core/anchor"
)

// ErrNotFound is returned when no annotation exists at a key.
var ErrNotFound = errors.New("annotation not found")

// Key addresses an annotation by file path and zero-based line index.
type Key struct {
	Path string `json:"path"`
	Line int    `json:"line"`
}

// String renders the key as path:line using the zero-based index.
func (k Key) String() string {
	return k.Path + ":" + strconv.Itoa(k.Line)
}

// Location renders the key as path:line with a one-based line number, the
// form shown to users.
func (k Key) Location() string {
	return k.Path + ":" + strconv.Itoa(k.Line+1)
}

// ParseKey parses the output of Key.String. The path may itself contain
// colons; only the last one separates the line index.
func ParseKey(s string) (Key, error) {
	i := strings.LastIndexByte(s, ':')
	if i <= 0 {
		return Key{}, fmt.Errorf("invalid key %q: missing line index", s)
	}

	line, err := strconv.Atoi(s[i+1:])
	if err != nil || line < 0 {
		return Key{}, fmt.Errorf("invalid key %q: bad line index", s)
	}

	return Key{Path: s[:i], Line: line}, nil
}

// Annotation is a note bound to one line of one file. Context is the text
// observed around the line when the binding was last established.
type Annotation struct {
	ID string `json:"id"`
	anchor.Context
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompareKeys orders keys by path, then line.
func CompareKeys(a, b Key) int {
	if c := cmp.Compare(a.Path, b.Path); c != 0 {
		return c
	}
	return cmp.Compare(a.Line, b.Line)
}

// SortKeys sorts keys in place with CompareKeys.
func SortKeys(keys []Key) {
	slices.SortFunc(keys, CompareKeys)
}
