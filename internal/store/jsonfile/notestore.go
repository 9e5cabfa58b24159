// Package jsonfile persists annotations as a single JSON document. The whole
// table is read once when the store is opened and written back once when it
// is closed.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/hay-kot/docnote/internal/core/note"
	"github.com/hay-kot/docnote/pkg/kv"
)

const fileVersion = 1

// NotesFile is the root JSON structure stored on disk.
type NotesFile struct {
	Version int      `json:"version"`
	Notes   []Record `json:"notes"`
}

// Record is one annotation together with its key.
type Record struct {
	note.Key
	note.Annotation
}

// NoteStore implements note.Store on top of an in-memory table that is
// flushed to a JSON file on Close.
type NoteStore struct {
	path  string
	table *kv.Store[note.Key, note.Annotation]
}

var (
	_ note.Store   = (*NoteStore)(nil)
	_ note.Batcher = (*NoteStore)(nil)
)

// Open loads the notes file at path. A missing or empty file yields an empty
// store; the file is created on the first flush.
func Open(path string) (*NoteStore, error) {
	s := &NoteStore{
		path:  path,
		table: kv.New[note.Key, note.Annotation](),
	}

	file, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("load notes file %s: %w", path, err)
	}

	items := make(map[note.Key]note.Annotation, len(file.Notes))
	for _, r := range file.Notes {
		items[r.Key] = r.Annotation
	}
	s.table.Load(items)

	return s, nil
}

// Get returns the annotation at key. Returns note.ErrNotFound if not found.
func (s *NoteStore) Get(ctx context.Context, key note.Key) (note.Annotation, error) {
	a, ok := s.table.Get(key)
	if !ok {
		return note.Annotation{}, note.ErrNotFound
	}
	return a, nil
}

// Put creates or replaces the annotation at key.
func (s *NoteStore) Put(ctx context.Context, key note.Key, a note.Annotation) error {
	s.table.Set(key, a)
	return nil
}

// Delete removes the annotation at key. Returns note.ErrNotFound if not found.
func (s *NoteStore) Delete(ctx context.Context, key note.Key) error {
	if !s.table.Delete(key) {
		return note.ErrNotFound
	}
	return nil
}

// Batch runs fn against the store and rolls the table back to its prior
// contents if fn fails. Nothing reaches disk before Flush either way.
func (s *NoteStore) Batch(ctx context.Context, fn func(tx note.Store) error) error {
	snapshot := s.table.Snapshot()
	if err := fn(s); err != nil {
		s.table.Restore(snapshot)
		return err
	}
	return nil
}

// KeysWithPrefix returns the keys bound to path, sorted by line.
func (s *NoteStore) KeysWithPrefix(ctx context.Context, path string) ([]note.Key, error) {
	keys := s.table.Keys(func(k note.Key) bool { return k.Path == path })
	note.SortKeys(keys)
	return keys, nil
}

// Keys returns every key sorted by path then line.
func (s *NoteStore) Keys(ctx context.Context) ([]note.Key, error) {
	keys := s.table.Keys(nil)
	note.SortKeys(keys)
	return keys, nil
}

// Flush writes the table to disk if it changed since it was loaded.
func (s *NoteStore) Flush() error {
	if !s.table.Dirty() {
		return nil
	}

	file := NotesFile{Version: fileVersion, Notes: make([]Record, 0, s.table.Len())}
	for k, a := range s.table.All() {
		file.Notes = append(file.Notes, Record{Key: k, Annotation: a})
	}
	sortRecords(file.Notes)

	if err := s.save(file); err != nil {
		return fmt.Errorf("save notes file %s: %w", s.path, err)
	}

	s.table.MarkClean()
	return nil
}

// Close flushes pending changes.
func (s *NoteStore) Close() error {
	return s.Flush()
}

func sortRecords(records []Record) {
	slices.SortFunc(records, func(a, b Record) int {
		return note.CompareKeys(a.Key, b.Key)
	})
}

// load reads the notes file from disk.
// Returns empty NotesFile if file doesn't exist.
func (s *NoteStore) load() (NotesFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NotesFile{}, nil
		}
		return NotesFile{}, err
	}

	if len(data) == 0 {
		return NotesFile{}, nil
	}

	var file NotesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return NotesFile{}, err
	}

	if file.Version > fileVersion {
		return NotesFile{}, fmt.Errorf("unsupported version %d", file.Version)
	}

	return file, nil
}

// save writes the notes file to disk atomically.
func (s *NoteStore) save(file NotesFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}
