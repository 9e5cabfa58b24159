package stores

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hay-kot/docnote/internal/core/anchor"
	"github.com/hay-kot/docnote/internal/core/note"
	"github.com/hay-kot/docnote/internal/data/db"
)

// NoteStore implements note.Store using SQLite. Writes go straight to the
// database; Close only releases the connection.
type NoteStore struct {
	db *db.DB
	q  *db.Queries
}

var (
	_ note.Store   = (*NoteStore)(nil)
	_ note.Batcher = (*NoteStore)(nil)
)

// NewNoteStore creates a new SQLite-backed annotation store.
func NewNoteStore(db *db.DB) *NoteStore {
	return &NoteStore{db: db, q: db.Queries()}
}

// Batch runs fn inside a transaction. The store handed to fn is bound to the
// transaction and must not be used after fn returns.
func (s *NoteStore) Batch(ctx context.Context, fn func(tx note.Store) error) error {
	return s.db.WithTx(ctx, func(q *db.Queries) error {
		return fn(&NoteStore{db: s.db, q: q})
	})
}

// Get returns the annotation at key. Returns note.ErrNotFound if not found.
func (s *NoteStore) Get(ctx context.Context, key note.Key) (note.Annotation, error) {
	row, err := s.q.GetAnnotation(ctx, toRowKey(key))
	if IsNotFoundError(err) {
		return note.Annotation{}, note.ErrNotFound
	}
	if err != nil {
		return note.Annotation{}, fmt.Errorf("failed to get annotation %s: %w", key, err)
	}

	a, err := rowToAnnotation(row)
	if err != nil {
		return note.Annotation{}, fmt.Errorf("failed to decode annotation %s: %w", key, err)
	}

	return a, nil
}

// Put creates or replaces the annotation at key.
func (s *NoteStore) Put(ctx context.Context, key note.Key, a note.Annotation) error {
	row, err := annotationToRow(key, a)
	if err != nil {
		return fmt.Errorf("failed to encode annotation %s: %w", key, err)
	}

	if err := s.q.UpsertAnnotation(ctx, row); err != nil {
		return fmt.Errorf("failed to save annotation %s: %w", key, wrapWriteErr(err))
	}

	return nil
}

// Delete removes the annotation at key. Returns note.ErrNotFound if not found.
func (s *NoteStore) Delete(ctx context.Context, key note.Key) error {
	n, err := s.q.DeleteAnnotation(ctx, toRowKey(key))
	if err != nil {
		return fmt.Errorf("failed to delete annotation %s: %w", key, wrapWriteErr(err))
	}
	if n == 0 {
		return note.ErrNotFound
	}
	return nil
}

// KeysWithPrefix returns the keys bound to path, sorted by line.
func (s *NoteStore) KeysWithPrefix(ctx context.Context, path string) ([]note.Key, error) {
	rows, err := s.q.ListAnnotationKeysByPath(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to list annotations for %s: %w", path, err)
	}
	return fromRowKeys(rows), nil
}

// Keys returns every key sorted by path then line.
func (s *NoteStore) Keys(ctx context.Context) ([]note.Key, error) {
	rows, err := s.q.ListAnnotationKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list annotations: %w", err)
	}
	return fromRowKeys(rows), nil
}

// Close closes the database connection.
func (s *NoteStore) Close() error {
	return s.db.Close()
}

func toRowKey(key note.Key) db.AnnotationKey {
	return db.AnnotationKey{Path: key.Path, Line: int64(key.Line)}
}

func fromRowKeys(rows []db.AnnotationKey) []note.Key {
	keys := make([]note.Key, 0, len(rows))
	for _, r := range rows {
		keys = append(keys, note.Key{Path: r.Path, Line: int(r.Line)})
	}
	return keys
}

// annotationToRow converts a note.Annotation to a db.Annotation.
func annotationToRow(key note.Key, a note.Annotation) (db.Annotation, error) {
	before, err := marshalLines(a.Before)
	if err != nil {
		return db.Annotation{}, err
	}
	after, err := marshalLines(a.After)
	if err != nil {
		return db.Annotation{}, err
	}

	return db.Annotation{
		Path:      key.Path,
		Line:      int64(key.Line),
		ID:        a.ID,
		BeforeCtx: before,
		Target:    a.Target,
		AfterCtx:  after,
		Body:      a.Text,
		CreatedAt: a.CreatedAt.UnixNano(),
		UpdatedAt: a.UpdatedAt.UnixNano(),
	}, nil
}

// rowToAnnotation converts a db.Annotation to a note.Annotation.
func rowToAnnotation(row db.Annotation) (note.Annotation, error) {
	var before, after []string
	if err := json.Unmarshal([]byte(row.BeforeCtx), &before); err != nil {
		return note.Annotation{}, fmt.Errorf("before context: %w", err)
	}
	if err := json.Unmarshal([]byte(row.AfterCtx), &after); err != nil {
		return note.Annotation{}, fmt.Errorf("after context: %w", err)
	}

	return note.Annotation{
		ID: row.ID,
		Context: anchor.Context{
			Before: before,
			Target: row.Target,
			After:  after,
		},
		Text:      row.Body,
		CreatedAt: time.Unix(0, row.CreatedAt),
		UpdatedAt: time.Unix(0, row.UpdatedAt),
	}, nil
}

func marshalLines(lines []string) (string, error) {
	if lines == nil {
		lines = []string{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
