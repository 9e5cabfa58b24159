package db

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries holds the statements used by the annotation store.
type Queries struct {
	db DBTX
}

// New binds a query set to a connection or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a copy of q bound to tx.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// Annotation is one row of the annotations table. Context windows are stored
// as JSON arrays.
type Annotation struct {
	Path      string
	Line      int64
	ID        string
	BeforeCtx string
	Target    string
	AfterCtx  string
	Body      string
	CreatedAt int64
	UpdatedAt int64
}

// AnnotationKey is the primary key of an annotations row.
type AnnotationKey struct {
	Path string
	Line int64
}

const getAnnotation = `
SELECT path, line, id, before_ctx, target, after_ctx, body, created_at, updated_at
FROM annotations
WHERE path = ? AND line = ?
`

// GetAnnotation returns sql.ErrNoRows when the key is absent.
func (q *Queries) GetAnnotation(ctx context.Context, key AnnotationKey) (Annotation, error) {
	row := q.db.QueryRowContext(ctx, getAnnotation, key.Path, key.Line)

	var a Annotation
	err := row.Scan(&a.Path, &a.Line, &a.ID, &a.BeforeCtx, &a.Target, &a.AfterCtx, &a.Body, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

const upsertAnnotation = `
INSERT INTO annotations (path, line, id, before_ctx, target, after_ctx, body, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (path, line) DO UPDATE SET
    id         = excluded.id,
    before_ctx = excluded.before_ctx,
    target     = excluded.target,
    after_ctx  = excluded.after_ctx,
    body       = excluded.body,
    created_at = excluded.created_at,
    updated_at = excluded.updated_at
`

func (q *Queries) UpsertAnnotation(ctx context.Context, a Annotation) error {
	_, err := q.db.ExecContext(ctx, upsertAnnotation,
		a.Path, a.Line, a.ID, a.BeforeCtx, a.Target, a.AfterCtx, a.Body, a.CreatedAt, a.UpdatedAt,
	)
	return err
}

const deleteAnnotation = `DELETE FROM annotations WHERE path = ? AND line = ?`

// DeleteAnnotation returns the number of rows removed.
func (q *Queries) DeleteAnnotation(ctx context.Context, key AnnotationKey) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteAnnotation, key.Path, key.Line)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const listAnnotationKeysByPath = `SELECT path, line FROM annotations WHERE path = ? ORDER BY line`

func (q *Queries) ListAnnotationKeysByPath(ctx context.Context, path string) ([]AnnotationKey, error) {
	return q.listKeys(ctx, listAnnotationKeysByPath, path)
}

const listAnnotationKeys = `SELECT path, line FROM annotations ORDER BY path, line`

func (q *Queries) ListAnnotationKeys(ctx context.Context) ([]AnnotationKey, error) {
	return q.listKeys(ctx, listAnnotationKeys)
}

func (q *Queries) listKeys(ctx context.Context, query string, args ...any) ([]AnnotationKey, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var keys []AnnotationKey
	for rows.Next() {
		var k AnnotationKey
		if err := rows.Scan(&k.Path, &k.Line); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}

	return keys, rows.Err()
}
