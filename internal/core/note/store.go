package note

import "context"

// Store defines persistence operations for annotations. Implementations are
// opened once per process and must be closed to release resources and flush
// pending writes.
type Store interface {
	// Get returns the annotation at key.
	// Returns ErrNotFound if not found.
	Get(ctx context.Context, key Key) (Annotation, error)

	// Put creates or replaces the annotation at key.
	Put(ctx context.Context, key Key, a Annotation) error

	// Delete removes the annotation at key.
	// Returns ErrNotFound if not found.
	Delete(ctx context.Context, key Key) error

	// KeysWithPrefix returns the keys bound to exactly this path, sorted by line.
	KeysWithPrefix(ctx context.Context, path string) ([]Key, error)

	// Keys returns every key, sorted by path then line.
	Keys(ctx context.Context) ([]Key, error)

	// Close flushes pending writes and releases the store.
	Close() error
}

// Batcher is implemented by stores that can apply a group of writes
// atomically. If fn returns an error none of the writes it made through tx
// are kept.
type Batcher interface {
	Batch(ctx context.Context, fn func(tx Store) error) error
}
