package jsonfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/docnote/internal/core/anchor"
	"github.com/hay-kot/docnote/internal/core/note"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAnnotation(id string) note.Annotation {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return note.Annotation{
		ID: id,
		Context: anchor.Context{
			Before: []string{"\tif err != nil {", "  "},
			Target: "\t\treturn err ",
			After:  []string{"\t}"},
		},
		Text:      "check the wrapped error\n\nsecond paragraph\n",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestNoteStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file opens empty", func(t *testing.T) {
		store, err := Open(filepath.Join(t.TempDir(), "notes.json"))
		require.NoError(t, err, "Open")

		keys, err := store.Keys(ctx)
		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("put get delete", func(t *testing.T) {
		store, err := Open(filepath.Join(t.TempDir(), "notes.json"))
		require.NoError(t, err, "Open")

		key := note.Key{Path: "/src/a.go", Line: 3}
		require.NoError(t, store.Put(ctx, key, sampleAnnotation("one")))

		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "one", got.ID)

		require.NoError(t, store.Delete(ctx, key))
		_, err = store.Get(ctx, key)
		assert.ErrorIs(t, err, note.ErrNotFound)
		assert.ErrorIs(t, store.Delete(ctx, key), note.ErrNotFound)
	})

	t.Run("keys with prefix match the path exactly", func(t *testing.T) {
		store, err := Open(filepath.Join(t.TempDir(), "notes.json"))
		require.NoError(t, err, "Open")

		for _, k := range []note.Key{
			{Path: "/src/a.go", Line: 9},
			{Path: "/src/a.go", Line: 1},
			{Path: "/src/a.go.orig", Line: 0},
			{Path: "/src/b.go", Line: 4},
		} {
			require.NoError(t, store.Put(ctx, k, sampleAnnotation(k.String())))
		}

		keys, err := store.KeysWithPrefix(ctx, "/src/a.go")
		require.NoError(t, err)
		assert.Equal(t, []note.Key{{Path: "/src/a.go", Line: 1}, {Path: "/src/a.go", Line: 9}}, keys)

		all, err := store.Keys(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 4)
		assert.Equal(t, note.Key{Path: "/src/a.go", Line: 1}, all[0])
	})

	t.Run("close flushes and reopen round trips exactly", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "notes.json")

		store, err := Open(path)
		require.NoError(t, err, "Open")

		key := note.Key{Path: "/src/a.go", Line: 12}
		want := sampleAnnotation("round-trip")
		require.NoError(t, store.Put(ctx, key, want))
		require.NoError(t, store.Close())

		reopened, err := Open(path)
		require.NoError(t, err, "reopen")

		got, err := reopened.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, want.Context, got.Context)
		assert.Equal(t, want.Text, got.Text)
		assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("close without changes does not write", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.json")

		store, err := Open(path)
		require.NoError(t, err, "Open")
		require.NoError(t, store.Close())

		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err), "expected no file to be written")
	})

	t.Run("corrupt file fails to open", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		_, err := Open(path)
		assert.Error(t, err)
	})

	t.Run("newer file version is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"version": 99, "notes": []}`), 0o644))

		_, err := Open(path)
		assert.ErrorContains(t, err, "unsupported version")
	})

	t.Run("failed batch restores the table", func(t *testing.T) {
		store, err := Open(filepath.Join(t.TempDir(), "notes.json"))
		require.NoError(t, err, "Open")

		a := note.Key{Path: "/src/a.go", Line: 1}
		b := note.Key{Path: "/src/a.go", Line: 2}
		require.NoError(t, store.Put(ctx, a, sampleAnnotation("a")))

		err = store.Batch(ctx, func(tx note.Store) error {
			require.NoError(t, tx.Delete(ctx, a))
			require.NoError(t, tx.Put(ctx, b, sampleAnnotation("b")))
			return errors.New("abort")
		})
		require.EqualError(t, err, "abort")

		keys, err := store.Keys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []note.Key{a}, keys)

		// The put before the batch is still pending and reaches disk.
		require.NoError(t, store.Close())
		reopened, err := Open(store.path)
		require.NoError(t, err)
		got, err := reopened.Get(ctx, a)
		require.NoError(t, err)
		assert.Equal(t, "a", got.ID)
	})
}
