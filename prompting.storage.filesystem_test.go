package prompting

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesystemStorage(t *testing.T) {
	ctx := context.Background()

	newStorage := func(t *testing.T) *FilesystemStorage {
		t.Helper()
		storage, err := NewFilesystemStorage(t.TempDir())
		require.NoError(t, err)
		t.Cleanup(func() { _ = storage.Close() })
		return storage
	}

	t.Run("save and get latest", func(t *testing.T) {
		storage := newStorage(t)

		prompt := &StoredPrompt{Name: "greeting", Record: newTestRecord(t, "Hi {{ name }}")}
		require.NoError(t, storage.Save(ctx, prompt))
		assert.Equal(t, 1, prompt.Version)

		got, err := storage.Get(ctx, "greeting")
		require.NoError(t, err)
		assert.Equal(t, "Hi {{ name }}", *got.Record.Text)
	})

	t.Run("versions live as files under the prompt directory", func(t *testing.T) {
		dir := t.TempDir()
		storage, err := NewFilesystemStorage(dir)
		require.NoError(t, err)
		defer storage.Close()

		require.NoError(t, storage.Save(ctx, &StoredPrompt{Name: "greeting", Record: newTestRecord(t, "v1")}))
		require.NoError(t, storage.Save(ctx, &StoredPrompt{Name: "greeting", Record: newTestRecord(t, "v2")}))

		_, err = os.Stat(filepath.Join(dir, "greeting", "v1.json"))
		assert.NoError(t, err)
		_, err = os.Stat(filepath.Join(dir, "greeting", "v2.json"))
		assert.NoError(t, err)
	})

	t.Run("versioning across saves", func(t *testing.T) {
		storage := newStorage(t)

		require.NoError(t, storage.Save(ctx, &StoredPrompt{Name: "greeting", Record: newTestRecord(t, "v1")}))
		require.NoError(t, storage.Save(ctx, &StoredPrompt{Name: "greeting", Record: newTestRecord(t, "v2")}))

		latest, err := storage.Get(ctx, "greeting")
		require.NoError(t, err)
		assert.Equal(t, 2, latest.Version)

		first, err := storage.GetVersion(ctx, "greeting", 1)
		require.NoError(t, err)
		assert.Equal(t, "v1", *first.Record.Text)
	})

	t.Run("missing prompt and version fail", func(t *testing.T) {
		storage := newStorage(t)

		_, err := storage.Get(ctx, "missing")
		assert.True(t, IsPromptNotFound(err))

		require.NoError(t, storage.Save(ctx, &StoredPrompt{Name: "greeting", Record: newTestRecord(t, "x")}))
		_, err = storage.GetVersion(ctx, "greeting", 9)
		assert.True(t, IsPromptNotFound(err))
	})

	t.Run("path traversal names are rejected", func(t *testing.T) {
		storage := newStorage(t)

		for _, name := range []string{"../escape", "a/b", `a\b`, "a..b"} {
			err := storage.Save(ctx, &StoredPrompt{Name: name, Record: newTestRecord(t, "x")})
			assert.Error(t, err, name)
		}
	})

	t.Run("list and delete", func(t *testing.T) {
		storage := newStorage(t)

		require.NoError(t, storage.Save(ctx, &StoredPrompt{Name: "zeta", Record: newTestRecord(t, "x")}))
		require.NoError(t, storage.Save(ctx, &StoredPrompt{Name: "alpha", Record: newTestRecord(t, "x")}))

		names, err := storage.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "zeta"}, names)

		require.NoError(t, storage.Delete(ctx, "zeta"))
		_, err = storage.Get(ctx, "zeta")
		assert.True(t, IsPromptNotFound(err))
	})

	t.Run("delete missing prompt fails", func(t *testing.T) {
		storage := newStorage(t)
		assert.True(t, IsPromptNotFound(storage.Delete(ctx, "missing")))
	})

	t.Run("operations after close fail", func(t *testing.T) {
		storage, err := NewFilesystemStorage(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, storage.Close())

		_, err = storage.Get(ctx, "x")
		assert.Error(t, err)
	})

	t.Run("survives reopening", func(t *testing.T) {
		dir := t.TempDir()
		first, err := NewFilesystemStorage(dir)
		require.NoError(t, err)
		require.NoError(t, first.Save(ctx, &StoredPrompt{Name: "greeting", Record: newTestRecord(t, "persisted")}))
		require.NoError(t, first.Close())

		second, err := NewFilesystemStorage(dir)
		require.NoError(t, err)
		defer second.Close()

		got, err := second.Get(ctx, "greeting")
		require.NoError(t, err)
		assert.Equal(t, "persisted", *got.Record.Text)
	})
}
