//go:build integration

package prompting

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgresContainer creates an ephemeral PostgreSQL container for testing.
func setupPostgresContainer(t *testing.T) (*PostgresStorage, func()) {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15",
		postgres.WithDatabase("prompting_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	storage, err := NewPostgresStorage(PostgresConfig{
		ConnectionString: connStr,
		AutoMigrate:      true,
		QueryTimeout:     30 * time.Second,
	})
	require.NoError(t, err, "failed to create postgres storage")

	cleanup := func() {
		if storage != nil {
			_ = storage.Close()
		}
		if container != nil {
			_ = container.Terminate(ctx)
		}
	}

	return storage, cleanup
}

func TestPostgres_E2E_BasicCRUD(t *testing.T) {
	storage, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("Save", func(t *testing.T) {
		prompt := &StoredPrompt{
			Name:     "book-list",
			Record:   newTestRecord(t, "List {{ count }} books by {{ author }}."),
			Metadata: map[string]string{"owner": "test"},
		}

		err := storage.Save(ctx, prompt)
		require.NoError(t, err)
		assert.NotEmpty(t, prompt.ID)
		assert.Equal(t, 1, prompt.Version)
		assert.False(t, prompt.CreatedAt.IsZero())
	})

	t.Run("Get", func(t *testing.T) {
		got, err := storage.Get(ctx, "book-list")
		require.NoError(t, err)
		assert.Equal(t, "book-list", got.Name)
		require.NotNil(t, got.Record.Text)
		assert.Equal(t, "List {{ count }} books by {{ author }}.", *got.Record.Text)
		assert.Equal(t, "test", got.Metadata["owner"])
	})

	t.Run("Get missing", func(t *testing.T) {
		_, err := storage.Get(ctx, "missing")
		require.Error(t, err)
		assert.True(t, IsPromptNotFound(err))
	})

	t.Run("Versioning", func(t *testing.T) {
		require.NoError(t, storage.Save(ctx, &StoredPrompt{
			Name:   "book-list",
			Record: newTestRecord(t, "revised template"),
		}))

		latest, err := storage.Get(ctx, "book-list")
		require.NoError(t, err)
		assert.Equal(t, 2, latest.Version)
		assert.Equal(t, "revised template", *latest.Record.Text)

		first, err := storage.GetVersion(ctx, "book-list", 1)
		require.NoError(t, err)
		assert.Equal(t, 1, first.Version)

		_, err = storage.GetVersion(ctx, "book-list", 9)
		assert.True(t, IsPromptNotFound(err))
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, storage.Save(ctx, &StoredPrompt{
			Name:   "another",
			Record: newTestRecord(t, "x"),
		}))

		names, err := storage.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"another", "book-list"}, names)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, storage.Delete(ctx, "another"))

		_, err := storage.Get(ctx, "another")
		assert.True(t, IsPromptNotFound(err))

		err = storage.Delete(ctx, "another")
		assert.True(t, IsPromptNotFound(err))
	})
}

func TestPostgres_E2E_RecordRoundTrip(t *testing.T) {
	storage, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	engine := MustNew(
		WithTemplate("List {{ count }} books by {{ author }}."),
		WithDefaults(map[string]any{"count": 3}),
		WithSchema(Array(Object(
			Prop("title", String()),
			Prop("year", String()),
		).Require("title", "year"))),
	)

	require.NoError(t, storage.Save(ctx, &StoredPrompt{Name: "books", Record: engine.Serialize()}))

	stored, err := storage.Get(ctx, "books")
	require.NoError(t, err)

	restored, err := FromRecord(stored.Record, nil)
	require.NoError(t, err)

	want, err := engine.Resolve(map[string]any{"author": "George Orwell"})
	require.NoError(t, err)
	got, err := restored.Resolve(map[string]any{"author": "George Orwell"})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPostgres_E2E_VersionSequence(t *testing.T) {
	storage, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	const revisions = 10
	for i := 1; i <= revisions; i++ {
		prompt := &StoredPrompt{
			Name:   "sequenced",
			Record: newTestRecord(t, fmt.Sprintf("revision %d", i)),
		}
		require.NoError(t, storage.Save(ctx, prompt))
		assert.Equal(t, i, prompt.Version)
	}

	latest, err := storage.Get(ctx, "sequenced")
	require.NoError(t, err)
	assert.Equal(t, revisions, latest.Version)
	assert.Equal(t, fmt.Sprintf("revision %d", revisions), *latest.Record.Text)

	t.Run("concurrent reads", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got, err := storage.Get(ctx, "sequenced")
				assert.NoError(t, err)
				assert.Equal(t, revisions, got.Version)
			}()
		}
		wg.Wait()
	})
}

func TestPostgres_E2E_DriverRegistry(t *testing.T) {
	storage, cleanup := setupPostgresContainer(t)
	defer cleanup()

	// Reuse the already-provisioned database through the registry path.
	connStr := storage.config.ConnectionString
	opened, err := OpenStorage(StorageDriverNamePostgres, connStr)
	require.NoError(t, err)
	defer opened.Close()

	ctx := context.Background()
	require.NoError(t, opened.Save(ctx, &StoredPrompt{
		Name:   "via-registry",
		Record: newTestRecord(t, "x"),
	}))

	got, err := opened.Get(ctx, "via-registry")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Version)
}

func TestPostgres_E2E_ClosedStorage(t *testing.T) {
	storage, cleanup := setupPostgresContainer(t)
	defer cleanup()

	require.NoError(t, storage.Close())

	_, err := storage.Get(context.Background(), "x")
	assert.Error(t, err)
	assert.NoError(t, storage.Close())
}
