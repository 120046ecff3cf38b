package prompting

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageDriverRegistry(t *testing.T) {
	t.Run("built-in drivers are registered", func(t *testing.T) {
		names := ListStorageDrivers()
		assert.Contains(t, names, StorageDriverNameMemory)
		assert.Contains(t, names, StorageDriverNameFilesystem)
		assert.Contains(t, names, StorageDriverNamePostgres)
	})

	t.Run("open by driver name", func(t *testing.T) {
		storage, err := OpenStorage(StorageDriverNameMemory, "")
		require.NoError(t, err)
		defer storage.Close()

		assert.IsType(t, &MemoryStorage{}, storage)
	})

	t.Run("unknown driver fails", func(t *testing.T) {
		_, err := OpenStorage("cassandra", "")
		require.Error(t, err)
	})

	t.Run("nil driver registration panics", func(t *testing.T) {
		assert.Panics(t, func() {
			RegisterStorageDriver("broken", nil)
		})
	})

	t.Run("duplicate registration panics", func(t *testing.T) {
		assert.Panics(t, func() {
			RegisterStorageDriver(StorageDriverNameMemory, &MemoryStorageDriver{})
		})
	})
}

func TestNewPromptID(t *testing.T) {
	t.Run("prefixed and fixed-length", func(t *testing.T) {
		id := string(newPromptID())
		assert.True(t, strings.HasPrefix(id, PromptIDPrefix))
		assert.Len(t, id, len(PromptIDPrefix)+PromptIDLength)
	})

	t.Run("unique across calls", func(t *testing.T) {
		seen := make(map[PromptID]bool)
		for i := 0; i < 100; i++ {
			id := newPromptID()
			assert.False(t, seen[id])
			seen[id] = true
		}
	})
}

func TestValidateStoredPrompt(t *testing.T) {
	record := MustNew(WithTemplate("x")).Serialize()

	t.Run("valid prompt passes", func(t *testing.T) {
		err := validateStoredPrompt(&StoredPrompt{Name: "greeting", Record: record})
		assert.NoError(t, err)
	})

	t.Run("nil prompt fails", func(t *testing.T) {
		assert.Error(t, validateStoredPrompt(nil))
	})

	t.Run("empty name fails", func(t *testing.T) {
		assert.Error(t, validateStoredPrompt(&StoredPrompt{Record: record}))
	})

	t.Run("nil record fails", func(t *testing.T) {
		assert.Error(t, validateStoredPrompt(&StoredPrompt{Name: "greeting"}))
	})
}
