package prompting

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

// PromptID is a unique identifier for a stored prompt version.
// Uses prefixed random format (e.g., "prm_6ByTSYmGzT2c").
type PromptID string

// StoredPrompt is a serialized engine configuration with storage metadata.
type StoredPrompt struct {
	// ID is the unique identifier for this prompt version.
	ID PromptID `json:"id"`

	// Name is the prompt name used for lookups.
	Name string `json:"name"`

	// Record is the serialized engine configuration.
	Record *Record `json:"record"`

	// Version is the version number (1, 2, 3, ...). Higher is newer.
	Version int `json:"version"`

	// Metadata contains arbitrary key-value pairs for user-defined data.
	Metadata map[string]string `json:"metadata,omitempty"`

	// CreatedAt is when this version was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when this version was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}

// PromptStorage is the interface for pluggable storage backends.
// Implementations must be safe for concurrent use.
//
// The interface follows patterns from database/sql for familiarity:
// context for cancellation, explicit error returns, Close for cleanup.
type PromptStorage interface {
	// Get retrieves the latest version of a prompt by name.
	Get(ctx context.Context, name string) (*StoredPrompt, error)

	// GetVersion retrieves a specific version of a prompt.
	GetVersion(ctx context.Context, name string, version int) (*StoredPrompt, error)

	// Save stores a prompt. If a prompt with the same name exists, a new
	// version is created. ID, Version, CreatedAt, and UpdatedAt are set
	// by the storage implementation.
	Save(ctx context.Context, prompt *StoredPrompt) error

	// List returns all stored prompt names in sorted order.
	List(ctx context.Context) ([]string, error)

	// Delete removes all versions of a prompt by name.
	Delete(ctx context.Context, name string) error

	// Close releases resources held by the storage.
	Close() error
}

// StorageDriver creates PromptStorage instances from connection strings.
type StorageDriver interface {
	Open(connectionString string) (PromptStorage, error)
}

var (
	storageDriversMu sync.RWMutex
	storageDrivers   = make(map[string]StorageDriver)
)

// RegisterStorageDriver makes a storage driver available by name.
// Panics if the driver is nil or the name is already registered, matching
// database/sql's registration contract.
func RegisterStorageDriver(name string, driver StorageDriver) {
	storageDriversMu.Lock()
	defer storageDriversMu.Unlock()

	if driver == nil {
		panic(ErrMsgNilStorageDriver)
	}
	if _, exists := storageDrivers[name]; exists {
		panic(ErrMsgDriverAlreadyRegistered + ": " + name)
	}
	storageDrivers[name] = driver
}

// OpenStorage opens a storage backend by driver name.
func OpenStorage(driverName, connectionString string) (PromptStorage, error) {
	storageDriversMu.RLock()
	driver, ok := storageDrivers[driverName]
	storageDriversMu.RUnlock()

	if !ok {
		return nil, NewStorageDriverNotFoundError(driverName)
	}
	return driver.Open(connectionString)
}

// ListStorageDrivers returns the names of all registered storage drivers.
func ListStorageDrivers() []string {
	storageDriversMu.RLock()
	defer storageDriversMu.RUnlock()

	names := make([]string, 0, len(storageDrivers))
	for name := range storageDrivers {
		names = append(names, name)
	}
	return names
}

// newPromptID generates a random prefixed prompt ID.
func newPromptID() PromptID {
	buf := make([]byte, PromptIDLength)
	if _, err := rand.Read(buf); err != nil {
		panic(ErrMsgCryptoRandFailure)
	}
	encoded := base64.RawURLEncoding.EncodeToString(buf)
	return PromptID(PromptIDPrefix + encoded[:PromptIDLength])
}

// validateStoredPrompt checks the caller-owned fields before a Save.
func validateStoredPrompt(prompt *StoredPrompt) error {
	if prompt == nil {
		return &StorageError{Message: ErrMsgNilStoredPrompt}
	}
	if prompt.Name == "" {
		return &StorageError{Message: ErrMsgEmptyPromptName}
	}
	if prompt.Record == nil {
		return &StorageError{Message: ErrMsgNilPromptRecord, Name: prompt.Name}
	}
	return nil
}
