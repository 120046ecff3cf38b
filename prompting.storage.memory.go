package prompting

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStorage is an in-memory implementation of PromptStorage.
// It is primarily intended for testing and development; all data is lost
// when the process terminates.
type MemoryStorage struct {
	mu      sync.RWMutex
	prompts map[string][]*StoredPrompt // name -> versions, newest first
	closed  bool
}

// MemoryStorageDriver is the driver for creating MemoryStorage instances.
type MemoryStorageDriver struct{}

func init() {
	RegisterStorageDriver(StorageDriverNameMemory, &MemoryStorageDriver{})
}

// Open creates a new MemoryStorage instance. The connection string is
// ignored for memory storage.
func (d *MemoryStorageDriver) Open(connectionString string) (PromptStorage, error) {
	return NewMemoryStorage(), nil
}

// NewMemoryStorage creates a new in-memory prompt storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		prompts: make(map[string][]*StoredPrompt),
	}
}

// Get retrieves the latest version of a prompt by name.
func (s *MemoryStorage) Get(ctx context.Context, name string) (*StoredPrompt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	versions, ok := s.prompts[name]
	if !ok || len(versions) == 0 {
		return nil, NewStoragePromptNotFoundError(name)
	}
	return copyStoredPrompt(versions[0]), nil
}

// GetVersion retrieves a specific version of a prompt.
func (s *MemoryStorage) GetVersion(ctx context.Context, name string, version int) (*StoredPrompt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	for _, p := range s.prompts[name] {
		if p.Version == version {
			return copyStoredPrompt(p), nil
		}
	}
	return nil, NewStorageVersionNotFoundError(name, version)
}

// Save stores a prompt, creating a new version when the name exists.
func (s *MemoryStorage) Save(ctx context.Context, prompt *StoredPrompt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateStoredPrompt(prompt); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	now := time.Now().UTC()
	prompt.ID = newPromptID()
	prompt.Version = 1
	if versions := s.prompts[prompt.Name]; len(versions) > 0 {
		prompt.Version = versions[0].Version + 1
	}
	prompt.CreatedAt = now
	prompt.UpdatedAt = now

	s.prompts[prompt.Name] = append([]*StoredPrompt{copyStoredPrompt(prompt)}, s.prompts[prompt.Name]...)
	return nil
}

// List returns all stored prompt names in sorted order.
func (s *MemoryStorage) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	names := make([]string, 0, len(s.prompts))
	for name, versions := range s.prompts {
		if len(versions) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes all versions of a prompt by name.
func (s *MemoryStorage) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	if _, ok := s.prompts[name]; !ok {
		return NewStoragePromptNotFoundError(name)
	}
	delete(s.prompts, name)
	return nil
}

// Close marks the storage as closed. Further operations fail.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.prompts = nil
	return nil
}

// copyStoredPrompt copies the storage-owned struct so callers cannot
// mutate stored state through returned pointers. The Record pointer is
// shared; records are treated as immutable once saved.
func copyStoredPrompt(p *StoredPrompt) *StoredPrompt {
	copied := *p
	if p.Metadata != nil {
		copied.Metadata = make(map[string]string, len(p.Metadata))
		for k, v := range p.Metadata {
			copied.Metadata[k] = v
		}
	}
	return &copied
}
