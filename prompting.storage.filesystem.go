package prompting

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// FilesystemStorage is a PromptStorage backed by a directory tree:
// one directory per prompt name, one JSON file per version (v1.json,
// v2.json, ...). Suitable for small catalogs and local development.
type FilesystemStorage struct {
	root   string
	mu     sync.RWMutex
	closed bool
}

// FilesystemStorageDriver is the driver for creating FilesystemStorage instances.
type FilesystemStorageDriver struct{}

func init() {
	RegisterStorageDriver(StorageDriverNameFilesystem, &FilesystemStorageDriver{})
}

// Open creates a FilesystemStorage rooted at the connection string path.
func (d *FilesystemStorageDriver) Open(connectionString string) (PromptStorage, error) {
	return NewFilesystemStorage(connectionString)
}

// NewFilesystemStorage creates a filesystem prompt storage rooted at dir,
// creating the directory if needed.
func NewFilesystemStorage(dir string) (*FilesystemStorage, error) {
	if err := os.MkdirAll(dir, FilesystemDirPermissions); err != nil {
		return nil, &StorageError{Message: err.Error(), Cause: err}
	}
	return &FilesystemStorage{root: dir}, nil
}

// validatePromptName rejects names that could escape the storage root.
func validatePromptName(name string) error {
	if name == "" {
		return &StorageError{Message: ErrMsgEmptyPromptName}
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return &StorageError{Message: ErrMsgPathTraversalDetected, Name: name}
	}
	return nil
}

// promptDir returns the directory holding a prompt's version files.
func (s *FilesystemStorage) promptDir(name string) string {
	return filepath.Join(s.root, name)
}

// versionPath returns the file path for one version of a prompt.
func (s *FilesystemStorage) versionPath(name string, version int) string {
	filename := FilesystemVersionPrefix + strconv.Itoa(version) + FilesystemVersionSuffix
	return filepath.Join(s.promptDir(name), filename)
}

// versions lists the stored version numbers of a prompt, ascending.
func (s *FilesystemStorage) versions(name string) ([]int, error) {
	entries, err := os.ReadDir(s.promptDir(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &StorageError{Message: err.Error(), Name: name, Cause: err}
	}

	var versions []int
	for _, entry := range entries {
		fname := entry.Name()
		if !strings.HasPrefix(fname, FilesystemVersionPrefix) || !strings.HasSuffix(fname, FilesystemVersionSuffix) {
			continue
		}
		numPart := strings.TrimSuffix(strings.TrimPrefix(fname, FilesystemVersionPrefix), FilesystemVersionSuffix)
		if v, err := strconv.Atoi(numPart); err == nil {
			versions = append(versions, v)
		}
	}
	sort.Ints(versions)
	return versions, nil
}

// readVersion loads one version file.
func (s *FilesystemStorage) readVersion(name string, version int) (*StoredPrompt, error) {
	data, err := os.ReadFile(s.versionPath(name, version))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewStorageVersionNotFoundError(name, version)
		}
		return nil, &StorageError{Message: err.Error(), Name: name, Version: version, Cause: err}
	}

	var prompt StoredPrompt
	if err := json.Unmarshal(data, &prompt); err != nil {
		return nil, &StorageError{Message: err.Error(), Name: name, Version: version, Cause: err}
	}
	return &prompt, nil
}

// Get retrieves the latest version of a prompt by name.
func (s *FilesystemStorage) Get(ctx context.Context, name string) (*StoredPrompt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validatePromptName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	versions, err := s.versions(name)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, NewStoragePromptNotFoundError(name)
	}
	return s.readVersion(name, versions[len(versions)-1])
}

// GetVersion retrieves a specific version of a prompt.
func (s *FilesystemStorage) GetVersion(ctx context.Context, name string, version int) (*StoredPrompt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validatePromptName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}
	return s.readVersion(name, version)
}

// Save stores a prompt, creating a new version file when the name exists.
func (s *FilesystemStorage) Save(ctx context.Context, prompt *StoredPrompt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateStoredPrompt(prompt); err != nil {
		return err
	}
	if err := validatePromptName(prompt.Name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	versions, err := s.versions(prompt.Name)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	prompt.ID = newPromptID()
	prompt.Version = 1
	if len(versions) > 0 {
		prompt.Version = versions[len(versions)-1] + 1
	}
	prompt.CreatedAt = now
	prompt.UpdatedAt = now

	if err := os.MkdirAll(s.promptDir(prompt.Name), FilesystemDirPermissions); err != nil {
		return &StorageError{Message: err.Error(), Name: prompt.Name, Cause: err}
	}

	data, err := json.MarshalIndent(prompt, "", "  ")
	if err != nil {
		return &StorageError{Message: err.Error(), Name: prompt.Name, Cause: err}
	}
	if err := os.WriteFile(s.versionPath(prompt.Name, prompt.Version), data, FilesystemFilePermissions); err != nil {
		return &StorageError{Message: err.Error(), Name: prompt.Name, Cause: err}
	}
	return nil
}

// List returns all stored prompt names in sorted order.
func (s *FilesystemStorage) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, &StorageError{Message: err.Error(), Cause: err}
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes all versions of a prompt by name.
func (s *FilesystemStorage) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validatePromptName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	dir := s.promptDir(name)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return NewStoragePromptNotFoundError(name)
	}
	if err := os.RemoveAll(dir); err != nil {
		return &StorageError{Message: err.Error(), Name: name, Cause: err}
	}
	return nil
}

// Close marks the storage as closed. Further operations fail.
func (s *FilesystemStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
