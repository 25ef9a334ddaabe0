package credentials

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/parcelreg/parcel/internal/models"
)

const credentialsFileName = "credentials.json"

// DiskStore implements Store by persisting the API key to a JSON file on
// disk. Saves replace the file atomically via a temp file and rename, so
// the store never holds a partially written credential.
type DiskStore struct {
	folder string
	mu     sync.RWMutex
}

// NewDiskStore creates a new disk-based credential store.
// The credentials file will be stored at {folder}/credentials.json
func NewDiskStore(folder string) *DiskStore {
	return &DiskStore{
		folder: folder,
	}
}

// filePath returns the full path to the credentials file.
func (s *DiskStore) filePath() string {
	return filepath.Join(s.folder, credentialsFileName)
}

// Save persists the API key to disk, replacing any prior one.
func (s *DiskStore) Save(apiKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ensure the folder exists
	if err := os.MkdirAll(s.folder, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(models.Credential{APIKey: apiKey}, "", "  ")
	if err != nil {
		return err
	}

	// Write with restrictive permissions (owner read/write only), then
	// rename into place so a crash mid-write leaves the old key intact.
	tmp, err := os.CreateTemp(s.folder, credentialsFileName+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.filePath())
}

// Load retrieves the stored API key from disk.
// Returns ErrNotFound if the credentials file does not exist, cannot be
// read, or does not parse. A missing or damaged file means "not logged
// in", never an error surfaced to the user.
func (s *DiskStore) Load() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.filePath())
	if err != nil {
		return "", ErrNotFound
	}

	var cred models.Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return "", ErrNotFound
	}
	if cred.APIKey == "" {
		return "", ErrNotFound
	}

	return cred.APIKey, nil
}

// Delete removes the stored credentials file.
// Returns nil if the file does not exist.
func (s *DiskStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.filePath())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Exists checks if the credentials file exists.
func (s *DiskStore) Exists() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.filePath())
	return err == nil
}
