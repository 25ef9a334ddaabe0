package credentials

import "errors"

// ErrNotFound is returned when no API key is stored. This is the normal
// "not logged in" state, not an I/O failure.
var ErrNotFound = errors.New("credentials not found")

// Store defines the interface for API key storage.
// Implementations can store the key on disk.
type Store interface {
	// Save persists the API key, replacing any prior one wholesale.
	Save(apiKey string) error

	// Load retrieves the stored API key.
	// Returns ErrNotFound if no key is stored.
	Load() (string, error)

	// Delete removes the stored API key.
	// Returns nil if no key exists.
	Delete() error

	// Exists checks if an API key is stored.
	Exists() bool
}
