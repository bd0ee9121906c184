package store

import "errors"

// ErrQuotaExceeded is returned by a write that would grow a store past its quota.
var ErrQuotaExceeded = errors.New("quota exceeded")

// Store is a string key/value surface shaped like browser web storage.
// Absent keys and out-of-range indexes report ok=false rather than an error.
type Store interface {
	// Get returns the raw string stored under key
	Get(key string) (string, bool, error)

	// Set stores value under key, replacing any previous value
	Set(key, value string) error

	// Delete removes key; deleting an absent key is not an error
	Delete(key string) error

	// Clear removes every key
	Clear() error

	// Key returns the key at index in the store's native ordering
	Key(index int) (string, bool, error)

	// Keys lists all keys in the store's native ordering
	Keys() ([]string, error)

	// Len returns the number of stored entries
	Len() (int, error)
}
