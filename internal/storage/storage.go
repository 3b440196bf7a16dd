package storage

import "errors"

var (
	ErrNotFound      = errors.New("storage: not found")
	ErrQuotaExceeded = errors.New("storage: quota exceeded")
)

// Tier is a flat key-value persistence tier. Implementations must be safe
// for concurrent use by multiple goroutines.
//
// Two tiers exist: a durable one surviving process restarts (Bolt) and a
// session-scoped one living only as long as the process (Memory). Callers
// decide which tier a key belongs to; the tier itself knows nothing about
// TTLs or namespaces.
type Tier interface {
	// Get returns the stored value or ErrNotFound.
	Get(key string) ([]byte, error)
	// Set stores value under key. Returns ErrQuotaExceeded when a
	// configured byte budget would be exceeded; the previous value for
	// key, if any, is left untouched in that case.
	Set(key string, value []byte) error
	// Delete removes a key. Deleting an absent key is not an error.
	Delete(key string) error
	// Keys lists every key currently present.
	Keys() ([]string, error)
	// Clear removes all keys.
	Clear() error
}
