package cache

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Store is a write-once key-value area for raw detail page bodies.
type Store interface {
	// Get returns the stored body and true, or false if the key has never
	// been written.
	Get(key string) ([]byte, bool, error)
	// Put stores body under key unless the key is already present.
	Put(key string, body []byte) error
}

// Backend kinds accepted by Open
const (
	KindDir    = "dir"
	KindSQLite = "sqlite"
	KindMemory = "memory"
)

// ErrInvalidKey is returned for keys that cannot name a cache entry.
var ErrInvalidKey = errors.New("invalid cache key")

// ValidateKey rejects keys that are empty or could escape a cache directory.
func ValidateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`+"\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open creates the store selected by kind. location is a directory for
// KindDir and a database file for KindSQLite; it is ignored for KindMemory.
// The returned Closer must be closed when the run finishes.
func Open(kind, location string) (Store, io.Closer, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindDir:
		store, err := NewDirStore(location)
		if err != nil {
			return nil, nil, err
		}
		return store, nopCloser{}, nil
	case KindSQLite:
		store, err := OpenSQLiteStore(location)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case KindMemory:
		return NewMemoryStore(), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache type: %s (must be 'dir', 'sqlite' or 'memory')", kind)
	}
}
