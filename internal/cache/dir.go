package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// DirStore keeps one <key>.html file per entry in a directory.
//
// Writers for the same key are serialised with an advisory lock file and
// bodies are renamed into place, so a reader never observes a partial write.
type DirStore struct {
	dir string
}

// NewDirStore creates a DirStore rooted at dir, creating it if needed.
func NewDirStore(dir string) (*DirStore, error) {
	if dir == "" {
		return nil, errors.New("cache directory is required")
	}

	// Expand ~ to home directory
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	return &DirStore{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (s *DirStore) Dir() string {
	return s.dir
}

// Path returns the file that holds key.
func (s *DirStore) Path(key string) string {
	return filepath.Join(s.dir, key+".html")
}

// Get reads the cached body for key.
func (s *DirStore) Get(key string) ([]byte, bool, error) {
	if err := ValidateKey(key); err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading cache entry: %w", err)
	}

	return data, true, nil
}

// Put writes body under key. An existing entry is left untouched.
func (s *DirStore) Put(key string, body []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	path := s.Path(key)
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("locking cache entry: %w", err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	// Another writer may have won the race while we waited for the lock
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(body); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing cache entry: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("committing cache entry: %w", err)
	}

	return nil
}
