package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"messcut/internal/logs"
)

// Storage is a string key-value store with the semantics of browser local
// storage: values are whole strings, read and replaced as a unit.
type Storage interface {
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// BackupSuffix is appended to the previous version of an item on write.
const BackupSuffix = ".bak"

// FileStorage keeps each item in its own <key>.json file under Dir.
type FileStorage struct {
	Dir string
	mu  sync.Mutex
}

// NewFileStorage creates a FileStorage rooted at dir, creating it if needed.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating storage directory: %w", err)
	}
	return &FileStorage{Dir: dir}, nil
}

// Path returns the file backing key.
func (s *FileStorage) Path(key string) string {
	return filepath.Join(s.Dir, sanitizeKey(key)+".json")
}

func (s *FileStorage) GetItem(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("error reading %s: %w", key, err)
	}
	return string(data), true, nil
}

// SetItem replaces the item atomically: the value is written to a temp file
// and renamed over the old one, which is kept as a backup first.
func (s *FileStorage) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path(key)
	tmp, err := os.CreateTemp(s.Dir, sanitizeKey(key)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error writing %s: %w", key, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("error writing %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("error writing %s: %w", key, err)
	}

	if _, err := os.Stat(path); err == nil {
		if err := copyFile(path, path+BackupSuffix); err != nil {
			logs.Logger.Printf("Warning: failed to create backup of %s: %v", path, err)
		}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("error replacing %s: %w", key, err)
	}
	return nil
}

func (s *FileStorage) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.Path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error removing %s: %w", key, err)
	}
	return nil
}

// MemoryStorage is an in-process Storage. Writes counts SetItem calls.
type MemoryStorage struct {
	mu     sync.Mutex
	items  map[string]string
	Writes int
	// FailWrites makes every SetItem return an error.
	FailWrites bool
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

func (s *MemoryStorage) GetItem(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *MemoryStorage) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites {
		return fmt.Errorf("storage quota exceeded")
	}
	s.items[key] = value
	s.Writes++
	return nil
}

func (s *MemoryStorage) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

func sanitizeKey(key string) string {
	key = strings.TrimSpace(key)
	key = strings.ReplaceAll(key, "/", "_")
	key = strings.ReplaceAll(key, string(filepath.Separator), "_")
	if key == "" || key == "." || key == ".." {
		return "_"
	}
	return key
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}
