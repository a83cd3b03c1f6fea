package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/m04kA/SMC-BookingClient/internal/session"
)

// FileStore хранит личность JSON-файлом на диске
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore создает файловое хранилище
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load читает личность из файла
func (s *FileStore) Load(_ context.Context) (*session.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: Load - read %s: %v", ErrIO, s.path, err)
	}
	if len(data) == 0 {
		return nil, ErrNotFound
	}

	var identity session.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, fmt.Errorf("%w: Load: %v", ErrDecode, err)
	}
	return &identity, nil
}

// Save записывает личность через временный файл и rename
func (s *FileStore) Save(_ context.Context, identity *session.Identity) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("%w: Save: %v", ErrEncode, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("%w: Save - mkdir: %v", ErrIO, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("%w: Save - write: %v", ErrIO, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: Save - rename: %v", ErrIO, err)
	}
	return nil
}

// Clear удаляет файл личности; отсутствие файла не ошибка
func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: Clear: %v", ErrIO, err)
	}
	return nil
}
