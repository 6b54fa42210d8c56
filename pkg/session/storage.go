package session

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
)

// Storage persists the raw credential across client restarts. Load returns
// an empty string when nothing is stored.
type Storage interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// MemoryStorage keeps the token in memory only. Useful for tests and for
// sessions that should not survive a restart.
type MemoryStorage struct {
	mu    sync.Mutex
	token string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryStorage) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStorage) Clear() error {
	return s.Save("")
}

// FileStorage persists the token as a small JSON file, the moral equivalent
// of browser local storage for a native client.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

type storedSession struct {
	Token string `json:"token"`
}

func (s *FileStorage) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}

	var stored storedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		// A corrupt session file is equivalent to no session.
		return "", nil
	}
	return stored.Token, nil
}

func (s *FileStorage) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(storedSession{Token: token})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
