package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/magabrotheeeer/subscription-admin-console/internal/models"
)

// record формат хранения сессии: токен и администратор под фиксированными ключами.
type record struct {
	Token string        `json:"admin_token"`
	Admin *models.Admin `json:"admin_user,omitempty"`
}

// FileStore хранит сессии в JSON-файле вида {id: record}, переживает перезапуск консоли.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore создаёт файловое хранилище по указанному пути.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(_ context.Context, id string) (*Session, error) {
	const op = "session.FileStore.Load"
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.read()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rec, ok := recs[id]
	if !ok || rec.Token == "" {
		return nil, ErrNoSession
	}
	return New(rec.Token, rec.Admin), nil
}

func (s *FileStore) Save(_ context.Context, id string, sess *Session) error {
	const op = "session.FileStore.Save"
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.read()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	// истёкшие сессии других браузеров выметаются при каждой записи
	now := time.Now()
	for k, rec := range recs {
		if New(rec.Token, nil).Expired(now) {
			delete(recs, k)
		}
	}
	recs[id] = record{Token: sess.Token, Admin: sess.Admin}
	if err := s.write(recs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	const op = "session.FileStore.Delete"
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.read()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, ok := recs[id]; !ok {
		return nil
	}
	delete(recs, id)
	if len(recs) == 0 {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	}
	if err := s.write(recs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *FileStore) read() (map[string]record, error) {
	recs := make(map[string]record)
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return recs, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *FileStore) write(recs map[string]record) error {
	data, err := json.Marshal(recs)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
