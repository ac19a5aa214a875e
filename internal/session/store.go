// Package session persists the client-held credential and cached user
// profile. The store is a pure persistence contract: login I/O lives in
// the auth service, and the gateway's 401 handler is the only other
// writer. Clear is idempotent, so redundant concurrent expiries are
// harmless.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/easybank/portal/internal/model"
)

// Store holds at most one live Session.
type Store interface {
	// Current is a synchronous read of persisted state; the second
	// return is false when no session is live.
	Current() (model.Session, bool)
	// Save replaces the live session.
	Save(session model.Session) error
	// Clear destroys the live session unconditionally; idempotent.
	Clear() error
}

// FileStore keeps the session in a single JSON snapshot on disk so it
// survives process restarts within the same login. Writes go through a
// tmp file and rename so an interrupted write never corrupts the
// snapshot.
type FileStore struct {
	mu      sync.RWMutex
	path    string
	session *model.Session
	loaded  bool
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Current() (model.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		s.loadLocked()
	}
	if s.session == nil {
		return model.Session{}, false
	}
	return *s.session, true
}

func (s *FileStore) Save(session model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return err
	}

	s.session = &session
	s.loaded = true
	return nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	s.loaded = true

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *FileStore) loadLocked() {
	s.loaded = true

	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		// A corrupt snapshot reads as logged out.
		return
	}
	if session.Token == "" {
		return
	}
	s.session = &session
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu      sync.RWMutex
	session *model.Session
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Current() (model.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return model.Session{}, false
	}
	return *s.session, true
}

func (s *MemStore) Save(session model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &session
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}
