package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Session is everything persisted between runs. All user fields are
// denormalized copies; the backend owns the truth.
type Session struct {
	LoggedIn bool   `json:"logged_in"`
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Store persists the session as a JSON file and notifies subscribers when
// it changes. It is injected into the views, never a package global.
type Store struct {
	mu     sync.RWMutex
	cur    Session
	file   string
	logger *zap.Logger

	subMu   sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

func NewStore(file string, logger *zap.Logger) *Store {
	return &Store{
		file:   file,
		logger: logger,
		subs:   make(map[int]chan struct{}),
	}
}

// Load reads the persisted session. A missing file is a fresh install, not
// an error.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.file); os.IsNotExist(err) {
		return nil
	}
	data, err := os.ReadFile(s.file)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &s.cur)
}

// Reload re-reads the file so a change made by another process (a second
// "tab") becomes visible. A file that disappeared means logged out.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.file)
	if os.IsNotExist(err) {
		s.cur = Session{}
		return nil
	}
	if err != nil {
		return err
	}
	var next Session
	if err := json.Unmarshal(data, &next); err != nil {
		return err
	}
	s.cur = next
	return nil
}

// SetToken stores the bearer token without marking the session logged in.
// The login flow needs the token before the profile fetch; the flag is only
// set once SetSession runs.
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cur.Token = token
	if err := s.saveInternal(); err != nil {
		return err
	}
	s.notify()
	return nil
}

func (s *Store) SetSession(token, userID, name, email, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cur = Session{
		LoggedIn: true,
		Token:    token,
		UserID:   userID,
		Name:     name,
		Email:    email,
		Role:     role,
	}
	if err := s.saveInternal(); err != nil {
		return err
	}
	s.logger.Info("session stored", zap.String("user_id", userID), zap.String("role", role))
	s.notify()
	return nil
}

// Clear wipes every field in one write; no partially-cleared state is
// observable afterwards.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cur = Session{}
	if err := s.saveInternal(); err != nil {
		return err
	}
	s.logger.Info("session cleared")
	s.notify()
	return nil
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Token
}

// IsLoggedIn is defined purely by the flag. A set flag with an empty token
// is inconsistent; callers treat it as forced logout.
func (s *Store) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.LoggedIn
}

// User returns a copy of the current session.
func (s *Store) User() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Subscribe returns a channel that receives a tick whenever the session
// changes, plus a cancel func. Replaces the browser storage-event wiring.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan struct{}, 1)
	s.subs[id] = ch

	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
	return ch, cancel
}

func (s *Store) notify() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Must be called with the write lock held.
func (s *Store) saveInternal() error {
	if err := os.MkdirAll(filepath.Dir(s.file), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.cur, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.file, data, 0600)
}
