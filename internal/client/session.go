package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// Session is the signed-in identity shared by every request the client makes. When path is
// set it is persisted so separate invocations of the CLI stay signed in.
type Session struct {
	path string

	mu    sync.RWMutex
	token string
	user  User
}

type sessionFile struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// NewSession returns an empty session persisted at path. An empty path keeps it in memory.
func NewSession(path string) *Session {
	return &Session{path: path}
}

// LoadSession reads the session at path. A missing file yields an empty session.
func LoadSession(path string) (*Session, error) {
	s := NewSession(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.Wrap(err, "read session")
	}

	var file sessionFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "decode session")
	}

	s.token = file.Token
	s.user = file.User
	return s, nil
}

// Set stores a fresh token and user and persists them.
func (s *Session) Set(token string, user User) error {
	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()

	return s.save()
}

// Clear forgets the token and removes the session file.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.user = User{}
	s.mu.Unlock()

	if s.path == "" {
		return nil
	}

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove session")
	}
	return nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// UserID is zero when nobody is signed in.
func (s *Session) UserID() uint {
	return s.User().ID
}

func (s *Session) LoggedIn() bool {
	return s.Token() != ""
}

func (s *Session) save() error {
	if s.path == "" {
		return nil
	}

	s.mu.RLock()
	data, err := json.MarshalIndent(sessionFile{Token: s.token, User: s.user}, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return errors.Wrap(err, "encode session")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "create session directory")
	}

	return errors.Wrap(os.WriteFile(s.path, data, 0o600), "write session")
}
