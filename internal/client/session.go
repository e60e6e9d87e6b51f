package client

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type State int

const (
	Unauthenticated State = iota
	Authenticated
)

// Session is the client-side session controller: it holds the token under
// a fixed local path and flips to Unauthenticated the moment any request
// fails. Network faults and auth faults are treated alike; callers only
// ever see "log in again". Expiry is discovered reactively, there is no
// timer watching the token.
type Session struct {
	mu    sync.Mutex
	path  string
	token string
	state State
	log   *slog.Logger
}

// DefaultTokenPath is the fixed key the token lives under, the file
// equivalent of the browser's localStorage entry.
func DefaultTokenPath() string {
	home, err := os.UserHomeDir()

	if err != nil {
		home = "."
	}

	return filepath.Join(home, ".schoolhub", "authToken")
}

func NewSession(path string, log *slog.Logger) *Session {
	s := &Session{
		path:  path,
		state: Unauthenticated,
		log:   log,
	}

	raw, err := os.ReadFile(path)

	if err == nil {
		tok := strings.TrimSpace(string(raw))

		if tok != "" {
			s.token = tok
			s.state = Authenticated
		}
	}

	return s
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// SetToken persists the token and moves to Authenticated.
func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return err
	}

	s.token = token
	s.state = Authenticated

	return nil
}

// Clear wipes the stored token and moves to Unauthenticated.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.state = Unauthenticated
	_ = os.Remove(s.path)
}

// HandleFailure is the Authenticated -> Unauthenticated transition: any
// failed fetch clears the session so the next action forces a login.
func (s *Session) HandleFailure(err error) {
	if err == nil {
		return
	}

	if s.log != nil {
		s.log.Warn("session dropped after failed request", "err", err)
	}

	s.Clear()
}
