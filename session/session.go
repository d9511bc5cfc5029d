// Package session holds the operator's platform session: the bearer token and
// user profile returned by the auth endpoint, persisted to a local file so a
// restarted console resumes straight into the main shell.
//
// The store is the session's single writer: Save on login, Clear on logout or
// on an authentication failure observed by any request. Both are idempotent,
// so concurrent 401s racing to clear the same session are harmless.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt"

	"github.com/amresh-singh-kipm/quick-admin/models"
)

type state struct {
	Token string             `json:"token"`
	User  models.UserProfile `json:"user"`
}

// Store is a file-backed session record.
type Store struct {
	path string

	mu    sync.Mutex
	state state
}

// Open loads the session file at path, if one exists. A session whose token
// is a JWT past its expiry is discarded immediately rather than waiting for
// the first 401.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session file: %w", err)
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		// A corrupt session file is the same as no session.
		s.state = state{}
		return s, nil
	}
	if tokenExpired(s.state.Token, time.Now()) {
		s.state = state{}
		_ = os.Remove(path)
	}
	return s, nil
}

// Token returns the stored bearer token, or "" when signed out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

// User returns the stored operator profile.
func (s *Store) User() models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.User
}

// Active reports whether a session is held.
func (s *Store) Active() bool {
	return s.Token() != ""
}

// Save records a fresh session and persists it.
func (s *Store) Save(token string, user models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state{Token: token, User: user}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	data, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// Clear drops the session and removes the file. Safe to call repeatedly and
// from concurrent requests.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

// tokenExpired inspects a JWT's exp claim without verifying the signature;
// the signing key belongs to the platform. Tokens that are not JWTs, or carry
// no expiry, are left for the server to judge.
func tokenExpired(token string, now time.Time) bool {
	if token == "" {
		return false
	}
	claims := &jwt.StandardClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == 0 {
		return false
	}
	return now.Unix() >= claims.ExpiresAt
}
