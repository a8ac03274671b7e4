// Package session holds the client's authenticated identity: the bearer token
// and the user profile, cached in process and persisted through a durable
// key-value collaborator so they survive restarts.
package session

import (
	"encoding/json"
	"sync"

	"github.com/chaimtop/studygo/core"
	"github.com/chaimtop/studygo/core/student"
)

// Persisted keys. Fixed names, owned by the storage collaborator.
const (
	tokenKey = "token"
	userKey  = "userInfo"
)

// Repository is the durable key-value store behind the session.
// Implementations live under storage/.
type Repository interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Store caches the session for synchronous reads and funnels every mutation
// through Save/Clear so the token and profile can never drift apart: the
// profile is dropped whenever the token goes away.
//
// Persistence failures are never surfaced to callers: a read error counts as
// logged-out, a write error leaves the in-process session usable for the
// remainder of the run.
type Store struct {
	repo   Repository
	logger core.Logger

	mu    sync.Mutex
	token string
	user  *student.Profile
}

func NewStore(repo Repository, logger core.Logger) *Store {
	s := &Store{repo: repo, logger: logger}
	s.hydrate()
	return s
}

// hydrate loads the persisted session at construction (process restart).
func (s *Store) hydrate() {
	token, err := s.repo.Get(tokenKey)
	if err != nil || token == "" {
		if err != nil {
			s.logger.Warn("session: reading token, treating as logged out", err)
		}
		return
	}
	s.token = token

	raw, err := s.repo.Get(userKey)
	if err != nil || raw == "" {
		return // token may lead the profile; profile fetch will refresh it
	}
	var usr student.Profile
	if err := json.Unmarshal([]byte(raw), &usr); err != nil {
		s.logger.Warn("session: discarding corrupt stored profile", err)
		_ = s.repo.Delete(userKey)
		return
	}
	s.user = &usr
}

// Token returns the current bearer token, or "" when logged out. No network.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Authenticated reports whether a token is present. Used as the guard before
// any screen loads personalized data.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// CurrentUser returns the cached profile, or nil.
func (s *Store) CurrentUser() *student.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Save persists the token and profile and updates the in-process cache.
// From the caller's perspective the replacement is atomic: no intermediate
// state is observable once Save returns.
func (s *Store) Save(token string, user *student.Profile) error {
	if err := s.repo.Set(tokenKey, token); err != nil {
		s.logger.Error("session: persisting token", err)
	}
	if user != nil {
		data, err := json.Marshal(user)
		if err != nil {
			return err
		}
		if err := s.repo.Set(userKey, string(data)); err != nil {
			s.logger.Error("session: persisting profile", err)
		}
	} else {
		_ = s.repo.Delete(userKey)
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()
	return nil
}

// Clear removes both fields. Idempotent; never errors to callers.
func (s *Store) Clear() {
	if err := s.repo.Delete(tokenKey); err != nil {
		s.logger.Warn("session: deleting token", err)
	}
	if err := s.repo.Delete(userKey); err != nil {
		s.logger.Warn("session: deleting profile", err)
	}

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
}

// ClearToken satisfies the request pipeline's TokenSource. The profile goes
// with the token: a profile must never outlive its credential.
func (s *Store) ClearToken() {
	s.Clear()
}
