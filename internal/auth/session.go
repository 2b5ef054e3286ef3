package auth

import (
	"encoding/json"
	"fmt"

	"habitkeep/internal/constants"
	"habitkeep/internal/kvstore"
	"habitkeep/internal/logger"
	"habitkeep/internal/models"
)

// Session tracks the single active user. The active user is persisted as
// a denormalized snapshot under "currentUser" and trusted until explicit
// logout; there is no expiry or revocation.
type Session struct {
	kv      kvstore.Provider
	dir     *Directory
	current *models.User
}

func NewSession(kv kvstore.Provider, dir *Directory) *Session {
	return &Session{kv: kv, dir: dir}
}

// Login verifies credentials and activates the session.
func (s *Session) Login(email, password string) (models.User, error) {
	user, err := s.dir.Verify(email, password)
	if err != nil {
		return models.User{}, err
	}
	if err := s.Activate(user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Activate sets the given user as the active session and persists the
// snapshot. Registration calls this directly so a fresh signup is
// immediately logged in.
func (s *Session) Activate(user models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}
	if err := s.kv.Set(constants.KeyCurrentUser, string(raw)); err != nil {
		return err
	}
	s.current = &user
	logger.Info("Session activated", "email", user.Email)
	return nil
}

// Logout clears the active session and removes the persisted snapshot.
func (s *Session) Logout() error {
	s.current = nil
	return s.kv.Delete(constants.KeyCurrentUser)
}

// Restore reads the persisted snapshot, if any, and treats it as the
// active user without re-verifying credentials. Returns nil when no
// session is stored. The snapshot is a copy taken at login time, so a
// record updated in the directory afterwards is not reflected here.
func (s *Session) Restore() (*models.User, error) {
	if s.current != nil {
		return s.current, nil
	}

	raw, ok, err := s.kv.Get(constants.KeyCurrentUser)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.Email == "" {
		logger.Warn("Stored session snapshot is malformed, ignoring", "error", err)
		return nil, nil
	}

	s.current = &user
	return s.current, nil
}

// Current returns the active user, or nil when logged out.
func (s *Session) Current() *models.User {
	return s.current
}
