package auth

import (
	"testing"

	"habitkeep/internal/constants"
	"habitkeep/internal/errors"
)

func TestLoginActivatesAndPersistsSession(t *testing.T) {
	kv := setupKV(t)
	dir := NewDirectory(kv)
	session := NewSession(kv, dir)

	registered, err := dir.Register("Ana", "ana@example.com", "sunrise7")
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	user, err := session.Login("ana@example.com", "sunrise7")
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("expected user %s, got %s", registered.ID, user.ID)
	}
	if session.Current() == nil {
		t.Fatal("expected active session after login")
	}

	// A fresh Session over the same store restores without credentials.
	restored, err := NewSession(kv, dir).Restore()
	if err != nil {
		t.Fatalf("failed to restore: %v", err)
	}
	if restored == nil || restored.Email != "ana@example.com" {
		t.Errorf("expected restored session for ana@example.com, got %+v", restored)
	}
}

func TestLoginFailureLeavesSessionInactive(t *testing.T) {
	kv := setupKV(t)
	dir := NewDirectory(kv)
	session := NewSession(kv, dir)

	if _, err := dir.Register("Ana", "ana@example.com", "sunrise7"); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	if _, err := session.Login("ana@example.com", "wrong"); err != errors.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if session.Current() != nil {
		t.Error("failed login must not activate a session")
	}
}

func TestLogoutClearsSnapshot(t *testing.T) {
	kv := setupKV(t)
	dir := NewDirectory(kv)
	session := NewSession(kv, dir)

	if _, err := dir.Register("Ana", "ana@example.com", "sunrise7"); err != nil {
		t.Fatalf("failed to register: %v", err)
	}
	if _, err := session.Login("ana@example.com", "sunrise7"); err != nil {
		t.Fatalf("failed to login: %v", err)
	}

	if err := session.Logout(); err != nil {
		t.Fatalf("failed to logout: %v", err)
	}
	if session.Current() != nil {
		t.Error("expected no active session after logout")
	}
	if _, ok, _ := kv.Get(constants.KeyCurrentUser); ok {
		t.Error("expected persisted snapshot to be removed on logout")
	}

	restored, err := NewSession(kv, dir).Restore()
	if err != nil {
		t.Fatalf("failed to restore: %v", err)
	}
	if restored != nil {
		t.Errorf("expected no session after logout, got %+v", restored)
	}
}

func TestRestoreWithoutSession(t *testing.T) {
	kv := setupKV(t)
	session := NewSession(kv, NewDirectory(kv))

	restored, err := session.Restore()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored != nil {
		t.Errorf("expected nil user, got %+v", restored)
	}
}

func TestRestoreIgnoresMalformedSnapshot(t *testing.T) {
	kv := setupKV(t)
	if err := kv.Set(constants.KeyCurrentUser, "{broken"); err != nil {
		t.Fatalf("failed to seed snapshot: %v", err)
	}

	restored, err := NewSession(kv, NewDirectory(kv)).Restore()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored != nil {
		t.Errorf("malformed snapshot should be treated as absent, got %+v", restored)
	}
}
