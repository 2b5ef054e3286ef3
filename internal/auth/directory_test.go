package auth

import (
	"path/filepath"
	"strings"
	"testing"

	"habitkeep/internal/errors"
	"habitkeep/internal/kvstore"
)

func setupKV(t *testing.T) kvstore.Provider {
	t.Helper()
	store := kvstore.NewJSONStore(filepath.Join(t.TempDir(), "habitkeep.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	return store
}

func TestRegisterThenVerify(t *testing.T) {
	dir := NewDirectory(setupKV(t))

	user, err := dir.Register("Ana", "ana@example.com", "sunrise7")
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}
	if user.ID == "" {
		t.Error("expected generated user id")
	}
	if user.Email != "ana@example.com" || user.Name != "Ana" {
		t.Errorf("unexpected user record: %+v", user)
	}

	verified, err := dir.Verify("ana@example.com", "sunrise7")
	if err != nil {
		t.Fatalf("failed to verify: %v", err)
	}
	if verified.Email != user.Email || verified.Name != user.Name {
		t.Errorf("verify returned different user: %+v", verified)
	}
}

func TestRegisterNeverStoresPlaintext(t *testing.T) {
	kv := setupKV(t)
	dir := NewDirectory(kv)

	if _, err := dir.Register("Ana", "ana@example.com", "sunrise7"); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	raw, ok, err := kv.Get("users")
	if err != nil || !ok {
		t.Fatalf("expected users value, got ok=%v err=%v", ok, err)
	}
	if strings.Contains(raw, "sunrise7") {
		t.Error("plaintext password found in persisted users value")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	dir := NewDirectory(setupKV(t))

	if _, err := dir.Register("Ana", "ana@example.com", "sunrise7"); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	// Duplicate fails regardless of the other fields.
	_, err := dir.Register("Somebody Else", "ana@example.com", "different99")
	if err != errors.ErrDuplicateUser {
		t.Errorf("expected ErrDuplicateUser, got %v", err)
	}
}

func TestRegisterEmailIsCaseSensitive(t *testing.T) {
	dir := NewDirectory(setupKV(t))

	if _, err := dir.Register("Ana", "ana@example.com", "sunrise7"); err != nil {
		t.Fatalf("failed to register: %v", err)
	}
	if _, err := dir.Register("Ana", "Ana@example.com", "sunrise7"); err != nil {
		t.Errorf("differently-cased email should be a distinct identity: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	dir := NewDirectory(setupKV(t))

	tests := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"empty name", "  ", "ana@example.com", "sunrise7"},
		{"empty email", "Ana", "", "sunrise7"},
		{"email without at", "Ana", "ana.example.com", "sunrise7"},
		{"short password", "Ana", "ana@example.com", "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dir.Register(tt.userName, tt.email, tt.password)
			if !errors.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestVerifyRejectsBadCredentials(t *testing.T) {
	dir := NewDirectory(setupKV(t))

	if _, err := dir.Register("Ana", "ana@example.com", "sunrise7"); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	if _, err := dir.Verify("ana@example.com", "wrong-pass"); err != errors.ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := dir.Verify("nobody@example.com", "sunrise7"); err != errors.ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestDirectoryMalformedUsersValue(t *testing.T) {
	kv := setupKV(t)
	if err := kv.Set("users", "not json"); err != nil {
		t.Fatalf("failed to seed malformed value: %v", err)
	}

	dir := NewDirectory(kv)
	// Malformed data degrades to an empty directory, so registration works.
	if _, err := dir.Register("Ana", "ana@example.com", "sunrise7"); err != nil {
		t.Errorf("expected registration to succeed over malformed state: %v", err)
	}
}
