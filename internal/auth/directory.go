package auth

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"habitkeep/internal/constants"
	"habitkeep/internal/errors"
	"habitkeep/internal/kvstore"
	"habitkeep/internal/logger"
	"habitkeep/internal/models"
	"habitkeep/internal/validation"
)

// Directory is the local user directory: a mapping from email to user
// record stored under the global "users" key.
type Directory struct {
	kv kvstore.Provider
}

func NewDirectory(kv kvstore.Provider) *Directory {
	return &Directory{kv: kv}
}

// Register creates a new user. Emails are identity keys and must be
// unique (case-sensitive exact match).
func (d *Directory) Register(name, email, password string) (models.User, error) {
	if err := validation.UserName(name); err != nil {
		return models.User{}, err
	}
	if err := validation.Email(email); err != nil {
		return models.User{}, err
	}
	if err := validation.Password(password); err != nil {
		return models.User{}, err
	}

	users, err := d.load()
	if err != nil {
		return models.User{}, err
	}

	if _, exists := users[email]; exists {
		return models.User{}, errors.ErrDuplicateUser
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:             uuid.New().String(),
		Name:           name,
		Email:          email,
		PasswordDigest: string(digest),
		CreatedAt:      time.Now(),
	}

	users[email] = user
	if err := d.save(users); err != nil {
		return models.User{}, err
	}

	logger.Info("Registered user", "email", email)
	return user, nil
}

// Verify checks credentials and returns the matching user. It is
// side-effect-free; unknown email and wrong password are indistinguishable.
func (d *Directory) Verify(email, password string) (models.User, error) {
	users, err := d.load()
	if err != nil {
		return models.User{}, err
	}

	user, ok := users[email]
	if !ok {
		return models.User{}, errors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordDigest), []byte(password)); err != nil {
		return models.User{}, errors.ErrInvalidCredentials
	}

	return user, nil
}

// Lookup returns the user record for an email, if present.
func (d *Directory) Lookup(email string) (models.User, bool, error) {
	users, err := d.load()
	if err != nil {
		return models.User{}, false, err
	}
	user, ok := users[email]
	return user, ok, nil
}

// load reads the users mapping. A missing or malformed value is treated
// as an empty directory, never as a fatal condition.
func (d *Directory) load() (map[string]models.User, error) {
	raw, ok, err := d.kv.Get(constants.KeyUsers)
	if err != nil {
		return nil, err
	}
	users := make(map[string]models.User)
	if !ok {
		return users, nil
	}
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		logger.Warn("User directory is malformed, treating as empty", "error", err)
		return make(map[string]models.User), nil
	}
	return users, nil
}

func (d *Directory) save(users map[string]models.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to serialize users: %w", err)
	}
	return d.kv.Set(constants.KeyUsers, string(raw))
}
