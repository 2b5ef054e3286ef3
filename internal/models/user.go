package models

import "time"

// User is an account in the local user directory. Email is the identity
// key (case-sensitive). PasswordDigest is a bcrypt hash; the plaintext is
// never stored.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordDigest string    `json:"password_digest"`
	CreatedAt      time.Time `json:"created_at"`
}
