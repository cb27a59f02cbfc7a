package domain

import (
	"errors"
	"time"
)

// User models an account that can authenticate against the service.
// PasswordHash always holds a bcrypt hash, never plaintext, and is kept out
// of every JSON rendering.
type User struct {
	ID           int64     `json:"id"`
	LoginID      string    `json:"login_id"`
	PasswordHash string    `json:"-"`
	Email        string    `json:"email,omitempty"`
	Name         string    `json:"name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ErrInvalidCredentials covers both unknown login id and wrong password so
// callers cannot enumerate which login ids exist.
var ErrInvalidCredentials = errors.New("invalid login id or password")

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")

// Token validation failures. The middleware maps all three to 401, but they
// stay distinct so logs and tests can tell signature, expiry, and parse
// problems apart.
var ErrTokenExpired = errors.New("token expired")
var ErrTokenSignature = errors.New("token signature invalid")
var ErrTokenMalformed = errors.New("token malformed")
