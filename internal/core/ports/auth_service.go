package ports

import (
	"context"
	"time"
)

// PasswordHasher produces and checks salted one-way password hashes.
type PasswordHasher interface {
	// Hash returns a fresh hash for plain; two calls with the same input
	// yield different strings (random salt).
	Hash(plain string) (string, error)
	// Verify reports whether plain matches hash. It never returns an error:
	// mismatch, malformed hash, and empty plaintext all read as false.
	Verify(plain, hash string) bool
}

// TokenService issues and validates signed access tokens. Issuing requires
// the private key; validation needs only the public key, so downstream
// services can verify tokens they cannot mint.
type TokenService interface {
	// Issue creates a token for userID expiring after ttl. A ttl <= 0 selects
	// the configured default.
	Issue(userID int64, ttl time.Duration) (string, error)
	// Validate checks signature and expiry and returns the embedded user id.
	// Failures are domain.ErrTokenSignature, domain.ErrTokenExpired, or
	// domain.ErrTokenMalformed.
	Validate(token string) (int64, error)
}

type LoginResult struct {
	Message     string
	AccessToken string
	UserID      int64
}

type LogoutResult struct {
	Message string
}

// StatusResult reports the authentication state resolved upstream. UserID is
// nil when the caller is anonymous.
type StatusResult struct {
	IsAuthenticated bool
	UserID          *int64
}

// AuthService implements the login, logout, and status use cases.
type AuthService interface {
	Login(ctx context.Context, loginID, password string) (*LoginResult, error)
	Logout(ctx context.Context) *LogoutResult
	Status(ctx context.Context, userID *int64) *StatusResult
}
