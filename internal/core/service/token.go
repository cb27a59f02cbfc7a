package service

import (
	"crypto/rsa"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/drawforge/auth-service/internal/core/domain"
)

const defaultTokenTTL = 30 * time.Minute

// ErrNoSigningKey is returned by Issue when the service was built without a
// private key (validator-only deployment).
var ErrNoSigningKey = errors.New("signing key not configured")

// accessClaims is the token payload: the subject user id plus the registered
// issued-at and expiry timestamps.
type accessClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService issues and validates RS256-signed access tokens. The private
// key signs, the public key verifies; holders of only the public key can
// validate tokens without being able to mint them.
type TokenService struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	defaultTTL time.Duration
	now        func() time.Time
}

// NewTokenService builds a TokenService. privateKey may be nil for
// deployments that only validate. A defaultTTL <= 0 falls back to 30 minutes.
func NewTokenService(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, defaultTTL time.Duration) *TokenService {
	if defaultTTL <= 0 {
		defaultTTL = defaultTokenTTL
	}
	return &TokenService{
		privateKey: privateKey,
		publicKey:  publicKey,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// WithClock replaces the time source. Intended for tests that need to drive
// expiry without sleeping.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// Issue signs a token for userID expiring after ttl (ttl <= 0 selects the
// default). Tokens issued at different instants differ because issued-at and
// expiry move with the clock.
func (s *TokenService) Issue(userID int64, ttl time.Duration) (string, error) {
	if s.privateKey == nil {
		return "", ErrNoSigningKey
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	now := s.now().UTC()
	claims := accessClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(s.privateKey)
}

// Validate checks signature and expiry against the public key and returns the
// embedded user id. No expiry leeway is applied.
func (s *TokenService) Validate(tokenString string) (int64, error) {
	claims := &accessClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.publicKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return 0, domain.ErrTokenSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, domain.ErrTokenExpired
		default:
			return 0, domain.ErrTokenMalformed
		}
	}
	if !parsed.Valid {
		return 0, domain.ErrTokenMalformed
	}

	return claims.UserID, nil
}
