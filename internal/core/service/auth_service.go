package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/drawforge/auth-service/internal/core/domain"
	"github.com/drawforge/auth-service/internal/core/ports"
)

const (
	loginSuccessMessage  = "login success"
	logoutSuccessMessage = "logged out"
)

// AuthService orchestrates credential verification and token issuance. It is
// stateless per call: the only shared state is the user store behind the
// repository and the immutable signing keys inside the token service.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, logger: logger}
}

// Login verifies the credentials and issues an access token. Unknown login id
// and wrong password both surface as ErrInvalidCredentials so the response
// cannot be used for user enumeration. Store failures propagate untouched and
// must never be mistaken for bad credentials.
func (s *AuthService) Login(ctx context.Context, loginID, password string) (*ports.LoginResult, error) {
	user, err := s.repo.FindByLoginID(ctx, loginID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Info().Msg("login rejected: unknown login id")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Info().Msg("login rejected: password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, 0)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("login succeeded")
	return &ports.LoginResult{
		Message:     loginSuccessMessage,
		AccessToken: token,
		UserID:      user.ID,
	}, nil
}

// Logout always succeeds, whether or not the caller was ever authenticated.
// Tokens are stateless, so invalidation is the client discarding its cookie;
// nothing is touched server-side.
func (s *AuthService) Logout(_ context.Context) *ports.LogoutResult {
	return &ports.LogoutResult{Message: logoutSuccessMessage}
}

// Status reports the identity resolved by upstream token validation. It
// performs no validation of its own.
func (s *AuthService) Status(_ context.Context, userID *int64) *ports.StatusResult {
	if userID == nil {
		return &ports.StatusResult{IsAuthenticated: false}
	}
	return &ports.StatusResult{IsAuthenticated: true, UserID: userID}
}
