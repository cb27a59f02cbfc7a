package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/drawforge/auth-service/internal/core/domain"
	"github.com/drawforge/auth-service/internal/core/ports"
)

// EnsureUser creates the user when absent, or refreshes its password hash and
// profile fields when it already exists. Used at startup to provision the
// bootstrap admin account.
func EnsureUser(ctx context.Context, repo ports.UserRepository, hasher ports.PasswordHasher, loginID, password, email, name string) (*domain.User, error) {
	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	existing, err := repo.FindByLoginID(ctx, loginID)
	switch {
	case err == nil:
		existing.PasswordHash = hash
		existing.Email = email
		existing.Name = name
		existing.UpdatedAt = time.Now().UTC()
		if err := repo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("update seed user: %w", err)
		}
		return existing, nil
	case errors.Is(err, domain.ErrUserNotFound):
		now := time.Now().UTC()
		created, err := repo.Create(ctx, &domain.User{
			LoginID:      loginID,
			PasswordHash: hash,
			Email:        email,
			Name:         name,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return nil, fmt.Errorf("create seed user: %w", err)
		}
		return created, nil
	default:
		return nil, err
	}
}
