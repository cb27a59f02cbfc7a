package ports

import (
	"context"

	"github.com/drawforge/auth-service/internal/core/domain"
)

// UserRepository defines the interface for user persistence. Production code
// depends only on this interface; tests substitute the in-memory
// implementation.
type UserRepository interface {
	FindByLoginID(ctx context.Context, loginID string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}
