package ports

import (
	"context"

	"github.com/acquisitions/identity-api/internal/core/domain"
)

// UserUpdate carries a partial update; nil fields are left untouched.
type UserUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *string
}

// UserRepository defines the interface for credential record persistence.
// The store is the authoritative guard against duplicate emails: Insert and
// Update surface uniqueness violations as domain.ErrUserExists.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, upd UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}
