package ports

import (
	"context"

	"github.com/acquisitions/identity-api/internal/core/domain"
)

// UpdateUserInput carries a partial user update; nil fields are untouched.
// Password, when present, is plaintext and gets hashed by the service.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
}

// UserService exposes user management. Update and Delete enforce resource
// ownership: permitted for admins or for the user acting on their own
// record, and role changes are admin-only regardless of ownership.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, requester domain.Identity, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, requester domain.Identity, id string) (*domain.User, error)
}
