package ports

import (
	"context"

	"github.com/acquisitions/identity-api/internal/core/domain"
)

// RegisterInput is the validated sign-up payload.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthService implements registration and credential authentication.
// Both operations return a freshly signed token alongside the user so the
// HTTP layer can bind it to the response cookie.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}
