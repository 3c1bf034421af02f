package ports

import (
	"context"

	"github.com/acquisitions/identity-api/internal/core/domain"
)

// UserCache is a read-through cache over user lookups by id. Get returns
// (nil, nil) on a miss. Cache failures are advisory; callers fall back to
// the repository.
type UserCache interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
	Invalidate(ctx context.Context, id string) error
}
