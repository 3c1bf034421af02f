package service

import (
	"context"

	"github.com/acquisitions/identity-api/internal/core/domain"
	"github.com/acquisitions/identity-api/internal/core/ports"
)

// UserService implements user management with resource-ownership checks.
// Authorization on individual records lives here rather than in middleware
// because it depends on the target id, not just the requester's role.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	cache  ports.UserCache
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, cache ports.UserCache) *UserService {
	return &UserService{repo: repo, hasher: hasher, cache: cache}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// Get serves reads through the cache; cache failures fall back to the
// repository and are never surfaced.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	if cached, err := s.cache.Get(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, user)
	return user, nil
}

// Update applies a partial update. Non-admins may only update their own
// record and may never change a role, their own included.
func (s *UserService) Update(ctx context.Context, requester domain.Identity, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if requester.Role != domain.RoleAdmin && requester.ID != id {
		return nil, domain.ErrForbidden
	}
	if in.Role != nil && requester.Role != domain.RoleAdmin {
		return nil, domain.ErrRoleChangeForbidden
	}
	if in.Role != nil && !domain.ValidRole(*in.Role) {
		return nil, domain.ErrInvalidCredentials
	}

	upd := ports.UserUpdate{Name: in.Name, Email: in.Email, Role: in.Role}
	if in.Password != nil {
		hash, err := s.hasher.Hash(ctx, *in.Password)
		if err != nil {
			return nil, err
		}
		upd.PasswordHash = &hash
	}

	user, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Invalidate(ctx, id)
	return user, nil
}

// Delete removes a record, admins or the owner only, and returns the
// deleted user so the handler can echo id and email back.
func (s *UserService) Delete(ctx context.Context, requester domain.Identity, id string) (*domain.User, error) {
	if requester.Role != domain.RoleAdmin && requester.ID != id {
		return nil, domain.ErrForbidden
	}

	user, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Invalidate(ctx, id)
	return user, nil
}
