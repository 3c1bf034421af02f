package ports

import (
	"time"

	"github.com/acquisitions/identity-api/internal/core/domain"
)

// TokenService issues and verifies signed, time-bounded identity tokens.
// Verify collapses all failure modes (bad signature, malformed, expired)
// into domain.ErrTokenInvalid so callers cannot leak which check failed.
type TokenService interface {
	Issue(identity domain.Identity) (string, error)
	Verify(token string) (domain.Identity, error)
	TTL() time.Duration
}
