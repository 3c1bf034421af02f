package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/acquisitions/identity-api/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// Claims is the JWT payload for an issued identity token.
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 identity tokens with a
// process-wide secret. The secret is read-only after construction, so the
// service is safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService fails when no signing secret is configured; a missing
// secret is a deployment error and must abort startup, not individual
// requests.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token service: signing secret is not configured")
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the validity window applied to issued tokens. The cookie
// binder derives its Max-Age from this value so the two stay in sync.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token carrying the identity plus issued-at and expiry.
func (s *TokenService) Issue(identity domain.Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: identity.ID,
		Email:  identity.Email,
		Role:   identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks signature and expiry. Malformed, forged and expired tokens
// all come back as domain.ErrTokenInvalid; the distinction stays internal
// so the authentication gate cannot leak which check failed.
func (s *TokenService) Verify(token string) (domain.Identity, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return domain.Identity{}, domain.ErrTokenInvalid
	}

	return domain.Identity{ID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}
