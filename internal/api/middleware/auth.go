package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/acquisitions/identity-api/internal/api/cookies"
	"github.com/acquisitions/identity-api/internal/api/metrics"
	"github.com/acquisitions/identity-api/internal/core/domain"
	"github.com/acquisitions/identity-api/internal/core/ports"
)

const identityKey = "identity"

// SetIdentity attaches the authenticated identity to the request context.
func SetIdentity(c echo.Context, identity domain.Identity) {
	c.Set(identityKey, identity)
}

// IdentityFrom returns the identity attached by the Auth middleware.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	identity, ok := c.Get(identityKey).(domain.Identity)
	return identity, ok
}

// Auth reads the token cookie, verifies it and injects the resolved
// identity into the context. The failure message never reveals whether the
// token was malformed, forged or expired.
func Auth(tokens ports.TokenService, jar *cookies.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := jar.Read(c)
			if !ok {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}

			identity, err := tokens.Verify(token)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}
			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()

			SetIdentity(c, identity)
			return next(c)
		}
	}
}
