// Package cookies binds identity tokens to HTTP cookies with a fixed
// security profile: HttpOnly, SameSite=Strict, Path=/, Secure outside
// development.
package cookies

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// TokenCookie is the only cookie this API reads or writes; no bearer
// header alternative is supported.
const TokenCookie = "token"

// Manager writes, reads and clears the token cookie. MaxAge must match the
// token service's TTL so the cookie and the token expire together.
type Manager struct {
	name   string
	maxAge time.Duration
	secure bool
}

func NewManager(name string, maxAge time.Duration, secure bool) *Manager {
	return &Manager{name: name, maxAge: maxAge, secure: secure}
}

// Write attaches the value under the manager's attribute profile.
func (m *Manager) Write(c echo.Context, value string) {
	c.SetCookie(&http.Cookie{
		Name:     m.name,
		Value:    value,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(m.maxAge.Seconds()),
		Path:     "/",
	})
}

// Read returns the cookie value. Absence is a valid "no token" state, not
// an error.
func (m *Manager) Read(c echo.Context) (string, bool) {
	ck, err := c.Cookie(m.name)
	if err != nil || ck.Value == "" {
		return "", false
	}
	return ck.Value, true
}

// Clear instructs the client to drop the cookie. The attribute profile
// mirrors Write so attribute-sensitive clients match it to the original.
func (m *Manager) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     m.name,
		Value:    "",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
		Path:     "/",
	})
}
