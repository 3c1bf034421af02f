package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/acquisitions/identity-api/internal/api/cookies"
	"github.com/acquisitions/identity-api/internal/api/metrics"
	"github.com/acquisitions/identity-api/internal/core/domain"
	"github.com/acquisitions/identity-api/internal/core/ports"
)

// AuthHandler serves sign-up, sign-in and sign-out. It owns the binding of
// issued tokens to the response cookie.
type AuthHandler struct {
	auth   ports.AuthService
	tokens ports.TokenService
	jar    *cookies.Manager
	log    zerolog.Logger
}

func NewAuthHandler(auth ports.AuthService, tokens ports.TokenService, jar *cookies.Manager, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, tokens: tokens, jar: jar, log: log}
}

// SignUp registers a new user and sets the token cookie.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/sign-up [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, token, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.SignupsTotal.WithLabelValues("duplicate").Inc()
			return c.JSON(http.StatusConflict, errorResponse{Error: "Email already exist"})
		}
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.SignupsTotal.WithLabelValues("created").Inc()

	h.jar.Write(c, token)
	h.log.Info().Str("email", user.Email).Msg("user registered")

	return c.JSON(http.StatusCreated, authResponse{
		Message: "User registered",
		User:    newUserPayload(user),
	})
}

// SignIn authenticates a user and sets a fresh token cookie. Unknown email
// and wrong password collapse into one response so the endpoint cannot be
// used for account enumeration.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/sign-in [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, token, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "Invalid email or password"})
		}
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	h.jar.Write(c, token)
	h.log.Info().Str("email", user.Email).Msg("user signed in")

	return c.JSON(http.StatusOK, authResponse{
		Message: "User signed in successfully",
		User:    newUserPayload(user),
	})
}

// SignOut clears the token cookie. It succeeds regardless of whether the
// request carried a valid, expired or missing token; the token is decoded
// only to log who signed out.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /api/auth/sign-out [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	if token, ok := h.jar.Read(c); ok {
		if identity, err := h.tokens.Verify(token); err == nil {
			h.log.Info().Str("email", identity.Email).Msg("user signed out")
		} else {
			h.log.Info().Msg("user signed out (invalid or expired token cleared)")
		}
	} else {
		h.log.Info().Msg("user signed out (no token found)")
	}

	h.jar.Clear(c)

	return c.JSON(http.StatusOK, messageResponse{Message: "User signed out successfully"})
}
