package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/acquisitions/identity-api/internal/api/middleware"
	"github.com/acquisitions/identity-api/internal/core/ports"
)

// UserHandler serves the user management endpoints. Ownership and
// role-change rules are enforced by the user service; this layer only
// resolves the requester identity and shapes responses.
type UserHandler struct {
	users ports.UserService
	log   zerolog.Logger
}

func NewUserHandler(users ports.UserService, log zerolog.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

// List returns all users. Admin only (enforced by route middleware).
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {object}  listUsersResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}

	payload := make([]userDetail, 0, len(users))
	for i := range users {
		payload = append(payload, newUserDetail(&users[i]))
	}

	return c.JSON(http.StatusOK, listUsersResponse{
		Message: "Successfully retrieved users",
		Users:   payload,
		Count:   len(payload),
	})
}

// Get returns a single user by id.
//
// @Summary      Get user by id
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{
		Message: "Successfully retrieved user",
		User:    newUserDetail(user),
	})
}

// Update applies a partial update to a user record.
//
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	requester, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	id := c.Param("id")
	user, err := h.users.Update(c.Request().Context(), requester, id, ports.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	h.log.Info().Str("id", id).Str("requester", requester.ID).Msg("user updated")

	return c.JSON(http.StatusOK, userResponse{
		Message: "User updated successfully",
		User:    newUserDetail(user),
	})
}

// Delete removes a user record and echoes back its id and email.
//
// @Summary      Delete user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  deleteUserResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	requester, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	id := c.Param("id")
	user, err := h.users.Delete(c.Request().Context(), requester, id)
	if err != nil {
		return err
	}

	h.log.Info().Str("id", id).Str("requester", requester.ID).Msg("user deleted")

	return c.JSON(http.StatusOK, deleteUserResponse{
		Message: "User deleted successfully",
		User:    deletedUser{ID: user.ID, Email: user.Email},
	})
}
