package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rollcall/attendance-system/internal/core/ports"
)

// AdminUsersHandler handles admin-side user management.
type AdminUsersHandler struct {
	users ports.UserService
}

func NewAdminUsersHandler(users ports.UserService) *AdminUsersHandler {
	return &AdminUsersHandler{users: users}
}

// List returns all users, newest-first.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Success      200  {object}  usersResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/users [get]
func (h *AdminUsersHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usersResponse{Users: users})
}

// Create registers a new scanner account. The role is always SCANNER.
//
// @Summary      Create a scanner user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "New user"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /admin/users [post]
func (h *AdminUsersHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	admin, err := caller(c)
	if err != nil {
		return err
	}

	created, err := h.users.Create(c.Request().Context(), admin.ID, req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Update patches a user's is_active flag and/or password. Disabling an
// admin account is rejected with 400.
//
// @Summary      Update a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /admin/users/{id} [patch]
func (h *AdminUsersHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	admin, err := caller(c)
	if err != nil {
		return err
	}

	updated, err := h.users.Update(c.Request().Context(), admin.ID, c.Param("id"), ports.UpdateUserInput{
		IsActive: req.IsActive,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}
