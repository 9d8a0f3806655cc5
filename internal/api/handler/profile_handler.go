package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rentassist/identity-service/internal/api/middleware"
	"github.com/rentassist/identity-service/internal/core/domain"
	"github.com/rentassist/identity-service/internal/core/ports"
)

// ProfileHandler serves the role-scoped profile endpoint. One parameterized
// route replaces a per-role route fan-out: the path names the role the
// caller claims, and a session of any other role is rejected even when the
// session itself is valid.
type ProfileHandler struct {
	repo ports.AccountRepository
}

func NewProfileHandler(repo ports.AccountRepository) *ProfileHandler {
	return &ProfileHandler{repo: repo}
}

// Get returns the profile of the authenticated account.
//
// @Summary      Role profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Param        role  path      string  true  "Role of the profile endpoint"
// @Success      200   {object}  accountResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /roles/{role}/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	pathRole, ok := domain.ParseRole(c.Param("role"))
	if !ok {
		return domain.ErrMalformedRequest
	}

	sessionRole, _ := c.Get(middleware.CtxRole).(domain.Role)
	if sessionRole != pathRole {
		return domain.ErrForbidden
	}

	username, _ := c.Get(middleware.CtxUsername).(string)
	account, err := h.repo.FindByUsername(c.Request().Context(), sessionRole, username)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAccountResponse(account))
}
