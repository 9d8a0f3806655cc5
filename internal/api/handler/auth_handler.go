package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rentassist/identity-service/internal/api/metrics"
	"github.com/rentassist/identity-service/internal/api/middleware"
	"github.com/rentassist/identity-service/internal/core/domain"
	"github.com/rentassist/identity-service/internal/core/ports"
)

type AuthHandler struct {
	authService  ports.AuthService
	registration ports.RegistrationService
	issuer       ports.SessionIssuer
}

func NewAuthHandler(authService ports.AuthService, registration ports.RegistrationService, issuer ports.SessionIssuer) *AuthHandler {
	return &AuthHandler{authService: authService, registration: registration, issuer: issuer}
}

// Login authenticates a (role, username, password) tuple and mints a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrMalformedRequest
	}
	if err := c.Validate(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues(req.Role, "malformed").Inc()
		return domain.ErrMalformedRequest
	}

	account, err := h.authService.Authenticate(c.Request().Context(), req.Role, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMalformedRequest):
			metrics.LoginsTotal.WithLabelValues(req.Role, "malformed").Inc()
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues(req.Role, "invalid_credentials").Inc()
		}
		return err
	}

	session, err := h.issuer.Issue(c.Request().Context(), account)
	if err != nil {
		return err
	}
	metrics.LoginsTotal.WithLabelValues(string(account.Role), "success").Inc()
	metrics.SessionsIssuedTotal.WithLabelValues(string(account.Role)).Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		Account:   toAccountResponse(account),
	})
}

// Register creates a customer account in pending state.
//
// @Summary      Register a customer
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Customer registration details"
// @Success      201   {object}  accountResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrMalformedRequest
	}
	if err := c.Validate(&req); err != nil {
		return domain.ErrMalformedRequest
	}

	account, err := h.registration.RegisterCustomer(c.Request().Context(), ports.RegisterCustomerInput{
		Username: req.Username,
		Secret:   req.Password,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toAccountResponse(account))
}

// Logout revokes the presented session. Idempotent.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := c.Get(middleware.CtxToken).(string)
	if err := h.issuer.Revoke(c.Request().Context(), token); err != nil {
		return err
	}
	metrics.SessionsRevokedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}
