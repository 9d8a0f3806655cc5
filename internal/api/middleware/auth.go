package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rentassist/identity-service/internal/api/metrics"
	"github.com/rentassist/identity-service/internal/core/domain"
	"github.com/rentassist/identity-service/internal/core/ports"
)

// Context keys populated for downstream handlers.
const (
	CtxAccountID = "account_id"
	CtxUsername  = "username"
	CtxRole      = "role"
	CtxToken     = "session_token"
)

// Auth extracts the bearer token, validates the session and injects the
// session identity into the request context. Missing or malformed headers
// fail the same way an invalid token does.
func Auth(issuer ports.SessionIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.SessionValidationsTotal.WithLabelValues("missing").Inc()
				return domain.ErrInvalidSession
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.SessionValidationsTotal.WithLabelValues("malformed").Inc()
				return domain.ErrInvalidSession
			}

			session, err := issuer.Validate(c.Request().Context(), parts[1])
			if err != nil {
				reason := "invalid"
				if err == domain.ErrSessionExpired {
					reason = "expired"
				}
				metrics.SessionValidationsTotal.WithLabelValues(reason).Inc()
				return err
			}
			metrics.SessionValidationsTotal.WithLabelValues("ok").Inc()

			c.Set(CtxAccountID, session.AccountID)
			c.Set(CtxUsername, session.Username)
			c.Set(CtxRole, session.Role)
			c.Set(CtxToken, parts[1])

			return next(c)
		}
	}
}
