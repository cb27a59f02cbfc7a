package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/drawforge/auth-service/internal/api/metrics"
	"github.com/drawforge/auth-service/internal/core/ports"
)

const (
	userIDContextKey  = "user_id"
	accessTokenCookie = "access_token"
)

// Auth validates the access token and injects the subject user id into the
// request context. Requests without a valid token are rejected with 401.
// When enabled is false (auth-disabled deployments) validation is skipped
// entirely and no identity is injected.
func Auth(tokens ports.TokenService, enabled bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !enabled {
				return next(c)
			}

			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
			}

			userID, err := tokens.Validate(token)
			metrics.TokenValidationsTotal.WithLabelValues(metrics.ValidationResult(err)).Inc()
			if err != nil {
				return err
			}

			c.Set(userIDContextKey, userID)
			return next(c)
		}
	}
}

// OptionalAuth resolves the access token when one is present but never
// rejects the request: missing or invalid tokens simply leave the request
// anonymous. Used by /auth/status, which must answer 200 either way.
func OptionalAuth(tokens ports.TokenService, enabled bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !enabled {
				return next(c)
			}

			token := extractToken(c)
			if token == "" {
				return next(c)
			}

			userID, err := tokens.Validate(token)
			metrics.TokenValidationsTotal.WithLabelValues(metrics.ValidationResult(err)).Inc()
			if err != nil {
				return next(c)
			}

			c.Set(userIDContextKey, userID)
			return next(c)
		}
	}
}

// extractToken reads the bearer token from the Authorization header, falling
// back to the access_token cookie set at login.
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}

	cookie, err := c.Cookie(accessTokenCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}
