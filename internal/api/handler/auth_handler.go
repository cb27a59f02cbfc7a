package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/drawforge/auth-service/internal/api/metrics"
	"github.com/drawforge/auth-service/internal/core/ports"
)

const accessTokenCookie = "access_token"

// AuthHandler handles HTTP requests for the authentication use cases.
type AuthHandler struct {
	authService ports.AuthService
	cookieTTL   time.Duration
}

func NewAuthHandler(authService ports.AuthService, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, cookieTTL: cookieTTL}
}

// Login authenticates a user, returns a signed access token, and mirrors it
// into an HttpOnly cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	start := time.Now()
	result, err := h.authService.Login(c.Request().Context(), req.LoginID, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.LoginResult(err)).Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.LoginDuration.Observe(time.Since(start).Seconds())

	c.SetCookie(&http.Cookie{
		Name:     accessTokenCookie,
		Value:    result.AccessToken,
		Path:     "/",
		MaxAge:   int(h.cookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, loginResponse{
		Message:     result.Message,
		AccessToken: result.AccessToken,
		UserID:      result.UserID,
	})
}

// Logout acknowledges the logout. Tokens are stateless, so the server keeps
// no session to tear down; clearing the cookie is this boundary's choice and
// the client discarding the token is the actual invalidation.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  logoutResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	result := h.authService.Logout(c.Request().Context())

	c.SetCookie(&http.Cookie{
		Name:     accessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, logoutResponse{Message: result.Message})
}

// Status reports whether the caller is authenticated. Token validation
// happened upstream in the middleware; this endpoint only reports the
// resolved identity and always answers 200.
//
// @Summary      Authentication status
// @Tags         auth
// @Produce      json
// @Success      200  {object}  statusResponse
// @Router       /auth/status [get]
func (h *AuthHandler) Status(c echo.Context) error {
	result := h.authService.Status(c.Request().Context(), currentUserID(c))

	return c.JSON(http.StatusOK, statusResponse{
		IsAuthenticated: result.IsAuthenticated,
		UserID:          result.UserID,
	})
}
