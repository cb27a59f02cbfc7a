package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/drawforge/auth-service/internal/core/domain"
	"github.com/drawforge/auth-service/internal/core/ports"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, loginID, password string) (*ports.LoginResult, error)
}

func (s *stubAuthService) Login(ctx context.Context, loginID, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, loginID, password)
}

func (s *stubAuthService) Logout(_ context.Context) *ports.LogoutResult {
	return &ports.LogoutResult{Message: "logged out"}
}

func (s *stubAuthService) Status(_ context.Context, userID *int64) *ports.StatusResult {
	if userID == nil {
		return &ports.StatusResult{IsAuthenticated: false}
	}
	return &ports.StatusResult{IsAuthenticated: true, UserID: userID}
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, loginID, password string) (*ports.LoginResult, error) {
			if loginID != "admin" || password != "pass" {
				t.Fatalf("unexpected args: %s %s", loginID, password)
			}
			return &ports.LoginResult{Message: "login success", AccessToken: "token123", UserID: 1}, nil
		},
	}
	h := NewAuthHandler(stub, 30*time.Minute)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login", `{"login_id":"admin","password":"pass"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "login success" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	if resp["access_token"] != "token123" {
		t.Fatalf("unexpected token: %v", resp["access_token"])
	}
	if resp["user_id"] != float64(1) {
		t.Fatalf("unexpected user_id: %v", resp["user_id"])
	}

	cookie := rec.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, "access_token=token123") {
		t.Fatalf("cookie missing token: %q", cookie)
	}
	if !strings.Contains(cookie, "HttpOnly") || !strings.Contains(cookie, "Secure") {
		t.Fatalf("cookie missing HttpOnly/Secure: %q", cookie)
	}
	if !strings.Contains(cookie, "SameSite=Lax") {
		t.Fatalf("cookie missing SameSite=Lax: %q", cookie)
	}
	if !strings.Contains(cookie, "Max-Age=1800") {
		t.Fatalf("cookie Max-Age should match the token ttl: %q", cookie)
	}
}

func TestAuthHandler_Login_InvalidCredentialsPropagated(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, loginID, password string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, time.Minute)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login", `{"login_id":"admin","password":"bad"}`)
	err := h.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
	if cookie := rec.Header().Get("Set-Cookie"); cookie != "" {
		t.Fatalf("no cookie may be set on failure, got %q", cookie)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, loginID, password string) (*ports.LoginResult, error) {
			t.Fatalf("workflow must not run on validation failure")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, time.Minute)

	cases := []string{
		`{"password":"pass"}`,
		`{"login_id":"admin"}`,
		`{"login_id":"","password":""}`,
		`{}`,
	}
	for _, body := range cases {
		c, _ := newTestContext(t, http.MethodPost, "/auth/login", body)
		err := h.Login(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
			t.Fatalf("body %s: expected 422, got %v", body, err)
		}
	}
}

func TestAuthHandler_Login_MalformedJSON(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, loginID, password string) (*ports.LoginResult, error) {
			t.Fatalf("workflow must not run on bind failure")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, time.Minute)

	c, _ := newTestContext(t, http.MethodPost, "/auth/login", "{not-json")
	err := h.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, time.Minute)

	c, rec := newTestContext(t, http.MethodPost, "/auth/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "logged out" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}

	cookie := rec.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, "access_token=;") && !strings.Contains(cookie, "access_token=\"\"") {
		t.Fatalf("expected cleared cookie, got %q", cookie)
	}
}

func TestAuthHandler_Status_Anonymous(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, time.Minute)

	c, rec := newTestContext(t, http.MethodGet, "/auth/status", "")
	if err := h.Status(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := strings.TrimSpace(rec.Body.String())
	if body != `{"is_authenticated":false,"user_id":null}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestAuthHandler_Status_Authenticated(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, time.Minute)

	c, rec := newTestContext(t, http.MethodGet, "/auth/status", "")
	c.Set(UserIDContextKey, int64(42))
	if err := h.Status(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	body := strings.TrimSpace(rec.Body.String())
	if body != `{"is_authenticated":true,"user_id":42}` {
		t.Fatalf("unexpected body: %s", body)
	}
}
