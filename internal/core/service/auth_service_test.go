package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/drawforge/auth-service/internal/core/domain"
)

type stubUserRepo struct {
	users   map[string]*domain.User
	nextID  int64
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByLoginID(_ context.Context, loginID string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if u, ok := r.users[loginID]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.LoginID]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = r.nextID
	r.users[created.LoginID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	for loginID, u := range r.users {
		if u.ID == user.ID {
			r.users[loginID] = cloneUser(user)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	for loginID, u := range r.users {
		if u.ID == id {
			delete(r.users, loginID)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func newTestAuthService(t *testing.T, repo *stubUserRepo) (*AuthService, *TokenService) {
	t.Helper()
	priv, pub := newTestKeys(t)
	tokens := NewTokenService(priv, pub, time.Hour)
	hasher := NewBcryptHasher(bcrypt.MinCost)
	return NewAuthService(repo, hasher, tokens, zerolog.Nop()), tokens
}

func seedStubUser(t *testing.T, repo *stubUserRepo, loginID, password string) *domain.User {
	t.Helper()
	hash, err := NewBcryptHasher(bcrypt.MinCost).Hash(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	created, err := repo.Create(context.Background(), &domain.User{LoginID: loginID, PasswordHash: hash})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return created
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newTestAuthService(t, repo)
	user := seedStubUser(t, repo, "admin", "pass")

	result, err := svc.Login(context.Background(), "admin", "pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Message != "login success" {
		t.Fatalf("unexpected message: %q", result.Message)
	}
	if result.UserID != user.ID {
		t.Fatalf("expected user id %d, got %d", user.ID, result.UserID)
	}

	subject, err := tokens.Validate(result.AccessToken)
	if err != nil {
		t.Fatalf("returned token invalid: %v", err)
	}
	if subject != user.ID {
		t.Fatalf("token subject %d does not match user id %d", subject, user.ID)
	}
}

func TestAuthService_Login_UnknownUserAndWrongPasswordIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(t, repo)
	seedStubUser(t, repo, "admin", "pass")

	_, unknownErr := svc.Login(context.Background(), "ghost", "pass")
	_, wrongPassErr := svc.Login(context.Background(), "admin", "wrong")

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if !errors.Is(wrongPassErr, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassErr)
	}
	if unknownErr.Error() != wrongPassErr.Error() {
		t.Fatalf("error messages must be identical: %q vs %q", unknownErr, wrongPassErr)
	}
}

func TestAuthService_Login_EmptyPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(t, repo)
	seedStubUser(t, repo, "admin", "pass")

	if _, err := svc.Login(context.Background(), "admin", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_StoreErrorIsNotUnauthorized(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(t, repo)

	storeDown := errors.New("store unavailable")
	repo.findErr = storeDown

	_, err := svc.Login(context.Background(), "admin", "pass")
	if !errors.Is(err, storeDown) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("store error must not be reported as invalid credentials")
	}
}

func TestAuthService_Logout_Idempotent(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(t, repo)

	first := svc.Logout(context.Background())
	second := svc.Logout(context.Background())

	if first.Message != "logged out" || second.Message != "logged out" {
		t.Fatalf("expected fixed logout message, got %q and %q", first.Message, second.Message)
	}
}

func TestAuthService_Status(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(t, repo)

	anon := svc.Status(context.Background(), nil)
	if anon.IsAuthenticated || anon.UserID != nil {
		t.Fatalf("expected anonymous status, got %+v", anon)
	}

	uid := int64(42)
	authed := svc.Status(context.Background(), &uid)
	if !authed.IsAuthenticated {
		t.Fatalf("expected authenticated status")
	}
	if authed.UserID == nil || *authed.UserID != 42 {
		t.Fatalf("expected user id 42, got %v", authed.UserID)
	}
}

func TestEnsureUser_CreateThenUpdate(t *testing.T) {
	repo := newStubUserRepo()
	hasher := NewBcryptHasher(bcrypt.MinCost)

	created, err := EnsureUser(context.Background(), repo, hasher, "admin", "pass", "admin@example.com", "Admin")
	if err != nil {
		t.Fatalf("ensure (create): %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if created.PasswordHash == "pass" {
		t.Fatalf("seed password must be hashed")
	}

	updated, err := EnsureUser(context.Background(), repo, hasher, "admin", "newpass", "admin@example.com", "Admin")
	if err != nil {
		t.Fatalf("ensure (update): %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("id must be immutable across reseeds: %d vs %d", updated.ID, created.ID)
	}
	if !hasher.Verify("newpass", updated.PasswordHash) {
		t.Fatalf("updated hash does not match new password")
	}
}
