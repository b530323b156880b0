package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/owaspcebu/ctf-platform/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User // keyed by email
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

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.users[user.Email] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id, role string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			u.Role = role
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

const strongPassword = "Sup3r$ecret"

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, nil)

	user, err := svc.Register(context.Background(), "  Alice ", " Alice@Example.com ", strongPassword)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.Name != "Alice" || user.Email != "alice@example.com" {
		t.Fatalf("expected trimmed name and normalized email, got %q %q", user.Name, user.Email)
	}
	if user.Role != domain.RoleMember || user.Points != 0 {
		t.Fatalf("expected MEMBER with 0 points, got %s/%d", user.Role, user.Points)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(strongPassword)); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "secret", time.Hour, nil)
	ctx := context.Background()

	cases := []struct {
		name, email, password string
	}{
		{"", "a@b.co", strongPassword},
		{"alice", "not-an-email", strongPassword},
		{"alice", "a@b.co", "short1!"},
		{"alice", "a@b.co", "alllowercase1!"},
		{"alice", "a@b.co", "NoDigitsHere!"},
		{"alice", "a@b.co", "NoSpecial123"},
	}
	for _, tc := range cases {
		_, err := svc.Register(ctx, tc.name, tc.email, tc.password)
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Register(%q, %q, %q): expected validation error, got %v", tc.name, tc.email, tc.password, err)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "secret", time.Hour, nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "alice@example.com", strongPassword); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, "alice2", "ALICE@example.com", strongPassword)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, nil)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "alice@example.com", strongPassword)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := svc.Login(ctx, "Alice@Example.com", strongPassword)
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != registered.ID || claims["role"] != domain.RoleMember || claims["name"] != "alice" {
		t.Fatalf("unexpected claims: %v", claims)
	}
	if _, ok := claims["exp"]; !ok {
		t.Fatalf("expected exp claim")
	}
}

func TestAuthService_Login_Failures(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "secret", time.Hour, nil)
	ctx := context.Background()
	if _, err := svc.Register(ctx, "alice", "alice@example.com", strongPassword); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Login(ctx, "alice@example.com", "Wr0ng!pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for empty input, got %v", err)
	}
	// an unknown email must be indistinguishable from a wrong password
	if _, _, err := svc.Login(ctx, "ghost@example.com", strongPassword); !errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestAuthService_Register_InvalidatesLeaderboard(t *testing.T) {
	inv := &stubInvalidator{}
	svc := NewAuthService(newStubUserRepo(), "secret", time.Hour, inv)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "alice@example.com", strongPassword); err != nil {
		t.Fatalf("register: %v", err)
	}
	if inv.calls != 1 {
		t.Fatalf("expected 1 invalidation after register, got %d", inv.calls)
	}

	if _, err := svc.Register(ctx, "alice", "alice@example.com", strongPassword); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if inv.calls != 1 {
		t.Fatalf("a rejected registration must not invalidate, got %d calls", inv.calls)
	}
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, nil)
	ctx := context.Background()

	member, err := svc.Register(ctx, "bob", "bob@example.com", strongPassword)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	promoted, err := svc.EnsureAdmin(ctx, "ignored", "bob@example.com", "ignored")
	if err != nil {
		t.Fatalf("EnsureAdmin existing: %v", err)
	}
	if promoted.ID != member.ID || !promoted.IsAdmin() {
		t.Fatalf("expected existing account promoted, got %+v", promoted)
	}

	created, err := svc.EnsureAdmin(ctx, "root", "root@example.com", strongPassword)
	if err != nil {
		t.Fatalf("EnsureAdmin new: %v", err)
	}
	if !created.IsAdmin() || created.Points != 0 {
		t.Fatalf("expected fresh admin, got %+v", created)
	}
}
