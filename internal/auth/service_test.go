package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tda-club/club-website-backend/config"
	"github.com/tda-club/club-website-backend/internal/auditlog"
)

type fakeRepo struct {
	users map[string]*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*User)}
}

func (f *fakeRepo) Create(u *User) error {
	u.ID = uint(len(f.users) + 1)
	u.Email = strings.ToLower(u.Email)
	f.users[u.Email] = u
	return nil
}

func (f *fakeRepo) FindByEmail(email string) (*User, error) {
	u, ok := f.users[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeRepo) FindByID(id uint) (User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return *u, nil
		}
	}
	return User{}, gorm.ErrRecordNotFound
}

func (f *fakeRepo) Update(u *User) error {
	f.users[u.Email] = u
	return nil
}

type noopAudit struct{}

func (noopAudit) LogAction(context.Context, *uint, string, map[string]interface{}, string, string) error {
	return nil
}

func (noopAudit) GetAuditLogs(context.Context, auditlog.AuditLogFilter) (*auditlog.PaginatedAuditLogs, error) {
	return &auditlog.PaginatedAuditLogs{}, nil
}

const testSecret = "test-secret-key"

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:         testSecret,
		JWTAccessTTLHours: 24,
	}
	return NewService(repo, cfg, noopAudit{}, nil)
}

func seedUser(t *testing.T, repo *fakeRepo, email, password string) *User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &User{Name: "Test Admin", Email: email, PasswordHash: string(hash), Role: "admin"}
	if err := repo.Create(u); err != nil {
		t.Fatalf("create: %v", err)
	}
	return u
}

func TestLogin(t *testing.T) {
	repo := newFakeRepo()
	seedUser(t, repo, "admin@club.test", "correct horse")
	svc := newTestService(t, repo)

	token, user, err := svc.Login(context.Background(), LoginInput{
		Email:    "admin@club.test",
		Password: "correct horse",
	}, "127.0.0.1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if user.Email != "admin@club.test" {
		t.Fatalf("email = %q", user.Email)
	}

	// Email lookup is case-normalized
	if _, _, err := svc.Login(context.Background(), LoginInput{
		Email:    "  ADMIN@club.test ",
		Password: "correct horse",
	}, "127.0.0.1"); err != nil {
		t.Fatalf("case-normalized login: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeRepo()
	seedUser(t, repo, "admin@club.test", "correct horse")
	svc := newTestService(t, repo)

	_, _, err := svc.Login(context.Background(), LoginInput{
		Email:    "admin@club.test",
		Password: "wrong",
	}, "127.0.0.1")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(t, newFakeRepo())

	_, _, err := svc.Login(context.Background(), LoginInput{
		Email:    "nobody@club.test",
		Password: "whatever",
	}, "127.0.0.1")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("got %v, want ErrUserNotFound", err)
	}
}

func TestTokenClaims(t *testing.T) {
	repo := newFakeRepo()
	u := seedUser(t, repo, "admin@club.test", "correct horse")
	svc := newTestService(t, repo)

	tokenStr, _, err := svc.Login(context.Background(), LoginInput{
		Email:    "admin@club.test",
		Password: "correct horse",
	}, "127.0.0.1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	parsed, err := jwt.Parse(tokenStr, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("parse: %v", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims type")
	}
	if uint(claims["user_id"].(float64)) != u.ID {
		t.Fatalf("user_id claim = %v, want %d", claims["user_id"], u.ID)
	}
	if claims["role"] != "admin" {
		t.Fatalf("role claim = %v", claims["role"])
	}

	exp := time.Unix(int64(claims["exp"].(float64)), 0)
	want := time.Now().Add(24 * time.Hour)
	if exp.Before(want.Add(-time.Minute)) || exp.After(want.Add(time.Minute)) {
		t.Fatalf("exp = %v, want about %v", exp, want)
	}
}

func TestTokenRejectedWithWrongKey(t *testing.T) {
	repo := newFakeRepo()
	seedUser(t, repo, "admin@club.test", "correct horse")
	svc := newTestService(t, repo)

	tokenStr, _, err := svc.Login(context.Background(), LoginInput{
		Email:    "admin@club.test",
		Password: "correct horse",
	}, "127.0.0.1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	_, err = jwt.Parse(tokenStr, func(tok *jwt.Token) (interface{}, error) {
		return []byte("a different key"), nil
	})
	if err == nil {
		t.Fatal("expected verification failure with wrong key")
	}
}
