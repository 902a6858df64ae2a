package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tda-club/club-website-backend/config"
	"github.com/tda-club/club-website-backend/internal/auth"
	"github.com/tda-club/club-website-backend/middleware"
)

const testSecret = "middleware-test-secret"

type stubAuthService struct {
	user auth.User
}

func (s stubAuthService) Login(context.Context, auth.LoginInput, string) (string, *auth.User, error) {
	return "", nil, nil
}

func (s stubAuthService) GetUserByID(id uint) (auth.User, error) {
	if id != s.user.ID {
		return auth.User{}, auth.ErrUserNotFound
	}
	return s.user, nil
}

func (s stubAuthService) Logout() error { return nil }

func (s stubAuthService) RequestPasswordReset(string) error { return nil }

func (s stubAuthService) ResetPassword(string, string) error { return nil }

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{JWTSecret: testSecret}
	svc := stubAuthService{user: auth.User{ID: 7, Name: "Admin", Email: "admin@club.test", Role: "admin"}}

	r := gin.New()
	r.GET("/protected", middleware.AuthMiddleware(cfg, svc), func(c *gin.Context) {
		id, _ := middleware.GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	return r
}

func signToken(t *testing.T, secret string, expiresIn time.Duration, userID uint) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    "admin",
		"exp":     time.Now().Add(expiresIn).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "valid token",
			authHeader: "Bearer " + signToken(t, testSecret, time.Hour, 7),
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			authHeader: "Token abc123",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			authHeader: "Bearer not.a.jwt",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			authHeader: "Bearer " + signToken(t, testSecret, -time.Hour, 7),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong signing key",
			authHeader: "Bearer " + signToken(t, "another-secret", time.Hour, 7),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token for deleted user",
			authHeader: "Bearer " + signToken(t, testSecret, time.Hour, 42),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, tt.authHeader)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestAuthMiddlewareExpiredMessage(t *testing.T) {
	r := newTestRouter()

	w := doRequest(r, "Bearer "+signToken(t, testSecret, -time.Hour, 7))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
	if body := w.Body.String(); body != `{"message":"Token expired"}` {
		t.Fatalf("body = %s", body)
	}
}
