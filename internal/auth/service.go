package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tda-club/club-website-backend/config"
	"github.com/tda-club/club-website-backend/internal/auditlog"
	"github.com/tda-club/club-website-backend/utils"
)

// Auth failures are distinguished internally for the audit trail only; the
// HTTP layer collapses both into one generic unauthorized message so the
// login endpoint never reveals whether an email exists.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service interface {
	Login(ctx context.Context, input LoginInput, ip string) (string, *User, error)
	GetUserByID(userID uint) (User, error)
	Logout() error

	// Password reset methods
	RequestPasswordReset(email string) error
	ResetPassword(token string, newPassword string) error
}

type service struct {
	repo     Repository
	auditSvc auditlog.Service
	mailer   *utils.Mailer

	secret    string
	accessTTL time.Duration
}

func NewService(r Repository, cfg *config.Config, auditSvc auditlog.Service, mailer *utils.Mailer) Service {
	return &service{
		repo:      r,
		auditSvc:  auditSvc,
		mailer:    mailer,
		secret:    cfg.JWTSecret,
		accessTTL: time.Duration(cfg.JWTAccessTTLHours) * time.Hour,
	}
}

// =============================
// Login
// =============================

type LoginInput struct {
	Email    string
	Password string
}

func (s *service) Login(ctx context.Context, in LoginInput, ip string) (string, *User, error) {
	user, err := s.repo.FindByEmail(in.Email)
	if err != nil {
		s.auditSvc.LogAction(ctx, nil, "ADMIN_LOGIN", map[string]interface{}{
			"email": in.Email,
			"error": "unknown email",
		}, ip, "failure")
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrUserNotFound
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		s.auditSvc.LogAction(ctx, &user.ID, "ADMIN_LOGIN", map[string]interface{}{
			"email": user.Email,
			"error": "password mismatch",
		}, ip, "failure")
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return "", nil, err
	}

	s.auditSvc.LogAction(ctx, &user.ID, "ADMIN_LOGIN", map[string]interface{}{
		"email": user.Email,
	}, ip, "success")

	return token, user, nil
}

// generateAccessToken mints a stateless HS256 token. Validity is decided
// purely by signature and expiry; there is no server-side session table and
// no revocation before expiry.
func (s *service) generateAccessToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(s.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// =============================
// Forgot Password
// =============================

func (s *service) RequestPasswordReset(email string) error {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return ErrUserNotFound
	}

	resetToken := generateSecureToken()
	ttl := 15 * time.Minute
	key := fmt.Sprintf("reset_token:%s", resetToken)

	// Store user ID as value
	if err := utils.SetToken(key, fmt.Sprint(user.ID), ttl); err != nil {
		return errors.New("could not save reset token")
	}

	if err := s.mailer.SendResetLink(user.Email, resetToken); err != nil {
		return errors.New("failed to send email")
	}

	return nil
}

func (s *service) ResetPassword(token string, newPassword string) error {
	key := fmt.Sprintf("reset_token:%s", token)
	val, err := utils.GetToken(key)
	if err != nil {
		return errors.New("invalid or expired token")
	}

	var userID uint
	if _, err := fmt.Sscan(val, &userID); err != nil {
		return errors.New("invalid token data")
	}

	user, err := s.repo.FindByID(userID)
	if err != nil {
		return ErrUserNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	if err := s.repo.Update(&user); err != nil {
		return errors.New("failed to update password")
	}

	_ = utils.DeleteToken(key) // one-time use

	return nil
}

// =============================
// Logout
// =============================

func (s *service) Logout() error {
	// JWT is stateless, the frontend just clears the token
	return nil
}

// =============================
// Get User By ID
// =============================

func (s *service) GetUserByID(userID uint) (User, error) {
	return s.repo.FindByID(userID)
}

func generateSecureToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
