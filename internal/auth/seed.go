package auth

import (
	"errors"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tda-club/club-website-backend/config"
)

// SeedAdminUser provisions the admin credential record from env config when
// it does not exist yet. Passwords are only ever stored hashed.
func SeedAdminUser(db *gorm.DB, cfg *config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))

	var existing User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Printf("✅ Admin user %s already exists", email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	name := cfg.AdminName
	if name == "" {
		name = "Admin User"
	}

	admin := &User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         "admin",
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded admin user %s", email)
	return nil
}
