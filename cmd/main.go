package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/tda-club/club-website-backend/config"
	"github.com/tda-club/club-website-backend/database"
	"github.com/tda-club/club-website-backend/internal/auditlog"
	"github.com/tda-club/club-website-backend/internal/auth"
	"github.com/tda-club/club-website-backend/internal/event"
	"github.com/tda-club/club-website-backend/internal/forms"
	"github.com/tda-club/club-website-backend/internal/news"
	"github.com/tda-club/club-website-backend/internal/team"
	"github.com/tda-club/club-website-backend/routes"
	"github.com/tda-club/club-website-backend/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Init Redis
	if err := utils.InitRedis(cfg); err != nil {
		log.Fatalf("❌ Redis init failed: %v", err)
	}

	// Init Cloudinary. Uploads are disabled when credentials are missing so
	// local dev works without an account.
	if err := utils.InitCloudinary(cfg); err != nil {
		log.Printf("⚠️ Cloudinary initialization failed: %v", err)
		log.Println("ℹ️ Continuing without Cloudinary (image uploads will be disabled)")
	} else {
		log.Println("✅ Cloudinary initialized successfully")
	}

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auth.User{},
		&auditlog.AuditLog{},
		&event.Event{},
		&event.Registration{},
		&team.Member{},
		&news.Article{},
		&forms.FormSubmission{},
	); err != nil {
		panic(fmt.Sprintf("❌ DB AutoMigrate failed: %v", err))
	}
	log.Println("✅ Database migrations completed")

	// Seed admin user
	if err := auth.SeedAdminUser(db, cfg); err != nil {
		panic(fmt.Sprintf("❌ Failed to seed admin user: %v", err))
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL, "http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, cfg)

	addr := ":" + cfg.Port
	log.Printf("🚀 Server listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
