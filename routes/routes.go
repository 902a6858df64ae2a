package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tda-club/club-website-backend/config"
	"github.com/tda-club/club-website-backend/database"
	"github.com/tda-club/club-website-backend/internal/auditlog"
	"github.com/tda-club/club-website-backend/internal/auth"
	"github.com/tda-club/club-website-backend/internal/event"
	"github.com/tda-club/club-website-backend/internal/forms"
	"github.com/tda-club/club-website-backend/internal/news"
	"github.com/tda-club/club-website-backend/internal/team"
	"github.com/tda-club/club-website-backend/middleware"
	"github.com/tda-club/club-website-backend/utils"
)

// Setup wires every module's repository, service and handler chain onto
// the router. All API routes sit under /api behind the per-IP rate
// limiter; admin routes additionally require a valid bearer token.
func Setup(r *gin.Engine, cfg *config.Config) {
	db := database.DB

	// ===== Dependency wiring =====
	auditRepo := auditlog.NewRepository(db)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	mailer := utils.NewMailer(cfg)

	authRepo := auth.NewRepository(db)
	authSvc := auth.NewService(authRepo, cfg, auditSvc, mailer)
	authHandler := auth.NewHandler(authSvc)

	eventRepo := event.NewRepository(db)
	eventSvc := event.NewService(eventRepo, auditSvc)
	eventHandler := event.NewHandler(eventSvc)

	teamRepo := team.NewRepository(db)
	teamSvc := team.NewService(teamRepo, auditSvc)
	teamHandler := team.NewHandler(teamSvc)

	newsRepo := news.NewRepository(db)
	newsSvc := news.NewService(newsRepo, auditSvc)
	newsHandler := news.NewHandler(newsSvc)

	formsRepo := forms.NewRepository(db)
	formsSvc := forms.NewService(formsRepo, auditSvc)
	formsHandler := forms.NewHandler(formsSvc)

	requireAuth := middleware.AuthMiddleware(cfg, authSvc)

	api := r.Group("/api")
	api.Use(middleware.RateLimiter())
	api.Use(middleware.ClientIP())

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	// ===== Auth =====
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)

		authGroup.GET("/me", requireAuth, authHandler.GetMe)
		authGroup.POST("/logout", requireAuth, authHandler.Logout)
	}

	// ===== Events =====
	eventGroup := api.Group("/events")
	{
		eventGroup.GET("", eventHandler.GetEvents)
		eventGroup.GET("/admin", requireAuth, eventHandler.GetEventsAdmin)
		eventGroup.GET("/:id", eventHandler.GetEventByID)
		eventGroup.POST("/:id/register", eventHandler.RegisterForEvent)

		eventGroup.POST("", requireAuth, eventHandler.CreateEvent)
		eventGroup.PUT("/:id", requireAuth, eventHandler.UpdateEvent)
		eventGroup.DELETE("/:id", requireAuth, eventHandler.DeleteEvent)
		eventGroup.GET("/:id/registrations/export", requireAuth, eventHandler.ExportRegistrations)
	}

	// ===== News =====
	// Registered param must share one name, so every news route uses
	// :identifier even where only a numeric ID is accepted.
	newsGroup := api.Group("/news")
	{
		newsGroup.GET("", newsHandler.GetArticles)
		newsGroup.GET("/admin", requireAuth, newsHandler.GetArticlesAdmin)
		newsGroup.GET("/:identifier", newsHandler.GetArticle)
		newsGroup.PATCH("/:identifier/like", newsHandler.LikeArticle)

		newsGroup.POST("", requireAuth, newsHandler.CreateArticle)
		newsGroup.PUT("/:identifier", requireAuth, newsHandler.UpdateArticle)
		newsGroup.DELETE("/:identifier", requireAuth, newsHandler.DeleteArticle)
	}

	// ===== Team =====
	teamGroup := api.Group("/team")
	{
		teamGroup.GET("", teamHandler.GetMembers)
		teamGroup.GET("/admin", requireAuth, teamHandler.GetMembersAdmin)
		teamGroup.GET("/:id", teamHandler.GetMemberByID)

		teamGroup.POST("", requireAuth, teamHandler.CreateMember)
		teamGroup.PUT("/:id", requireAuth, teamHandler.UpdateMember)
		teamGroup.DELETE("/:id", requireAuth, teamHandler.DeleteMember)
		teamGroup.PATCH("/:id/toggle-active", requireAuth, teamHandler.ToggleActive)
	}

	// ===== Forms =====
	formGroup := api.Group("/forms")
	{
		formGroup.POST("/submit", formsHandler.Submit)

		formGroup.GET("", requireAuth, formsHandler.GetSubmissions)
		formGroup.GET("/export", requireAuth, formsHandler.ExportSubmissions)
		formGroup.GET("/:id", requireAuth, formsHandler.GetSubmission)
		formGroup.PATCH("/:id/status", requireAuth, formsHandler.UpdateSubmission)
		formGroup.POST("/:id/respond", requireAuth, formsHandler.RespondToSubmission)
		formGroup.DELETE("/:id", requireAuth, formsHandler.DeleteSubmission)
	}

	// ===== Admin =====
	adminGroup := api.Group("/admin")
	adminGroup.Use(requireAuth)
	{
		adminGroup.GET("/audit-logs", auditHandler.GetAuditLogs)
	}
}
