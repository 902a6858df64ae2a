package forms

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tda-club/club-website-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 📨 Public submit - POST /forms/submit
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "fullName and a valid email are required"})
		return
	}

	ip := middleware.GetIPFromContext(c)
	sub, err := h.Service.Submit(&req, ip, c.Request.UserAgent())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Application submitted successfully",
		"id":      sub.ID,
	})
}

// ===========================
// 📄 Admin list - GET /forms
func (h *Handler) GetSubmissions(c *gin.Context) {
	filter := ListFilter{
		FormType: c.Query("formType"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	subs, total, err := h.Service.List(filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submissions": subs,
		"total":       total,
		"page":        filter.Page,
	})
}

// ===========================
// 🔍 Get one - GET /forms/:id
func (h *Handler) GetSubmission(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	sub, err := h.Service.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Submission not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, sub)
}

// ===========================
// 🛠 Triage - PATCH /forms/:id
func (h *Handler) UpdateSubmission(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	id, idOK := parseID(c)
	if !idOK {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	ip := middleware.GetIPFromContext(c)
	sub, err := h.Service.UpdateTriage(c.Request.Context(), id, &req, userID, ip)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Submission not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sub)
}

// ===========================
// 💬 Respond - POST /forms/:id/respond
func (h *Handler) RespondToSubmission(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	id, idOK := parseID(c)
	if !idOK {
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Response message is required"})
		return
	}

	ip := middleware.GetIPFromContext(c)
	sub, err := h.Service.Respond(c.Request.Context(), id, &req, userID, ip)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Submission not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sub)
}

// ===========================
// ❌ Delete - DELETE /forms/:id
func (h *Handler) DeleteSubmission(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	id, idOK := parseID(c)
	if !idOK {
		return
	}

	ip := middleware.GetIPFromContext(c)
	if err := h.Service.Delete(c.Request.Context(), id, userID, ip); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Submission not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Submission deleted successfully"})
}

// ===========================
// 📊 Export - GET /forms/export
func (h *Handler) ExportSubmissions(c *gin.Context) {
	filter := ListFilter{
		FormType: c.Query("formType"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
	}

	subs, err := h.Service.ListForExport(filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	f, err := BuildSubmissionsWorkbook(subs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	filename := fmt.Sprintf("form_submissions_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := f.Write(c.Writer); err != nil {
		log.Printf("❌ Error writing submissions export: %v", err)
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid submission ID"})
		return 0, false
	}
	return uint(id), true
}
