package team

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tda-club/club-website-backend/middleware"
	"github.com/tda-club/club-website-backend/utils"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 📄 Public list - GET /team
func (h *Handler) GetMembers(c *gin.Context) {
	members, err := h.Service.ListActive()
	if err != nil {
		log.Printf("❌ Error fetching team members: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, members)
}

// ===========================
// 📄 Admin list - GET /team/admin
func (h *Handler) GetMembersAdmin(c *gin.Context) {
	members, err := h.Service.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, members)
}

// ===========================
// 🔍 Get Member - GET /team/:id
func (h *Handler) GetMemberByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	m, err := h.Service.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Team member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, m)
}

// ===========================
// 🎯 Create Member - POST /team (multipart)
func (h *Handler) CreateMember(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	in, err := bindMemberForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	m, err := h.Service.Create(c.Request.Context(), in, userID, ip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error creating team member", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, m)
}

// ===========================
// 🛠 Update Member - PUT /team/:id (multipart)
func (h *Handler) UpdateMember(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	in, err := bindMemberForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	m, err := h.Service.Update(c.Request.Context(), id, in, userID, ip)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Team member not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error updating team member", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, m)
}

// ===========================
// ❌ Delete Member - DELETE /team/:id
func (h *Handler) DeleteMember(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	ip := middleware.GetIPFromContext(c)
	if err := h.Service.Delete(c.Request.Context(), id, userID, ip); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Team member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Team member deleted successfully"})
}

// ===========================
// 🔀 Toggle active - PATCH /team/:id/toggle-active
func (h *Handler) ToggleActive(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	ip := middleware.GetIPFromContext(c)
	m, err := h.Service.ToggleActive(c.Request.Context(), id, userID, ip)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Team member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, m)
}

// ===========================
// Helpers

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid team member ID"})
		return 0, false
	}
	return uint(id), true
}

// bindMemberForm reads the multipart admin payload. socialMedia arrives as a
// JSON object, skills as a comma separated list (both FormData strings).
func bindMemberForm(c *gin.Context) (*MemberInput, error) {
	in := &MemberInput{
		Name:  c.PostForm("name"),
		Role:  c.PostForm("role"),
		Quote: c.PostForm("quote"),
		Email: c.PostForm("email"),
		Phone: c.PostForm("phone"),
		Bio:   c.PostForm("bio"),
	}

	if raw := c.PostForm("socialMedia"); raw != "" {
		var social SocialMedia
		if err := json.Unmarshal([]byte(raw), &social); err != nil {
			return nil, errors.New("socialMedia must be a JSON object")
		}
		in.SocialMedia = &social
	}

	if raw := c.PostForm("skills"); raw != "" {
		var skills []string
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				skills = append(skills, s)
			}
		}
		if skills == nil {
			skills = []string{}
		}
		in.Skills = skills
	}

	if raw := c.PostForm("order"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.New("order must be an integer")
		}
		in.Order = &n
	}
	if raw := c.PostForm("isActive"); raw != "" {
		v := raw == "true"
		in.IsActive = &v
	}

	if fh, err := c.FormFile("image"); err == nil {
		url, err := utils.UploadImage(c.Request.Context(), fh, utils.FolderTeam, utils.TransformTeam)
		if err != nil {
			return nil, fmt.Errorf("image upload failed: %w", err)
		}
		in.Image = url
	}

	return in, nil
}
