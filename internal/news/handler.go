package news

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

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
// 📄 Public list - GET /news
func (h *Handler) GetArticles(c *gin.Context) {
	filter := ListFilter{
		Category: c.Query("category"),
		Featured: c.Query("featured") == "true",
	}
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			filter.Limit = n
		}
	}

	if filter.Category != "" && !Category(filter.Category).Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown category filter"})
		return
	}

	articles, err := h.Service.ListPublished(filter)
	if err != nil {
		log.Printf("❌ Error fetching news: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, articles)
}

// ===========================
// 📄 Admin list - GET /news/admin
func (h *Handler) GetArticlesAdmin(c *gin.Context) {
	articles, err := h.Service.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, articles)
}

// ===========================
// 🔍 Get by ID or slug - GET /news/:identifier
func (h *Handler) GetArticle(c *gin.Context) {
	identifier := c.Param("identifier")

	a, err := h.Service.GetByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "News article not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, a)
}

// ===========================
// 👍 Like - PATCH /news/:id/like (public)
func (h *Handler) LikeArticle(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("identifier"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid article ID"})
		return
	}

	likes, err := h.Service.Like(uint(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "News article not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

// ===========================
// 🎯 Create - POST /news (multipart)
func (h *Handler) CreateArticle(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	in, err := bindArticleForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	a, err := h.Service.Create(c.Request.Context(), in, userID, ip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error creating news", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, a)
}

// ===========================
// 🛠 Update - PUT /news/:id (multipart)
func (h *Handler) UpdateArticle(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	id, err := strconv.Atoi(c.Param("identifier"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid article ID"})
		return
	}

	in, err := bindArticleForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	a, err := h.Service.Update(c.Request.Context(), uint(id), in, userID, ip)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "News article not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error updating news", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, a)
}

// ===========================
// ❌ Delete - DELETE /news/:id
func (h *Handler) DeleteArticle(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	id, err := strconv.Atoi(c.Param("identifier"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid article ID"})
		return
	}

	ip := middleware.GetIPFromContext(c)
	if err := h.Service.Delete(c.Request.Context(), uint(id), userID, ip); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "News article not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "News article deleted successfully"})
}

// bindArticleForm reads the multipart admin payload; tags arrives as a JSON
// array string, the optional image is uploaded before the record is written.
func bindArticleForm(c *gin.Context) (*ArticleInput, error) {
	in := &ArticleInput{
		Title:       c.PostForm("title"),
		Slug:        c.PostForm("slug"),
		Content:     c.PostForm("content"),
		Excerpt:     c.PostForm("excerpt"),
		Category:    c.PostForm("category"),
		Status:      c.PostForm("status"),
		PublishDate: c.PostForm("publishDate"),
	}

	if raw := c.PostForm("featured"); raw != "" {
		v := raw == "true"
		in.Featured = &v
	}

	if raw := c.PostForm("tags"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Tags); err != nil {
			return nil, errors.New("tags must be a JSON array of strings")
		}
	}

	if fh, err := c.FormFile("image"); err == nil {
		url, err := utils.UploadImage(c.Request.Context(), fh, utils.FolderNews, utils.TransformBanner)
		if err != nil {
			return nil, fmt.Errorf("image upload failed: %w", err)
		}
		in.Image = url
	}

	return in, nil
}
