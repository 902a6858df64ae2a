package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

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
// 📄 Public list - GET /events
func (h *Handler) GetEvents(c *gin.Context) {
	filter := ListFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Upcoming: c.Query("upcoming") == "true",
	}

	if filter.Status != "" && !Status(filter.Status).Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown status filter"})
		return
	}
	if filter.Category != "" && !Category(filter.Category).Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown category filter"})
		return
	}

	events, err := h.Service.ListPublicEvents(filter)
	if err != nil {
		log.Printf("❌ Error fetching events: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, events)
}

// ===========================
// 📄 Admin list - GET /events/admin
func (h *Handler) GetEventsAdmin(c *gin.Context) {
	events, err := h.Service.ListAllEvents()
	if err != nil {
		log.Printf("❌ Error fetching events: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, events)
}

// ===========================
// 🔍 Get Event - GET /events/:id
func (h *Handler) GetEventByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	e, err := h.Service.GetEventByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, e)
}

// ===========================
// 🎯 Create Event - POST /events (multipart)
func (h *Handler) CreateEvent(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	req, err := bindEventForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	e, err := h.Service.CreateEvent(c.Request.Context(), req, userID, ip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error creating event", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, e)
}

// ===========================
// 🛠 Update Event - PUT /events/:id (multipart)
func (h *Handler) UpdateEvent(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	req, err := bindEventForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	e, err := h.Service.UpdateEvent(c.Request.Context(), id, req, userID, ip)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error updating event", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, e)
}

// ===========================
// ❌ Delete Event - DELETE /events/:id
func (h *Handler) DeleteEvent(c *gin.Context) {
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
	if err := h.Service.DeleteEvent(c.Request.Context(), id, userID, ip); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

// ===========================
// 📝 Register - POST /events/:id/register (public)
func (h *Handler) RegisterForEvent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req RegisterRequest
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid registration payload"})
		return
	}
	if req.Name == "" || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name and email are required"})
		return
	}

	e, err := h.Service.Register(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
		case errors.Is(err, ErrRegistrationNotRequired):
			c.JSON(http.StatusBadRequest, gin.H{"message": "This event does not require registration"})
		case errors.Is(err, ErrAlreadyRegistered):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Already registered for this event"})
		case errors.Is(err, ErrEventFull):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Event is full"})
		case errors.Is(err, ErrRegistrationClosed):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Registration deadline has passed"})
		default:
			log.Printf("❌ Error registering for event %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Successfully registered for the event",
		"event":   e,
	})
}

// ===========================
// 📊 Export registrations - GET /events/:id/registrations/export
func (h *Handler) ExportRegistrations(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	e, err := h.Service.GetEventByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	f, err := BuildRegistrationsWorkbook(e)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	filename := fmt.Sprintf("event_%d_registrations_%s.xlsx", e.ID, time.Now().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := f.Write(c.Writer); err != nil {
		log.Printf("❌ Error writing registrations export: %v", err)
	}
}

// ===========================
// Helpers

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid event ID"})
		return 0, false
	}
	return uint(id), true
}

// bindEventForm reads the multipart admin payload: scalar fields plus JSON
// encoded organizers/tags (the admin UI sends FormData) and an optional image
// that is uploaded to the media host before the record is written.
func bindEventForm(c *gin.Context) (*CreateEventRequest, error) {
	req := &CreateEventRequest{
		Title:                c.PostForm("title"),
		Description:          c.PostForm("description"),
		ShortDescription:     c.PostForm("shortDescription"),
		Date:                 c.PostForm("date"),
		EndDate:              c.PostForm("endDate"),
		Time:                 c.PostForm("time"),
		Location:             c.PostForm("location"),
		Category:             c.PostForm("category"),
		Status:               c.PostForm("status"),
		RegistrationDeadline: c.PostForm("registrationDeadline"),
	}

	if raw := c.PostForm("maxParticipants"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.New("maxParticipants must be an integer")
		}
		req.MaxParticipants = &n
	}
	if raw := c.PostForm("isPublic"); raw != "" {
		v := raw == "true"
		req.IsPublic = &v
	}
	if raw := c.PostForm("registrationRequired"); raw != "" {
		v := raw == "true"
		req.RegistrationRequired = &v
	}

	if raw := c.PostForm("organizers"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Organizers); err != nil {
			return nil, errors.New("organizers must be a JSON array of team member IDs")
		}
	}
	if raw := c.PostForm("tags"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Tags); err != nil {
			return nil, errors.New("tags must be a JSON array of strings")
		}
	}

	if fh, err := c.FormFile("image"); err == nil {
		url, err := utils.UploadImage(c.Request.Context(), fh, utils.FolderEvents, utils.TransformBanner)
		if err != nil {
			return nil, fmt.Errorf("image upload failed: %w", err)
		}
		req.Image = url
	}

	return req, nil
}
