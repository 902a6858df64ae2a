package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/tda-club/club-website-backend/internal/auditlog"
)

// Service wraps business logic for club events and their registrations.
type Service struct {
	Repo     *Repository
	AuditSvc auditlog.Service
}

func NewService(r *Repository, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:     r,
		AuditSvc: auditSvc,
	}
}

// ===========================
// 🎯 Create Event
func (s *Service) CreateEvent(ctx context.Context, req *CreateEventRequest, userID uint, ip string) (*Event, error) {
	e, err := buildEvent(req)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.CreateEvent(e); err != nil {
		s.AuditSvc.LogAction(ctx, &userID, "EVENT_CREATED", map[string]interface{}{
			"title": req.Title,
			"error": err.Error(),
		}, ip, "failure")
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.AuditSvc.LogAction(ctx, &userID, "EVENT_CREATED", map[string]interface{}{
		"event_id": e.ID,
		"title":    e.Title,
	}, ip, "success")

	e.RegistrationOpen = e.AcceptsRegistrations(time.Now())
	return e, nil
}

// ===========================
// 🛠 Update Event
func (s *Service) UpdateEvent(ctx context.Context, id uint, req *CreateEventRequest, userID uint, ip string) (*Event, error) {
	existing, err := s.Repo.GetEventByID(id)
	if err != nil {
		return nil, err
	}

	updated, err := buildEvent(req)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.Registrations = existing.Registrations
	if updated.Image == "" {
		updated.Image = existing.Image
	}

	if err := s.Repo.UpdateEvent(updated); err != nil {
		s.AuditSvc.LogAction(ctx, &userID, "EVENT_UPDATED", map[string]interface{}{
			"event_id": id,
			"error":    err.Error(),
		}, ip, "failure")
		return nil, fmt.Errorf("update event: %w", err)
	}

	s.AuditSvc.LogAction(ctx, &userID, "EVENT_UPDATED", map[string]interface{}{
		"event_id": id,
		"title":    updated.Title,
	}, ip, "success")

	updated.RegistrationOpen = updated.AcceptsRegistrations(time.Now())
	return updated, nil
}

// ===========================
// ❌ Delete Event
func (s *Service) DeleteEvent(ctx context.Context, id uint, userID uint, ip string) error {
	if err := s.Repo.DeleteEvent(id); err != nil {
		return err
	}
	s.AuditSvc.LogAction(ctx, &userID, "EVENT_DELETED", map[string]interface{}{
		"event_id": id,
	}, ip, "success")
	return nil
}

// ===========================
// 🔍 Reads
func (s *Service) GetEventByID(id uint) (*Event, error) {
	e, err := s.Repo.GetEventByID(id)
	if err != nil {
		return nil, err
	}
	e.RegistrationOpen = e.AcceptsRegistrations(time.Now())
	return e, nil
}

func (s *Service) ListPublicEvents(filter ListFilter) ([]Event, error) {
	events, err := s.Repo.ListPublic(filter)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range events {
		events[i].RegistrationOpen = events[i].AcceptsRegistrations(now)
	}
	return events, nil
}

func (s *Service) ListAllEvents() ([]Event, error) {
	events, err := s.Repo.ListAll()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range events {
		events[i].RegistrationOpen = events[i].AcceptsRegistrations(now)
	}
	return events, nil
}

// ===========================
// 📝 Register for an event
//
// Validation here is shape-only; the eligibility checks run inside the
// repository transaction so they hold under concurrent attempts.
func (s *Service) Register(ctx context.Context, eventID uint, req RegisterRequest) (*Event, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" {
		return nil, errors.New("name and email are required")
	}

	e, err := s.Repo.RegisterParticipant(ctx, eventID, name, email, strings.TrimSpace(req.Phone))
	if err != nil {
		if errors.Is(err, ErrNotFound) ||
			errors.Is(err, ErrRegistrationNotRequired) ||
			errors.Is(err, ErrAlreadyRegistered) ||
			errors.Is(err, ErrEventFull) ||
			errors.Is(err, ErrRegistrationClosed) {
			return nil, err
		}
		return nil, fmt.Errorf("register for event: %w", err)
	}

	e.RegistrationOpen = e.AcceptsRegistrations(time.Now())
	return e, nil
}

// ===========================
// Request → model assembly and boundary validation
func buildEvent(req *CreateEventRequest) (*Event, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, errors.New("title is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, errors.New("description is required")
	}
	if strings.TrimSpace(req.Location) == "" {
		return nil, errors.New("location is required")
	}
	if strings.TrimSpace(req.Time) == "" {
		return nil, errors.New("time is required")
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, errors.New("invalid date format. Use YYYY-MM-DD")
	}

	var endDate *time.Time
	if req.EndDate != "" {
		parsed, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, errors.New("invalid endDate format. Use YYYY-MM-DD")
		}
		endDate = &parsed
	}

	if _, err := time.Parse("15:04", req.Time); err != nil {
		return nil, errors.New("invalid time format. Use HH:MM in 24-hour format")
	}

	category := Category(req.Category)
	if req.Category == "" {
		category = CategoryOther
	}
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q", req.Category)
	}

	status := Status(req.Status)
	if req.Status == "" {
		status = StatusUpcoming
	}
	if !status.Valid() {
		return nil, fmt.Errorf("unknown status %q", req.Status)
	}

	if req.MaxParticipants != nil && *req.MaxParticipants <= 0 {
		return nil, errors.New("maxParticipants must be a positive integer")
	}

	var deadline *time.Time
	if req.RegistrationDeadline != "" {
		parsed, err := parseDeadline(req.RegistrationDeadline)
		if err != nil {
			return nil, err
		}
		deadline = &parsed
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}
	registrationRequired := false
	if req.RegistrationRequired != nil {
		registrationRequired = *req.RegistrationRequired
	}

	organizersJSON, _ := json.Marshal(req.Organizers)
	tagsJSON, _ := json.Marshal(req.Tags)

	return &Event{
		Title:            strings.TrimSpace(req.Title),
		Description:      req.Description,
		ShortDescription: strings.TrimSpace(req.ShortDescription),
		Date:             date,
		EndDate:          endDate,
		Time:             req.Time,
		Location:         strings.TrimSpace(req.Location),
		Image:            req.Image,
		Category:         category,
		Status:           status,

		MaxParticipants:      req.MaxParticipants,
		RegistrationRequired: registrationRequired,
		RegistrationDeadline: deadline,

		Organizers: datatypes.JSON(organizersJSON),
		Tags:       datatypes.JSON(tagsJSON),
		IsPublic:   isPublic,
	}, nil
}

func parseDeadline(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, errors.New("invalid registrationDeadline format")
}
