package forms

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/tda-club/club-website-backend/internal/auditlog"
)

type Service struct {
	Repo     Repository
	AuditSvc auditlog.Service
}

func NewService(r Repository, auditSvc auditlog.Service) *Service {
	return &Service{Repo: r, AuditSvc: auditSvc}
}

// Submit stores a public application form post. The applicant-specific
// fields go into FormData so the record shape stays uniform across form
// types.
func (s *Service) Submit(req *SubmitRequest, ip, userAgent string) (*FormSubmission, error) {
	name := strings.TrimSpace(req.FullName)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" {
		return nil, errors.New("fullName and email are required")
	}

	data, err := json.Marshal(map[string]string{
		"branch":           strings.TrimSpace(req.Branch),
		"year":             strings.TrimSpace(req.Year),
		"domainOfInterest": strings.TrimSpace(req.DomainOfInterest),
	})
	if err != nil {
		return nil, err
	}

	sub := &FormSubmission{
		FormType:  TypeApplication,
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(req.Phone),
		Message:   strings.TrimSpace(req.Message),
		FormData:  data,
		Status:    StatusPending,
		Priority:  PriorityMedium,
		IPAddress: ip,
		UserAgent: userAgent,
	}

	if err := s.Repo.Create(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *Service) List(filter ListFilter) ([]FormSubmission, int64, error) {
	if filter.FormType != "" && !FormType(filter.FormType).Valid() {
		return nil, 0, errors.New("unknown formType filter")
	}
	if filter.Status != "" && !Status(filter.Status).Valid() {
		return nil, 0, errors.New("unknown status filter")
	}
	if filter.Priority != "" && !Priority(filter.Priority).Valid() {
		return nil, 0, errors.New("unknown priority filter")
	}
	return s.Repo.List(filter)
}

// ListForExport feeds the XLSX download; same filter validation as List.
func (s *Service) ListForExport(filter ListFilter) ([]FormSubmission, error) {
	if filter.FormType != "" && !FormType(filter.FormType).Valid() {
		return nil, errors.New("unknown formType filter")
	}
	if filter.Status != "" && !Status(filter.Status).Valid() {
		return nil, errors.New("unknown status filter")
	}
	if filter.Priority != "" && !Priority(filter.Priority).Valid() {
		return nil, errors.New("unknown priority filter")
	}
	return s.Repo.ListForExport(filter)
}

func (s *Service) GetByID(id uint) (*FormSubmission, error) {
	return s.Repo.GetByID(id)
}

// UpdateTriage applies the admin status/priority/assignment changes.
func (s *Service) UpdateTriage(ctx context.Context, id uint, req *UpdateRequest, userID uint, ip string) (*FormSubmission, error) {
	sub, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Status != "" {
		if !Status(req.Status).Valid() {
			return nil, errors.New("invalid status")
		}
		sub.Status = Status(req.Status)
	}
	if req.Priority != "" {
		if !Priority(req.Priority).Valid() {
			return nil, errors.New("invalid priority")
		}
		sub.Priority = Priority(req.Priority)
	}
	if req.AssignedTo != nil {
		sub.AssignedTo = req.AssignedTo
	}

	if err := s.Repo.Update(sub); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(ctx, &userID, "FORM_SUBMISSION_UPDATED", map[string]interface{}{
		"submission_id": sub.ID,
		"status":        string(sub.Status),
		"priority":      string(sub.Priority),
	}, ip, "success")

	return sub, nil
}

// Respond records an admin reply and moves the submission to responded.
func (s *Service) Respond(ctx context.Context, id uint, req *RespondRequest, userID uint, ip string) (*FormSubmission, error) {
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return nil, errors.New("response message is required")
	}

	sub, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sub.ResponseMessage = msg
	sub.RespondedBy = &userID
	sub.RespondedAt = &now
	sub.Status = StatusResponded

	if err := s.Repo.Update(sub); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(ctx, &userID, "FORM_SUBMISSION_RESPONDED", map[string]interface{}{
		"submission_id": sub.ID,
	}, ip, "success")

	return sub, nil
}

func (s *Service) Delete(ctx context.Context, id uint, userID uint, ip string) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}

	s.AuditSvc.LogAction(ctx, &userID, "FORM_SUBMISSION_DELETED", map[string]interface{}{
		"submission_id": id,
	}, ip, "success")

	return nil
}
