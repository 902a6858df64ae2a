package forms

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/tda-club/club-website-backend/internal/auditlog"
)

type memRepo struct {
	subs map[uint]*FormSubmission
	next uint
}

func newMemRepo() *memRepo {
	return &memRepo{subs: make(map[uint]*FormSubmission), next: 1}
}

func (m *memRepo) Create(s *FormSubmission) error {
	s.ID = m.next
	m.next++
	m.subs[s.ID] = s
	return nil
}

func (m *memRepo) List(filter ListFilter) ([]FormSubmission, int64, error) {
	var out []FormSubmission
	for _, s := range m.subs {
		if filter.Status != "" && string(s.Status) != filter.Status {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (m *memRepo) ListForExport(filter ListFilter) ([]FormSubmission, error) {
	subs, _, err := m.List(filter)
	return subs, err
}

func (m *memRepo) GetByID(id uint) (*FormSubmission, error) {
	s, ok := m.subs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memRepo) Update(s *FormSubmission) error {
	m.subs[s.ID] = s
	return nil
}

func (m *memRepo) Delete(id uint) error {
	if _, ok := m.subs[id]; !ok {
		return ErrNotFound
	}
	delete(m.subs, id)
	return nil
}

type noopAudit struct{}

func (noopAudit) LogAction(context.Context, *uint, string, map[string]interface{}, string, string) error {
	return nil
}

func (noopAudit) GetAuditLogs(context.Context, auditlog.AuditLogFilter) (*auditlog.PaginatedAuditLogs, error) {
	return &auditlog.PaginatedAuditLogs{}, nil
}

func TestSubmit(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, noopAudit{})

	sub, err := svc.Submit(&SubmitRequest{
		FullName:         " Priya Sharma ",
		Email:            "priya@example.com",
		Phone:            "9999999999",
		Branch:           "CSE",
		Year:             "2",
		DomainOfInterest: "backend",
		Message:          "Keen to join.",
	}, "203.0.113.9", "test-agent/1.0")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if sub.ID == 0 {
		t.Fatal("no ID assigned")
	}
	if sub.FormType != TypeApplication {
		t.Fatalf("formType = %q", sub.FormType)
	}
	if sub.Status != StatusPending || sub.Priority != PriorityMedium {
		t.Fatalf("defaults: status=%q priority=%q", sub.Status, sub.Priority)
	}
	if sub.Name != "Priya Sharma" {
		t.Fatalf("name not trimmed: %q", sub.Name)
	}
	if sub.IPAddress != "203.0.113.9" || sub.UserAgent != "test-agent/1.0" {
		t.Fatal("request metadata not captured")
	}

	var data map[string]string
	if err := json.Unmarshal(sub.FormData, &data); err != nil {
		t.Fatalf("form data: %v", err)
	}
	if data["branch"] != "CSE" || data["domainOfInterest"] != "backend" {
		t.Fatalf("form data = %v", data)
	}
}

func TestSubmitValidation(t *testing.T) {
	svc := NewService(newMemRepo(), noopAudit{})

	if _, err := svc.Submit(&SubmitRequest{Email: "a@b.com"}, "", ""); err == nil {
		t.Fatal("expected error without fullName")
	}
	if _, err := svc.Submit(&SubmitRequest{FullName: "X"}, "", ""); err == nil {
		t.Fatal("expected error without email")
	}
}

func TestListRejectsUnknownFilters(t *testing.T) {
	svc := NewService(newMemRepo(), noopAudit{})

	if _, _, err := svc.List(ListFilter{FormType: "petition"}); err == nil {
		t.Fatal("expected error for unknown formType")
	}
	if _, _, err := svc.List(ListFilter{Status: "sideways"}); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if _, _, err := svc.List(ListFilter{Priority: "asap"}); err == nil {
		t.Fatal("expected error for unknown priority")
	}
}

func TestUpdateTriage(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, noopAudit{})

	sub, err := svc.Submit(&SubmitRequest{FullName: "X", Email: "x@example.com"}, "", "")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	assignee := uint(3)
	got, err := svc.UpdateTriage(context.Background(), sub.ID, &UpdateRequest{
		Status:     "reviewed",
		Priority:   "high",
		AssignedTo: &assignee,
	}, 1, "127.0.0.1")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Status != StatusReviewed || got.Priority != PriorityHigh {
		t.Fatalf("status=%q priority=%q", got.Status, got.Priority)
	}
	if got.AssignedTo == nil || *got.AssignedTo != assignee {
		t.Fatal("assignee not set")
	}

	if _, err := svc.UpdateTriage(context.Background(), sub.ID, &UpdateRequest{Status: "bogus"}, 1, ""); err == nil {
		t.Fatal("expected error for invalid status")
	}
	if _, err := svc.UpdateTriage(context.Background(), 999, &UpdateRequest{}, 1, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestRespond(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, noopAudit{})

	sub, err := svc.Submit(&SubmitRequest{FullName: "X", Email: "x@example.com"}, "", "")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	got, err := svc.Respond(context.Background(), sub.ID, &RespondRequest{Message: "Welcome aboard"}, 2, "127.0.0.1")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if got.Status != StatusResponded {
		t.Fatalf("status = %q", got.Status)
	}
	if got.ResponseMessage != "Welcome aboard" {
		t.Fatalf("response = %q", got.ResponseMessage)
	}
	if got.RespondedBy == nil || *got.RespondedBy != 2 || got.RespondedAt == nil {
		t.Fatal("responder metadata not set")
	}

	if _, err := svc.Respond(context.Background(), sub.ID, &RespondRequest{Message: "   "}, 2, ""); err == nil {
		t.Fatal("expected error for blank message")
	}
}
