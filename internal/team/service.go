package team

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/tda-club/club-website-backend/internal/auditlog"
)

// Service wraps business logic for the team directory.
type Service struct {
	Repo     *Repository
	AuditSvc auditlog.Service
}

func NewService(r *Repository, auditSvc auditlog.Service) *Service {
	return &Service{Repo: r, AuditSvc: auditSvc}
}

func (s *Service) ListActive() ([]Member, error) {
	return s.Repo.ListActive()
}

func (s *Service) ListAll() ([]Member, error) {
	return s.Repo.ListAll()
}

func (s *Service) GetByID(id uint) (*Member, error) {
	return s.Repo.GetByID(id)
}

// ===========================
// 🎯 Create Member
func (s *Service) Create(ctx context.Context, in *MemberInput, userID uint, ip string) (*Member, error) {
	m, err := buildMember(in, nil)
	if err != nil {
		return nil, err
	}
	if m.Image == "" {
		return nil, errors.New("image is required")
	}

	if err := s.Repo.Create(m); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(ctx, &userID, "TEAM_MEMBER_CREATED", map[string]interface{}{
		"member_id": m.ID,
		"name":      m.Name,
	}, ip, "success")

	return m, nil
}

// ===========================
// 🛠 Update Member
func (s *Service) Update(ctx context.Context, id uint, in *MemberInput, userID uint, ip string) (*Member, error) {
	existing, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	m, err := buildMember(in, existing)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.Update(m); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(ctx, &userID, "TEAM_MEMBER_UPDATED", map[string]interface{}{
		"member_id": m.ID,
		"name":      m.Name,
	}, ip, "success")

	return m, nil
}

// ===========================
// ❌ Delete Member
func (s *Service) Delete(ctx context.Context, id uint, userID uint, ip string) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.AuditSvc.LogAction(ctx, &userID, "TEAM_MEMBER_DELETED", map[string]interface{}{
		"member_id": id,
	}, ip, "success")
	return nil
}

// ===========================
// 🔀 Toggle active flag
func (s *Service) ToggleActive(ctx context.Context, id uint, userID uint, ip string) (*Member, error) {
	m, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	m.IsActive = !m.IsActive
	if err := s.Repo.Update(m); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(ctx, &userID, "TEAM_MEMBER_TOGGLED", map[string]interface{}{
		"member_id": m.ID,
		"is_active": m.IsActive,
	}, ip, "success")

	return m, nil
}

// buildMember validates input and assembles the record; existing carries
// fields the form may omit on update (image, join date).
func buildMember(in *MemberInput, existing *Member) (*Member, error) {
	name := strings.TrimSpace(in.Name)
	role := strings.TrimSpace(in.Role)
	quote := strings.TrimSpace(in.Quote)
	if name == "" || role == "" || quote == "" {
		return nil, errors.New("name, role and quote are required")
	}

	m := &Member{
		Name:     name,
		Role:     role,
		Quote:    quote,
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:    strings.TrimSpace(in.Phone),
		Bio:      strings.TrimSpace(in.Bio),
		Image:    in.Image,
		JoinDate: time.Now(),
		IsActive: true,
	}

	if existing != nil {
		m.ID = existing.ID
		m.CreatedAt = existing.CreatedAt
		m.JoinDate = existing.JoinDate
		m.IsActive = existing.IsActive
		m.Order = existing.Order
		if m.Image == "" {
			m.Image = existing.Image
		}
	}

	if in.Order != nil {
		m.Order = *in.Order
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}

	social := SocialMedia{}
	if in.SocialMedia != nil {
		social = *in.SocialMedia
	} else if existing != nil && len(existing.SocialMedia) > 0 {
		_ = json.Unmarshal(existing.SocialMedia, &social)
	}
	socialJSON, _ := json.Marshal(social)
	m.SocialMedia = datatypes.JSON(socialJSON)

	skills := in.Skills
	if skills == nil && existing != nil && len(existing.Skills) > 0 {
		_ = json.Unmarshal(existing.Skills, &skills)
	}
	if skills == nil {
		skills = []string{}
	}
	skillsJSON, _ := json.Marshal(skills)
	m.Skills = datatypes.JSON(skillsJSON)

	return m, nil
}
