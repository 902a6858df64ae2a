package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/tda-club/club-website-backend/internal/auditlog"
	"github.com/tda-club/club-website-backend/utils"
)

// Service wraps business logic for news articles.
type Service struct {
	Repo     *Repository
	AuditSvc auditlog.Service
}

func NewService(r *Repository, auditSvc auditlog.Service) *Service {
	return &Service{Repo: r, AuditSvc: auditSvc}
}

func (s *Service) ListPublished(filter ListFilter) ([]Article, error) {
	return s.Repo.ListPublished(filter)
}

func (s *Service) ListAll() ([]Article, error) {
	return s.Repo.ListAll()
}

// GetByIdentifier resolves an article by numeric ID or by slug and bumps the
// view counter on success. The Redis mirror is best-effort; the database
// column stays authoritative.
func (s *Service) GetByIdentifier(identifier string) (*Article, error) {
	var a *Article
	var err error

	if id, convErr := strconv.Atoi(identifier); convErr == nil && id > 0 {
		a, err = s.Repo.GetByID(uint(id))
	} else {
		a, err = s.Repo.GetBySlug(identifier)
	}
	if err != nil {
		return nil, err
	}

	if err := s.Repo.IncrementViews(a.ID); err == nil {
		a.Views++
		_ = utils.IncrCounter(fmt.Sprintf("news:views:%d", a.ID))
	}

	return a, nil
}

// Like bumps the like counter and returns the new count.
func (s *Service) Like(id uint) (int, error) {
	return s.Repo.IncrementLikes(id)
}

// ===========================
// 🎯 Create Article
func (s *Service) Create(ctx context.Context, in *ArticleInput, authorID uint, ip string) (*Article, error) {
	a, err := s.buildArticle(in, nil)
	if err != nil {
		return nil, err
	}
	a.AuthorID = authorID

	if err := s.Repo.Create(a); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(ctx, &authorID, "NEWS_CREATED", map[string]interface{}{
		"article_id": a.ID,
		"title":      a.Title,
	}, ip, "success")

	return s.Repo.GetByID(a.ID)
}

// ===========================
// 🛠 Update Article
func (s *Service) Update(ctx context.Context, id uint, in *ArticleInput, userID uint, ip string) (*Article, error) {
	existing, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	a, err := s.buildArticle(in, existing)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.Update(a); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(ctx, &userID, "NEWS_UPDATED", map[string]interface{}{
		"article_id": a.ID,
		"title":      a.Title,
	}, ip, "success")

	return s.Repo.GetByID(a.ID)
}

// ===========================
// ❌ Delete Article
func (s *Service) Delete(ctx context.Context, id uint, userID uint, ip string) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.AuditSvc.LogAction(ctx, &userID, "NEWS_DELETED", map[string]interface{}{
		"article_id": id,
	}, ip, "success")
	return nil
}

// buildArticle validates input and assembles the record.
func (s *Service) buildArticle(in *ArticleInput, existing *Article) (*Article, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, errors.New("title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, errors.New("content is required")
	}

	category := Category(in.Category)
	if in.Category == "" {
		category = CategoryGeneral
	}
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q", in.Category)
	}

	status := PublishStatus(in.Status)
	if in.Status == "" {
		status = StatusDraft
	}
	if !status.Valid() {
		return nil, fmt.Errorf("unknown status %q", in.Status)
	}

	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return nil, errors.New("could not derive a slug from the title")
	}

	var excludeID uint
	if existing != nil {
		excludeID = existing.ID
	}
	taken, err := s.Repo.SlugExists(slug, excludeID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugTaken
	}

	publishDate := time.Now()
	if in.PublishDate != "" {
		parsed, err := time.Parse("2006-01-02", in.PublishDate)
		if err != nil {
			return nil, errors.New("invalid publishDate format. Use YYYY-MM-DD")
		}
		publishDate = parsed
	} else if existing != nil {
		publishDate = existing.PublishDate
	}

	a := &Article{
		Title:       title,
		Slug:        slug,
		Content:     in.Content,
		Excerpt:     strings.TrimSpace(in.Excerpt),
		Image:       in.Image,
		Category:    category,
		Status:      status,
		PublishDate: publishDate,
	}

	if existing != nil {
		a.ID = existing.ID
		a.CreatedAt = existing.CreatedAt
		a.AuthorID = existing.AuthorID
		a.Views = existing.Views
		a.Likes = existing.Likes
		a.Featured = existing.Featured
		if a.Image == "" {
			a.Image = existing.Image
		}
	}

	if in.Featured != nil {
		a.Featured = *in.Featured
	}

	tags := in.Tags
	if tags == nil && existing != nil && len(existing.Tags) > 0 {
		_ = json.Unmarshal(existing.Tags, &tags)
	}
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, _ := json.Marshal(tags)
	a.Tags = datatypes.JSON(tagsJSON)

	return a, nil
}
