package news

import (
	"errors"

	"gorm.io/gorm"
)

// Domain errors for the article store.
var (
	ErrNotFound  = errors.New("news article not found")
	ErrSlugTaken = errors.New("slug already in use")
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🎯 Create Article
func (r *Repository) Create(a *Article) error {
	return r.DB.Create(a).Error
}

// ===========================
// 📄 Published articles, newest publish first
func (r *Repository) ListPublished(filter ListFilter) ([]Article, error) {
	query := r.DB.Where("status = ?", StatusPublished)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Featured {
		query = query.Where("featured = TRUE")
	}

	query = query.Preload("Author").Order("publish_date DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var articles []Article
	err := query.Find(&articles).Error
	return articles, err
}

// ===========================
// 📄 All articles (admin), newest first
func (r *Repository) ListAll() ([]Article, error) {
	var articles []Article
	err := r.DB.
		Preload("Author").
		Order("created_at DESC").
		Find(&articles).Error
	return articles, err
}

// ===========================
// 🔍 Lookups
func (r *Repository) GetByID(id uint) (*Article, error) {
	var a Article
	err := r.DB.Preload("Author").First(&a, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *Repository) GetBySlug(slug string) (*Article, error) {
	var a Article
	err := r.DB.Preload("Author").Where("slug = ?", slug).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *Repository) SlugExists(slug string, excludeID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&Article{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&count).Error
	return count > 0, err
}

// ===========================
// 🛠 Update Article
func (r *Repository) Update(a *Article) error {
	return r.DB.Save(a).Error
}

// ===========================
// ❌ Delete Article
func (r *Repository) Delete(id uint) error {
	res := r.DB.Delete(&Article{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ===========================
// 🔢 Counters
//
// Views and likes are bumped with single UPDATE expressions so concurrent
// readers never lose increments to a read-then-write race.
func (r *Repository) IncrementViews(id uint) error {
	return r.DB.Model(&Article{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *Repository) IncrementLikes(id uint) (int, error) {
	res := r.DB.Model(&Article{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrNotFound
	}

	var likes int
	err := r.DB.Model(&Article{}).
		Select("likes").
		Where("id = ?", id).
		Scan(&likes).Error
	return likes, err
}
